package http

import (
	"net/http"

	"user-directory-service/internal/auth"
)

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	const handlerName = "login"

	ctx := r.Context()
	res, err := h.Auth.Login(ctx, auth.PrincipalFromContext(ctx))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
