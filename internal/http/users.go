package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"user-directory-service/internal/auth"
	"user-directory-service/internal/model"
)

func (h *Handler) handleUserList(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_list"

	ctx := r.Context()
	users, err := h.Users.ListUsers(ctx, auth.PrincipalFromContext(ctx))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) handleUserGet(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_get"

	ctx := r.Context()
	user, err := h.Users.GetUser(ctx, auth.PrincipalFromContext(ctx), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_create"

	var req createUserRequest
	decodeErr := decodeJSON(w, r, &req)

	ctx := r.Context()
	res, err := h.Users.CreateUser(ctx, auth.PrincipalFromContext(ctx), model.CreateUserInput{
		Email:     req.Email,
		Name:      req.Name,
		DecodeErr: decodeErr,
	})
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusCreated, userChangeResponse{Message: res.Message, Data: res.User})
}

func (h *Handler) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_update"

	var req updateUserRequest
	decodeErr := decodeJSON(w, r, &req)

	ctx := r.Context()
	res, err := h.Users.UpdateUser(ctx, auth.PrincipalFromContext(ctx), chi.URLParam(r, "id"), model.UpdateUserInput{
		Email:     req.Email,
		Name:      req.Name,
		DecodeErr: decodeErr,
	})
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, userChangeResponse{Message: res.Message, Data: res.User})
}

func (h *Handler) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_delete"

	ctx := r.Context()
	msg, err := h.Users.DeleteUser(ctx, auth.PrincipalFromContext(ctx), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	// 204 не несёт тела, сообщение остаётся в логе.
	h.Log.Info(msg, slog.String("handler", handlerName))
	w.WriteHeader(http.StatusNoContent)
}
