package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"user-directory-service/internal/model"
	"user-directory-service/internal/service"
)

// UserService описывает операции справочника, которые вызывают обработчики.
type UserService interface {
	ListUsers(ctx context.Context, principal model.Principal) ([]model.User, error)
	GetUser(ctx context.Context, principal model.Principal, id string) (model.User, error)
	CreateUser(ctx context.Context, principal model.Principal, in model.CreateUserInput) (model.UserChange, error)
	DeleteUser(ctx context.Context, principal model.Principal, id string) (string, error)
	UpdateUser(ctx context.Context, principal model.Principal, id string, in model.UpdateUserInput) (model.UserChange, error)
}

// AuthService отражает аутентифицированного пользователя на /api/login.
type AuthService interface {
	Login(ctx context.Context, principal model.Principal) (model.LoginResult, error)
}

// Authenticator описывает внешний шлюз аутентификации.
type Authenticator interface {
	Authenticate(r *http.Request) (model.Principal, error)
}

// Options задаёт необязательные настройки роутера.
type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

type Handler struct {
	Users UserService
	Auth  AuthService
	Authn Authenticator
	Log   *slog.Logger
	opts  Options
}

func NewHandler(users UserService, authSvc AuthService, authn Authenticator, log *slog.Logger, opts Options) *Handler {
	return &Handler{
		Users: users,
		Auth:  authSvc,
		Authn: authn,
		Log:   log,
		opts:  opts,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(h.Log))
	r.Use(middleware.Recoverer)
	if h.opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(h.opts.RequestTimeout))
	}
	if len(h.opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(h.authenticate)

		r.Post("/login", h.handleLogin)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.handleUserList)
			r.Post("/", h.handleUserCreate)
			r.Get("/{id}", h.handleUserGet)
			r.Patch("/{id}", h.handleUserUpdate)
			r.Delete("/{id}", h.handleUserDelete)
		})
	})

	return r
}

func (h *Handler) writeError(w http.ResponseWriter, handlerName string, err error) {
	var appErr *service.AppError
	if !errors.As(err, &appErr) {
		appErr = service.ErrInternal("internal error", err)
	}

	level := slog.LevelInfo
	if appErr.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.Log.Log(context.Background(), level, "handler error",
		slog.String("handler", handlerName),
		slog.String("code", appErr.Code),
		slog.String("message", appErr.Message),
		slog.Any("err", appErr.Err),
	)

	if service.HasStatus(appErr, http.StatusUnauthorized) {
		w.Header().Set("WWW-Authenticate", `Basic realm="user-directory"`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)

	resp := errorResponse{}
	resp.Error.Code = appErr.Code
	resp.Error.Message = appErr.Message
	_ = json.NewEncoder(w).Encode(resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
