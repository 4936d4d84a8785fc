package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapi "user-directory-service/internal/http"
	"user-directory-service/internal/http/mocks"
	"user-directory-service/internal/model"
	"user-directory-service/internal/service"
)

var (
	testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	adminP     = model.Principal{ID: "100", Roles: []string{model.RoleAdmin}}
	userP      = model.Principal{ID: "1", Roles: []string{model.RoleUser}}
)

func newRouter(us *mocks.UserService, as *mocks.AuthService, principal model.Principal) http.Handler {
	authn := new(mocks.Authenticator)
	authn.On("Authenticate", mock.Anything).Return(principal, nil)
	return httpapi.NewHandler(us, as, authn, testLogger, httpapi.Options{}).Router()
}

func decodeError(t *testing.T, body *bytes.Buffer) (code, message string) {
	t.Helper()
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	return resp.Error.Code, resp.Error.Message
}

func expectCreateDecodeError(us *mocks.UserService) {
	us.On("CreateUser", mock.Anything, adminP, mock.MatchedBy(func(in model.CreateUserInput) bool {
		return in.DecodeErr != nil
	})).Return(model.UserChange{}, service.ErrInvalidJSON(errors.New("decode")))
}

func expectUpdateDecodeError(us *mocks.UserService) {
	us.On("UpdateUser", mock.Anything, userP, "1", mock.MatchedBy(func(in model.UpdateUserInput) bool {
		return in.DecodeErr != nil
	})).Return(model.UserChange{}, service.ErrInvalidJSON(errors.New("decode")))
}

func TestHandler_CreateUser(t *testing.T) {
	created := model.User{ID: "1", Email: "a@b.com", Name: "alice1"}

	tests := []struct {
		name           string
		body           string
		mockBehavior   func(us *mocks.UserService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Success",
			body: `{"email": "a@b.com", "name": "alice1"}`,
			mockBehavior: func(us *mocks.UserService) {
				us.On("CreateUser", mock.Anything, adminP, model.CreateUserInput{Email: "a@b.com", Name: "alice1"}).
					Return(model.UserChange{Message: "User created successfully", User: created}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Bad Request: Invalid JSON",
			body:           `{"email": "broken`,
			mockBehavior:   expectCreateDecodeError,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
		{
			name:           "Bad Request: Empty body",
			body:           ``,
			mockBehavior:   expectCreateDecodeError,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
		{
			name:           "Bad Request: null body",
			body:           `null`,
			mockBehavior:   expectCreateDecodeError,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
		{
			name: "Forbidden: bad body is reported after the role check",
			body: `garbage`,
			mockBehavior: func(us *mocks.UserService) {
				us.On("CreateUser", mock.Anything, adminP, mock.MatchedBy(func(in model.CreateUserInput) bool {
					return in.DecodeErr != nil
				})).Return(model.UserChange{}, service.ErrForbidden("access denied"))
			},
			expectedStatus: http.StatusForbidden,
			expectedCode:   "FORBIDDEN",
		},
		{
			name: "Unprocessable: invalid name",
			body: `{"email": "a@b.com", "name": "ab"}`,
			mockBehavior: func(us *mocks.UserService) {
				us.On("CreateUser", mock.Anything, adminP, mock.Anything).
					Return(model.UserChange{}, service.ErrUnprocessable("Username is not valid"))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "UNPROCESSABLE_ENTITY",
		},
		{
			name: "Internal Error",
			body: `{"email": "a@b.com", "name": "alice1"}`,
			mockBehavior: func(us *mocks.UserService) {
				us.On("CreateUser", mock.Anything, adminP, mock.Anything).
					Return(model.UserChange{}, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			us := new(mocks.UserService)
			as := new(mocks.AuthService)
			tt.mockBehavior(us)

			req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			newRouter(us, as, adminP).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				code, _ := decodeError(t, w.Body)
				assert.Equal(t, tt.expectedCode, code)
			} else {
				var resp struct {
					Message string     `json:"message"`
					Data    model.User `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "User created successfully", resp.Message)
				assert.Equal(t, created, resp.Data)
			}
			us.AssertExpectations(t)
		})
	}
}

func TestHandler_ListUsers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		us := new(mocks.UserService)
		users := []model.User{{ID: "1", Email: "a@b.com", Name: "alice1"}}
		us.On("ListUsers", mock.Anything, adminP).Return(users, nil)

		w := httptest.NewRecorder()
		newRouter(us, new(mocks.AuthService), adminP).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":"1","email":"a@b.com","name":"alice1"}]`, w.Body.String())
	})

	t.Run("Forbidden", func(t *testing.T) {
		us := new(mocks.UserService)
		us.On("ListUsers", mock.Anything, userP).Return(nil, service.ErrForbidden("access denied"))

		w := httptest.NewRecorder()
		newRouter(us, new(mocks.AuthService), userP).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandler_GetUser(t *testing.T) {
	us := new(mocks.UserService)
	us.On("GetUser", mock.Anything, userP, "1").Return(model.User{ID: "1", Email: "a@b.com", Name: "alice1"}, nil)
	us.On("GetUser", mock.Anything, userP, "2").Return(model.User{}, service.ErrNotFound("User with id 2 not found."))

	router := newRouter(us, new(mocks.AuthService), userP)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"1","email":"a@b.com","name":"alice1"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/2", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	_, msg := decodeError(t, w.Body)
	assert.Equal(t, "User with id 2 not found.", msg)

	us.AssertExpectations(t)
}

func TestHandler_UpdateUser(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockBehavior   func(us *mocks.UserService)
		expectedStatus int
	}{
		{
			name: "Success",
			body: `{"name": "renamed"}`,
			mockBehavior: func(us *mocks.UserService) {
				us.On("UpdateUser", mock.Anything, userP, "1", model.UpdateUserInput{Name: "renamed"}).
					Return(model.UserChange{
						Message: "User with id 1 has been updated.",
						User:    model.User{ID: "1", Email: "a@b.com", Name: "renamed"},
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Bad Request: Not an object",
			body:           `["name"]`,
			mockBehavior:   expectUpdateDecodeError,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad Request: null body",
			body:           `null`,
			mockBehavior:   expectUpdateDecodeError,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Not Found: missing record wins over bad body",
			body: `garbage`,
			mockBehavior: func(us *mocks.UserService) {
				us.On("UpdateUser", mock.Anything, userP, "1", mock.MatchedBy(func(in model.UpdateUserInput) bool {
					return in.DecodeErr != nil
				})).Return(model.UserChange{}, service.ErrNotFound("User with id 1 not found."))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Not Found",
			body: `{"name": "renamed"}`,
			mockBehavior: func(us *mocks.UserService) {
				us.On("UpdateUser", mock.Anything, userP, "1", mock.Anything).
					Return(model.UserChange{}, service.ErrNotFound("User with id 1 not found."))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			us := new(mocks.UserService)
			tt.mockBehavior(us)

			req := httptest.NewRequest(http.MethodPatch, "/api/users/1", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			newRouter(us, new(mocks.AuthService), userP).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			us.AssertExpectations(t)
		})
	}
}

func TestHandler_DeleteUser(t *testing.T) {
	us := new(mocks.UserService)
	us.On("DeleteUser", mock.Anything, adminP, "3").Return("User with id 3 has been deleted.", nil)
	us.On("DeleteUser", mock.Anything, adminP, "4").Return("", service.ErrNotFound("User with id 4 not found."))

	router := newRouter(us, new(mocks.AuthService), adminP)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/users/3", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/users/4", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	us.AssertExpectations(t)
}

func TestHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		as := new(mocks.AuthService)
		as.On("Login", mock.Anything, adminP).Return(model.LoginResult{
			User:  "100",
			Roles: []string{model.RoleAdmin},
			Token: "t0k3n",
		}, nil)

		w := httptest.NewRecorder()
		newRouter(new(mocks.UserService), as, adminP).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/login", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":"100","roles":["ADMIN"],"token":"t0k3n"}`, w.Body.String())
		as.AssertExpectations(t)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		as := new(mocks.AuthService)
		as.On("Login", mock.Anything, model.Principal{}).Return(model.LoginResult{}, service.ErrUnauthorized("Invalid credentials"))

		w := httptest.NewRecorder()
		newRouter(new(mocks.UserService), as, model.Principal{}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/login", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
	})
}

func TestHandler_BadCredentialsRejectedBeforeService(t *testing.T) {
	us := new(mocks.UserService)
	authn := new(mocks.Authenticator)
	authn.On("Authenticate", mock.Anything).Return(model.Principal{}, errors.New("invalid credentials"))

	router := httpapi.NewHandler(us, new(mocks.AuthService), authn, testLogger, httpapi.Options{}).Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	code, _ := decodeError(t, w.Body)
	assert.Equal(t, "UNAUTHORIZED", code)
	us.AssertExpectations(t)
}

func TestHandler_Health(t *testing.T) {
	router := httpapi.NewHandler(new(mocks.UserService), new(mocks.AuthService), new(mocks.Authenticator), testLogger, httpapi.Options{}).Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandler_CORS(t *testing.T) {
	router := httpapi.NewHandler(new(mocks.UserService), new(mocks.AuthService), new(mocks.Authenticator), testLogger,
		httpapi.Options{CORSOrigins: []string{"https://app.example"}}).Router()

	req := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}
