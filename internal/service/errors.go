package service

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError описывает прикладную ошибку сервиса:
// код для клиента, человекочитаемое сообщение, HTTP-статус и вложенная ошибка.
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

// Error реализует интерфейс error для AppError.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap возвращает вложенную ошибку для поддержки errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrBadRequest конструирует AppError для некорректных запросов клиента.
func ErrBadRequest(msg string) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: msg,
		Status:  http.StatusBadRequest,
	}
}

// ErrUnauthorized описывает запрос без аутентифицированного пользователя.
func ErrUnauthorized(msg string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: msg,
		Status:  http.StatusUnauthorized,
	}
}

// ErrForbidden: у пользователя нет нужной роли.
func ErrForbidden(msg string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: msg,
		Status:  http.StatusForbidden,
	}
}

// ErrNotFound конструирует AppError для ситуации, когда ресурс не найден.
func ErrNotFound(msg string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: msg,
		Status:  http.StatusNotFound,
	}
}

// ErrConflict сообщает, что нарушена уникальность email или имени (строгий режим).
func ErrConflict(msg string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: msg,
		Status:  http.StatusConflict,
	}
}

// ErrUnprocessable: тело запроса разобрано, но данные не прошли валидацию.
func ErrUnprocessable(msg string) *AppError {
	return &AppError{
		Code:    "UNPROCESSABLE_ENTITY",
		Message: msg,
		Status:  http.StatusUnprocessableEntity,
	}
}

// ErrInternal оборачивает неожиданную ошибку инфраструктуры.
func ErrInternal(msg string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL",
		Message: msg,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// ErrStorageCorrupt сообщает, что хранилище содержит данные, которые не удалось разобрать.
func ErrStorageCorrupt(err error) *AppError {
	return &AppError{
		Code:    "STORAGE_CORRUPT",
		Message: "user storage is corrupt",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// ErrInvalidJSON сообщает, что тело запроса не разобрано как JSON-объект.
func ErrInvalidJSON(err error) *AppError {
	appErr := ErrBadRequest("Invalid JSON format.")
	appErr.Err = err
	return appErr
}

// IsNotFound помогает определить, соответствует ли ошибка HTTP-статусу 404.
func IsNotFound(err error) bool {
	return HasStatus(err, http.StatusNotFound)
}

// HasStatus проверяет, что в цепочке ошибок есть AppError с указанным статусом.
func HasStatus(err error, status int) bool {
	var app *AppError
	if errors.As(err, &app) {
		return app.Status == status
	}
	return false
}
