// Package http реализует HTTP-обработчики и DTO поверх доменных сервисов.
package http

import "user-directory-service/internal/model"

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type createUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type updateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type userChangeResponse struct {
	Message string     `json:"message"`
	Data    model.User `json:"data"`
}
