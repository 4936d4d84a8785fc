package service

import (
	"context"

	"user-directory-service/internal/model"
)

// TokenIssuer выпускает токен доступа для уже аутентифицированного пользователя.
type TokenIssuer interface {
	IssueToken(principal model.Principal) (string, error)
}

// AuthService отражает личность, установленную шлюзом аутентификации.
// Проверкой паролей он не занимается.
type AuthService struct {
	tokens TokenIssuer
}

// NewAuthService создаёт сервис входа. Если tokens равен nil, токен не выдаётся.
func NewAuthService(tokens TokenIssuer) *AuthService {
	return &AuthService{tokens: tokens}
}

// Login возвращает идентификатор и роли вызывающего в неизменном виде.
func (s *AuthService) Login(_ context.Context, principal model.Principal) (model.LoginResult, error) {
	if principal.Anonymous() {
		return model.LoginResult{}, ErrUnauthorized("Invalid credentials")
	}

	roles := make([]string, len(principal.Roles))
	copy(roles, principal.Roles)

	res := model.LoginResult{
		User:  principal.ID,
		Roles: roles,
	}

	if s.tokens != nil {
		token, err := s.tokens.IssueToken(principal)
		if err != nil {
			return model.LoginResult{}, ErrInternal("failed to issue token", err)
		}
		res.Token = token
	}

	return res, nil
}
