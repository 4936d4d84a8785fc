package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"user-directory-service/internal/model"
)

// ErrInvalidCredentials означает неверный логин, пароль или токен.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator проверяет заголовок Authorization.
type Authenticator struct {
	accounts map[string]Account
	tokens   *Tokens
}

// NewAuthenticator создаёт шлюз по списку учёток. Повторяющийся логин считается ошибкой.
func NewAuthenticator(accounts []Account, tokens *Tokens) (*Authenticator, error) {
	byLogin := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		if _, dup := byLogin[a.Login]; dup {
			return nil, fmt.Errorf("duplicate account login %q", a.Login)
		}
		byLogin[a.Login] = a
	}
	if tokens == nil {
		tokens = NewTokens(TokenConfig{})
	}
	return &Authenticator{accounts: byLogin, tokens: tokens}, nil
}

// Authenticate возвращает принципала запроса. Без заголовка Authorization возвращается анонимный
// принципал без ошибки, при неверных данных ErrInvalidCredentials.
func (a *Authenticator) Authenticate(r *http.Request) (model.Principal, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return model.Principal{}, nil
	}

	if login, password, ok := r.BasicAuth(); ok {
		acc, found := a.accounts[login]
		if !found {
			checkPassword(dummyHash(), password)
			return model.Principal{}, ErrInvalidCredentials
		}
		if !checkPassword(acc.PasswordHash, password) {
			return model.Principal{}, ErrInvalidCredentials
		}
		return acc.Principal(), nil
	}

	scheme, raw, found := strings.Cut(header, " ")
	if found && strings.EqualFold(scheme, "Bearer") {
		p, err := a.tokens.ParseToken(strings.TrimSpace(raw))
		if err != nil {
			return model.Principal{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return p, nil
	}

	return model.Principal{}, ErrInvalidCredentials
}

// IssueToken выпускает токен для принципала, см. Tokens.IssueToken.
func (a *Authenticator) IssueToken(principal model.Principal) (string, error) {
	return a.tokens.IssueToken(principal)
}
