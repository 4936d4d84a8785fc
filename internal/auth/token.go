package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"user-directory-service/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// TokenConfig задаёт параметры выпуска и проверки токенов HS256.
type TokenConfig struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

type claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Tokens выпускает и проверяет токены доступа.
type Tokens struct {
	cfg TokenConfig
}

// NewTokens создаёт выпускающего токены. Пустой секрет отключает токены.
func NewTokens(cfg TokenConfig) *Tokens {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &Tokens{cfg: cfg}
}

// Enabled сообщает, настроен ли секрет.
func (t *Tokens) Enabled() bool {
	return len(t.cfg.Secret) > 0
}

// IssueToken подписывает токен для принципала. Без секрета возвращает пустую строку.
func (t *Tokens) IssueToken(principal model.Principal) (string, error) {
	if !t.Enabled() {
		return "", nil
	}

	now := t.cfg.Now()
	c := claims{
		Roles: principal.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			Issuer:    t.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.TTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись, издателя и срок действия и возвращает принципала.
func (t *Tokens) ParseToken(raw string) (model.Principal, error) {
	if !t.Enabled() {
		return model.Principal{}, ErrInvalidToken
	}

	var parsed claims
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.cfg.Now),
	}
	if t.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.cfg.Issuer))
	}

	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return t.cfg.Secret, nil
	}, opts...)
	if err != nil {
		return model.Principal{}, mapJWTError(err)
	}
	if parsed.Subject == "" {
		return model.Principal{}, ErrInvalidToken
	}

	roles := parsed.Roles
	if roles == nil {
		roles = make([]string, 0)
	}
	return model.Principal{ID: parsed.Subject, Roles: roles}, nil
}

// mapJWTError переводит ошибки библиотеки jwt в ошибки пакета.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrExpiredToken
	}
	return fmt.Errorf("%w: %v", ErrInvalidToken, err)
}
