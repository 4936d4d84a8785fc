package auth

import (
	"context"

	"user-directory-service/internal/model"
)

type principalKey struct{}

// WithPrincipal кладёт принципала в контекст.
func WithPrincipal(ctx context.Context, p model.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext достаёт принципала; для анонимного запроса он пустой.
func PrincipalFromContext(ctx context.Context) model.Principal {
	p, _ := ctx.Value(principalKey{}).(model.Principal)
	return p
}
