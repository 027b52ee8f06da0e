package shared

import "context"

// Principal is the authenticated identity for the duration of one request,
// reconstructed from a validated bearer token. It is never persisted.
type Principal struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Admin     bool
}

type principalContextKey struct{}

// ContextWithPrincipal stores the principal in context.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal from context, nil when the
// request is unauthenticated.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey{}).(*Principal)
	return p
}
