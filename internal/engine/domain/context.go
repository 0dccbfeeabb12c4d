package domain

import (
	"context"

	"github.com/google/uuid"
)

// AuthContext identifies who is acting and who they originally were. The two
// differ only while an impersonation is in effect. It is carried explicitly on
// the call path; there is no ambient current-principal state anywhere in the
// engine.
type AuthContext struct {
	// OriginalPrincipalID is the authenticated principal.
	OriginalPrincipalID uuid.UUID
	// ActingPrincipalID is the principal whose grants decide the call.
	ActingPrincipalID uuid.UUID
}

// Impersonating reports whether the acting principal differs from the original.
func (a AuthContext) Impersonating() bool {
	return a.OriginalPrincipalID != a.ActingPrincipalID
}

// SelfContext builds the normal, non-impersonating context for a principal.
func SelfContext(principalID uuid.UUID) AuthContext {
	return AuthContext{OriginalPrincipalID: principalID, ActingPrincipalID: principalID}
}

type authContextKey struct{}

// WithAuthContext attaches an AuthContext to a context.Context.
func WithAuthContext(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey{}, ac)
}

// AuthContextFrom extracts the AuthContext from a context.Context.
func AuthContextFrom(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(authContextKey{}).(AuthContext)
	return ac, ok
}
