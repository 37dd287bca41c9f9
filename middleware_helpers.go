package auth

import (
	"context"

	"github.com/goliatone/go-credential/middleware/jwtware"
)

// ContextEnricherAdapter adapts jwtware.AuthClaims to auth.AuthClaims and
// stores them in the standard context for downstream guard usage.
func ContextEnricherAdapter(c context.Context, claims jwtware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return c
	}

	return WithClaimsContext(c, authClaims)
}
