package auth

import (
	"github.com/gofiber/fiber/v2"
)

// GetFiberSession extracts the session from a raw fiber context, for apps
// mounting the middleware outside go-router's adapter.
func GetFiberSession(c *fiber.Ctx, key string) (Session, error) {
	raw := c.Locals(key)
	if raw == nil {
		return nil, ErrUnableToFindSession
	}

	claims, ok := raw.(AuthClaims)
	if !ok {
		return nil, ErrUnableToMapClaims
	}

	return sessionFromAuthClaims(claims)
}
