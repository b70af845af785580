package middleware

import (
	"crypto/subtle"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
	"github.com/localnerve/smart-reviewer/internal/services"
	"github.com/localnerve/smart-reviewer/internal/types"
)

// SessionCookie is the cookie carrying the business session token
const SessionCookie = "businessToken"

// principalKey is the fiber.Locals key holding the authenticated *services.Principal
const principalKey = "business"

// AuthBusiness admits requests carrying a valid session cookie and stores the
// resolved principal for the handler. Every failure reads the same.
func AuthBusiness(tm *services.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return invalidCredentials("auth.business")
		}

		principal, err := tm.Verify(token)
		if err != nil {
			return invalidCredentials("auth.business")
		}

		c.Locals(principalKey, principal)

		return c.Next()
	}
}

// Principal returns the principal stored by AuthBusiness, or nil
func Principal(c *fiber.Ctx) *services.Principal {
	p, _ := c.Locals(principalKey).(*services.Principal)
	return p
}

// AdminKeyAuth guards the admin API with "Authorization: Bearer <key>"
func AdminKeyAuth(adminKey string) fiber.Handler {
	return keyauth.New(keyauth.Config{
		KeyLookup:  "header:" + fiber.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(_ *fiber.Ctx, key string) (bool, error) {
			if adminKey != "" && subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) == 1 {
				return true, nil
			}
			return false, keyauth.ErrMissingOrMalformedAPIKey
		},
		ErrorHandler: func(_ *fiber.Ctx, err error) error {
			if errors.Is(err, keyauth.ErrMissingOrMalformedAPIKey) {
				return invalidCredentials("auth.admin")
			}
			return err
		},
	})
}

func invalidCredentials(errorType string) error {
	return &types.CustomError{
		Code:    fiber.StatusUnauthorized,
		Message: "Invalid credentials",
		Type:    errorType,
	}
}
