package auth

import (
	"github.com/gofiber/fiber/v2"
)

const (
	localToken  = "auth_token"
	localPolicy = "auth_policy"
)

// Authenticate resolves a token using the policy's sources and stores it.
// It never rejects; pair it with RequireToken on gated routes.
func Authenticate(policy Policy) fiber.Handler {
	resolver := policy.Resolver()
	return func(c *fiber.Ctx) error {
		c.Locals(localPolicy, policy.Resource)
		if token, ok := resolver.Resolve(c.Get(fiber.HeaderCookie), c.Get(fiber.HeaderAuthorization)); ok {
			c.Locals(localToken, token)
		}
		return c.Next()
	}
}

// RequireToken rejects the request with 401 when Authenticate found no token
func RequireToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := GetToken(c); !ok {
			err := ErrAuthenticationRequired()
			if resource, ok := c.Locals(localPolicy).(string); ok && resource != "" {
				err = err.WithDetail("resource", resource)
			}
			return err
		}
		return c.Next()
	}
}

// GetToken returns the token resolved for this request, if any
func GetToken(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals(localToken).(string)
	return token, ok && token != ""
}
