package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/abhinandan-jain01/nearmart/responses"
	"github.com/abhinandan-jain01/nearmart/token"
)

// Auth extracts and verifies the bearer token, saving the user ID and role to
// Locals for downstream handlers.
func Auth(tokens *token.Maker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return responses.FailStatus(c, fiber.StatusUnauthorized, "no auth token, access denied")
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			return responses.FailStatus(c, fiber.StatusUnauthorized, "invalid authorization header format")
		}

		claims, err := tokens.Verify(bearerToken[1])
		if err != nil {
			return responses.FailStatus(c, fiber.StatusUnauthorized, "token verification failed, access denied")
		}

		c.Locals("userId", claims.UserID)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// RequireRoles guards a route family by role claim. Must run after Auth.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return responses.FailStatus(c, fiber.StatusForbidden, "insufficient permissions")
	}
}
