package middleware

import (
	"strings"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const principalKey = "principal"

// AuthRequired is a Fiber middleware to check for a valid JWT token. The
// token is read from the Authorization header or, failing that, from the
// cookie named cookieName.
func AuthRequired(authService *services.AuthService, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, msg := extractToken(c, cookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": msg,
				"status":  false,
			})
		}

		principal, err := authService.Authenticate(tokenString)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("JWT validation failed")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
				"status":  false,
			})
		}

		// Store the caller in Fiber context for subsequent handlers
		c.Locals(principalKey, *principal)
		c.Locals("user_id", principal.UserID)
		c.Locals("username", principal.Username)
		c.Locals("email", principal.Email)
		c.Locals("role", principal.Role)

		return c.Next()
	}
}

func extractToken(c *fiber.Ctx, cookieName string) (string, string) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return "", "Authorization header format must be 'Bearer <token>'"
		}
		return parts[1], ""
	}
	if token := c.Cookies(cookieName); token != "" {
		return token, ""
	}
	return "", "Authorization header is required"
}

// RoleRequired allows the request through only when the caller holds one of
// roles. It must run after AuthRequired.
func RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := CurrentUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
				"status":  false,
			})
		}
		for _, role := range roles {
			if principal.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Access denied",
			"status":  false,
		})
	}
}

// CurrentUser returns the caller stored by AuthRequired.
func CurrentUser(c *fiber.Ctx) (services.Principal, bool) {
	principal, ok := c.Locals(principalKey).(services.Principal)
	return principal, ok
}
