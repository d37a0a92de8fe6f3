package middleware

import (
	"context"
	"strconv"
	"strings"

	"inkwell/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// TokenRevoker reports whether a token ID (jti) has been revoked by logout.
type TokenRevoker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

var revoker TokenRevoker

// InitMiddleware initializes authentication middleware with the given config
// and an optional token revocation store.
func InitMiddleware(c *config.Config, r TokenRevoker) {
	cfg = c
	revoker = r
}

// parseBearerToken validates the token string and returns the user ID from
// the "sub" claim plus the token's jti.
func parseBearerToken(tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token structure - missing subject")
	}
	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, "", fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	jti, _ := claims["jti"].(string)
	return uint(userID), jti, nil
}

func bearerFromHeader(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	tokenString, ok := bearerFromHeader(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	userID, jti, err := parseBearerToken(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if revoker != nil && jti != "" {
		revoked, revErr := revoker.IsRevoked(c.Context(), jti)
		if revErr == nil && revoked {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token has been revoked",
			})
		}
	}

	c.Locals("userID", userID)
	c.Locals("tokenJTI", jti)

	return c.Next()
}

// OptionalAuth extracts the user ID when a valid bearer token is present but
// never rejects the request. Read-only endpoints use it.
func OptionalAuth(c *fiber.Ctx) error {
	if tokenString, ok := bearerFromHeader(c); ok {
		if userID, jti, err := parseBearerToken(tokenString); err == nil {
			c.Locals("userID", userID)
			c.Locals("tokenJTI", jti)
		}
	}
	return c.Next()
}
