package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"salesdash/models"
)

// TokenCookie is set by the login handler for browser sessions.
const TokenCookie = "salesdash_token"

var errMissingToken = errors.New("missing or malformed JWT")

// tokenFromRequest reads the bearer token, falling back to the session cookie.
func tokenFromRequest(c *fiber.Ctx) (string, error) {
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", errMissingToken
		}
		return parts[1], nil
	}
	if cookie := c.Cookies(TokenCookie); cookie != "" {
		return cookie, nil
	}
	return "", errMissingToken
}

// ParseToken validates an HS256 token signed with secret.
func ParseToken(tokenStr, secret string) (*models.JwtClaims, error) {
	claims := &models.JwtClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func authenticate(c *fiber.Ctx, secret string) error {
	tokenStr, err := tokenFromRequest(c)
	if err != nil {
		return err
	}
	claims, err := ParseToken(tokenStr, secret)
	if err != nil {
		return err
	}
	c.Locals("subject", claims.Subject)
	c.Locals("userRole", claims.Role)
	return nil
}

// JWTMiddleware validates the request token for API routes.
// An empty secret disables the check.
func JWTMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}
		if err := authenticate(c, secret); err != nil {
			if errors.Is(err, errMissingToken) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Missing or malformed JWT"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid or expired JWT"})
		}
		return c.Next()
	}
}

// PageAuth is JWTMiddleware for HTML pages: it redirects to loginPath instead
// of answering 401.
func PageAuth(secret, loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}
		if err := authenticate(c, secret); err != nil {
			return c.Redirect(loginPath, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// ViewerRequired checks that the token carries a role allowed to read the dashboard.
func ViewerRequired(c *fiber.Ctx) error {
	role, ok := c.Locals("userRole").(string)
	if !ok {
		// No token was checked, access control is off.
		return c.Next()
	}
	if role != models.RoleViewer && role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Dashboard access required"})
	}
	return c.Next()
}
