package handlers

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"salesdash/middleware"
	"salesdash/models"
)

var loginTemplate = template.Must(template.ParseFS(templateFS, "templates/login.html"))

// HandleLoginPage serves the password form used by browsers.
// GET /login
func (h *Handlers) HandleLoginPage(c *fiber.Ctx) error {
	if !h.cfg.AuthEnabled() {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	var buf bytes.Buffer
	if err := loginTemplate.Execute(&buf, struct{ Failed bool }{Failed: c.Query("error") != ""}); err != nil {
		h.logger.Error("login template failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to render login page")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// HandleLogin checks the dashboard password and returns a JWT. Form posts
// from the login page get the token as a cookie and are sent to the dashboard.
// POST /api/v1/auth/login
func (h *Handlers) HandleLogin(c *fiber.Ctx) error {
	if !h.cfg.AuthEnabled() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Access control is not enabled"})
	}
	fromForm := strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationForm)

	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.DashboardPasswordHash), []byte(req.Password)); err != nil {
		h.logger.Warn("dashboard login failed", "ip", c.IP())
		if fromForm {
			return c.Redirect("/login?error=1", fiber.StatusSeeOther)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid credentials"})
	}

	token, expiresAt, err := h.createJWT(models.RoleViewer)
	if err != nil {
		h.logger.Error("could not sign token", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not sign token"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	if fromForm {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.JSON(fiber.Map{"success": true, "data": models.LoginResponse{Token: token, ExpiresAt: expiresAt.Unix()}})
}

func (h *Handlers) createJWT(role string) (string, time.Time, error) {
	now := h.now()
	expiresAt := now.Add(h.cfg.TokenTTL)
	claims := models.JwtClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "dashboard",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	return signed, expiresAt, err
}
