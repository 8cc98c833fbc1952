package authapi

import (
	"time"

	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/gofiber/fiber/v2"
)

const sessionTTL = 24 * time.Hour

// Handlers provides login, logout and session handlers
type Handlers struct {
	loginService *LoginService
	secure       bool
}

// NewHandlers creates auth handlers. secure marks the session cookie
// Secure, which production requires.
func NewHandlers(loginService *LoginService, secure bool) *Handlers {
	return &Handlers{
		loginService: loginService,
		secure:       secure,
	}
}

// Login exchanges credentials for a session cookie
// POST /api/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	body, err := proxy.JSONBody(c)
	if err != nil {
		return auth.ErrInvalidRequest().WithDetail("body", "must be valid JSON")
	}

	result, err := h.loginService.Login(proxy.RequestContext(c), body)
	if err != nil {
		return err
	}

	if result.Succeeded() {
		c.Cookie(&fiber.Cookie{
			Name:     auth.CookieToken,
			Value:    result.Token,
			Path:     "/",
			MaxAge:   int(sessionTTL.Seconds()),
			Expires:  time.Now().Add(sessionTTL),
			HTTPOnly: true,
			Secure:   h.secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	return proxy.Respond(c, result.Result)
}

// Logout clears the session cookies
// POST /api/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	for _, name := range []string{auth.CookieToken, auth.CookieAccessToken} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   h.secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Session reports what the current token says about its holder
// GET /api/session
func (h *Handlers) Session(c *fiber.Ctx) error {
	token, _ := auth.GetToken(c)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    auth.InspectToken(token, time.Now()),
	})
}

// RegisterRoutes registers the auth routes
func RegisterRoutes(app fiber.Router, h *Handlers) {
	api := app.Group("/api")

	api.Post("/login", h.Login)
	api.Post("/logout", h.Logout)
	api.Get("/session", auth.Authenticate(auth.DefaultPolicy), auth.RequireToken(), h.Session)
}
