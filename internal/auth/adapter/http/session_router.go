package http

import (
	"errors"
	"time"

	"bistro-boss/internal/auth/usecase"
	"bistro-boss/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// SessionHTTPHandler issues and clears the session cookie
type SessionHTTPHandler struct {
	usecase        usecase.SessionUsecaseInterface
	cookieName     string
	cookiePath     string
	cookieDomain   string
	cookieMaxAge   int
	cookieSecure   bool
	cookieHTTPOnly bool
	cookieSameSite string
	log            logger.Logger
}

// CookieSettings mirrors the cookie part of the auth configuration
type CookieSettings struct {
	Name     string
	Path     string
	Domain   string
	MaxAge   time.Duration
	Secure   bool
	HTTPOnly bool
	SameSite string
}

// NewSessionHTTPHandler creates a new session HTTP handler
func NewSessionHTTPHandler(uc usecase.SessionUsecaseInterface, cookie CookieSettings, log logger.Logger) *SessionHTTPHandler {
	if log == nil {
		log = logger.NewLogger()
	}
	return &SessionHTTPHandler{
		usecase:        uc,
		cookieName:     cookie.Name,
		cookiePath:     cookie.Path,
		cookieDomain:   cookie.Domain,
		cookieMaxAge:   int(cookie.MaxAge.Seconds()),
		cookieSecure:   cookie.Secure,
		cookieHTTPOnly: cookie.HTTPOnly,
		cookieSameSite: cookie.SameSite,
		log:            log.WithComponent("auth.http"),
	}
}

// SetupSessionRoutes registers the session endpoints and their legacy aliases
func (h *SessionHTTPHandler) SetupSessionRoutes(router fiber.Router, middleware *AuthMiddleware) {
	limited := middleware.RateLimiter()

	router.Post("/session", limited, h.IssueSession)
	router.Post("/session/logout", limited, h.Logout)

	router.Post("/jwt", limited, h.IssueSession)
	router.Post("/jwt-logout", limited, h.Logout)
}

// IssueSession handles POST /session
func (h *SessionHTTPHandler) IssueSession(c *fiber.Ctx) error {
	var req usecase.IssueSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	issued, err := h.usecase.IssueSession(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidEmailFormat):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid email",
			})
		case errors.Is(err, usecase.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid email or password",
			})
		default:
			return err
		}
	}

	h.setCookie(c, issued.Token, issued.ExpiresAt)

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// Logout handles POST /session/logout. The cookie is always cleared.
func (h *SessionHTTPHandler) Logout(c *fiber.Ctx) error {
	if err := h.usecase.Logout(c.UserContext(), c.Cookies(h.cookieName)); err != nil {
		h.log.WithContext(c.UserContext()).Errorf("failed to revoke session: %v", err)
	}

	h.clearCookie(c)

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *SessionHTTPHandler) setCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     h.cookiePath,
		Domain:   h.cookieDomain,
		MaxAge:   h.cookieMaxAge,
		Secure:   h.cookieSecure,
		HTTPOnly: h.cookieHTTPOnly,
		SameSite: h.cookieSameSite,
		Expires:  expiresAt,
	})
}

func (h *SessionHTTPHandler) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     h.cookiePath,
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		Secure:   h.cookieSecure,
		HTTPOnly: h.cookieHTTPOnly,
		SameSite: h.cookieSameSite,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
