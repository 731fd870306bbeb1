package http

import (
	"context"
	"errors"
	"net/url"
	"time"

	"bistro-boss/internal/auth/domain/model"
	"bistro-boss/internal/auth/usecase"
	"bistro-boss/internal/shared/contextkeys"
	apperrors "bistro-boss/internal/shared/errors"
	"bistro-boss/internal/shared/logger"
	"bistro-boss/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const (
	msgNoToken      = "Unauthorized: no token provided"
	msgInvalidToken = "Forbidden: invalid token"
	msgForbidden    = "Forbidden access"
	msgNotSelf      = "Forbidden: unauthorized access"

	localsIdentity = "identity"
	localsEmail    = "user_email"
)

// AuthMiddleware provides the token verifier and the role gates for Fiber
type AuthMiddleware struct {
	usecase    usecase.SessionUsecaseInterface
	cookieName string
	rateLimit  int
	log        logger.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(uc usecase.SessionUsecaseInterface, cookieName string, rateLimit int, log logger.Logger) *AuthMiddleware {
	if log == nil {
		log = logger.NewLogger()
	}
	if rateLimit <= 0 {
		rateLimit = 10
	}
	return &AuthMiddleware{
		usecase:    uc,
		cookieName: cookieName,
		rateLimit:  rateLimit,
		log:        log.WithComponent("auth.middleware"),
	}
}

// SecurityHeaders adds security headers
func (m *AuthMiddleware) SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}

// RateLimiter limits the session endpoints per client address. Behind a proxy the
// address comes from fiber.Config.ProxyHeader, restricted to trusted proxies.
func (m *AuthMiddleware) RateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               m.rateLimit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests. Please try again later.",
			})
		},
	})
}

// RequestID middleware
func (m *AuthMiddleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		ContextKey: string(contextkeys.RequestIDKey),
	})
}

// RequestContext copies the request id set by RequestID into the user context so
// context-aware loggers pick it up.
func (m *AuthMiddleware) RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid, ok := c.Locals(string(contextkeys.RequestIDKey)).(string); ok && rid != "" {
			c.SetUserContext(utils.WithRequestID(c.UserContext(), rid))
		}
		return c.Next()
	}
}

// Protect verifies the session cookie. Only the cookie is consulted: bearer headers and
// query parameters are ignored.
func (m *AuthMiddleware) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(m.cookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": msgNoToken,
			})
		}

		identity, err := m.usecase.ValidateToken(c.UserContext(), token)
		if err != nil {
			m.log.WithContext(c.UserContext()).Debugf("token rejected: %v", err)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": msgInvalidToken,
			})
		}

		ctx := utils.WithUserEmail(c.UserContext(), identity.Email)
		ctx = utils.WithTokenID(ctx, identity.TokenID)
		if identity.Name != "" {
			ctx = utils.WithUserName(ctx, identity.Name)
		}
		ctx = context.WithValue(ctx, contextkeys.IdentityKey, identity)
		c.SetUserContext(ctx)
		c.Locals(localsIdentity, identity)
		c.Locals(localsEmail, identity.Email)

		return c.Next()
	}
}

// RequireAdmin must run after Protect. The caller's role is read from the user store
// on every request.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return m.gate(m.usecase.AuthorizeAdmin)
}

// RequireAdminOrBootstrap passes admins, and any verified caller while no admin exists.
func (m *AuthMiddleware) RequireAdminOrBootstrap() fiber.Handler {
	return m.gate(m.usecase.AuthorizePromotion)
}

func (m *AuthMiddleware) gate(check func(ctx context.Context, email string) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := GetUserEmail(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": msgNoToken,
			})
		}

		if err := check(c.UserContext(), email); err != nil {
			if errors.Is(err, usecase.ErrNotAdmin) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"message": msgForbidden,
				})
			}
			return apperrors.NewInfrastructureError("failed to verify role").WithCause(err).WithComponent("auth")
		}
		return c.Next()
	}
}

// RequireSelf rejects requests whose path parameter is not the caller's own email.
func (m *AuthMiddleware) RequireSelf(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := GetUserEmail(c)
		target, err := url.PathUnescape(c.Params(param))
		if !ok || err != nil || target != email {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": msgNotSelf,
			})
		}
		return c.Next()
	}
}

// GetUserEmail returns the decoded email set by Protect
func GetUserEmail(c *fiber.Ctx) (string, bool) {
	email, ok := c.Locals(localsEmail).(string)
	return email, ok && email != ""
}

// GetIdentity returns the decoded identity set by Protect
func GetIdentity(c *fiber.Ctx) (*model.DecodedIdentity, bool) {
	identity, ok := c.Locals(localsIdentity).(*model.DecodedIdentity)
	return identity, ok
}
