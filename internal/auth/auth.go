package auth

import (
	"fmt"

	authhttp "bistro-boss/internal/auth/adapter/http"
	"bistro-boss/internal/auth/adapter/security"
	"bistro-boss/internal/auth/config"
	"bistro-boss/internal/auth/domain/repository"
	"bistro-boss/internal/auth/usecase"
	"bistro-boss/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// AuthModule represents the complete authentication module
type AuthModule struct {
	tokenSvc   repository.TokenService
	usecase    usecase.SessionUsecaseInterface
	handler    *authhttp.SessionHTTPHandler
	middleware *authhttp.AuthMiddleware
	config     *config.Config
}

// NewAuthModule creates a new authentication module instance. The account
// repository is owned by the resource module; revocations may be nil.
func NewAuthModule(
	accounts repository.AccountRepository,
	revocations repository.RevocationStore,
	cfg *config.Config,
	log logger.Logger,
) (*AuthModule, error) {
	if accounts == nil {
		return nil, fmt.Errorf("account repository cannot be nil")
	}
	if log == nil {
		log = logger.NewLogger()
	}

	tokenSvc, err := security.NewJWTokenService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	sessionUsecase := usecase.NewSessionUsecase(accounts, tokenSvc, revocations, log)
	sessionUsecase.RequireAdminPassword(cfg.RequireAdminPassword)

	handler := authhttp.NewSessionHTTPHandler(sessionUsecase, authhttp.CookieSettings{
		Name:     cfg.CookieName,
		Path:     cfg.CookiePath,
		Domain:   cfg.CookieDomain,
		MaxAge:   cfg.AccessTokenTTL,
		Secure:   cfg.CookieSecure,
		HTTPOnly: cfg.CookieHTTPOnly,
		SameSite: cfg.CookieSameSite,
	}, log)

	return &AuthModule{
		tokenSvc:   tokenSvc,
		usecase:    sessionUsecase,
		handler:    handler,
		middleware: authhttp.NewAuthMiddleware(sessionUsecase, cfg.CookieName, cfg.SessionRateLimit, log),
		config:     cfg,
	}, nil
}

// RegisterRoutes registers the session routes with the provided router
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	am.handler.SetupSessionRoutes(router, am.middleware)
}

// GetUsecase returns the session usecase for external access
func (am *AuthModule) GetUsecase() usecase.SessionUsecaseInterface {
	return am.usecase
}

// GetMiddleware returns the auth middleware
func (am *AuthModule) GetMiddleware() *authhttp.AuthMiddleware {
	return am.middleware
}
