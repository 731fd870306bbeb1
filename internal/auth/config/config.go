package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the auth module.
type Config struct {
	// JWT Configuration
	JWTSecretKey   string        `env:"ACCESS_TOKEN_SECRET,required"`
	JWTIssuer      string        `env:"JWT_ISSUER" envDefault:"bistro-boss-api"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"480h"` // 20 days

	// Cookie Configuration
	CookieName     string `env:"COOKIE_NAME" envDefault:"token"`
	CookiePath     string `env:"COOKIE_PATH" envDefault:"/"`
	CookieDomain   string `env:"COOKIE_DOMAIN" envDefault:""`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"false"` // true behind HTTPS
	CookieHTTPOnly bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite string `env:"COOKIE_SAME_SITE" envDefault:"Strict"` // "Lax", "Strict", "None"

	// Server-side revocation on logout. Off by default: logout only clears the cookie.
	RevocationEnabled bool   `env:"TOKEN_REVOCATION_ENABLED" envDefault:"false"`
	RedisAddr         string `env:"REDIS_ADDR" envDefault:""`
	RedisPassword     string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB           int    `env:"REDIS_DB" envDefault:"0"`
	RedisTLS          bool   `env:"REDIS_TLS" envDefault:"false"`
	RevocationPrefix  string `env:"REVOCATION_KEY_PREFIX" envDefault:"bistro:revoked:"`

	// Refuse sessions for admin accounts that carry no password hash.
	RequireAdminPassword bool `env:"REQUIRE_ADMIN_PASSWORD" envDefault:"false"`

	// Requests per minute per client on the session endpoints.
	SessionRateLimit int `env:"SESSION_RATE_LIMIT" envDefault:"10"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load auth configuration from environment: " + err.Error() +
			". Please ensure all required environment variables are set.")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints and normalizes CookieSameSite.
func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return errors.New("access_token_secret is required")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("access_token_ttl must be positive")
	}
	if c.CookieName == "" {
		return errors.New("cookie_name is required")
	}

	sameSite := strings.ToLower(c.CookieSameSite)
	switch sameSite {
	case "lax", "strict", "none":
		c.CookieSameSite = strings.ToUpper(sameSite[:1]) + sameSite[1:]
	default:
		return errors.New("cookie_same_site must be one of 'Lax', 'Strict', or 'None'")
	}
	if c.CookieSameSite == "None" && !c.CookieSecure {
		return errors.New("cookie_same_site=None requires cookie_secure=true")
	}

	if c.RevocationEnabled && c.RedisAddr == "" {
		return errors.New("token_revocation_enabled requires redis_addr")
	}
	if c.SessionRateLimit <= 0 {
		c.SessionRateLimit = 10
	}
	return nil
}
