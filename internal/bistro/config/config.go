package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v6"
)

const (
	StoreMongoDB = "mongodb"
	StoreMemory  = "memory"
)

// Config holds all configuration for the bistro module and its server.
type Config struct {
	// Server
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"5000"`
	// ProxyHeader names the header carrying the client address when behind a proxy,
	// honoured only for requests from TrustedProxies.
	ProxyHeader    string   `env:"PROXY_HEADER" envDefault:""`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// Document store. MONGODB_URI wins over the Atlas credentials.
	StoreBackend    string `env:"STORE_BACKEND" envDefault:"mongodb"`
	MongoURI        string `env:"MONGODB_URI" envDefault:""`
	DBUser          string `env:"DB_USER" envDefault:""`
	DBPass          string `env:"DB_PASS" envDefault:""`
	DBCluster       string `env:"DB_CLUSTER" envDefault:"cluster0.vpupb.mongodb.net"`
	DatabaseName    string `env:"DATABASE_NAME" envDefault:"bistroDB"`
	UseTransactions bool   `env:"MONGODB_TRANSACTIONS" envDefault:"false"` // requires a replica set

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// Payment provider. Payment intents are disabled when the key is empty.
	StripeSecretKey string `env:"STRIPE_SECRET_KEY" envDefault:""`
	PaymentCurrency string `env:"PAYMENT_CURRENCY" envDefault:"usd"`

	// Menu image storage. Uploads are disabled when the endpoint is empty.
	MinioEndpoint  string `env:"MINIO_ENDPOINT" envDefault:""`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY" envDefault:""`
	MinioSecretKey string `env:"MINIO_SECRET_KEY" envDefault:""`
	MinioBucket    string `env:"MINIO_BUCKET" envDefault:"bistro-menu"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	MinioPublicURL string `env:"MINIO_PUBLIC_URL" envDefault:""`
	MaxImageBytes  int64  `env:"MAX_IMAGE_BYTES" envDefault:"5242880"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load bistro configuration from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the combination of settings.
func (c *Config) Validate() error {
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	switch c.StoreBackend {
	case StoreMongoDB:
		if c.MongoURI == "" && (c.DBUser == "" || c.DBPass == "") {
			return errors.New("either MONGODB_URI or DB_USER and DB_PASS must be set")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.DatabaseName == "" {
		return errors.New("DATABASE_NAME cannot be empty")
	}
	if c.Port == "" {
		return errors.New("PORT cannot be empty")
	}
	if c.PaymentCurrency == "" {
		return errors.New("PAYMENT_CURRENCY cannot be empty")
	}
	c.PaymentCurrency = strings.ToLower(c.PaymentCurrency)
	if c.MinioEndpoint != "" && (c.MinioAccessKey == "" || c.MinioSecretKey == "" || c.MinioBucket == "") {
		return errors.New("MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_BUCKET are required when MINIO_ENDPOINT is set")
	}
	if c.MaxImageBytes <= 0 {
		return errors.New("MAX_IMAGE_BYTES must be positive")
	}
	return nil
}

// MongoConnectionURI returns MONGODB_URI, or an Atlas SRV URI built from the credentials.
func (c *Config) MongoConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBCluster,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority&appName=Cluster0",
	}
	return u.String()
}

// PaymentsEnabled reports whether a payment provider key is configured.
func (c *Config) PaymentsEnabled() bool { return c.StripeSecretKey != "" }

// ImagesEnabled reports whether object storage is configured.
func (c *Config) ImagesEnabled() bool { return c.MinioEndpoint != "" }

// Addr is the listen address.
func (c *Config) Addr() string { return c.Host + ":" + c.Port }
