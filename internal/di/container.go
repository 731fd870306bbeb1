package di

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bistro-boss/internal/auth"
	authredis "bistro-boss/internal/auth/adapter/persistence/redis"
	authconfig "bistro-boss/internal/auth/config"
	authrepo "bistro-boss/internal/auth/domain/repository"
	"bistro-boss/internal/bistro"
	"bistro-boss/internal/bistro/adapter/payment/stripe"
	"bistro-boss/internal/bistro/adapter/persistence/memory"
	"bistro-boss/internal/bistro/adapter/persistence/mongodb"
	"bistro-boss/internal/bistro/adapter/storage/minio"
	"bistro-boss/internal/bistro/config"
	"bistro-boss/internal/bistro/domain/repository"
	"bistro-boss/internal/bistro/usecase"
	"bistro-boss/internal/shared/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 30 * time.Second

type closer struct {
	name  string
	close func(ctx context.Context) error
}

// Container owns the process-wide clients and the modules built on them
type Container struct {
	mu      sync.RWMutex
	closers []closer
	// Module instances
	AuthModule   *auth.AuthModule
	BistroModule *bistro.BistroModule
	// Connections
	MongoClient *mongo.Client
	Store       repository.Store
	Revocations *authredis.RevocationStore
	// Configuration
	BistroConfig *config.Config
	AuthConfig   *authconfig.Config
	// Logger
	Logger logger.Logger
}

// NewContainer creates an empty container
func NewContainer(log logger.Logger) *Container {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Container{Logger: log.WithComponent("di")}
}

func (c *Container) onClose(name string, fn func(ctx context.Context) error) {
	c.closers = append(c.closers, closer{name: name, close: fn})
}

// InitializeStore connects the document store selected by cfg
func (c *Container) InitializeStore(ctx context.Context, cfg *config.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.BistroConfig = cfg

	if cfg.StoreBackend == config.StoreMemory {
		c.Store = memory.NewStore()
		c.Logger.Warn("Using the in-memory store, data is lost on restart")
		return nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.MongoConnectionURI()).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	c.onClose("mongodb", client.Disconnect)
	c.MongoClient = client

	store, err := mongodb.NewMongoStore(client, client.Database(cfg.DatabaseName), cfg.UseTransactions, c.Logger)
	if err != nil {
		return err
	}
	if err := store.Ping(connectCtx); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	if err := store.EnsureIndexes(connectCtx); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	c.Store = store
	c.Logger.Infof("MongoDB connection established (database %s)", cfg.DatabaseName)
	return nil
}

// InitializeBistro builds the resource module and its optional payment and image adapters
func (c *Container) InitializeBistro(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Store == nil || c.BistroConfig == nil {
		return fmt.Errorf("store must be initialized before the bistro module")
	}
	cfg := c.BistroConfig

	opts := usecase.Options{Currency: cfg.PaymentCurrency, MaxImageBytes: cfg.MaxImageBytes}

	if cfg.PaymentsEnabled() {
		gateway, err := stripe.NewGateway(cfg.StripeSecretKey)
		if err != nil {
			return fmt.Errorf("failed to create payment gateway: %w", err)
		}
		opts.Payments = gateway
	} else {
		c.Logger.Warn("STRIPE_SECRET_KEY not set, payment intents are disabled")
	}

	if cfg.ImagesEnabled() {
		minioOpts := minio.Options{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MinioPublicURL,
		}
		client, err := minio.NewClient(minioOpts)
		if err != nil {
			return fmt.Errorf("failed to create MinIO client: %w", err)
		}
		images, err := minio.NewImageStore(ctx, client, minioOpts)
		if err != nil {
			return fmt.Errorf("failed to prepare image bucket: %w", err)
		}
		opts.Images = images
	}

	module, err := bistro.NewBistroModule(c.Store, opts, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create bistro module: %w", err)
	}
	c.BistroModule = module
	return nil
}

// InitializeAuth builds the auth module on top of the bistro users collection
func (c *Container) InitializeAuth(ctx context.Context, authConfig *authconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.BistroModule == nil {
		return fmt.Errorf("bistro module must be initialized before the auth module")
	}
	c.AuthConfig = authConfig

	var revocations authrepo.RevocationStore
	if authConfig.RevocationEnabled {
		store := authredis.NewRevocationStore(authredis.NewRedisClient(authConfig), authConfig.RevocationPrefix)
		c.onClose("redis", func(context.Context) error { return store.Close() })
		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("failed to ping Redis: %w", err)
		}
		c.Revocations = store
		revocations = store
		c.Logger.Info("Token revocation enabled")
	}

	authModule, err := auth.NewAuthModule(c.BistroModule.Accounts(), revocations, authConfig, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}
	c.AuthModule = authModule
	return nil
}

// Initialize runs the store, bistro and auth steps in order. On failure every
// connection opened so far is released before the error is returned.
func (c *Container) Initialize(ctx context.Context, cfg *config.Config, authConfig *authconfig.Config) error {
	err := c.InitializeStore(ctx, cfg)
	if err == nil {
		err = c.InitializeBistro(ctx)
	}
	if err == nil {
		err = c.InitializeAuth(ctx, authConfig)
	}
	if err != nil {
		if cleanupErr := c.Cleanup(ctx); cleanupErr != nil {
			c.Logger.Warnf("cleanup after failed initialization: %v", cleanupErr)
		}
		return err
	}
	return nil
}

// GetAuthModule returns the auth module instance
func (c *Container) GetAuthModule() *auth.AuthModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AuthModule
}

// GetBistroModule returns the bistro module instance
func (c *Container) GetBistroModule() *bistro.BistroModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.BistroModule
}

// HealthCheck pings the store and, when enabled, the revocation set
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Store != nil {
		if err := c.Store.Ping(ctx); err != nil {
			return fmt.Errorf("store health check failed: %w", err)
		}
	}
	if c.Revocations != nil {
		if err := c.Revocations.Ping(ctx); err != nil {
			return fmt.Errorf("redis health check failed: %w", err)
		}
	}
	return nil
}

// Cleanup releases connections in reverse order of creation
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s: %w", c.closers[i].name, err))
		}
	}
	c.closers = nil
	c.AuthModule = nil
	c.BistroModule = nil
	c.Store = nil
	c.Revocations = nil
	c.MongoClient = nil

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}
	return nil
}

// Close gracefully shuts down all services in the container with timeout
func (c *Container) Close() error {
	c.Logger.Info("Closing DI container resources...")

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := c.Cleanup(ctx); err != nil {
		c.Logger.Warnf("cleanup errors occurred: %v", err)
		return err
	}

	c.Logger.Info("DI container resources closed")
	return nil
}
