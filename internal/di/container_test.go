package di

import (
	"context"
	"testing"

	"bistro-boss/internal/auth/testutil"
	"bistro-boss/internal/bistro/config"
	"bistro-boss/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		StoreBackend:    config.StoreMemory,
		DatabaseName:    "bistroDB",
		PaymentCurrency: "usd",
		MaxImageBytes:   1 << 20,
	}
}

func TestContainerWithMemoryStore(t *testing.T) {
	ctx := context.Background()
	c := NewContainer(logger.NewLoggerWithConfig("error", "text"))

	require.NoError(t, c.InitializeStore(ctx, memoryConfig()))
	require.NoError(t, c.InitializeBistro(ctx))
	require.NoError(t, c.InitializeAuth(ctx, testutil.TestConfig()))

	assert.NotNil(t, c.GetBistroModule())
	assert.NotNil(t, c.GetAuthModule())
	assert.Nil(t, c.MongoClient)
	assert.Nil(t, c.Revocations)
	assert.NoError(t, c.HealthCheck(ctx))

	require.NoError(t, c.Close())
	assert.Nil(t, c.GetAuthModule())
}

func TestContainerInitializationOrder(t *testing.T) {
	ctx := context.Background()
	c := NewContainer(nil)

	assert.Error(t, c.InitializeBistro(ctx))
	assert.Error(t, c.InitializeAuth(ctx, testutil.TestConfig()))
}

func TestInitializeReleasesConnectionsOnFailure(t *testing.T) {
	ctx := context.Background()
	c := NewContainer(logger.NewLoggerWithConfig("error", "text"))

	authCfg := testutil.TestConfig()
	authCfg.RevocationEnabled = true
	authCfg.RedisAddr = "127.0.0.1:1"

	err := c.Initialize(ctx, memoryConfig(), authCfg)

	require.Error(t, err)
	assert.Nil(t, c.Store)
	assert.Nil(t, c.Revocations)
	assert.Nil(t, c.GetBistroModule())
	assert.Empty(t, c.closers)
}

func TestInitialize(t *testing.T) {
	c := NewContainer(nil)
	require.NoError(t, c.Initialize(context.Background(), memoryConfig(), testutil.TestConfig()))
	assert.NotNil(t, c.GetAuthModule())
	require.NoError(t, c.Close())
}
