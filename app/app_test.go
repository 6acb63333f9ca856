package app

import (
	"context"
	"testing"

	"github.com/raushankrgupta/skinbox/config"
	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/recommender"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		Storage:       config.StorageMemory,
		ManagerPhone:  "79990000000",
		RetryAttempts: 1,
		AdminMark:     "admin",
	}
}

func TestBuildInMemory(t *testing.T) {
	ctx := context.Background()
	a, err := Build(ctx, memoryConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer a.Close(ctx)

	assert.Nil(t, a.Photos)
	assert.Nil(t, a.Presigner())

	catalog, err := a.Gateway.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, 8)

	identity, err := a.Sessions.Login(ctx, "admin@skinbox.ru")
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin())
}

func TestBuildWithoutModelFailsGeneration(t *testing.T) {
	ctx := context.Background()
	a, err := Build(ctx, memoryConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer a.Close(ctx)

	_, err = a.Boxes.Generate(ctx, models.SessionIdentity{ID: "u1"}, models.DiagnosticProfile{SkinType: models.SkinTypeDry})
	require.ErrorIs(t, err, recommender.ErrGenerationFailed)

	all, err := a.Gateway.GetAllBoxes(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBuildRejectsUnreachableRedis(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage = config.StorageRedis
	cfg.RedisAddr = "127.0.0.1:1"

	_, err := Build(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
}
