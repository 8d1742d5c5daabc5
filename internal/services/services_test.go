package services

import (
	"context"
	"testing"

	"github.com/lk16/othengine/internal/cache"
	"github.com/lk16/othengine/internal/config"
	"github.com/stretchr/testify/require"
)

func TestInitServices_Defaults(t *testing.T) {
	svc, err := InitServices(context.Background(), &config.Config{})
	require.NoError(t, err)

	require.IsType(t, &cache.Memory{}, svc.Cache)
	require.Nil(t, svc.Games)
	require.NoError(t, svc.Close())
}

func TestInitServices_SQLite(t *testing.T) {
	svc, err := InitServices(context.Background(), &config.Config{
		DatabaseDriver: "sqlite3",
		DatabaseURL:    ":memory:",
	})
	require.NoError(t, err)
	defer svc.Close()

	require.NotNil(t, svc.Games)

	games, err := svc.Games.ListGames(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, games)
}

func TestInitServices_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"invalid redis url", &config.Config{RedisURL: "not-a-url"}},
		{"unknown driver", &config.Config{DatabaseDriver: "mysql", DatabaseURL: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InitServices(context.Background(), tt.cfg)
			require.Error(t, err)
		})
	}
}
