package stream

import (
	"context"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"
)

func TestLoadCollectConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadCollectConfig(context.Background(), envconfig.MapLookuper(map[string]string{}))
		require.NoError(t, err)
		require.Equal(t, DefaultCollectConfig(), cfg)
	})

	t.Run("from environment", func(t *testing.T) {
		cfg, err := LoadCollectConfig(context.Background(), envconfig.MapLookuper(map[string]string{
			"SHPANCOLLECT_PARALLELISM": "8",
			"SHPANCOLLECT_CHUNK_SIZE":  "1024",
			"PARALLELISM":              "3",
		}))
		require.NoError(t, err)
		require.Equal(t, CollectConfig{Parallelism: 8, ChunkSize: 1024}, cfg)
	})

	t.Run("process environment", func(t *testing.T) {
		t.Setenv("SHPANCOLLECT_PARALLELISM", "2")
		cfg, err := LoadCollectConfig(context.Background(), nil)
		require.NoError(t, err)
		require.Equal(t, 2, cfg.Parallelism)
		require.Equal(t, DefaultChunkSize, cfg.ChunkSize)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := LoadCollectConfig(context.Background(), envconfig.MapLookuper(map[string]string{
			"SHPANCOLLECT_PARALLELISM": "many",
		}))
		require.Error(t, err)

		_, err = LoadCollectConfig(context.Background(), envconfig.MapLookuper(map[string]string{
			"SHPANCOLLECT_CHUNK_SIZE": "0",
		}))
		require.Error(t, err)
		require.Contains(t, err.Error(), "chunk size must be > 0")
	})
}
