package stream

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

const (
	DefaultChunkSize = 256

	// CollectConfigEnvPrefix prefixes every CollectConfig environment variable
	CollectConfigEnvPrefix = "SHPANCOLLECT_"
)

// CollectConfig tunes how CollectWith runs a reduction.
type CollectConfig struct {
	// Parallelism is the maximum number of chunks accumulated concurrently, 1 collects sequentially
	Parallelism int `env:"PARALLELISM, default=1"`
	// ChunkSize is the number of consecutive elements accumulated by each partial accumulator
	ChunkSize int `env:"CHUNK_SIZE, default=256"`
}

func DefaultCollectConfig() CollectConfig {
	return CollectConfig{
		Parallelism: 1,
		ChunkSize:   DefaultChunkSize,
	}
}

// LoadCollectConfig reads a CollectConfig from SHPANCOLLECT_PARALLELISM and SHPANCOLLECT_CHUNK_SIZE,
// using lookuper to resolve the variables (the process environment when nil).
// Unset variables keep their default values.
func LoadCollectConfig(ctx context.Context, lookuper envconfig.Lookuper) (CollectConfig, error) {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	var cfg CollectConfig
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(CollectConfigEnvPrefix, lookuper),
	})
	if err != nil {
		return CollectConfig{}, fmt.Errorf("failed to load collect config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return CollectConfig{}, err
	}
	return cfg, nil
}

func (c CollectConfig) Validate() error {
	if c.Parallelism <= 0 {
		return fmt.Errorf("invalid collect config: parallelism must be > 0, got %d", c.Parallelism)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("invalid collect config: chunk size must be > 0, got %d", c.ChunkSize)
	}
	return nil
}
