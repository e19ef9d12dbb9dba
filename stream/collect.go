package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/shpandrak/shpancollect/internal/util"
	"github.com/shpandrak/shpancollect/lazy"
	"golang.org/x/sync/errgroup"
)

// CollectOption defines options for collecting a stream with a Collector
type CollectOption interface {
	collectOptionName() string
}

type parallelCollectOption struct {
	parallelism int
}

// WithParallelCollectOption splits the stream into chunks of consecutive elements, each accumulated into its own
// accumulator by up to parallelism goroutines, and combines the partial accumulators when done.
// The source stream is still read sequentially, only the accumulation runs concurrently.
// Ordered collectors combine the partial accumulators in encounter order, so the result is the same as collecting
// sequentially. Unordered collectors combine partial accumulators as soon as they are ready.
func WithParallelCollectOption(parallelism int) CollectOption {
	return &parallelCollectOption{parallelism: parallelism}
}

func (p *parallelCollectOption) collectOptionName() string {
	return "parallel"
}

type chunkSizeCollectOption struct {
	chunkSize int
}

// WithChunkSizeCollectOption sets the number of elements per partial accumulator for parallel collection.
func WithChunkSizeCollectOption(chunkSize int) CollectOption {
	return &chunkSizeCollectOption{chunkSize: chunkSize}
}

func (c *chunkSizeCollectOption) collectOptionName() string {
	return "chunkSize"
}

type configCollectOption struct {
	config CollectConfig
}

// WithCollectConfigOption applies a CollectConfig, e.g. one loaded by LoadCollectConfig.
// A parallelism of 1 collects sequentially.
func WithCollectConfigOption(config CollectConfig) CollectOption {
	return &configCollectOption{config: config}
}

func (c *configCollectOption) collectOptionName() string {
	return "config"
}

type collectSettings struct {
	parallel    bool
	parallelism int
	chunkSize   int
}

// CollectWith materializes the stream and reduces it into a result using the collector.
// It returns an error if the stream materialization fails in any stage of the pipeline, or if any of the collector
// functions panics. On error, the zero value of R is returned.
func CollectWith[T any, A any, R any](
	ctx context.Context,
	s Stream[T],
	c Collector[T, A, R],
	options ...CollectOption,
) (R, error) {
	settings := collectSettings{chunkSize: DefaultChunkSize}
	for _, opt := range options {
		switch cOpt := opt.(type) {
		case *parallelCollectOption:
			settings.parallel = true
			settings.parallelism = cOpt.parallelism
		case *chunkSizeCollectOption:
			settings.chunkSize = cOpt.chunkSize
		case *configCollectOption:
			if err := cOpt.config.Validate(); err != nil {
				return util.DefaultValue[R](), err
			}
			settings.parallel = cOpt.config.Parallelism > 1
			settings.parallelism = cOpt.config.Parallelism
			settings.chunkSize = cOpt.config.ChunkSize
		default:
			return util.DefaultValue[R](), fmt.Errorf("unsupported collect option type: %T", opt)
		}
	}

	if !settings.parallel {
		return collectSequentially(ctx, s, c)
	}
	if settings.parallelism <= 0 {
		return util.DefaultValue[R](), fmt.Errorf("parallelism must be > 0")
	}
	if settings.chunkSize <= 0 {
		return util.DefaultValue[R](), fmt.Errorf("chunk size must be > 0")
	}
	return collectInParallel(ctx, s, c, settings.parallelism, settings.chunkSize)
}

// MustCollectWith is CollectWith that panics if the stream errors
// should be used for testing purpose or when streams are static (e.g. slice sourced streams)
func MustCollectWith[T any, A any, R any](s Stream[T], c Collector[T, A, R], options ...CollectOption) R {
	ret, err := CollectWith(context.Background(), s, c, options...)
	if err != nil {
		panic(err)
	}
	return ret
}

// CollectLazy defers CollectWith until the returned Lazy is fetched, the fetch context drives the collection.
// Every fetch consumes s again and builds a new result.
func CollectLazy[T any, A any, R any](s Stream[T], c Collector[T, A, R], options ...CollectOption) lazy.Lazy[R] {
	return lazy.NewLazy(func(ctx context.Context) (R, error) {
		return CollectWith(ctx, s, c, options...)
	})
}

func collectSequentially[T any, A any, R any](ctx context.Context, s Stream[T], c Collector[T, A, R]) (R, error) {
	seed, err := recoverCall(c.supplier)
	if err != nil {
		return util.DefaultValue[R](), err
	}
	acc, err := ReduceWithErrAndCtx(ctx, s, seed, func(_ context.Context, acc A, v T) (A, error) {
		c.accumulator(acc, v)
		return acc, nil
	})
	if err != nil {
		return util.DefaultValue[R](), err
	}
	return recoverFinish(c, acc)
}

func collectInParallel[T any, A any, R any](
	ctx context.Context,
	s Stream[T],
	c Collector[T, A, R],
	parallelism int,
	chunkSize int,
) (R, error) {
	unordered := c.characteristics.Has(Unordered)
	slog.Debug(
		"collecting stream in parallel",
		"parallelism", parallelism,
		"chunkSize", chunkSize,
		"characteristics", c.characteristics.String(),
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	var mu sync.Mutex

	// Ordered collectors keep a partial accumulator per chunk, indexed by chunk number
	var partials []A

	// Unordered collectors fold every finished chunk right away
	var merged A
	hasMerged := false

	accumulateChunk := func(chunkIdx int, chunk []T) func() error {
		return func() (err error) {
			defer func() {
				if rvr := recover(); rvr != nil {
					err = recoveredErr(rvr)
				}
			}()
			acc := c.supplier()
			for _, v := range chunk {
				if gCtx.Err() != nil {
					return gCtx.Err()
				}
				c.accumulator(acc, v)
			}

			mu.Lock()
			defer mu.Unlock()
			if !unordered {
				partials[chunkIdx] = acc
			} else if hasMerged {
				merged = c.combiner(merged, acc)
			} else {
				merged = acc
				hasMerged = true
			}
			return nil
		}
	}

	chunkCount := 0
	chunk := make([]T, 0, chunkSize)
	flush := func() {
		if len(chunk) == 0 {
			return
		}
		if !unordered {
			mu.Lock()
			partials = append(partials, util.DefaultValue[A]())
			mu.Unlock()
		}

		// Blocks while parallelism chunks are already being accumulated
		g.Go(accumulateChunk(chunkCount, chunk))
		chunkCount++
		chunk = make([]T, 0, chunkSize)
	}

	srcErr := s.ConsumeWithErr(gCtx, func(v T) error {
		chunk = append(chunk, v)
		if len(chunk) == chunkSize {
			flush()
		}
		return nil
	})
	if srcErr == nil {
		flush()
	}
	workersErr := g.Wait()
	if err := joinCollectErrors(ctx, srcErr, workersErr); err != nil {
		return util.DefaultValue[R](), err
	}

	if unordered {
		if !hasMerged {
			seed, err := recoverCall(c.supplier)
			if err != nil {
				return util.DefaultValue[R](), err
			}
			merged = seed
		}
		return recoverFinish(c, merged)
	}
	if len(partials) == 0 {
		seed, err := recoverCall(c.supplier)
		if err != nil {
			return util.DefaultValue[R](), err
		}
		return recoverFinish(c, seed)
	}

	acc, err := recoverCall(func() A {
		ret := partials[0]
		for _, p := range partials[1:] {
			ret = c.combiner(ret, p)
		}
		return ret
	})
	if err != nil {
		return util.DefaultValue[R](), err
	}
	return recoverFinish(c, acc)
}

// joinCollectErrors drops the cancellation errors that are only a side effect of the other party failing
func joinCollectErrors(ctx context.Context, srcErr error, workersErr error) error {
	switch {
	case workersErr == nil:
		return srcErr
	case srcErr == nil:
		return fmt.Errorf("failed to accumulate stream chunk: %w", workersErr)
	case ctx.Err() != nil && errors.Is(workersErr, ctx.Err()):
		// Caller cancelled, both sides just noticed
		return srcErr
	case ctx.Err() == nil && errors.Is(srcErr, context.Canceled):
		// A worker failed and cancelled the reading of the source
		return fmt.Errorf("failed to accumulate stream chunk: %w", workersErr)
	default:
		return multierror.Append(srcErr, fmt.Errorf("failed to accumulate stream chunk: %w", workersErr))
	}
}

func recoverFinish[T any, A any, R any](c Collector[T, A, R], acc A) (R, error) {
	return recoverCall(func() R {
		return c.finish(acc)
	})
}

func recoverCall[R any](f func() R) (ret R, err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			ret = util.DefaultValue[R]()
			err = recoveredErr(rvr)
		}
	}()
	return f(), nil
}
