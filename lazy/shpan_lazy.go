package lazy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shpandrak/shpancollect"
	"github.com/shpandrak/shpancollect/internal/util"
)

// Lazy defers computing a value until it is asked for. the value may be absent, Get treats an absent value as an
// error while GetOptional and OrElse let the caller decide.
// Every call runs the fetcher again, nothing is cached.
type Lazy[T any] struct {
	fetcher func(ctx context.Context) (*T, error)
}

// NewLazyOptional creates a Lazy whose fetcher may return a nil value
func NewLazyOptional[T any](fetcher func(ctx context.Context) (*T, error)) Lazy[T] {
	return Lazy[T]{fetcher: fetcher}
}

// NewLazy creates a Lazy that always holds a value once fetched successfully
func NewLazy[T any](fetcher func(ctx context.Context) (T, error)) Lazy[T] {
	return Lazy[T]{fetcher: func(ctx context.Context) (*T, error) {
		v, err := fetcher(ctx)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}}
}

func Just[T any](v T) Lazy[T] {
	return Lazy[T]{fetcher: func(_ context.Context) (*T, error) {
		return &v, nil
	}}
}

// Error creates a Lazy that fails with err every time it is fetched
func Error[T any](err error) Lazy[T] {
	return Lazy[T]{fetcher: func(_ context.Context) (*T, error) {
		return nil, err
	}}
}

// Get fetches the value, an absent value is reported as an error. see GetOptional
func (o Lazy[T]) Get(ctx context.Context) (T, error) {
	v, err := o.fetcher(ctx)
	if err != nil {
		return util.DefaultValue[T](), err
	}
	if v == nil {
		return util.DefaultValue[T](), fmt.Errorf("lazy value is empty")
	}
	return *v, nil
}

// GetOptional fetches the value, returning nil when it is absent
func (o Lazy[T]) GetOptional(ctx context.Context) (*T, error) {
	return o.fetcher(ctx)
}

// OrElse fetches the value, falling back to v when it is absent. fetch errors are still returned.
func (o Lazy[T]) OrElse(ctx context.Context, v T) (T, error) {
	d, err := o.fetcher(ctx)
	if err != nil {
		return util.DefaultValue[T](), err
	}
	if d == nil {
		return v, nil
	}
	return *d, nil
}

// MustGet is Get with a background context that panics on failure.
// use for tests or when the value is known to be static
func (o Lazy[T]) MustGet() T {
	v, err := o.Get(context.Background())
	if err != nil {
		panic(err)
	}
	return v
}

// Map converts the value with mapper once it is fetched. an absent value stays absent.
func Map[SRC any, TGT any](src Lazy[SRC], mapper shpancollect.Mapper[SRC, TGT]) Lazy[TGT] {
	return MapWithErrAndCtx(src, mapper.ToErrCtx())
}

func MapWithErrAndCtx[SRC any, TGT any](src Lazy[SRC], mapper shpancollect.MapperWithErrAndCtx[SRC, TGT]) Lazy[TGT] {
	return NewLazyOptional[TGT](func(ctx context.Context) (*TGT, error) {
		srcValue, err := src.GetOptional(ctx)
		if err != nil || srcValue == nil {
			return nil, err
		}
		tgt, err := mapper(ctx, *srcValue)
		if err != nil {
			return nil, err
		}
		return &tgt, nil
	})
}

// MarshalJSON fetches the value with a background context, an absent value is encoded as null
func (o Lazy[T]) MarshalJSON() ([]byte, error) {
	data, err := o.fetcher(context.Background())
	if err != nil {
		return nil, err
	}
	return json.Marshal(data)
}
