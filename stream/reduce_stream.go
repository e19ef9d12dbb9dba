package stream

import (
	"context"

	"github.com/shpandrak/shpancollect/internal/util"
	"github.com/shpandrak/shpancollect/lazy"
)

// Reducer turns a stream into a single deferred value
type Reducer[S any, T any] func(Stream[S]) lazy.Lazy[T]

// Reduce consumes the entire stream and combines values using the given reduceFunc,
// starting from the provided initialValue. It returns the final accumulated result.
func Reduce[T any, R any](
	ctx context.Context,
	s Stream[T],
	initialValue R,
	reduceFunc func(acc R, v T) R,
) (R, error) {
	return ReduceWithErr(ctx, s, initialValue, func(acc R, v T) (R, error) {
		return reduceFunc(acc, v), nil
	})
}

// ReduceWithErr is Reduce with a reduceFunc that may fail and stop the reduction.
func ReduceWithErr[T any, R any](
	ctx context.Context,
	s Stream[T],
	initialValue R,
	reduceFunc func(acc R, v T) (R, error),
) (R, error) {
	return ReduceWithErrAndCtx(ctx, s, initialValue, func(_ context.Context, acc R, v T) (R, error) {
		return reduceFunc(acc, v)
	})
}

// ReduceWithErrAndCtx is ReduceWithErr passing the context through to reduceFunc.
// On failure the zero value of R is returned, never a partially reduced value.
func ReduceWithErrAndCtx[T any, R any](
	ctx context.Context,
	s Stream[T],
	initialValue R,
	reduceFunc func(ctx context.Context, acc R, v T) (R, error),
) (R, error) {
	ret := initialValue
	err := s.ConsumeWithErrAndCtx(ctx, func(ctx context.Context, v T) error {
		var err error
		ret, err = reduceFunc(ctx, ret, v)
		return err
	})
	if err != nil {
		return util.DefaultValue[R](), err
	}
	return ret, nil
}

// MustReduce is Reduce that panics if an error occurs.
// it should be used only for testing or when the stream is static.
func MustReduce[T any, R any](
	s Stream[T],
	initialValue R,
	reduceFunc func(acc R, v T) R,
) R {
	reduce, err := Reduce(context.Background(), s, initialValue, reduceFunc)
	if err != nil {
		panic(err)
	}
	return reduce
}

// ReduceLazy is Reduce deferred until the returned Lazy is fetched. every fetch consumes s again.
func ReduceLazy[T any, R any](
	s Stream[T],
	initialValue R,
	reduceFunc func(acc R, v T) R,
) lazy.Lazy[R] {
	return lazy.NewLazy(func(ctx context.Context) (R, error) {
		return Reduce(ctx, s, initialValue, reduceFunc)
	})
}

func ReduceLazyWithErrAndCtx[T any, R any](
	s Stream[T],
	initialValue R,
	reduceFunc func(ctx context.Context, acc R, v T) (R, error),
) lazy.Lazy[R] {
	return lazy.NewLazy(func(ctx context.Context) (R, error) {
		return ReduceWithErrAndCtx(ctx, s, initialValue, reduceFunc)
	})
}
