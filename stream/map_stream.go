package stream

import (
	"context"
	"fmt"

	"github.com/shpandrak/shpancollect"
	"github.com/shpandrak/shpancollect/internal/util"
)

// Map maps the source stream to a target stream using the provided mapper function.
func Map[SRC any, TGT any](src Stream[SRC], mapper shpancollect.Mapper[SRC, TGT]) Stream[TGT] {
	return MapWithErrAndCtx(src, mapper.ToErrCtx())
}

// MapWithErr maps the source stream to a target stream using the provided mapper function.
func MapWithErr[SRC any, TGT any](src Stream[SRC], mapper shpancollect.MapperWithErr[SRC, TGT]) Stream[TGT] {
	return MapWithErrAndCtx(src, mapper.ToErrCtx())
}

// MapWithErrAndCtx maps the source stream to a target stream using the provided mapper function.
// Mapper errors are wrapped, so a mapper returning io.EOF does not silently end the stream
func MapWithErrAndCtx[SRC any, TGT any](src Stream[SRC], mapper shpancollect.MapperWithErrAndCtx[SRC, TGT]) Stream[TGT] {
	return newStream[TGT](
		func(ctx context.Context) (TGT, error) {
			v, err := src.provider(ctx)
			if err != nil {
				return util.DefaultValue[TGT](), err
			}
			tgt, err := mapper(ctx, v)
			if err != nil {
				return util.DefaultValue[TGT](), fmt.Errorf("map failed for Stream: %w", err)
			}
			return tgt, nil
		}, src.allLifecycleElement,
	)
}

// Peek allows to peek at the elements of the stream without consuming them
// Peek will not materialize the stream, f is invoked only (and if) the stream is materialized
func (s Stream[T]) Peek(f func(v T)) Stream[T] {
	return Map(
		s,
		func(v T) T {
			f(v)
			return v
		})
}
