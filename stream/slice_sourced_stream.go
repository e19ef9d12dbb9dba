package stream

import (
	"context"
	"io"
	"slices"

	"github.com/shpandrak/shpancollect/internal/util"
)

// Just creates a stream emitting the given values in order
func Just[T any](slice ...T) Stream[T] {
	return FromSlice(slice)
}

// FromSlice creates a stream emitting the slice elements in order. the slice is copied on every materialization,
// so the stream can be collected more than once and never modifies the original slice
func FromSlice[T any](slice []T) Stream[T] {
	return NewStream(&sliceStream[T]{slcOrig: slice})
}

type sliceStream[T any] struct {
	slcOrig []T
	slc     []T
}

func (j *sliceStream[T]) Open(_ context.Context) error {
	if j.slcOrig != nil {
		j.slc = slices.Clone(j.slcOrig)
	}
	return nil
}

func (j *sliceStream[T]) Close() {
	j.slc = nil
}

func (j *sliceStream[T]) Emit(ctx context.Context) (T, error) {
	if ctx.Err() != nil {
		return util.DefaultValue[T](), ctx.Err()
	}
	if len(j.slc) == 0 {
		return util.DefaultValue[T](), io.EOF
	}
	v := j.slc[0]
	j.slc = j.slc[1:]
	return v, nil
}
