package stream

import (
	"context"
	"errors"
	"io"
	"iter"

	"github.com/shpandrak/shpancollect/internal/util"
)

// FromIterator creates a stream pulling its elements from seq. the iterator is released when the stream is closed
func FromIterator[E any](seq iter.Seq[E]) Stream[E] {
	var next func() (E, bool)
	var stop func()
	return NewSimpleStream(func(ctx context.Context) (E, error) {
		if ctx.Err() != nil {
			return util.DefaultValue[E](), ctx.Err()
		}
		e, ok := next()
		if !ok {
			return util.DefaultValue[E](), io.EOF
		}
		return e, nil
	}, WithOpenFuncOption(func(_ context.Context) error {
		next, stop = iter.Pull(seq)
		return nil
	}), WithCloseFuncOption(func() {
		if stop != nil {
			stop()
		}
	}))
}

var errStopIteration = errors.New("iteration stopped")

// Iterator exposes the stream as a range-over-func iterator. errors are swallowed, use Consume when they matter
func (s Stream[T]) Iterator(yield func(T) bool) {
	_ = s.ConsumeWithErr(context.Background(), func(v T) error {
		if !yield(v) {
			return errStopIteration
		}
		return nil
	})
}
