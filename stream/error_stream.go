package stream

import (
	"context"

	"github.com/shpandrak/shpancollect/internal/util"
)

// Error creates a stream that fails to open with err
func Error[T any](err error) Stream[T] {
	return newStream[T](func(_ context.Context) (T, error) {
		return util.DefaultValue[T](), err
	}, []Lifecycle{NewLifecycle(func(_ context.Context) error {
		return err
	}, nil)})
}
