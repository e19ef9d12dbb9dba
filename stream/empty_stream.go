package stream

import (
	"context"
	"io"

	"github.com/shpandrak/shpancollect/internal/util"
)

func Empty[T any]() Stream[T] {
	return newStream(func(_ context.Context) (T, error) {
		return util.DefaultValue[T](), io.EOF
	}, nil)
}
