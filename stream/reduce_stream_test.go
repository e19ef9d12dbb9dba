package stream

import (
	"context"
	"errors"
	"testing"

	"github.com/shpandrak/shpancollect/lazy"
	"github.com/stretchr/testify/require"
)

func TestReduce(t *testing.T) {
	sum := MustReduce(Just(1, 2, 3, 4), 0, func(acc, v int) int {
		return acc + v
	})
	require.Equal(t, 10, sum)

	require.Equal(t, "seed", MustReduce(Empty[string](), "seed", func(acc, v string) string {
		return acc + v
	}))
}

func TestReduceWithErr_ReturnsZeroValueOnError(t *testing.T) {
	expectedErr := errors.New("too big")
	ret, err := ReduceWithErr(context.Background(), Just(1, 2, 3), 100, func(acc, v int) (int, error) {
		if v == 3 {
			return acc, expectedErr
		}
		return acc + v, nil
	})
	require.ErrorIs(t, err, expectedErr)
	require.Equal(t, 0, ret)
}

func TestReduceLazy(t *testing.T) {
	var sum Reducer[int, int] = func(s Stream[int]) lazy.Lazy[int] {
		return ReduceLazy(s, 0, func(acc, v int) int {
			return acc + v
		})
	}
	require.Equal(t, 10, sum(Just(1, 2, 3, 4)).MustGet())

	expectedErr := errors.New("too big")
	failing := ReduceLazyWithErrAndCtx(Just(1, 2, 3), 0, func(_ context.Context, acc, v int) (int, error) {
		if v == 3 {
			return acc, expectedErr
		}
		return acc + v, nil
	})
	_, err := failing.Get(context.Background())
	require.ErrorIs(t, err, expectedErr)
}
