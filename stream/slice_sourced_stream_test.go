package stream

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJust_EmptySlice(t *testing.T) {
	result, err := Just[int]().Collect(context.Background())
	require.NoError(t, err)
	require.Empty(t, result)
}

func TestJust_MultipleElements(t *testing.T) {
	result, err := Just(1, 2, 3, 4, 5).Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 4, 5}, result)
}

func TestFromSlice_NilSlice(t *testing.T) {
	result, err := FromSlice([]int(nil)).Collect(context.Background())
	require.NoError(t, err)
	require.Empty(t, result)
}

// Modifying the original slice after creating the stream doesn't affect the stream
func TestFromSlice_IsolatedFromOriginalSliceChanges(t *testing.T) {
	original := []int{1, 2, 3, 4, 5}
	s := FromSlice(original)

	original[0] = 999

	// Materializing twice yields the same elements
	require.Equal(t, []int{999, 2, 3, 4, 5}, s.MustCollect())
	require.Equal(t, []int{999, 2, 3, 4, 5}, s.MustCollect())
	require.Equal(t, []int{999, 2, 3, 4, 5}, original)
}

func TestFromSlice_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FromSlice([]int{1, 2, 3, 4, 5}).Collect(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFromSlice_PointerType(t *testing.T) {
	val1, val2 := 1, 2
	original := []*int{&val1, &val2}

	result := FromSlice(original).MustCollect()
	require.Len(t, result, 2)

	// The slice is cloned, the pointers within are shared
	require.Same(t, original[0], result[0])
}
