package container

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMutableSet_DuplicatesCollapse(t *testing.T) {
	set := NewMutableSet[int]()
	require.Equal(t, 0, set.Len())

	for _, v := range []int{3, 1, 2, 1, 3} {
		require.NoError(t, set.Add(v))
	}

	require.Equal(t, 3, set.Len())
	require.True(t, set.Contains(1))
	require.False(t, set.Contains(4))
	require.ElementsMatch(t, []int{1, 2, 3}, set.Slice())
	require.ElementsMatch(t, []int{1, 2, 3}, slices.Collect(set.All()))
}

func TestMutableSet_AddAllAndRemove(t *testing.T) {
	left := MutableSetOf("a", "b")
	right := MutableSetOf("b", "c")

	require.NoError(t, left.AddAll(right))
	require.ElementsMatch(t, []string{"a", "b", "c"}, left.Slice())
	require.ElementsMatch(t, []string{"b", "c"}, right.Slice())

	require.NoError(t, left.AddAll(nil))
	require.NoError(t, left.Remove("a"))
	require.NoError(t, left.Remove("missing"))
	require.ElementsMatch(t, []string{"b", "c"}, left.Slice())
}

func TestSet_Equal(t *testing.T) {
	require.True(t, MutableSetOf(1, 2, 3).Equal(MutableSetOf(3, 2, 1)))
	require.True(t, MutableSetOf(1, 2).Equal(MutableSetOf(1, 2).ImmutableClone()))
	require.False(t, MutableSetOf(1, 2).Equal(MutableSetOf(1, 2, 3)))
	require.False(t, MutableSetOf(1, 2).Equal(MutableSetOf(1, 3)))
	require.False(t, MutableSetOf(1).Equal(nil))
	require.True(t, NewMutableSet[int]().Equal(NewMutableSet[int]().ImmutableClone()))
}

func TestImmutableSet_RejectsMutation(t *testing.T) {
	set := MutableSetOf(1, 2).ImmutableClone()

	require.ErrorIs(t, set.Add(3), ErrImmutable)
	require.ErrorIs(t, set.AddAll(MutableSetOf(4)), errors.ErrUnsupported)
	require.ErrorIs(t, set.Remove(1), errors.ErrUnsupported)
	require.ElementsMatch(t, []int{1, 2}, set.Slice())
}

func TestImmutableSet_IsDetachedFromSource(t *testing.T) {
	mutable := MutableSetOf(1, 2)
	snapshot := mutable.ImmutableClone()

	require.NoError(t, mutable.Add(3))
	require.NoError(t, mutable.Remove(1))
	require.Equal(t, 2, snapshot.Len())
	require.True(t, snapshot.Contains(1))
	require.False(t, snapshot.Contains(3))

	again := snapshot.MutableClone()
	require.NoError(t, again.Add(5))
	require.False(t, snapshot.Contains(5))
}

func TestAll_StopsWhenYieldReturnsFalse(t *testing.T) {
	set := MutableSetOf(1, 2, 3, 4, 5)
	count := 0
	for range set.All() {
		count++
		if count == 2 {
			break
		}
	}
	require.Equal(t, 2, count)
}

func TestSet_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewMutableSet[string]())
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(data))

	data, err = json.Marshal(MutableSetOf(7, 7).ImmutableClone())
	require.NoError(t, err)
	require.JSONEq(t, `[7]`, string(data))
}

func TestMutableSet_NilReadsAsEmpty(t *testing.T) {
	var nilSet *MutableSet[int]
	require.Equal(t, 0, nilSet.Len())
	require.False(t, nilSet.Contains(1))
	require.Empty(t, nilSet.Slice())

	set := MutableSetOf(1, 2)
	var other Set[int] = nilSet
	require.NoError(t, set.AddAll(other))
	require.ElementsMatch(t, []int{1, 2}, set.Slice())
	require.False(t, set.Equal(other))
	require.True(t, NewMutableSet[int]().Equal(other))

	require.Panics(t, func() {
		_ = nilSet.Add(1)
	})
}
