package stream

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCharacteristics(t *testing.T) {
	c := Unordered | IdentityFinish
	require.True(t, c.Has(Unordered))
	require.True(t, c.Has(IdentityFinish))
	require.True(t, c.Has(Unordered|IdentityFinish))
	require.False(t, Unordered.Has(Unordered|IdentityFinish))
	require.True(t, Characteristics(0).Has(0))

	require.Equal(t, "[UNORDERED,IDENTITY_FINISH]", c.String())
	require.Equal(t, "[]", Characteristics(0).String())
}

func newBuilderCollector() Collector[string, *strings.Builder, string] {
	return NewCollector[string](
		func() *strings.Builder {
			return &strings.Builder{}
		},
		func(acc *strings.Builder, v string) {
			acc.WriteString(v)
		},
		func(left *strings.Builder, right *strings.Builder) *strings.Builder {
			left.WriteString(right.String())
			return left
		},
		func(acc *strings.Builder) string {
			return acc.String()
		},
	)
}

func TestNewCollector(t *testing.T) {
	c := newBuilderCollector()
	require.Equal(t, Characteristics(0), c.Characteristics())
	require.Equal(t, "abc", MustCollectWith(Just("a", "b", "c"), c))
	require.Equal(t, "", MustCollectWith(Empty[string](), c))
}

func TestNewCollector_NilFinisherIsIdentity(t *testing.T) {
	c := NewCollector[int, *[]int, *[]int](
		func() *[]int {
			return &[]int{}
		},
		func(acc *[]int, v int) {
			*acc = append(*acc, v)
		},
		func(left *[]int, right *[]int) *[]int {
			*left = append(*left, *right...)
			return left
		},
		nil,
		Unordered,
	)
	require.True(t, c.Characteristics().Has(IdentityFinish|Unordered))
	require.Equal(t, []int{1, 2}, *MustCollectWith(Just(1, 2), c))
}

func TestNewCollector_PanicsOnMissingFunctions(t *testing.T) {
	require.Panics(t, func() {
		NewCollector[int, *[]int, int](nil, nil, nil, nil)
	})
	require.Panics(t, func() {
		// a nil finisher requires the accumulator to be the result
		NewCollector[int, *[]int, int](
			func() *[]int {
				return nil
			},
			func(_ *[]int, _ int) {},
			func(left *[]int, _ *[]int) *[]int {
				return left
			},
			nil,
		)
	})
}

func TestNewCollector_InterfaceAccumulatorFailsAtFinish(t *testing.T) {
	// an interface accumulator can't be checked at construction
	c := NewCollector[int, any, string](
		func() any {
			return 0
		},
		func(_ any, _ int) {},
		func(left any, _ any) any {
			return left
		},
		nil,
	)
	require.True(t, c.Characteristics().Has(IdentityFinish))

	ret, err := CollectWith(context.Background(), Just(1, 2), c)
	require.Error(t, err)
	require.Equal(t, "", ret)
}

func TestNewIdentityCollector(t *testing.T) {
	c := NewIdentityCollector[int](
		func() map[int]int {
			return map[int]int{}
		},
		func(acc map[int]int, v int) {
			acc[v]++
		},
		func(left map[int]int, right map[int]int) map[int]int {
			for k, v := range right {
				left[k] += v
			}
			return left
		},
		Unordered,
	)
	require.True(t, c.Characteristics().Has(IdentityFinish))
	require.True(t, c.Characteristics().Has(Unordered))
	require.Equal(t, map[int]int{1: 2, 2: 1}, MustCollectWith(Just(1, 2, 1), c))
}
