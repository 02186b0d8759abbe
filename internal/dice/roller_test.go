package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollBounds(t *testing.T) {
	roller := NewSeededRoller(42)

	hand := roller.Roll(100)
	require.Len(t, hand, 100)
	for _, die := range hand {
		assert.GreaterOrEqual(t, die, 1)
		assert.LessOrEqual(t, die, Faces)
	}
}

func TestRollEmpty(t *testing.T) {
	roller := NewSeededRoller(1)

	assert.Empty(t, roller.Roll(0))
	assert.Empty(t, roller.Roll(-3))
}

func TestRollDeterministic(t *testing.T) {
	a := NewSeededRoller(99)
	b := NewSeededRoller(99)

	assert.Equal(t, a.Roll(20), b.Roll(20))
}

func TestCountValue(t *testing.T) {
	tests := []struct {
		name   string
		hand   []int
		target int
		want   int
	}{
		{"plain match", []int{4, 4, 2, 6}, 4, 2},
		{"wilds count toward other faces", []int{1, 1, 4, 3}, 4, 3},
		{"wild target excludes wild bonus counting", []int{1, 1, 4, 3}, 1, 2},
		{"no match", []int{2, 3, 5}, 6, 0},
		{"empty hand", []int{}, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountValue(tt.hand, tt.target))
		})
	}
}

func TestCountTotal(t *testing.T) {
	hands := map[string][]int{
		"a": {4, 4, 1},
		"b": {2, 4, 6},
		"c": {1, 3, 5},
	}

	// Three 4s, two wilds in hands, plus the house wild.
	assert.Equal(t, 6, CountTotal(hands, 4))

	// Wild target: only literal 1s, no house bonus.
	assert.Equal(t, 2, CountTotal(hands, 1))
}

func TestCompareForOrder(t *testing.T) {
	tests := []struct {
		name string
		a, b []int
		want func(t *testing.T, got int)
	}{
		{
			"higher top die ranks first",
			[]int{6, 2, 2}, []int{5, 5, 5},
			func(t *testing.T, got int) { assert.Negative(t, got) },
		},
		{
			"tie broken by second die",
			[]int{6, 3, 1}, []int{6, 4, 1},
			func(t *testing.T, got int) { assert.Positive(t, got) },
		},
		{
			"full tie",
			[]int{5, 3, 2}, []int{2, 3, 5},
			func(t *testing.T, got int) { assert.Zero(t, got) },
		},
		{
			"longer hand wins on trailing dice",
			[]int{6, 6}, []int{6, 6, 1},
			func(t *testing.T, got int) { assert.Positive(t, got) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want(t, CompareForOrder(tt.a, tt.b))
		})
	}
}

func TestCompareForOrderDoesNotMutate(t *testing.T) {
	a := []int{1, 6, 3}
	CompareForOrder(a, []int{2, 2, 2})
	assert.Equal(t, []int{1, 6, 3}, a)
}
