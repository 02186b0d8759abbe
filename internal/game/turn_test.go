package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnSequencer_AdvanceCycles(t *testing.T) {
	ts := NewTurnSequencer([]string{"a", "b", "c"})

	require.Equal(t, "a", ts.Current())
	assert.Equal(t, "b", ts.Advance())
	assert.Equal(t, "c", ts.Advance())
	assert.Equal(t, "a", ts.Advance())

	// Two full cycles touch every player exactly twice.
	seen := map[string]int{"a": 1}
	for i := 0; i < 5; i++ {
		seen[ts.Advance()]++
	}
	assert.Equal(t, map[string]int{"a": 2, "b": 2, "c": 2}, seen)
}

func TestTurnSequencer_SetCurrent(t *testing.T) {
	ts := NewTurnSequencer([]string{"a", "b", "c"})

	require.True(t, ts.SetCurrent("c"))
	assert.Equal(t, "c", ts.Current())
	assert.Equal(t, "a", ts.Advance())

	assert.False(t, ts.SetCurrent("zz"))
	assert.Equal(t, "a", ts.Current())
}

func TestTurnSequencer_RemoveBeforePointer(t *testing.T) {
	ts := NewTurnSequencer([]string{"a", "b", "c", "d"})
	ts.SetCurrent("c")

	require.True(t, ts.RemoveIfPresent("a"))
	assert.Equal(t, "c", ts.Current())
	assert.Equal(t, "d", ts.Advance())
	assert.Equal(t, "b", ts.Advance())
}

func TestTurnSequencer_RemoveCurrentPointsAtSuccessor(t *testing.T) {
	ts := NewTurnSequencer([]string{"a", "b", "c"})
	ts.SetCurrent("b")

	require.True(t, ts.RemoveIfPresent("b"))
	assert.Equal(t, "c", ts.Current())
}

func TestTurnSequencer_RemoveLastWrapsPointer(t *testing.T) {
	ts := NewTurnSequencer([]string{"a", "b", "c"})
	ts.SetCurrent("c")

	require.True(t, ts.RemoveIfPresent("c"))
	assert.Equal(t, "a", ts.Current())
	assert.False(t, ts.RemoveIfPresent("c"))
}

func TestTurnSequencer_RemovalNeverSkipsOrRepeats(t *testing.T) {
	ts := NewTurnSequencer([]string{"a", "b", "c", "d", "e"})
	ts.SetCurrent("b")
	ts.RemoveIfPresent("d")

	// Relative order of the survivors is untouched.
	assert.Equal(t, []string{"a", "b", "c", "e"}, ts.Living())
	assert.Equal(t, "b", ts.Current())
	assert.Equal(t, "c", ts.Advance())
	assert.Equal(t, "e", ts.Advance())
	assert.Equal(t, "a", ts.Advance())
}

func TestTurnSequencer_NextAfter(t *testing.T) {
	ts := NewTurnSequencer([]string{"a", "b", "c"})

	assert.Equal(t, "b", ts.NextAfter("a"))
	assert.Equal(t, "a", ts.NextAfter("c"))

	// Absent reference falls back to the first living player.
	assert.Equal(t, "a", ts.NextAfter("ghost"))
}

func TestTurnSequencer_Empty(t *testing.T) {
	ts := NewTurnSequencer(nil)

	assert.Equal(t, "", ts.Current())
	assert.Equal(t, "", ts.Advance())
	assert.Equal(t, "", ts.NextAfter("a"))
	assert.Zero(t, ts.LivingCount())
}
