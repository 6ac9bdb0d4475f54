package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectorSingleModeOverwrites(t *testing.T) {
	c := NewCollector(nil)

	c.Select(1, ModeSingle, "A")
	c.Select(1, ModeSingle, "C")

	a, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, []string{"C"}, a.Values)
}

func TestCollectorMultipleModeToggles(t *testing.T) {
	c := NewCollector(nil)

	c.Select(2, ModeMultiple, "A")
	c.Select(2, ModeMultiple, "B")

	a, ok := c.Get(2)
	assert.True(t, ok)
	assert.ElementsMatch(t, []string{"A", "B"}, a.Values)

	// Re-selecting an already-selected value removes it
	c.Select(2, ModeMultiple, "A")
	a, ok = c.Get(2)
	assert.True(t, ok)
	assert.Equal(t, []string{"B"}, a.Values)

	// Removing the last value deletes the entry entirely
	c.Select(2, ModeMultiple, "B")
	_, ok = c.Get(2)
	assert.False(t, ok)
}

func TestCollectorAbsenceMeansUnanswered(t *testing.T) {
	c := NewCollector(nil)

	_, ok := c.Get(5)
	assert.False(t, ok)
	assert.Empty(t, c.All())
}

func TestCollectorAllReturnsCopy(t *testing.T) {
	c := NewCollector(nil)
	c.Select(1, ModeSingle, "A")

	all := c.All()
	all[2] = Answer{Mode: ModeSingle, Values: []string{"X"}}

	_, ok := c.Get(2)
	assert.False(t, ok)
}

func TestCollectorSeededFromPersistedAnswers(t *testing.T) {
	seed := map[uint]Answer{
		3: {Mode: ModeMultiple, Values: []string{"A", "C"}},
	}
	c := NewCollector(seed)

	a, ok := c.Get(3)
	assert.True(t, ok)
	assert.ElementsMatch(t, []string{"A", "C"}, a.Values)

	// Mutating the seed afterwards must not reach the collector
	seed[4] = Answer{Mode: ModeSingle, Values: []string{"B"}}
	_, ok = c.Get(4)
	assert.False(t, ok)
}
