package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShuffleStringsIsPermutation(t *testing.T) {
	r := NewRandomizer(42)
	in := []string{"A", "B", "C", "D", "E", "F", "G", "H"}

	out := r.ShuffleStrings(in)

	assert.ElementsMatch(t, in, out)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "H"}, in, "input must not be mutated")
}

func TestShuffleStringsSeededDeterminism(t *testing.T) {
	in := []string{"A", "B", "C", "D", "E"}

	first := NewRandomizer(7).ShuffleStrings(in)
	second := NewRandomizer(7).ShuffleStrings(in)

	assert.Equal(t, first, second)
}

func TestShuffleTinyInputs(t *testing.T) {
	r := NewRandomizer(1)

	assert.Empty(t, r.ShuffleStrings(nil))
	assert.Equal(t, []string{"only"}, r.ShuffleStrings([]string{"only"}))
	assert.Equal(t, []uint{9}, r.ShuffleIDs([]uint{9}))
}

func TestShuffleIDsIsPermutation(t *testing.T) {
	r := NewRandomizer(99)
	in := []uint{1, 2, 3, 4, 5, 6, 7}

	out := r.ShuffleIDs(in)

	assert.ElementsMatch(t, in, out)
	assert.Equal(t, []uint{1, 2, 3, 4, 5, 6, 7}, in)
}
