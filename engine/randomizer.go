package engine

import (
	"math/rand"
	"time"
)

// Randomizer shuffles question and option order for a session. The source is
// injectable so fixtures can replay a known permutation; production uses a
// clock-seeded source.
type Randomizer struct {
	rng *rand.Rand
}

// NewRandomizer returns a Randomizer over the given seed.
func NewRandomizer(seed int64) *Randomizer {
	return &Randomizer{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomizerFromClock returns a Randomizer seeded from the current time.
func NewRandomizerFromClock() *Randomizer {
	return NewRandomizer(time.Now().UnixNano())
}

// ShuffleStrings returns a new slice holding a permutation of values. The
// input is never mutated; lists of 0 or 1 elements come back as-is.
func (r *Randomizer) ShuffleStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	if len(out) < 2 {
		return out
	}
	r.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// ShuffleIDs returns a new slice holding a permutation of ids.
func (r *Randomizer) ShuffleIDs(ids []uint) []uint {
	out := make([]uint, len(ids))
	copy(out, ids)
	if len(out) < 2 {
		return out
	}
	r.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
