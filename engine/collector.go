package engine

import "sync"

// Answer is a user's selection for one question. Values carries one entry in
// single mode and any number in multiple mode; order is insignificant.
type Answer struct {
	Mode   string   `json:"mode"`
	Values []string `json:"values"`
}

// Collector holds the answer map for one active session. Unanswered
// questions simply have no entry; grading treats absence as incorrect.
type Collector struct {
	mu      sync.Mutex
	answers map[uint]Answer
}

// NewCollector returns a Collector seeded with already-persisted answers, so
// a restarted server resumes the session where it left off.
func NewCollector(seed map[uint]Answer) *Collector {
	answers := make(map[uint]Answer, len(seed))
	for id, a := range seed {
		answers[id] = a
	}
	return &Collector{answers: answers}
}

// Select records value for questionID. Single mode overwrites the previous
// selection. Multiple mode toggles membership: selecting an already-selected
// value removes it, and removing the last value deletes the entry entirely.
func (c *Collector) Select(questionID uint, mode, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mode == ModeSingle {
		c.answers[questionID] = Answer{Mode: ModeSingle, Values: []string{value}}
		return
	}

	existing := c.answers[questionID].Values
	values := make([]string, 0, len(existing)+1)
	removed := false
	for _, v := range existing {
		if v == value {
			removed = true
			continue
		}
		values = append(values, v)
	}
	if !removed {
		values = append(values, value)
	}

	if len(values) == 0 {
		delete(c.answers, questionID)
		return
	}
	c.answers[questionID] = Answer{Mode: ModeMultiple, Values: values}
}

// Get returns the answer for questionID, if any.
func (c *Collector) Get(questionID uint) (Answer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.answers[questionID]
	return a, ok
}

// All returns a copy of the collected answer map for submission.
func (c *Collector) All() map[uint]Answer {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[uint]Answer, len(c.answers))
	for id, a := range c.answers {
		out[id] = a
	}
	return out
}
