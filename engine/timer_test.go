package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeadlineFromDuration(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, start.Add(45*time.Minute), Deadline(start, 45))
}

func TestRemainingClampsAtZero(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	assert.Equal(t, 30*time.Minute, Remaining(deadline, deadline.Add(-30*time.Minute)))
	assert.Equal(t, time.Duration(0), Remaining(deadline, deadline))
	assert.Equal(t, time.Duration(0), Remaining(deadline, deadline.Add(time.Hour)))
}

func TestRemainingMonotonicallyNonIncreasing(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	prev := Remaining(deadline, deadline.Add(-10*time.Minute))
	for i := 9; i >= -2; i-- {
		cur := Remaining(deadline, deadline.Add(-time.Duration(i)*time.Minute))
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestExpired(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	assert.False(t, Expired(deadline, deadline.Add(-time.Second)))
	assert.True(t, Expired(deadline, deadline))
	assert.True(t, Expired(deadline, deadline.Add(time.Second)))
}
