package engine

import "time"

// Deadline computes the absolute submission deadline for an exam started at
// the given instant. Only the deadline is ever persisted; remaining time is
// recomputed from it on every read so client reloads cannot drift the clock.
func Deadline(startedAt time.Time, durationMinutes int) time.Time {
	return startedAt.Add(time.Duration(durationMinutes) * time.Minute)
}

// Remaining returns the time left until deadline, clamped at zero.
func Remaining(deadline, now time.Time) time.Duration {
	d := deadline.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Expired reports whether the deadline has passed.
func Expired(deadline, now time.Time) bool {
	return !now.Before(deadline)
}
