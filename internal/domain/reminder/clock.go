package reminder

import "time"

// Clock supplies the current time in the bot's configured timezone. It exists
// so the scheduler can be driven by a simulated clock in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock builds a SystemClock. A nil location falls back to UTC.
func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return &SystemClock{loc: loc}
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}
