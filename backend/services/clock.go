package services

import "time"

const dayFormat = "2006-01-02"

// Clock supplies wall-clock time and the current calendar day. Streak and
// goal arithmetic go through this interface so day boundaries can be
// simulated in tests.
type Clock interface {
	Now() time.Time
	// Today returns the current calendar day as "2006-01-02" in the
	// clock's location.
	Today() string
}

type realClock struct {
	loc *time.Location
}

// NewClock returns a Clock reporting time in loc. A nil loc means UTC.
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &realClock{loc: loc}
}

func (c *realClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *realClock) Today() string {
	return c.Now().Format(dayFormat)
}
