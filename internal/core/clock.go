// AngelaMos | 2026
// clock.go

package core

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// Clock pins "now" to a single timezone so calendar-day arithmetic
// does not depend on the server's local zone.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

func NewClock(timezone string) (Clock, error) {
	if timezone == "" {
		return systemClock{loc: time.UTC}, nil
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	return systemClock{loc: loc}, nil
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c systemClock) Location() *time.Location {
	return c.loc
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

func (c FixedClock) Location() *time.Location {
	if c.At.Location() == nil {
		return time.UTC
	}
	return c.At.Location()
}
