// Package clock abstracts the time source so time-based behaviour such as
// token bucket refills can be driven explicitly in tests.
package clock

import "time"

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New returns the system clock
func New() RealClock {
	return RealClock{}
}

// Now returns time.Now()
func (RealClock) Now() time.Time {
	return time.Now()
}
