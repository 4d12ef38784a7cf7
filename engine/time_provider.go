package engine

import "time"

// TimeProvider is the clock behind frame ticks, idle deadlines and trail velocity samples
// One provider is shared by a page's scheduler and everything it drives, so the
// idle countdown and velocity timestamps always agree with the tick time
type TimeProvider interface {
	Now() time.Time
}

// wallClock reads time.Now; its readings carry the monotonic component,
// so deadline arithmetic is immune to wall clock jumps
type wallClock struct{}

// NewMonotonicTimeProvider returns the clock used by interactive runs
func NewMonotonicTimeProvider() TimeProvider {
	return wallClock{}
}

func (wallClock) Now() time.Time {
	return time.Now()
}
