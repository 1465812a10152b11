package tracker

import "time"

// Clock supplies the current instant. The tracker never calls time.Now
// directly so tests can drive it deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }
