package billing

import "time"

// Clock abstracts time so lifecycle transitions and recomputation use one
// consistent source and tests can drive it manually.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now
func SystemClock() Clock { return systemClock{} }
