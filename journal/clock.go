package journal

import "time"

// Rfc3339Milli is like time.RFC3339Nano, but with millisecond precision
const Rfc3339Milli = "2006-01-02T15:04:05.000Z07:00"

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func NewRealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}
