package utils

import (
	"math"
	"math/rand"
	"time"
)

// RetryDelay decides how long to sleep between retry attempts.
type RetryDelay interface {
	Wait(taskName string, attempt int)
}

// ConstantDelay waits a fixed number of seconds regardless of attempt.
type ConstantDelay struct {
	// Period in seconds
	Period int
}

func (d ConstantDelay) Wait(taskName string, attempt int) {
	time.Sleep(time.Duration(d.Period) * time.Second)
}

// ExponentialBackoff waits min(2*2^attempt, 10) seconds plus up to one
// second of jitter.
type ExponentialBackoff struct{}

func (d ExponentialBackoff) Wait(taskName string, attempt int) {
	backoff := math.Min(2*math.Pow(2, float64(attempt)), 10)
	jitter := time.Duration(rand.Int63n(int64(time.Second)))
	time.Sleep(time.Duration(backoff)*time.Second + jitter)
}
