// Package clock provides the wall clock used outside tests.
package clock

import (
	"time"

	"fieldservice/internal/core/domain/model/kernel"
)

type SystemClock struct{}

func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Now returns the current time as a version stamp.
func (SystemClock) Now() time.Time {
	return kernel.VersionStamp(time.Now())
}
