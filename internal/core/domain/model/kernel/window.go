package kernel

import (
	"fmt"
	"time"

	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

// DefaultOrderDuration is the length of an order window whose end date is absent.
const DefaultOrderDuration = 2 * time.Hour

// ErrTimeWindowIsNotConstructed is returned when validating a zero-value TimeWindow.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"time window must be created via NewTimeWindow or EffectiveWindow")

// TimeWindow is a right-open interval [start, end). Two windows that only touch at an
// endpoint do not overlap, so back-to-back bookings are allowed.
type TimeWindow struct { //nolint:recvcheck //using for validation
	start time.Time
	end   time.Time
	guard guard.ConstructorGuard
}

// NewTimeWindow builds a window from explicit bounds. end may equal start but never precede it.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if start.IsZero() {
		return TimeWindow{}, errs.NewValueIsRequiredError("start")
	}
	if end.IsZero() {
		return TimeWindow{}, errs.NewValueIsRequiredError("end")
	}
	if end.Before(start) {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("time window",
			fmt.Errorf("end %s is before start %s", end.Format(time.RFC3339), start.Format(time.RFC3339)))
	}

	return TimeWindow{
		start: start.UTC(),
		end:   end.UTC(),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// EffectiveWindow returns the window of an order scheduled at start. A nil end
// defaults to start + DefaultOrderDuration.
func EffectiveWindow(start time.Time, end *time.Time) (TimeWindow, error) {
	if end == nil {
		return NewTimeWindow(start, start.Add(DefaultOrderDuration))
	}
	return NewTimeWindow(start, *end)
}

// Validate reports whether the window was built by a constructor.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

func (w TimeWindow) Start() time.Time {
	return w.start
}

func (w TimeWindow) End() time.Time {
	return w.end
}

func (w TimeWindow) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// Overlaps reports S < oe && E > os.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start.Before(other.end) && w.end.After(other.start)
}

// Covers reports whether other lies entirely inside w (bounds inclusive).
func (w TimeWindow) Covers(other TimeWindow) bool {
	return !w.start.After(other.start) && !w.end.Before(other.end)
}

// IsEqual compares bounds by instant.
func (w TimeWindow) IsEqual(other TimeWindow) bool {
	return w.start.Equal(other.start) && w.end.Equal(other.end)
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("[%s, %s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}

