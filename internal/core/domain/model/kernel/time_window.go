package kernel

import (
	"errors"
	"fmt"
	"time"

	"repairshop/internal/pkg/errs"
	"repairshop/internal/pkg/guard"
)

var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"time window must be created via NewTimeWindow or NewTimeWindowFromDuration constructors")

// TimeWindow is the half-open interval [start, end) occupied on the calendar.
// Two windows that merely touch (one ends exactly when the other starts) do not overlap.
type TimeWindow struct { //nolint:recvcheck //using for validation
	start time.Time
	end   time.Time
	guard guard.ConstructorGuard
}

// NewTimeWindow builds a window; end must be strictly after start.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	w := TimeWindow{guard: guard.NewConstructorGuard()}

	if err := errors.Join(w.setStart(start), w.setEnd(start, end)); err != nil {
		return TimeWindow{}, err
	}

	return w, nil
}

// NewTimeWindowFromDuration builds [start, start+minutes).
func NewTimeWindowFromDuration(start time.Time, minutes int) (TimeWindow, error) {
	if minutes <= 0 {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause(
			"duration_minutes", fmt.Errorf("%d is not greater than 0", minutes))
	}
	return NewTimeWindow(start, start.Add(time.Duration(minutes)*time.Minute))
}

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

// Overlaps reports whether the half-open intervals intersect:
// w.start < other.end && w.end > other.start.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start.Before(other.end) && w.end.After(other.start)
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("[%s, %s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}

func (w *TimeWindow) setStart(start time.Time) error {
	if start.IsZero() {
		return errs.NewValueIsRequiredError("start")
	}
	w.start = start
	return nil
}

func (w *TimeWindow) setEnd(start, end time.Time) error {
	if !end.After(start) {
		return errs.NewValueIsInvalidErrorWithCause(
			"end", fmt.Errorf("%s is not after %s", end.Format(time.RFC3339), start.Format(time.RFC3339)))
	}
	w.end = end
	return nil
}
