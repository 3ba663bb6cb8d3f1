package appointment

import (
	"errors"
	"fmt"
	"time"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/errs"
	"repairshop/internal/pkg/guard"
)

const (
	MinDurationMinutes     = 15
	MaxDurationMinutes     = 480
	DefaultDurationMinutes = 60
)

var ErrSlotIsNotConstructed = errors.New("Slot must be created via NewSlot")

// Slot is where an appointment sits on the calendar: a start, a duration in
// minutes and an optional explicit end.
type Slot struct { //nolint:recvcheck //using for validation
	start           time.Time
	durationMinutes int
	endDate         *time.Time
	guard           guard.ConstructorGuard
}

// NewSlot validates the duration range and, when endDate is given, that it is
// after start.
func NewSlot(start time.Time, durationMinutes int, endDate *time.Time) (Slot, error) {
	var startErr, durationErr, endErr error

	if start.IsZero() {
		startErr = errs.NewValueIsRequiredError("scheduled_start")
	}
	if durationMinutes < MinDurationMinutes || durationMinutes > MaxDurationMinutes {
		durationErr = errs.NewValueIsOutOfRangeError("duration_minutes", durationMinutes, MinDurationMinutes, MaxDurationMinutes)
	}
	if endDate != nil && !endDate.After(start) {
		endErr = errs.NewValueIsInvalidErrorWithCause("end_date",
			fmt.Errorf("%s is not after %s", endDate.Format(time.RFC3339), start.Format(time.RFC3339)))
	}

	if err := errors.Join(startErr, durationErr, endErr); err != nil {
		return Slot{}, err
	}

	s := Slot{start: start, durationMinutes: durationMinutes, guard: guard.NewConstructorGuard()}
	if endDate != nil {
		end := *endDate
		s.endDate = &end
	}
	return s, nil
}

func (s Slot) Validate() error {
	return s.guard.Validate(ErrSlotIsNotConstructed)
}

func (s Slot) Start() time.Time {
	return s.start
}

func (s Slot) DurationMinutes() int {
	return s.durationMinutes
}

// EndDate returns a copy of the explicit end, or nil.
func (s Slot) EndDate() *time.Time {
	if s.endDate == nil {
		return nil
	}
	end := *s.endDate
	return &end
}

// EffectiveEnd is the explicit end when set, otherwise start + duration.
func (s Slot) EffectiveEnd() time.Time {
	if s.endDate != nil {
		return *s.endDate
	}
	return s.start.Add(time.Duration(s.durationMinutes) * time.Minute)
}

// Occupied is the window an existing appointment blocks: [start, EffectiveEnd).
func (s Slot) Occupied() kernel.TimeWindow {
	w, _ := kernel.NewTimeWindow(s.start, s.EffectiveEnd())
	return w
}

// Proposed is the window a new or moved appointment asks for:
// [start, start+duration). The explicit end is not consulted.
func (s Slot) Proposed() kernel.TimeWindow {
	w, _ := kernel.NewTimeWindowFromDuration(s.start, s.durationMinutes)
	return w
}
