package appointment

import (
	"fmt"

	"repairshop/internal/pkg/errs"
)

// Status is the attendance state of an appointment. Any valid status may be set
// at any time; there is no transition table.
type Status int

const (
	StatusUnknown Status = iota
	StatusScheduled
	StatusConfirmed
	StatusInProgress
	StatusCompleted
	StatusCancelled
	StatusNoShow
)

var statusTokens = map[Status]string{
	StatusScheduled:  "scheduled",
	StatusConfirmed:  "confirmed",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
	StatusCancelled:  "cancelled",
	StatusNoShow:     "no_show",
}

// Statuses returns every valid status.
func Statuses() []Status {
	return []Status{StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow}
}

// NonOccupyingStatuses lists the statuses that leave the calendar free. The
// postgres exclusion constraint filters on the same tokens.
func NonOccupyingStatuses() []Status {
	return []Status{StatusCancelled, StatusNoShow}
}

func ParseStatus(token string) (Status, error) {
	for s, t := range statusTokens {
		if t == token {
			return s, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid appointment status", token))
}

func (s Status) Validate() error {
	if _, ok := statusTokens[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if t, ok := statusTokens[s]; ok {
		return t
	}
	return "unknown"
}

// IsOccupying reports whether an appointment in this status blocks its window.
// Completed appointments still occupy their (past) window.
func (s Status) IsOccupying() bool {
	return s.Validate() == nil && s != StatusCancelled && s != StatusNoShow
}

func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
