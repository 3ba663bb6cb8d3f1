package order

import (
	"errors"
	"fmt"
	"slices"

	"repairshop/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel wrapped by TransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status is the lifecycle state of a repair order. The string tokens returned by
// String are part of the wire and storage contract.
//
// State transitions:
//
//	Received ──> Diagnosing ──┬──> WaitingParts <──┐
//	                          │         │          │
//	                          └──> InRepair <──────┘
//	                                  │   ^
//	                                  v   │
//	                               Repaired ──> Delivered
//
//	Every non-terminal state except Repaired may also move to Cancelled.
type Status int

const (
	// Unknown is the zero value and never a valid state.
	Unknown Status = iota
	Received
	Diagnosing
	WaitingParts
	InRepair
	Repaired
	Delivered
	Cancelled
)

var statusTokens = map[Status]string{
	Received:     "received",
	Diagnosing:   "diagnosing",
	WaitingParts: "waiting_parts",
	InRepair:     "in_repair",
	Repaired:     "repaired",
	Delivered:    "delivered",
	Cancelled:    "cancelled",
}

// transitions is the adjacency map current -> allowed successors.
var transitions = map[Status][]Status{
	Received:     {Diagnosing, Cancelled},
	Diagnosing:   {WaitingParts, InRepair, Cancelled},
	WaitingParts: {InRepair, Cancelled},
	InRepair:     {Repaired, WaitingParts, Cancelled},
	Repaired:     {Delivered, InRepair},
	Delivered:    {},
	Cancelled:    {},
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Received, Diagnosing, WaitingParts, InRepair, Repaired, Delivered, Cancelled}
}

// ParseStatus maps a wire token to a Status. Anything outside the closed set is
// rejected so arbitrary strings never reach the transition table.
func ParseStatus(token string) (Status, error) {
	for s, t := range statusTokens {
		if t == token {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", token))
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

// AllowedTransitions returns a copy of the successors of s.
func (s Status) AllowedTransitions() []Status {
	return slices.Clone(transitions[s])
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether s -> next is in the transition table.
// Self-transitions are never in the table.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

// TransitionTo returns next when s -> next is allowed, or a *TransitionError.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(next) {
		return Unknown, &TransitionError{From: s, To: next}
	}
	return next, nil
}

// MarshalText implements encoding.TextMarshaler using the wire token.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// TransitionError names both ends of a rejected status change.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot change from '%s' to '%s'", ErrInvalidTransition, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
