package order

import (
	"fmt"

	"repairshop/internal/pkg/errs"
)

// Priority orders the repair queue. Normal is the default for new orders.
type Priority int

const (
	PriorityUnknown Priority = iota
	PriorityNormal
	PriorityUrgent
)

var priorityTokens = map[Priority]string{
	PriorityNormal: "normal",
	PriorityUrgent: "urgent",
}

// ParsePriority maps a wire token to a Priority; the empty token means normal.
func ParsePriority(token string) (Priority, error) {
	if token == "" {
		return PriorityNormal, nil
	}
	for p, t := range priorityTokens {
		if t == token {
			return p, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", token))
}

func (p Priority) Validate() error {
	if _, ok := priorityTokens[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

func (p Priority) String() string {
	if t, ok := priorityTokens[p]; ok {
		return t
	}
	return "unknown"
}
