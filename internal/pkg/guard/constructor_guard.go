// Package guard detects domain objects, commands and queries that were built as
// zero values instead of through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field and set only by constructors.
// A zero-value guard fails validation, which makes `Command{}` literals unusable.
//
//	type ScheduleAppointmentCommand struct {
//	    appointmentID kernel.UUID
//	    guard         guard.ConstructorGuard
//	}
//
//	func (c ScheduleAppointmentCommand) Validate() error {
//	    return c.guard.Validate(ErrScheduleAppointmentCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard was not produced by NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
