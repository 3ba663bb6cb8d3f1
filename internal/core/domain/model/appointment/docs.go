// Package appointment provides the appointment aggregate of the single shop
// calendar.
//
// The package includes:
//   - Appointment: a client visit, optionally tied to a repair order
//   - Slot: the validated start, duration and optional explicit end of a visit
//   - Status: the attendance states, split into occupying and non-occupying
//   - ConflictError: the scheduling failure naming the blocking appointment
//
// Key business rules:
//   - Duration is between 15 and 480 minutes
//   - An explicit end, when given, is after the start and replaces start+duration
//     as the effective end
//   - Cancelled and no-show appointments never block the calendar
package appointment
