// Package kernel holds the value objects shared by every aggregate of the
// repair-shop domain.
//
// The package includes:
//   - UUID: identifier of clients, orders, history entries and appointments
//   - TimeWindow: a half-open [start, end) interval on the shop calendar
//
// Both are immutable and must be built through their constructors; their
// zero values fail Validate.
package kernel
