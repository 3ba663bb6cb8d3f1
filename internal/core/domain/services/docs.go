// Package services contains domain logic that spans several aggregates.
//
// ConflictDetector decides whether a requested calendar window collides with
// an occupying appointment. It is pure: the candidates are loaded by the
// application layer, usually narrowed to the requested window by the
// repository.
package services
