// Package errs provides the standardized error types of the repair-shop backend.
// Domain packages build on them so that handlers can classify failures with
// errors.Is instead of matching on strings.
//
// The package includes:
//   - ObjectNotFoundError: a referenced client, order or appointment does not exist
//   - ValueIsRequiredError: a required input is missing
//   - ValueIsInvalidError: an input is malformed
//   - ValueIsOutOfRangeError: a numeric input falls outside its allowed bounds
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired)
//   - a struct with the failure details and an optional Cause
//   - constructors with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The three Value* errors together form the validation class; IsValidation
// reports whether an error belongs to it.
package errs
