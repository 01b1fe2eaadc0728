// Package errs provides standardized error types for the procurement service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for each outcome callers are expected to handle:
//   - ObjectNotFoundError: an order, comment, document or reference row does not exist
//   - PermissionDeniedError: the caller lacks a permission or ownership relation
//   - InvalidTransitionError: the requested status change is not in the transition table
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ConflictError: a concurrent write lost and the operation may be retried
//   - DependencyUnavailableError: the file store or event publisher failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies the error
//     by kind and never by its cause
package errs
