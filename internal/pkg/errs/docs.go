// Package errs provides standardized error types for the field-service engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed or missing input
//   - ObjectNotFoundError: an order, technician or visit is absent or soft-deleted
//   - InvalidTransitionError: a status change outside the order transition table
//   - InvalidStateError: an operation the entity's current state does not allow
//   - SchedulingConflictError: no technician left after load and overlap filtering
//   - ConcurrencyConflictError: a write carried a stale updatedAt stamp
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so callers can classify with errors.Is
package errs
