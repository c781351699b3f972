// Package errs provides the error kinds shared by the dispatch service.
//
// Every kind follows one pattern: a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ...), a struct carrying details, constructors with and without a cause, and an
// Unwrap method returning the sentinel so callers branch with errors.Is.
//
// Validation kinds:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//
// Lookup kinds:
//   - ObjectNotFoundError (the NotFound kind)
//
// Dispatch kinds:
//   - InvalidTransitionError: the order state machine rejected a status change
//   - AgentUnavailableError: a claim precondition failed; try the next agent or wait
//   - ZoneMismatchError: no working zone covers the delivery point
//   - ConcurrencyConflictError: an optimistic write lost a race; retried internally
package errs
