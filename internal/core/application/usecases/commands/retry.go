package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// DefaultAttempts is how often a write that lost an optimistic race is retried
// from a fresh read before the conflict is surfaced.
const DefaultAttempts = 3

// retryOnConflict runs fn until it succeeds, fails with anything other than a
// concurrency conflict, the attempts are used up or ctx is done.
func retryOnConflict(ctx context.Context, attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for range attempts {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = fn()
		if !errors.Is(err, errs.ErrConcurrencyConflict) {
			return err
		}
	}
	return err
}
