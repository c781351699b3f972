package commands

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSweepStaleAgentsCommandIsNotConstructed = errors.New("SweepStaleAgentsCommand must be created via NewSweepStaleAgentsCommand constructor")

// SweepStaleAgentsCommand takes agents offline that have not been seen for
// longer than timeout as of now.
type SweepStaleAgentsCommand struct {
	now     time.Time
	timeout time.Duration
	limit   int

	guard guard.ConstructorGuard
}

func NewSweepStaleAgentsCommand(now time.Time, timeout time.Duration, limit int) (SweepStaleAgentsCommand, error) {
	var timeoutErr, limitErr error
	if timeout <= 0 {
		timeoutErr = errs.NewValueIsInvalidErrorWithCause("timeout", fmt.Errorf("%s is not positive", timeout))
	}
	if limit < 0 {
		limitErr = errs.NewValueIsInvalidErrorWithCause("limit", fmt.Errorf("%d is negative", limit))
	}
	if err := errors.Join(timeoutErr, limitErr); err != nil {
		return SweepStaleAgentsCommand{}, err
	}

	return SweepStaleAgentsCommand{
		now:     now.UTC(),
		timeout: timeout,
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SweepStaleAgentsCommand) Validate() error {
	return c.guard.Validate(ErrSweepStaleAgentsCommandIsNotConstructed)
}

// Cutoff is the lastSeen before which an agent counts as gone.
func (c SweepStaleAgentsCommand) Cutoff() time.Time {
	return c.now.Add(-c.timeout)
}

// Limit caps the agents handled per run; 0 means no cap.
func (c SweepStaleAgentsCommand) Limit() int {
	return c.limit
}
