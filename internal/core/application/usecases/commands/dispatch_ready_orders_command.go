package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrDispatchReadyOrdersCommandIsNotConstructed = errors.New("DispatchReadyOrdersCommand must be created via NewDispatchReadyOrdersCommand constructor")

// DispatchReadyOrdersCommand is one tick of the dispatch job: try to match up
// to batchSize of the longest waiting ready orders.
type DispatchReadyOrdersCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewDispatchReadyOrdersCommand(batchSize int) (DispatchReadyOrdersCommand, error) {
	if batchSize <= 0 {
		return DispatchReadyOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause("batchSize",
			fmt.Errorf("%d is not greater than 0", batchSize))
	}

	return DispatchReadyOrdersCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchReadyOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDispatchReadyOrdersCommandIsNotConstructed)
}

func (c DispatchReadyOrdersCommand) BatchSize() int {
	return c.batchSize
}
