package market

import (
	"errors"
	"fmt"

	"profitcraft.ai/internal/protocol"
)

var (
	// ErrOperationNotAllowed is returned when no market is orthogonally adjacent.
	ErrOperationNotAllowed = errors.New("operation not allowed")

	// ErrContractViolation wraps deposit failures the host promised never to return.
	ErrContractViolation = errors.New("host contract violation")
)

// NotEnoughSpaceError reports that the host could not credit the coins earned
// for Attempted items back to the agent.
type NotEnoughSpaceError struct {
	Attempted int
}

func (e *NotEnoughSpaceError) Error() string {
	return fmt.Sprintf("not enough space (attempted %d)", e.Attempted)
}

// Code maps a market error to a protocol error code.
func Code(err error) string {
	var nes *NotEnoughSpaceError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrOperationNotAllowed):
		return protocol.ErrNoPermission
	case errors.As(err, &nes):
		return protocol.ErrNoSpace
	default:
		return protocol.ErrInternal
	}
}
