package world

import (
	"errors"

	"profitcraft.ai/internal/protocol"
	"profitcraft.ai/internal/sim/market"
)

// Code maps host and market errors to protocol error codes.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotEnoughEnergy):
		return protocol.ErrNoEnergy
	case errors.Is(err, ErrOutOfBounds), errors.Is(err, ErrNotWalkable):
		return protocol.ErrBlocked
	case errors.Is(err, ErrNothingThere), errors.Is(err, ErrNotEnoughItems):
		return protocol.ErrNoResource
	case errors.Is(err, ErrBackpackFull):
		return protocol.ErrNoSpace
	case errors.Is(err, ErrUnknownAgent):
		return protocol.ErrInvalidTarget
	case errors.Is(err, ErrBadQuantity):
		return protocol.ErrBadRequest
	}
	return market.Code(err)
}
