package market

import (
	"errors"
	"fmt"
	"log"

	"profitcraft.ai/internal/sim/grid"
)

// SellableKinds is the closed set of kinds a market buys.
var SellableKinds = [3]grid.ContentKind{grid.KindRock, grid.KindTree, grid.KindFish}

func Sellable(kind grid.ContentKind) bool {
	for _, k := range SellableKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// NewReceipt returns a receipt with every sellable kind mapped to zero.
func NewReceipt() grid.Receipt {
	r := make(grid.Receipt, len(SellableKinds))
	for _, k := range SellableKinds {
		r[k] = 0
	}
	return r
}

type Depositor interface {
	// Deposit moves qty of kind from the agent into the tile in direction dir
	// and returns the coins earned.
	Deposit(agentID string, kind grid.ContentKind, qty int, dir grid.Direction) (int, error)
}

type InventoryReader interface {
	Inventory(agentID string) grid.Inventory
}

type Trader interface {
	Depositor
	InventoryReader
}

// Sell empties every sellable kind the agent holds into the market adjacent to
// the centre of v.
//
// A NotEnoughSpaceError aborts the sale at the failing kind. Kinds deposited
// before it stay sold and the partial receipt is dropped. Any other deposit
// error is a broken host contract and panics.
func Sell(tr Trader, agentID string, v grid.Viewport, logger *log.Logger) (grid.Receipt, error) {
	dir, ok := Locate(v)
	if !ok {
		return nil, ErrOperationNotAllowed
	}

	receipt := NewReceipt()
	snapshot := tr.Inventory(agentID)
	earned := 0

	for _, kind := range snapshot.Kinds() {
		qty := snapshot[kind]
		if !Sellable(kind) || qty <= 0 {
			continue
		}
		coins, err := tr.Deposit(agentID, kind, qty, dir)
		if err != nil {
			var nes *NotEnoughSpaceError
			if errors.As(err, &nes) {
				if logger != nil {
					logger.Printf("sell agent=%s aborted at %s: %v", agentID, kind, err)
				}
				return nil, err
			}
			fatal := fmt.Errorf("%w: deposit %s x%d %s: %w", ErrContractViolation, kind, qty, dir, err)
			if logger != nil {
				logger.Printf("sell agent=%s: %v", agentID, fatal)
			}
			panic(fatal)
		}
		earned += coins
		receipt[kind] = qty
	}

	if logger != nil {
		logger.Printf("sell agent=%s dir=%s rock=%d tree=%d fish=%d coins=%d",
			agentID, dir, receipt[grid.KindRock], receipt[grid.KindTree], receipt[grid.KindFish], earned)
	}
	return receipt, nil
}
