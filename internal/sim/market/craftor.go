package market

import (
	"log"

	"profitcraft.ai/internal/sim/grid"
)

// Host is the simulation runtime the craftor works against. Viewport never
// fails: cells the agent cannot see come back unknown.
type Host interface {
	Trader
	Viewport(agentID string) grid.Viewport
}

// Craftor bundles market detection and selling for agents of one host.
// It holds no state between calls and never schedules itself; call it from
// within an agent's tick.
type Craftor struct {
	host Host
	log  *log.Logger
}

func NewCraftor(h Host, logger *log.Logger) *Craftor {
	return &Craftor{host: h, log: logger}
}

// NearMarket reports whether a market is orthogonally adjacent to the agent.
func (c *Craftor) NearMarket(agentID string) bool {
	return Adjacent(c.host.Viewport(agentID))
}

func (c *Craftor) LocateMarket(agentID string) (grid.Direction, bool) {
	return Locate(c.host.Viewport(agentID))
}

// SellAll sells every ROCK, TREE and FISH the agent holds at the adjacent market.
func (c *Craftor) SellAll(agentID string) (grid.Receipt, error) {
	return Sell(c.host, agentID, c.host.Viewport(agentID), c.log)
}
