package world

import (
	"profitcraft.ai/internal/protocol"
	"profitcraft.ai/internal/sim/grid"
	"profitcraft.ai/internal/sim/tuning"
)

// Map is a rectangular grid of tiles indexed [row][col].
type Map [][]grid.Tile

type WorldConfig struct {
	ID     string
	Seed   int64
	Tuning tuning.Tuning
}

type Robot struct {
	ID       string
	Name     string
	Pos      grid.Position
	Energy   int
	Backpack grid.Inventory
}

func (r Robot) Coins() int { return r.Backpack[grid.KindCoin] }

type TickLogger interface {
	WriteTick(entry TickLogEntry) error
}

type AuditLogger interface {
	WriteAudit(entry AuditEntry) error
}

// TickPublisher receives one TICK message per robot per tick (e.g. observers).
type TickPublisher interface {
	PublishTick(msg protocol.TickMsg)
}

type TickLogEntry struct {
	Tick      uint64           `json:"tick"`
	AgentID   string           `json:"agent_id"`
	Pos       [2]int           `json:"pos"`
	Energy    int              `json:"energy"`
	Inventory map[string]int   `json:"inventory,omitempty"`
	Events    []protocol.Event `json:"events,omitempty"`
}

type AuditEntry struct {
	Tick      uint64 `json:"tick"`
	Actor     string `json:"actor"`
	Action    string `json:"action"` // "SELL", "COLLECT"
	Pos       [2]int `json:"pos"`
	Target    [2]int `json:"target"`
	Kind      string `json:"kind"`
	Quantity  int    `json:"quantity"`
	Coins     int    `json:"coins,omitempty"`
	Direction string `json:"direction,omitempty"`
}
