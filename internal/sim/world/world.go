package world

import (
	"errors"
	"fmt"
	"log"

	"profitcraft.ai/internal/protocol"
	"profitcraft.ai/internal/sim/grid"
)

var (
	ErrUnknownAgent    = errors.New("unknown agent")
	ErrOutOfBounds     = errors.New("out of bounds")
	ErrNotWalkable     = errors.New("tile not walkable")
	ErrNotEnoughEnergy = errors.New("not enough energy")
	ErrNotEnoughItems  = errors.New("not enough items")
	ErrBackpackFull    = errors.New("backpack full")
	ErrNothingThere    = errors.New("nothing to collect")
	ErrBadQuantity     = errors.New("quantity must be positive")
)

// World is a single-agent-turn grid host. It is not safe for concurrent use:
// the runner serialises every mutation to one robot's tick.
type World struct {
	cfg   WorldConfig
	tiles Map
	rows  int
	cols  int

	robots    map[string]*Robot
	nextRobot uint64
	tick      uint64

	events map[string][]protocol.Event

	log         *log.Logger
	tickLogger  TickLogger
	auditLogger AuditLogger
	publishers  []TickPublisher
}

func New(cfg WorldConfig, m Map, logger *log.Logger) (*World, error) {
	if err := cfg.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("tuning: %w", err)
	}
	if len(m) == 0 || len(m[0]) == 0 {
		return nil, errors.New("empty map")
	}
	cols := len(m[0])
	tiles := make(Map, len(m))
	for i, row := range m {
		if len(row) != cols {
			return nil, fmt.Errorf("map row %d has %d tiles, want %d", i, len(row), cols)
		}
		tiles[i] = append([]grid.Tile(nil), row...)
	}
	return &World{
		cfg:    cfg,
		tiles:  tiles,
		rows:   len(tiles),
		cols:   cols,
		robots: map[string]*Robot{},
		events: map[string][]protocol.Event{},
		log:    logger,
	}, nil
}

func (w *World) SetTickLogger(l TickLogger)   { w.tickLogger = l }
func (w *World) SetAuditLogger(l AuditLogger) { w.auditLogger = l }
func (w *World) AddPublisher(p TickPublisher) { w.publishers = append(w.publishers, p) }

func (w *World) ID() string          { return w.cfg.ID }
func (w *World) Seed() int64         { return w.cfg.Seed }
func (w *World) Size() (int, int)    { return w.rows, w.cols }
func (w *World) CurrentTick() uint64 { return w.tick }

func (w *World) inBounds(p grid.Position) bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < w.rows && p.Col < w.cols
}

func (w *World) TileAt(p grid.Position) (grid.Tile, bool) {
	if !w.inBounds(p) {
		return grid.Tile{}, false
	}
	return w.tiles[p.Row][p.Col], true
}

// Spawn places a new robot at pos with a full energy budget and an empty backpack.
func (w *World) Spawn(name string, pos grid.Position) (string, error) {
	t, ok := w.TileAt(pos)
	if !ok {
		return "", fmt.Errorf("spawn %v: %w", pos, ErrOutOfBounds)
	}
	if !t.Type.Walkable() {
		return "", fmt.Errorf("spawn %v: %w", pos, ErrNotWalkable)
	}
	w.nextRobot++
	id := fmt.Sprintf("R%d", w.nextRobot)
	w.robots[id] = &Robot{
		ID:       id,
		Name:     name,
		Pos:      pos,
		Energy:   w.cfg.Tuning.StartEnergy,
		Backpack: grid.Inventory{},
	}
	return id, nil
}

// Robot returns a copy of the robot's state.
func (w *World) Robot(id string) (Robot, bool) {
	r := w.robots[id]
	if r == nil {
		return Robot{}, false
	}
	cp := *r
	cp.Backpack = r.Backpack.Clone()
	return cp, true
}

// AddEvent queues an event for the robot's next tick record.
func (w *World) AddEvent(robotID string, ev protocol.Event) {
	if _, ok := w.robots[robotID]; !ok {
		return
	}
	w.events[robotID] = append(w.events[robotID], ev)
}

func (w *World) audit(e AuditEntry) {
	if w.auditLogger == nil {
		return
	}
	if err := w.auditLogger.WriteAudit(e); err != nil && w.log != nil {
		w.log.Printf("audit: %v", err)
	}
}

func posPair(p grid.Position) [2]int { return [2]int{p.Row, p.Col} }
