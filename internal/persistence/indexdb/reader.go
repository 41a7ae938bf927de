package indexdb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Reader runs read-only queries against an index written by SQLiteIndex.
type Reader struct {
	db *sqlx.DB
}

func OpenReader(path string) (*Reader, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &Reader{db: db}, nil
}

func (r *Reader) Close() error { return r.db.Close() }

type SaleTotal struct {
	Kind     string `db:"kind"`
	Quantity int    `db:"quantity"`
	Coins    int    `db:"coins"`
}

// SalesByKind sums SELL audits per content kind. An empty actor means all agents.
func (r *Reader) SalesByKind(ctx context.Context, actor string) ([]SaleTotal, error) {
	q := `SELECT kind, SUM(quantity) AS quantity, SUM(coins) AS coins
		FROM audits
		WHERE action = 'SELL' AND (? = '' OR actor = ?)
		GROUP BY kind
		ORDER BY kind`
	var out []SaleTotal
	if err := r.db.SelectContext(ctx, &out, q, actor, actor); err != nil {
		return nil, err
	}
	return out, nil
}

type TickSummary struct {
	Tick    int64  `db:"tick"`
	AgentID string `db:"agent_id"`
	Row     int    `db:"row"`
	Col     int    `db:"col"`
	Energy  int    `db:"energy"`
	Events  int    `db:"events"`
}

func (r *Reader) LastTick(ctx context.Context, agentID string) (TickSummary, error) {
	var out TickSummary
	err := r.db.GetContext(ctx, &out,
		`SELECT tick, agent_id, row, col, energy, events FROM ticks WHERE agent_id = ? ORDER BY tick DESC LIMIT 1`,
		agentID)
	return out, err
}
