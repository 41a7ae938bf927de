package indexdb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"profitcraft.ai/internal/sim/world"
)

// SQLiteIndex is a secondary read model of ticks and audits. Writes are queued
// and applied by one goroutine; the JSONL journal stays the source of truth.
type SQLiteIndex struct {
	db *sqlx.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool

	dropTick  atomic.Uint64
	dropAudit atomic.Uint64
}

type reqKind int

const (
	reqTick reqKind = iota + 1
	reqAudit
)

type req struct {
	kind reqKind

	tick  world.TickLogEntry
	audit world.AuditEntry
}

type Stats struct {
	QueueDepth     int
	QueueCapacity  int
	DropTickTotal  uint64
	DropAuditTotal uint64
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	return openSQLite(path, 65536)
}

func openSQLite(path string, queue int) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan req, queue),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func openDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func initSchema(db *sqlx.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS ticks (
			tick INTEGER NOT NULL,
			agent_id TEXT NOT NULL,
			row INTEGER NOT NULL,
			col INTEGER NOT NULL,
			energy INTEGER NOT NULL,
			events INTEGER NOT NULL,
			raw_json TEXT NOT NULL,
			PRIMARY KEY (tick, agent_id)
		);`,
		`CREATE TABLE IF NOT EXISTS audits (
			id TEXT PRIMARY KEY,
			tick INTEGER NOT NULL,
			actor TEXT NOT NULL,
			action TEXT NOT NULL,
			kind TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			coins INTEGER NOT NULL,
			direction TEXT NOT NULL,
			target_row INTEGER NOT NULL,
			target_col INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_audits_actor_tick ON audits(actor, tick);`,
		`CREATE INDEX IF NOT EXISTS idx_audits_action_kind ON audits(action, kind);`,
		`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1');`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close drains the queue, commits and closes the database.
func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteIndex) WriteTick(entry world.TickLogEntry) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	select {
	case s.ch <- req{kind: reqTick, tick: entry}:
	default:
		s.dropTick.Add(1)
	}
	return nil
}

func (s *SQLiteIndex) WriteAudit(entry world.AuditEntry) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	select {
	case s.ch <- req{kind: reqAudit, audit: entry}:
	default:
		s.dropAudit.Add(1)
	}
	return nil
}

func (s *SQLiteIndex) Stats() Stats {
	return Stats{
		QueueDepth:     len(s.ch),
		QueueCapacity:  cap(s.ch),
		DropTickTotal:  s.dropTick.Load(),
		DropAuditTotal: s.dropAudit.Load(),
	}
}

type auditRow struct {
	ID         string `db:"id"`
	Tick       int64  `db:"tick"`
	Actor      string `db:"actor"`
	Action     string `db:"action"`
	Kind       string `db:"kind"`
	Quantity   int    `db:"quantity"`
	Coins      int    `db:"coins"`
	Direction  string `db:"direction"`
	TargetRow  int    `db:"target_row"`
	TargetCol  int    `db:"target_col"`
	RecordedAt string `db:"recorded_at"`
}

type tickRow struct {
	Tick    int64  `db:"tick"`
	AgentID string `db:"agent_id"`
	Row     int    `db:"row"`
	Col     int    `db:"col"`
	Energy  int    `db:"energy"`
	Events  int    `db:"events"`
	RawJSON string `db:"raw_json"`
}

const (
	insertTickSQL = `INSERT OR REPLACE INTO ticks(tick,agent_id,row,col,energy,events,raw_json)
		VALUES(:tick,:agent_id,:row,:col,:energy,:events,:raw_json)`
	insertAuditSQL = `INSERT INTO audits(id,tick,actor,action,kind,quantity,coins,direction,target_row,target_col,recorded_at)
		VALUES(:id,:tick,:actor,:action,:kind,:quantity,:coins,:direction,:target_row,:target_col,:recorded_at)`
)

func (s *SQLiteIndex) loop() {
	ctx := context.Background()

	var (
		tx            *sqlx.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 500
		commitMaxWait = 2 * time.Second
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}

	for r := range s.ch {
		begin()
		if tx == nil {
			continue
		}
		var err error
		switch r.kind {
		case reqTick:
			raw, _ := json.Marshal(r.tick)
			_, err = tx.NamedExec(insertTickSQL, tickRow{
				Tick:    int64(r.tick.Tick),
				AgentID: r.tick.AgentID,
				Row:     r.tick.Pos[0],
				Col:     r.tick.Pos[1],
				Energy:  r.tick.Energy,
				Events:  len(r.tick.Events),
				RawJSON: string(raw),
			})
		case reqAudit:
			a := r.audit
			_, err = tx.NamedExec(insertAuditSQL, auditRow{
				ID:         uuid.NewString(),
				Tick:       int64(a.Tick),
				Actor:      a.Actor,
				Action:     a.Action,
				Kind:       a.Kind,
				Quantity:   a.Quantity,
				Coins:      a.Coins,
				Direction:  a.Direction,
				TargetRow:  a.Target[0],
				TargetCol:  a.Target[1],
				RecordedAt: time.Now().UTC().Format(time.RFC3339Nano),
			})
		}
		if err != nil {
			rollback()
			continue
		}
		opCount++
		if opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait {
			commit()
		}
	}

	commit()
}

var _ world.TickLogger = (*SQLiteIndex)(nil)
var _ world.AuditLogger = (*SQLiteIndex)(nil)

