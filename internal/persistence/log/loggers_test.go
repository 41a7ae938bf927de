package log

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"profitcraft.ai/internal/protocol"
	"profitcraft.ai/internal/sim/world"
)

func TestTickLogger_WritesReadableJSONL(t *testing.T) {
	dir := t.TempDir()
	l := NewTickLogger(dir)
	for i := uint64(0); i < 3; i++ {
		err := l.WriteTick(world.TickLogEntry{
			Tick:    i,
			AgentID: "R1",
			Pos:     [2]int{0, int(i)},
			Events:  []protocol.Event{{"type": "ACTION_RESULT", "ok": true}},
		})
		if err != nil {
			t.Fatalf("WriteTick: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var got []world.TickLogEntry
	err := ReadJSONL(filepath.Join(dir, "ticks"), "ticks", func(line []byte) error {
		var e world.TickLogEntry
		if err := json.Unmarshal(line, &e); err != nil {
			return err
		}
		got = append(got, e)
		return nil
	})
	if err != nil {
		t.Fatalf("ReadJSONL: %v", err)
	}
	if len(got) != 3 || got[2].Tick != 2 || got[2].Pos != [2]int{0, 2} {
		t.Fatalf("entries=%+v", got)
	}
}

func TestJSONLZstdWriter_RotatesHourly(t *testing.T) {
	dir := t.TempDir()
	w := NewJSONLZstdWriter(dir, "audit")
	at := time.Date(2024, 5, 1, 10, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return at }
	if err := w.Write(world.AuditEntry{Tick: 1, Action: "SELL"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	at = at.Add(2 * time.Minute)
	if err := w.Write(world.AuditEntry{Tick: 2, Action: "SELL"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for _, name := range []string{"audit-2024-05-01-10.jsonl.zst", "audit-2024-05-01-11.jsonl.zst"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
	n := 0
	if err := ReadJSONL(dir, "audit", func([]byte) error { n++; return nil }); err != nil {
		t.Fatalf("ReadJSONL: %v", err)
	}
	if n != 2 {
		t.Fatalf("lines=%d want 2", n)
	}
}
