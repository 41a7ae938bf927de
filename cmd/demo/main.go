package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"profitcraft.ai/internal/persistence/indexdb"
	persistlog "profitcraft.ai/internal/persistence/log"
	"profitcraft.ai/internal/protocol"
	"profitcraft.ai/internal/sim/script"
	"profitcraft.ai/internal/sim/tuning"
	"profitcraft.ai/internal/sim/world"
	"profitcraft.ai/internal/sim/worldgen"
	"profitcraft.ai/internal/transport/observer"
)

var defaultScripts = map[string]string{
	"small": "look probe sell look",
	"demo":  "R R collect:D L sell probe look",
	"ring":  "R R D D L L U U",
	"noise": "look probe sell",
}

func main() {
	var (
		worldName  = flag.String("world", "demo", "map to run: small|demo|ring|noise")
		seed       = flag.Int64("seed", 1337, "world seed (noise map only)")
		ticks      = flag.Int("ticks", 0, "ticks to run (default: until the script is exhausted)")
		scriptSrc  = flag.String("script", "", "robot commands, e.g. \"R R collect:D sell\" (default depends on -world)")
		tuningPath = flag.String("tuning", "./configs/tuning.yaml", "path to tuning.yaml")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite sales index")
		observe    = flag.String("observe", "", "observer websocket listen address, e.g. 127.0.0.1:8081 (empty to disable)")
		tickMS     = flag.Int("tick_ms", 0, "sleep between ticks in milliseconds")
		autoProbe  = flag.Bool("auto_probe", true, "probe for an adjacent market after every move")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[demo] ", log.LstdFlags|log.Lmicroseconds)

	tune, err := tuning.Load(*tuningPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load tuning: %v", err)
		}
		logger.Printf("tuning not found (%s); using defaults", *tuningPath)
		tune = tuning.Defaults()
	}

	gen, err := worldgen.ByName(*worldName, *seed)
	if err != nil {
		logger.Fatalf("world: %v", err)
	}
	m, spawn, err := gen.Generate()
	if err != nil {
		logger.Fatalf("generate %s: %v", *worldName, err)
	}
	worldID := strings.ToLower(strings.TrimSpace(*worldName))
	w, err := world.New(world.WorldConfig{ID: worldID, Seed: *seed, Tuning: tune}, m, logger)
	if err != nil {
		logger.Fatalf("world: %v", err)
	}

	src := strings.TrimSpace(*scriptSrc)
	if src == "" {
		src = defaultScripts[worldID]
	}
	q, err := script.Parse(src)
	if err != nil {
		logger.Fatalf("script: %v", err)
	}
	agent := script.NewAgent(q, logger)
	agent.AutoProbe = *autoProbe
	agent.Render = func(area string) { fmt.Print(area) }

	worldDir := filepath.Join(*dataDir, "worlds", worldID)
	_ = os.MkdirAll(worldDir, 0o755)

	tickLog := persistlog.NewTickLogger(worldDir)
	auditLog := persistlog.NewAuditLogger(worldDir)
	defer tickLog.Close()
	defer auditLog.Close()

	var idx *indexdb.SQLiteIndex
	dbPath := filepath.Join(worldDir, "index", "world.sqlite")
	if !*disableDB {
		idx, err = indexdb.OpenSQLite(dbPath)
		if err != nil {
			logger.Fatalf("open index: %v", err)
		}
	}
	w.SetTickLogger(multiTickLogger{a: tickLog, b: idx})
	w.SetAuditLogger(multiAuditLogger{a: auditLog, b: idx})

	ctx, cancel := signalContext()
	defer cancel()

	if addr := strings.TrimSpace(*observe); addr != "" {
		rows, cols := w.Size()
		obs := observer.NewServer(protocol.WorldParams{
			Rows:       rows,
			Cols:       cols,
			ViewRadius: tune.ViewRadius,
			Seed:       *seed,
		}, logger)
		w.AddPublisher(obs)
		stop, err := serveObserver(ctx, addr, obs, logger)
		if err != nil {
			logger.Fatalf("observer: %v", err)
		}
		defer stop()
	}

	runner, err := world.NewRunner(w, "profit-craftor", spawn, agent)
	if err != nil {
		logger.Fatalf("runner: %v", err)
	}
	rows, cols := w.Size()
	logger.Printf("world=%s size=%dx%d spawn=%v robot=%s commands=%d", worldID, rows, cols, spawn, runner.RobotID(), q.Len())

	limit := *ticks
	if limit <= 0 {
		limit = q.Len()
	}
	for i := 0; i < limit; i++ {
		if ctx.Err() != nil {
			break
		}
		fmt.Println("---- START TICK ----")
		fmt.Print(world.RenderArea(w.Viewport(runner.RobotID())))
		if err := runner.GameTick(); err != nil {
			logger.Printf("tick: %v", err)
		}
		fmt.Println("---- END TICK ----")
		if *tickMS > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(time.Duration(*tickMS) * time.Millisecond):
			}
		}
	}

	rb, _ := w.Robot(runner.RobotID())
	logger.Printf("done tick=%d pos=%v energy=%d coins=%d inventory=%v",
		w.CurrentTick(), rb.Pos, rb.Energy, rb.Coins(), rb.Backpack)
	for _, o := range agent.Outcomes() {
		if o.Err != nil {
			logger.Printf("  tick=%d %s err=%v code=%s", o.Tick, o.Command, o.Err, world.Code(o.Err))
		}
	}

	if idx != nil {
		if st := idx.Stats(); st.DropTickTotal+st.DropAuditTotal > 0 {
			logger.Printf("index dropped ticks=%d audits=%d", st.DropTickTotal, st.DropAuditTotal)
		}
		if err := idx.Close(); err != nil {
			logger.Printf("close index: %v", err)
			return
		}
		printSales(dbPath, runner.RobotID(), logger)
	}
}

func printSales(dbPath, robotID string, logger *log.Logger) {
	r, err := indexdb.OpenReader(dbPath)
	if err != nil {
		logger.Printf("open index reader: %v", err)
		return
	}
	defer r.Close()
	totals, err := r.SalesByKind(context.Background(), robotID)
	if err != nil {
		logger.Printf("sales: %v", err)
		return
	}
	for _, t := range totals {
		logger.Printf("sold %s x%d for %d coins", t.Kind, t.Quantity, t.Coins)
	}
}

func serveObserver(ctx context.Context, addr string, obs *observer.Server, logger *log.Logger) (func(), error) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/observe", obs.WSHandler())

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("observer http: %v", err)
		}
	}()
	logger.Printf("observers: ws://%s/v1/observe", ln.Addr())

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

type multiTickLogger struct {
	a world.TickLogger
	b *indexdb.SQLiteIndex
}

func (m multiTickLogger) WriteTick(entry world.TickLogEntry) error {
	if m.a != nil {
		_ = m.a.WriteTick(entry)
	}
	if m.b != nil {
		_ = m.b.WriteTick(entry)
	}
	return nil
}

type multiAuditLogger struct {
	a world.AuditLogger
	b *indexdb.SQLiteIndex
}

func (m multiAuditLogger) WriteAudit(entry world.AuditEntry) error {
	if m.a != nil {
		_ = m.a.WriteAudit(entry)
	}
	if m.b != nil {
		_ = m.b.WriteAudit(entry)
	}
	return nil
}
