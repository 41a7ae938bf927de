package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/gorilla/websocket"

	"profitcraft.ai/internal/protocol"
)

func main() {
	var (
		url      = flag.String("url", "ws://127.0.0.1:8081/v1/observe", "observer ws url")
		name     = flag.String("name", "observer", "observer name")
		maxQueue = flag.Int("max_queue", 16, "server-side queue length for this observer")
		showView = flag.Bool("view", true, "print the robot's viewport each tick")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[observe] ", log.LstdFlags|log.Lmicroseconds)
	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		logger.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	hello := protocol.HelloMsg{
		Type:            protocol.TypeHello,
		ProtocolVersion: protocol.Version,
		ObserverName:    *name,
		MaxQueue:        *maxQueue,
	}
	if err := conn.WriteJSON(hello); err != nil {
		logger.Fatalf("send HELLO: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	go func() {
		<-stop
		_ = conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		base, err := protocol.DecodeBase(msg)
		if err != nil {
			continue
		}
		switch base.Type {
		case protocol.TypeWelcome:
			var w protocol.WelcomeMsg
			if err := json.Unmarshal(msg, &w); err != nil {
				continue
			}
			logger.Printf("WELCOME observer_id=%s size=%dx%d view_radius=%d seed=%d",
				w.ObserverID, w.WorldParams.Rows, w.WorldParams.Cols, w.WorldParams.ViewRadius, w.WorldParams.Seed)

		case protocol.TypeTick:
			var t protocol.TickMsg
			if err := json.Unmarshal(msg, &t); err != nil {
				continue
			}
			handleTick(logger, &t, *showView)
		}
	}
}

func handleTick(logger *log.Logger, t *protocol.TickMsg, showView bool) {
	logger.Printf("TICK %d agent=%s pos=%v energy=%d coins=%d inventory=%s",
		t.Tick, t.AgentID, t.Self.Pos, t.Self.Energy, t.Self.Coins, formatInventory(t.Inventory))
	for _, ev := range t.Events {
		b, _ := json.Marshal(ev)
		logger.Printf("  event %s", b)
	}
	if showView {
		for _, row := range t.View {
			cells := make([]string, 0, len(row))
			for _, c := range row {
				cells = append(cells, cellLabel(c))
			}
			logger.Printf("  | %s", strings.Join(cells, " | "))
		}
	}
}

func cellLabel(c *protocol.CellObs) string {
	if c == nil {
		return "?"
	}
	if c.Content == "" || c.Content == "NONE" {
		return c.Tile
	}
	return c.Tile + "/" + c.Content
}

func formatInventory(items []protocol.ItemStack) string {
	if len(items) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		b, _ := json.Marshal(it)
		parts = append(parts, string(b))
	}
	return "[" + strings.Join(parts, ",") + "]"
}
