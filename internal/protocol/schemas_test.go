package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"profitcraft.ai/internal/protocol"
)

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()
	p := filepath.Join("..", "..", "schemas", name)
	s, err := jsonschema.Compile(p)
	if err != nil {
		t.Fatalf("compile %s: %v", name, err)
	}
	return s
}

// roundTrip turns a Go value into the generic form the validator expects.
func roundTrip(t *testing.T, v any) any {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func TestSchemas_ValidateSamples(t *testing.T) {
	helloSchema := compileSchema(t, "hello.schema.json")
	welcomeSchema := compileSchema(t, "welcome.schema.json")
	tickSchema := compileSchema(t, "tick.schema.json")

	var hello any
	_ = json.Unmarshal([]byte(`{"type":"HELLO","protocol_version":"1.0","observer_name":"viewer","max_queue":8}`), &hello)
	if err := helloSchema.Validate(hello); err != nil {
		t.Fatalf("hello: %v", err)
	}

	var welcome any
	_ = json.Unmarshal([]byte(`{
	  "type":"WELCOME",
	  "protocol_version":"1.0",
	  "observer_id":"O1",
	  "world_params":{"rows":3,"cols":3,"view_radius":1,"seed":1337}
	}`), &welcome)
	if err := welcomeSchema.Validate(welcome); err != nil {
		t.Fatalf("welcome: %v", err)
	}

	var tick any
	_ = json.Unmarshal([]byte(`{
	  "type":"TICK",
	  "protocol_version":"1.0",
	  "tick":4,
	  "agent_id":"R1",
	  "self":{"pos":[0,1],"energy":980,"coins":0},
	  "view":[[null,null,null],[{"tile":"GRASS","content":"NONE","elevation":0},{"tile":"GRASS","content":"TREE","quantity":1,"elevation":0},null],[null,null,null]],
	  "inventory":[{"item":"ROCK","count":2}],
	  "events":[{"type":"ACTION_RESULT","ref":"C1","ok":true}]
	}`), &tick)
	if err := tickSchema.Validate(tick); err != nil {
		t.Fatalf("tick: %v", err)
	}
}

func TestSchemas_GoMessagesConform(t *testing.T) {
	tickSchema := compileSchema(t, "tick.schema.json")

	grass := &protocol.CellObs{Tile: "GRASS", Content: "MARKET", Quantity: 1}
	msg := protocol.TickMsg{
		Type:            protocol.TypeTick,
		ProtocolVersion: protocol.Version,
		Tick:            1,
		AgentID:         "R1",
		Self:            protocol.SelfObs{Pos: [2]int{1, 1}, Energy: 1000},
		View:            [][]*protocol.CellObs{{nil, grass, nil}, {nil, grass, nil}, {nil, nil, nil}},
		Inventory:       []protocol.ItemStack{},
		Events: []protocol.Event{
			protocol.ActionResult(1, "C1", false, protocol.ErrNoPermission, "no market adjacent"),
			protocol.SaleEvent(1, "RIGHT", map[string]int{"ROCK": 1, "TREE": 0, "FISH": 0}),
		},
	}
	if err := tickSchema.Validate(roundTrip(t, msg)); err != nil {
		t.Fatalf("tick message: %v", err)
	}

	missing := roundTrip(t, protocol.HelloMsg{Type: protocol.TypeHello})
	delete(missing.(map[string]any), "observer_name")
	if err := compileSchema(t, "hello.schema.json").Validate(missing); err == nil {
		t.Fatalf("expected hello without observer_name to fail")
	}
}

func TestActionResult_UnknownCodeIsSanitized(t *testing.T) {
	ev := protocol.ActionResult(3, "C9", false, "E_WHATEVER", "")
	if ev["code"] != protocol.ErrInternal {
		t.Fatalf("code=%v want %s", ev["code"], protocol.ErrInternal)
	}
	if ev["message"] != "unknown error code" {
		t.Fatalf("message=%v", ev["message"])
	}
}
