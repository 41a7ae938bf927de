package protocol

// HELLO (observer -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ObserverName    string `json:"observer_name"`
	MaxQueue        int    `json:"max_queue,omitempty"`
}

// WELCOME (server -> observer)
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	ObserverID      string      `json:"observer_id"`
	WorldParams     WorldParams `json:"world_params"`
}

type WorldParams struct {
	Rows       int   `json:"rows"`
	Cols       int   `json:"cols"`
	ViewRadius int   `json:"view_radius"`
	Seed       int64 `json:"seed"`
}

// TICK (server -> observer): what one agent saw and did in one tick.
type TickMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Tick            uint64 `json:"tick"`
	AgentID         string `json:"agent_id"`

	Self      SelfObs      `json:"self"`
	View      [][]*CellObs `json:"view"`
	Inventory []ItemStack  `json:"inventory"`
	Events    []Event      `json:"events"`
}

type SelfObs struct {
	Pos    [2]int `json:"pos"` // row, col
	Energy int    `json:"energy"`
	Coins  int    `json:"coins"`
}

// CellObs is one viewport cell. Unknown cells are encoded as null.
type CellObs struct {
	Tile      string `json:"tile"`
	Content   string `json:"content"`
	Quantity  int    `json:"quantity,omitempty"`
	Elevation int    `json:"elevation"`
}

type ItemStack struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// Event is a loosely typed record, e.g. ACTION_RESULT or SALE.
type Event map[string]interface{}

// ActionResult builds an ACTION_RESULT event. Unknown codes are reported as E_INTERNAL.
func ActionResult(tick uint64, ref string, ok bool, code string, message string) Event {
	if !IsKnownCode(code) {
		code = ErrInternal
		if message == "" {
			message = "unknown error code"
		}
	}
	e := Event{
		"t":    tick,
		"type": "ACTION_RESULT",
		"ref":  ref,
		"ok":   ok,
	}
	if code != "" {
		e["code"] = code
	}
	if message != "" {
		e["message"] = message
	}
	return e
}

// SaleEvent records a completed market sale.
func SaleEvent(tick uint64, direction string, sold map[string]int) Event {
	return Event{
		"t":         tick,
		"type":      "SALE",
		"direction": direction,
		"sold":      sold,
	}
}
