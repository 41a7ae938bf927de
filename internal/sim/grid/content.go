package grid

// ContentKind identifies what sits on a tile or in a backpack.
// It is the only thing compared when matching contents or keying inventories.
type ContentKind string

const (
	KindNone       ContentKind = "NONE"
	KindRock       ContentKind = "ROCK"
	KindTree       ContentKind = "TREE"
	KindGarbage    ContentKind = "GARBAGE"
	KindFire       ContentKind = "FIRE"
	KindCoin       ContentKind = "COIN"
	KindBin        ContentKind = "BIN"
	KindCrate      ContentKind = "CRATE"
	KindBank       ContentKind = "BANK"
	KindWater      ContentKind = "WATER"
	KindMarket     ContentKind = "MARKET"
	KindFish       ContentKind = "FISH"
	KindBuilding   ContentKind = "BUILDING"
	KindBush       ContentKind = "BUSH"
	KindJollyBlock ContentKind = "JOLLYBLOCK"
	KindScarecrow  ContentKind = "SCARECROW"
)

var knownKinds = map[ContentKind]struct{}{
	KindNone:       {},
	KindRock:       {},
	KindTree:       {},
	KindGarbage:    {},
	KindFire:       {},
	KindCoin:       {},
	KindBin:        {},
	KindCrate:      {},
	KindBank:       {},
	KindWater:      {},
	KindMarket:     {},
	KindFish:       {},
	KindBuilding:   {},
	KindBush:       {},
	KindJollyBlock: {},
	KindScarecrow:  {},
}

func (k ContentKind) Valid() bool {
	_, ok := knownKinds[k]
	return ok
}

// Content is a tile's payload. Quantity is carried alongside the kind, never
// folded into it: MARKET x3 and MARKET x1 are the same kind.
type Content struct {
	Kind     ContentKind `json:"kind"`
	Quantity int         `json:"quantity,omitempty"`
}

func None() Content { return Content{Kind: KindNone} }

func Of(kind ContentKind, qty int) Content {
	return Content{Kind: kind, Quantity: qty}
}

func (c Content) IsNone() bool {
	return c.Kind == "" || c.Kind == KindNone
}

func (c Content) Is(kind ContentKind) bool {
	if kind == KindNone {
		return c.IsNone()
	}
	return c.Kind == kind
}

// SameKind reports whether two contents share a tag, ignoring quantities.
func (c Content) SameKind(o Content) bool {
	if c.IsNone() || o.IsNone() {
		return c.IsNone() && o.IsNone()
	}
	return c.Kind == o.Kind
}
