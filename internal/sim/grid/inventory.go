package grid

import "sort"

// Inventory maps a content kind to a held quantity.
type Inventory map[ContentKind]int

func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for k, n := range inv {
		out[k] = n
	}
	return out
}

func (inv Inventory) Total() int {
	sum := 0
	for _, n := range inv {
		sum += n
	}
	return sum
}

// Kinds returns the held kinds in a stable order.
func (inv Inventory) Kinds() []ContentKind {
	kinds := make([]ContentKind, 0, len(inv))
	for k := range inv {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Receipt records how much of each sellable kind one sale moved.
type Receipt map[ContentKind]int
