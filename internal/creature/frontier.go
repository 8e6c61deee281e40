package creature

import (
	"cmp"
	"math/rand"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/creatures/internal/grid"
)

// Entry is a grid position waiting to be visited by the walk, tagged with the
// connector the tile placed there must carry.
type Entry struct {
	Position grid.Position
	Incoming grid.Direction
	Wildcard bool // no connector required; only used for the start position
}

// Start returns the wildcard entry for the first position of a walk.
func Start(p grid.Position) Entry {
	return Entry{Position: p, Wildcard: true}
}

// compareEntries orders entries by position, wildcard first, then connector.
func compareEntries(a, b Entry) int {
	if c := cmp.Compare(a.Position, b.Position); c != 0 {
		return c
	}
	if a.Wildcard != b.Wildcard {
		if a.Wildcard {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.Incoming, b.Incoming)
}

// Frontier is the set of pending entries. Duplicates collapse and entries are
// removed in random order rather than queue order.
type Frontier struct {
	entries mapset.Set[Entry]
}

// NewFrontier creates an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{entries: mapset.New[Entry]()}
}

// Add inserts an entry; adding an entry twice has no effect.
func (f *Frontier) Add(e Entry) {
	f.entries.Put(e)
}

// Has reports whether the entry is pending.
func (f *Frontier) Has(e Entry) bool {
	return f.entries.Has(e)
}

// Len returns the number of pending entries.
func (f *Frontier) Len() int {
	return f.entries.Size()
}

// Pop removes and returns one entry chosen uniformly at random. Entries are
// sorted before the draw so that a given random stream always selects the
// same entry. It consumes exactly one draw when the frontier is non-empty.
func (f *Frontier) Pop(rng *rand.Rand) (Entry, bool) {
	if f.entries.Size() == 0 {
		return Entry{}, false
	}
	sorted := f.Entries()
	e := sorted[rng.Intn(len(sorted))]
	f.entries.Remove(e)
	return e, true
}

// DropPosition removes every pending entry for p.
func (f *Frontier) DropPosition(p grid.Position) {
	for _, e := range f.Entries() {
		if e.Position == p {
			f.entries.Remove(e)
		}
	}
}

// Entries returns the pending entries in sorted order.
func (f *Frontier) Entries() []Entry {
	out := make([]Entry, 0, f.entries.Size())
	f.entries.Each(func(e Entry) {
		out = append(out, e)
	})
	slices.SortFunc(out, compareEntries)
	return out
}
