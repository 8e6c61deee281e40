package creature

import (
	"context"
	"errors"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/creatures/internal/grid"
	"github.com/samdwyer/creatures/internal/telemetry"
	"github.com/samdwyer/creatures/internal/tiles"
)

// MinTiles is the number of placed tiles below which a walk never stops early.
const MinTiles = 3

// ErrNoPlacement is returned when a walk ends without placing any tile.
var ErrNoPlacement = errors.New("walk placed no tiles")

// TileSource looks up tiles whose connectors intersect a set of directions.
type TileSource interface {
	Supporting(dirs grid.DirectionSet) []*tiles.Tile
}

// StopRule decides after each step whether the walk ends early, given the
// number of tiles placed so far.
type StopRule func(placed int, rng *rand.Rand) bool

// ContinueProbability returns the chance that the walk keeps going after a
// step with placed tiles on the grid: 1 below MinTiles, then (9-n)/9.
func ContinueProbability(placed int) float64 {
	if placed < MinTiles {
		return 1
	}
	if placed >= grid.Cells {
		return 0
	}
	return float64(grid.Cells-placed) / grid.Cells
}

// StopProbability returns 1 - ContinueProbability(placed).
func StopProbability(placed int) float64 {
	return 1 - ContinueProbability(placed)
}

// DefaultStop draws one uniform value once MinTiles tiles are placed and stops
// when it is at least ContinueProbability(placed).
func DefaultStop(placed int, rng *rand.Rand) bool {
	if placed < MinTiles {
		return false
	}
	return rng.Float64() >= float64(grid.Cells-placed)/grid.Cells
}

// NeverStop disables early stopping; the walk ends only when the frontier is
// exhausted.
func NeverStop(int, *rand.Rand) bool {
	return false
}

// Option configures a Walker.
type Option func(*Walker)

// WithStopRule replaces the default early-stop rule.
func WithStopRule(rule StopRule) Option {
	return func(w *Walker) {
		w.stop = rule
	}
}

// Walker runs one constrained random walk over the grid.
//
// Random draws happen in this order, which fixes the output for a seed:
// one Intn(9) for the start; then per step one Intn over the sorted frontier,
// one Intn over the candidates when there are any, and one Float64 for the
// stop rule once MinTiles tiles are placed.
type Walker struct {
	source TileSource
	rng    *rand.Rand
	stop   StopRule
}

// NewWalker creates a walker that draws tiles from source using rng.
func NewWalker(source TileSource, rng *rand.Rand, opts ...Option) *Walker {
	w := &Walker{
		source: source,
		rng:    rng,
		stop:   DefaultStop,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk assembles one creature. It returns ErrNoPlacement when no tile could
// be placed at the start position.
func (w *Walker) Walk(ctx context.Context) (*Placement, error) {
	tracer := telemetry.Tracer("creature")
	_, span := tracer.Start(ctx, "creature.walk")
	defer span.End()

	placement := newPlacement()
	frontier := NewFrontier()

	start := grid.Position(w.rng.Intn(grid.Cells))
	frontier.Add(Start(start))

	steps := 0
	reason := "frontier_exhausted"
	for {
		entry, ok := frontier.Pop(w.rng)
		if !ok {
			break
		}
		steps++

		tile := w.pick(entry)
		if tile != nil {
			placement.place(entry, tile)
			frontier.DropPosition(entry.Position)
		}

		if w.stop(placement.Len(), w.rng) {
			reason = "early_stop"
			break
		}

		if tile != nil {
			w.expand(frontier, placement, entry.Position, tile)
		}
	}

	span.SetAttributes(
		attribute.Int("creature.start", int(start)),
		attribute.Int("creature.tiles", placement.Len()),
		attribute.Int("creature.steps", steps),
		attribute.String("creature.stop_reason", reason),
	)

	if placement.Empty() {
		return nil, ErrNoPlacement
	}
	return placement, nil
}

// pick chooses a tile for the entry, or nil when none fits.
func (w *Walker) pick(entry Entry) *tiles.Tile {
	candidates := w.source.Supporting(grid.ValidMoveSet(entry.Position))
	if !entry.Wildcard {
		filtered := candidates[:0:0]
		for _, t := range candidates {
			if t.Connectors.Has(entry.Incoming) {
				filtered = append(filtered, t)
			}
		}
		candidates = filtered
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[w.rng.Intn(len(candidates))]
}

// expand offers every unplaced neighbor the tile connects to.
func (w *Walker) expand(frontier *Frontier, placement *Placement, pos grid.Position, tile *tiles.Tile) {
	for _, c := range tile.Connectors.Directions() {
		next, ok := grid.Neighbor(pos, c)
		if !ok || placement.Has(next) {
			continue
		}
		frontier.Add(Entry{Position: next, Incoming: c.Inverse()})
	}
}
