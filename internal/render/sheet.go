package render

import (
	"context"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/creatures/internal/creature"
	"github.com/samdwyer/creatures/internal/telemetry"
)

// Options controls how a sheet of creatures is laid out and generated.
type Options struct {
	Columns int // creatures per row
	Rows    int // creatures per column
	Padding int // pixels around each creature on every side

	// Background, when non-nil, is composited under the finished sheet.
	Background color.Color

	// Workers above one generate creatures concurrently, each from its own
	// random stream (see CreatureSeed). The image then differs from the
	// sequential one for the same seed but is still reproducible.
	Workers int
}

// Sheet renders a grid of creatures into one image.
type Sheet struct {
	gen      *creature.Generator
	tileSize int
	opts     Options
}

// NewSheet creates a sheet renderer using gen for creatures of the given tile size.
func NewSheet(gen *creature.Generator, tileSize int, opts Options) *Sheet {
	return &Sheet{gen: gen, tileSize: tileSize, opts: opts}
}

// Bounds returns the pixel rectangle of the whole sheet.
func (s *Sheet) Bounds() image.Rectangle {
	size := CreatureSize(s.tileSize, s.opts.Padding)
	return image.Rect(0, 0, s.opts.Columns*size, s.opts.Rows*size)
}

// CreatureSeed derives the seed of the creature at index from the sheet seed.
func CreatureSeed(seed int64, index int) int64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(index))
	return int64(xxhash.Sum64(buf[:]))
}

// Generate produces Columns*Rows creatures in row-major order.
func (s *Sheet) Generate(ctx context.Context, seed int64) ([]*creature.Placement, error) {
	count := s.opts.Columns * s.opts.Rows
	if count <= 0 {
		return nil, fmt.Errorf("invalid sheet dimension %dx%d", s.opts.Columns, s.opts.Rows)
	}
	if s.opts.Workers > 1 {
		return s.generateParallel(ctx, seed, count)
	}

	rng := rand.New(rand.NewSource(seed))
	creatures := make([]*creature.Placement, count)
	for i := range creatures {
		p, err := s.gen.Generate(ctx, rng)
		if err != nil {
			return nil, fmt.Errorf("creature %d: %w", i, err)
		}
		creatures[i] = p
	}
	return creatures, nil
}

func (s *Sheet) generateParallel(ctx context.Context, seed int64, count int) ([]*creature.Placement, error) {
	creatures := make([]*creature.Placement, count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i := range creatures {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(CreatureSeed(seed, i)))
			p, err := s.gen.Generate(gctx, rng)
			if err != nil {
				return fmt.Errorf("creature %d: %w", i, err)
			}
			creatures[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return creatures, nil
}

// Render generates the creatures for seed and paints them row by row.
func (s *Sheet) Render(ctx context.Context, seed int64) (*image.RGBA, error) {
	tracer := telemetry.Tracer("render")
	ctx, span := tracer.Start(ctx, "sheet.render")
	defer span.End()

	startTime := time.Now()

	creatures, err := s.Generate(ctx, seed)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	img, err := s.Paint(creatures)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	tilesPlaced := 0
	for _, c := range creatures {
		tilesPlaced += c.Len()
	}

	span.SetAttributes(
		attribute.String("run.id", uuid.NewString()),
		attribute.Int64("sheet.seed", seed),
		attribute.Int("sheet.columns", s.opts.Columns),
		attribute.Int("sheet.rows", s.opts.Rows),
		attribute.Int("sheet.workers", s.opts.Workers),
		attribute.Int("sheet.tiles_placed", tilesPlaced),
		attribute.Int64("sheet.render_ms", time.Since(startTime).Milliseconds()),
	)

	return img, nil
}

// Paint draws already generated creatures in row-major order.
func (s *Sheet) Paint(creatures []*creature.Placement) (*image.RGBA, error) {
	img := image.NewRGBA(s.Bounds())
	size := CreatureSize(s.tileSize, s.opts.Padding)

	for i, c := range creatures {
		if s.opts.Columns <= 0 {
			break
		}
		col, row := i%s.opts.Columns, i/s.opts.Columns
		if row >= s.opts.Rows {
			break
		}
		origin := image.Pt(col*size, row*size)
		if err := drawCreature(img, origin, c, s.tileSize, s.opts.Padding); err != nil {
			return nil, fmt.Errorf("creature %d: %w", i, err)
		}
	}

	if s.opts.Background != nil {
		img = Flatten(img, s.opts.Background)
	}
	return img, nil
}
