// Package app wires configuration, tiles, the creature walk and the renderers
// into the two things the program does: write a sheet or preview it live.
package app

import (
	"context"
	"fmt"
	"image/color"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/creatures/internal/creature"
	"github.com/samdwyer/creatures/internal/render"
	"github.com/samdwyer/creatures/internal/telemetry"
	"github.com/samdwyer/creatures/internal/tiles"
	"github.com/samdwyer/creatures/internal/ui"
)

// App holds the loaded tiles and the generator built from them.
type App struct {
	cfg    Config
	logger logr.Logger
	repo   *tiles.Repository
	gen    *creature.Generator
}

// New validates cfg and loads the tile repository.
func New(ctx context.Context, cfg Config, logger logr.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repo, err := loadTiles(ctx, cfg.TilesDir)
	if err != nil {
		return nil, err
	}

	logger.Info("loaded tiles", "count", repo.Count(), "tilesize", repo.TileSize(), "dir", cfg.TilesDir)
	for _, t := range repo.All() {
		logger.V(1).Info("tile", "name", t.Name, "connectors", t.Connectors.String(), "source", t.Source)
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		repo:   repo,
		gen:    creature.NewGenerator(repo, cfg.MaxAttempts, logger),
	}, nil
}

func loadTiles(ctx context.Context, dir string) (*tiles.Repository, error) {
	tracer := telemetry.Tracer("tiles")
	_, span := tracer.Start(ctx, "tiles.load")
	defer span.End()

	if dir == "" {
		repo := tiles.Synthesize(SynthTileSize, color.Black)
		span.SetAttributes(
			attribute.Bool("tiles.synthesized", true),
			attribute.Int("tiles.count", repo.Count()),
		)
		return repo, nil
	}

	repo, err := tiles.LoadDir(dir)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("tiles.dir", dir),
		attribute.Int("tiles.count", repo.Count()),
		attribute.Int("tiles.size", repo.TileSize()),
	)
	return repo, nil
}

// Repository returns the loaded tiles.
func (a *App) Repository() *tiles.Repository {
	return a.repo
}

// Render generates the configured sheet, writes it and returns the output path.
func (a *App) Render(ctx context.Context) (string, error) {
	bg, err := render.ParseBackground(a.cfg.Background)
	if err != nil {
		return "", err
	}

	sheet := render.NewSheet(a.gen, a.repo.TileSize(), render.Options{
		Columns:    a.cfg.Columns,
		Rows:       a.cfg.Rows,
		Padding:    a.cfg.Padding,
		Background: bg,
		Workers:    a.cfg.Workers,
	})

	img, err := sheet.Render(ctx, a.cfg.Seed)
	if err != nil {
		return "", fmt.Errorf("failed to render %s sheet: %w", a.cfg.Dimension(), err)
	}

	path := a.cfg.OutputPath()
	if err := render.Save(path, img); err != nil {
		return "", err
	}

	a.logger.Info("wrote creatures", "path", path, "dimension", a.cfg.Dimension(), "seed", a.cfg.Seed,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return path, nil
}

// Preview shows creatures on the terminal until the user quits. Pressing r or
// space advances to the next seed. The screen is closed on return.
func (a *App) Preview(ctx context.Context, screen *ui.Screen) error {
	tracer := telemetry.Tracer("app")
	ctx, span := tracer.Start(ctx, "app.preview")
	defer span.End()
	defer screen.Close()

	renderer := ui.NewRenderer(screen)
	seed := a.cfg.Seed
	redraws := 0

	for running := true; running; {
		columns, rows := renderer.Fit()
		sheet := render.NewSheet(a.gen, a.repo.TileSize(), render.Options{
			Columns: columns,
			Rows:    rows,
			Workers: a.cfg.Workers,
		})
		creatures, err := sheet.Generate(ctx, seed)
		if err != nil {
			span.RecordError(err)
			return err
		}
		renderer.Render(creatures, columns, fmt.Sprintf("seed %d  [r] next  [q] quit", seed))
		redraws++

		switch screen.WaitAction() {
		case ui.ActionQuit:
			running = false
		case ui.ActionNext:
			seed++
		}
	}

	span.SetAttributes(
		attribute.Int64("preview.last_seed", seed),
		attribute.Int("preview.redraws", redraws),
	)
	return nil
}
