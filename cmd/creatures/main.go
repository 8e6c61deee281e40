// Package main is the entry point for the creature generator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/creatures/internal/app"
	"github.com/samdwyer/creatures/internal/telemetry"
	"github.com/samdwyer/creatures/internal/ui"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("creatures: %v", err)
	}
}

// run parses args and either writes a sheet of creatures or starts the
// terminal preview.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	// Report a clock-based seed so the run can be reproduced
	if !cfg.SeedSet {
		cfg.SetSeed(time.Now().Unix())
		fmt.Fprintln(stdout, cfg.Seed)
	}

	logger := telemetry.NewLogger(cfg.Verbosity)

	telemetry.ConfigureHoneycomb()
	if telemetry.Configured() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Preview {
		screen, err := ui.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		return a.Preview(ctx, screen)
	}

	_, err = a.Render(ctx)
	return err
}

// parseFlags builds the configuration from defaults, the environment, an
// optional HCL file and finally the flags that were set explicitly.
func parseFlags(args []string, output io.Writer) (app.Config, error) {
	fs := flag.NewFlagSet("creatures", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		configPath string
		dimension  string
		outPath    string
		padding    int
		seed       int64
		tilesDir   string
		background string
		workers    int
		attempts   int
		preview    bool
		verbose    bool
	)

	fs.StringVar(&configPath, "config", "", "HCL configuration file")
	for _, name := range []string{"d", "dimension"} {
		fs.StringVar(&dimension, name, "35x17", "Size of the image in creatures (each creature is 3x3 tiles)")
	}
	for _, name := range []string{"o", "output"} {
		fs.StringVar(&outPath, name, "", "Output file; the extension picks the format. Default: <width>x<height>x<seed>.png")
	}
	for _, name := range []string{"p", "padding"} {
		fs.IntVar(&padding, name, 0, "Pad each creature with this many pixels on every side")
	}
	for _, name := range []string{"s", "seed"} {
		fs.Int64Var(&seed, name, 0, "Seed for the RNG. Default is the current time, which is printed to stdout")
	}
	fs.StringVar(&tilesDir, "tiles", "", "Directory of <name>_<connectors>.<ext> tiles (default: built-in tiles, or $CREATURES_TILES)")
	fs.StringVar(&background, "background", "", "Background behind creatures: none, white, black or #rrggbb")
	fs.IntVar(&workers, "workers", 1, "Generate creatures on this many goroutines (changes the image for a seed)")
	fs.IntVar(&attempts, "attempts", 0, "Walks to try per creature before giving up (0 = default)")
	fs.BoolVar(&preview, "preview", false, "Preview creatures in the terminal instead of writing an image")
	for _, name := range []string{"v", "verbose"} {
		fs.BoolVar(&verbose, name, false, "Verbose output")
	}

	if err := fs.Parse(args); err != nil {
		return app.Config{}, err
	}
	if fs.NArg() > 0 {
		return app.Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := app.DefaultConfig()
	cfg.ApplyEnv()
	if configPath != "" {
		if err := cfg.LoadFile(configPath); err != nil {
			return app.Config{}, err
		}
	}

	var visitErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "d", "dimension":
			if err := cfg.SetDimension(dimension); err != nil {
				visitErr = err
			}
		case "o", "output":
			cfg.Output = outPath
		case "p", "padding":
			cfg.Padding = padding
		case "s", "seed":
			cfg.SetSeed(seed)
		case "tiles":
			cfg.TilesDir = tilesDir
		case "background":
			cfg.Background = background
		case "workers":
			cfg.Workers = workers
		case "attempts":
			cfg.MaxAttempts = attempts
		case "preview":
			cfg.Preview = preview
		case "v", "verbose":
			if verbose {
				cfg.Verbosity = 1
			}
		}
	})
	if visitErr != nil {
		return app.Config{}, visitErr
	}

	return cfg, nil
}
