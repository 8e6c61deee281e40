package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/samdwyer/creatures/internal/render"
)

const (
	// DefaultColumns and DefaultRows give the default 35x17 sheet.
	DefaultColumns = 35
	DefaultRows    = 17

	// SynthTileSize is the tile size used when no tile directory is configured.
	SynthTileSize = 16
)

// Config holds generator configuration options.
type Config struct {
	// TilesDir is the directory of <name>_<connectors>.<ext> tile images.
	// Empty means the built-in synthesized tiles.
	TilesDir string

	Columns int
	Rows    int
	Padding int

	// Background is "none", a color name or a hex color.
	Background string

	// Output path; empty means DefaultOutput(dimension, seed).
	Output string

	// Seed for random number generation. SeedSet is false when no seed was
	// given and one must be picked from the clock.
	Seed    int64
	SeedSet bool

	Workers     int
	MaxAttempts int
	Verbosity   int
	Preview     bool
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Columns: DefaultColumns,
		Rows:    DefaultRows,
		Workers: 1,
	}
}

// ParseDimension parses a WxH creature grid such as "35x17".
func ParseDimension(s string) (columns, rows int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid dimension %q: expected WxH", s)
	}
	columns, err = strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid dimension width in %q: %w", s, err)
	}
	rows, err = strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid dimension height in %q: %w", s, err)
	}
	if columns <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("invalid dimension %q: both sides must be positive", s)
	}
	return columns, rows, nil
}

// Dimension returns the sheet size as WxH.
func (c Config) Dimension() string {
	return fmt.Sprintf("%dx%d", c.Columns, c.Rows)
}

// SetDimension parses and applies a WxH dimension.
func (c *Config) SetDimension(s string) error {
	columns, rows, err := ParseDimension(s)
	if err != nil {
		return err
	}
	c.Columns, c.Rows = columns, rows
	return nil
}

// SetSeed fixes the seed.
func (c *Config) SetSeed(seed int64) {
	c.Seed = seed
	c.SeedSet = true
}

// DefaultOutput returns <dimension>x<seed>.png.
func DefaultOutput(dimension string, seed int64) string {
	return fmt.Sprintf("%sx%d.png", dimension, seed)
}

// OutputPath returns the configured output path or the default one.
func (c Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return DefaultOutput(c.Dimension(), c.Seed)
}

// Validate checks the configuration before a run.
func (c Config) Validate() error {
	var errs []error
	if c.Columns <= 0 || c.Rows <= 0 {
		errs = append(errs, fmt.Errorf("dimension %s must be positive", c.Dimension()))
	}
	if c.Padding < 0 {
		errs = append(errs, fmt.Errorf("padding %d must not be negative", c.Padding))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", c.Workers))
	}
	if _, err := render.ParseBackground(c.Background); err != nil {
		errs = append(errs, err)
	}
	if !c.Preview {
		if _, err := render.FormatFor(c.OutputPath()); err != nil {
			errs = append(errs, fmt.Errorf("output %s: %w", c.OutputPath(), err))
		}
	}
	return errors.Join(errs...)
}

// ApplyEnv reads CREATURES_TILES and CREATURES_BACKGROUND.
func (c *Config) ApplyEnv() {
	if dir := os.Getenv("CREATURES_TILES"); dir != "" {
		c.TilesDir = dir
	}
	if bg := os.Getenv("CREATURES_BACKGROUND"); bg != "" {
		c.Background = bg
	}
}

// fileConfig is the structure of an HCL configuration file.
type fileConfig struct {
	Tiles      *string `hcl:"tiles,optional"`
	Dimension  *string `hcl:"dimension,optional"`
	Padding    *int    `hcl:"padding,optional"`
	Background *string `hcl:"background,optional"`
	Output     *string `hcl:"output,optional"`
	Seed       *int64  `hcl:"seed,optional"`
	Workers    *int    `hcl:"workers,optional"`
	Attempts   *int    `hcl:"attempts,optional"`
}

// LoadFile applies the attributes set in an HCL configuration file:
//
//	tiles      = "tiles/"
//	dimension  = "12x8"
//	padding    = 16
//	background = "#ffffff"
func (c *Config) LoadFile(path string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	if fc.Tiles != nil {
		c.TilesDir = *fc.Tiles
	}
	if fc.Dimension != nil {
		if err := c.SetDimension(*fc.Dimension); err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
	}
	if fc.Padding != nil {
		c.Padding = *fc.Padding
	}
	if fc.Background != nil {
		c.Background = *fc.Background
	}
	if fc.Output != nil {
		c.Output = *fc.Output
	}
	if fc.Seed != nil {
		c.SetSeed(*fc.Seed)
	}
	if fc.Workers != nil {
		c.Workers = *fc.Workers
	}
	if fc.Attempts != nil {
		c.MaxAttempts = *fc.Attempts
	}
	return nil
}
