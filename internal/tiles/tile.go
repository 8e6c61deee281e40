// Package tiles provides tile images with edge connectors and the repository
// the creature walk draws them from.
package tiles

import (
	"errors"
	"fmt"
	"image"
	"path"
	"strings"

	"github.com/samdwyer/creatures/internal/grid"
)

var (
	// ErrMalformedName is returned for a file name without a valid connector segment.
	ErrMalformedName = errors.New("malformed tile file name")
	// ErrNoImage is returned for a tile without an image.
	ErrNoImage = errors.New("tile has no image")
	// ErrNotSquare is returned for a tile image whose width and height differ.
	ErrNotSquare = errors.New("tile image is not square")
	// ErrSizeMismatch is returned when tiles in one repository differ in size.
	ErrSizeMismatch = errors.New("tile size mismatch")
	// ErrNoTiles is returned when a tile directory holds no tiles.
	ErrNoTiles = errors.New("no tiles found")
)

// Tile is a square image whose edges may connect to neighboring tiles.
type Tile struct {
	Name       string
	Connectors grid.DirectionSet
	Source     string // file name the tile was loaded from, empty if synthesized
	Image      image.Image
}

// Size returns the tile's edge length in pixels.
func (t *Tile) Size() int {
	return t.Image.Bounds().Dx()
}

// String returns the tile as name(connectors).
func (t *Tile) String() string {
	return fmt.Sprintf("%s(%s)", t.Name, t.Connectors)
}

// ParseFileName extracts the tile name and connector set from a file name of
// the form <name>_<connectors>.<ext>. Only the final extension is stripped and
// the connector code is the segment after the last underscore, so names may
// contain dots and underscores.
func ParseFileName(fileName string) (string, grid.DirectionSet, error) {
	base := path.Base(fileName)
	base = strings.TrimSuffix(base, path.Ext(base))

	sep := strings.LastIndexByte(base, '_')
	if sep <= 0 || sep == len(base)-1 {
		return "", 0, fmt.Errorf("%w: %s: expected <name>_<connectors>.<ext>", ErrMalformedName, fileName)
	}

	connectors, err := grid.ParseDirectionSet(base[sep+1:])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %s: %v", ErrMalformedName, fileName, err)
	}

	return base[:sep], connectors, nil
}
