package tiles

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"path"
	"strings"

	// Registered decoders for tile images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Load reads every tile image directly inside dir of fsys. Subdirectories and
// hidden files are skipped. Tiles keep the lexical order of their file names.
func Load(fsys fs.FS, dir string) (*Repository, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tile directory %s: %w", dir, err)
	}

	var tiles []*Tile
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		t, err := loadTile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}

	if len(tiles) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTiles, dir)
	}

	return NewRepository(tiles)
}

// LoadDir loads the tiles found in a directory of the local file system.
func LoadDir(dir string) (*Repository, error) {
	return Load(os.DirFS(dir), ".")
}

// MustLoad loads tiles, panicking on error.
// Use this only for tile sets compiled into the binary.
func MustLoad(fsys fs.FS, dir string) *Repository {
	repo, err := Load(fsys, dir)
	if err != nil {
		panic(err)
	}
	return repo
}

func loadTile(fsys fs.FS, name string) (*Tile, error) {
	tileName, connectors, err := ParseFileName(name)
	if err != nil {
		return nil, err
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open tile %s: %w", name, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tile %s: %w", name, err)
	}

	return &Tile{
		Name:       tileName,
		Connectors: connectors,
		Source:     path.Base(name),
		Image:      img,
	}, nil
}
