package tiles

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/samdwyer/creatures/internal/grid"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func TestParseFileName(t *testing.T) {
	tests := []struct {
		input      string
		name       string
		connectors string
		valid      bool
	}{
		{"circle_ns.png", "circle", "ns", true},
		{"tiles/arc_wne.png", "arc", "new", true},
		{"half_moon_e.png", "half_moon", "e", true},
		{"dup_nnee.png", "dup", "ne", true},
		{"foo.v2_ns.png", "foo.v2", "ns", true},
		{"plain_w", "plain", "w", true},
		{"leaf_e.tar.png", "", "", false},
		{"noconnectors.png", "", "", false},
		{"trailing_.png", "", "", false},
		{"_ns.png", "", "", false},
		{"bad_nx.png", "", "", false},
	}

	for _, tt := range tests {
		name, conns, err := ParseFileName(tt.input)
		if !tt.valid {
			if err == nil {
				t.Errorf("ParseFileName(%q) should be invalid, got %s(%s)", tt.input, name, conns)
			} else if !errors.Is(err, ErrMalformedName) {
				t.Errorf("ParseFileName(%q) error should wrap ErrMalformedName, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFileName(%q) should be valid, got error: %v", tt.input, err)
			continue
		}
		if name != tt.name || conns.String() != tt.connectors {
			t.Errorf("ParseFileName(%q) = %s(%s), want %s(%s)", tt.input, name, conns, tt.name, tt.connectors)
		}
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"tiles/b_ew.png":       {Data: encodePNG(t, 8, 8)},
		"tiles/a_ns.png":       {Data: encodePNG(t, 8, 8)},
		"tiles/c_nesw.png":     {Data: encodePNG(t, 8, 8)},
		"tiles/.DS_Store":      {Data: []byte("junk")},
		"tiles/nested/x_n.png": {Data: encodePNG(t, 4, 4)},
	}

	repo, err := Load(fsys, "tiles")
	if err != nil {
		t.Fatalf("Failed to load tiles: %v", err)
	}

	if repo.Count() != 3 {
		t.Fatalf("Expected 3 tiles, got %d", repo.Count())
	}
	if repo.TileSize() != 8 {
		t.Errorf("Expected tile size 8, got %d", repo.TileSize())
	}

	// Repository order follows file names.
	names := []string{"a", "b", "c"}
	for i, tile := range repo.All() {
		if tile.Name != names[i] {
			t.Errorf("Tile %d: expected %q, got %q", i, names[i], tile.Name)
		}
	}

	if tile := repo.ByName("c"); tile == nil || tile.Connectors != grid.AllDirections {
		t.Errorf("ByName(c) = %v, want c(nesw)", tile)
	}
	if repo.ByName("missing") != nil {
		t.Error("ByName should return nil for unknown names")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
		want error
	}{
		{
			name: "malformed name",
			fsys: fstest.MapFS{"t/plain.png": {Data: encodePNG(t, 8, 8)}},
			want: ErrMalformedName,
		},
		{
			name: "size mismatch",
			fsys: fstest.MapFS{
				"t/a_n.png": {Data: encodePNG(t, 8, 8)},
				"t/b_s.png": {Data: encodePNG(t, 16, 16)},
			},
			want: ErrSizeMismatch,
		},
		{
			name: "not square",
			fsys: fstest.MapFS{"t/a_n.png": {Data: encodePNG(t, 8, 6)}},
			want: ErrNotSquare,
		},
		{
			name: "empty",
			fsys: fstest.MapFS{"t/.keep": {Data: nil}},
			want: ErrNoTiles,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.fsys, "t")
			if !errors.Is(err, tt.want) {
				t.Errorf("Load error = %v, want %v", err, tt.want)
			}
		})
	}

	_, err := Load(fstest.MapFS{"t/a_n.png": {Data: []byte("not an image")}}, "t")
	if err == nil {
		t.Error("Expected decode error for corrupt image")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dot_nesw.png"), encodePNG(t, 5, 5), 0o600); err != nil {
		t.Fatalf("Failed to write tile: %v", err)
	}

	repo, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if repo.Count() != 1 || repo.All()[0].Source != "dot_nesw.png" {
		t.Errorf("Unexpected repository contents: %v", repo.All())
	}
}

func TestSupporting(t *testing.T) {
	repo := Synthesize(8, color.Black)

	if repo.Count() != 15 {
		t.Fatalf("Expected 15 synthesized tiles, got %d", repo.Count())
	}

	north := grid.NewDirectionSet(grid.North)
	matches := repo.Supporting(north)
	if len(matches) != 8 {
		t.Errorf("Expected 8 tiles with a north connector, got %d", len(matches))
	}

	// Results keep repository order.
	all := repo.All()
	j := 0
	for _, tile := range all {
		if j < len(matches) && tile == matches[j] {
			j++
		}
	}
	if j != len(matches) {
		t.Error("Supporting did not preserve repository order")
	}

	for _, tile := range repo.Supporting(grid.AllDirections) {
		if tile.Connectors.Empty() {
			t.Errorf("Tile %s has no connectors", tile)
		}
	}
	if got := repo.Supporting(0); len(got) != 0 {
		t.Errorf("Supporting(empty) = %v, want none", got)
	}
}

func TestEmptyRepository(t *testing.T) {
	repo, err := NewRepository(nil)
	if err != nil {
		t.Fatalf("NewRepository(nil) failed: %v", err)
	}
	if repo.TileSize() != 0 || repo.Count() != 0 {
		t.Errorf("Empty repository reported size %d count %d", repo.TileSize(), repo.Count())
	}
	if got := repo.Supporting(grid.AllDirections); len(got) != 0 {
		t.Errorf("Empty repository returned tiles: %v", got)
	}
}

func TestNewRepositoryRejectsMissingImage(t *testing.T) {
	good := &Tile{Name: "ok", Connectors: grid.AllDirections, Image: image.NewRGBA(image.Rect(0, 0, 4, 4))}
	bare := &Tile{Name: "bare", Connectors: grid.AllDirections}

	for _, list := range [][]*Tile{{bare}, {good, bare}, {good, nil}} {
		_, err := NewRepository(list)
		if !errors.Is(err, ErrNoImage) {
			t.Errorf("NewRepository(%v) error = %v, want ErrNoImage", list, err)
		}
	}
}

func TestSynthesizedTilePixels(t *testing.T) {
	repo := Synthesize(8, color.White)
	tile := repo.ByName("bar-n")
	if tile == nil {
		t.Fatal("bar-n not found")
	}

	// Top edge center is inked, bottom edge center is not.
	if _, _, _, a := tile.Image.At(4, 0).RGBA(); a == 0 {
		t.Error("Expected ink on the north edge")
	}
	if _, _, _, a := tile.Image.At(4, 7).RGBA(); a != 0 {
		t.Error("Expected no ink on the south edge")
	}
}
