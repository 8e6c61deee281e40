package ui

import (
	"context"
	"image/color"
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"

	"github.com/samdwyer/creatures/internal/creature"
	"github.com/samdwyer/creatures/internal/grid"
	"github.com/samdwyer/creatures/internal/tiles"
)

func newSimScreen(t *testing.T, w, h int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(screen.Close)
	return screen, sim
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		code string
		want rune
	}{
		{"n", '╵'},
		{"ns", '│'},
		{"ew", '─'},
		{"es", '┌'},
		{"nw", '┘'},
		{"nes", '├'},
		{"esw", '┬'},
		{"nesw", '┼'},
	}

	for _, tt := range tests {
		conns, err := grid.ParseDirectionSet(tt.code)
		if err != nil {
			t.Fatalf("bad code %q: %v", tt.code, err)
		}
		if got := Glyph(conns); got != tt.want {
			t.Errorf("Glyph(%s) = %q, want %q", tt.code, got, tt.want)
		}
	}
	if Glyph(0) != ' ' {
		t.Error("empty connector set should render blank")
	}
}

func TestRender(t *testing.T) {
	screen, sim := newSimScreen(t, 20, 10)
	renderer := NewRenderer(screen)

	repo := tiles.Synthesize(4, color.White)
	gen := creature.NewGenerator(repo, 0, logr.Discard())
	rng := rand.New(rand.NewSource(42))

	var creatures []*creature.Placement
	for i := 0; i < 2; i++ {
		p, err := gen.Generate(context.Background(), rng)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		creatures = append(creatures, p)
	}

	renderer.Render(creatures, 2, "seed 42")

	for i, c := range creatures {
		originX := i * cellStride
		for pos := grid.Position(0); pos < grid.Cells; pos++ {
			got, _, _, _ := sim.GetContent(originX+pos.Col(), pos.Row())
			want := ' '
			if tile := c.At(pos); tile != nil {
				want = Glyph(tile.Connectors)
			}
			if got != want {
				t.Errorf("creature %d pos %d: got %q, want %q", i, pos, got, want)
			}
		}
	}

	status := []rune("seed 42")
	for i, want := range status {
		if got, _, _, _ := sim.GetContent(i, 9); got != want {
			t.Errorf("status[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestFit(t *testing.T) {
	screen, _ := newSimScreen(t, 41, 17)
	columns, rows := NewRenderer(screen).Fit()
	if columns != 10 || rows != 4 {
		t.Errorf("Fit() = %d,%d, want 10,4", columns, rows)
	}
}

func TestWaitAction(t *testing.T) {
	screen, sim := newSimScreen(t, 20, 10)

	tests := []struct {
		name string
		ev   tcell.Event
		want Action
	}{
		{"next", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), ActionNext},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ActionNext},
		{"quit", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), ActionQuit},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{"resize", tcell.NewEventResize(30, 12), ActionRedraw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// An unbound key first; it must be skipped.
			if err := sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); err != nil {
				t.Fatalf("PostEvent: %v", err)
			}
			if err := sim.PostEvent(tt.ev); err != nil {
				t.Fatalf("PostEvent: %v", err)
			}
			got := screen.WaitAction()
			// Screens may report their initial size once.
			for got == ActionRedraw && tt.want != ActionRedraw {
				got = screen.WaitAction()
			}
			if got != tt.want {
				t.Errorf("WaitAction() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSetTextClips(t *testing.T) {
	screen, sim := newSimScreen(t, 5, 2)
	screen.Frame(func() {
		screen.SetText(2, 0, "abcdef", tcell.StyleDefault)
	})

	for x, want := range []rune{' ', ' ', 'a', 'b', 'c'} {
		if got, _, _, _ := sim.GetContent(x, 0); got != want {
			t.Errorf("cell %d = %q, want %q", x, got, want)
		}
	}
}
