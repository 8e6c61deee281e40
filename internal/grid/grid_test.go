package grid

import (
	"testing"
)

func TestAdjacencySymmetry(t *testing.T) {
	for p := Position(0); p < Cells; p++ {
		for _, d := range Directions {
			q, ok := Neighbor(p, d)
			if !ok {
				continue
			}
			back, ok := Neighbor(q, d.Inverse())
			if !ok {
				t.Errorf("(%d,%s)->%d but (%d,%s) has no move", p, d, q, q, d.Inverse())
				continue
			}
			if back != p {
				t.Errorf("(%d,%s)->%d but (%d,%s)->%d", p, d, q, q, d.Inverse(), back)
			}
		}
	}
}

func TestValidMoves(t *testing.T) {
	expected := map[Position]string{
		0: "es", 1: "esw", 2: "sw",
		3: "nes", 4: "nesw", 5: "nsw",
		6: "ne", 7: "new", 8: "nw",
	}

	for p := Position(0); p < Cells; p++ {
		got := ValidMoves(p)
		if NewDirectionSet(got...).String() != expected[p] {
			t.Errorf("ValidMoves(%d) = %v, want %s", p, got, expected[p])
		}
		for i := 1; i < len(got); i++ {
			if got[i-1] >= got[i] {
				t.Errorf("ValidMoves(%d) not sorted or has duplicates: %v", p, got)
			}
		}
		for _, d := range got {
			if _, ok := Neighbor(p, d); !ok {
				t.Errorf("ValidMoves(%d) returned %s which has no table entry", p, d)
			}
		}
	}
}

func TestNeighborOffGrid(t *testing.T) {
	tests := []struct {
		p Position
		d Direction
	}{
		{0, North}, {0, West}, {2, East}, {6, South}, {8, South}, {-1, East}, {9, North},
	}

	for _, tt := range tests {
		if q, ok := Neighbor(tt.p, tt.d); ok {
			t.Errorf("Neighbor(%d,%s) = %d, expected no move", tt.p, tt.d, q)
		}
	}
}

func TestPositionGeometry(t *testing.T) {
	p := Position(7)
	if p.Row() != 2 || p.Col() != 1 {
		t.Errorf("Position 7: got row %d col %d", p.Row(), p.Col())
	}
	if Position(9).Valid() || Position(-1).Valid() {
		t.Error("positions outside [0,8] should be invalid")
	}
}

func TestReachable(t *testing.T) {
	got := Reachable(4, AllDirections)
	want := []Position{1, 3, 5, 7}
	if len(got) != len(want) {
		t.Fatalf("Reachable(4, nesw) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Reachable(4, nesw)[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	// Off-grid directions are dropped rather than reported.
	if got := Reachable(0, NewDirectionSet(North, West)); len(got) != 0 {
		t.Errorf("Reachable(0, nw) = %v, want none", got)
	}
}

func TestParseDirectionSet(t *testing.T) {
	tests := []struct {
		input string
		want  string
		valid bool
	}{
		{"n", "n", true},
		{"nesw", "nesw", true},
		{"wsen", "nesw", true},
		{"nnss", "ns", true},
		{"", "", false},
		{"nx", "", false},
		{"N", "", false},
	}

	for _, tt := range tests {
		got, err := ParseDirectionSet(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseDirectionSet(%q) should be valid, got error: %v", tt.input, err)
			continue
		}
		if !tt.valid {
			if err == nil {
				t.Errorf("ParseDirectionSet(%q) should be invalid, got %s", tt.input, got)
			}
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseDirectionSet(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestDirectionSetOps(t *testing.T) {
	ns := NewDirectionSet(North, South)
	ew := NewDirectionSet(East, West)

	if ns.Intersects(ew) {
		t.Error("ns and ew should not intersect")
	}
	if !ns.Intersects(AllDirections) {
		t.Error("ns should intersect nesw")
	}
	if ns.Len() != 2 || AllDirections.Len() != 4 {
		t.Errorf("unexpected lengths: %d %d", ns.Len(), AllDirections.Len())
	}
	if !DirectionSet(0).Empty() || ns.Empty() {
		t.Error("Empty reported incorrectly")
	}
	for _, d := range Directions {
		if d.Inverse().Inverse() != d {
			t.Errorf("inverse of inverse of %s is not %s", d, d)
		}
	}
}
