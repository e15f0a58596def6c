package puzzle

import (
	"testing"

	"pgregory.net/rapid"
)

func mustPiece(t *testing.T, cells []Coord, rotatable, negative bool) *Piece {
	t.Helper()
	p, err := NewPiece(cells, rotatable, negative)
	if err != nil {
		t.Fatalf("NewPiece(%v): %v", cells, err)
	}
	return p
}

func shapeSet(shape []Coord) map[Coord]struct{} {
	set := make(map[Coord]struct{}, len(shape))
	for _, c := range shape {
		set[c] = struct{}{}
	}
	return set
}

func TestPieceNormalization(t *testing.T) {
	tests := []struct {
		name       string
		cells      []Coord
		rotatable  bool
		wantShapes int
	}{
		{
			name:       "single cell",
			cells:      []Coord{{X: 3, Y: 9}},
			rotatable:  true,
			wantShapes: 1,
		},
		{
			name:       "vertical domino rotatable",
			cells:      []Coord{{X: 4, Y: 5}, {X: 4, Y: 6}},
			rotatable:  true,
			wantShapes: 2,
		},
		{
			name:       "vertical domino fixed",
			cells:      []Coord{{X: 4, Y: 5}, {X: 4, Y: 6}},
			rotatable:  false,
			wantShapes: 1,
		},
		{
			name:       "square block rotatable",
			cells:      []Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
			rotatable:  true,
			wantShapes: 1,
		},
		{
			name:       "L tromino rotatable",
			cells:      []Coord{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
			rotatable:  true,
			wantShapes: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustPiece(t, tt.cells, tt.rotatable, false)
			if len(p.Shapes()) != tt.wantShapes {
				t.Fatalf("got %d shapes, want %d: %v", len(p.Shapes()), tt.wantShapes, p.Shapes())
			}
			if p.Count() != len(tt.cells) {
				t.Fatalf("count = %d, want %d", p.Count(), len(tt.cells))
			}
		})
	}
}

func TestPieceDominoRotations(t *testing.T) {
	p := mustPiece(t, []Coord{{X: 4, Y: 5}, {X: 4, Y: 6}}, true, false)

	want := []map[Coord]struct{}{
		shapeSet([]Coord{{X: 0, Y: 0}, {X: 0, Y: 1}}),
		shapeSet([]Coord{{X: 0, Y: 0}, {X: 1, Y: 0}}),
	}
	for _, shape := range p.Shapes() {
		got := shapeSet(shape)
		matched := false
		for _, w := range want {
			if len(got) == len(w) {
				same := true
				for c := range w {
					if _, ok := got[c]; !ok {
						same = false
						break
					}
				}
				if same {
					matched = true
				}
			}
		}
		if !matched {
			t.Fatalf("unexpected rotation %v", shape)
		}
	}
}

func TestPieceRejectsBadCells(t *testing.T) {
	if _, err := NewPiece(nil, false, false); err == nil {
		t.Fatal("empty piece accepted")
	}
	if _, err := NewPiece([]Coord{{X: 1, Y: 1}, {X: 1, Y: 1}}, false, false); err == nil {
		t.Fatal("duplicate cells accepted")
	}
}

func TestPieceKeyIgnoresTranslation(t *testing.T) {
	a := mustPiece(t, []Coord{{X: 0, Y: 0}, {X: 0, Y: 1}}, false, false)
	b := mustPiece(t, []Coord{{X: 7, Y: 3}, {X: 7, Y: 4}}, false, false)
	if a.Key() != b.Key() {
		t.Fatalf("translated pieces have different keys: %q vs %q", a.Key(), b.Key())
	}

	c := mustPiece(t, []Coord{{X: 0, Y: 0}, {X: 0, Y: 1}}, false, true)
	if a.Key() == c.Key() {
		t.Fatal("negative flag not reflected in key")
	}
}

// TestPieceShapeLaws checks the normalization contract for arbitrary
// shapes: every rotation is anchored with a cell at the origin, rotations
// are deduplicated, and their number is 1, 2 or 4.
func TestPieceShapeLaws(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(t, "cells")
		seen := make(map[Coord]struct{})
		var cells []Coord
		for len(cells) < n {
			c := Coord{
				X: rapid.IntRange(-3, 3).Draw(t, "x"),
				Y: rapid.IntRange(-3, 3).Draw(t, "y"),
			}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			cells = append(cells, c)
		}
		rotatable := rapid.Bool().Draw(t, "rotatable")

		p, err := NewPiece(cells, rotatable, false)
		if err != nil {
			t.Fatalf("NewPiece: %v", err)
		}

		shapes := p.Shapes()
		switch len(shapes) {
		case 1, 2, 4:
		default:
			t.Fatalf("got %d shapes", len(shapes))
		}
		if !rotatable && len(shapes) != 1 {
			t.Fatalf("fixed piece has %d shapes", len(shapes))
		}

		sigs := make(map[string]struct{})
		for _, shape := range shapes {
			if len(shape) != p.Count() {
				t.Fatalf("shape %v has %d cells, want %d", shape, len(shape), p.Count())
			}
			if _, ok := shapeSet(shape)[(Coord{})]; !ok {
				t.Fatalf("shape %v is not anchored at the origin", shape)
			}
			sig := coordsKey(shape)
			if _, dup := sigs[sig]; dup {
				t.Fatalf("duplicate rotation %v", shape)
			}
			sigs[sig] = struct{}{}
		}
	})
}
