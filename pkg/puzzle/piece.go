package puzzle

import (
	"fmt"
	"sort"
	"strings"
)

// Piece is a polyomino carried by a tetris cell. Yellow (positive) pieces
// must pack exactly into their region; blue (negative) pieces cancel yellow
// overlaps and may sit outside the region.
//
// On construction every rotation of the shape (the original only, or all four
// quarter turns when the piece is rotatable) is normalized by translating it
// so that its lexicographically smallest cell lands on (0, 0), and duplicate
// rotations are collapsed. Anchoring a shape cell at the origin means that
// sliding the shape over every cell of a region is guaranteed to find a fit
// if one exists.
type Piece struct {
	shapes    [][]Coord
	count     int
	rotatable bool
	negative  bool
	key       string
}

// NewPiece builds a piece from the given cells. The cells may sit anywhere;
// only their relative arrangement matters. They must be non-empty and
// duplicate-free.
func NewPiece(cells []Coord, rotatable, negative bool) (*Piece, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("piece must have at least one cell")
	}
	seen := make(map[Coord]struct{}, len(cells))
	for _, c := range cells {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("duplicate piece cell (%d, %d)", c.X, c.Y)
		}
		seen[c] = struct{}{}
	}

	p := &Piece{
		count:     len(cells),
		rotatable: rotatable,
		negative:  negative,
	}

	rotations := [][]Coord{append([]Coord(nil), cells...)}
	if rotatable {
		quarter := cells
		for i := 0; i < 3; i++ {
			next := make([]Coord, len(quarter))
			for j, c := range quarter {
				next[j] = Coord{X: -c.Y, Y: c.X}
			}
			rotations = append(rotations, next)
			quarter = next
		}
	}

	dedup := make(map[string]struct{}, len(rotations))
	for _, rot := range rotations {
		shape := normalize(rot)
		sig := coordsKey(shape)
		if _, dup := dedup[sig]; dup {
			continue
		}
		dedup[sig] = struct{}{}
		p.shapes = append(p.shapes, shape)
	}

	p.key = fmt.Sprintf("%d|%s|%t|%t", p.count, coordsKey(p.shapes[0]), negative, rotatable)
	return p, nil
}

// normalize translates a shape so its lexicographically smallest cell is at
// the origin, and returns the cells sorted.
func normalize(cells []Coord) []Coord {
	min := cells[0]
	for _, c := range cells[1:] {
		if c.X < min.X || (c.X == min.X && c.Y < min.Y) {
			min = c
		}
	}
	shape := make([]Coord, len(cells))
	for i, c := range cells {
		shape[i] = Coord{X: c.X - min.X, Y: c.Y - min.Y}
	}
	sort.Slice(shape, func(i, j int) bool {
		if shape[i].X != shape[j].X {
			return shape[i].X < shape[j].X
		}
		return shape[i].Y < shape[j].Y
	})
	return shape
}

func coordsKey(cells []Coord) string {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%d,%d", c.X, c.Y)
	}
	return b.String()
}

// Shapes returns the distinct normalized rotations of the piece. The result
// must not be mutated.
func (p *Piece) Shapes() [][]Coord { return p.shapes }

// Count returns the number of cells in the shape.
func (p *Piece) Count() int { return p.count }

// Rotatable reports whether the piece may be fitted in any orientation.
func (p *Piece) Rotatable() bool { return p.rotatable }

// Negative reports whether this is a blue (subtracting) piece.
func (p *Piece) Negative() bool { return p.negative }

// Key returns a canonical identity for the piece's shape and flags, ordered
// by (count, cells, negative, rotatable). Pieces with equal keys are
// interchangeable for memoization purposes.
func (p *Piece) Key() string { return p.key }
