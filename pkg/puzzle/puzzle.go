package puzzle

import (
	"errors"
	"fmt"
)

// ErrBadDimensions reports a board with non-positive width or height.
var ErrBadDimensions = errors.New("puzzle: width and height must be positive")

// Puzzle is a W×H board: the cell grid plus the surrounding node and edge
// grids, and the symmetry mode. All grids are indexed [y][x]. The model is
// populated once and treated as read-only during a solve.
type Puzzle struct {
	Width  int
	Height int

	Symmetry Symmetry

	Cells  [][]Cell // Height   × Width
	Nodes  [][]Node // Height+1 × Width+1
	VEdges [][]Edge // Height+1 × Width    (along node rows)
	HEdges [][]Edge // Height   × Width+1  (between stacked nodes)
}

// New allocates an empty board of the given dimensions.
func New(width, height int) (*Puzzle, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}

	p := &Puzzle{Width: width, Height: height}

	p.Cells = make([][]Cell, height)
	for y := range p.Cells {
		p.Cells[y] = make([]Cell, width)
	}
	p.Nodes = make([][]Node, height+1)
	for y := range p.Nodes {
		p.Nodes[y] = make([]Node, width+1)
	}
	p.VEdges = make([][]Edge, height+1)
	for y := range p.VEdges {
		p.VEdges[y] = make([]Edge, width)
	}
	p.HEdges = make([][]Edge, height)
	for y := range p.HEdges {
		p.HEdges[y] = make([]Edge, width+1)
	}

	return p, nil
}

// InBoundsNode reports whether c is a valid node coordinate.
func (p *Puzzle) InBoundsNode(c Coord) bool {
	return c.X >= 0 && c.X <= p.Width && c.Y >= 0 && c.Y <= p.Height
}

// InBoundsCell reports whether c is a valid cell coordinate.
func (p *Puzzle) InBoundsCell(c Coord) bool {
	return c.X >= 0 && c.X < p.Width && c.Y >= 0 && c.Y < p.Height
}

// MirrorNode maps a node coordinate through the board's symmetry. The second
// return is false when the board has no symmetry.
func (p *Puzzle) MirrorNode(c Coord) (Coord, bool) {
	switch p.Symmetry {
	case SymmetryHorizontal:
		return Coord{X: p.Width - c.X, Y: c.Y}, true
	case SymmetryVertical:
		return Coord{X: c.X, Y: p.Height - c.Y}, true
	case SymmetryRotational:
		return Coord{X: p.Width - c.X, Y: p.Height - c.Y}, true
	}
	return Coord{}, false
}

// MirrorPath maps a whole path through the board's symmetry, or returns nil
// when the board has none.
func (p *Puzzle) MirrorPath(path []Coord) []Coord {
	if p.Symmetry == SymmetryNone {
		return nil
	}
	twin := make([]Coord, len(path))
	for i, c := range path {
		twin[i], _ = p.MirrorNode(c)
	}
	return twin
}
