package puzzle

import "github.com/barrycohen/ttws/pkg/rng"

var randomColours = []Colour{White, Black, Red, Green, Blue, Cyan, Yellow, Orange, Magenta}

// Randomize populates the board with a random demo layout: two start nodes,
// two hexagon nodes, one hexagon on each edge orientation, two end nodes on
// the border, and roughly half the cells decorated at random. The same RNG
// state always produces the same board.
func (p *Puzzle) Randomize(r *rng.RNG) {
	randNode := func() (int, int) { return r.IntRange(0, p.Width), r.IntRange(0, p.Height) }

	for i := 0; i < 2; i++ {
		x, y := randNode()
		p.Nodes[y][x].Type |= NodeStart

		x, y = randNode()
		p.Nodes[y][x] = Node{Type: NodeHexagon, Hexagon: Black}
	}

	p.VEdges[r.IntRange(0, p.Height)][r.IntRange(0, p.Width-1)] = Edge{Kind: EdgeHexagon, Hexagon: Black}
	p.HEdges[r.IntRange(0, p.Height-1)][r.IntRange(0, p.Width)] = Edge{Kind: EdgeHexagon, Hexagon: Black}

	// End nodes go on a random border each
	for i := 0; i < 2; i++ {
		switch r.IntRange(0, 3) {
		case 0:
			p.Nodes[0][r.IntRange(0, p.Width)].Type |= NodeEnd
		case 1:
			p.Nodes[p.Height][r.IntRange(0, p.Width)].Type |= NodeEnd
		case 2:
			p.Nodes[r.IntRange(0, p.Height)][0].Type |= NodeEnd
		case 3:
			p.Nodes[r.IntRange(0, p.Height)][p.Width].Type |= NodeEnd
		}
	}

	for x := 0; x < p.Width; x++ {
		for y := 0; y < p.Height; y++ {
			// Drawing up to 10 leaves a good chance of an empty cell
			kind := r.IntRange(0, 10)
			if kind > int(CellElimination) {
				continue
			}
			cell := Cell{Kind: CellKind(kind)}
			switch cell.Kind {
			case CellSquare, CellStar:
				cell.Colour = randomColours[r.Intn(len(randomColours))]
			case CellTriangle:
				cell.Number = r.IntRange(1, 3)
			case CellTetris:
				cell.Piece = randomPiece(r)
			}
			p.Cells[y][x] = cell
		}
	}
}

// randomPiece walks up to five steps from the origin, collecting the visited
// cells into a shape.
func randomPiece(r *rng.RNG) *Piece {
	var cells []Coord
	seen := make(map[Coord]struct{})
	at := Coord{}
	for n := r.IntRange(1, 5); n > 0; n-- {
		if r.Bool() {
			at.X += r.IntRange(-1, 1)
		} else {
			at.Y += r.IntRange(-1, 1)
		}
		if _, dup := seen[at]; dup {
			continue
		}
		seen[at] = struct{}{}
		cells = append(cells, at)
	}
	if len(cells) == 0 {
		cells = []Coord{{}}
	}
	piece, err := NewPiece(cells, r.Bool(), r.Bool())
	if err != nil {
		// Unreachable: the walk never produces duplicates
		panic(err)
	}
	return piece
}
