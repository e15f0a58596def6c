package puzzle

import "fmt"

// Index holds the positions of every solver-relevant mark, extracted in one
// scan so the solver iterates short lists instead of rescanning the grids.
// Start nodes are deduplicated under symmetry: mirror-equivalent starts are
// admitted once.
type Index struct {
	StartNodes    []Coord
	EndNodes      []Coord
	HexagonNodes  []Coord
	HexagonVEdges []Coord
	HexagonHEdges []Coord
	Triangles     []Coord
	Squares       []Coord
	Stars         []Coord
	Tetris        []Coord
	Eliminations  []Coord
}

// BuildIndex scans the board once and collects positional lists. It fails
// fast on malformed content: non-positive dimensions, triangle numbers outside
// 1..3 and tetris pieces that could never fit on the board.
func (p *Puzzle) BuildIndex() (*Index, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, p.Width, p.Height)
	}

	idx := &Index{}

	started := make(map[Coord]struct{})
	for x := 0; x <= p.Width; x++ {
		for y := 0; y <= p.Height; y++ {
			node := p.Nodes[y][x]
			if node.IsStart() && p.admitStart(Coord{X: x, Y: y}, started) {
				idx.StartNodes = append(idx.StartNodes, Coord{X: x, Y: y})
				started[Coord{X: x, Y: y}] = struct{}{}
			}
			if node.IsEnd() {
				idx.EndNodes = append(idx.EndNodes, Coord{X: x, Y: y})
			}
			if node.IsHexagon() {
				idx.HexagonNodes = append(idx.HexagonNodes, Coord{X: x, Y: y})
			}

			if x < p.Width && p.VEdges[y][x].IsHexagon() {
				idx.HexagonVEdges = append(idx.HexagonVEdges, Coord{X: x, Y: y})
			}
			if y < p.Height && p.HEdges[y][x].IsHexagon() {
				idx.HexagonHEdges = append(idx.HexagonHEdges, Coord{X: x, Y: y})
			}

			if x >= p.Width || y >= p.Height {
				continue
			}
			pos := Coord{X: x, Y: y}
			switch cell := p.Cells[y][x]; cell.Kind {
			case CellTriangle:
				if cell.Number < 1 || cell.Number > 3 {
					return nil, fmt.Errorf("triangle at (%d, %d) has number %d, want 1..3", x, y, cell.Number)
				}
				idx.Triangles = append(idx.Triangles, pos)
			case CellSquare:
				idx.Squares = append(idx.Squares, pos)
			case CellStar:
				idx.Stars = append(idx.Stars, pos)
			case CellTetris:
				if cell.Piece == nil {
					return nil, fmt.Errorf("tetris cell at (%d, %d) has no piece", x, y)
				}
				if err := p.checkPieceFits(cell.Piece, pos); err != nil {
					return nil, err
				}
				idx.Tetris = append(idx.Tetris, pos)
			case CellElimination:
				idx.Eliminations = append(idx.Eliminations, pos)
			}
		}
	}

	return idx, nil
}

// admitStart applies the symmetry deduplication rule: under horizontal
// symmetry keep x ≤ W/2, under vertical keep y ≤ H/2, under rotational keep a
// node only if its point mirror was not already admitted.
func (p *Puzzle) admitStart(c Coord, admitted map[Coord]struct{}) bool {
	switch p.Symmetry {
	case SymmetryHorizontal:
		return c.X <= p.Width/2
	case SymmetryVertical:
		return c.Y <= p.Height/2
	case SymmetryRotational:
		mirror, _ := p.MirrorNode(c)
		_, taken := admitted[mirror]
		return !taken
	}
	return true
}

// checkPieceFits rejects pieces whose bounding box exceeds the board: no
// placement could ever hold them, so the puzzle is malformed.
func (p *Puzzle) checkPieceFits(piece *Piece, at Coord) error {
	for _, shape := range piece.Shapes() {
		minX, minY := shape[0].X, shape[0].Y
		maxX, maxY := minX, minY
		for _, c := range shape[1:] {
			if c.X < minX {
				minX = c.X
			}
			if c.X > maxX {
				maxX = c.X
			}
			if c.Y < minY {
				minY = c.Y
			}
			if c.Y > maxY {
				maxY = c.Y
			}
		}
		if maxX-minX < p.Width && maxY-minY < p.Height {
			return nil
		}
	}
	return fmt.Errorf("tetris piece at (%d, %d) cannot fit a %dx%d board", at.X, at.Y, p.Width, p.Height)
}
