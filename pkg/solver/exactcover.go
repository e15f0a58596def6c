package solver

import (
	"context"

	"github.com/barrycohen/ttws/pkg/puzzle"
)

// solveYellowTetris decides whether the given yellow pieces tile the region
// exactly, using Knuth's Algorithm X with the minimum-column heuristic.
//
// Columns are the region's cells plus one column per piece instance; rows are
// the (piece, rotation, anchor) placements whose cells all fall inside the
// region. The caller has already checked that the total piece cell count
// equals the region size.
func (s *Solver) solveYellowTetris(ctx context.Context, region Region, pieces []*puzzle.Piece) (bool, error) {
	cells := region.Cells()

	// Column ids: cells first, then one per piece.
	cellCol := make(map[puzzle.Coord]int, len(cells))
	for i, c := range cells {
		cellCol[c] = i
	}
	numCols := len(cells) + len(pieces)

	// Rows: every placement of every rotation of every piece that fits.
	var rows [][]int
	for pi, piece := range pieces {
		pieceCol := len(cells) + pi
		for _, shape := range piece.Shapes() {
			for _, anchor := range cells {
				cols := []int{pieceCol}
				fits := true
				for _, offset := range shape {
					cell := puzzle.Coord{X: anchor.X + offset.X, Y: anchor.Y + offset.Y}
					col, inside := cellCol[cell]
					if !inside {
						fits = false
						break
					}
					cols = append(cols, col)
				}
				if fits {
					rows = append(rows, cols)
				}
			}
		}
	}

	// Column → set of row indices covering it.
	x := &coverMatrix{cols: make(map[int]map[int]struct{}, numCols), rows: rows}
	for col := 0; col < numCols; col++ {
		x.cols[col] = make(map[int]struct{})
	}
	for ri, cols := range rows {
		for _, col := range cols {
			x.cols[col][ri] = struct{}{}
		}
	}

	return x.search(ctx, s)
}

// coverMatrix is the live Algorithm X state: the remaining columns (each
// mapped to the rows that cover it) and the immutable row → columns table.
type coverMatrix struct {
	cols map[int]map[int]struct{}
	rows [][]int
}

// search returns true on the first exact cover found. It polls the yield
// check per candidate row; on cancellation it unwinds with the error.
func (m *coverMatrix) search(ctx context.Context, s *Solver) (bool, error) {
	if len(m.cols) == 0 {
		return true, nil
	}

	// Minimum-column heuristic: branch on the most constrained column.
	chosen := -1
	for col, set := range m.cols {
		if chosen == -1 || len(set) < len(m.cols[chosen]) {
			chosen = col
		}
	}

	candidates := make([]int, 0, len(m.cols[chosen]))
	for row := range m.cols[chosen] {
		candidates = append(candidates, row)
	}

	for _, row := range candidates {
		if err := s.yieldCheck(ctx); err != nil {
			return false, err
		}
		removed := m.selectRow(row)
		found, err := m.search(ctx, s)
		m.deselectRow(row, removed)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}

	return false, nil
}

// selectRow covers every column of the row, removing conflicting rows, and
// returns the removed column sets in order for deselectRow to restore.
func (m *coverMatrix) selectRow(row int) []map[int]struct{} {
	var removed []map[int]struct{}
	for _, col := range m.rows[row] {
		for other := range m.cols[col] {
			for _, otherCol := range m.rows[other] {
				if otherCol != col {
					delete(m.cols[otherCol], other)
				}
			}
		}
		removed = append(removed, m.cols[col])
		delete(m.cols, col)
	}
	return removed
}

// deselectRow is the exact inverse of selectRow.
func (m *coverMatrix) deselectRow(row int, removed []map[int]struct{}) {
	cols := m.rows[row]
	for i := len(cols) - 1; i >= 0; i-- {
		col := cols[i]
		m.cols[col] = removed[i]
		for other := range m.cols[col] {
			for _, otherCol := range m.rows[other] {
				if otherCol != col {
					if m.cols[otherCol] != nil {
						m.cols[otherCol][other] = struct{}{}
					}
				}
			}
		}
	}
}
