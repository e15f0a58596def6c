package solver

import (
	"context"

	"github.com/barrycohen/ttws/pkg/puzzle"
)

// validatePath checks whether the path (and its twin) is a complete, valid
// solution. A path not yet ending on an end node is reported as unsolved
// with no invalid regions, so the searcher keeps extending it. Otherwise the
// board is partitioned and every region validated; the invalid regions are
// returned for queue pruning.
func (s *Solver) validatePath(ctx context.Context, path, twin []puzzle.Coord) (bool, []Region, error) {
	last := path[len(path)-1]
	if !s.puz.Nodes[last.Y][last.X].IsEnd() {
		return false, nil, nil
	}

	// Snapshot for observers
	s.path = path
	s.twin = twin

	vEdges, hEdges := pathEdges(path, twin)
	s.areas = partition(s.puz, vEdges, hEdges)

	pathNodes := make(coordSet, len(path)+len(twin))
	for _, c := range path {
		pathNodes[c] = struct{}{}
	}
	for _, c := range twin {
		pathNodes[c] = struct{}{}
	}

	s.removedPieces = make(coordSet)
	s.removedNodes = make(coordSet)
	s.removedVEdges = make(coordSet)
	s.removedHEdges = make(coordSet)

	var invalid []Region
	for _, region := range s.areas {
		ok, err := s.validateRegion(ctx, region, vEdges, hEdges, pathNodes)
		if err != nil {
			return false, nil, err
		}
		if !ok {
			invalid = append(invalid, region)
		}
	}

	return len(invalid) == 0, invalid, nil
}

// validateRegion decides satisfiability for one region, accumulating the
// pieces consumed by elimination marks into the solver's removed sets.
//
// The layering matters: triangle, hexagon and star-overflow removals are
// committed before the tetris stage, which then retries kept-piece subsets,
// resetting only its own removals between trials.
func (s *Solver) validateRegion(ctx context.Context, region Region, vEdges, hEdges, pathNodes coordSet) (bool, error) {
	// Elimination marks set the error budget, and are themselves consumed
	allowedErrors := 0
	for _, c := range s.idx.Eliminations {
		if region.has(c) {
			s.removedPieces[c] = struct{}{}
			allowedErrors++
		}
	}

	totalErrors := 0
	fixed := make(map[puzzle.Colour]int)

	// Triangles: the path must touch exactly the demanded number of borders
	for _, c := range s.idx.Triangles {
		if !region.has(c) {
			continue
		}
		edgeCount := 0
		if hEdges.has(c) {
			edgeCount++
		}
		if vEdges.has(c) {
			edgeCount++
		}
		if hEdges.has(puzzle.Coord{X: c.X + 1, Y: c.Y}) {
			edgeCount++
		}
		if vEdges.has(puzzle.Coord{X: c.X, Y: c.Y + 1}) {
			edgeCount++
		}
		if edgeCount != s.puz.Cells[c.Y][c.X].Number {
			totalErrors++
			s.removedPieces[c] = struct{}{}
		} else {
			fixed[puzzle.Orange]++
		}
		if totalErrors > allowedErrors {
			return false, nil
		}
	}

	// Nodes and edges strictly inside the region, i.e. not on either path
	regionNodes := make(coordSet)
	regionVEdges := make(coordSet)
	regionHEdges := make(coordSet)
	for c := range region {
		for _, node := range cellNodes(c) {
			if !pathNodes.has(node) {
				regionNodes[node] = struct{}{}
			}
		}
		for _, v := range [2]puzzle.Coord{c, {X: c.X, Y: c.Y + 1}} {
			if !vEdges.has(v) {
				regionVEdges[v] = struct{}{}
			}
		}
		for _, h := range [2]puzzle.Coord{c, {X: c.X + 1, Y: c.Y}} {
			if !hEdges.has(h) {
				regionHEdges[h] = struct{}{}
			}
		}
	}

	// Hexagons the path failed to traverse are errors
	for _, c := range s.idx.HexagonNodes {
		if regionNodes.has(c) {
			totalErrors++
			s.removedNodes[c] = struct{}{}
		}
	}
	for _, c := range s.idx.HexagonVEdges {
		if regionVEdges.has(c) {
			totalErrors++
			s.removedVEdges[c] = struct{}{}
		}
	}
	for _, c := range s.idx.HexagonHEdges {
		if regionHEdges.has(c) {
			totalErrors++
			s.removedHEdges[c] = struct{}{}
		}
	}
	if totalErrors > allowedErrors {
		return false, nil
	}

	// A colour with more than two stars can never satisfy; the extras are
	// eliminated up front
	if len(s.idx.Stars) > 0 {
		starCount := make(map[puzzle.Colour]int)
		for _, c := range s.idx.Stars {
			if !region.has(c) {
				continue
			}
			colour := s.puz.Cells[c.Y][c.X].Colour
			if starCount[colour] > 1 {
				totalErrors++
				s.removedPieces[c] = struct{}{}
			}
			starCount[colour]++
		}
		if totalErrors > allowedErrors {
			return false, nil
		}
	}

	// Tetris pieces must be solved before stars and squares: the number of
	// surviving yellow and blue pieces feeds the colour combinatorics
	var tetrisCells []puzzle.Coord
	for _, c := range s.idx.Tetris {
		if region.has(c) {
			tetrisCells = append(tetrisCells, c)
		}
	}

	maxTetrisErrors := min(len(tetrisCells), allowedErrors-totalErrors)
	for tetrisErrors := 0; tetrisErrors <= maxTetrisErrors; tetrisErrors++ {
		accepted, err := combinations(tetrisCells, len(tetrisCells)-tetrisErrors, func(kept []puzzle.Coord) (bool, error) {
			// Reset only this layer's removals between trials
			for _, c := range tetrisCells {
				delete(s.removedPieces, c)
			}

			ok, err := s.tryTetrisSubset(ctx, region, kept)
			if err != nil || !ok {
				return false, err
			}

			keptYellow, keptBlue := 0, 0
			for _, c := range kept {
				if s.puz.Cells[c.Y][c.X].Piece.Negative() {
					keptBlue++
				} else {
					keptYellow++
				}
			}
			fixed[puzzle.Yellow] = keptYellow
			fixed[puzzle.Blue] = keptBlue

			// Stars and squares must consume every remaining elimination mark
			remaining := allowedErrors - totalErrors - tetrisErrors
			ok, removed := s.solveStarsSquares(region, fixed, remaining)
			if !ok || len(removed) != remaining {
				return false, nil
			}

			keptSet := make(coordSet, len(kept))
			for _, c := range kept {
				keptSet[c] = struct{}{}
			}
			for _, c := range tetrisCells {
				if !keptSet.has(c) {
					s.removedPieces[c] = struct{}{}
				}
			}
			for c := range removed {
				s.removedPieces[c] = struct{}{}
			}
			return true, nil
		})
		if err != nil {
			return false, err
		}
		if accepted {
			return true, nil
		}
	}

	return false, nil
}

// tryTetrisSubset validates one kept multiset of tetris pieces against the
// region.
func (s *Solver) tryTetrisSubset(ctx context.Context, region Region, kept []puzzle.Coord) (bool, error) {
	yellowCount, blueCount := 0, 0
	pieces := make([]*puzzle.Piece, 0, len(kept))
	for _, c := range kept {
		piece := s.puz.Cells[c.Y][c.X].Piece
		if piece.Negative() {
			blueCount += piece.Count()
		} else {
			yellowCount += piece.Count()
		}
		pieces = append(pieces, piece)
	}

	switch {
	case blueCount == 0 && yellowCount == 0:
		// No pieces kept at all
		return true, nil
	case blueCount == 0:
		if yellowCount != len(region) {
			return false, nil
		}
		return s.solveYellowTetris(ctx, region, pieces)
	case yellowCount == 0:
		// Blue pieces alone can never be satisfied
		return false, nil
	case blueCount > yellowCount:
		return false, nil
	default:
		return s.solveMixedTetris(ctx, region, pieces)
	}
}

// cellNodes returns the four corner nodes of a cell.
func cellNodes(c puzzle.Coord) [4]puzzle.Coord {
	return [4]puzzle.Coord{
		{X: c.X, Y: c.Y},
		{X: c.X + 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X + 1, Y: c.Y + 1},
	}
}

// combinations invokes fn with every subset of cells of the given size,
// stopping early when fn reports done. It returns whether fn stopped the
// enumeration. Subsets preserve the input order.
func combinations(cells []puzzle.Coord, size int, fn func([]puzzle.Coord) (bool, error)) (bool, error) {
	if size < 0 || size > len(cells) {
		return false, nil
	}
	subset := make([]puzzle.Coord, 0, size)
	var recurse func(from int) (bool, error)
	recurse = func(from int) (bool, error) {
		if len(subset) == size {
			return fn(append([]puzzle.Coord(nil), subset...))
		}
		for i := from; i <= len(cells)-(size-len(subset)); i++ {
			subset = append(subset, cells[i])
			done, err := recurse(i + 1)
			subset = subset[:len(subset)-1]
			if done || err != nil {
				return done, err
			}
		}
		return false, nil
	}
	return recurse(0)
}
