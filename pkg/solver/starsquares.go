package solver

import (
	"sort"

	"github.com/barrycohen/ttws/pkg/puzzle"
)

// solveStarsSquares chooses which of the region's stars and squares to
// eliminate, given the colour counts already fixed by surviving triangles
// and tetris pieces and the remaining elimination budget.
//
// Surviving squares must all share one colour; a surviving star of colour C
// needs exactly one other C item in the region if it is alone, and exactly
// zero if there are two C stars. Each candidate dominant square colour is
// costed in turn; the first candidate whose elimination count equals the
// budget wins. Candidate order is ascending colour value, so the reported
// elimination set is deterministic; which valid assignment is picked first
// is otherwise arbitrary.
//
// Returns the eliminated cells. The caller checks that the set consumes the
// budget exactly.
func (s *Solver) solveStarsSquares(region Region, fixed map[puzzle.Colour]int, remainingErrors int) (bool, coordSet) {
	colours := make(map[puzzle.Colour]struct{})
	stars := make(map[puzzle.Colour]int)
	squares := make(map[puzzle.Colour]int)

	for c := range region {
		cell := s.puz.Cells[c.Y][c.X]
		switch {
		case cell.IsSquare():
			squares[cell.Colour]++
			colours[cell.Colour] = struct{}{}
		case cell.IsStar() && !s.removedPieces.has(c):
			// Stars already eliminated by the overflow pass don't count
			stars[cell.Colour]++
			colours[cell.Colour] = struct{}{}
		}
	}

	if len(stars) == 0 && len(squares) == 0 {
		return true, make(coordSet)
	}

	for colour := range fixed {
		colours[colour] = struct{}{}
	}

	removedSquareCount := make(map[puzzle.Colour]int)
	removedStarCount := make(map[puzzle.Colour]int)

	// At least one square survives any solution, so when squares exist only
	// their colours are dominant candidates; otherwise any colour is.
	candidates := sortColours(squares)
	if len(candidates) == 0 {
		candidates = sortColours(colours)
	}

	valid := false
	for _, colour := range candidates {
		errors := 0
		clear(removedSquareCount)
		clear(removedStarCount)

		// Every square not of the dominant colour must be eliminated
		if squares[colour] > 0 {
			for other := range colours {
				if other != colour {
					removedSquareCount[other] += squares[other]
					errors += squares[other]
				}
			}
		}
		if errors > remainingErrors {
			continue
		}

		for starColour := range colours {
			alive := fixed[starColour] + squares[starColour] - removedSquareCount[starColour]

			// A lone star needs exactly one companion of its colour
			if stars[starColour] == 1 && alive != 1 {
				removedStarCount[starColour] = 1
				errors++
			}
			// A star pair needs no companions at all
			if stars[starColour] == 2 && alive != 0 {
				removedStarCount[starColour] = 2
				errors += 2
			}
		}

		if errors == remainingErrors {
			valid = true
			break
		}
	}

	if !valid {
		return false, nil
	}

	// Translate the per-colour elimination counts back into cells, scanning
	// the region in row-major order.
	removed := make(coordSet)
	for _, c := range region.Cells() {
		cell := s.puz.Cells[c.Y][c.X]
		if cell.IsSquare() && removedSquareCount[cell.Colour] > 0 {
			removed[c] = struct{}{}
			removedSquareCount[cell.Colour]--
		}
		if cell.IsStar() && removedStarCount[cell.Colour] > 0 && !s.removedPieces.has(c) {
			removed[c] = struct{}{}
			removedStarCount[cell.Colour]--
		}
	}

	return true, removed
}

func sortColours[V any](m map[puzzle.Colour]V) []puzzle.Colour {
	out := make([]puzzle.Colour, 0, len(m))
	for colour := range m {
		out = append(out, colour)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
