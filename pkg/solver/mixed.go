package solver

import (
	"context"
	"sort"
	"strings"

	"github.com/barrycohen/ttws/pkg/puzzle"
)

// solveMixedTetris decides whether a multiset of pieces containing at least
// one blue piece can realize the given region shape.
//
// A blue piece may legally sit outside the region, cancelling yellow
// overlaps, so no packing local to the region can decide this. Instead every
// placement combination over the whole board is enumerated once per piece
// multiset: yellow pieces add one to each covered cell, blue pieces subtract
// one. A combination where every cell ends at 0 or 1 realizes the region
// formed by the 1-cells; all-zero boards (the pieces cancel exactly) realize
// any region. The realizable shapes are memoized per multiset for the
// lifetime of the solve.
func (s *Solver) solveMixedTetris(ctx context.Context, region Region, pieces []*puzzle.Piece) (bool, error) {
	// Yellow pieces are placed before blue ones: the pruning bound assumes
	// a negative cell still has its repairing yellows ahead of it.
	ordered := append([]*puzzle.Piece(nil), pieces...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Negative() != ordered[j].Negative() {
			return !ordered[i].Negative()
		}
		return ordered[i].Key() < ordered[j].Key()
	})

	keys := make([]string, len(ordered))
	for i, piece := range ordered {
		keys[i] = piece.Key()
	}
	multiset := strings.Join(keys, "&")

	shapes, cached := s.blueTetrisAreas[multiset]
	if !cached {
		shapes = make(map[string]struct{})
		s.blueTetrisAreas[multiset] = shapes

		counts := make([]int, s.puz.Width*s.puz.Height)
		if err := s.placeMixed(ctx, counts, ordered, 0, shapes); err != nil {
			return false, err
		}
	}

	if _, ok := shapes[region.key()]; ok {
		return true, nil
	}
	// The empty shape means the pieces cancel out completely, which makes
	// any region valid for this multiset.
	_, ok := shapes[""]
	return ok, nil
}

// placeMixed lays pieces[n:] over the board in every position and rotation,
// recording realized shapes at the leaves.
func (s *Solver) placeMixed(ctx context.Context, counts []int, pieces []*puzzle.Piece, n int, shapes map[string]struct{}) error {
	width, height := s.puz.Width, s.puz.Height

	// Pieces still to be placed after this one, by sign. Used to abandon
	// placements no remaining piece could repair.
	remainingYellows, remainingBlues := 0, 0
	for _, piece := range pieces[n+1:] {
		if piece.Negative() {
			remainingBlues++
		} else {
			remainingYellows++
		}
	}

	delta := 1
	if pieces[n].Negative() {
		delta = -1
	}

	for _, shape := range pieces[n].Shapes() {
		for x := 0; x < width; x++ {
			for y := 0; y < height; y++ {
				if err := s.yieldCheck(ctx); err != nil {
					return err
				}

				cells := make([]int, 0, len(shape))
				fits := true
				for _, offset := range shape {
					cx, cy := x+offset.X, y+offset.Y
					if cx < 0 || cx >= width || cy < 0 || cy >= height {
						fits = false
						break
					}
					cells = append(cells, cy*width+cx)
				}
				if !fits {
					continue
				}

				next := append([]int(nil), counts...)
				valid := true
				for _, cell := range cells {
					next[cell] += delta
					// A cell at count k needs k-1 more blues to come back
					// down to 1. A negative cell is kept only with at least
					// 1-k yellows still to place; with yellows placed first
					// none remain once a cell goes negative, so it is dropped.
					if next[cell] != 0 &&
						(remainingYellows < -(next[cell]-1) || remainingBlues < next[cell]-1) {
						valid = false
						break
					}
				}
				if !valid {
					continue
				}

				if n == len(pieces)-1 {
					recordShape(next, width, shapes)
					continue
				}
				if err := s.placeMixed(ctx, next, pieces, n+1, shapes); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// recordShape accepts a fully-placed board iff every cell is 0 or 1, and
// stores the canonical key of the 1-cells.
func recordShape(counts []int, width int, shapes map[string]struct{}) {
	region := make(Region)
	for i, count := range counts {
		if count < 0 || count > 1 {
			return
		}
		if count == 1 {
			region[puzzle.Coord{X: i % width, Y: i / width}] = struct{}{}
		}
	}
	shapes[region.key()] = struct{}{}
}
