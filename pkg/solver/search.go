package solver

import (
	"context"

	"github.com/barrycohen/ttws/pkg/puzzle"
)

// Direction order for path extension. Shuffled per pop when the solver is
// randomized.
var directions = [4]puzzle.Coord{
	{X: -1, Y: 0}, // left
	{X: 0, Y: -1}, // up
	{X: 1, Y: 0},  // right
	{X: 0, Y: 1},  // down
}

// searchFrom runs the depth-first path search from one start node. It
// returns early with the context error on cancellation; a found solution is
// recorded on the solver state.
func (s *Solver) searchFrom(ctx context.Context, start puzzle.Coord) error {
	stack := [][]puzzle.Coord{{start}}

	for len(stack) > 0 {
		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		s.attempts++
		if err := s.yieldCheck(ctx); err != nil {
			return err
		}

		twin := s.puz.MirrorPath(path)

		solved, invalidRegions, err := s.validatePath(ctx, path, twin)
		if err != nil {
			return err
		}
		if solved {
			s.solutionFound = true
			s.path = path
			s.twin = twin
			return nil
		}

		// Feed invalid regions back into the queue: any queued path that
		// already walls off a doomed region can be dropped, and this path
		// is only worth extending if every invalid region was an artifact
		// of an unused end node.
		genuine := false
		for _, region := range invalidRegions {
			if len(s.idx.EndNodes) > 1 && s.touchesUnusedEnd(region, path, twin) {
				continue
			}
			genuine = true

			invalidNodes := s.boundaryNodes(region, path, twin)
			stack = pruneStack(stack, invalidNodes)
		}
		if genuine {
			continue
		}

		s.extend(&stack, path, twin)
	}

	return nil
}

// touchesUnusedEnd reports whether the region borders an end node that is
// not the terminus of either path. With multiple end nodes on the board such
// a region can be walled off legitimately: a different path could still
// finish inside it.
func (s *Solver) touchesUnusedEnd(region Region, path, twin []puzzle.Coord) bool {
	last := path[len(path)-1]
	var twinLast puzzle.Coord
	hasTwin := len(twin) > 0
	if hasTwin {
		twinLast = twin[len(twin)-1]
	}

	for c := range region {
		for _, node := range cellNodes(c) {
			if !s.puz.Nodes[node.Y][node.X].IsEnd() {
				continue
			}
			if node == last {
				continue
			}
			if hasTwin && node == twinLast {
				continue
			}
			return true
		}
	}
	return false
}

// boundaryNodes collects the path and twin nodes bordering the region. A
// node (x, y) borders a cell at (x, y), (x-1, y), (x, y-1) or (x-1, y-1).
func (s *Solver) boundaryNodes(region Region, path, twin []puzzle.Coord) coordSet {
	nodes := make(coordSet)
	for _, current := range [2][]puzzle.Coord{path, twin} {
		for _, c := range current {
			for _, cell := range [4]puzzle.Coord{
				{X: c.X, Y: c.Y},
				{X: c.X - 1, Y: c.Y},
				{X: c.X, Y: c.Y - 1},
				{X: c.X - 1, Y: c.Y - 1},
			} {
				if region.has(cell) {
					nodes[c] = struct{}{}
					break
				}
			}
		}
	}
	return nodes
}

// pruneStack drops queued paths that contain every node bordering an
// invalid region: extending them can never repair that region.
func pruneStack(stack [][]puzzle.Coord, invalidNodes coordSet) [][]puzzle.Coord {
	if len(invalidNodes) == 0 {
		return stack
	}
	kept := stack[:0]
	for _, queued := range stack {
		if !containsAll(queued, invalidNodes) {
			kept = append(kept, queued)
		}
	}
	return kept
}

func containsAll(path []puzzle.Coord, nodes coordSet) bool {
	onPath := make(coordSet, len(path))
	for _, c := range path {
		onPath[c] = struct{}{}
	}
	for c := range nodes {
		if !onPath.has(c) {
			return false
		}
	}
	return true
}

// extend pushes every legal single-step extension of the path.
func (s *Solver) extend(stack *[][]puzzle.Coord, path, twin []puzzle.Coord) {
	last := path[len(path)-1]

	dirs := directions
	if s.opts.Randomize {
		s.rand.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
	}

	for _, d := range dirs {
		next := puzzle.Coord{X: last.X + d.X, Y: last.Y + d.Y}
		if !s.puz.InBoundsNode(next) {
			continue
		}
		if nodeOnPath(path, next) {
			continue
		}
		if s.edgeMissing(last, next) {
			continue
		}

		if s.puz.Symmetry != puzzle.SymmetryNone {
			nextTwin, _ := s.puz.MirrorNode(next)
			// The twin advances in lockstep: its next node must be free
			// and must not be the node we are stepping onto
			if next == nextTwin || nodeOnPath(twin, next) {
				continue
			}
			twinLast := twin[len(twin)-1]
			if s.edgeMissing(twinLast, nextTwin) {
				continue
			}
		}

		extended := make([]puzzle.Coord, len(path)+1)
		copy(extended, path)
		extended[len(path)] = next
		*stack = append(*stack, extended)
	}
}

// edgeMissing reports whether the edge between two adjacent nodes is barred.
func (s *Solver) edgeMissing(from, to puzzle.Coord) bool {
	if from.X == to.X {
		return s.puz.HEdges[min(from.Y, to.Y)][from.X].IsMissing()
	}
	return s.puz.VEdges[from.Y][min(from.X, to.X)].IsMissing()
}

func nodeOnPath(path []puzzle.Coord, node puzzle.Coord) bool {
	for _, c := range path {
		if c == node {
			return true
		}
	}
	return false
}
