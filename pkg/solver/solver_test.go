package solver

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/barrycohen/ttws/pkg/puzzle"
)

func addStart(p *puzzle.Puzzle, c puzzle.Coord) { p.Nodes[c.Y][c.X].Type |= puzzle.NodeStart }
func addEnd(p *puzzle.Puzzle, c puzzle.Coord)   { p.Nodes[c.Y][c.X].Type |= puzzle.NodeEnd }

func solve(t *testing.T, p *puzzle.Puzzle) *Result {
	t.Helper()
	s := newTestSolver(t, p)
	res, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	return res
}

// checkPathShape verifies the structural path invariants: starts at a start
// node, ends at an end node, unit steps, no repeats, no missing edges.
func checkPathShape(t *testing.T, p *puzzle.Puzzle, path []puzzle.Coord) {
	t.Helper()
	if len(path) == 0 {
		t.Fatal("empty path")
	}
	first, last := path[0], path[len(path)-1]
	if !p.Nodes[first.Y][first.X].IsStart() {
		t.Fatalf("path starts at %v, not a start node", first)
	}
	if !p.Nodes[last.Y][last.X].IsEnd() {
		t.Fatalf("path ends at %v, not an end node", last)
	}
	seen := map[puzzle.Coord]struct{}{first: {}}
	for i := 1; i < len(path); i++ {
		prev, next := path[i-1], path[i]
		dx, dy := next.X-prev.X, next.Y-prev.Y
		if dx*dx+dy*dy != 1 {
			t.Fatalf("step %v -> %v is not a unit move", prev, next)
		}
		if _, dup := seen[next]; dup {
			t.Fatalf("node %v repeats", next)
		}
		seen[next] = struct{}{}
		if prev.X == next.X {
			if p.HEdges[min(prev.Y, next.Y)][prev.X].IsMissing() {
				t.Fatalf("step %v -> %v crosses a missing edge", prev, next)
			}
		} else if p.VEdges[prev.Y][min(prev.X, next.X)].IsMissing() {
			t.Fatalf("step %v -> %v crosses a missing edge", prev, next)
		}
	}
}

func TestSolveTrivialBoard(t *testing.T) {
	p := mustPuzzle(t, 1, 1)
	addStart(p, puzzle.Coord{X: 0, Y: 0})
	addEnd(p, puzzle.Coord{X: 1, Y: 1})

	res := solve(t, p)
	if !res.Solved {
		t.Fatalf("not solved: %s", res.Message)
	}
	if len(res.Path) != 3 {
		t.Fatalf("path %v, want three nodes", res.Path)
	}
	checkPathShape(t, p, res.Path)
	if res.Attempts == 0 {
		t.Fatal("no attempts counted")
	}
}

func TestSolveTromino(t *testing.T) {
	p := mustPuzzle(t, 2, 2)
	addStart(p, puzzle.Coord{X: 0, Y: 0})
	addEnd(p, puzzle.Coord{X: 2, Y: 2})
	tromino := mustTestPiece(t, []puzzle.Coord{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, true, false)
	p.Cells[1][1] = puzzle.Cell{Kind: puzzle.CellTetris, Piece: tromino}

	res := solve(t, p)
	if !res.Solved {
		t.Fatalf("not solved: %s", res.Message)
	}
	checkPathShape(t, p, res.Path)

	// The piece's region must be exactly the three cells it covers
	for _, area := range res.Areas {
		for _, c := range area {
			if c == (puzzle.Coord{X: 1, Y: 1}) && len(area) != 3 {
				t.Fatalf("tetris region has %d cells, want 3: %v", len(area), area)
			}
		}
	}
}

func TestSolveSeparatesSquareColours(t *testing.T) {
	p := mustPuzzle(t, 2, 2)
	addStart(p, puzzle.Coord{X: 0, Y: 0})
	addEnd(p, puzzle.Coord{X: 2, Y: 2})
	p.Cells[0][0] = puzzle.Cell{Kind: puzzle.CellSquare, Colour: puzzle.Black}
	p.Cells[1][0] = puzzle.Cell{Kind: puzzle.CellSquare, Colour: puzzle.Black}
	p.Cells[1][1] = puzzle.Cell{Kind: puzzle.CellSquare, Colour: puzzle.White}

	res := solve(t, p)
	if !res.Solved {
		t.Fatalf("not solved: %s", res.Message)
	}
	checkPathShape(t, p, res.Path)

	// Surviving squares within one region share a colour
	removed := make(map[puzzle.Coord]struct{})
	for _, c := range res.RemovedPieces {
		removed[c] = struct{}{}
	}
	for _, area := range res.Areas {
		colours := make(map[puzzle.Colour]struct{})
		for _, c := range area {
			if _, gone := removed[c]; gone {
				continue
			}
			if p.Cells[c.Y][c.X].IsSquare() {
				colours[p.Cells[c.Y][c.X].Colour] = struct{}{}
			}
		}
		if len(colours) > 1 {
			t.Fatalf("region %v keeps %d square colours", area, len(colours))
		}
	}
}

func TestSolveEliminationConsumesSquare(t *testing.T) {
	p := mustPuzzle(t, 2, 2)
	addStart(p, puzzle.Coord{X: 0, Y: 0})
	addEnd(p, puzzle.Coord{X: 2, Y: 2})
	p.Cells[0][0] = puzzle.Cell{Kind: puzzle.CellElimination}
	p.Cells[1][0] = puzzle.Cell{Kind: puzzle.CellSquare, Colour: puzzle.Black}
	p.Cells[1][1] = puzzle.Cell{Kind: puzzle.CellSquare, Colour: puzzle.White}

	res := solve(t, p)
	if !res.Solved {
		t.Fatalf("not solved: %s", res.Message)
	}
	if len(res.RemovedPieces) != 2 {
		t.Fatalf("removed %v, want the mark and one square", res.RemovedPieces)
	}
	removed := make(map[puzzle.Coord]struct{})
	for _, c := range res.RemovedPieces {
		removed[c] = struct{}{}
	}
	if _, ok := removed[puzzle.Coord{X: 0, Y: 0}]; !ok {
		t.Fatalf("elimination mark not recorded as removed: %v", res.RemovedPieces)
	}
	if _, ok := removed[puzzle.Coord{X: 1, Y: 1}]; !ok {
		t.Fatalf("white square not eliminated: %v", res.RemovedPieces)
	}
}

func TestSolveHexagons(t *testing.T) {
	t.Run("node", func(t *testing.T) {
		p := mustPuzzle(t, 1, 1)
		addStart(p, puzzle.Coord{X: 0, Y: 0})
		addEnd(p, puzzle.Coord{X: 1, Y: 1})
		p.Nodes[0][1].Type |= puzzle.NodeHexagon

		res := solve(t, p)
		if !res.Solved {
			t.Fatalf("not solved: %s", res.Message)
		}
		onPath := false
		for _, c := range res.Path {
			if c == (puzzle.Coord{X: 1, Y: 0}) {
				onPath = true
			}
		}
		if !onPath {
			t.Fatalf("path %v misses the hexagon node", res.Path)
		}
		if len(res.RemovedNodes) != 0 {
			t.Fatalf("hexagon was consumed: %v", res.RemovedNodes)
		}
	})

	t.Run("edge", func(t *testing.T) {
		p := mustPuzzle(t, 1, 1)
		addStart(p, puzzle.Coord{X: 0, Y: 0})
		addEnd(p, puzzle.Coord{X: 1, Y: 1})
		p.VEdges[0][0] = puzzle.Edge{Kind: puzzle.EdgeHexagon}

		res := solve(t, p)
		if !res.Solved {
			t.Fatalf("not solved: %s", res.Message)
		}
		if res.Path[1] != (puzzle.Coord{X: 1, Y: 0}) {
			t.Fatalf("path %v does not traverse the hexagon edge", res.Path)
		}
	})
}

func TestSolveTriangles(t *testing.T) {
	t.Run("two edges solvable", func(t *testing.T) {
		p := mustPuzzle(t, 1, 1)
		addStart(p, puzzle.Coord{X: 0, Y: 0})
		addEnd(p, puzzle.Coord{X: 1, Y: 1})
		p.Cells[0][0] = puzzle.Cell{Kind: puzzle.CellTriangle, Number: 2}

		res := solve(t, p)
		if !res.Solved {
			t.Fatalf("not solved: %s", res.Message)
		}
	})

	t.Run("three edges unsolvable", func(t *testing.T) {
		p := mustPuzzle(t, 1, 1)
		addStart(p, puzzle.Coord{X: 0, Y: 0})
		addEnd(p, puzzle.Coord{X: 1, Y: 1})
		p.Cells[0][0] = puzzle.Cell{Kind: puzzle.CellTriangle, Number: 3}

		res := solve(t, p)
		if res.Solved {
			t.Fatalf("solved with path %v", res.Path)
		}
		if !strings.Contains(res.Message, "tried all possibilities") {
			t.Fatalf("message = %q", res.Message)
		}
	})
}

func TestSolveLoneStarUnsolvable(t *testing.T) {
	p := mustPuzzle(t, 1, 1)
	addStart(p, puzzle.Coord{X: 0, Y: 0})
	addEnd(p, puzzle.Coord{X: 1, Y: 1})
	p.Cells[0][0] = puzzle.Cell{Kind: puzzle.CellStar, Colour: puzzle.Green}

	res := solve(t, p)
	if res.Solved {
		t.Fatalf("solved with path %v", res.Path)
	}
	if !strings.Contains(res.Message, "tried all possibilities") {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestSolveMissingEdges(t *testing.T) {
	p := mustPuzzle(t, 1, 1)
	addStart(p, puzzle.Coord{X: 0, Y: 0})
	addEnd(p, puzzle.Coord{X: 1, Y: 1})
	// Bar the top edge so only the left-then-bottom route remains
	p.VEdges[0][0] = puzzle.Edge{Kind: puzzle.EdgeMissing}

	res := solve(t, p)
	if !res.Solved {
		t.Fatalf("not solved: %s", res.Message)
	}
	checkPathShape(t, p, res.Path)
}

func TestSolveSymmetry(t *testing.T) {
	t.Run("joint path found", func(t *testing.T) {
		p := mustPuzzle(t, 2, 1)
		p.Symmetry = puzzle.SymmetryHorizontal
		addStart(p, puzzle.Coord{X: 0, Y: 0})
		addStart(p, puzzle.Coord{X: 2, Y: 0})
		addEnd(p, puzzle.Coord{X: 0, Y: 1})
		addEnd(p, puzzle.Coord{X: 2, Y: 1})

		res := solve(t, p)
		if !res.Solved {
			t.Fatalf("not solved: %s", res.Message)
		}
		if len(res.SymmetryPath) != len(res.Path) {
			t.Fatalf("twin %v does not match path %v", res.SymmetryPath, res.Path)
		}
		onPath := make(map[puzzle.Coord]struct{})
		for _, c := range res.Path {
			onPath[c] = struct{}{}
		}
		for _, c := range res.SymmetryPath {
			if _, shared := onPath[c]; shared {
				t.Fatalf("twin shares node %v with the path", c)
			}
		}
	})

	t.Run("centre start cannot reach centre end", func(t *testing.T) {
		p := mustPuzzle(t, 2, 2)
		p.Symmetry = puzzle.SymmetryHorizontal
		addStart(p, puzzle.Coord{X: 1, Y: 1})
		addEnd(p, puzzle.Coord{X: 1, Y: 0})

		res := solve(t, p)
		if res.Solved {
			t.Fatalf("solved with path %v", res.Path)
		}
		if !strings.Contains(res.Message, "tried all possibilities") {
			t.Fatalf("message = %q", res.Message)
		}
	})
}

func TestSolveDegenerateBoards(t *testing.T) {
	t.Run("no start", func(t *testing.T) {
		p := mustPuzzle(t, 2, 2)
		addEnd(p, puzzle.Coord{X: 2, Y: 2})

		res := solve(t, p)
		if res.Solved || !strings.Contains(res.Message, "no start nodes") {
			t.Fatalf("solved = %t, message = %q", res.Solved, res.Message)
		}
	})

	t.Run("no end", func(t *testing.T) {
		p := mustPuzzle(t, 2, 2)
		addStart(p, puzzle.Coord{X: 0, Y: 0})

		res := solve(t, p)
		if res.Solved || !strings.Contains(res.Message, "no end nodes") {
			t.Fatalf("solved = %t, message = %q", res.Solved, res.Message)
		}
	})
}

func TestSolveCancellation(t *testing.T) {
	p := mustPuzzle(t, 4, 4)
	addStart(p, puzzle.Coord{X: 0, Y: 0})
	addEnd(p, puzzle.Coord{X: 4, Y: 4})
	// Make the search hopeless so cancellation is the only way out
	p.Cells[0][0] = puzzle.Cell{Kind: puzzle.CellTriangle, Number: 3}
	p.Cells[3][3] = puzzle.Cell{Kind: puzzle.CellTriangle, Number: 3}

	s := newTestSolver(t, p)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Solve(ctx)
	if err == nil {
		t.Fatal("cancelled solve returned no error")
	}
	if res == nil || res.Solved {
		t.Fatalf("cancelled solve result = %+v", res)
	}
}

func TestSolveNotifiesObservers(t *testing.T) {
	p := mustPuzzle(t, 2, 2)
	addStart(p, puzzle.Coord{X: 0, Y: 0})
	addEnd(p, puzzle.Coord{X: 2, Y: 2})

	s, err := New(p, Options{YieldInterval: time.Nanosecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	calls := 0
	s.RegisterObserver(func(prog Progress) {
		calls++
		if prog.Message == "" {
			t.Error("observer got an empty message")
		}
	})

	if _, err := s.Solve(context.Background()); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if calls == 0 {
		t.Fatal("observers never notified")
	}
}

func TestSolveRandomizedIsReproducible(t *testing.T) {
	run := func() []puzzle.Coord {
		p := mustPuzzle(t, 2, 2)
		addStart(p, puzzle.Coord{X: 0, Y: 0})
		addEnd(p, puzzle.Coord{X: 2, Y: 2})

		s, err := New(p, Options{Randomize: true, Seed: 11})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		res, err := s.Solve(context.Background())
		if err != nil {
			t.Fatalf("Solve: %v", err)
		}
		if !res.Solved {
			t.Fatalf("not solved: %s", res.Message)
		}
		return res.Path
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("randomized solves diverged: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("randomized solves diverged: %v vs %v", a, b)
		}
	}
}

func TestSolveAreasPartitionBoard(t *testing.T) {
	p := mustPuzzle(t, 2, 2)
	addStart(p, puzzle.Coord{X: 0, Y: 0})
	addEnd(p, puzzle.Coord{X: 2, Y: 2})

	res := solve(t, p)
	if !res.Solved {
		t.Fatalf("not solved: %s", res.Message)
	}

	seen := make(map[puzzle.Coord]struct{})
	for _, area := range res.Areas {
		for _, c := range area {
			if _, dup := seen[c]; dup {
				t.Fatalf("cell %v in two areas", c)
			}
			seen[c] = struct{}{}
		}
	}
	if len(seen) != 4 {
		t.Fatalf("areas cover %d cells, want 4", len(seen))
	}
}
