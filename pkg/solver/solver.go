package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/barrycohen/ttws/pkg/puzzle"
	"github.com/barrycohen/ttws/pkg/rng"
)

// DefaultYieldInterval is how often the solver yields to observers when the
// Options leave it unset.
const DefaultYieldInterval = 100 * time.Millisecond

// Options configures a solve.
type Options struct {
	// Randomize shuffles start-node and direction order. Helpful when the
	// deterministic order is visibly walking into a bad corner first.
	Randomize bool

	// Seed drives all randomized decisions; the same seed reproduces the
	// same solve.
	Seed uint64

	// YieldInterval is the period between observer notifications.
	YieldInterval time.Duration
}

// Progress is the snapshot handed to observers at yield points.
type Progress struct {
	Message  string
	Attempts int
	Elapsed  time.Duration
	Path     []puzzle.Coord
}

// Observer receives progress snapshots on the solver's goroutine. It must
// return promptly; the search is paused while it runs.
type Observer func(Progress)

// Result is the outcome of a solve.
type Result struct {
	Solved bool

	// Path and SymmetryPath are the winning traversal; empty when the search
	// is exhausted. After a cancelled solve they hold the last path validated.
	Path         []puzzle.Coord
	SymmetryPath []puzzle.Coord

	// Areas is the final partition examined.
	Areas [][]puzzle.Coord

	// Pieces, nodes and edges consumed by elimination marks (elimination
	// cells included) or failed hexagons.
	RemovedPieces []puzzle.Coord
	RemovedNodes  []puzzle.Coord
	RemovedVEdges []puzzle.Coord
	RemovedHEdges []puzzle.Coord

	Attempts int
	Elapsed  time.Duration
	Message  string
}

// Solver runs the path search over one puzzle. A Solver is single-use per
// Solve call and not safe for concurrent use.
type Solver struct {
	puz  *puzzle.Puzzle
	idx  *puzzle.Index
	opts Options
	rand *rng.RNG

	observers []Observer

	// Per-solve scratch state
	path          []puzzle.Coord
	twin          []puzzle.Coord
	areas         []Region
	attempts      int
	solutionFound bool
	message       string
	startTime     time.Time
	yieldAt       time.Time

	removedPieces coordSet
	removedNodes  coordSet
	removedVEdges coordSet
	removedHEdges coordSet

	// Memo from a piece-multiset key to the realizable region shapes
	blueTetrisAreas map[string]map[string]struct{}
}

// New builds a solver for the puzzle, indexing it up front. Malformed
// puzzles fail here.
func New(p *puzzle.Puzzle, opts Options) (*Solver, error) {
	if p == nil {
		return nil, fmt.Errorf("puzzle must not be nil")
	}
	idx, err := p.BuildIndex()
	if err != nil {
		return nil, fmt.Errorf("indexing puzzle: %w", err)
	}
	if opts.YieldInterval <= 0 {
		opts.YieldInterval = DefaultYieldInterval
	}
	return &Solver{
		puz:             p,
		idx:             idx,
		opts:            opts,
		rand:            rng.New(opts.Seed, "search"),
		removedPieces:   make(coordSet),
		removedNodes:    make(coordSet),
		removedVEdges:   make(coordSet),
		removedHEdges:   make(coordSet),
		blueTetrisAreas: make(map[string]map[string]struct{}),
	}, nil
}

// RegisterObserver adds a callback invoked with a progress snapshot at every
// yield point.
func (s *Solver) RegisterObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// Solve searches for a valid path. Degenerate boards (no start or end
// nodes) return an unsolved Result with an explanatory message and no error.
// On cancellation the Result reflects the last examined state and the
// context error is returned alongside it.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	s.path = nil
	s.twin = nil
	s.areas = nil
	s.attempts = 0
	s.solutionFound = false
	s.message = "Solving..."
	s.startTime = time.Now()
	s.yieldAt = s.startTime.Add(s.opts.YieldInterval)
	s.removedPieces = make(coordSet)
	s.removedNodes = make(coordSet)
	s.removedVEdges = make(coordSet)
	s.removedHEdges = make(coordSet)
	s.blueTetrisAreas = make(map[string]map[string]struct{})

	if len(s.idx.StartNodes) == 0 {
		s.message = "Cannot solve: no start nodes"
		return s.result(), nil
	}
	if len(s.idx.EndNodes) == 0 {
		s.message = "Cannot solve: no end nodes"
		return s.result(), nil
	}

	starts := append([]puzzle.Coord(nil), s.idx.StartNodes...)
	if s.opts.Randomize {
		s.rand.Shuffle(len(starts), func(i, j int) { starts[i], starts[j] = starts[j], starts[i] })
	}

	for _, start := range starts {
		if err := s.searchFrom(ctx, start); err != nil {
			return s.result(), err
		}
		if s.solutionFound {
			break
		}
	}

	if s.solutionFound {
		s.message = "Solved!"
	} else {
		s.path = nil
		s.twin = nil
		s.message = "Cannot solve: tried all possibilities"
	}

	return s.result(), nil
}

// yieldCheck is the cooperative suspension point polled by every long loop:
// it surfaces cancellation and, when the yield interval has elapsed,
// notifies observers.
func (s *Solver) yieldCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := time.Now()
	if now.Before(s.yieldAt) {
		return nil
	}
	s.yieldAt = now.Add(s.opts.YieldInterval)
	s.notifyObservers()
	return nil
}

func (s *Solver) notifyObservers() {
	if len(s.observers) == 0 {
		return
	}
	snapshot := Progress{
		Message:  s.message,
		Attempts: s.attempts,
		Elapsed:  time.Since(s.startTime),
		Path:     append([]puzzle.Coord(nil), s.path...),
	}
	for _, o := range s.observers {
		o(snapshot)
	}
}

func (s *Solver) result() *Result {
	res := &Result{
		Solved:        s.solutionFound,
		Path:          append([]puzzle.Coord(nil), s.path...),
		SymmetryPath:  append([]puzzle.Coord(nil), s.twin...),
		RemovedPieces: sortCoords(s.removedPieces),
		RemovedNodes:  sortCoords(s.removedNodes),
		RemovedVEdges: sortCoords(s.removedVEdges),
		RemovedHEdges: sortCoords(s.removedHEdges),
		Attempts:      s.attempts,
		Elapsed:       time.Since(s.startTime),
		Message:       s.message,
	}
	for _, region := range s.areas {
		res.Areas = append(res.Areas, region.Cells())
	}
	return res
}
