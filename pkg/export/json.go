package export

import (
	"encoding/json"
	"fmt"

	"github.com/barrycohen/ttws/pkg/puzzle"
	"github.com/barrycohen/ttws/pkg/solver"
)

// Solution is the JSON shape of a solve result.
type Solution struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Symmetry string `json:"symmetry"`

	Solved       bool           `json:"solved"`
	Path         []puzzle.Coord `json:"path,omitempty"`
	SymmetryPath []puzzle.Coord `json:"symmetryPath,omitempty"`

	Areas         [][]puzzle.Coord `json:"areas,omitempty"`
	RemovedPieces []puzzle.Coord   `json:"removedPieces,omitempty"`
	RemovedNodes  []puzzle.Coord   `json:"removedNodes,omitempty"`
	RemovedVEdges []puzzle.Coord   `json:"removedVEdges,omitempty"`
	RemovedHEdges []puzzle.Coord   `json:"removedHEdges,omitempty"`

	Attempts  int     `json:"attempts"`
	ElapsedMS float64 `json:"elapsedMs"`
	Message   string  `json:"message"`
}

// ExportJSON serializes a solve result with indentation.
func ExportJSON(p *puzzle.Puzzle, res *solver.Result) ([]byte, error) {
	if p == nil || res == nil {
		return nil, fmt.Errorf("puzzle and result cannot be nil")
	}

	sol := Solution{
		Width:         p.Width,
		Height:        p.Height,
		Symmetry:      p.Symmetry.String(),
		Solved:        res.Solved,
		Path:          res.Path,
		SymmetryPath:  res.SymmetryPath,
		Areas:         res.Areas,
		RemovedPieces: res.RemovedPieces,
		RemovedNodes:  res.RemovedNodes,
		RemovedVEdges: res.RemovedVEdges,
		RemovedHEdges: res.RemovedHEdges,
		Attempts:      res.Attempts,
		ElapsedMS:     float64(res.Elapsed.Microseconds()) / 1000.0,
		Message:       res.Message,
	}

	out, err := json.MarshalIndent(sol, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling solution: %w", err)
	}
	return out, nil
}
