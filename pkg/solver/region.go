package solver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/barrycohen/ttws/pkg/puzzle"
)

// Region is a maximal connected set of cells not separated by path edges.
type Region map[puzzle.Coord]struct{}

func (r Region) has(c puzzle.Coord) bool {
	_, ok := r[c]
	return ok
}

// Cells returns the region's cells in row-major order.
func (r Region) Cells() []puzzle.Coord {
	return sortCoords(r)
}

// key returns a canonical identity for the region's shape, used for memo
// lookups. The empty region maps to the empty string.
func (r Region) key() string {
	cells := sortCoords(r)
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%d,%d", c.X, c.Y)
	}
	return b.String()
}

type coordSet map[puzzle.Coord]struct{}

func (s coordSet) has(c puzzle.Coord) bool {
	_, ok := s[c]
	return ok
}

func sortCoords(set map[puzzle.Coord]struct{}) []puzzle.Coord {
	cells := make([]puzzle.Coord, 0, len(set))
	for c := range set {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

// pathEdges collects the edge sets occupied by the given paths (the player
// path and, when present, its symmetric twin). A vertical step between nodes
// (x, y) and (x, y±1) occupies the h-edge keyed (x, min(y)); a horizontal
// step occupies the v-edge keyed (min(x), y).
func pathEdges(paths ...[]puzzle.Coord) (vEdges, hEdges coordSet) {
	vEdges = make(coordSet)
	hEdges = make(coordSet)
	for _, path := range paths {
		for i := 1; i < len(path); i++ {
			prev, next := path[i-1], path[i]
			switch {
			case prev.X == next.X:
				hEdges[puzzle.Coord{X: prev.X, Y: min(prev.Y, next.Y)}] = struct{}{}
			case prev.Y == next.Y:
				vEdges[puzzle.Coord{X: min(prev.X, next.X), Y: prev.Y}] = struct{}{}
			}
		}
	}
	return vEdges, hEdges
}

// partition flood-fills the cell grid into regions. Horizontal movement
// between cells (x-1, y) and (x, y) is blocked by an occupied h-edge at
// (x, y); vertical movement between (x, y-1) and (x, y) by an occupied
// v-edge at (x, y).
func partition(p *puzzle.Puzzle, vEdges, hEdges coordSet) []Region {
	var regions []Region
	visited := make(coordSet, p.Width*p.Height)

	for startY := 0; startY < p.Height; startY++ {
		for startX := 0; startX < p.Width; startX++ {
			start := puzzle.Coord{X: startX, Y: startY}
			if visited.has(start) {
				continue
			}

			region := make(Region)
			queue := []puzzle.Coord{start}
			visited[start] = struct{}{}

			for len(queue) > 0 {
				c := queue[0]
				queue = queue[1:]
				region[c] = struct{}{}

				neighbours := [4]struct {
					next    puzzle.Coord
					blocked bool
				}{
					{puzzle.Coord{X: c.X - 1, Y: c.Y}, c.X == 0 || hEdges.has(c)},
					{puzzle.Coord{X: c.X + 1, Y: c.Y}, c.X == p.Width-1 || hEdges.has(puzzle.Coord{X: c.X + 1, Y: c.Y})},
					{puzzle.Coord{X: c.X, Y: c.Y - 1}, c.Y == 0 || vEdges.has(c)},
					{puzzle.Coord{X: c.X, Y: c.Y + 1}, c.Y == p.Height-1 || vEdges.has(puzzle.Coord{X: c.X, Y: c.Y + 1})},
				}
				for _, n := range neighbours {
					if n.blocked || visited.has(n.next) {
						continue
					}
					visited[n.next] = struct{}{}
					queue = append(queue, n.next)
				}
			}

			regions = append(regions, region)
		}
	}

	return regions
}
