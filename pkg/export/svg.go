package export

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/barrycohen/ttws/pkg/puzzle"
	"github.com/barrycohen/ttws/pkg/solver"
)

// SVGOptions configures board rendering.
type SVGOptions struct {
	CellSize int // Pixels per cell (default: 80)
	Margin   int // Canvas margin in pixels (default: 60)
	ShowTwin bool
}

// DefaultSVGOptions returns sensible rendering defaults.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		CellSize: 80,
		Margin:   60,
		ShowTwin: true,
	}
}

var colourHex = map[puzzle.Colour]string{
	puzzle.Black:   "#000000",
	puzzle.White:   "#ffffff",
	puzzle.Cyan:    "#00ffff",
	puzzle.Magenta: "#ff00ff",
	puzzle.Yellow:  "#ffff00",
	puzzle.Red:     "#ff0000",
	puzzle.Green:   "#008000",
	puzzle.Blue:    "#0000ff",
	puzzle.Orange:  "#ffa500",
}

const (
	backgroundFill = "#7f7f7f"
	lineStroke     = "#545454"
	pathStroke     = "#ffffff"
	twinStroke     = "#ffe080"
	removedStroke  = "#aa7f7f"
)

// ExportSVG renders the board, and the solution path when res holds one,
// to an SVG document.
func ExportSVG(p *puzzle.Puzzle, res *solver.Result, opts SVGOptions) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("puzzle cannot be nil")
	}
	if opts.CellSize <= 0 {
		opts.CellSize = 80
	}
	if opts.Margin <= 0 {
		opts.Margin = 60
	}

	r := renderer{p: p, res: res, opts: opts}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Margin*2+p.Width*opts.CellSize, opts.Margin*2+p.Height*opts.CellSize)
	canvas.Rect(0, 0, opts.Margin*2+p.Width*opts.CellSize, opts.Margin*2+p.Height*opts.CellSize,
		"fill:"+backgroundFill)

	r.drawEdges(canvas)
	r.drawNodes(canvas)
	r.drawCells(canvas)
	r.drawPaths(canvas)
	r.drawRemoved(canvas)

	canvas.End()
	return buf.Bytes(), nil
}

type renderer struct {
	p    *puzzle.Puzzle
	res  *solver.Result
	opts SVGOptions
}

// nodePx maps a node coordinate to canvas pixels.
func (r renderer) nodePx(c puzzle.Coord) (int, int) {
	return r.opts.Margin + c.X*r.opts.CellSize, r.opts.Margin + c.Y*r.opts.CellSize
}

// cellPx maps a cell coordinate to the pixel centre of the cell.
func (r renderer) cellPx(c puzzle.Coord) (int, int) {
	return r.opts.Margin + c.X*r.opts.CellSize + r.opts.CellSize/2,
		r.opts.Margin + c.Y*r.opts.CellSize + r.opts.CellSize/2
}

func (r renderer) lineWidth() int { return r.opts.CellSize / 5 }

func (r renderer) lineStyle(stroke string) string {
	return fmt.Sprintf("stroke:%s;stroke-width:%d;stroke-linecap:round", stroke, r.lineWidth())
}

func (r renderer) drawEdges(canvas *svg.SVG) {
	for y := 0; y <= r.p.Height; y++ {
		for x := 0; x < r.p.Width; x++ {
			edge := r.p.VEdges[y][x]
			if edge.IsMissing() {
				continue
			}
			x1, y1 := r.nodePx(puzzle.Coord{X: x, Y: y})
			x2, y2 := r.nodePx(puzzle.Coord{X: x + 1, Y: y})
			canvas.Line(x1, y1, x2, y2, r.lineStyle(lineStroke))
			if edge.IsHexagon() {
				r.drawHexagon(canvas, (x1+x2)/2, (y1+y2)/2, edge.Hexagon)
			}
		}
	}
	for y := 0; y < r.p.Height; y++ {
		for x := 0; x <= r.p.Width; x++ {
			edge := r.p.HEdges[y][x]
			if edge.IsMissing() {
				continue
			}
			x1, y1 := r.nodePx(puzzle.Coord{X: x, Y: y})
			x2, y2 := r.nodePx(puzzle.Coord{X: x, Y: y + 1})
			canvas.Line(x1, y1, x2, y2, r.lineStyle(lineStroke))
			if edge.IsHexagon() {
				r.drawHexagon(canvas, (x1+x2)/2, (y1+y2)/2, edge.Hexagon)
			}
		}
	}
}

func (r renderer) drawNodes(canvas *svg.SVG) {
	for y := 0; y <= r.p.Height; y++ {
		for x := 0; x <= r.p.Width; x++ {
			node := r.p.Nodes[y][x]
			px, py := r.nodePx(puzzle.Coord{X: x, Y: y})

			// Round off every junction so edge joins look continuous
			canvas.Circle(px, py, r.lineWidth()/2, "fill:"+lineStroke)

			if node.IsStart() {
				canvas.Circle(px, py, r.lineWidth(), "fill:"+lineStroke)
			}
			if node.IsEnd() {
				canvas.Circle(px, py, r.lineWidth()*3/4,
					"fill:"+lineStroke+";stroke:"+backgroundFill+";stroke-width:2")
			}
			if node.IsHexagon() {
				r.drawHexagon(canvas, px, py, node.Hexagon)
			}
		}
	}
}

func (r renderer) drawHexagon(canvas *svg.SVG, cx, cy int, colour puzzle.Colour) {
	s := r.lineWidth() / 2
	xs := []int{cx - s, cx - s/2, cx + s/2, cx + s, cx + s/2, cx - s/2}
	ys := []int{cy, cy - s, cy - s, cy, cy + s, cy + s}
	canvas.Polygon(xs, ys, "fill:"+colourHex[colour])
}

func (r renderer) drawCells(canvas *svg.SVG) {
	for y := 0; y < r.p.Height; y++ {
		for x := 0; x < r.p.Width; x++ {
			cell := r.p.Cells[y][x]
			cx, cy := r.cellPx(puzzle.Coord{X: x, Y: y})

			switch cell.Kind {
			case puzzle.CellSquare:
				s := r.opts.CellSize / 4
				canvas.Roundrect(cx-s, cy-s, s*2, s*2, s/2, s/2, "fill:"+colourHex[cell.Colour])
			case puzzle.CellStar:
				r.drawStar(canvas, cx, cy, cell.Colour)
			case puzzle.CellTriangle:
				r.drawTriangles(canvas, cx, cy, cell.Number)
			case puzzle.CellTetris:
				r.drawPiece(canvas, cx, cy, cell.Piece)
			case puzzle.CellElimination:
				r.drawElimination(canvas, cx, cy)
			}
		}
	}
}

func (r renderer) drawStar(canvas *svg.SVG, cx, cy int, colour puzzle.Colour) {
	// Two overlapping squares, one turned 45 degrees
	s := r.opts.CellSize / 5
	canvas.Rect(cx-s, cy-s, s*2, s*2, "fill:"+colourHex[colour])
	xs := []int{cx, cx + s*7/5, cx, cx - s*7/5}
	ys := []int{cy - s*7/5, cy, cy + s*7/5, cy}
	canvas.Polygon(xs, ys, "fill:"+colourHex[colour])
}

func (r renderer) drawTriangles(canvas *svg.SVG, cx, cy, number int) {
	s := r.opts.CellSize / 10
	pitch := s*2 + s/2
	left := cx - (number-1)*pitch/2
	for i := 0; i < number; i++ {
		tx := left + i*pitch
		xs := []int{tx, tx + s, tx - s}
		ys := []int{cy - s, cy + s, cy + s}
		canvas.Polygon(xs, ys, "fill:"+colourHex[puzzle.Orange])
	}
}

func (r renderer) drawPiece(canvas *svg.SVG, cx, cy int, piece *puzzle.Piece) {
	fill := colourHex[puzzle.Yellow]
	if piece.Negative() {
		fill = colourHex[puzzle.Blue]
	}

	shape := piece.Shapes()[0]
	minX, minY := shape[0].X, shape[0].Y
	maxX, maxY := minX, minY
	for _, c := range shape[1:] {
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minY, maxY = min(minY, c.Y), max(maxY, c.Y)
	}

	unit := r.opts.CellSize / 8
	gap := unit / 4
	originX := cx - (maxX-minX+1)*unit/2
	originY := cy - (maxY-minY+1)*unit/2
	for _, c := range shape {
		canvas.Rect(originX+(c.X-minX)*unit+gap/2, originY+(c.Y-minY)*unit+gap/2,
			unit-gap, unit-gap, "fill:"+fill)
	}
}

func (r renderer) drawElimination(canvas *svg.SVG, cx, cy int) {
	s := r.opts.CellSize / 6
	style := fmt.Sprintf("stroke:%s;stroke-width:%d;stroke-linecap:round", colourHex[puzzle.White], s/2)
	canvas.Line(cx, cy, cx, cy+s, style)
	canvas.Line(cx, cy, cx-s, cy-s*3/4, style)
	canvas.Line(cx, cy, cx+s, cy-s*3/4, style)
}

func (r renderer) drawPaths(canvas *svg.SVG) {
	if r.res == nil || len(r.res.Path) == 0 {
		return
	}
	r.drawPath(canvas, r.res.Path, pathStroke)
	if r.opts.ShowTwin {
		r.drawPath(canvas, r.res.SymmetryPath, twinStroke)
	}
}

func (r renderer) drawPath(canvas *svg.SVG, path []puzzle.Coord, stroke string) {
	if len(path) < 2 {
		return
	}
	xs := make([]int, len(path))
	ys := make([]int, len(path))
	for i, c := range path {
		xs[i], ys[i] = r.nodePx(c)
	}
	canvas.Polyline(xs, ys, "fill:none;"+r.lineStyle(stroke)+";stroke-linejoin:round")
	canvas.Circle(xs[0], ys[0], r.lineWidth(), "fill:"+stroke)
}

// drawRemoved crosses out the pieces consumed by elimination marks.
func (r renderer) drawRemoved(canvas *svg.SVG) {
	if r.res == nil {
		return
	}
	s := r.opts.CellSize / 4
	style := fmt.Sprintf("stroke:%s;stroke-width:%d;stroke-linecap:round", removedStroke, r.lineWidth()/2)
	for _, c := range r.res.RemovedPieces {
		cx, cy := r.cellPx(c)
		canvas.Line(cx-s, cy-s, cx+s, cy+s, style)
		canvas.Line(cx-s, cy+s, cx+s, cy-s, style)
	}
}
