// Package export renders puzzle boards and solve results to SVG and JSON.
//
// The SVG output draws the board the way the game presents it: grid lines
// with gaps for missing edges, start and end nodes, hexagons, cell symbols,
// and the solution path (plus its symmetry twin) overlaid when one was
// found. The JSON output is a machine-readable record of the solve.
package export
