// Package puzzle defines the board model for Witness-style grid panels:
// a W×H grid of cells surrounded by nodes and edges, decorated with the
// symbolic marks the solver validates (squares, stars, triangles, hexagons,
// polyomino pieces and elimination marks).
//
// A board is populated once, by the decoder or the randomizer, and is
// read-only while it is being solved. Positional lookups used by the solver
// are extracted up front into an Index.
//
// Coordinate conventions, for width = 3, height = 2:
//
//	Cells            Nodes              V Edges          H Edges
//	+---+---+---+    N---N---N---N      +-V-+-V-+-V-+    +---+---+---+
//	| C | C | C |    |   |   |   |      |   |   |   |    H   H   H   H
//	+---+---+---+    N---N---N---N      +-V-+-V-+-V-+    +---+---+---+
//	| C | C | C |    |   |   |   |      |   |   |   |    H   H   H   H
//	+---+---+---+    N---N---N---N      +-V-+-V-+-V-+    +---+---+---+
//	3 x 2 - w x h    4 x 3 - w+1 x h+1  3 x 3 - w x h+1  4 x 2 - w+1 x h
//
// V edges run along a row of nodes (they block vertical cell movement);
// H edges sit between stacked nodes (they block horizontal cell movement).
// All 2D slices are indexed [y][x].
package puzzle
