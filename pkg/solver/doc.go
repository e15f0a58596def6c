// Package solver implements the search core for Witness-style panels: it
// enumerates paths from each start node depth-first, partitions the board
// into regions along the way, and decides per-region rule satisfiability
// (squares, stars, triangles, hexagons, polyomino pieces, elimination
// marks), pruning the search with invalid-region feedback.
//
// The solver is single-threaded and cooperative: the long loops poll the
// context and a yield timer, invoking registered observers with a progress
// snapshot. Cancel the context to stop a solve; the returned Result then
// reflects the last examined state.
package solver
