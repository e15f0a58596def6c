// Package decode reads puzzle codes from windmill.thefifthmatt.com into
// puzzle boards.
//
// A code is a protobuf Storage message, base64 encoded with '/' and '+'
// swapped for the URL-safe '_' and '-' and usually suffixed with "_0". The
// message is decoded here directly from the wire format, without generated
// bindings.
//
// Storage is a run-length encoded grid of entities ordered row by row:
//
//	+---+---+---+    n-v-n-v-n-v-n
//	|   |   |   |    h c h c h c h
//	+---+---+---+ -> n-v-n-v-n-v-n
//	|   |   |   |    h c h c h c h
//	+---+---+---+    n-v-n-v-n-v-n
//
// Even rows alternate node, v-edge, node, v-edge, ...; odd rows alternate
// h-edge, cell, h-edge, cell, ... An entity with a non-zero count advances
// the cursor by that many positions without emitting anything.
package decode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/barrycohen/ttws/pkg/puzzle"
)

// ErrTruncated reports a code whose wire data ends mid-message.
var ErrTruncated = errors.New("decode: truncated puzzle code")

// Storage field numbers.
const (
	storageFieldWidth    = 1
	storageFieldEntity   = 2
	storageFieldSymmetry = 3
)

// Entity field numbers.
const (
	entityFieldType          = 1
	entityFieldTriangleCount = 2
	entityFieldColor         = 3
	entityFieldShape         = 4
	entityFieldCount         = 5
)

// Shape field numbers.
const (
	shapeFieldWidth    = 1
	shapeFieldGrid     = 2
	shapeFieldFree     = 3
	shapeFieldNegative = 4
)

// Entity type enumeration, shared between nodes, edges and cells.
const (
	typeUnknown = iota
	typeNone
	typeStart
	typeEnd
	typeHexagon
	typeDisjoint
	typeSquare
	typeTriangle
	typeStar
	typeError
	typeTetris
)

// Symmetry enumeration.
const (
	symUnknown = iota
	symNone
	symHorizontal
	symVertical
	symRotational
)

type storage struct {
	width    int
	symmetry int
	entities []entity
}

type entity struct {
	typ           int
	triangleCount int
	color         int
	count         int
	shape         *shape
}

type shape struct {
	width    int
	grid     []bool
	free     bool
	negative bool
}

// Decode parses a windmill puzzle code (or a URL ending in one) into a
// board.
func Decode(code string) (*puzzle.Puzzle, error) {
	raw, err := decodeBase64(code)
	if err != nil {
		return nil, err
	}
	st, err := parseStorage(raw)
	if err != nil {
		return nil, err
	}
	return buildPuzzle(st)
}

// decodeBase64 strips the URL wrapping and undoes the URL-friendly
// substitutions before base64 decoding.
func decodeBase64(code string) ([]byte, error) {
	code = strings.ReplaceAll(code, "\x00", "")
	code = strings.TrimSpace(code)
	if i := strings.LastIndex(code, "/"); i >= 0 {
		code = code[i+1:]
	}
	code = strings.TrimSuffix(code, "_0")
	code = strings.ReplaceAll(code, "_", "/")
	code = strings.ReplaceAll(code, "-", "+")

	enc := base64.StdEncoding
	if !strings.HasSuffix(code, "=") {
		enc = base64.RawStdEncoding
	}
	raw, err := enc.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("decode: bad base64 in puzzle code: %w", err)
	}
	return raw, nil
}

func parseStorage(raw []byte) (*storage, error) {
	st := &storage{}
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return nil, ErrTruncated
		}
		raw = raw[n:]

		switch {
		case num == storageFieldWidth && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return nil, ErrTruncated
			}
			st.width = int(v)
			raw = raw[n:]
		case num == storageFieldSymmetry && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return nil, ErrTruncated
			}
			st.symmetry = int(v)
			raw = raw[n:]
		case num == storageFieldEntity && typ == protowire.BytesType:
			body, n := protowire.ConsumeBytes(raw)
			if n < 0 {
				return nil, ErrTruncated
			}
			raw = raw[n:]
			ent, err := parseEntity(body)
			if err != nil {
				return nil, err
			}
			st.entities = append(st.entities, ent)
		default:
			n := protowire.ConsumeFieldValue(num, typ, raw)
			if n < 0 {
				return nil, ErrTruncated
			}
			raw = raw[n:]
		}
	}
	if st.width <= 0 {
		return nil, fmt.Errorf("decode: storage width %d is not positive", st.width)
	}
	return st, nil
}

func parseEntity(raw []byte) (entity, error) {
	var ent entity
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return ent, ErrTruncated
		}
		raw = raw[n:]

		switch {
		case typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return ent, ErrTruncated
			}
			raw = raw[n:]
			switch num {
			case entityFieldType:
				ent.typ = int(v)
			case entityFieldTriangleCount:
				ent.triangleCount = int(v)
			case entityFieldColor:
				ent.color = int(v)
			case entityFieldCount:
				ent.count = int(v)
			}
		case num == entityFieldShape && typ == protowire.BytesType:
			body, n := protowire.ConsumeBytes(raw)
			if n < 0 {
				return ent, ErrTruncated
			}
			raw = raw[n:]
			sh, err := parseShape(body)
			if err != nil {
				return ent, err
			}
			ent.shape = &sh
		default:
			n := protowire.ConsumeFieldValue(num, typ, raw)
			if n < 0 {
				return ent, ErrTruncated
			}
			raw = raw[n:]
		}
	}
	return ent, nil
}

func parseShape(raw []byte) (shape, error) {
	var sh shape
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return sh, ErrTruncated
		}
		raw = raw[n:]

		switch {
		case typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return sh, ErrTruncated
			}
			raw = raw[n:]
			switch num {
			case shapeFieldWidth:
				sh.width = int(v)
			case shapeFieldFree:
				sh.free = v != 0
			case shapeFieldNegative:
				sh.negative = v != 0
			case shapeFieldGrid:
				sh.grid = append(sh.grid, v != 0)
			}
		case num == shapeFieldGrid && typ == protowire.BytesType:
			// Packed encoding of the grid bits
			body, n := protowire.ConsumeBytes(raw)
			if n < 0 {
				return sh, ErrTruncated
			}
			raw = raw[n:]
			for len(body) > 0 {
				v, n := protowire.ConsumeVarint(body)
				if n < 0 {
					return sh, ErrTruncated
				}
				body = body[n:]
				sh.grid = append(sh.grid, v != 0)
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, raw)
			if n < 0 {
				return sh, ErrTruncated
			}
			raw = raw[n:]
		}
	}
	return sh, nil
}

var symmetryByWire = map[int]puzzle.Symmetry{
	symUnknown:    puzzle.SymmetryNone,
	symNone:       puzzle.SymmetryNone,
	symHorizontal: puzzle.SymmetryHorizontal,
	symVertical:   puzzle.SymmetryVertical,
	symRotational: puzzle.SymmetryRotational,
}

var colourByWire = map[int]puzzle.Colour{
	0: puzzle.Black,
	1: puzzle.White,
	2: puzzle.Cyan,
	3: puzzle.Magenta,
	4: puzzle.Yellow,
	5: puzzle.Red,
	6: puzzle.Green,
	7: puzzle.Blue,
	8: puzzle.Orange,
}

// buildPuzzle walks the run-length encoded entity stream into the grids.
func buildPuzzle(st *storage) (*puzzle.Puzzle, error) {
	total := 0
	for _, ent := range st.entities {
		if ent.count > 0 {
			total += ent.count
		} else {
			total++
		}
	}

	storageHeight := total / st.width
	width := st.width / 2
	height := storageHeight / 2
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("decode: %d entities at storage width %d make no board", total, st.width)
	}

	p, err := puzzle.New(width, height)
	if err != nil {
		return nil, err
	}
	p.Symmetry = symmetryByWire[st.symmetry]

	cursor := 0
	for _, ent := range st.entities {
		if ent.count > 0 {
			cursor += ent.count
			continue
		}

		entityY := cursor / st.width
		entityX := cursor % st.width
		cursor++

		x, y := entityX/2, entityY/2
		if entityY >= storageHeight {
			return nil, fmt.Errorf("decode: entity stream overruns %dx%d storage", st.width, storageHeight)
		}

		if entityY%2 == 0 {
			if entityX%2 == 0 {
				// Start and end nodes that are also hexagons are not
				// representable in this format
				p.Nodes[y][x] = decodeNode(ent)
			} else {
				p.VEdges[y][x] = decodeEdge(ent)
			}
		} else {
			if entityX%2 == 0 {
				p.HEdges[y][x] = decodeEdge(ent)
			} else {
				cell, err := decodeCell(ent)
				if err != nil {
					return nil, err
				}
				p.Cells[y][x] = cell
			}
		}
	}

	return p, nil
}

func decodeNode(ent entity) puzzle.Node {
	switch ent.typ {
	case typeStart:
		return puzzle.Node{Type: puzzle.NodeStart}
	case typeEnd:
		return puzzle.Node{Type: puzzle.NodeEnd}
	case typeHexagon:
		return puzzle.Node{Type: puzzle.NodeHexagon, Hexagon: puzzle.Black}
	}
	return puzzle.Node{}
}

func decodeEdge(ent entity) puzzle.Edge {
	switch ent.typ {
	case typeDisjoint:
		return puzzle.Edge{Kind: puzzle.EdgeMissing}
	case typeHexagon:
		return puzzle.Edge{Kind: puzzle.EdgeHexagon, Hexagon: puzzle.Black}
	}
	return puzzle.Edge{}
}

func decodeCell(ent entity) (puzzle.Cell, error) {
	switch ent.typ {
	case typeTriangle:
		return puzzle.Cell{Kind: puzzle.CellTriangle, Number: ent.triangleCount}, nil
	case typeSquare:
		return puzzle.Cell{Kind: puzzle.CellSquare, Colour: colourByWire[ent.color]}, nil
	case typeStar:
		return puzzle.Cell{Kind: puzzle.CellStar, Colour: colourByWire[ent.color]}, nil
	case typeError:
		return puzzle.Cell{Kind: puzzle.CellElimination}, nil
	case typeTetris:
		if ent.shape == nil || ent.shape.width <= 0 {
			return puzzle.Cell{}, fmt.Errorf("decode: tetris cell without a shape grid")
		}
		var cells []puzzle.Coord
		for i, set := range ent.shape.grid {
			if set {
				cells = append(cells, puzzle.Coord{X: i % ent.shape.width, Y: i / ent.shape.width})
			}
		}
		piece, err := puzzle.NewPiece(cells, ent.shape.free, ent.shape.negative)
		if err != nil {
			return puzzle.Cell{}, fmt.Errorf("decode: %w", err)
		}
		return puzzle.Cell{Kind: puzzle.CellTetris, Piece: piece}, nil
	}
	return puzzle.Cell{}, nil
}
