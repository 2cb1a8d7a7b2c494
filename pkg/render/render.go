// Package render rasterizes a compacted grid into a character buffer (spec
// §6): node rectangles fill with box-drawing or ASCII border characters,
// edge cells map through the type/flags table to the matching line,
// corner, crossing or arrowhead glyph, using the renderer's rowY[]/colX[]
// tables to place every cell at its compacted output position.
package render

import (
	"strings"

	"asciigraph/pkg/compact"
	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/grid"
)

// glyphSet names one character per spec §6 row; ascii and boxart each
// provide one.
type glyphSet struct {
	hor, ver                   rune
	cornerNE, cornerNW         rune
	cornerSE, cornerSW         rune
	cross                      rune
	tJointN, tJointE           rune
	tJointS, tJointW           rune
	arrowN, arrowE             rune
	arrowS, arrowW             rune
	nodeCorner, nodeHor, nodeVer rune
}

var asciiGlyphs = glyphSet{
	hor: '-', ver: '|',
	cornerNE: '+', cornerNW: '+', cornerSE: '+', cornerSW: '+',
	cross:   '+',
	tJointN: '+', tJointE: '+', tJointS: '+', tJointW: '+',
	arrowN: '^', arrowE: '>', arrowS: 'v', arrowW: '<',
	nodeCorner: '+', nodeHor: '-', nodeVer: '|',
}

var boxartGlyphs = glyphSet{
	hor: '─', ver: '│',
	cornerNE: '└', cornerNW: '┘', cornerSE: '┌', cornerSW: '┐',
	cross:   '┼',
	tJointN: '┴', tJointE: '├', tJointS: '┬', tJointW: '┤',
	arrowN: '▲', arrowE: '▶', arrowS: '▼', arrowW: '◀',
	nodeCorner: '┌', nodeHor: '─', nodeVer: '│',
}

// glyphForType maps an EdgeType (spec §6's mapping table) to its character.
func glyphForType(gs glyphSet, t grid.EdgeType) rune {
	switch t {
	case grid.Hor, grid.JoinHor:
		return gs.hor
	case grid.Ver, grid.JoinVer:
		return gs.ver
	case grid.CornerNE:
		return gs.cornerNE
	case grid.CornerNW:
		return gs.cornerNW
	case grid.CornerSE:
		return gs.cornerSE
	case grid.CornerSW:
		return gs.cornerSW
	case grid.Cross:
		return gs.cross
	case grid.TJointN:
		return gs.tJointN
	case grid.TJointE:
		return gs.tJointE
	case grid.TJointS:
		return gs.tJointS
	case grid.TJointW:
		return gs.tJointW
	default:
		return gs.hor
	}
}

// arrowGlyph returns the arrowhead rune for flags, or 0 if none is set.
// Flags.HasArrow callers have already screened for "any direction set";
// this picks whichever direction bit is present (spec §4.6/§8 P5: exactly
// one arrow flag per path's terminal cell).
func arrowGlyph(gs glyphSet, f grid.Flags) rune {
	switch {
	case f&grid.FlagArrowN != 0:
		return gs.arrowN
	case f&grid.FlagArrowE != 0:
		return gs.arrowE
	case f&grid.FlagArrowS != 0:
		return gs.arrowS
	case f&grid.FlagArrowW != 0:
		return gs.arrowW
	default:
		return 0
	}
}

// Render draws g into a rectangular buffer of runes using tbl's compacted
// position tables and boxart to pick the character set (spec §6). Node
// interiors are left blank, and as many leading characters of the node's
// name as fit the interior width are centered on the first interior row
// (a node with no interior shows no name); this module
// has no text-wrapping or truncation-ellipsis logic, the same bare-bones
// fixed-width label placement the teacher's own CLI output (plain
// fmt.Printf columns, no layout engine of its own) uses for tabular text.
func Render(g *diagramgraph.Graph, gr *grid.Grid, tbl compact.Tables, boxart bool) string {
	gs := asciiGlyphs
	if boxart {
		gs = boxartGlyphs
	}

	width, height := tbl.Width(), tbl.Height()
	buf := make([][]rune, height)
	for i := range buf {
		buf[i] = make([]rune, width)
		for j := range buf[i] {
			buf[i][j] = ' '
		}
	}

	for _, n := range g.Nodes() {
		if !n.Placed {
			continue
		}
		drawNode(buf, tbl, n, gs)
	}
	for _, c := range gr.SortedCells() {
		if c.Kind != grid.KindEdge {
			continue
		}
		x, y := tbl.X(c.X), tbl.Y(c.Y)
		if r := arrowGlyph(gs, c.Flags); r != 0 {
			buf[y][x] = r
			continue
		}
		buf[y][x] = glyphForType(gs, c.Type)
	}

	var sb strings.Builder
	for _, row := range buf {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// drawNode fills n's compacted rectangle with a border and, if the
// interior is at least one cell wide and tall, its name truncated to fit.
func drawNode(buf [][]rune, tbl compact.Tables, n *diagramgraph.Node, gs glyphSet) {
	x0, y0 := tbl.X(n.X), tbl.Y(n.Y)
	x1, y1 := tbl.X(n.X+n.CX-1), tbl.Y(n.Y+n.CY-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			switch {
			case (y == y0 || y == y1) && (x == x0 || x == x1):
				buf[y][x] = gs.nodeCorner
			case y == y0 || y == y1:
				buf[y][x] = gs.nodeHor
			case x == x0 || x == x1:
				buf[y][x] = gs.nodeVer
			default:
				buf[y][x] = ' '
			}
		}
	}

	if y1-y0 < 2 || x1-x0 < 2 {
		return
	}
	name := []rune(n.Name)
	innerWidth := x1 - x0 - 1
	if len(name) > innerWidth {
		name = name[:innerWidth]
	}
	start := x0 + 1 + (innerWidth-len(name))/2
	for i, r := range name {
		buf[y0+1][start+i] = r
	}
}
