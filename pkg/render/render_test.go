package render

import (
	"strings"
	"testing"

	"asciigraph/pkg/compact"
	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/grid"
	"asciigraph/pkg/metric"
)

func TestRenderDrawsNodeBorderAndLabel(t *testing.T) {
	b := diagramgraph.NewBuilder(metric.FlowEast)
	a := b.AddNode("Hub")
	g := b.Build()
	n := g.Node(a)
	n.CX, n.CY = 5, 3
	n.X, n.Y = 0, 0
	n.Placed = true

	gr := grid.New()
	if err := gr.ClaimNode(a, 0, 0, 5, 3); err != nil {
		t.Fatalf("ClaimNode: %v", err)
	}

	tbl := compact.PositionTables(gr)
	out := Render(g, gr, tbl, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 output rows, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "+") {
		t.Errorf("expected ascii corner glyph in top border, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "Hub") {
		t.Errorf("expected label on the middle row, got %q", lines[1])
	}
}

func TestRenderBoxartUsesBoxDrawingGlyphs(t *testing.T) {
	b := diagramgraph.NewBuilder(metric.FlowEast)
	a := b.AddNode("A")
	g := b.Build()
	n := g.Node(a)
	n.CX, n.CY = 3, 3
	n.X, n.Y = 0, 0
	n.Placed = true

	gr := grid.New()
	if err := gr.ClaimNode(a, 0, 0, 3, 3); err != nil {
		t.Fatalf("ClaimNode: %v", err)
	}

	tbl := compact.PositionTables(gr)
	out := Render(g, gr, tbl, true)
	if !strings.ContainsAny(out, "┌┐└┘") {
		t.Errorf("expected box-drawing corners in boxart output, got %q", out)
	}
}

func TestRenderPlacesEdgeGlyphsAndArrowhead(t *testing.T) {
	g := diagramgraph.NewBuilder(metric.FlowEast).Build()
	gr := grid.New()
	for i := 0; i < 3; i++ {
		if _, _, err := gr.PutEdgeCell(i, 0, grid.Hor, 1); err != nil {
			t.Fatalf("PutEdgeCell: %v", err)
		}
	}
	gr.SetFlags(2, 0, grid.FlagArrowE)

	tbl := compact.PositionTables(gr)
	out := Render(g, gr, tbl, false)
	if !strings.Contains(out, ">") {
		t.Errorf("expected an east arrowhead '>' in output, got %q", out)
	}
}

func TestRenderCrossUsesCrossGlyph(t *testing.T) {
	g := diagramgraph.NewBuilder(metric.FlowEast).Build()
	gr := grid.New()
	if _, _, err := gr.PutEdgeCell(1, 0, grid.Hor, 1); err != nil {
		t.Fatalf("PutEdgeCell: %v", err)
	}
	if _, _, err := gr.PutEdgeCell(1, 0, grid.Ver, 2); err != nil {
		t.Fatalf("PutEdgeCell: %v", err)
	}

	tbl := compact.PositionTables(gr)
	out := Render(g, gr, tbl, true)
	if !strings.Contains(out, "┼") {
		t.Errorf("expected a cross glyph, got %q", out)
	}
}
