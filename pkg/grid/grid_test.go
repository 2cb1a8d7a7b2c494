package grid

import (
	"errors"
	"testing"

	"asciigraph/pkg/diagramgraph"
)

func TestClaimAndReleaseNode(t *testing.T) {
	g := New()
	if err := g.ClaimNode(1, 0, 0, 2, 2); err != nil {
		t.Fatalf("ClaimNode: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if !g.Occupied(x, y) {
				t.Fatalf("(%d,%d) should be occupied", x, y)
			}
		}
	}
	if err := g.ClaimNode(2, 1, 1, 1, 1); err == nil {
		t.Fatal("expected overlap error")
	}
	g.ReleaseNode(1)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if g.Occupied(x, y) {
				t.Fatalf("(%d,%d) should be free after release", x, y)
			}
		}
	}
}

func TestPutEdgeCellCrossUpgrade(t *testing.T) {
	g := New()
	if _, upgraded, err := g.PutEdgeCell(5, 5, Hor, 10); err != nil || upgraded {
		t.Fatalf("first HOR insert: upgraded=%v err=%v", upgraded, err)
	}
	c, upgraded, err := g.PutEdgeCell(5, 5, Ver, 11)
	if err != nil {
		t.Fatalf("VER over HOR: %v", err)
	}
	if !upgraded {
		t.Fatal("expected upgrade flag")
	}
	if c.Type != Cross {
		t.Fatalf("expected Cross, got %v", c.Type)
	}
	if len(c.Edges) != 2 {
		t.Fatalf("expected 2 owning edges, got %d", len(c.Edges))
	}
}

func TestPutEdgeCellReentryFailsHard(t *testing.T) {
	g := New()
	if _, _, err := g.PutEdgeCell(0, 0, Hor, 1); err != nil {
		t.Fatal(err)
	}
	_, _, err := g.PutEdgeCell(0, 0, Hor, 1)
	var reentry *ErrReentry
	if !errors.As(err, &reentry) {
		t.Fatalf("expected ErrReentry, got %v", err)
	}
}

func TestPutEdgeCellNeverOverwritesNode(t *testing.T) {
	g := New()
	if err := g.ClaimNode(1, 0, 0, 1, 1); err != nil {
		t.Fatal(err)
	}
	_, _, err := g.PutEdgeCell(0, 0, Hor, 2)
	var nodeErr *ErrNodeCell
	if !errors.As(err, &nodeErr) {
		t.Fatalf("expected ErrNodeCell, got %v", err)
	}
}

func TestNodesNear(t *testing.T) {
	g := New()
	if err := g.ClaimNode(1, 0, 0, 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := g.ClaimNode(2, 10, 10, 1, 1); err != nil {
		t.Fatal(err)
	}
	near := g.NodesNear(0, 0, 2)
	if len(near) != 1 || near[0] != diagramgraph.NodeID(1) {
		t.Fatalf("expected only node 1 nearby, got %v", near)
	}
	far := g.NodesNear(5, 5, 100)
	if len(far) != 2 {
		t.Fatalf("expected both nodes within radius 100, got %d", len(far))
	}
}

func TestBoundsAndSortedCells(t *testing.T) {
	g := New()
	g.ClaimNode(1, -2, -3, 1, 1)
	g.ClaimNode(2, 4, 5, 1, 1)
	minX, minY, maxX, maxY := g.Bounds()
	if minX != -2 || minY != -3 || maxX != 4 || maxY != 5 {
		t.Fatalf("unexpected bounds: %d %d %d %d", minX, minY, maxX, maxY)
	}
	cells := g.SortedCells()
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0].Y > cells[1].Y {
		t.Fatal("cells not sorted by y")
	}
}
