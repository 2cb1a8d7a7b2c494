// Package metric provides the small numeric building blocks the layout core
// shares across rank assignment, action ordering, node placement and edge
// routing: integer grid points, flow-axis orientation, and the two distance
// functions the spec's invariants are stated in terms of (Manhattan for edge
// length and ordering, Chebyshev for the node/node gutter check).
package metric

// Point is an integer grid coordinate. Negative values are valid — routed
// edges may need cells above or left of the origin.
type Point struct {
	X, Y int
}

// Manhattan returns |dx| + |dy|. Used for action ordering (§4.4, shortest
// edges scheduled first) and as the base term of the A* heuristic (§4.6).
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Chebyshev returns max(|dx|, |dy|). Used for the gutter invariant (P2):
// unrelated nodes must sit at Chebyshev distance >= 1 apart.
func Chebyshev(a, b Point) int {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// RectChebyshev returns the Chebyshev distance between two axis-aligned
// rectangles — 0 if they touch or overlap, otherwise the gap between their
// closest corners/edges. This is what the P2 gutter check actually needs:
// node rectangles, not node origins.
func RectChebyshev(a Rect, b Rect) int {
	dx := axisGap(a.X, a.X+a.CX, b.X, b.X+b.CX)
	dy := axisGap(a.Y, a.Y+a.CY, b.Y, b.Y+b.CY)
	if dx > dy {
		return dx
	}
	return dy
}

// axisGap returns the gap between two half-open intervals [aLo,aHi) and
// [bLo,bHi) along one axis, or 0 if they overlap or touch.
func axisGap(aLo, aHi, bLo, bHi int) int {
	if aHi <= bLo {
		return bLo - aHi
	}
	if bHi <= aLo {
		return aLo - bHi
	}
	return 0
}

// Rect is an axis-aligned integer rectangle [X, X+CX) x [Y, Y+CY).
type Rect struct {
	X, Y, CX, CY int
}

// Contains reports whether (x,y) is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.CX && y >= r.Y && y < r.Y+r.CY
}

// Intersects reports whether two rectangles share any cell.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.CX && o.X < r.X+r.CX && r.Y < o.Y+o.CY && o.Y < r.Y+r.CY
}
