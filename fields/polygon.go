package fields

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Polygon is an implicitly closed ring of planar vertices. A trailing
// vertex equal to the first is tolerated and ignored.
type Polygon []r2.Point

// Validate checks that the ring has at least 3 distinct vertices.
func (p Polygon) Validate() error {
	distinct := make(map[r2.Point]struct{}, len(p))
	for _, v := range p.ring() {
		distinct[v] = struct{}{}
	}
	if len(distinct) < 3 {
		return fmt.Errorf("polygon needs at least 3 distinct vertices, got %d", len(distinct))
	}
	return nil
}

// ring strips an explicit closing vertex if present.
func (p Polygon) ring() Polygon {
	if len(p) > 1 && p[0] == p[len(p)-1] {
		return p[:len(p)-1]
	}
	return p
}

// Bound returns the polygon's axis-aligned bounding rectangle.
func (p Polygon) Bound() r2.Rect {
	return r2.RectFromPoints(p...)
}

// ContainsPoint tests containment with the even-odd ray-casting rule using
// half-open edges: a point exactly on a lower or left edge counts as
// inside, on an upper or right edge as outside. Self-intersecting rings
// get the even-odd interior, which may not match visual expectation.
func (p Polygon) ContainsPoint(pt r2.Point) bool {
	ring := p.ring()
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			xCross := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if pt.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// Intersects reports whether the polygon's bounding rectangle overlaps the
// given rectangle. Fields fully outside the working extent are dropped on
// this test alone; an exact polygon-rectangle intersection is not needed
// for that.
func (p Polygon) Intersects(rect r2.Rect) bool {
	return p.Bound().Intersects(rect)
}

// RotateAround rotates every vertex about center by the angle in radians.
func (p Polygon) RotateAround(center r2.Point, radians float64) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = rotatePoint(v, center, radians)
	}
	return out
}

func rotatePoint(v, center r2.Point, radians float64) r2.Point {
	d := v.Sub(center)
	sin, cos := math.Sincos(radians)
	return r2.Point{
		X: center.X + d.X*cos - d.Y*sin,
		Y: center.Y + d.X*sin + d.Y*cos,
	}
}
