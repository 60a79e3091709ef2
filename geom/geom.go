// Package geom implements the 2D geometric primitives used by the
// feature model: points, bounding boxes, and simple polygons with the
// boolean algebra (union, difference, convex hull) spec.md §3/§9
// requires.
package geom

import (
	"math"

	"github.com/gmlewis/go3d/float64/vec2"
)

// Point is an (x, y) coordinate. x grows right, y grows down, matching
// spec.md §3's positioning convention.
type Point = vec2.T

// Pt is a convenience constructor for a Point.
func Pt(x, y float64) Point {
	return Point{x, y}
}

// BoundingBox is an axis-aligned box with MinX <= MaxX and MinY <= MaxY.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Empty reports whether the box has never been extended by a point.
func (b BoundingBox) Empty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// EmptyBox is the zero value representing "no extent yet"; Extend'ing
// it with any point produces a degenerate (zero-area) box at that
// point.
var EmptyBox = BoundingBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}

// Extend grows b to also contain p.
func (b BoundingBox) Extend(p Point) BoundingBox {
	return BoundingBox{
		MinX: math.Min(b.MinX, p[0]),
		MinY: math.Min(b.MinY, p[1]),
		MaxX: math.Max(b.MaxX, p[0]),
		MaxY: math.Max(b.MaxY, p[1]),
	}
}

// Union returns the smallest box containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return BoundingBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Width and Height return the box's extents.
func (b BoundingBox) Width() float64  { return b.MaxX - b.MinX }
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// Center returns the box's midpoint.
func (b BoundingBox) Center() Point {
	return Pt(0.5*(b.MinX+b.MaxX), 0.5*(b.MinY+b.MaxY))
}

// Translate shifts b by d.
func (b BoundingBox) Translate(d Point) BoundingBox {
	return BoundingBox{b.MinX + d[0], b.MinY + d[1], b.MaxX + d[0], b.MaxY + d[1]}
}

// BoxOf computes the bounding box of a set of points.
func BoxOf(pts []Point) BoundingBox {
	b := EmptyBox
	for _, p := range pts {
		b = b.Extend(p)
	}
	return b
}

// Polygon is a closed, simple ring of vertices (no repeated closing
// vertex) optionally with holes, each also a simple closed ring.
type Polygon struct {
	Outer Ring
	Holes []Ring
}

// Ring is a closed polygon ring: an ordered list of vertices with an
// implicit edge from the last vertex back to the first.
type Ring []Point

// MultiPolygon is an unordered collection of polygons, used both for
// additive (normal) geometry and, when Subtractive is set by a caller,
// for a subtractive contribution (spec.md §4.4).
type MultiPolygon struct {
	Polygons    []Polygon
	Subtractive bool
}

// BBox returns the bounding box of every vertex of mp (outers and
// holes alike).
func (mp MultiPolygon) BBox() BoundingBox {
	b := EmptyBox
	for _, poly := range mp.Polygons {
		for _, p := range poly.Outer {
			b = b.Extend(p)
		}
		for _, h := range poly.Holes {
			for _, p := range h {
				b = b.Extend(p)
			}
		}
	}
	return b
}

// Empty reports whether mp contributes no geometry at all.
func (mp MultiPolygon) Empty() bool {
	return len(mp.Polygons) == 0
}

// Translate returns a copy of mp shifted by d.
func (mp MultiPolygon) Translate(d Point) MultiPolygon {
	out := MultiPolygon{Subtractive: mp.Subtractive, Polygons: make([]Polygon, len(mp.Polygons))}
	for i, poly := range mp.Polygons {
		out.Polygons[i] = poly.translate(d)
	}
	return out
}

func (r Ring) translate(d Point) Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[i] = Pt(p[0]+d[0], p[1]+d[1])
	}
	return out
}

func (poly Polygon) translate(d Point) Polygon {
	out := Polygon{Outer: poly.Outer.translate(d), Holes: make([]Ring, len(poly.Holes))}
	for i, h := range poly.Holes {
		out.Holes[i] = h.translate(d)
	}
	return out
}

// RectRing returns the four-vertex ring of an axis-aligned rectangle
// centered on center, starting at the (min x, min y) corner (the
// visually upper-left corner given y-down) and running through
// (max x, min y), (max x, max y), (min x, max y).
func RectRing(center Point, width, height float64) Ring {
	hw, hh := width/2, height/2
	return Ring{
		Pt(center[0]-hw, center[1]-hh),
		Pt(center[0]+hw, center[1]-hh),
		Pt(center[0]+hw, center[1]+hh),
		Pt(center[0]-hw, center[1]+hh),
	}
}

// CircleSegments returns the default circle tessellation segment
// count for a given radius, per spec.md §4.3: max(24, ceil(radius*8)).
// Callers needing a different quality/performance trade-off (spec.md
// §9's open question) can call CircleRingN directly with their own N.
func CircleSegments(radius float64) int {
	n := int(math.Ceil(radius * 8))
	if n < 24 {
		n = 24
	}
	return n
}

// CircleRing returns a regular-polygon approximation of a circle with
// the default segment count.
func CircleRing(center Point, radius float64) Ring {
	return CircleRingN(center, radius, CircleSegments(radius))
}

// CircleRingN returns a regular n-gon approximation of a circle.
func CircleRingN(center Point, radius float64, n int) Ring {
	if n < 3 {
		n = 3
	}
	ring := make(Ring, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = Pt(center[0]+radius*math.Cos(theta), center[1]+radius*math.Sin(theta))
	}
	return ring
}

// TriangleRing returns an isoceles triangle ring: base of `width` on
// the bottom (larger y, screen-down), apex `height` above (smaller y).
// A negative height flips the triangle so the apex points down.
func TriangleRing(center Point, width, height float64) Ring {
	hw := width / 2
	hh := height / 2
	return Ring{
		Pt(center[0]-hw, center[1]+hh),
		Pt(center[0]+hw, center[1]+hh),
		Pt(center[0], center[1]-hh),
	}
}

// Rotate rotates every vertex of r by degrees counter-clockwise about
// the origin (not about r's own centroid).
func (r Ring) Rotate(degrees float64) Ring {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	out := make(Ring, len(r))
	for i, p := range r {
		out[i] = Pt(p[0]*cos-p[1]*sin, p[0]*sin+p[1]*cos)
	}
	return out
}

// Rotate rotates every vertex of mp about the origin.
func (mp MultiPolygon) Rotate(degrees float64) MultiPolygon {
	out := MultiPolygon{Subtractive: mp.Subtractive, Polygons: make([]Polygon, len(mp.Polygons))}
	for i, poly := range mp.Polygons {
		out.Polygons[i] = Polygon{Outer: poly.Outer.Rotate(degrees), Holes: make([]Ring, len(poly.Holes))}
		for j, h := range poly.Holes {
			out.Polygons[i].Holes[j] = h.Rotate(degrees)
		}
	}
	return out
}

// Area returns the signed area of r (positive for counter-clockwise
// winding in a y-up sense; since this package's y grows down, a
// positive Area here corresponds to clockwise winding on screen).
func (r Ring) Area() float64 {
	var sum float64
	n := len(r)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += r[i][0]*r[j][1] - r[j][0]*r[i][1]
	}
	return sum / 2
}

// ContainsPoint reports whether p lies inside r using the even-odd
// rule. Points exactly on the boundary are treated as inside.
func (r Ring) ContainsPoint(p Point) bool {
	n := len(r)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := r[i][0], r[i][1]
		xj, yj := r[j][0], r[j][1]
		if onSegment(p, r[j], r[i]) {
			return true
		}
		if (yi > p[1]) != (yj > p[1]) {
			xint := xi + (p[1]-yi)/(yj-yi)*(xj-xi)
			if p[0] < xint {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(p, a, b Point) bool {
	const eps = 1e-9
	cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
	if math.Abs(cross) > eps {
		return false
	}
	if p[0] < math.Min(a[0], b[0])-eps || p[0] > math.Max(a[0], b[0])+eps {
		return false
	}
	if p[1] < math.Min(a[1], b[1])-eps || p[1] > math.Max(a[1], b[1])+eps {
		return false
	}
	return true
}

// ContainsPoint reports whether p is "a point of" poly: inside the
// outer ring and not inside any hole (spec.md §4.4's survival rule for
// surface features).
func (poly Polygon) ContainsPoint(p Point) bool {
	if !poly.Outer.ContainsPoint(p) {
		return false
	}
	for _, h := range poly.Holes {
		if h.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether p is a point of any polygon in mp.
func (mp MultiPolygon) ContainsPoint(p Point) bool {
	for _, poly := range mp.Polygons {
		if poly.ContainsPoint(p) {
			return true
		}
	}
	return false
}
