package geom

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func TestBoundingBoxUnion(t *testing.T) {
	a := BoxOf([]Point{Pt(0, 0), Pt(10, 10)})
	b := BoxOf([]Point{Pt(5, 5), Pt(20, 8)})
	u := a.Union(b)
	assert.Equals(t, u.MinX, 0.0)
	assert.Equals(t, u.MinY, 0.0)
	assert.Equals(t, u.MaxX, 20.0)
	assert.Equals(t, u.MaxY, 10.0)
}

func TestRectRingContainsCenter(t *testing.T) {
	r := RectRing(Pt(0, 0), 10, 5)
	assert.True(t, r.ContainsPoint(Pt(0, 0)))
	assert.True(t, r.ContainsPoint(Pt(4.9, 2.4)))
	assert.False(t, r.ContainsPoint(Pt(10, 10)))
}

func TestCircleSegmentsMinimum(t *testing.T) {
	assert.Equals(t, CircleSegments(1), 24)
	assert.Equals(t, CircleSegments(10), 80)
}

func TestTriangleRingFlips(t *testing.T) {
	up := TriangleRing(Pt(0, 0), 10, 6)
	down := TriangleRing(Pt(0, 0), 10, -6)
	// the apex is the third vertex; flipping height flips its sign
	assert.True(t, up[2][1] < 0)
	assert.True(t, down[2][1] > 0)
}

func TestRotateIdentityAt360(t *testing.T) {
	r := RectRing(Pt(3, 4), 6, 2)
	rotated := r.Rotate(360)
	for i := range r {
		assert.Truef(t, almostEqual(r[i], rotated[i]), "vertex %d: got %v want %v", i, rotated[i], r[i])
	}
}

func almostEqual(a, b Point) bool {
	const eps = 1e-6
	dx, dy := a[0]-b[0], a[1]-b[1]
	return dx*dx+dy*dy < eps*eps
}

func TestUnionOfOverlappingRects(t *testing.T) {
	a := MultiPolygon{Polygons: []Polygon{{Outer: RectRing(Pt(0, 0), 10, 10)}}}
	b := MultiPolygon{Polygons: []Polygon{{Outer: RectRing(Pt(8, 0), 10, 10)}}}
	u := Union(a, b)
	require.EqualValues(t, len(u.Polygons), 1)
	box := u.BBox()
	assert.Equals(t, box.MinX, -5.0)
	assert.Equals(t, box.MaxX, 13.0)
}

func TestUnionOfDisjointRectsStaysSeparate(t *testing.T) {
	a := MultiPolygon{Polygons: []Polygon{{Outer: RectRing(Pt(0, 0), 2, 2)}}}
	b := MultiPolygon{Polygons: []Polygon{{Outer: RectRing(Pt(100, 100), 2, 2)}}}
	u := Union(a, b)
	require.EqualValues(t, len(u.Polygons), 2)
}

func TestDifferenceCutsHole(t *testing.T) {
	outer := Polygon{Outer: RectRing(Pt(0, 0), 20, 20)}
	cut := Polygon{Outer: RectRing(Pt(0, 0), 5, 5)}
	out := Difference(MultiPolygon{Polygons: []Polygon{outer}}, MultiPolygon{Polygons: []Polygon{cut}})
	require.EqualValues(t, len(out.Polygons), 1)
	require.EqualValues(t, len(out.Polygons[0].Holes), 1)
	assert.False(t, out.Polygons[0].ContainsPoint(Pt(0, 0)))
	assert.True(t, out.Polygons[0].ContainsPoint(Pt(9, 9)))
}

func TestDifferenceFullyConsumes(t *testing.T) {
	outer := Polygon{Outer: RectRing(Pt(0, 0), 5, 5)}
	cut := Polygon{Outer: RectRing(Pt(0, 0), 20, 20)}
	out := Difference(MultiPolygon{Polygons: []Polygon{outer}}, MultiPolygon{Polygons: []Polygon{cut}})
	assert.EqualValues(t, len(out.Polygons), 0)
}

func TestDifferenceClipsOverlap(t *testing.T) {
	outer := Polygon{Outer: RectRing(Pt(0, 0), 10, 10)}
	cut := Polygon{Outer: RectRing(Pt(8, 0), 10, 10)}
	out := Difference(MultiPolygon{Polygons: []Polygon{outer}}, MultiPolygon{Polygons: []Polygon{cut}})
	require.EqualValues(t, len(out.Polygons), 1)
	assert.True(t, out.Polygons[0].ContainsPoint(Pt(-4, 0)))
	assert.False(t, out.Polygons[0].ContainsPoint(Pt(4, 0)))
}

func TestConvexHullOfSquareAndOutlier(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10), Pt(5, 5), Pt(20, 5)}
	hull := ConvexHullOf(pts)
	assert.True(t, hull.ContainsPoint(Pt(5, 5)))
	assert.True(t, hull.ContainsPoint(Pt(15, 5)))
	assert.False(t, hull.ContainsPoint(Pt(25, 5)))
}
