package feature

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/twitchyliquid64/maker-panel/geom"
)

func TestRectBBoxContainsEdgeVertices(t *testing.T) {
	r, err := NewRect(geom.Pt(0, 0), 5, 5)
	require.NoError(t, err)
	bb := r.BBox()
	for _, p := range r.Edge().Polygons[0].Outer {
		assert.Truef(t, p[0] >= bb.MinX-1e-9 && p[0] <= bb.MaxX+1e-9, "x %v in [%v,%v]", p[0], bb.MinX, bb.MaxX)
		assert.Truef(t, p[1] >= bb.MinY-1e-9 && p[1] <= bb.MaxY+1e-9, "y %v in [%v,%v]", p[1], bb.MinY, bb.MaxY)
	}
}

func TestRectWithDrillDefaultDiameter(t *testing.T) {
	r, err := NewRect(geom.Pt(0, 0), 5, 5, InnerSurface{Kind: KindDrillHit})
	require.NoError(t, err)
	surfs := r.Surfaces()
	require.EqualValues(t, len(surfs), 1)
	assert.Equals(t, surfs[0].Kind, KindDrillHit)
	assert.Equals(t, surfs[0].Diameter, 3.0)
}

func TestRectWithSmileyLegend(t *testing.T) {
	r, err := NewRect(geom.Pt(0, 0), 5, 5, InnerSurface{Kind: KindLegend, Smiley: true})
	require.NoError(t, err)
	surfs := r.Surfaces()
	require.EqualValues(t, len(surfs), 1)
	assert.Equals(t, surfs[0].Kind, KindLegend)
	assert.True(t, surfs[0].Smiley)
	assert.Equals(t, surfs[0].Text, "")
}

func TestRectRejectsNonPositiveDimensions(t *testing.T) {
	_, err := NewRect(geom.Pt(0, 0), 0, 5)
	require.NotNil(t, err)
	_, ok := err.(*GeometryError)
	assert.True(t, ok)
}

func TestArrayPitchAndExtent(t *testing.T) {
	child, err := NewRect(geom.Pt(0, 0), 5, 5)
	require.NoError(t, err)
	arr, err := NewArray(child, 2, DirRight, false)
	require.NoError(t, err)
	bb := arr.BBox()
	assert.Equals(t, bb.MinX, -2.5)
	assert.Equals(t, bb.MaxX, 7.5)
	assert.Equals(t, bb.Height(), 5.0)
}

func TestTupleWidthIsSumHeightIsMax(t *testing.T) {
	a, err := NewRect(geom.Pt(0, 0), 4, 4)
	require.NoError(t, err)
	b, err := NewCircle(geom.Pt(0, 0), 3)
	require.NoError(t, err)
	tup, err := NewTuple([]Feature{a, b})
	require.NoError(t, err)
	bb := tup.BBox()
	assert.Equals(t, bb.Width(), 4.0+6.0)
	assert.Equals(t, bb.Height(), 6.0)
}

func TestColumnHeightIsSumWidthIsMax(t *testing.T) {
	a, err := NewRect(geom.Pt(0, 0), 4, 4)
	require.NoError(t, err)
	b, err := NewCircle(geom.Pt(0, 0), 3)
	require.NoError(t, err)
	col, err := NewColumn(ColumnCenter, []Feature{a, b})
	require.NoError(t, err)
	bb := col.BBox()
	assert.Equals(t, bb.Height(), 4.0+6.0)
	assert.Equals(t, bb.Width(), 6.0)
}

func TestDoubleNegationMatchesOriginalEdge(t *testing.T) {
	c, err := NewCircle(geom.Pt(0, 0), 5)
	require.NoError(t, err)
	inner, err := NewNegative([]Feature{c})
	require.NoError(t, err)
	outer, err := NewNegative([]Feature{inner})
	require.NoError(t, err)

	direct := c.Edge()
	doubled := outer.Edge()
	require.EqualValues(t, len(direct.Polygons), len(doubled.Polygons))
	assert.False(t, doubled.Subtractive)
}

func TestRotateByZeroIsIdentity(t *testing.T) {
	r, err := NewRect(geom.Pt(2, 3), 4, 6)
	require.NoError(t, err)
	rot, err := NewRotate(0, []Feature{r})
	require.NoError(t, err)
	bb := rot.BBox()
	want := r.BBox()
	assert.Equals(t, bb.MinX, want.MinX)
	assert.Equals(t, bb.MaxY, want.MaxY)
}

func TestStadiumWrapBBox(t *testing.T) {
	center, err := NewRect(geom.Pt(0, 0), 20, 20)
	require.NoError(t, err)
	left, err := NewCircle(geom.Pt(0, 0), 10)
	require.NoError(t, err)
	right, err := NewCircle(geom.Pt(0, 0), 10)
	require.NoError(t, err)
	w, err := NewWrap(center, []Placement{
		{Side: SideLeft, Child: left},
		{Side: SideRight, Child: right},
	})
	require.NoError(t, err)
	bb := w.BBox()
	assert.Equals(t, bb.Width(), 40.0)
	assert.Equals(t, bb.Height(), 20.0)
}

func TestAnnulusFromNegativeCircleInsideLargerCircle(t *testing.T) {
	hole, err := NewCircle(geom.Pt(0, 0), 5)
	require.NoError(t, err)
	neg, err := NewNegative([]Feature{hole})
	require.NoError(t, err)
	outer, err := NewCircle(geom.Pt(0, 0), 10)
	require.NoError(t, err)

	additive := geom.UnionAll([]geom.MultiPolygon{outer.Edge()})
	subtractive := geom.UnionAll([]geom.MultiPolygon{neg.Edge()})
	result := geom.Difference(additive, subtractive)

	require.EqualValues(t, len(result.Polygons), 1)
	require.EqualValues(t, len(result.Polygons[0].Holes), 1)
	assert.False(t, result.Polygons[0].ContainsPoint(geom.Pt(0, 0)))
	assert.True(t, result.Polygons[0].ContainsPoint(geom.Pt(7, 0)))
}
