package eval

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/twitchyliquid64/maker-panel/lang/parser"
)

func TestSimpleSquare(t *testing.T) {
	prog, err := parser.Parse("R<5>()")
	require.NoError(t, err)
	feats, err := Eval(prog)
	require.NoError(t, err)
	require.EqualValues(t, len(feats), 1)
	bb := feats[0].BBox()
	assert.Equals(t, bb.Width(), 5.0)
	assert.Equals(t, bb.Height(), 5.0)
	assert.Equals(t, bb.MinX, -2.5)
	assert.Equals(t, bb.MinY, -2.5)
}

func TestSquareWithDrill(t *testing.T) {
	prog, err := parser.Parse("R<5>(h)")
	require.NoError(t, err)
	feats, err := Eval(prog)
	require.NoError(t, err)
	surfs := feats[0].Surfaces()
	require.EqualValues(t, len(surfs), 1)
	assert.Equals(t, surfs[0].Diameter, 3.0)
}

func TestSquareWithSmileyLegend(t *testing.T) {
	prog, err := parser.Parse("R<5>(smiley)")
	require.NoError(t, err)
	feats, err := Eval(prog)
	require.NoError(t, err)
	surfs := feats[0].Surfaces()
	require.EqualValues(t, len(surfs), 1)
	assert.True(t, surfs[0].Smiley)
}

func TestArrayOfTwoSquares(t *testing.T) {
	prog, err := parser.Parse("[2]R<5>()")
	require.NoError(t, err)
	feats, err := Eval(prog)
	require.NoError(t, err)
	bb := feats[0].BBox()
	assert.Equals(t, bb.MinX, -2.5)
	assert.Equals(t, bb.MaxX, 7.5)
	assert.Equals(t, bb.MinY, -2.5)
	assert.Equals(t, bb.MaxY, 2.5)
}

func TestStadiumWrap(t *testing.T) {
	prog, err := parser.Parse("wrap(R<20>()) with { left => C<10>(), right => C<10>() }")
	require.NoError(t, err)
	feats, err := Eval(prog)
	require.NoError(t, err)
	bb := feats[0].BBox()
	assert.Equals(t, bb.Width(), 40.0)
	assert.Equals(t, bb.Height(), 20.0)
}

func TestNegativeAnnulus(t *testing.T) {
	prog, err := parser.Parse("negative { C<5>() } C<10>()")
	require.NoError(t, err)
	feats, err := Eval(prog)
	require.NoError(t, err)
	require.EqualValues(t, len(feats), 2)
	neg := feats[0].Edge()
	assert.True(t, neg.Subtractive)
	assert.EqualValues(t, len(feats[0].Surfaces()), 0)
}

func TestLetBindingsAndColumnOfArrays(t *testing.T) {
	prog, err := parser.Parse("let s = R<7.5>(h); column center { [3]$s [2]$s }")
	require.NoError(t, err)
	feats, err := Eval(prog)
	require.NoError(t, err)
	require.EqualValues(t, len(feats), 1)
	surfs := feats[0].Surfaces()
	require.EqualValues(t, len(surfs), 5)
}

func TestEvalExpressionBinding(t *testing.T) {
	prog, err := parser.Parse("let g = !{ 2 + 3 }; R<!{ g }>()")
	require.NoError(t, err)
	feats, err := Eval(prog)
	require.NoError(t, err)
	bb := feats[0].BBox()
	assert.Equals(t, bb.Width(), 5.0)
}

func TestUndefinedNumberExpressionIsError(t *testing.T) {
	prog, err := parser.Parse("R<!{ nope }>()")
	require.NoError(t, err)
	_, err = Eval(prog)
	require.NotNil(t, err)
}
