package panel

import (
	"os"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/twitchyliquid64/maker-panel/eval"
	"github.com/twitchyliquid64/maker-panel/feature"
	"github.com/twitchyliquid64/maker-panel/lang/parser"
)

func evalSrc(t *testing.T, src string) []feature.Feature {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	feats, err := eval.Eval(prog)
	require.NoError(t, err)
	return feats
}

func TestCombineSimpleSquare(t *testing.T) {
	feats := evalSrc(t, "R<5>()")
	r, err := Combine(feats, false)
	require.NoError(t, err)
	require.EqualValues(t, len(r.Outer), 4)
	require.EqualValues(t, len(r.Inners), 0)
}

func TestCombineSquareWithDrillSurvives(t *testing.T) {
	feats := evalSrc(t, "R<5>(h)")
	r, err := Combine(feats, false)
	require.NoError(t, err)
	require.EqualValues(t, len(r.SurfaceFeatures), 1)
	assert.Equals(t, r.SurfaceFeatures[0].Kind, "DrillHit")
}

func TestCombineSquareWithSmileySurvives(t *testing.T) {
	src, err := os.ReadFile("../testdata/square-with-smiley.panel")
	require.NoError(t, err)
	feats := evalSrc(t, string(src))
	r, err := Combine(feats, false)
	require.NoError(t, err)
	require.EqualValues(t, len(r.SurfaceFeatures), 1)
	assert.Equals(t, r.SurfaceFeatures[0].Kind, "Legend")
	assert.True(t, r.SurfaceFeatures[0].Smiley)
}

func TestCombineAnnulusProducesHole(t *testing.T) {
	feats := evalSrc(t, "negative { C<5>() } C<10>()")
	r, err := Combine(feats, false)
	require.NoError(t, err)
	require.EqualValues(t, len(r.Inners), 1)
}

func TestCombineDisjointFailsWithoutHull(t *testing.T) {
	feats := evalSrc(t, "R<5>() R<@(100,0),5>()")
	_, err := Combine(feats, false)
	require.NotNil(t, err)
	_, ok := err.(DisjointGeometry)
	assert.True(t, ok)
}

func TestCombineHullConnectsDisjointPieces(t *testing.T) {
	feats := evalSrc(t, "R<5>() R<@(100,0),5>()")
	r, err := Combine(feats, true)
	require.NoError(t, err)
	assert.True(t, len(r.Outer) > 0)
}

func TestSurfaceInsideHoleIsDropped(t *testing.T) {
	feats := evalSrc(t, "R<20>(h) negative { C<5>() }")
	r, err := Combine(feats, false)
	require.NoError(t, err)
	require.EqualValues(t, len(r.Inners), 1)
	assert.EqualValues(t, len(r.SurfaceFeatures), 0)
}
