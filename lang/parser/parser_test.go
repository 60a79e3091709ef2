package parser

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/twitchyliquid64/maker-panel/lang/ast"
)

func TestParseSimpleRect(t *testing.T) {
	prog, err := Parse("R<5>()")
	require.NoError(t, err)
	require.EqualValues(t, len(prog.Statements), 1)
	stmt, ok := prog.Statements[0].(ast.FeatureStmt)
	require.True(t, ok)
	prim, ok := stmt.Value.(*ast.Primitive)
	require.True(t, ok)
	assert.Equals(t, prim.Kind, ast.PrimRect)
	require.EqualValues(t, len(prim.Params.Positional), 1)
	assert.Equals(t, prim.Params.Positional[0].Value, 5.0)
}

func TestParseRectWithDrill(t *testing.T) {
	prog, err := Parse("R<5>(h)")
	require.NoError(t, err)
	stmt := prog.Statements[0].(ast.FeatureStmt)
	prim := stmt.Value.(*ast.Primitive)
	require.EqualValues(t, len(prim.Surfaces), 1)
	assert.Equals(t, prim.Surfaces[0].Kind, ast.SurfaceDrill)
}

func TestParseRectWithSmiley(t *testing.T) {
	prog, err := Parse("R<5>(smiley)")
	require.NoError(t, err)
	stmt := prog.Statements[0].(ast.FeatureStmt)
	prim := stmt.Value.(*ast.Primitive)
	require.EqualValues(t, len(prim.Surfaces), 1)
	assert.Equals(t, prim.Surfaces[0].Kind, ast.SurfaceSmiley)
}

func TestParseArray(t *testing.T) {
	prog, err := Parse("[2]R<5>()")
	require.NoError(t, err)
	stmt := prog.Statements[0].(ast.FeatureStmt)
	arr, ok := stmt.Value.(*ast.Array)
	require.True(t, ok)
	assert.Equals(t, arr.Count.Value, 2.0)
	assert.Equals(t, arr.Direction, ast.DirRight)
}

func TestParseWrapStadium(t *testing.T) {
	prog, err := Parse("wrap(R<20>()) with { left => C<10>(), right => C<10>() }")
	require.NoError(t, err)
	stmt := prog.Statements[0].(ast.FeatureStmt)
	w, ok := stmt.Value.(*ast.Wrap)
	require.True(t, ok)
	require.EqualValues(t, len(w.Placements), 2)
	assert.Equals(t, w.Placements[0].Side, ast.SideLeft)
	assert.Equals(t, w.Placements[1].Side, ast.SideRight)
}

func TestParseNegative(t *testing.T) {
	prog, err := Parse("negative { C<5>() } C<10>()")
	require.NoError(t, err)
	require.EqualValues(t, len(prog.Statements), 2)
	_, ok := prog.Statements[0].(ast.FeatureStmt).Value.(*ast.Negative)
	assert.True(t, ok)
}

func TestParseLetFeatureAndNumber(t *testing.T) {
	prog, err := Parse("let s = R<7.5>(h); let g = !{ 1 + 2 }; column center { [3]$s [2]$s }")
	require.NoError(t, err)
	_, ok := prog.FeatureEnv["s"]
	require.True(t, ok)
	n, ok := prog.NumberEnv["g"]
	require.True(t, ok)
	assert.Equals(t, n.Expr, " 1 + 2 ")
}

func TestParseUndefinedVarRef(t *testing.T) {
	_, err := Parse("$nope")
	require.NotNil(t, err)
	_, ok := err.(*ast.UndefinedVariable)
	assert.True(t, ok)
}

func TestParseEmptyTupleIsError(t *testing.T) {
	_, err := Parse("()")
	require.NotNil(t, err)
}

func TestParseMountCut(t *testing.T) {
	prog, err := Parse("mount_cut<5>()")
	require.NoError(t, err)
	stmt := prog.Statements[0].(ast.FeatureStmt)
	m, ok := stmt.Value.(*ast.Mount)
	require.True(t, ok)
	assert.Equals(t, m.Length.Value, 5.0)
	assert.Equals(t, m.Facing, ast.DirUp)
}

func TestParseRotateWithExpr(t *testing.T) {
	prog, err := Parse("rotate(!{ 45 * 2 }) { R<5>() }")
	require.NoError(t, err)
	stmt := prog.Statements[0].(ast.FeatureStmt)
	r, ok := stmt.Value.(*ast.Rotate)
	require.True(t, ok)
	assert.Equals(t, r.Degrees.Expr, " 45 * 2 ")
}

func TestParseNamedParams(t *testing.T) {
	prog, err := Parse("R<width=5, height=3>()")
	require.NoError(t, err)
	stmt := prog.Statements[0].(ast.FeatureStmt)
	prim := stmt.Value.(*ast.Primitive)
	w, ok := prim.Params.Named["width"]
	require.True(t, ok)
	assert.Equals(t, w.Value, 5.0)
	h, ok := prim.Params.Named["height"]
	require.True(t, ok)
	assert.Equals(t, h.Value, 3.0)
}
