package numeric

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func TestEvalLiterals(t *testing.T) {
	v, err := Eval("2 + 3 * 4", nil)
	require.NoError(t, err)
	assert.Equals(t, v, 14.0)
}

func TestEvalParens(t *testing.T) {
	v, err := Eval("(2 + 3) * 4", nil)
	require.NoError(t, err)
	assert.Equals(t, v, 20.0)
}

func TestEvalVariables(t *testing.T) {
	v, err := Eval("pitch / 2", Env{"pitch": 5})
	require.NoError(t, err)
	assert.Equals(t, v, 2.5)
}

func TestEvalUnaryMinus(t *testing.T) {
	v, err := Eval("-x + 1", Env{"x": 4})
	require.NoError(t, err)
	assert.Equals(t, v, -3.0)
}

func TestEvalUnknownVariable(t *testing.T) {
	_, err := Eval("x + 1", nil)
	assert.NotNil(t, err)
}

func TestEvalDivisionByZero(t *testing.T) {
	_, err := Eval("1 / 0", nil)
	assert.NotNil(t, err)
}

func TestEvalDeterministic(t *testing.T) {
	env := Env{"a": 3, "b": 7}
	v1, err := Eval("(a + b) * 2 - a / b", env)
	require.NoError(t, err)
	v2, err := Eval("(a + b) * 2 - a / b", env)
	require.NoError(t, err)
	assert.Equals(t, v1, v2)
}

func TestStripBraces(t *testing.T) {
	body, err := StripBraces("!{ 1 + 2 }")
	require.NoError(t, err)
	assert.Equals(t, body, " 1 + 2 ")
}
