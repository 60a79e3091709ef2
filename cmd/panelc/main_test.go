package main

import (
	"testing"

	"github.com/teleivo/assertive/require"
	"github.com/twitchyliquid64/maker-panel/panel"
)

func TestParseZoomSize(t *testing.T) {
	n, err := parseZoomSize("z:1024")
	require.NoError(t, err)
	require.EqualValues(t, n, 1024)

	_, err = parseZoomSize("1024")
	require.NotNil(t, err)

	_, err = parseZoomSize("z:0")
	require.NotNil(t, err)

	_, err = parseZoomSize("z:abc")
	require.NotNil(t, err)
}

func TestCompileValidSource(t *testing.T) {
	rendered, code, err := compile("R<5>()", false)
	require.NoError(t, err)
	require.EqualValues(t, code, exitOK)
	require.EqualValues(t, len(rendered.Outer), 4)
}

func TestCompileParseError(t *testing.T) {
	_, code, err := compile("R<5>(", false)
	require.NotNil(t, err)
	require.EqualValues(t, code, exitCompileError)
}

func TestCompileDisjointGeometry(t *testing.T) {
	_, code, err := compile("R<5>() R<@(100,0),5>()", false)
	require.NotNil(t, err)
	require.EqualValues(t, code, exitDisjointGeometry)
}

func TestRasterizeRejectsDegenerateOutline(t *testing.T) {
	r := &panel.Rendered{Outer: [][2]float64{{0, 0}}}
	err := rasterize(r, 64, t.TempDir()+"/out.png")
	require.NotNil(t, err)
}
