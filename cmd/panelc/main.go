// panelc compiles panel source files into a language-neutral Rendered
// structure and, via its subcommands, into fabrication artifacts.
package main

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/twitchyliquid64/maker-panel/eval"
	"github.com/twitchyliquid64/maker-panel/feature"
	"github.com/twitchyliquid64/maker-panel/gerber"
	"github.com/twitchyliquid64/maker-panel/gerber/viewer"
	"github.com/twitchyliquid64/maker-panel/lang/parser"
	"github.com/twitchyliquid64/maker-panel/panel"
)

// Exit codes, per the panel source language's CLI contract.
const (
	exitOK = iota
	exitCompileError
	exitDisjointGeometry
	exitIOError
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "gen":
			os.Exit(runGen(os.Args[2:]))
		case "png":
			os.Exit(runPNG(os.Args[2:]))
		case "view":
			os.Exit(runView(os.Args[2:]))
		}
	}
	os.Exit(runDefault(os.Args[1:]))
}

// applyCircleSegments overrides feature.CircleSegments with a fixed
// tessellation count when n > 0, trading curve smoothness for fewer
// polygon points.
func applyCircleSegments(n int) {
	if n > 0 {
		feature.CircleSegments = func(float64) int { return n }
	}
}

func readSource(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(bufio.NewReader(os.Stdin))
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

// compile parses, evaluates, and combines src, returning either the
// rendered panel or the exit code the failure corresponds to.
func compile(src string, hull bool) (*panel.Rendered, int, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		return nil, exitCompileError, err
	}
	feats, err := eval.Eval(prog)
	if err != nil {
		return nil, exitCompileError, err
	}
	rendered, err := panel.Combine(feats, hull)
	if err != nil {
		return nil, exitDisjointGeometry, err
	}
	return rendered, exitOK, nil
}

func runDefault(args []string) int {
	fs := flag.NewFlagSet("panelc", flag.ContinueOnError)
	srcFile := fs.String("f", "", "Source file (default: stdin)")
	hull := fs.Bool("hull", false, "Wrap the additive union in its convex hull before subtracting")
	fs.BoolVar(hull, "c", false, "Shorthand for -hull")
	segs := fs.Int("circle-segments", 0, "Fixed circle tessellation segment count (0: size-adaptive default)")
	if err := fs.Parse(args); err != nil {
		return exitCompileError
	}
	applyCircleSegments(*segs)

	src, err := readSource(*srcFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOError
	}
	rendered, code, err := compile(src, *hull)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return code
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rendered); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOError
	}
	return exitOK
}

func runGen(args []string) int {
	fs := flag.NewFlagSet("panelc gen", flag.ContinueOnError)
	format := fs.String("f", "gerber-dir", "Output format: zip or gerber-dir")
	out := fs.String("o", "panel-out", "Output path (zip file, or directory for gerber-dir)")
	srcFile := fs.String("src", "", "Source file (default: stdin)")
	hull := fs.Bool("hull", false, "Wrap the additive union in its convex hull before subtracting")
	segs := fs.Int("circle-segments", 0, "Fixed circle tessellation segment count (0: size-adaptive default)")
	if err := fs.Parse(args); err != nil {
		return exitCompileError
	}
	applyCircleSegments(*segs)

	src, err := readSource(*srcFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOError
	}
	rendered, code, err := compile(src, *hull)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return code
	}

	g := gerber.FromRendered(strings.TrimSuffix(filepath.Base(*out), filepath.Ext(*out)), rendered)
	switch *format {
	case "zip":
		if err := writeZip(*out, g); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitIOError
		}
	case "gerber-dir":
		if err := g.WriteGerberDir(*out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitIOError
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown -f format %q: want zip or gerber-dir\n", *format)
		return exitCompileError
	}
	return exitOK
}

func writeZip(path string, g *gerber.Gerber) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, l := range g.Layers {
		var buf bytes.Buffer
		if err := l.WriteTo(&buf); err != nil {
			return err
		}
		w, err := zw.Create(l.Filename)
		if err != nil {
			return err
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return zw.Close()
}

func runPNG(args []string) int {
	fs := flag.NewFlagSet("panelc png", flag.ContinueOnError)
	size := fs.String("size", "z:1024", "Image size: 'z:N' fits the design within an NxN square")
	srcFile := fs.String("f", "", "Source file (default: stdin)")
	hull := fs.Bool("hull", false, "Wrap the additive union in its convex hull before subtracting")
	segs := fs.Int("circle-segments", 0, "Fixed circle tessellation segment count (0: size-adaptive default)")
	if err := fs.Parse(args); err != nil {
		return exitCompileError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: panelc png --size z:N OUT")
		return exitCompileError
	}
	out := fs.Arg(0)
	applyCircleSegments(*segs)

	zoom, err := parseZoomSize(*size)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCompileError
	}

	src, err := readSource(*srcFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOError
	}
	rendered, code, err := compile(src, *hull)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return code
	}

	if err := rasterize(rendered, zoom, out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOError
	}
	return exitOK
}

func parseZoomSize(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] != "z" {
		return 0, fmt.Errorf("bad --size %q: want 'z:N'", s)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("bad --size %q: N must be a positive integer", s)
	}
	return n, nil
}

// rasterize rasterizes rendered's outline, holes and solder pads to a
// PNG fit within a zoom x zoom square.
func rasterize(r *panel.Rendered, zoom int, out string) error {
	minX, minY, maxX, maxY := r.Outer[0][0], r.Outer[0][1], r.Outer[0][0], r.Outer[0][1]
	for _, p := range r.Outer {
		minX, minY = min(minX, p[0]), min(minY, p[1])
		maxX, maxY = max(maxX, p[0]), max(maxY, p[1])
	}
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return fmt.Errorf("degenerate outline bounding box")
	}
	scale := float64(zoom-1) / w
	if s := float64(zoom-1) / h; s < scale {
		scale = s
	}
	imgW, imgH := int(0.5+scale*w)+1, int(0.5+scale*h)+1

	xf := func(x float64) float64 { return scale * (x - minX) }
	yf := func(y float64) float64 { return float64(imgH) - scale*(y-minY) }

	dc := gg.NewContext(imgW, imgH)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	dc.SetRGB(0, 0.6, 0)
	drawRing(dc, r.Outer, xf, yf)
	dc.Fill()
	dc.SetRGB(0, 0, 0)
	for _, hole := range r.Inners {
		drawRing(dc, hole, xf, yf)
		dc.Fill()
	}

	dc.SetRGB(0.9, 0.7, 0)
	for _, sf := range r.SurfaceFeatures {
		switch sf.Kind {
		case "DrillHit":
			dc.DrawCircle(xf(sf.Center[0]), yf(sf.Center[1]), 0.5*sf.Diameter*scale)
			dc.Fill()
		case "SolderPad":
			dc.DrawRectangle(xf(sf.Center[0]-sf.Width/2), yf(sf.Center[1]+sf.Height/2), sf.Width*scale, sf.Height*scale)
			dc.Fill()
		}
	}

	return dc.SavePNG(out)
}

func drawRing(dc *gg.Context, pts [][2]float64, xf, yf func(float64) float64) {
	for i, p := range pts {
		if i == 0 {
			dc.MoveTo(xf(p[0]), yf(p[1]))
		} else {
			dc.LineTo(xf(p[0]), yf(p[1]))
		}
	}
	dc.ClosePath()
}

func runView(args []string) int {
	fs := flag.NewFlagSet("panelc view", flag.ContinueOnError)
	srcFile := fs.String("f", "", "Source file (default: stdin)")
	hull := fs.Bool("hull", false, "Wrap the additive union in its convex hull before subtracting")
	all := fs.Bool("all", false, "Start with every numbered layer visible")
	segs := fs.Int("circle-segments", 0, "Fixed circle tessellation segment count (0: size-adaptive default)")
	if err := fs.Parse(args); err != nil {
		return exitCompileError
	}
	applyCircleSegments(*segs)

	src, err := readSource(*srcFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOError
	}
	rendered, code, err := compile(src, *hull)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return code
	}

	viewer.Show(gerber.FromRendered("panel", rendered), *all)
	return exitOK
}
