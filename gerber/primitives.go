package gerber

import (
	"fmt"
	"io"
	"math"
)

// Shape represents the type of shape the primitives use.
type Shape int

const (
	// RectShape uses rectangles for the primitive.
	RectShape Shape = iota
	// CircleShape uses circles for the primitive.
	CircleShape
)

// sf is the number of Gerber coordinate units per millimeter, matching
// the %FSLAX46Y46*% (4 integer, 6 fractional digit) format emitted by
// Layer.WriteTo.
const sf = 1e6

// Primitive is a Gerber primitive: it can render itself to a layer file
// and report the area of board space it occupies.
type Primitive interface {
	Write(w io.Writer) error
	MBB() MBB
}

// Aperture represents a reusable flash/draw tool definition. The current
// layer emitter always uses the default aperture, so Aperture.Write is a
// no-op; it exists so primitives that report one (see TextT.Aperture)
// have a concrete type to point to.
type Aperture struct {
	Shape    Shape
	Diameter float64
}

func (a *Aperture) Write(w io.Writer) error { return nil }
func (a *Aperture) MBB() MBB                { return MBB{} }

// Pt represents a 2D Point.
type Pt struct {
	X, Y float64
}

// Point is a simple convenience function that keeps the code
// easy to read.
// All dimensions are in millimeters.
func Point(x, y float64) Pt {
	return Pt{X: x, Y: y}
}

func coord(v float64) int64 {
	return int64(math.Round(v * sf))
}

func writeMove(w io.Writer, p Pt, dcode string) {
	fmt.Fprintf(w, "X%06dY%06d%s*\n", coord(p.X), coord(p.Y), dcode)
}

// writeRegion emits a closed G36 region filling the polygon described by
// pts, which need not be explicitly closed.
func writeRegion(w io.Writer, pts []Pt) {
	if len(pts) == 0 {
		return
	}
	io.WriteString(w, "G54D11*\n")
	io.WriteString(w, "G36*\n")
	writeMove(w, pts[0], "D02")
	for _, p := range pts[1:] {
		writeMove(w, p, "D01")
	}
	writeMove(w, pts[0], "D01")
	io.WriteString(w, "G37*\n")
}

// writePath draws a stroked (non-filled) path through pts, selecting
// aperture D10 first.
func writePath(w io.Writer, pts []Pt) {
	if len(pts) == 0 {
		return
	}
	io.WriteString(w, "G54D10*\n")
	writeMove(w, pts[0], "D02")
	for _, p := range pts[1:] {
		writeMove(w, p, "D01")
	}
}

func circlePoints(cx, cy, radius float64) []Pt {
	const steps = 64
	pts := make([]Pt, steps)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / steps
		pts[i] = Pt{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)}
	}
	return pts
}

func rectPoints(cx, cy, w, h float64) []Pt {
	hw, hh := w/2, h/2
	return []Pt{
		{cx - hw, cy - hh},
		{cx + hw, cy - hh},
		{cx + hw, cy + hh},
		{cx - hw, cy + hh},
	}
}

func mbbOf(pts []Pt) MBB {
	if len(pts) == 0 {
		return MBB{}
	}
	m := MBB{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		m.extend(p)
	}
	return m
}

// ArcT represents an arc and satisfies the Primitive interface.
type ArcT struct {
	Center                 Pt
	Radius                 float64
	Shape                  Shape
	XScale, YScale         float64
	StartAngle, EndAngle   float64
	Thickness              float64
}

// Arc returns an arc primitive.
// All dimensions are in millimeters. Angles are in degrees, swept from
// startAngle to endAngle.
func Arc(x, y, radius float64, shape Shape, xScale, yScale, startAngle, endAngle, thickness float64) *ArcT {
	return &ArcT{
		Center: Pt{X: x, Y: y}, Radius: radius, Shape: shape,
		XScale: xScale, YScale: yScale,
		StartAngle: startAngle, EndAngle: endAngle,
		Thickness: thickness,
	}
}

func (p *ArcT) points() []Pt {
	sweep := p.EndAngle - p.StartAngle
	steps := int(math.Abs(sweep) / 4)
	if steps < 8 {
		steps = 8
	}
	pts := make([]Pt, 0, steps+1)
	for i := 0; i <= steps; i++ {
		deg := p.StartAngle + sweep*float64(i)/float64(steps)
		rad := deg * math.Pi / 180
		pts = append(pts, Pt{
			X: p.Center.X + p.XScale*p.Radius*math.Cos(rad),
			Y: p.Center.Y + p.YScale*p.Radius*math.Sin(rad),
		})
	}
	return pts
}

func (p *ArcT) Write(w io.Writer) error {
	pts := p.points()
	if p.Shape == CircleShape && math.Abs(p.EndAngle-p.StartAngle) >= 360 {
		writeRegion(w, pts)
		return nil
	}
	writePath(w, pts)
	return nil
}

func (p *ArcT) MBB() MBB { return mbbOf(p.points()) }

// CircleT represents a filled circular flash and satisfies the Primitive
// interface.
type CircleT struct {
	Center   Pt
	Diameter float64
}

// Circle returns a circle primitive of the given diameter.
// All dimensions are in millimeters.
func Circle(x, y, diameter float64) *CircleT {
	return &CircleT{Center: Pt{X: x, Y: y}, Diameter: diameter}
}

func (p *CircleT) Write(w io.Writer) error {
	writeRegion(w, circlePoints(p.Center.X, p.Center.Y, p.Diameter/2))
	return nil
}

func (p *CircleT) MBB() MBB {
	r := p.Diameter / 2
	return MBB{Min: Pt{p.Center.X - r, p.Center.Y - r}, Max: Pt{p.Center.X + r, p.Center.Y + r}}
}

// LineT represents a straight trace and satisfies the Primitive interface.
type LineT struct {
	P1, P2    Pt
	Shape     Shape
	Thickness float64
}

// Line returns a line primitive.
// All dimensions are in millimeters.
func Line(x1, y1, x2, y2 float64, shape Shape, thickness float64) *LineT {
	return &LineT{P1: Pt{X: x1, Y: y1}, P2: Pt{X: x2, Y: y2}, Shape: shape, Thickness: thickness}
}

func (p *LineT) Write(w io.Writer) error {
	if p.Shape == RectShape {
		dx, dy := p.P2.X-p.P1.X, p.P2.Y-p.P1.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			writeRegion(w, rectPoints(p.P1.X, p.P1.Y, p.Thickness, p.Thickness))
			return nil
		}
		nx, ny := -dy/length*p.Thickness/2, dx/length*p.Thickness/2
		writeRegion(w, []Pt{
			{p.P1.X + nx, p.P1.Y + ny}, {p.P2.X + nx, p.P2.Y + ny},
			{p.P2.X - nx, p.P2.Y - ny}, {p.P1.X - nx, p.P1.Y - ny},
		})
		return nil
	}
	writePath(w, []Pt{p.P1, p.P2})
	return nil
}

func (p *LineT) MBB() MBB {
	h := p.Thickness / 2
	m := mbbOf([]Pt{p.P1, p.P2})
	m.Min.X -= h
	m.Min.Y -= h
	m.Max.X += h
	m.Max.Y += h
	return m
}

// PolygonT represents a polygon and satisfies the Primitive interface.
type PolygonT struct {
	Offset    Pt
	Filled    bool
	Points    []Pt
	Thickness float64
}

// Polygon returns a polygon primitive, translated by (x,y).
// All dimensions are in millimeters.
func Polygon(x, y float64, filled bool, points []Pt, thickness float64) *PolygonT {
	return &PolygonT{Offset: Pt{X: x, Y: y}, Filled: filled, Points: points, Thickness: thickness}
}

func (p *PolygonT) translated() []Pt {
	pts := make([]Pt, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = Pt{X: pt.X + p.Offset.X, Y: pt.Y + p.Offset.Y}
	}
	return pts
}

func (p *PolygonT) Write(w io.Writer) error {
	pts := p.translated()
	if p.Filled {
		writeRegion(w, pts)
		return nil
	}
	writePath(w, pts)
	return nil
}

func (p *PolygonT) MBB() MBB { return mbbOf(p.translated()) }
