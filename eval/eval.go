// Package eval walks a parsed lang/ast.Program and materializes the
// concrete feature.Feature tree spec.md §4.3 describes: it resolves
// `$name` references to clones of their bound templates, resolves
// `!{ expr }` numeric expressions against a running environment, and
// evaluates every top-level feature_expr into a feature.Feature.
package eval

import (
	"fmt"

	"github.com/twitchyliquid64/maker-panel/feature"
	"github.com/twitchyliquid64/maker-panel/geom"
	"github.com/twitchyliquid64/maker-panel/lang/ast"
	"github.com/twitchyliquid64/maker-panel/numeric"
)

// BadType reports a binding used at the wrong kind of use site (a
// numeric-bound name referenced as `$name`, or vice versa).
type BadType struct {
	Name string
}

func (e *BadType) Error() string { return fmt.Sprintf("%q is not a feature binding", e.Name) }

// env carries the two write-once-per-scope, shadow-on-redeclare
// binding namespaces as the evaluator walks Statements in order
// (spec.md §3).
type env struct {
	numbers  map[string]float64
	features map[string]ast.FeatureExpr
}

// Eval resolves every top-level statement of prog, in order, returning
// one feature.Feature per FeatureStmt.
func Eval(prog *ast.Program) ([]feature.Feature, error) {
	e := &env{numbers: map[string]float64{}, features: map[string]ast.FeatureExpr{}}
	var out []feature.Feature
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case ast.LetNumber:
			v, err := e.resolveNumber(s.Value)
			if err != nil {
				return nil, err
			}
			e.numbers[s.Name] = v
		case ast.LetFeature:
			e.features[s.Name] = s.Value
		case ast.FeatureStmt:
			f, err := e.resolveFeature(s.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
	}
	return out, nil
}

func (e *env) resolveNumber(n ast.Number) (float64, error) {
	if n.Literal {
		return n.Value, nil
	}
	v, err := numeric.Eval(n.Expr, numeric.Env(e.numbers))
	if err != nil {
		return 0, err
	}
	return v, nil
}

func (e *env) resolvePoint(p *ast.Point) (geom.Point, error) {
	if p == nil {
		return geom.Pt(0, 0), nil
	}
	x, err := e.resolveNumber(p.X)
	if err != nil {
		return geom.Point{}, err
	}
	y, err := e.resolveNumber(p.Y)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(x, y), nil
}

func (e *env) resolveFeature(expr ast.FeatureExpr) (feature.Feature, error) {
	switch n := expr.(type) {
	case *ast.Primitive:
		return e.resolvePrimitive(n)
	case *ast.Mount:
		return e.resolveMount(n)
	case *ast.Array:
		return e.resolveArray(n)
	case *ast.Tuple:
		return e.resolveTuple(n)
	case *ast.Column:
		return e.resolveColumn(n)
	case *ast.Wrap:
		return e.resolveWrap(n)
	case *ast.Negative:
		return e.resolveNegative(n)
	case *ast.Rotate:
		return e.resolveRotate(n)
	case *ast.VarRef:
		tmpl, ok := e.features[n.Name]
		if !ok {
			if _, isNum := e.numbers[n.Name]; isNum {
				return nil, &BadType{Name: n.Name}
			}
			return nil, &ast.UndefinedVariable{Name: n.Name, Pos: n.Pos}
		}
		return e.resolveFeature(tmpl)
	default:
		return nil, fmt.Errorf("eval: unhandled feature expr %T", expr)
	}
}

func (e *env) resolveChildren(exprs []ast.FeatureExpr) ([]feature.Feature, error) {
	out := make([]feature.Feature, 0, len(exprs))
	for _, c := range exprs {
		f, err := e.resolveFeature(c)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (e *env) resolveSurfaces(specs []ast.SurfaceSpec) ([]feature.InnerSurface, error) {
	out := make([]feature.InnerSurface, 0, len(specs))
	for _, s := range specs {
		switch s.Kind {
		case ast.SurfaceDrill:
			is := feature.InnerSurface{Kind: feature.KindDrillHit}
			if s.Diameter != nil {
				d, err := e.resolveNumber(*s.Diameter)
				if err != nil {
					return nil, err
				}
				is.HasDiameter = true
				is.Diameter = d
			}
			out = append(out, is)
		case ast.SurfacePad:
			w, h := 2.0, 2.0
			if s.Width != nil {
				v, err := e.resolveNumber(*s.Width)
				if err != nil {
					return nil, err
				}
				w = v
			}
			if s.Height != nil {
				v, err := e.resolveNumber(*s.Height)
				if err != nil {
					return nil, err
				}
				h = v
			}
			out = append(out, feature.InnerSurface{Kind: feature.KindSolderPad, Width: w, Height: h})
		case ast.SurfaceSmiley:
			out = append(out, feature.InnerSurface{Kind: feature.KindLegend, Smiley: true})
		case ast.SurfaceLegendText:
			out = append(out, feature.InnerSurface{Kind: feature.KindLegend, Text: s.Text})
		}
	}
	return out, nil
}

func (e *env) resolvePrimitive(n *ast.Primitive) (feature.Feature, error) {
	center, err := e.resolvePoint(n.Params.Center)
	if err != nil {
		return nil, err
	}
	if cp, ok := n.Params.NamedPoint["center"]; ok {
		center, err = e.resolvePoint(&cp)
		if err != nil {
			return nil, err
		}
	}
	surfaces, err := e.resolveSurfaces(n.Surfaces)
	if err != nil {
		return nil, err
	}

	positional := make([]float64, len(n.Params.Positional))
	for i, num := range n.Params.Positional {
		v, err := e.resolveNumber(num)
		if err != nil {
			return nil, err
		}
		positional[i] = v
	}
	named := map[string]float64{}
	for k, num := range n.Params.Named {
		v, err := e.resolveNumber(num)
		if err != nil {
			return nil, err
		}
		named[k] = v
	}

	switch n.Kind {
	case ast.PrimRect:
		width, height := 0.0, 0.0
		if len(positional) >= 1 {
			width = positional[0]
			height = width
		}
		if len(positional) >= 2 {
			height = positional[1]
		}
		if v, ok := named["width"]; ok {
			width = v
		}
		if v, ok := named["height"]; ok {
			height = v
		}
		return feature.NewRect(center, width, height, surfaces...)
	case ast.PrimCircle:
		radius := 0.0
		if len(positional) >= 1 {
			radius = positional[0]
		}
		if v, ok := named["radius"]; ok {
			radius = v
		}
		return feature.NewCircle(center, radius, surfaces...)
	case ast.PrimTriangle:
		width, height := 0.0, 0.0
		if len(positional) >= 1 {
			width = positional[0]
		}
		if len(positional) >= 2 {
			height = positional[1]
		}
		if v, ok := named["width"]; ok {
			width = v
		}
		if v, ok := named["height"]; ok {
			height = v
		}
		return feature.NewTriangle(center, width, height, surfaces...)
	default:
		return nil, fmt.Errorf("eval: unknown primitive kind %v", n.Kind)
	}
}

func toFacing(d ast.Direction) feature.Facing {
	switch d {
	case ast.DirDown:
		return feature.FacingDown
	case ast.DirLeft:
		return feature.FacingLeft
	case ast.DirRight:
		return feature.FacingRight
	default:
		return feature.FacingUp
	}
}

func toDirection(d ast.Direction) feature.Direction {
	switch d {
	case ast.DirDown:
		return feature.DirDown
	case ast.DirLeft:
		return feature.DirLeft
	case ast.DirRight:
		return feature.DirRight
	default:
		return feature.DirUp
	}
}

func (e *env) resolveMount(n *ast.Mount) (feature.Feature, error) {
	length, err := e.resolveNumber(n.Length)
	if err != nil {
		return nil, err
	}
	return feature.NewMountCut(geom.Pt(0, 0), length, toFacing(n.Facing))
}

func (e *env) resolveArray(n *ast.Array) (feature.Feature, error) {
	count, err := e.resolveNumber(n.Count)
	if err != nil {
		return nil, err
	}
	child, err := e.resolveFeature(n.Child)
	if err != nil {
		return nil, err
	}
	dir := feature.DirRight
	if n.HasDir {
		dir = toDirection(n.Direction)
	}
	return feature.NewArray(child, int(count), dir, n.VScore)
}

func (e *env) resolveTuple(n *ast.Tuple) (feature.Feature, error) {
	children, err := e.resolveChildren(n.Children)
	if err != nil {
		return nil, err
	}
	return feature.NewTuple(children)
}

func toColumnAlignment(a ast.Alignment) feature.ColumnAlignment {
	switch a {
	case ast.AlignLeft:
		return feature.ColumnLeft
	case ast.AlignRight:
		return feature.ColumnRight
	default:
		return feature.ColumnCenter
	}
}

func (e *env) resolveColumn(n *ast.Column) (feature.Feature, error) {
	children, err := e.resolveChildren(n.Children)
	if err != nil {
		return nil, err
	}
	return feature.NewColumn(toColumnAlignment(n.Alignment), children)
}

var sideTable = map[ast.Side]feature.Side{
	ast.SideTop:       feature.SideTop,
	ast.SideBottom:    feature.SideBottom,
	ast.SideLeft:      feature.SideLeft,
	ast.SideRight:     feature.SideRight,
	ast.SideMinTop:    feature.SideMinTop,
	ast.SideMaxTop:    feature.SideMaxTop,
	ast.SideMinBottom: feature.SideMinBottom,
	ast.SideMaxBottom: feature.SideMaxBottom,
	ast.SideMinLeft:   feature.SideMinLeft,
	ast.SideMaxLeft:   feature.SideMaxLeft,
	ast.SideMinRight:  feature.SideMinRight,
	ast.SideMaxRight:  feature.SideMaxRight,
	ast.SideCenter:    feature.SideCenter,
	ast.SideAngle:     feature.SideAngle,
}

func toPlacementAlignment(a ast.Alignment) feature.PlacementAlignment {
	switch a {
	case ast.AlignInterior:
		return feature.AlignInterior
	case ast.AlignExterior:
		return feature.AlignExterior
	default:
		return feature.AlignOverlap
	}
}

func (e *env) resolveWrap(n *ast.Wrap) (feature.Feature, error) {
	center, err := e.resolveFeature(n.Center)
	if err != nil {
		return nil, err
	}
	placements := make([]feature.Placement, 0, len(n.Placements))
	for _, p := range n.Placements {
		child, err := e.resolveFeature(p.Child)
		if err != nil {
			return nil, err
		}
		var offset float64
		if p.HasOffset {
			offset, err = e.resolveNumber(p.Offset)
			if err != nil {
				return nil, err
			}
		}
		var angle float64
		if p.Side == ast.SideAngle {
			angle, err = e.resolveNumber(p.AngleDeg)
			if err != nil {
				return nil, err
			}
		}
		placements = append(placements, feature.Placement{
			Side:      sideTable[p.Side],
			AngleDeg:  angle,
			Offset:    offset,
			Alignment: toPlacementAlignment(p.Alignment),
			Child:     child,
		})
	}
	return feature.NewWrap(center, placements)
}

func (e *env) resolveNegative(n *ast.Negative) (feature.Feature, error) {
	children, err := e.resolveChildren(n.Children)
	if err != nil {
		return nil, err
	}
	return feature.NewNegative(children)
}

func (e *env) resolveRotate(n *ast.Rotate) (feature.Feature, error) {
	degrees, err := e.resolveNumber(n.Degrees)
	if err != nil {
		return nil, err
	}
	children, err := e.resolveChildren(n.Children)
	if err != nil {
		return nil, err
	}
	return feature.NewRotate(degrees, children)
}
