// Package ast defines the parse tree produced by lang/parser: a
// top-level sequence of statements plus the two binding namespaces
// (feature templates and numeric values) described in spec.md §3/§4.1.
package ast

import "github.com/twitchyliquid64/maker-panel/lang/token"

// Program is the root of a parsed panel source file.
type Program struct {
	Statements []Statement
	// FeatureEnv and NumberEnv record every `let` binding in source
	// order, keyed by name. Redeclaration shadows: later entries with
	// the same key replace earlier ones, matching spec.md §3's
	// write-once-per-scope, shadow-on-redeclare semantics.
	FeatureEnv map[string]FeatureExpr
	NumberEnv  map[string]Number
}

// Statement is one top-level program statement.
type Statement interface {
	stmt()
}

// LetFeature binds Name to a feature template.
type LetFeature struct {
	Name  string
	Value FeatureExpr
	Pos   token.Position
}

// LetNumber binds Name to a numeric expression, evaluated eagerly at
// binding time in the evaluator.
type LetNumber struct {
	Name  string
	Value Number
	Pos   token.Position
}

// FeatureStmt is a top-level feature expression contributing directly
// to the panel.
type FeatureStmt struct {
	Value FeatureExpr
}

func (LetFeature) stmt()  {}
func (LetNumber) stmt()   {}
func (FeatureStmt) stmt() {}

// Number is either a literal decimal or a `!{ expr }` numeric
// expression, resolved against the numeric environment at evaluation
// time.
type Number struct {
	Literal bool
	Value   float64 // valid when Literal
	Expr    string   // raw body of !{ ... }, valid when !Literal
	Pos     token.Position
}

// Point is an (x, y) pair of Numbers, as written in `@(x,y)` or
// `center=(x,y)`.
type Point struct {
	X, Y Number
}

// Direction names one of the four axis-aligned directions used by
// Array and MountCut facing.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "?"
	}
}

// Alignment is the Column child-alignment or Wrap placement alignment
// mode.
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignLeft
	AlignRight
	AlignOverlap
	AlignInterior
	AlignExterior
)

// TypeParams captures a primitive's `<...>` header: an optional
// leading `@(x,y)` center override, positional numbers assigned to the
// shape's fields in declaration order, and named overrides.
type TypeParams struct {
	Center       *Point
	Positional   []Number
	Named        map[string]Number
	NamedPoint   map[string]Point
	Pos          token.Position
}

// SurfaceKind identifies the kind of a surface spec inside a
// primitive's parenthesized surface list.
type SurfaceKind int

const (
	SurfaceDrill SurfaceKind = iota
	SurfacePad
	SurfaceSmiley
	SurfaceLegendText
)

// SurfaceSpec is one entry of a primitive's surface-features list:
// `h` optionally followed by a diameter literal as a separate token
// (`h 2.5`), `msp<w,h>`, `smiley`, or a quoted legend literal. A
// diameter written directly against the `h` (`h2`) lexes as one
// identifier and is rejected by the parser.
type SurfaceSpec struct {
	Kind     SurfaceKind
	Diameter *Number // SurfaceDrill
	Width    *Number // SurfacePad
	Height   *Number // SurfacePad
	Text     string  // SurfaceLegendText
	Pos      token.Position
}

// FeatureExpr is any node that can appear where a feature_expr is
// expected in the grammar.
type FeatureExpr interface {
	featureExpr()
	Position() token.Position
}

// PrimKind identifies which of R/C/T a Primitive node spells.
type PrimKind int

const (
	PrimRect PrimKind = iota
	PrimCircle
	PrimTriangle
)

// Primitive is an `R<...>(...)`, `C<...>(...)` or `T<...>(...)` node.
type Primitive struct {
	Kind     PrimKind
	Params   TypeParams
	Surfaces []SurfaceSpec
	Pos      token.Position
}

// Mount is a `mount_cut<length>()` (or left/right variant) node.
type Mount struct {
	Facing Direction
	Length Number
	Pos    token.Position
}

// Array is a `[count; direction; v-score]feature_expr` node.
type Array struct {
	Count     Number
	Direction Direction
	HasDir    bool // false => direction defaults to DirRight
	VScore    bool
	Child     FeatureExpr
	Pos       token.Position
}

// Tuple is a `(a, b, ...)` node.
type Tuple struct {
	Children []FeatureExpr
	Pos      token.Position
}

// Column is a `column left|center|right { ... }` node.
type Column struct {
	Alignment Alignment
	Children  []FeatureExpr
	Pos       token.Position
}

// Side names the anchor used by a Wrap Placement.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
	SideMinTop
	SideMaxTop
	SideMinBottom
	SideMaxBottom
	SideMinLeft
	SideMaxLeft
	SideMinRight
	SideMaxRight
	SideCenter
	SideAngle
)

// Placement is one `side +/- offset [align ...] => feature_expr` entry
// of a wrap body.
type Placement struct {
	Side      Side
	AngleDeg  Number // valid when Side == SideAngle
	Offset    Number
	HasOffset bool
	Alignment Alignment // AlignOverlap (default), AlignInterior, AlignExterior
	Child     FeatureExpr
	Pos       token.Position
}

// Wrap is a `wrap(center) with { placements }` node.
type Wrap struct {
	Center     FeatureExpr
	Placements []Placement
	Pos        token.Position
}

// Negative is a `negative { feature_expr+ }` node. The grammar allows
// more than one child; they are grouped (unioned, each at its own
// declared position) into the single subtractive contribution spec.md
// §3 describes as Negative{child}.
type Negative struct {
	Children []FeatureExpr
	Pos      token.Position
}

// Rotate is a `rotate(degrees) { feature_expr+ }` node. As with
// Negative, multiple children are grouped into one rotated unit.
type Rotate struct {
	Degrees  Number
	Children []FeatureExpr
	Pos      token.Position
}

// VarRef is a `$name` node, resolved to a clone of the bound feature
// template at evaluation time.
type VarRef struct {
	Name string
	Pos  token.Position
}

func (n *Primitive) featureExpr() {}
func (n *Mount) featureExpr()     {}
func (n *Array) featureExpr()     {}
func (n *Tuple) featureExpr()     {}
func (n *Column) featureExpr()    {}
func (n *Wrap) featureExpr()      {}
func (n *Negative) featureExpr()  {}
func (n *Rotate) featureExpr()    {}
func (n *VarRef) featureExpr()    {}

func (n *Primitive) Position() token.Position { return n.Pos }
func (n *Mount) Position() token.Position     { return n.Pos }
func (n *Array) Position() token.Position     { return n.Pos }
func (n *Tuple) Position() token.Position     { return n.Pos }
func (n *Column) Position() token.Position    { return n.Pos }
func (n *Wrap) Position() token.Position      { return n.Pos }
func (n *Negative) Position() token.Position  { return n.Pos }
func (n *Rotate) Position() token.Position    { return n.Pos }
func (n *VarRef) Position() token.Position    { return n.Pos }
