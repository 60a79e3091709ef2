// Package parser implements a hand-written recursive-descent parser
// for the panel source language described in spec.md §4.1, producing
// a lang/ast.Program.
package parser

import (
	"fmt"
	"strings"

	"github.com/twitchyliquid64/maker-panel/lang/ast"
	"github.com/twitchyliquid64/maker-panel/lang/token"
)

// Parse parses src into a Program, or returns the first error
// encountered (a *ast.ParseError, *ast.UndefinedVariable or
// *ast.BadType).
func Parse(src string) (*ast.Program, error) {
	p := &parser{sc: token.NewScanner(src)}
	p.next()
	return p.parseProgram()
}

type parser struct {
	sc  *token.Scanner
	tok token.Token

	featureEnv map[string]ast.FeatureExpr
	numberEnv  map[string]ast.Number
}

func (p *parser) next() {
	p.tok = p.sc.Next()
}

func (p *parser) errf(format string, args ...any) error {
	return &ast.ParseError{Msg: fmt.Sprintf(format, args...), Pos: p.tok.Pos}
}

func (p *parser) expect(k token.Kind) (token.Token, error) {
	if p.tok.Kind != k {
		return token.Token{}, p.errf("expected %v, got %v", k, p.tok.Kind)
	}
	t := p.tok
	p.next()
	return t, nil
}

func (p *parser) parseProgram() (*ast.Program, error) {
	p.featureEnv = map[string]ast.FeatureExpr{}
	p.numberEnv = map[string]ast.Number{}
	prog := &ast.Program{FeatureEnv: p.featureEnv, NumberEnv: p.numberEnv}

	for p.tok.Kind != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func (p *parser) parseStatement() (ast.Statement, error) {
	if p.tok.Kind == token.LET {
		return p.parseLet()
	}
	expr, err := p.parseFeatureExpr()
	if err != nil {
		return nil, err
	}
	return ast.FeatureStmt{Value: expr}, nil
}

func (p *parser) parseLet() (ast.Statement, error) {
	pos := p.tok.Pos
	p.next() // "let"
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EQUAL); err != nil {
		return nil, err
	}
	if p.tok.Kind == token.BANG {
		num, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		p.numberEnv[nameTok.Text] = num
		return ast.LetNumber{Name: nameTok.Text, Value: num, Pos: pos}, nil
	}

	expr, err := p.parseFeatureExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	p.featureEnv[nameTok.Text] = expr
	return ast.LetFeature{Name: nameTok.Text, Value: expr, Pos: pos}, nil
}

// parseFeatureExpr dispatches on the current token to one of the
// feature_expr alternatives.
func (p *parser) parseFeatureExpr() (ast.FeatureExpr, error) {
	switch p.tok.Kind {
	case token.LBRACKET:
		return p.parseArray()
	case token.LPAREN:
		return p.parseTuple()
	case token.COLUMN:
		return p.parseColumn()
	case token.WRAP:
		return p.parseWrap()
	case token.NEGATIVE:
		return p.parseNegative()
	case token.ROTATE:
		return p.parseRotate()
	case token.DOLLAR:
		return p.parseVarRef()
	case token.MOUNTCUT, token.MOUNTCUTLEFT, token.MOUNTCUTRIGHT:
		return p.parseMount()
	case token.IDENT:
		switch p.tok.Text {
		case "R":
			return p.parsePrimitive(ast.PrimRect)
		case "C":
			return p.parsePrimitive(ast.PrimCircle)
		case "T":
			return p.parsePrimitive(ast.PrimTriangle)
		}
		return nil, p.errf("unexpected identifier %q", p.tok.Text)
	default:
		return nil, p.errf("unexpected token %v starting feature expression", p.tok.Kind)
	}
}

func (p *parser) parsePrimitive(kind ast.PrimKind) (ast.FeatureExpr, error) {
	pos := p.tok.Pos
	p.next() // R/C/T ident
	params, err := p.parseTypeParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var surfaces []ast.SurfaceSpec
	for p.tok.Kind != token.RPAREN {
		s, err := p.parseSurfaceSpec()
		if err != nil {
			return nil, err
		}
		surfaces = append(surfaces, s)
		if p.tok.Kind == token.COMMA {
			p.next()
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.Primitive{Kind: kind, Params: params, Surfaces: surfaces, Pos: pos}, nil
}

func (p *parser) parseMount() (ast.FeatureExpr, error) {
	pos := p.tok.Pos
	var facing ast.Direction
	switch p.tok.Kind {
	case token.MOUNTCUT:
		facing = ast.DirUp
	case token.MOUNTCUTLEFT:
		facing = ast.DirLeft
	case token.MOUNTCUTRIGHT:
		facing = ast.DirRight
	}
	p.next()
	if _, err := p.expect(token.LANGLE); err != nil {
		return nil, err
	}
	length, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RANGLE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.Mount{Facing: facing, Length: length, Pos: pos}, nil
}

func (p *parser) parseArray() (ast.FeatureExpr, error) {
	pos := p.tok.Pos
	p.next() // "["
	count, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	arr := &ast.Array{Count: count, Pos: pos}
	for p.tok.Kind == token.SEMI {
		p.next()
		switch p.tok.Kind {
		case token.VSCORE:
			arr.VScore = true
			p.next()
		case token.TOP, token.BOTTOM, token.LEFT, token.RIGHT:
			d, err := parseDirectionTok(p.tok.Kind)
			if err != nil {
				return nil, err
			}
			arr.Direction = d
			arr.HasDir = true
			p.next()
		default:
			return nil, p.errf("expected direction or v-score in array header, got %v", p.tok.Kind)
		}
	}
	if !arr.HasDir {
		arr.Direction = ast.DirRight
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	child, err := p.parseFeatureExpr()
	if err != nil {
		return nil, err
	}
	arr.Child = child
	return arr, nil
}

func parseDirectionTok(k token.Kind) (ast.Direction, error) {
	switch k {
	case token.TOP:
		return ast.DirUp, nil
	case token.BOTTOM:
		return ast.DirDown, nil
	case token.LEFT:
		return ast.DirLeft, nil
	case token.RIGHT:
		return ast.DirRight, nil
	default:
		return 0, fmt.Errorf("not a direction token: %v", k)
	}
}

func (p *parser) parseTuple() (ast.FeatureExpr, error) {
	pos := p.tok.Pos
	p.next() // "("
	t := &ast.Tuple{Pos: pos}
	for {
		child, err := p.parseFeatureExpr()
		if err != nil {
			return nil, err
		}
		t.Children = append(t.Children, child)
		if p.tok.Kind == token.COMMA {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if len(t.Children) == 0 {
		return nil, &ast.ParseError{Msg: "empty", Pos: pos}
	}
	return t, nil
}

func (p *parser) parseColumn() (ast.FeatureExpr, error) {
	pos := p.tok.Pos
	p.next() // "column"
	var align ast.Alignment
	switch p.tok.Kind {
	case token.CENTER:
		align = ast.AlignCenter
	case token.LEFT:
		align = ast.AlignLeft
	case token.RIGHT:
		align = ast.AlignRight
	default:
		return nil, p.errf("expected column alignment (center/left/right), got %v", p.tok.Kind)
	}
	p.next()
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	col := &ast.Column{Alignment: align, Pos: pos}
	for p.tok.Kind != token.RBRACE {
		child, err := p.parseFeatureExpr()
		if err != nil {
			return nil, err
		}
		col.Children = append(col.Children, child)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	if len(col.Children) == 0 {
		return nil, &ast.ParseError{Msg: "empty", Pos: pos}
	}
	return col, nil
}

func (p *parser) parseNegative() (ast.FeatureExpr, error) {
	pos := p.tok.Pos
	p.next() // "negative"
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	n := &ast.Negative{Pos: pos}
	for p.tok.Kind != token.RBRACE {
		child, err := p.parseFeatureExpr()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	if len(n.Children) == 0 {
		return nil, &ast.ParseError{Msg: "empty", Pos: pos}
	}
	return n, nil
}

func (p *parser) parseRotate() (ast.FeatureExpr, error) {
	pos := p.tok.Pos
	p.next() // "rotate"
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	degrees, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	r := &ast.Rotate{Degrees: degrees, Pos: pos}
	for p.tok.Kind != token.RBRACE {
		child, err := p.parseFeatureExpr()
		if err != nil {
			return nil, err
		}
		r.Children = append(r.Children, child)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	if len(r.Children) == 0 {
		return nil, &ast.ParseError{Msg: "empty", Pos: pos}
	}
	return r, nil
}

func (p *parser) parseVarRef() (ast.FeatureExpr, error) {
	pos := p.tok.Pos
	p.next() // "$"
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, ok := p.numberEnv[nameTok.Text]; ok {
		return nil, &ast.BadType{Name: nameTok.Text, Pos: pos}
	}
	if _, ok := p.featureEnv[nameTok.Text]; !ok {
		return nil, &ast.UndefinedVariable{Name: nameTok.Text, Pos: pos}
	}
	return &ast.VarRef{Name: nameTok.Text, Pos: pos}, nil
}

func (p *parser) parseWrap() (ast.FeatureExpr, error) {
	pos := p.tok.Pos
	p.next() // "wrap"
	p.sc.InWrapHeader = true
	defer func() { p.sc.InWrapHeader = false }()

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	center, err := p.parseFeatureExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.WITH); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	w := &ast.Wrap{Center: center, Pos: pos}
	for p.tok.Kind != token.RBRACE {
		pl, err := p.parsePlacement()
		if err != nil {
			return nil, err
		}
		w.Placements = append(w.Placements, pl)
		if p.tok.Kind == token.COMMA {
			p.next()
		}
	}
	// The token after the closing '}' lies outside the wrap.
	p.sc.InWrapHeader = false
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return w, nil
}

func (p *parser) parsePlacement() (ast.Placement, error) {
	pos := p.tok.Pos
	pl := ast.Placement{Pos: pos, Alignment: ast.AlignOverlap}

	side, angle, err := p.parseSide()
	if err != nil {
		return pl, err
	}
	pl.Side = side
	pl.AngleDeg = angle

	if p.tok.Kind == token.PLUS || p.tok.Kind == token.MINUS {
		neg := p.tok.Kind == token.MINUS
		p.next()
		num, err := p.parseNumber()
		if err != nil {
			return pl, err
		}
		if neg {
			if num.Literal {
				num.Value = -num.Value
			} else {
				num.Expr = "-(" + num.Expr + ")"
			}
		}
		pl.Offset = num
		pl.HasOffset = true
	}
	if p.tok.Kind == token.ALIGN {
		p.next()
		switch p.tok.Kind {
		case token.INTERIOR:
			pl.Alignment = ast.AlignInterior
		case token.EXTERIOR:
			pl.Alignment = ast.AlignExterior
		default:
			return pl, p.errf("expected interior/exterior after align, got %v", p.tok.Kind)
		}
		p.next()
	}
	if _, err := p.expect(token.ARROW); err != nil {
		return pl, err
	}
	child, err := p.parseFeatureExpr()
	if err != nil {
		return pl, err
	}
	pl.Child = child
	return pl, nil
}

func (p *parser) parseSide() (ast.Side, ast.Number, error) {
	switch p.tok.Kind {
	case token.TOP:
		p.next()
		return ast.SideTop, ast.Number{}, nil
	case token.BOTTOM:
		p.next()
		return ast.SideBottom, ast.Number{}, nil
	case token.LEFT:
		p.next()
		return ast.SideLeft, ast.Number{}, nil
	case token.RIGHT:
		p.next()
		return ast.SideRight, ast.Number{}, nil
	case token.CENTER:
		p.next()
		return ast.SideCenter, ast.Number{}, nil
	case token.ANGLE:
		p.next()
		if _, err := p.expect(token.LPAREN); err != nil {
			return 0, ast.Number{}, err
		}
		n, err := p.parseNumber()
		if err != nil {
			return 0, ast.Number{}, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return 0, ast.Number{}, err
		}
		return ast.SideAngle, n, nil
	case token.MIN, token.MAX:
		isMin := p.tok.Kind == token.MIN
		p.next()
		if _, err := p.expect(token.MINUS); err != nil {
			return 0, ast.Number{}, err
		}
		var base ast.Side
		switch p.tok.Kind {
		case token.TOP:
			base = ast.SideMinTop
		case token.BOTTOM:
			base = ast.SideMinBottom
		case token.LEFT:
			base = ast.SideMinLeft
		case token.RIGHT:
			base = ast.SideMinRight
		default:
			return 0, ast.Number{}, p.errf("expected top/bottom/left/right after min-/max-, got %v", p.tok.Kind)
		}
		p.next()
		if !isMin {
			base += ast.SideMaxTop - ast.SideMinTop
		}
		return base, ast.Number{}, nil
	default:
		return 0, ast.Number{}, p.errf("expected a placement side, got %v", p.tok.Kind)
	}
}

func (p *parser) parseSurfaceSpec() (ast.SurfaceSpec, error) {
	pos := p.tok.Pos
	switch {
	case p.tok.Kind == token.IDENT && p.tok.Text == "h":
		p.next()
		s := ast.SurfaceSpec{Kind: ast.SurfaceDrill, Pos: pos}
		if p.tok.Kind == token.NUMBER {
			n := ast.Number{Literal: true, Value: p.tok.Num, Pos: p.tok.Pos}
			p.next()
			s.Diameter = &n
		}
		return s, nil
	case p.tok.Kind == token.IDENT && p.tok.Text == "msp":
		p.next()
		s := ast.SurfaceSpec{Kind: ast.SurfacePad, Pos: pos}
		if p.tok.Kind == token.LANGLE {
			p.next()
			w, err := p.parseNumber()
			if err != nil {
				return s, err
			}
			if _, err := p.expect(token.COMMA); err != nil {
				return s, err
			}
			h, err := p.parseNumber()
			if err != nil {
				return s, err
			}
			if _, err := p.expect(token.RANGLE); err != nil {
				return s, err
			}
			s.Width, s.Height = &w, &h
		}
		return s, nil
	case p.tok.Kind == token.IDENT && p.tok.Text == "smiley":
		p.next()
		return ast.SurfaceSpec{Kind: ast.SurfaceSmiley, Pos: pos}, nil
	case p.tok.Kind == token.STRING:
		text := p.tok.Text
		p.next()
		return ast.SurfaceSpec{Kind: ast.SurfaceLegendText, Text: text, Pos: pos}, nil
	default:
		return ast.SurfaceSpec{}, p.errf("expected a surface spec (h, msp, smiley or a legend literal), got %v", p.tok.Kind)
	}
}

// parseTypeParams parses the `<...>` header of a primitive.
func (p *parser) parseTypeParams() (ast.TypeParams, error) {
	tp := ast.TypeParams{Pos: p.tok.Pos, Named: map[string]ast.Number{}, NamedPoint: map[string]ast.Point{}}
	if _, err := p.expect(token.LANGLE); err != nil {
		return tp, err
	}

	if p.tok.Kind == token.AT {
		p.next()
		if _, err := p.expect(token.LPAREN); err != nil {
			return tp, err
		}
		x, err := p.parseNumber()
		if err != nil {
			return tp, err
		}
		if _, err := p.expect(token.COMMA); err != nil {
			return tp, err
		}
		y, err := p.parseNumber()
		if err != nil {
			return tp, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return tp, err
		}
		tp.Center = &ast.Point{X: x, Y: y}
		if _, err := p.expect(token.COMMA); err != nil {
			return tp, err
		}
	}

	for p.tok.Kind != token.RANGLE {
		if err := p.parseParam(&tp); err != nil {
			return tp, err
		}
		if p.tok.Kind == token.COMMA {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(token.RANGLE); err != nil {
		return tp, err
	}
	return tp, nil
}

func (p *parser) parseParam(tp *ast.TypeParams) error {
	// ident "=" number | ident "=" "(" number "," number ")" | number
	// "center" lexes as the CENTER keyword rather than IDENT.
	if p.tok.Kind == token.IDENT || p.tok.Kind == token.CENTER {
		name := p.tok.Text
		save := p.tok
		p.next()
		if p.tok.Kind == token.EQUAL {
			p.next()
			if p.tok.Kind == token.LPAREN {
				p.next()
				x, err := p.parseNumber()
				if err != nil {
					return err
				}
				if _, err := p.expect(token.COMMA); err != nil {
					return err
				}
				y, err := p.parseNumber()
				if err != nil {
					return err
				}
				if _, err := p.expect(token.RPAREN); err != nil {
					return err
				}
				if name == "center" {
					tp.Center = &ast.Point{X: x, Y: y}
				} else {
					tp.NamedPoint[name] = ast.Point{X: x, Y: y}
				}
				return nil
			}
			n, err := p.parseNumber()
			if err != nil {
				return err
			}
			tp.Named[name] = n
			return nil
		}
		// Not actually a named param; this identifier must itself be a
		// numeric expression start, which the grammar does not allow —
		// report the unconsumed token as an error.
		return &ast.ParseError{Msg: fmt.Sprintf("unexpected identifier %q in type params", name), Pos: save.Pos}
	}
	n, err := p.parseNumber()
	if err != nil {
		return err
	}
	tp.Positional = append(tp.Positional, n)
	return nil
}

// parseNumber parses either a signed decimal literal or a `!{ expr }`
// block, in the latter case slicing the raw, untokenized expression
// body directly out of the source text.
func (p *parser) parseNumber() (ast.Number, error) {
	if p.tok.Kind == token.NUMBER {
		n := ast.Number{Literal: true, Value: p.tok.Num, Pos: p.tok.Pos}
		p.next()
		return n, nil
	}
	if p.tok.Kind == token.BANG {
		pos := p.tok.Pos
		p.next()
		if p.tok.Kind != token.LBRACE {
			return ast.Number{}, p.errf("expected %v, got %v", token.LBRACE, p.tok.Kind)
		}
		// The scanner sits just past the '{': take the body from here
		// rather than consuming a token of it first.
		start := p.sc.BytePos()
		src := p.sc.Src()
		end := strings.IndexByte(src[start:], '}')
		if end < 0 {
			return ast.Number{}, &ast.ParseError{Msg: "unterminated !{ expression", Pos: pos}
		}
		end += start
		expr := src[start:end]
		p.sc.AdvanceTo(end)
		p.next() // should now be RBRACE
		if _, err := p.expect(token.RBRACE); err != nil {
			return ast.Number{}, err
		}
		return ast.Number{Literal: false, Expr: expr, Pos: pos}, nil
	}
	return ast.Number{}, p.errf("expected a number or !{ expr }, got %v", p.tok.Kind)
}
