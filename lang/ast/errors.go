package ast

import (
	"fmt"

	"github.com/twitchyliquid64/maker-panel/lang/token"
)

// ParseError reports a lexical or grammatical failure, as spec.md §7's
// `Parse(msg, span)`.
type ParseError struct {
	Msg string
	Pos token.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %v: %s", e.Pos, e.Msg)
}

// UndefinedVariable reports a reference to an unbound `$name` or
// numeric identifier.
type UndefinedVariable struct {
	Name string
	Pos  token.Position
}

func (e *UndefinedVariable) Error() string {
	return fmt.Sprintf("undefined variable %q at %v", e.Name, e.Pos)
}

// BadType reports a kind mismatch between a binding and its use site:
// a numeric binding used as `$name`, or a feature binding used inside
// a `!{ }` expression.
type BadType struct {
	Name string
	Pos  token.Position
}

func (e *BadType) Error() string {
	return fmt.Sprintf("%q is not the expected kind at %v", e.Name, e.Pos)
}
