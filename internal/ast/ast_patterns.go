package ast

import (
	"strings"

	"github.com/sigil-lang/sigil/internal/token"
)

// IdentifierPattern binds a single name, optionally marked `?`.
type IdentifierPattern struct {
	Token    token.Token
	Name     *Identifier
	Optional bool
}

func (ip *IdentifierPattern) patternNode()         {}
func (ip *IdentifierPattern) TokenLiteral() string { return ip.Token.Lexeme }
func (ip *IdentifierPattern) GetToken() token.Token {
	if ip == nil {
		return token.Token{}
	}
	return ip.Token
}

func (ip *IdentifierPattern) String() string {
	if ip.Optional {
		return ip.Name.Value + "?"
	}
	return ip.Name.Value
}

// RestPattern is `...inner`, legal only as the last parameter.
type RestPattern struct {
	Token    token.Token // The '...' token
	Argument Pattern
}

func (rp *RestPattern) patternNode()         {}
func (rp *RestPattern) TokenLiteral() string { return rp.Token.Lexeme }
func (rp *RestPattern) GetToken() token.Token {
	if rp == nil {
		return token.Token{}
	}
	return rp.Token
}
func (rp *RestPattern) String() string { return "..." + rp.Argument.String() }

// ArrayPattern destructures a tuple or array, e.g. `[a, b]`.
type ArrayPattern struct {
	Token    token.Token // The '[' token
	Elements []Pattern
}

func (ap *ArrayPattern) patternNode()         {}
func (ap *ArrayPattern) TokenLiteral() string { return ap.Token.Lexeme }
func (ap *ArrayPattern) GetToken() token.Token {
	if ap == nil {
		return token.Token{}
	}
	return ap.Token
}

func (ap *ArrayPattern) String() string {
	elems := make([]string, len(ap.Elements))
	for i, e := range ap.Elements {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// ObjectPatternProp is one `key` or `key: binding` entry of an object
// pattern.
type ObjectPatternProp struct {
	Token token.Token
	Key   *Identifier
	Value Pattern // nil for shorthand `{ key }`
}

func (op *ObjectPatternProp) TokenLiteral() string { return op.Token.Lexeme }
func (op *ObjectPatternProp) GetToken() token.Token {
	if op == nil {
		return token.Token{}
	}
	return op.Token
}

func (op *ObjectPatternProp) String() string {
	if op.Value == nil {
		return op.Key.Value
	}
	return op.Key.Value + ": " + op.Value.String()
}

// ObjectPattern destructures named members, e.g. `{x, y}`.
type ObjectPattern struct {
	Token      token.Token // The '{' token
	Properties []*ObjectPatternProp
}

func (op *ObjectPattern) patternNode()         {}
func (op *ObjectPattern) TokenLiteral() string { return op.Token.Lexeme }
func (op *ObjectPattern) GetToken() token.Token {
	if op == nil {
		return token.Token{}
	}
	return op.Token
}

func (op *ObjectPattern) String() string {
	props := make([]string, len(op.Properties))
	for i, p := range op.Properties {
		props[i] = p.String()
	}
	return "{" + strings.Join(props, ", ") + "}"
}
