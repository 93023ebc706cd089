package ast

import (
	"strings"

	"github.com/sigil-lang/sigil/internal/token"
)

// NamedType is a reference to a named type, with optional type
// arguments: `Foo`, `Box<string>`. Built-in keyword types (number,
// string, void, ...) also arrive here; the checker maps the reserved
// names to keyword types.
type NamedType struct {
	Token    token.Token
	Name     string
	TypeArgs []TypeAnn // nil when no argument list was written
}

func (nt *NamedType) typeAnnNode()         {}
func (nt *NamedType) TokenLiteral() string { return nt.Token.Lexeme }
func (nt *NamedType) GetToken() token.Token {
	if nt == nil {
		return token.Token{}
	}
	return nt.Token
}

func (nt *NamedType) String() string {
	if len(nt.TypeArgs) == 0 {
		return nt.Name
	}
	args := make([]string, len(nt.TypeArgs))
	for i, a := range nt.TypeArgs {
		args[i] = a.String()
	}
	return nt.Name + "<" + strings.Join(args, ", ") + ">"
}

// TupleType is `[A, B, C]`.
type TupleType struct {
	Token    token.Token // The '[' token
	Elements []TypeAnn
}

func (tt *TupleType) typeAnnNode()         {}
func (tt *TupleType) TokenLiteral() string { return tt.Token.Lexeme }
func (tt *TupleType) GetToken() token.Token {
	if tt == nil {
		return token.Token{}
	}
	return tt.Token
}

func (tt *TupleType) String() string {
	elems := make([]string, len(tt.Elements))
	for i, e := range tt.Elements {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// ArrayType is `T[]`.
type ArrayType struct {
	Token   token.Token // The '[' token following the element type
	Element TypeAnn
}

func (at *ArrayType) typeAnnNode()         {}
func (at *ArrayType) TokenLiteral() string { return at.Token.Lexeme }
func (at *ArrayType) GetToken() token.Token {
	if at == nil {
		return token.Token{}
	}
	return at.Token
}
func (at *ArrayType) String() string {
	switch at.Element.(type) {
	case *UnionType, *FunctionType:
		return "(" + at.Element.String() + ")[]"
	}
	return at.Element.String() + "[]"
}

// FunctionType is `(a: A, b: B) => R`.
type FunctionType struct {
	Token      token.Token // The '(' token
	Params     []*Parameter
	ReturnType TypeAnn
}

func (ft *FunctionType) typeAnnNode()         {}
func (ft *FunctionType) TokenLiteral() string { return ft.Token.Lexeme }
func (ft *FunctionType) GetToken() token.Token {
	if ft == nil {
		return token.Token{}
	}
	return ft.Token
}

func (ft *FunctionType) String() string {
	params := make([]string, len(ft.Params))
	for i, p := range ft.Params {
		params[i] = p.String()
	}
	return "(" + strings.Join(params, ", ") + ") => " + ft.ReturnType.String()
}

// UnionType is `A | B | C`.
type UnionType struct {
	Token token.Token // Token of the first member
	Types []TypeAnn
}

func (ut *UnionType) typeAnnNode()         {}
func (ut *UnionType) TokenLiteral() string { return ut.Token.Lexeme }
func (ut *UnionType) GetToken() token.Token {
	if ut == nil {
		return token.Token{}
	}
	return ut.Token
}

func (ut *UnionType) String() string {
	members := make([]string, len(ut.Types))
	for i, t := range ut.Types {
		members[i] = t.String()
	}
	return strings.Join(members, " | ")
}

// LiteralType is a literal in type position: `"a"`, `1`, `true`.
type LiteralType struct {
	Token token.Token
	Value Expression // NumberLiteral, StringLiteral or BooleanLiteral
}

func (lt *LiteralType) typeAnnNode()         {}
func (lt *LiteralType) TokenLiteral() string { return lt.Token.Lexeme }
func (lt *LiteralType) GetToken() token.Token {
	if lt == nil {
		return token.Token{}
	}
	return lt.Token
}
func (lt *LiteralType) String() string { return lt.Value.String() }
