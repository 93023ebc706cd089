package types

import (
	"strings"

	"github.com/sigil-lang/sigil/internal/token"
)

// Ref is a reference to a named type. TypeArgs is nil when no argument
// list was written; a non-nil list, even a filled-in one, marks the
// reference as instantiated. NoExpand tells the eager expansion pass
// to leave the reference alone so a later stage sees the unexpanded
// form.
type Ref struct {
	Tok      token.Token
	Name     string
	TypeArgs []Type
	NoExpand bool
}

func (r *Ref) typeNode() {}
func (r *Ref) String() string {
	if r.TypeArgs == nil {
		return r.Name
	}
	args := make([]string, len(r.TypeArgs))
	for i, a := range r.TypeArgs {
		args[i] = a.String()
	}
	return r.Name + "<" + strings.Join(args, ", ") + ">"
}
func (r *Ref) GetToken() token.Token {
	if r == nil {
		return token.Token{}
	}
	return r.Tok
}

// TupleElem is one element of a tuple type, optionally labeled.
type TupleElem struct {
	Tok   token.Token
	Label string
	Ty    Type
}

// Tuple is a fixed-length sequence type.
type Tuple struct {
	Tok   token.Token
	Elems []TupleElem
}

func (t *Tuple) typeNode() {}
func (t *Tuple) String() string {
	elems := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		if e.Label != "" {
			elems[i] = e.Label + ": " + e.Ty.String()
		} else {
			elems[i] = e.Ty.String()
		}
	}
	return "[" + strings.Join(elems, ", ") + "]"
}
func (t *Tuple) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Tok
}

// Array is a homogeneous array type.
type Array struct {
	Tok  token.Token
	Elem Type
}

func (a *Array) typeNode() {}
func (a *Array) String() string {
	if needsParens(a.Elem) {
		return "(" + a.Elem.String() + ")[]"
	}
	return a.Elem.String() + "[]"
}
func (a *Array) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Tok
}

func needsParens(t Type) bool {
	switch t.(type) {
	case *Union, *Function:
		return true
	}
	return false
}

// Union is a set of alternative types. Use NewUnion to build one so
// members stay flattened and deduplicated.
type Union struct {
	Tok   token.Token
	Types []Type
}

func (u *Union) typeNode() {}
func (u *Union) String() string {
	members := make([]string, len(u.Types))
	for i, t := range u.Types {
		members[i] = t.String()
	}
	return strings.Join(members, " | ")
}
func (u *Union) GetToken() token.Token {
	if u == nil {
		return token.Token{}
	}
	return u.Tok
}

// NewUnion flattens nested unions, drops never, lets any absorb the
// whole union and deduplicates structurally equal members. An empty
// result collapses to never, a single member to itself.
func NewUnion(tok token.Token, members ...Type) Type {
	var flat []Type
	var add func(t Type)
	add = func(t Type) {
		if u, ok := t.(*Union); ok {
			for _, m := range u.Types {
				add(m)
			}
			return
		}
		if IsNever(t) {
			return
		}
		for _, seen := range flat {
			if Equal(seen, t) {
				return
			}
		}
		flat = append(flat, t)
	}
	for _, m := range members {
		if IsAny(m) {
			return NewAny(tok)
		}
		add(m)
	}
	switch len(flat) {
	case 0:
		return NewNever(tok)
	case 1:
		return flat[0]
	}
	return &Union{Tok: tok, Types: flat}
}

// TypeParam is one declared type parameter of a generic function or
// type declaration.
type TypeParam struct {
	Tok        token.Token
	Name       string
	Constraint Type // nil when unconstrained
	Default    Type // nil when no default
}

func (tp *TypeParam) String() string {
	var out strings.Builder
	out.WriteString(tp.Name)
	if tp.Constraint != nil {
		out.WriteString(" extends " + tp.Constraint.String())
	}
	if tp.Default != nil {
		out.WriteString(" = " + tp.Default.String())
	}
	return out.String()
}

func (tp *TypeParam) GetToken() token.Token {
	if tp == nil {
		return token.Token{}
	}
	return tp.Tok
}

// Param is an occurrence of a type parameter inside a type. Two
// occurrences refer to the same parameter exactly when their Param
// pointers are identical.
type Param struct {
	Tok   token.Token
	Param *TypeParam
}

func (p *Param) typeNode()      {}
func (p *Param) String() string { return p.Param.Name }
func (p *Param) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Tok
}

// FnParam is one parameter of a function type. Pattern parameters
// carry a rendered label in Name for display purposes.
type FnParam struct {
	Tok      token.Token
	Name     string
	Optional bool
	Rest     bool
	Ty       Type
}

func (p FnParam) String() string {
	var out strings.Builder
	if p.Rest {
		out.WriteString("...")
	}
	out.WriteString(p.Name)
	if p.Optional {
		out.WriteString("?")
	}
	out.WriteString(": " + p.Ty.String())
	return out.String()
}

// Function is a function type: type parameters, parameters and a
// return type.
type Function struct {
	Tok        token.Token
	TypeParams []*TypeParam
	Params     []FnParam
	RetTy      Type
}

func (f *Function) typeNode() {}
func (f *Function) String() string {
	var out strings.Builder
	if len(f.TypeParams) > 0 {
		params := make([]string, len(f.TypeParams))
		for i, tp := range f.TypeParams {
			params[i] = tp.String()
		}
		out.WriteString("<" + strings.Join(params, ", ") + ">")
	}
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	out.WriteString("(" + strings.Join(params, ", ") + ") => ")
	out.WriteString(f.RetTy.String())
	return out.String()
}
func (f *Function) GetToken() token.Token {
	if f == nil {
		return token.Token{}
	}
	return f.Tok
}
