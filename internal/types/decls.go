package types

import (
	"strings"

	"github.com/sigil-lang/sigil/internal/token"
)

// Member is one named member of an interface or class.
type Member struct {
	Tok      token.Token
	Name     string
	Optional bool
	Ty       Type
}

// Alias is a named type alias declaration: its parameters and target.
// The target keeps unresolved references; expansion substitutes the
// parameters and resolves lazily.
type Alias struct {
	Tok        token.Token
	Name       string
	TypeParams []*TypeParam
	Target     Type
}

func (a *Alias) typeNode() {}
func (a *Alias) String() string {
	if len(a.TypeParams) == 0 {
		return a.Name
	}
	params := make([]string, len(a.TypeParams))
	for i, tp := range a.TypeParams {
		params[i] = tp.Name
	}
	return a.Name + "<" + strings.Join(params, ", ") + ">"
}
func (a *Alias) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Tok
}

// Interface is a named interface declaration.
type Interface struct {
	Tok        token.Token
	Name       string
	TypeParams []*TypeParam
	Members    []Member
}

func (i *Interface) typeNode() {}
func (i *Interface) String() string {
	if len(i.TypeParams) == 0 {
		return i.Name
	}
	params := make([]string, len(i.TypeParams))
	for j, tp := range i.TypeParams {
		params[j] = tp.Name
	}
	return i.Name + "<" + strings.Join(params, ", ") + ">"
}
func (i *Interface) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Tok
}

// Member looks up a member by name.
func (i *Interface) Member(name string) (Member, bool) {
	for _, m := range i.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// Class is a class declaration used as a type: the static side. A
// bare class in type position normalizes to a ClassInstance wrap.
type Class struct {
	Tok        token.Token
	Name       string
	TypeParams []*TypeParam
	Fields     []Member
}

func (c *Class) typeNode()      {}
func (c *Class) String() string { return "typeof " + c.Name }
func (c *Class) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Tok
}

// Field looks up a field by name.
func (c *Class) Field(name string) (Member, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Member{}, false
}

// ClassInstance is the instance side of a class, with any type
// arguments the instantiation supplied.
type ClassInstance struct {
	Tok      token.Token
	Class    *Class
	TypeArgs []Type
}

func (ci *ClassInstance) typeNode() {}
func (ci *ClassInstance) String() string {
	if len(ci.TypeArgs) == 0 {
		return ci.Class.Name
	}
	args := make([]string, len(ci.TypeArgs))
	for i, a := range ci.TypeArgs {
		args[i] = a.String()
	}
	return ci.Class.Name + "<" + strings.Join(args, ", ") + ">"
}
func (ci *ClassInstance) GetToken() token.Token {
	if ci == nil {
		return token.Token{}
	}
	return ci.Tok
}
