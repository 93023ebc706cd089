package checker

import (
	"fmt"

	"github.com/sigil-lang/sigil/internal/ast"
	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/token"
	"github.com/sigil-lang/sigil/internal/types"
)

// patMode selects what validating a parameter pattern does with its
// bindings.
type patMode int

const (
	// patModeDecl declares every bound name into the current scope.
	patModeDecl patMode = iota
	// patModeShape validates the shape only. Ambient declarations
	// have no body for the bindings to live in.
	patModeShape
)

// validateParam checks one parameter: its annotation is converted and
// eagerly expanded, its pattern is validated and, in declaration
// mode, its names are bound. Resolution failures in the annotation
// are fatal; advisory findings (implicit any, duplicates, a rest
// parameter that is not an array) go to the sink.
func (c *Checker) validateParam(p *ast.Parameter, mode patMode) (types.FnParam, error) {
	fp := types.FnParam{Tok: p.GetToken(), Name: patternLabel(p.Pat)}

	var declared types.Type
	if p.TypeAnnotation != nil {
		t, err := c.typeFromAnnotation(p.TypeAnnotation)
		if err != nil {
			return types.FnParam{}, err
		}
		declared = t
	}
	// The prelude keeps its parameter types symbolic.
	if declared != nil && !c.isBuiltin {
		expanded, err := c.expand(declared)
		if err != nil {
			return types.FnParam{}, err
		}
		declared = expanded
	}

	switch pat := p.Pat.(type) {
	case *ast.IdentifierPattern:
		fp.Optional = pat.Optional
		ty := declared
		if ty == nil {
			c.implicitAny(diagnostics.ErrImplicitAnyParam, pat.Name.GetToken(),
				fmt.Sprintf("Parameter '%s' implicitly has an 'any' type.", pat.Name.Value))
			ty = types.NewAny(pat.Name.GetToken())
		}
		fp.Ty = ty
		if fp.Optional {
			ty = types.NewUnion(pat.Name.GetToken(), ty, types.NewUndefined(pat.Name.GetToken()))
		}
		c.bindPatternName(pat.Name, ty, mode)

	case *ast.RestPattern:
		fp.Rest = true
		ty := declared
		if ty == nil {
			c.implicitAny(diagnostics.ErrImplicitAnyRest, p.GetToken(),
				fmt.Sprintf("Rest parameter '%s' implicitly has an 'any[]' type.", fp.Name))
			ty = &types.Array{Tok: p.GetToken(), Elem: types.NewAny(p.GetToken())}
		} else if !isArrayLike(ty) {
			c.addError(diagnostics.NewError(
				diagnostics.ErrRestNotArray,
				p.GetToken(),
				"A rest parameter must be of an array type.",
			))
		}
		fp.Ty = ty
		c.bindSubpattern(pat.Argument, ty, mode)

	case *ast.ArrayPattern:
		ty := declared
		if ty == nil {
			c.reportImplicitBindings(pat, mode)
			ty = types.NewAny(pat.GetToken())
		}
		fp.Ty = ty
		c.bindArrayPattern(pat, ty, mode)

	case *ast.ObjectPattern:
		ty := declared
		if ty == nil {
			c.reportImplicitBindings(pat, mode)
			ty = types.NewAny(pat.GetToken())
		}
		fp.Ty = ty
		c.bindObjectPattern(pat, ty, mode)

	default:
		fp.Ty = types.NewAny(p.GetToken())
	}
	return fp, nil
}

// bindPatternName declares one bound name, reporting duplicates
// within the same scope.
func (c *Checker) bindPatternName(name *ast.Identifier, ty types.Type, mode patMode) {
	if mode != patModeDecl {
		return
	}
	if c.scope.table.IsDefinedLocally(name.Value) {
		c.addError(diagnostics.NewError(
			diagnostics.ErrDuplicateIdent,
			name.GetToken(),
			fmt.Sprintf("Duplicate identifier '%s'.", name.Value),
		))
		return
	}
	c.scope.table.DefineVariable(name.Value, ty, false, name.GetToken())
}

// bindSubpattern binds a nested pattern against the type carried down
// from the enclosing one. A nil type means nothing is known; the
// binding falls back to any.
func (c *Checker) bindSubpattern(pat ast.Pattern, ty types.Type, mode patMode) {
	switch pat := pat.(type) {
	case *ast.IdentifierPattern:
		if ty == nil {
			c.implicitAny(diagnostics.ErrImplicitAnyBinding, pat.Name.GetToken(),
				fmt.Sprintf("Binding element '%s' implicitly has an 'any' type.", pat.Name.Value))
			ty = types.NewAny(pat.Name.GetToken())
		}
		c.bindPatternName(pat.Name, ty, mode)
	case *ast.RestPattern:
		c.bindSubpattern(pat.Argument, ty, mode)
	case *ast.ArrayPattern:
		if ty == nil {
			ty = types.NewAny(pat.GetToken())
		}
		c.bindArrayPattern(pat, ty, mode)
	case *ast.ObjectPattern:
		if ty == nil {
			ty = types.NewAny(pat.GetToken())
		}
		c.bindObjectPattern(pat, ty, mode)
	}
}

// bindArrayPattern destructures a tuple or array type positionally. A
// trailing rest element takes the rest of the sequence as an array.
func (c *Checker) bindArrayPattern(pat *ast.ArrayPattern, ty types.Type, mode patMode) {
	for i, elem := range pat.Elements {
		if rest, ok := elem.(*ast.RestPattern); ok {
			c.bindSubpattern(rest.Argument, restOfSequence(ty, i, rest.GetToken()), mode)
			continue
		}
		c.bindSubpattern(elem, elementTypeAt(ty, i), mode)
	}
}

// bindObjectPattern destructures by member name. Shorthand entries
// bind the key itself.
func (c *Checker) bindObjectPattern(pat *ast.ObjectPattern, ty types.Type, mode patMode) {
	for _, prop := range pat.Properties {
		bound := prop.Value
		if bound == nil {
			bound = &ast.IdentifierPattern{Token: prop.Key.Token, Name: prop.Key}
		}
		var memberTy types.Type
		if ty != nil && !types.IsAny(ty) {
			if m, ok := memberOf(ty, prop.Key.Value); ok {
				memberTy = m.Ty
			} else {
				c.addError(diagnostics.NewError(
					diagnostics.ErrPropertyMissing,
					prop.Key.GetToken(),
					fmt.Sprintf("Property '%s' does not exist on type '%s'.", prop.Key.Value, ty.String()),
				))
				memberTy = types.NewAny(prop.Key.GetToken())
			}
		} else if ty != nil {
			memberTy = types.NewAny(prop.Key.GetToken())
		}
		c.bindSubpattern(bound, memberTy, mode)
	}
}

// reportImplicitBindings walks an unannotated destructuring pattern
// and reports each name it would bind as any.
func (c *Checker) reportImplicitBindings(pat ast.Pattern, mode patMode) {
	if mode != patModeDecl {
		return
	}
	switch pat := pat.(type) {
	case *ast.IdentifierPattern:
		c.implicitAny(diagnostics.ErrImplicitAnyBinding, pat.Name.GetToken(),
			fmt.Sprintf("Binding element '%s' implicitly has an 'any' type.", pat.Name.Value))
	case *ast.RestPattern:
		c.reportImplicitBindings(pat.Argument, mode)
	case *ast.ArrayPattern:
		for _, elem := range pat.Elements {
			c.reportImplicitBindings(elem, mode)
		}
	case *ast.ObjectPattern:
		for _, prop := range pat.Properties {
			if prop.Value == nil {
				c.implicitAny(diagnostics.ErrImplicitAnyBinding, prop.Key.GetToken(),
					fmt.Sprintf("Binding element '%s' implicitly has an 'any' type.", prop.Key.Value))
				continue
			}
			c.reportImplicitBindings(prop.Value, mode)
		}
	}
}

// implicitAny reports an implicit any diagnostic when the
// configuration asks for one.
func (c *Checker) implicitAny(code diagnostics.ErrorCode, tok token.Token, msg string) {
	if !c.cfg.Check.NoImplicitAny {
		return
	}
	c.addError(diagnostics.NewError(code, tok, msg))
}

func isArrayLike(t types.Type) bool {
	switch t.(type) {
	case *types.Array, *types.Tuple:
		return true
	}
	return types.IsAny(t)
}

// elementTypeAt picks the type destructured at position i. Tuples
// index directly, arrays repeat their element type, any stays any.
func elementTypeAt(t types.Type, i int) types.Type {
	switch t := t.(type) {
	case *types.Tuple:
		if i < len(t.Elems) {
			return t.Elems[i].Ty
		}
		return types.NewUndefined(t.Tok)
	case *types.Array:
		return t.Elem
	}
	if t != nil && types.IsAny(t) {
		return t
	}
	return nil
}

// restOfSequence is the type a `...rest` element collects from
// position i onward.
func restOfSequence(t types.Type, i int, tok token.Token) types.Type {
	switch t := t.(type) {
	case *types.Tuple:
		elems := make([]types.TupleElem, 0, len(t.Elems))
		for j := i; j < len(t.Elems); j++ {
			elems = append(elems, t.Elems[j])
		}
		return &types.Tuple{Tok: tok, Elems: elems}
	case *types.Array:
		return t
	}
	if t != nil && types.IsAny(t) {
		return &types.Array{Tok: tok, Elem: types.NewAny(tok)}
	}
	return nil
}
