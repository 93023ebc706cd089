package checker

import (
	"github.com/sigil-lang/sigil/internal/ast"
	"github.com/sigil-lang/sigil/internal/symbols"
	"github.com/sigil-lang/sigil/internal/types"
)

// typeFromAnnotation converts a written type annotation into a
// checker type. Named references stay lazy (a Ref carrying the name
// and any arguments) with one exception: a bare class name resolves
// eagerly to the class declaration so the class/instance distinction
// survives normalization. Resolution failures for lazy refs surface
// later, when something forces an expansion.
func (c *Checker) typeFromAnnotation(ann ast.TypeAnn) (types.Type, error) {
	switch a := ann.(type) {
	case *ast.NamedType:
		if kind, ok := types.KeywordByName(a.Name); ok && a.TypeArgs == nil {
			return &types.Keyword{Tok: a.Token, Kind: kind}, nil
		}
		if a.TypeArgs == nil {
			// A bare class name in type position means instances of
			// that class. Generic classes stay references so missing
			// arguments are caught on expansion.
			if sym, ok := c.scope.table.Resolve(a.Name); ok && sym.Kind == symbols.TypeSymbol {
				if cls, isClass := sym.Type.(*types.Class); isClass && len(cls.TypeParams) == 0 {
					return &types.ClassInstance{Tok: a.Token, Class: cls}, nil
				}
			}
			return &types.Ref{Tok: a.Token, Name: a.Name}, nil
		}
		args := make([]types.Type, len(a.TypeArgs))
		for i, argAnn := range a.TypeArgs {
			arg, err := c.typeFromAnnotation(argAnn)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &types.Ref{Tok: a.Token, Name: a.Name, TypeArgs: args}, nil

	case *ast.TupleType:
		elems := make([]types.TupleElem, len(a.Elements))
		for i, elemAnn := range a.Elements {
			elem, err := c.typeFromAnnotation(elemAnn)
			if err != nil {
				return nil, err
			}
			elems[i] = types.TupleElem{Tok: elemAnn.GetToken(), Ty: elem}
		}
		return &types.Tuple{Tok: a.Token, Elems: elems}, nil

	case *ast.ArrayType:
		elem, err := c.typeFromAnnotation(a.Element)
		if err != nil {
			return nil, err
		}
		return &types.Array{Tok: a.Token, Elem: elem}, nil

	case *ast.UnionType:
		members := make([]types.Type, len(a.Types))
		for i, memberAnn := range a.Types {
			member, err := c.typeFromAnnotation(memberAnn)
			if err != nil {
				return nil, err
			}
			members[i] = member
		}
		return types.NewUnion(a.Token, members...), nil

	case *ast.FunctionType:
		params := make([]types.FnParam, 0, len(a.Params))
		for _, p := range a.Params {
			fp, err := c.fnParamFromAnnotation(p)
			if err != nil {
				return nil, err
			}
			params = append(params, fp)
		}
		ret, err := c.typeFromAnnotation(a.ReturnType)
		if err != nil {
			return nil, err
		}
		return &types.Function{Tok: a.Token, Params: params, RetTy: ret}, nil

	case *ast.LiteralType:
		switch v := a.Value.(type) {
		case *ast.NumberLiteral:
			return &types.Lit{Tok: a.Token, Value: v.Value}, nil
		case *ast.StringLiteral:
			return &types.Lit{Tok: a.Token, Value: v.Value}, nil
		case *ast.BooleanLiteral:
			return &types.Lit{Tok: a.Token, Value: v.Value}, nil
		}
	}
	return types.NewAny(ann.GetToken()), nil
}

// fnParamFromAnnotation converts one parameter of a function type
// annotation. Bindings are not declared anywhere; function type
// parameters are shape only.
func (c *Checker) fnParamFromAnnotation(p *ast.Parameter) (types.FnParam, error) {
	fp := types.FnParam{Tok: p.GetToken(), Name: patternLabel(p.Pat)}

	switch pat := p.Pat.(type) {
	case *ast.IdentifierPattern:
		fp.Optional = pat.Optional
	case *ast.RestPattern:
		fp.Rest = true
	}

	if p.TypeAnnotation != nil {
		ty, err := c.typeFromAnnotation(p.TypeAnnotation)
		if err != nil {
			return types.FnParam{}, err
		}
		fp.Ty = ty
	} else {
		fp.Ty = types.NewAny(p.GetToken())
	}
	return fp, nil
}

func patternLabel(pat ast.Pattern) string {
	switch p := pat.(type) {
	case *ast.IdentifierPattern:
		return p.Name.Value
	case *ast.RestPattern:
		return patternLabel(p.Argument)
	}
	return pat.String()
}
