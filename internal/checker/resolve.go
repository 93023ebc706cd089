package checker

import (
	"fmt"

	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/symbols"
	"github.com/sigil-lang/sigil/internal/token"
	"github.com/sigil-lang/sigil/internal/types"
)

// resolveEntityName resolves a type name in the current scope to its
// declaration type: keyword types map directly, type parameters yield
// an occurrence, and alias/interface/class names yield the
// declaration itself, untouched by any supplied type arguments. The
// caller decides how to instantiate.
func (c *Checker) resolveEntityName(tok token.Token, name string, typeArgs []types.Type) (types.Type, error) {
	if kind, ok := types.KeywordByName(name); ok {
		return &types.Keyword{Tok: tok, Kind: kind}, nil
	}

	sym, ok := c.scope.table.Resolve(name)
	if !ok {
		return nil, diagnostics.NewError(
			diagnostics.ErrUnknownName,
			tok,
			fmt.Sprintf("Cannot find name '%s'.", name),
		)
	}

	switch sym.Kind {
	case symbols.TypeParamSymbol:
		if len(typeArgs) > 0 {
			return nil, diagnostics.NewError(
				diagnostics.ErrNotGeneric,
				tok,
				fmt.Sprintf("Type '%s' is not generic.", name),
			)
		}
		return &types.Param{Tok: tok, Param: sym.TypeParam}, nil
	case symbols.TypeSymbol:
		return sym.Type, nil
	default:
		return nil, diagnostics.NewError(
			diagnostics.ErrValueAsType,
			tok,
			fmt.Sprintf("'%s' refers to a value, but is being used as a type here.", name),
		)
	}
}

// typeParamsOf extracts the declared type parameter list from a
// declaration type. Only aliases, interfaces and classes carry one.
func typeParamsOf(decl types.Type) ([]*types.TypeParam, bool) {
	switch d := decl.(type) {
	case *types.Alias:
		return d.TypeParams, true
	case *types.Interface:
		return d.TypeParams, true
	case *types.Class:
		return d.TypeParams, true
	}
	return nil, false
}
