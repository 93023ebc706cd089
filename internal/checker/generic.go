package checker

import (
	"fmt"

	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/token"
	"github.com/sigil-lang/sigil/internal/types"
)

// qualifyRef resolves the declaration behind a reference and appends
// a type argument for every omitted trailing type parameter: the
// parameter's default when it has one, otherwise any plus an
// implicit-any diagnostic at the parameter's declaration site. The
// filled reference is marked against eager expansion so the attached
// defaults survive into emitted signatures. References to anything
// without a type parameter list pass through unchanged, as do fully
// or over-supplied ones.
func (c *Checker) qualifyRef(ref *types.Ref) (*types.Ref, []*diagnostics.DiagnosticError) {
	resolved, err := c.resolveEntityName(ref.Tok, ref.Name, ref.TypeArgs)
	if err != nil {
		return ref, []*diagnostics.DiagnosticError{toDiagnostic(err, ref.Tok)}
	}
	params, ok := typeParamsOf(resolved)
	if !ok || len(params) <= len(ref.TypeArgs) {
		return ref, nil
	}

	var diags []*diagnostics.DiagnosticError
	args := make([]types.Type, 0, len(params))
	args = append(args, ref.TypeArgs...)
	for _, p := range params[len(ref.TypeArgs):] {
		if p.Default != nil {
			args = append(args, p.Default)
			continue
		}
		diags = append(diags, diagnostics.NewError(
			diagnostics.ErrImplicitAny,
			p.Tok,
			fmt.Sprintf("Type parameter '%s' implicitly has an 'any' type.", p.Name),
		))
		args = append(args, types.NewAny(p.Tok))
	}
	return &types.Ref{Tok: ref.Tok, Name: ref.Name, TypeArgs: args, NoExpand: true}, diags
}

// substituteOwnParams rewrites every unqualified reference whose name
// matches one of params into a direct parameter occurrence. The
// function's own type parameters resolve through the same lookup as
// concrete names, so occurrences must be re-identified once the type
// is final. Bottom-up, idempotent, and a no-op without parameters.
func substituteOwnParams(t types.Type, params []*types.TypeParam) types.Type {
	if t == nil || len(params) == 0 {
		return t
	}
	byName := make(map[string]*types.TypeParam, len(params))
	for _, tp := range params {
		byName[tp.Name] = tp
	}
	return types.Rewrite(t, func(n types.Type) types.Type {
		if ref, ok := n.(*types.Ref); ok && ref.TypeArgs == nil {
			if tp, ok := byName[ref.Name]; ok {
				return &types.Param{Tok: ref.Tok, Param: tp}
			}
		}
		return n
	})
}

// toDiagnostic coerces a collaborator error into a positioned
// diagnostic.
func toDiagnostic(err error, tok token.Token) *diagnostics.DiagnosticError {
	if d, ok := err.(*diagnostics.DiagnosticError); ok {
		return d
	}
	return diagnostics.NewError(diagnostics.ErrInternal, tok, err.Error())
}
