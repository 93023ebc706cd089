package checker

import (
	"fmt"

	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/token"
	"github.com/sigil-lang/sigil/internal/types"
)

// expand resolves the outermost reference chain of t. References
// marked NoExpand are left alone. A chain that revisits a name with
// no structure in between is a circular alias.
func (c *Checker) expand(t types.Type) (types.Type, error) {
	var entered []string
	defer func() {
		for _, name := range entered {
			delete(c.expanding, name)
		}
	}()
	for {
		ref, ok := t.(*types.Ref)
		if !ok || ref.NoExpand {
			return t, nil
		}
		if c.expanding[ref.Name] {
			return nil, diagnostics.NewError(
				diagnostics.ErrCircularAlias,
				ref.Tok,
				fmt.Sprintf("Type alias '%s' circularly references itself.", ref.Name),
			)
		}
		c.expanding[ref.Name] = true
		entered = append(entered, ref.Name)

		next, err := c.expandRef(ref)
		if err != nil {
			return nil, err
		}
		t = next
	}
}

// expandFully resolves references throughout t, including those
// marked NoExpand. A reference re-entered while its own expansion is
// in progress stays as written, so recursive types terminate instead
// of erroring.
func (c *Checker) expandFully(t types.Type) (types.Type, error) {
	if ref, ok := t.(*types.Ref); ok {
		if c.expanding[ref.Name] {
			return ref, nil
		}
		resolved, err := c.expandRef(ref)
		if err != nil {
			return nil, err
		}
		c.expanding[ref.Name] = true
		expanded, err := c.expandFully(resolved)
		delete(c.expanding, ref.Name)
		return expanded, err
	}

	var firstErr error
	out := types.MapChildren(t, func(child types.Type) types.Type {
		if firstErr != nil {
			return child
		}
		mapped, err := c.expandFully(child)
		if err != nil {
			firstErr = err
			return child
		}
		return mapped
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// expandRef resolves one reference one step: type parameters and
// keywords come back as themselves, aliases are instantiated,
// interfaces with arguments become member-substituted copies, and
// classes normalize to their instance side. The caller loops on the
// result.
func (c *Checker) expandRef(ref *types.Ref) (types.Type, error) {
	resolved, err := c.resolveEntityName(ref.Tok, ref.Name, ref.TypeArgs)
	if err != nil {
		return nil, err
	}

	switch decl := resolved.(type) {
	case *types.Keyword:
		if len(ref.TypeArgs) > 0 {
			return nil, diagnostics.NewError(
				diagnostics.ErrNotGeneric,
				ref.Tok,
				fmt.Sprintf("Type '%s' is not generic.", ref.Name),
			)
		}
		return decl, nil

	case *types.Param:
		return decl, nil

	case *types.Alias:
		if err := checkTypeArgCount(ref.Tok, decl.Name, decl.TypeParams, ref.TypeArgs); err != nil {
			return nil, err
		}
		args := fillTypeArgs(decl.TypeParams, ref.TypeArgs)
		return types.Instantiate(decl.Target, decl.TypeParams, args), nil

	case *types.Interface:
		if err := checkTypeArgCount(ref.Tok, decl.Name, decl.TypeParams, ref.TypeArgs); err != nil {
			return nil, err
		}
		if len(decl.TypeParams) == 0 {
			return decl, nil
		}
		args := fillTypeArgs(decl.TypeParams, ref.TypeArgs)
		members := make([]types.Member, len(decl.Members))
		for i, m := range decl.Members {
			members[i] = m
			members[i].Ty = types.Instantiate(m.Ty, decl.TypeParams, args)
		}
		return &types.Interface{Tok: ref.Tok, Name: decl.Name, Members: members}, nil

	case *types.Class:
		if err := checkTypeArgCount(ref.Tok, decl.Name, decl.TypeParams, ref.TypeArgs); err != nil {
			return nil, err
		}
		args := fillTypeArgs(decl.TypeParams, ref.TypeArgs)
		return &types.ClassInstance{Tok: ref.Tok, Class: decl, TypeArgs: args}, nil
	}

	return resolved, nil
}

// checkTypeArgCount validates an argument list against a parameter
// list. Parameters with defaults are optional.
func checkTypeArgCount(tok token.Token, name string, params []*types.TypeParam, args []types.Type) error {
	if len(params) == 0 {
		if len(args) > 0 {
			return diagnostics.NewError(
				diagnostics.ErrNotGeneric,
				tok,
				fmt.Sprintf("Type '%s' is not generic.", name),
			)
		}
		return nil
	}

	required := 0
	for _, p := range params {
		if p.Default == nil {
			required++
		}
	}
	if len(args) >= required && len(args) <= len(params) {
		return nil
	}
	if required == len(params) {
		return diagnostics.NewError(
			diagnostics.ErrTypeArgCount,
			tok,
			fmt.Sprintf("Generic type '%s' requires %d type argument(s).", name, required),
		)
	}
	return diagnostics.NewError(
		diagnostics.ErrTypeArgCount,
		tok,
		fmt.Sprintf("Generic type '%s' requires between %d and %d type arguments.", name, required, len(params)),
	)
}

// fillTypeArgs pads a checked argument list with parameter defaults.
// Defaults may mention earlier parameters, so each one is substituted
// against the arguments filled so far.
func fillTypeArgs(params []*types.TypeParam, args []types.Type) []types.Type {
	if len(args) >= len(params) {
		return args
	}
	filled := make([]types.Type, 0, len(params))
	filled = append(filled, args...)
	for i := len(args); i < len(params); i++ {
		d := params[i].Default
		if d == nil {
			d = types.NewAny(params[i].Tok)
		}
		filled = append(filled, types.Instantiate(d, params[:i], filled))
	}
	return filled
}
