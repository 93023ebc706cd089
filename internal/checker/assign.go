package checker

import (
	"fmt"

	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/token"
	"github.com/sigil-lang/sigil/internal/types"
)

// assign checks that source is assignable to target and returns a
// diagnostic at tok when it is not. Resolution failures inside either
// side surface as their own errors instead.
func (c *Checker) assign(target, source types.Type, tok token.Token) error {
	st := &assignState{seen: make(map[assignPair]bool)}
	ok, err := c.assignable(st, target, source)
	if err != nil {
		return err
	}
	if !ok {
		return diagnostics.NewError(
			diagnostics.ErrNotAssignable,
			tok,
			fmt.Sprintf("Type '%s' is not assignable to type '%s'.", source.String(), target.String()),
		)
	}
	return nil
}

// isAssignable reports whether source fits target without producing
// the assignment diagnostic. Resolution failures still come back as
// errors.
func (c *Checker) isAssignable(target, source types.Type) (bool, error) {
	st := &assignState{seen: make(map[assignPair]bool)}
	return c.assignable(st, target, source)
}

type assignPair struct {
	target types.Type
	source types.Type
}

// assignState tracks pairs currently being compared. A pair met again
// while still in flight is assumed assignable, which terminates
// recursive types.
type assignState struct {
	seen map[assignPair]bool
}

func (c *Checker) assignable(st *assignState, target, source types.Type) (bool, error) {
	if target == nil || source == nil {
		return true, nil
	}
	pair := assignPair{target: target, source: source}
	if st.seen[pair] {
		return true, nil
	}
	st.seen[pair] = true
	defer delete(st.seen, pair)

	if types.IsAny(target) || types.IsAny(source) {
		return true, nil
	}
	if types.IsKeyword(target, types.KindUnknown) {
		return true, nil
	}
	if types.IsNever(source) {
		return true, nil
	}
	if types.Equal(target, source) {
		return true, nil
	}

	if ref, ok := target.(*types.Ref); ok {
		resolved, err := c.expandFully(ref)
		if err != nil {
			return false, err
		}
		if resolved != types.Type(ref) {
			return c.assignable(st, resolved, source)
		}
		return false, nil
	}
	if ref, ok := source.(*types.Ref); ok {
		resolved, err := c.expandFully(ref)
		if err != nil {
			return false, err
		}
		if resolved != types.Type(ref) {
			return c.assignable(st, target, resolved)
		}
		return false, nil
	}

	// A union source needs every member to fit; a union target needs
	// at least one member to accept.
	if su, ok := source.(*types.Union); ok {
		for _, m := range su.Types {
			ok, err := c.assignable(st, target, m)
			if err != nil || !ok {
				return ok, err
			}
		}
		return true, nil
	}
	if tu, ok := target.(*types.Union); ok {
		for _, m := range tu.Types {
			ok, err := c.assignable(st, m, source)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}

	if lit, ok := source.(*types.Lit); ok {
		if tlit, ok := target.(*types.Lit); ok {
			return lit.Value == tlit.Value, nil
		}
		return c.assignable(st, target, lit.Widened())
	}
	if sp, ok := source.(*types.Param); ok {
		if sp.Param.Constraint != nil {
			return c.assignable(st, target, sp.Param.Constraint)
		}
		return false, nil
	}

	switch t := target.(type) {
	case *types.Keyword:
		switch t.Kind {
		case types.KindVoid:
			return types.IsUndefined(source), nil
		case types.KindObject:
			switch source.(type) {
			case *types.Interface, *types.Class, *types.ClassInstance,
				*types.Tuple, *types.Array, *types.Function:
				return true, nil
			}
		}
		return false, nil

	case *types.Tuple:
		s, ok := source.(*types.Tuple)
		if !ok || len(s.Elems) != len(t.Elems) {
			return false, nil
		}
		for i := range t.Elems {
			ok, err := c.assignable(st, t.Elems[i].Ty, s.Elems[i].Ty)
			if err != nil || !ok {
				return ok, err
			}
		}
		return true, nil

	case *types.Array:
		switch s := source.(type) {
		case *types.Array:
			return c.assignable(st, t.Elem, s.Elem)
		case *types.Tuple:
			for _, e := range s.Elems {
				ok, err := c.assignable(st, t.Elem, e.Ty)
				if err != nil || !ok {
					return ok, err
				}
			}
			return true, nil
		}
		return false, nil

	case *types.Function:
		s, ok := source.(*types.Function)
		if !ok {
			return false, nil
		}
		required := 0
		for _, p := range s.Params {
			if !p.Optional && !p.Rest {
				required++
			}
		}
		if required > len(t.Params) {
			return false, nil
		}
		n := len(s.Params)
		if len(t.Params) < n {
			n = len(t.Params)
		}
		for i := 0; i < n; i++ {
			if s.Params[i].Rest || t.Params[i].Rest {
				break
			}
			// Parameters compare the other way around.
			ok, err := c.assignable(st, s.Params[i].Ty, t.Params[i].Ty)
			if err != nil || !ok {
				return ok, err
			}
		}
		if types.IsVoid(t.RetTy) {
			return true, nil
		}
		return c.assignable(st, t.RetTy, s.RetTy)

	case *types.Interface:
		if types.IsUndefinedOrNull(source) {
			return false, nil
		}
		for _, m := range t.Members {
			sm, found := memberOf(source, m.Name)
			if !found {
				if m.Optional {
					continue
				}
				return false, nil
			}
			ok, err := c.assignable(st, m.Ty, sm.Ty)
			if err != nil || !ok {
				return ok, err
			}
		}
		return true, nil

	case *types.ClassInstance:
		s, ok := source.(*types.ClassInstance)
		if !ok || s.Class != t.Class || len(s.TypeArgs) != len(t.TypeArgs) {
			return false, nil
		}
		for i := range t.TypeArgs {
			ok, err := c.assignable(st, t.TypeArgs[i], s.TypeArgs[i])
			if err != nil || !ok {
				return ok, err
			}
		}
		return true, nil
	}

	return false, nil
}

// memberOf looks up a named member on a structured type. Class
// instances instantiate the field type with their arguments.
func memberOf(t types.Type, name string) (types.Member, bool) {
	switch t := t.(type) {
	case *types.Interface:
		return t.Member(name)
	case *types.ClassInstance:
		f, ok := t.Class.Field(name)
		if !ok {
			return types.Member{}, false
		}
		if len(t.TypeArgs) > 0 {
			f.Ty = types.Instantiate(f.Ty, t.Class.TypeParams, t.TypeArgs)
		}
		return f, true
	}
	return types.Member{}, false
}
