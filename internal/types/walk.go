package types

// MapChildren applies f to the immediate children of t and returns a
// node with the results. The original node is returned untouched when
// no child changed. Declarations (Alias, Interface, Class) are atoms
// here: their bodies belong to the declaration site and are never
// rewritten through a use site.
func MapChildren(t Type, f func(Type) Type) Type {
	switch t := t.(type) {
	case *Ref:
		if t.TypeArgs == nil {
			return t
		}
		args, changed := mapSlice(t.TypeArgs, f)
		if !changed {
			return t
		}
		return &Ref{Tok: t.Tok, Name: t.Name, TypeArgs: args, NoExpand: t.NoExpand}
	case *Tuple:
		changed := false
		elems := make([]TupleElem, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = e
			if mapped := f(e.Ty); mapped != e.Ty {
				elems[i].Ty = mapped
				changed = true
			}
		}
		if !changed {
			return t
		}
		return &Tuple{Tok: t.Tok, Elems: elems}
	case *Array:
		if mapped := f(t.Elem); mapped != t.Elem {
			return &Array{Tok: t.Tok, Elem: mapped}
		}
		return t
	case *Union:
		members, changed := mapSlice(t.Types, f)
		if !changed {
			return t
		}
		return &Union{Tok: t.Tok, Types: members}
	case *Function:
		changed := false
		tparams := make([]*TypeParam, len(t.TypeParams))
		for i, tp := range t.TypeParams {
			tparams[i] = tp
			constraint, deflt := tp.Constraint, tp.Default
			if constraint != nil {
				constraint = f(constraint)
			}
			if deflt != nil {
				deflt = f(deflt)
			}
			if constraint != tp.Constraint || deflt != tp.Default {
				tparams[i] = &TypeParam{Tok: tp.Tok, Name: tp.Name, Constraint: constraint, Default: deflt}
				changed = true
			}
		}
		params := make([]FnParam, len(t.Params))
		for i, p := range t.Params {
			params[i] = p
			if mapped := f(p.Ty); mapped != p.Ty {
				params[i].Ty = mapped
				changed = true
			}
		}
		ret := f(t.RetTy)
		if ret != t.RetTy {
			changed = true
		}
		if !changed {
			return t
		}
		return &Function{Tok: t.Tok, TypeParams: tparams, Params: params, RetTy: ret}
	case *ClassInstance:
		if t.TypeArgs == nil {
			return t
		}
		args, changed := mapSlice(t.TypeArgs, f)
		if !changed {
			return t
		}
		return &ClassInstance{Tok: t.Tok, Class: t.Class, TypeArgs: args}
	}
	return t
}

func mapSlice(ts []Type, f func(Type) Type) ([]Type, bool) {
	changed := false
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = f(t)
		if out[i] != t {
			changed = true
		}
	}
	if !changed {
		return ts, false
	}
	return out, true
}

// Rewrite applies f to every node of t bottom-up and returns the
// rewritten tree. Children are rewritten before their parent so f
// sees already-transformed subtrees.
func Rewrite(t Type, f func(Type) Type) Type {
	t = MapChildren(t, func(child Type) Type { return Rewrite(child, f) })
	return f(t)
}

// Instantiate substitutes the given type parameters with the matching
// arguments throughout t. Occurrences are matched by Param pointer
// identity and, for unresolved references, by bare name.
func Instantiate(t Type, params []*TypeParam, args []Type) Type {
	if len(params) == 0 {
		return t
	}
	byPtr := make(map[*TypeParam]Type, len(params))
	byName := make(map[string]Type, len(params))
	for i, p := range params {
		if i >= len(args) {
			break
		}
		byPtr[p] = args[i]
		byName[p.Name] = args[i]
	}
	return Rewrite(t, func(n Type) Type {
		switch n := n.(type) {
		case *Param:
			if arg, ok := byPtr[n.Param]; ok {
				return arg
			}
			if arg, ok := byName[n.Param.Name]; ok {
				return arg
			}
		case *Ref:
			if n.TypeArgs == nil {
				if arg, ok := byName[n.Name]; ok {
					return arg
				}
			}
		}
		return n
	})
}

// Equal reports structural equality. Expansion flags and labels do not
// participate; declarations compare by identity.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case *Keyword:
		o, ok := b.(*Keyword)
		return ok && a.Kind == o.Kind
	case *Lit:
		o, ok := b.(*Lit)
		return ok && a.Value == o.Value
	case *Ref:
		o, ok := b.(*Ref)
		if !ok || a.Name != o.Name {
			return false
		}
		if (a.TypeArgs == nil) != (o.TypeArgs == nil) || len(a.TypeArgs) != len(o.TypeArgs) {
			return false
		}
		for i := range a.TypeArgs {
			if !Equal(a.TypeArgs[i], o.TypeArgs[i]) {
				return false
			}
		}
		return true
	case *Param:
		o, ok := b.(*Param)
		return ok && a.Param == o.Param
	case *Tuple:
		o, ok := b.(*Tuple)
		if !ok || len(a.Elems) != len(o.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equal(a.Elems[i].Ty, o.Elems[i].Ty) {
				return false
			}
		}
		return true
	case *Array:
		o, ok := b.(*Array)
		return ok && Equal(a.Elem, o.Elem)
	case *Union:
		o, ok := b.(*Union)
		if !ok || len(a.Types) != len(o.Types) {
			return false
		}
		for i := range a.Types {
			if !Equal(a.Types[i], o.Types[i]) {
				return false
			}
		}
		return true
	case *Function:
		o, ok := b.(*Function)
		if !ok || len(a.Params) != len(o.Params) || len(a.TypeParams) != len(o.TypeParams) {
			return false
		}
		for i := range a.Params {
			if a.Params[i].Optional != o.Params[i].Optional || a.Params[i].Rest != o.Params[i].Rest {
				return false
			}
			if !Equal(a.Params[i].Ty, o.Params[i].Ty) {
				return false
			}
		}
		return Equal(a.RetTy, o.RetTy)
	case *Alias:
		return a == b
	case *Interface:
		return a == b
	case *Class:
		return a == b
	case *ClassInstance:
		o, ok := b.(*ClassInstance)
		if !ok || a.Class != o.Class || len(a.TypeArgs) != len(o.TypeArgs) {
			return false
		}
		for i := range a.TypeArgs {
			if !Equal(a.TypeArgs[i], o.TypeArgs[i]) {
				return false
			}
		}
		return true
	}
	return false
}
