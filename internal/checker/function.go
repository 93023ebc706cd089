package checker

import (
	"fmt"

	"github.com/sigil-lang/sigil/internal/ast"
	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/symbols"
	"github.com/sigil-lang/sigil/internal/types"
)

// checkFunctionDeclaration validates a named function and binds the
// produced type over the name's hoisted pre-binding. A const or type
// binding under the same name is a conflict.
func (c *Checker) checkFunctionDeclaration(d *ast.FunctionDeclaration) {
	fnTy := c.visitFn(d.Name, d.Fn)
	c.TypeMap[d.Fn] = fnTy
	if d.Name == nil {
		return
	}
	if _, ok := c.scope.table.OverrideVariable(d.Name.Value, fnTy, d.Name.GetToken()); !ok {
		c.addError(diagnostics.NewError(
			diagnostics.ErrDuplicateDecl,
			d.Name.GetToken(),
			fmt.Sprintf("Cannot redeclare block-scoped variable '%s'.", d.Name.Value),
		))
	}
}

// checkFunctionExpression types a function literal in expression
// position. Named function expressions carry their own name through
// the same declaration slot a named declaration uses.
func (c *Checker) checkFunctionExpression(fn *ast.FunctionLiteral) types.Type {
	fnTy := c.visitFn(fn.Name, fn)
	c.TypeMap[fn] = fnTy
	return fnTy
}

// visitFn runs one function through validation and the two
// post-processing passes. It never fails outward: an aborted
// validation is reported and the function types as any.
//
// The declaration marker is a single slot on the enclosing scope. It
// must be empty on entry; nested declarations validate inside child
// scopes and therefore see an empty slot of their own.
func (c *Checker) visitFn(name *ast.Identifier, fn *ast.FunctionLiteral) types.Type {
	if name != nil {
		if c.scope.declaringFn != nil {
			panic(fmt.Sprintf("checker: declaring %q while %q is still being declared",
				name.Value, c.scope.declaringFn.Value))
		}
		scope := c.scope
		scope.declaringFn = name
		defer func() { scope.declaringFn = nil }()
	}

	c.enterScope(symbols.ScopeFunction)
	fnTy, err := c.validateFunction(fn)
	c.leaveScope()
	if err != nil {
		c.reportError(err, fn)
		return types.NewAny(fn.GetToken())
	}

	fnTy.RetTy = substituteOwnParams(fnTy.RetTy, fnTy.TypeParams)
	widenTupleElems(fnTy.RetTy)
	return fnTy
}

// validateFunction builds the canonical type of one function inside
// an already-entered function scope. Advisory findings batch up and
// flush to the sink only when validation completes; a fatal error
// aborts validation and the batch with it.
func (c *Checker) validateFunction(fn *ast.FunctionLiteral) (*types.Function, error) {
	var batch []*diagnostics.DiagnosticError

	// An optional parameter latches: everything after it must be
	// optional or rest.
	seenOptional := false
	for _, p := range fn.Params {
		switch pat := p.Pat.(type) {
		case *ast.IdentifierPattern:
			if pat.Optional {
				seenOptional = true
			} else if seenOptional {
				batch = append(batch, diagnostics.NewError(
					diagnostics.ErrRequiredAfterOptional,
					pat.GetToken(),
					"A required parameter cannot follow an optional parameter.",
				))
			}
		case *ast.RestPattern:
			// Always allowed in tail position.
		default:
			if seenOptional {
				batch = append(batch, diagnostics.NewError(
					diagnostics.ErrRequiredAfterOptional,
					p.GetToken(),
					"A required parameter cannot follow an optional parameter.",
				))
			}
		}
	}

	typeParams, err := c.typeParamsFromDecls(fn.TypeParams)
	if err != nil {
		return nil, err
	}

	mode := patModeDecl
	if fn.Body == nil {
		mode = patModeShape
	}
	params := make([]types.FnParam, 0, len(fn.Params))
	for _, p := range fn.Params {
		fp, err := c.validateParam(p, mode)
		if err != nil {
			return nil, err
		}
		params = append(params, fp)
	}

	declared, err := c.normalizeDeclaredReturn(fn.ReturnType)
	if err != nil {
		return nil, err
	}

	var inferred types.Type
	neverReturns := false
	if fn.Body != nil {
		t, saw, err := c.visitStmtsForReturn(fn.GetToken(), fn.IsAsync, fn.IsGenerator, fn.Body.Statements)
		if err != nil {
			return nil, err
		}
		if !saw {
			neverReturns = true
		} else {
			inferred = t
			if ref, ok := inferred.(*types.Ref); ok {
				qualified, diags := c.qualifyRef(ref)
				batch = append(batch, diags...)
				inferred = qualified
			}
		}
	} else {
		inferred = types.NewAny(fn.GetToken())
	}

	var retTy types.Type
	switch {
	case neverReturns:
		// Declaring a return type on a body that never returns is
		// diagnosed but the effective type stays void.
		if declared != nil && !isAnyVoidNever(declared) {
			batch = append(batch, diagnostics.NewError(
				diagnostics.ErrReturnRequired,
				fn.ReturnType.GetToken(),
				"A function whose declared type is neither 'void' nor 'any' must return a value.",
			))
		}
		retTy = types.NewVoid(fn.GetToken())
	case declared != nil:
		expanded, err := c.expandFully(declared)
		if err != nil {
			return nil, err
		}
		if err := c.assign(expanded, inferred, inferred.GetToken()); err != nil {
			return nil, err
		}
		retTy = declared
	default:
		retTy = inferred
	}

	if fn.ReturnType == nil && fn.NodeID != 0 {
		c.mutations.ForFn(fn.NodeID).SetRetTyIfAbsent(retTy)
	}

	fnTy := &types.Function{
		Tok:        fn.GetToken(),
		TypeParams: typeParams,
		Params:     params,
		RetTy:      retTy,
	}
	c.addErrors(batch)
	return fnTy, nil
}

// normalizeDeclaredReturn validates a written return annotation. An
// unqualified reference is kept from expanding so the reconciliation
// diagnostic can show the written form.
func (c *Checker) normalizeDeclaredReturn(ann ast.TypeAnn) (types.Type, error) {
	if ann == nil {
		return nil, nil
	}
	t, err := c.typeFromAnnotation(ann)
	if err != nil {
		return nil, err
	}
	if err := c.validateTypeRefs(t); err != nil {
		return nil, err
	}
	if ref, ok := t.(*types.Ref); ok && ref.TypeArgs == nil {
		ref.NoExpand = true
	}
	return t, nil
}

// validateTypeRefs resolves every reference in an annotation without
// inlining anything, so unknown names surface at the declaration.
func (c *Checker) validateTypeRefs(t types.Type) error {
	var firstErr error
	var walk func(types.Type)
	walk = func(n types.Type) {
		if firstErr != nil {
			return
		}
		if ref, ok := n.(*types.Ref); ok {
			if _, err := c.resolveEntityName(ref.Tok, ref.Name, ref.TypeArgs); err != nil {
				firstErr = err
				return
			}
		}
		types.MapChildren(n, func(child types.Type) types.Type {
			walk(child)
			return child
		})
	}
	walk(t)
	return firstErr
}

func isAnyVoidNever(t types.Type) bool {
	return types.IsAny(t) || types.IsVoid(t) || types.IsNever(t)
}

// widenTupleElems broadens undefined and null tuple elements to any,
// in place. Literal undefined or null elements are too narrow to be
// useful inferred types.
func widenTupleElems(t types.Type) {
	tup, ok := t.(*types.Tuple)
	if !ok {
		return
	}
	for i := range tup.Elems {
		if types.IsUndefinedOrNull(tup.Elems[i].Ty) {
			tup.Elems[i].Ty = types.NewAny(tup.Elems[i].Ty.GetToken())
		}
	}
}
