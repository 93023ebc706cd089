package checker

import (
	"fmt"

	"github.com/sigil-lang/sigil/internal/ast"
	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/symbols"
	"github.com/sigil-lang/sigil/internal/types"
)

// typeOfExpr computes the type of an expression and records it in the
// type map. Expression-level findings are never fatal: on failure the
// diagnostic goes to the sink and the expression types as any.
func (c *Checker) typeOfExpr(expr ast.Expression) types.Type {
	t := c.computeExprType(expr)
	if t == nil {
		t = types.NewAny(expr.GetToken())
	}
	c.TypeMap[expr] = t
	return t
}

func (c *Checker) computeExprType(expr ast.Expression) types.Type {
	switch e := expr.(type) {
	case *ast.Identifier:
		return c.typeOfIdentifier(e)
	case *ast.NumberLiteral:
		return &types.Lit{Tok: e.Token, Value: e.Value}
	case *ast.StringLiteral:
		return &types.Lit{Tok: e.Token, Value: e.Value}
	case *ast.BooleanLiteral:
		return &types.Lit{Tok: e.Token, Value: e.Value}
	case *ast.NullLiteral:
		return types.NewNull(e.Token)
	case *ast.UndefinedLiteral:
		return types.NewUndefined(e.Token)
	case *ast.ArrayLiteral:
		elems := make([]types.TupleElem, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = types.TupleElem{Tok: el.GetToken(), Ty: c.typeOfExpr(el)}
		}
		return &types.Tuple{Tok: e.Token, Elems: elems}
	case *ast.PrefixExpression:
		return c.typeOfPrefix(e)
	case *ast.InfixExpression:
		return c.typeOfInfix(e)
	case *ast.ConditionalExpression:
		return c.typeOfConditional(e)
	case *ast.CallExpression:
		return c.typeOfCall(e)
	case *ast.MemberExpression:
		return c.typeOfMember(e)
	case *ast.NewExpression:
		return c.typeOfNew(e)
	case *ast.FunctionLiteral:
		return c.checkFunctionExpression(e)
	}
	return types.NewAny(expr.GetToken())
}

func (c *Checker) typeOfIdentifier(e *ast.Identifier) types.Type {
	sym, ok := c.scope.table.Resolve(e.Value)
	if !ok {
		c.addError(diagnostics.NewError(
			diagnostics.ErrUnknownName,
			e.Token,
			fmt.Sprintf("Cannot find name '%s'.", e.Value),
		))
		return types.NewAny(e.Token)
	}
	switch sym.Kind {
	case symbols.VariableSymbol:
		if sym.Type == nil {
			return types.NewAny(e.Token)
		}
		return sym.Type
	case symbols.TypeSymbol:
		// A class name doubles as the constructor value.
		if cls, ok := sym.Type.(*types.Class); ok {
			return cls
		}
	}
	c.addError(diagnostics.NewError(
		diagnostics.ErrTypeAsValue,
		e.Token,
		fmt.Sprintf("'%s' only refers to a type, but is being used as a value here.", e.Value),
	))
	return types.NewAny(e.Token)
}

func (c *Checker) typeOfPrefix(e *ast.PrefixExpression) types.Type {
	rightTy := c.typeOfExpr(e.Right)
	switch e.Operator {
	case "!":
		return types.NewBoolean(e.Token)
	case "-":
		ok, err := c.isAssignable(types.NewNumber(e.Token), rightTy)
		if err != nil {
			c.reportError(err, e)
		} else if !ok {
			c.addError(diagnostics.NewError(
				diagnostics.ErrNotAssignable,
				e.Right.GetToken(),
				fmt.Sprintf("Type '%s' is not assignable to type 'number'.", rightTy.String()),
			))
		}
		return types.NewNumber(e.Token)
	}
	return types.NewAny(e.Token)
}

// typeOfConditional types `cond ? cons : alt` as the union of its two
// arms. The condition may be any type.
func (c *Checker) typeOfConditional(e *ast.ConditionalExpression) types.Type {
	c.typeOfExpr(e.Condition)
	consTy := c.typeOfExpr(e.Consequent)
	altTy := c.typeOfExpr(e.Alternate)
	return types.NewUnion(e.Token, consTy, altTy)
}

func (c *Checker) typeOfInfix(e *ast.InfixExpression) types.Type {
	leftTy := c.typeOfExpr(e.Left)
	rightTy := c.typeOfExpr(e.Right)

	switch e.Operator {
	case "+":
		if isStringy(leftTy) || isStringy(rightTy) {
			return types.NewString(e.Token)
		}
		return types.NewNumber(e.Token)
	case "-", "*", "/", "%":
		return types.NewNumber(e.Token)
	case "<", ">", "<=", ">=", "==", "!=", "===", "!==":
		return types.NewBoolean(e.Token)
	case "&&", "||":
		return types.NewUnion(e.Token, leftTy, rightTy)
	}
	return types.NewAny(e.Token)
}

func isStringy(t types.Type) bool {
	if types.IsKeyword(t, types.KindString) {
		return true
	}
	if l, ok := t.(*types.Lit); ok {
		_, isStr := l.Value.(string)
		return isStr
	}
	return false
}

func (c *Checker) typeOfCall(e *ast.CallExpression) types.Type {
	calleeTy := c.typeOfExpr(e.Function)
	argTys := make([]types.Type, len(e.Arguments))
	for i, arg := range e.Arguments {
		argTys[i] = c.typeOfExpr(arg)
	}

	if types.IsAny(calleeTy) {
		return types.NewAny(e.Token)
	}
	resolved, err := c.expand(calleeTy)
	if err != nil {
		c.reportError(err, e)
		return types.NewAny(e.Token)
	}
	fn, ok := resolved.(*types.Function)
	if !ok {
		c.addError(diagnostics.NewError(
			diagnostics.ErrNotCallable,
			e.Function.GetToken(),
			fmt.Sprintf("This expression is not callable. Type '%s' has no call signatures.", calleeTy.String()),
		))
		return types.NewAny(e.Token)
	}

	params := fn.Params
	retTy := fn.RetTy
	if len(fn.TypeParams) > 0 {
		typeArgs := c.inferTypeArgs(fn, argTys)
		params = make([]types.FnParam, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = p
			params[i].Ty = types.Instantiate(p.Ty, fn.TypeParams, typeArgs)
		}
		retTy = types.Instantiate(fn.RetTy, fn.TypeParams, typeArgs)
	}

	c.checkCallArity(e, params)
	for i, arg := range e.Arguments {
		paramTy, ok := paramTypeAt(params, i)
		if !ok {
			break
		}
		fits, err := c.isAssignable(paramTy, argTys[i])
		if err != nil {
			c.reportError(err, arg)
			continue
		}
		if !fits {
			c.addError(diagnostics.NewError(
				diagnostics.ErrArgNotAssignable,
				arg.GetToken(),
				fmt.Sprintf("Argument of type '%s' is not assignable to parameter of type '%s'.",
					argTys[i].String(), paramTy.String()),
			))
		}
	}
	return retTy
}

// checkCallArity validates the argument count against the callee
// signature. Optional parameters stretch the accepted range, a rest
// parameter removes the upper bound.
func (c *Checker) checkCallArity(e *ast.CallExpression, params []types.FnParam) {
	required := 0
	hasRest := false
	for _, p := range params {
		if p.Rest {
			hasRest = true
			continue
		}
		if !p.Optional {
			required++
		}
	}
	got := len(e.Arguments)
	max := len(params)

	switch {
	case got < required && hasRest:
		c.addError(diagnostics.NewError(diagnostics.ErrArgCount, e.Token,
			fmt.Sprintf("Expected at least %d arguments, but got %d.", required, got)))
	case got < required || (!hasRest && got > max):
		if required == max {
			c.addError(diagnostics.NewError(diagnostics.ErrArgCount, e.Token,
				fmt.Sprintf("Expected %d arguments, but got %d.", required, got)))
		} else {
			c.addError(diagnostics.NewError(diagnostics.ErrArgCount, e.Token,
				fmt.Sprintf("Expected %d-%d arguments, but got %d.", required, max, got)))
		}
	}
}

// paramTypeAt is the parameter type an argument at position i checks
// against. Arguments past a rest parameter check against its element
// type.
func paramTypeAt(params []types.FnParam, i int) (types.Type, bool) {
	if len(params) == 0 {
		return nil, false
	}
	last := params[len(params)-1]
	if i >= len(params)-1 && last.Rest {
		if arr, ok := last.Ty.(*types.Array); ok {
			return arr.Elem, true
		}
		return nil, false
	}
	if i >= len(params) {
		return nil, false
	}
	return params[i].Ty, true
}

// inferTypeArgs binds a generic signature's type parameters from the
// call arguments. Literal arguments widen on binding; a binding that
// misses its constraint falls back to the constraint so the argument
// check reports against it; anything left unbound falls back to its
// default, then any.
func (c *Checker) inferTypeArgs(fn *types.Function, argTys []types.Type) []types.Type {
	bound := make(map[string]types.Type)
	for i, p := range fn.Params {
		if i >= len(argTys) {
			break
		}
		bindTypeParamUses(p.Ty, argTys[i], bound)
	}
	args := make([]types.Type, len(fn.TypeParams))
	for i, tp := range fn.TypeParams {
		switch {
		case bound[tp.Name] != nil:
			arg := types.Widen(bound[tp.Name])
			if tp.Constraint != nil {
				if ok, err := c.isAssignable(tp.Constraint, arg); err == nil && !ok {
					arg = tp.Constraint
				}
			}
			args[i] = arg
		case tp.Default != nil:
			args[i] = tp.Default
		default:
			args[i] = types.NewAny(tp.Tok)
		}
	}
	return args
}

// bindTypeParamUses matches a parameter type against an argument type
// structurally and records the first binding for each parameter name.
func bindTypeParamUses(paramTy, argTy types.Type, bound map[string]types.Type) {
	switch p := paramTy.(type) {
	case *types.Param:
		if _, seen := bound[p.Param.Name]; !seen {
			bound[p.Param.Name] = argTy
		}
	case *types.Ref:
		if p.TypeArgs == nil {
			if _, seen := bound[p.Name]; !seen {
				bound[p.Name] = argTy
			}
			return
		}
		if a, ok := argTy.(*types.Ref); ok && a.Name == p.Name && len(a.TypeArgs) == len(p.TypeArgs) {
			for i := range p.TypeArgs {
				bindTypeParamUses(p.TypeArgs[i], a.TypeArgs[i], bound)
			}
		}
	case *types.Array:
		switch a := argTy.(type) {
		case *types.Array:
			bindTypeParamUses(p.Elem, a.Elem, bound)
		case *types.Tuple:
			for _, e := range a.Elems {
				bindTypeParamUses(p.Elem, e.Ty, bound)
			}
		}
	case *types.Tuple:
		if a, ok := argTy.(*types.Tuple); ok {
			n := len(p.Elems)
			if len(a.Elems) < n {
				n = len(a.Elems)
			}
			for i := 0; i < n; i++ {
				bindTypeParamUses(p.Elems[i].Ty, a.Elems[i].Ty, bound)
			}
		}
	case *types.Function:
		if a, ok := argTy.(*types.Function); ok {
			n := len(p.Params)
			if len(a.Params) < n {
				n = len(a.Params)
			}
			for i := 0; i < n; i++ {
				bindTypeParamUses(p.Params[i].Ty, a.Params[i].Ty, bound)
			}
			bindTypeParamUses(p.RetTy, a.RetTy, bound)
		}
	}
}

func (c *Checker) typeOfMember(e *ast.MemberExpression) types.Type {
	objTy := c.typeOfExpr(e.Object)
	if types.IsAny(objTy) {
		return types.NewAny(e.Token)
	}
	resolved, err := c.expand(objTy)
	if err != nil {
		c.reportError(err, e)
		return types.NewAny(e.Token)
	}
	if t, ok := c.lookupMember(resolved, e.Property.Value); ok {
		return t
	}
	c.addError(diagnostics.NewError(
		diagnostics.ErrPropertyMissing,
		e.Property.Token,
		fmt.Sprintf("Property '%s' does not exist on type '%s'.", e.Property.Value, objTy.String()),
	))
	return types.NewAny(e.Token)
}

// lookupMember finds a named member on a resolved type. Sequences and
// strings expose length; unions require the member on every arm.
func (c *Checker) lookupMember(t types.Type, name string) (types.Type, bool) {
	switch t := t.(type) {
	case *types.Interface, *types.ClassInstance:
		if m, ok := memberOf(t, name); ok {
			return m.Ty, true
		}
	case *types.Tuple:
		if name == "length" {
			return types.NewNumber(t.Tok), true
		}
	case *types.Array:
		if name == "length" {
			return types.NewNumber(t.Tok), true
		}
	case *types.Keyword:
		if t.Kind == types.KindString && name == "length" {
			return types.NewNumber(t.Tok), true
		}
	case *types.Lit:
		return c.lookupMember(t.Widened(), name)
	case *types.Param:
		if t.Param.Constraint != nil {
			return c.lookupMember(t.Param.Constraint, name)
		}
	case *types.Union:
		var armTys []types.Type
		for _, arm := range t.Types {
			resolved, err := c.expand(arm)
			if err != nil {
				return nil, false
			}
			armTy, ok := c.lookupMember(resolved, name)
			if !ok {
				return nil, false
			}
			armTys = append(armTys, armTy)
		}
		return types.NewUnion(t.Tok, armTys...), true
	}
	return nil, false
}

func (c *Checker) typeOfNew(e *ast.NewExpression) types.Type {
	calleeTy := c.typeOfExpr(e.Callee)
	for _, arg := range e.Arguments {
		c.typeOfExpr(arg)
	}
	if types.IsAny(calleeTy) {
		return types.NewAny(e.Token)
	}
	cls, ok := calleeTy.(*types.Class)
	if !ok {
		c.addError(diagnostics.NewError(
			diagnostics.ErrNotConstructable,
			e.Callee.GetToken(),
			fmt.Sprintf("This expression is not constructable. Type '%s' has no construct signatures.", calleeTy.String()),
		))
		return types.NewAny(e.Token)
	}
	var typeArgs []types.Type
	if len(cls.TypeParams) > 0 {
		typeArgs = make([]types.Type, len(cls.TypeParams))
		for i, tp := range cls.TypeParams {
			if tp.Default != nil {
				typeArgs[i] = tp.Default
			} else {
				typeArgs[i] = types.NewAny(tp.Tok)
			}
		}
	}
	return &types.ClassInstance{Tok: e.Token, Class: cls, TypeArgs: typeArgs}
}
