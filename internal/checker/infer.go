package checker

import (
	"fmt"

	"github.com/sigil-lang/sigil/internal/ast"
	"github.com/sigil-lang/sigil/internal/config"
	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/symbols"
	"github.com/sigil-lang/sigil/internal/token"
	"github.com/sigil-lang/sigil/internal/types"
)

// checkStatements checks a statement list: declarations hoist first,
// then each statement checks in order.
func (c *Checker) checkStatements(stmts []ast.Statement) {
	c.hoistDeclarations(stmts)
	for _, stmt := range stmts {
		c.checkStatement(stmt)
	}
}

// hoistDeclarations registers type declarations and pre-binds
// function names so declarations resolve regardless of order. A
// pre-bound function name types as any until its declaration is
// checked.
func (c *Checker) hoistDeclarations(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch d := stmt.(type) {
		case *ast.TypeAliasDeclaration, *ast.InterfaceDeclaration, *ast.ClassDeclaration:
			c.registerTypeDecl(stmt)
		case *ast.FunctionDeclaration:
			if d.Name != nil && !c.scope.table.IsDefinedLocally(d.Name.Value) {
				c.scope.table.DefinePending(d.Name.Value, types.NewAny(d.Name.GetToken()), d.Name.GetToken())
			}
		}
	}
}

func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.FunctionDeclaration:
		c.checkFunctionDeclaration(s)
	case *ast.TypeAliasDeclaration, *ast.InterfaceDeclaration, *ast.ClassDeclaration:
		// Registered during hoisting.
	case *ast.LetStatement:
		c.checkLetStatement(s)
	case *ast.ReturnStatement:
		c.addError(diagnostics.NewError(
			diagnostics.ErrReturnOutside,
			s.GetToken(),
			"A 'return' statement can only be used within a function body.",
		))
		if s.Value != nil {
			c.typeOfExpr(s.Value)
		}
	case *ast.BlockStatement:
		c.enterScope(symbols.ScopeBlock)
		c.checkStatements(s.Statements)
		c.leaveScope()
	case *ast.IfStatement:
		c.typeOfExpr(s.Condition)
		c.checkStatement(s.Consequence)
		if s.Alternative != nil {
			c.checkStatement(s.Alternative)
		}
	case *ast.WhileStatement:
		c.typeOfExpr(s.Condition)
		c.checkStatement(s.Body)
	case *ast.ExpressionStatement:
		if s.Expression != nil {
			c.typeOfExpr(s.Expression)
		}
	}
}

func (c *Checker) checkLetStatement(s *ast.LetStatement) {
	var declared types.Type
	if s.TypeAnnotation != nil {
		t, err := c.typeFromAnnotation(s.TypeAnnotation)
		if err == nil && !c.isBuiltin {
			t, err = c.expand(t)
		}
		if err != nil {
			c.reportError(err, s)
			t = types.NewAny(s.GetToken())
		}
		declared = t
	}

	var valueTy types.Type
	if s.Value != nil {
		valueTy = c.typeOfExpr(s.Value)
	}

	ty := declared
	switch {
	case declared != nil && valueTy != nil:
		if err := c.assign(declared, valueTy, s.Value.GetToken()); err != nil {
			c.reportError(err, s.Value)
		}
	case declared == nil && valueTy != nil:
		ty = valueTy
		if !s.IsConst {
			ty = types.Widen(ty)
		}
	case declared == nil && valueTy == nil:
		c.implicitAny(diagnostics.ErrImplicitAny, s.Name.GetToken(),
			fmt.Sprintf("Variable '%s' implicitly has an 'any' type.", s.Name.Value))
		ty = types.NewAny(s.Name.GetToken())
	}

	if c.scope.table.IsDefinedLocally(s.Name.Value) {
		c.addError(diagnostics.NewError(
			diagnostics.ErrDuplicateDecl,
			s.Name.GetToken(),
			fmt.Sprintf("Cannot redeclare block-scoped variable '%s'.", s.Name.Value),
		))
		return
	}
	c.scope.table.DefineVariable(s.Name.Value, ty, s.IsConst, s.Name.GetToken())
}

// returnCollector accumulates the observed return behavior of one
// function body.
type returnCollector struct {
	tys       []types.Type
	sawReturn bool
}

// visitStmtsForReturn checks a function body and merges the types of
// every return statement it can reach. The bool result is false when
// the body never returns at all, and the type result is nil in that
// case.
func (c *Checker) visitStmtsForReturn(tok token.Token, isAsync, isGenerator bool, stmts []ast.Statement) (types.Type, bool, error) {
	col := &returnCollector{}
	c.hoistDeclarations(stmts)
	for _, stmt := range stmts {
		c.collectReturns(stmt, col)
	}
	if !col.sawReturn {
		return nil, false, nil
	}
	merged := types.NewUnion(tok, col.tys...)
	return wrapReturnType(tok, isAsync, isGenerator, merged), true, nil
}

// collectReturns walks one statement, typing return values as it
// finds them. Non-return statements check normally, so nested
// declarations and expressions still produce their diagnostics.
func (c *Checker) collectReturns(stmt ast.Statement, col *returnCollector) {
	switch s := stmt.(type) {
	case *ast.ReturnStatement:
		col.sawReturn = true
		if s.Value == nil {
			col.tys = append(col.tys, types.NewUndefined(s.GetToken()))
			return
		}
		col.tys = append(col.tys, c.typeOfExpr(s.Value))
	case *ast.BlockStatement:
		c.enterScope(symbols.ScopeBlock)
		c.hoistDeclarations(s.Statements)
		for _, inner := range s.Statements {
			c.collectReturns(inner, col)
		}
		c.leaveScope()
	case *ast.IfStatement:
		c.typeOfExpr(s.Condition)
		c.collectReturns(s.Consequence, col)
		if s.Alternative != nil {
			c.collectReturns(s.Alternative, col)
		}
	case *ast.WhileStatement:
		c.typeOfExpr(s.Condition)
		c.collectReturns(s.Body, col)
	default:
		c.checkStatement(stmt)
	}
}

// wrapReturnType folds the merged return type into the container an
// async or generator body produces. An async body that already
// returns a promise is not wrapped twice.
func wrapReturnType(tok token.Token, isAsync, isGenerator bool, t types.Type) types.Type {
	var name string
	switch {
	case isAsync && isGenerator:
		name = config.AsyncGeneratorTypeName
	case isAsync:
		if r, ok := t.(*types.Ref); ok && r.Name == config.PromiseTypeName {
			return t
		}
		name = config.PromiseTypeName
	case isGenerator:
		name = config.GeneratorTypeName
	default:
		return t
	}
	return &types.Ref{Tok: tok, Name: name, TypeArgs: []types.Type{t}}
}
