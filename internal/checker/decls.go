package checker

import (
	"fmt"

	"github.com/sigil-lang/sigil/internal/ast"
	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/symbols"
	"github.com/sigil-lang/sigil/internal/types"
)

// registerTypeDecl binds one type declaration into the current scope.
// Hoisting calls this ahead of statement checking so types resolve
// regardless of declaration order.
func (c *Checker) registerTypeDecl(stmt ast.Statement) {
	switch d := stmt.(type) {
	case *ast.TypeAliasDeclaration:
		c.registerTypeAlias(d)
	case *ast.InterfaceDeclaration:
		c.registerInterface(d)
	case *ast.ClassDeclaration:
		c.registerClass(d)
	}
}

func (c *Checker) registerTypeAlias(d *ast.TypeAliasDeclaration) {
	outer := c.scope.table
	if !c.reserveTypeName(outer, d.Name) {
		return
	}
	c.enterScope(symbols.ScopeBlock)
	defer c.leaveScope()

	params, err := c.typeParamsFromDecls(d.TypeParams)
	if err != nil {
		c.reportError(err, d)
		return
	}
	target, err := c.typeFromAnnotation(d.Target)
	if err != nil {
		c.reportError(err, d)
		return
	}
	outer.DefineType(d.Name.Value, &types.Alias{
		Tok:        d.GetToken(),
		Name:       d.Name.Value,
		TypeParams: params,
		Target:     target,
	}, d.Name.GetToken())
}

func (c *Checker) registerInterface(d *ast.InterfaceDeclaration) {
	outer := c.scope.table
	if !c.reserveTypeName(outer, d.Name) {
		return
	}
	c.enterScope(symbols.ScopeBlock)
	defer c.leaveScope()

	params, err := c.typeParamsFromDecls(d.TypeParams)
	if err != nil {
		c.reportError(err, d)
		return
	}
	members, err := c.membersFromSignatures(d.Members)
	if err != nil {
		c.reportError(err, d)
		return
	}
	outer.DefineType(d.Name.Value, &types.Interface{
		Tok:        d.GetToken(),
		Name:       d.Name.Value,
		TypeParams: params,
		Members:    members,
	}, d.Name.GetToken())
}

func (c *Checker) registerClass(d *ast.ClassDeclaration) {
	outer := c.scope.table
	if !c.reserveTypeName(outer, d.Name) {
		return
	}
	c.enterScope(symbols.ScopeBlock)
	defer c.leaveScope()

	params, err := c.typeParamsFromDecls(d.TypeParams)
	if err != nil {
		c.reportError(err, d)
		return
	}
	fields, err := c.membersFromSignatures(d.Fields)
	if err != nil {
		c.reportError(err, d)
		return
	}
	outer.DefineType(d.Name.Value, &types.Class{
		Tok:        d.GetToken(),
		Name:       d.Name.Value,
		TypeParams: params,
		Fields:     fields,
	}, d.Name.GetToken())
}

// reserveTypeName reports a clash with anything already declared in
// the same scope. The first declaration wins.
func (c *Checker) reserveTypeName(table *symbols.SymbolTable, name *ast.Identifier) bool {
	if table.IsDefinedLocally(name.Value) {
		c.addError(diagnostics.NewError(
			diagnostics.ErrDuplicateIdent,
			name.GetToken(),
			fmt.Sprintf("Duplicate identifier '%s'.", name.Value),
		))
		return false
	}
	return true
}

// typeParamsFromDecls converts declared type parameters and binds
// each one into the current scope. Constraints and defaults stay
// lazy references; a default is substituted against the parameters
// declared before it.
func (c *Checker) typeParamsFromDecls(decls []*ast.TypeParamDecl) ([]*types.TypeParam, error) {
	if len(decls) == 0 {
		return nil, nil
	}
	params := make([]*types.TypeParam, 0, len(decls))
	for _, d := range decls {
		if c.scope.table.IsDefinedLocally(d.Name.Value) {
			return nil, diagnostics.NewError(
				diagnostics.ErrDuplicateIdent,
				d.Name.GetToken(),
				fmt.Sprintf("Duplicate identifier '%s'.", d.Name.Value),
			)
		}
		tp := &types.TypeParam{Tok: d.GetToken(), Name: d.Name.Value}
		if d.Constraint != nil {
			t, err := c.typeFromAnnotation(d.Constraint)
			if err != nil {
				return nil, err
			}
			tp.Constraint = t
		}
		if d.Default != nil {
			t, err := c.typeFromAnnotation(d.Default)
			if err != nil {
				return nil, err
			}
			tp.Default = t
		}
		c.scope.table.DefineTypeParam(d.Name.Value, tp, d.Name.GetToken())
		params = append(params, tp)
	}
	return params, nil
}

// membersFromSignatures converts property signatures, rejecting
// duplicate names.
func (c *Checker) membersFromSignatures(sigs []*ast.PropertySignature) ([]types.Member, error) {
	members := make([]types.Member, 0, len(sigs))
	seen := make(map[string]bool, len(sigs))
	for _, sig := range sigs {
		if seen[sig.Name.Value] {
			return nil, diagnostics.NewError(
				diagnostics.ErrDuplicateIdent,
				sig.Name.GetToken(),
				fmt.Sprintf("Duplicate identifier '%s'.", sig.Name.Value),
			)
		}
		seen[sig.Name.Value] = true

		var ty types.Type
		if sig.TypeAnnotation != nil {
			t, err := c.typeFromAnnotation(sig.TypeAnnotation)
			if err != nil {
				return nil, err
			}
			ty = t
		} else {
			ty = types.NewAny(sig.GetToken())
		}
		members = append(members, types.Member{
			Tok:      sig.GetToken(),
			Name:     sig.Name.Value,
			Optional: sig.Optional,
			Ty:       ty,
		})
	}
	return members, nil
}
