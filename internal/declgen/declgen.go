// Package declgen renders .d.sg declaration text for a checked
// program: the public shape of a source file with bodies stripped and
// inferred return types made explicit.
package declgen

import (
	"bytes"
	"strings"

	"github.com/sigil-lang/sigil/internal/ast"
	"github.com/sigil-lang/sigil/internal/types"
)

// Generator renders declarations from the checker's outputs. Return
// types of unannotated functions come from the recorded inference, so
// emitted signatures are self-contained.
type Generator struct {
	buf     bytes.Buffer
	indent  int
	typeMap map[ast.Node]types.Type
	returns map[ast.NodeID]types.Type
}

func New(typeMap map[ast.Node]types.Type, returns map[ast.NodeID]types.Type) *Generator {
	return &Generator{typeMap: typeMap, returns: returns}
}

// Generate renders the declaration text for a whole program.
func (g *Generator) Generate(program *ast.Program) string {
	if program == nil {
		return ""
	}
	for _, stmt := range program.Statements {
		g.emitStatement(stmt)
	}
	return g.buf.String()
}

func (g *Generator) emitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.FunctionDeclaration:
		g.emitFunction(s)
	case *ast.LetStatement:
		g.emitVariable(s)
	case *ast.TypeAliasDeclaration:
		g.writeIndent()
		g.buf.WriteString(s.String())
		g.buf.WriteString("\n")
	case *ast.InterfaceDeclaration:
		g.emitInterface(s)
	case *ast.ClassDeclaration:
		g.emitClass(s)
	}
}

// emitFunction renders `declare function name<T>(params): Ret;`. The
// checked function type supplies parameters and type parameters.
func (g *Generator) emitFunction(d *ast.FunctionDeclaration) {
	if d.Name == nil {
		return
	}
	fnTy, ok := g.typeMap[d.Fn].(*types.Function)
	if !ok {
		return
	}
	g.writeIndent()
	g.buf.WriteString("declare function ")
	g.buf.WriteString(d.Name.Value)
	if len(fnTy.TypeParams) > 0 {
		params := make([]string, len(fnTy.TypeParams))
		for i, tp := range fnTy.TypeParams {
			params[i] = tp.String()
		}
		g.buf.WriteString("<" + strings.Join(params, ", ") + ">")
	}
	params := make([]string, len(fnTy.Params))
	for i, p := range fnTy.Params {
		params[i] = p.String()
	}
	g.buf.WriteString("(" + strings.Join(params, ", ") + "): ")
	g.buf.WriteString(g.returnTypeOf(d.Fn, fnTy).String())
	g.buf.WriteString(";\n")
}

// returnTypeOf prefers the recorded inference for unannotated
// functions and falls back to the checked type.
func (g *Generator) returnTypeOf(fn *ast.FunctionLiteral, fnTy *types.Function) types.Type {
	if fn.ReturnType == nil {
		if t, ok := g.returns[fn.NodeID]; ok {
			return t
		}
	}
	return fnTy.RetTy
}

func (g *Generator) emitVariable(s *ast.LetStatement) {
	kw := "let"
	if s.IsConst {
		kw = "const"
	}
	g.writeIndent()
	g.buf.WriteString("declare " + kw + " " + s.Name.Value)
	switch {
	case s.TypeAnnotation != nil:
		g.buf.WriteString(": " + s.TypeAnnotation.String())
	case s.Value != nil:
		if t, ok := g.typeMap[s.Value]; ok {
			if !s.IsConst {
				t = types.Widen(t)
			}
			g.buf.WriteString(": " + t.String())
		}
	}
	g.buf.WriteString(";\n")
}

func (g *Generator) emitInterface(s *ast.InterfaceDeclaration) {
	g.writeIndent()
	g.buf.WriteString("interface " + s.Name.Value)
	g.writeTypeParamDecls(s.TypeParams)
	g.buf.WriteString(" {\n")
	g.indent++
	for _, m := range s.Members {
		g.writeIndent()
		g.buf.WriteString(m.String() + "\n")
	}
	g.indent--
	g.writeIndent()
	g.buf.WriteString("}\n")
}

func (g *Generator) emitClass(s *ast.ClassDeclaration) {
	g.writeIndent()
	g.buf.WriteString("declare class " + s.Name.Value)
	g.writeTypeParamDecls(s.TypeParams)
	g.buf.WriteString(" {\n")
	g.indent++
	for _, f := range s.Fields {
		g.writeIndent()
		g.buf.WriteString(f.String() + "\n")
	}
	g.indent--
	g.writeIndent()
	g.buf.WriteString("}\n")
}

func (g *Generator) writeTypeParamDecls(decls []*ast.TypeParamDecl) {
	if len(decls) == 0 {
		return
	}
	params := make([]string, len(decls))
	for i, tp := range decls {
		params[i] = tp.String()
	}
	g.buf.WriteString("<" + strings.Join(params, ", ") + ">")
}

func (g *Generator) writeIndent() {
	for i := 0; i < g.indent; i++ {
		g.buf.WriteString("  ")
	}
}
