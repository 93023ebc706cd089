package ast

import (
	"strings"

	"github.com/sigil-lang/sigil/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its
// primary token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// TypeAnn is a Node that represents a type annotation.
type TypeAnn interface {
	Node
	typeAnnNode()
	GetToken() token.Token
}

// Pattern is a Node that represents a binding pattern.
type Pattern interface {
	Node
	patternNode()
	GetToken() token.Token
}

// NodeID identifies a function-like node across the whole checked
// program. The parser hands them out monotonically; zero means the
// node never went through the parser.
type NodeID int

// Program is the root node of every AST our parser produces.
type Program struct {
	File       string // Source file path
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out strings.Builder
	for _, s := range p.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

// FunctionLiteral is the function-like core shared by declarations and
// expressions: type parameters, parameters, an optional return type
// annotation and an optional body. Body is nil for ambient (declare)
// forms.
type FunctionLiteral struct {
	Token       token.Token // The 'function' token
	NodeID      NodeID
	Name        *Identifier // nil for anonymous function expressions
	TypeParams  []*TypeParamDecl
	Params      []*Parameter
	ReturnType  TypeAnn // nil when omitted
	Body        *BlockStatement
	IsAsync     bool
	IsGenerator bool
}

func (fl *FunctionLiteral) expressionNode()      {}
func (fl *FunctionLiteral) TokenLiteral() string { return fl.Token.Lexeme }
func (fl *FunctionLiteral) GetToken() token.Token {
	if fl == nil {
		return token.Token{}
	}
	return fl.Token
}

func (fl *FunctionLiteral) String() string {
	var out strings.Builder
	if fl.IsAsync {
		out.WriteString("async ")
	}
	out.WriteString("function")
	if fl.IsGenerator {
		out.WriteString("*")
	}
	if fl.Name != nil {
		out.WriteString(" " + fl.Name.Value)
	}
	if len(fl.TypeParams) > 0 {
		names := make([]string, len(fl.TypeParams))
		for i, tp := range fl.TypeParams {
			names[i] = tp.String()
		}
		out.WriteString("<" + strings.Join(names, ", ") + ">")
	}
	params := make([]string, len(fl.Params))
	for i, p := range fl.Params {
		params[i] = p.String()
	}
	out.WriteString("(" + strings.Join(params, ", ") + ")")
	if fl.ReturnType != nil {
		out.WriteString(": " + fl.ReturnType.String())
	}
	if fl.Body != nil {
		out.WriteString(" " + fl.Body.String())
	}
	return out.String()
}

// FunctionDeclaration is a named function statement. The declared name
// is bound in the enclosing scope with var-like override semantics.
type FunctionDeclaration struct {
	Token token.Token // The 'function' token (or 'async')
	Name  *Identifier
	Fn    *FunctionLiteral
}

func (fd *FunctionDeclaration) statementNode()       {}
func (fd *FunctionDeclaration) TokenLiteral() string { return fd.Token.Lexeme }
func (fd *FunctionDeclaration) GetToken() token.Token {
	if fd == nil {
		return token.Token{}
	}
	return fd.Token
}
func (fd *FunctionDeclaration) String() string { return fd.Fn.String() }

// TypeParamDecl is one declared type parameter, e.g. T, T extends U,
// or T = Default.
type TypeParamDecl struct {
	Token      token.Token // The parameter name token
	Name       *Identifier
	Constraint TypeAnn // nil when unconstrained
	Default    TypeAnn // nil when no default
}

func (tp *TypeParamDecl) TokenLiteral() string { return tp.Token.Lexeme }
func (tp *TypeParamDecl) GetToken() token.Token {
	if tp == nil {
		return token.Token{}
	}
	return tp.Token
}

func (tp *TypeParamDecl) String() string {
	var out strings.Builder
	out.WriteString(tp.Name.Value)
	if tp.Constraint != nil {
		out.WriteString(" extends " + tp.Constraint.String())
	}
	if tp.Default != nil {
		out.WriteString(" = " + tp.Default.String())
	}
	return out.String()
}

// Parameter is one formal parameter: a binding pattern plus an
// optional type annotation.
type Parameter struct {
	Token          token.Token // First token of the pattern
	Pat            Pattern
	TypeAnnotation TypeAnn // nil when omitted
}

func (p *Parameter) TokenLiteral() string { return p.Token.Lexeme }
func (p *Parameter) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

func (p *Parameter) String() string {
	var out strings.Builder
	out.WriteString(p.Pat.String())
	if p.TypeAnnotation != nil {
		out.WriteString(": " + p.TypeAnnotation.String())
	}
	return out.String()
}

// TypeAliasDeclaration is `type Name<T, ...> = Target;`.
type TypeAliasDeclaration struct {
	Token      token.Token // The 'type' token
	Name       *Identifier
	TypeParams []*TypeParamDecl
	Target     TypeAnn
}

func (ta *TypeAliasDeclaration) statementNode()       {}
func (ta *TypeAliasDeclaration) TokenLiteral() string { return ta.Token.Lexeme }
func (ta *TypeAliasDeclaration) GetToken() token.Token {
	if ta == nil {
		return token.Token{}
	}
	return ta.Token
}

func (ta *TypeAliasDeclaration) String() string {
	var out strings.Builder
	out.WriteString("type " + ta.Name.Value)
	if len(ta.TypeParams) > 0 {
		params := make([]string, len(ta.TypeParams))
		for i, tp := range ta.TypeParams {
			params[i] = tp.String()
		}
		out.WriteString("<" + strings.Join(params, ", ") + ">")
	}
	out.WriteString(" = " + ta.Target.String() + ";")
	return out.String()
}

// PropertySignature is one member of an interface body.
type PropertySignature struct {
	Token          token.Token // The member name token
	Name           *Identifier
	Optional       bool
	TypeAnnotation TypeAnn
}

func (ps *PropertySignature) TokenLiteral() string { return ps.Token.Lexeme }
func (ps *PropertySignature) GetToken() token.Token {
	if ps == nil {
		return token.Token{}
	}
	return ps.Token
}

func (ps *PropertySignature) String() string {
	var out strings.Builder
	out.WriteString(ps.Name.Value)
	if ps.Optional {
		out.WriteString("?")
	}
	out.WriteString(": " + ps.TypeAnnotation.String() + ";")
	return out.String()
}

// InterfaceDeclaration is `interface Name<T, ...> { members }`.
type InterfaceDeclaration struct {
	Token      token.Token // The 'interface' token
	Name       *Identifier
	TypeParams []*TypeParamDecl
	Members    []*PropertySignature
}

func (id *InterfaceDeclaration) statementNode()       {}
func (id *InterfaceDeclaration) TokenLiteral() string { return id.Token.Lexeme }
func (id *InterfaceDeclaration) GetToken() token.Token {
	if id == nil {
		return token.Token{}
	}
	return id.Token
}

func (id *InterfaceDeclaration) String() string {
	var out strings.Builder
	out.WriteString("interface " + id.Name.Value)
	if len(id.TypeParams) > 0 {
		params := make([]string, len(id.TypeParams))
		for i, tp := range id.TypeParams {
			params[i] = tp.String()
		}
		out.WriteString("<" + strings.Join(params, ", ") + ">")
	}
	out.WriteString(" { ")
	for _, m := range id.Members {
		out.WriteString(m.String() + " ")
	}
	out.WriteString("}")
	return out.String()
}

// ClassDeclaration is `class Name<T, ...> { fields }`. Only field
// signatures are modeled; method bodies are out of scope for the
// checker.
type ClassDeclaration struct {
	Token      token.Token // The 'class' token
	Name       *Identifier
	TypeParams []*TypeParamDecl
	Fields     []*PropertySignature
}

func (cd *ClassDeclaration) statementNode()       {}
func (cd *ClassDeclaration) TokenLiteral() string { return cd.Token.Lexeme }
func (cd *ClassDeclaration) GetToken() token.Token {
	if cd == nil {
		return token.Token{}
	}
	return cd.Token
}

func (cd *ClassDeclaration) String() string {
	var out strings.Builder
	out.WriteString("class " + cd.Name.Value)
	if len(cd.TypeParams) > 0 {
		params := make([]string, len(cd.TypeParams))
		for i, tp := range cd.TypeParams {
			params[i] = tp.String()
		}
		out.WriteString("<" + strings.Join(params, ", ") + ">")
	}
	out.WriteString(" { ")
	for _, f := range cd.Fields {
		out.WriteString(f.String() + " ")
	}
	out.WriteString("}")
	return out.String()
}

// LetStatement is `let name = value;` or `const name: T = value;`.
// IsConst distinguishes the two.
type LetStatement struct {
	Token          token.Token // The 'let' or 'const' token
	Name           *Identifier
	TypeAnnotation TypeAnn // nil when omitted
	Value          Expression
	IsConst        bool
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Lexeme }
func (ls *LetStatement) GetToken() token.Token {
	if ls == nil {
		return token.Token{}
	}
	return ls.Token
}

func (ls *LetStatement) String() string {
	var out strings.Builder
	out.WriteString(ls.Token.Lexeme + " " + ls.Name.Value)
	if ls.TypeAnnotation != nil {
		out.WriteString(": " + ls.TypeAnnotation.String())
	}
	if ls.Value != nil {
		out.WriteString(" = " + ls.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// ReturnStatement is `return;` or `return expr;`.
type ReturnStatement struct {
	Token token.Token // The 'return' token
	Value Expression  // nil for a bare return
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token {
	if rs == nil {
		return token.Token{}
	}
	return rs.Token
}

func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + rs.Value.String() + ";"
}

// BlockStatement is `{ statements }`.
type BlockStatement struct {
	Token      token.Token // The '{' token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}

func (bs *BlockStatement) String() string {
	var out strings.Builder
	out.WriteString("{ ")
	for _, s := range bs.Statements {
		out.WriteString(s.String() + " ")
	}
	out.WriteString("}")
	return out.String()
}

// IfStatement is `if (cond) cons` with an optional `else alt`. Alt is
// either a BlockStatement or another IfStatement.
type IfStatement struct {
	Token       token.Token // The 'if' token
	Condition   Expression
	Consequence *BlockStatement
	Alternative Statement // nil when no else
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

func (is *IfStatement) String() string {
	var out strings.Builder
	out.WriteString("if (" + is.Condition.String() + ") " + is.Consequence.String())
	if is.Alternative != nil {
		out.WriteString(" else " + is.Alternative.String())
	}
	return out.String()
}

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	Token     token.Token // The 'while' token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token {
	if ws == nil {
		return token.Token{}
	}
	return ws.Token
}

func (ws *WhileStatement) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	Token      token.Token // First token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

func (es *ExpressionStatement) String() string {
	if es.Expression == nil {
		return ""
	}
	return es.Expression.String() + ";"
}
