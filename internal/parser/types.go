package parser

import (
	"github.com/sigil-lang/sigil/internal/ast"
	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/token"
)

// parseTypeAnnotation parses a full type annotation starting at the
// current token: unions of postfix (array-suffixed) primary types.
func (p *Parser) parseTypeAnnotation() ast.TypeAnn {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrSyntax,
			p.curToken,
			"type too complex: recursion depth limit exceeded",
		))
		return nil
	}

	first := p.parsePostfixType()
	if first == nil {
		return nil
	}

	if !p.peekTokenIs(token.PIPE) {
		return first
	}

	union := &ast.UnionType{Token: first.GetToken(), Types: []ast.TypeAnn{first}}
	for p.peekTokenIs(token.PIPE) {
		p.nextToken()
		p.nextToken()
		member := p.parsePostfixType()
		if member == nil {
			return nil
		}
		union.Types = append(union.Types, member)
	}
	return union
}

// parsePostfixType parses a primary type followed by any number of
// `[]` array suffixes.
func (p *Parser) parsePostfixType() ast.TypeAnn {
	t := p.parsePrimaryType()
	if t == nil {
		return nil
	}

	for p.peekTokenIs(token.LBRACKET) && p.peekAt(2).Type == token.RBRACKET {
		p.nextToken()
		arrTok := p.curToken
		p.nextToken()
		t = &ast.ArrayType{Token: arrTok, Element: t}
	}
	return t
}

func (p *Parser) parsePrimaryType() ast.TypeAnn {
	switch p.curToken.Type {
	case token.IDENT:
		return p.parseNamedType()
	case token.NULL:
		return &ast.NamedType{Token: p.curToken, Name: "null"}
	case token.UNDEFINED:
		return &ast.NamedType{Token: p.curToken, Name: "undefined"}
	case token.LBRACKET:
		return p.parseTupleType()
	case token.LPAREN:
		return p.parseParenOrFunctionType()
	case token.NUMBER:
		value, _ := p.curToken.Literal.(float64)
		return &ast.LiteralType{Token: p.curToken, Value: &ast.NumberLiteral{Token: p.curToken, Value: value}}
	case token.STRING:
		value, _ := p.curToken.Literal.(string)
		return &ast.LiteralType{Token: p.curToken, Value: &ast.StringLiteral{Token: p.curToken, Value: value}}
	case token.TRUE, token.FALSE:
		return &ast.LiteralType{Token: p.curToken, Value: &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}}
	default:
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrSyntax,
			p.curToken,
			"expected a type",
		))
		return nil
	}
}

func (p *Parser) parseNamedType() ast.TypeAnn {
	t := &ast.NamedType{Token: p.curToken, Name: p.curToken.Lexeme}

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		t.TypeArgs = []ast.TypeAnn{}
		for {
			p.nextToken()
			arg := p.parseTypeAnnotation()
			if arg == nil {
				return nil
			}
			t.TypeArgs = append(t.TypeArgs, arg)

			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		if !p.expectPeek(token.GT) {
			return nil
		}
	}

	return t
}

func (p *Parser) parseTupleType() ast.TypeAnn {
	t := &ast.TupleType{Token: p.curToken}

	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return t
	}

	for {
		p.nextToken()
		elem := p.parseTypeAnnotation()
		if elem == nil {
			return nil
		}
		t.Elements = append(t.Elements, elem)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return t
}

// parseParenOrFunctionType disambiguates `(A | B)` grouping from
// `(a: A) => R` function types by looking ahead from the '('.
func (p *Parser) parseParenOrFunctionType() ast.TypeAnn {
	if p.looksLikeFunctionType() {
		return p.parseFunctionType()
	}

	p.nextToken()
	inner := p.parseTypeAnnotation()
	if inner == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return inner
}

func (p *Parser) looksLikeFunctionType() bool {
	if p.peekTokenIs(token.RPAREN) || p.peekTokenIs(token.ELLIPSIS) {
		return true
	}
	if p.peekTokenIs(token.LBRACKET) || p.peekTokenIs(token.LBRACE) {
		// Destructuring parameter
		return true
	}
	if !p.peekTokenIs(token.IDENT) {
		return false
	}
	switch p.peekAt(2).Type {
	case token.COLON, token.QUESTION, token.COMMA:
		return true
	case token.RPAREN:
		// `(x)` grouped vs `(x) => R` single bare param
		return p.peekAt(3).Type == token.ARROW
	}
	return false
}

func (p *Parser) parseFunctionType() ast.TypeAnn {
	t := &ast.FunctionType{Token: p.curToken}

	params, ok := p.parseParameterList()
	if !ok {
		return nil
	}
	t.Params = params

	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	t.ReturnType = p.parseTypeAnnotation()
	if t.ReturnType == nil {
		return nil
	}
	return t
}

// peekAt returns the token n positions ahead of curToken: peekAt(1)
// is peekToken.
func (p *Parser) peekAt(n int) token.Token {
	if n <= 1 {
		return p.peekToken
	}
	idx := p.pos + (n - 2)
	if idx < len(p.tokens) {
		return p.tokens[idx]
	}
	return token.Token{Type: token.EOF}
}
