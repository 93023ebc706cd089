package parser

import (
	"github.com/sigil-lang/sigil/internal/ast"
	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/token"
)

func (p *Parser) nextID() ast.NodeID {
	id := p.nextNodeID
	p.nextNodeID++
	return id
}

// parseFunctionLiteral parses the function-like core starting at the
// 'function' token: optional *, optional name, optional type
// parameters, the parameter list, optional return annotation and an
// optional body. Bodyless functions come from ambient declarations.
func (p *Parser) parseFunctionLiteral(isAsync bool) *ast.FunctionLiteral {
	fn := &ast.FunctionLiteral{Token: p.curToken, IsAsync: isAsync, NodeID: p.nextID()}

	if p.peekTokenIs(token.ASTERISK) {
		p.nextToken()
		fn.IsGenerator = true
	}

	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		fn.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	}

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		fn.TypeParams = p.parseTypeParamDecls()
		if fn.TypeParams == nil {
			return nil
		}
	}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params, ok := p.parseParameterList()
	if !ok {
		return nil
	}
	fn.Params = params

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		fn.ReturnType = p.parseTypeAnnotation()
		if fn.ReturnType == nil {
			return nil
		}
	}

	if p.peekTokenIs(token.LBRACE) {
		p.nextToken()
		fn.Body = p.parseBlockStatement()
	} else if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return fn
}

func (p *Parser) parseFunctionDeclaration(isAsync bool) ast.Statement {
	tok := p.curToken
	fn := p.parseFunctionLiteral(isAsync)
	if fn == nil {
		return nil
	}
	if fn.Name == nil {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrSyntax,
			tok,
			"function declarations require a name",
		))
		return nil
	}
	return &ast.FunctionDeclaration{Token: tok, Name: fn.Name, Fn: fn}
}

// parseDeclareStatement handles `declare function ...;`,
// `declare let ...;` and `declare class ...` ambient declarations.
// Function bodies and variable initializers stay nil.
func (p *Parser) parseDeclareStatement() ast.Statement {
	declareTok := p.curToken
	isAsync := false
	if p.peekTokenIs(token.ASYNC) {
		p.nextToken()
		isAsync = true
	}

	switch {
	case p.peekTokenIs(token.FUNCTION):
		p.nextToken()
		stmt := p.parseFunctionDeclaration(isAsync)
		if stmt == nil {
			return nil
		}
		decl := stmt.(*ast.FunctionDeclaration)
		if decl.Fn.Body != nil {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrSyntax,
				declareTok,
				"an ambient declaration cannot have a body",
			))
		}
		return decl

	case p.peekTokenIs(token.LET), p.peekTokenIs(token.CONST):
		p.nextToken()
		stmt := p.parseLetStatement()
		if stmt == nil {
			return nil
		}
		let := stmt.(*ast.LetStatement)
		if let.Value != nil {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrSyntax,
				declareTok,
				"an ambient declaration cannot have an initializer",
			))
		}
		return let

	case p.peekTokenIs(token.CLASS):
		p.nextToken()
		return p.parseClassDeclaration()

	default:
		p.expectPeek(token.FUNCTION)
		return nil
	}
}

// parseTypeParamDecls parses `<T, U extends V, W = X>`. Called with
// curToken on '<'; returns with curToken on '>'.
func (p *Parser) parseTypeParamDecls() []*ast.TypeParamDecl {
	var params []*ast.TypeParamDecl

	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		tp := &ast.TypeParamDecl{
			Token: p.curToken,
			Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
		}
		if p.peekTokenIs(token.EXTENDS) {
			p.nextToken()
			p.nextToken()
			tp.Constraint = p.parseTypeAnnotation()
			if tp.Constraint == nil {
				return nil
			}
		}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			tp.Default = p.parseTypeAnnotation()
			if tp.Default == nil {
				return nil
			}
		}
		params = append(params, tp)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.GT) {
		return nil
	}
	return params
}

// parseParameterList parses `(p, p, ...)`. Called with curToken on
// '('; returns with curToken on ')'.
func (p *Parser) parseParameterList() ([]*ast.Parameter, bool) {
	params := []*ast.Parameter{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}

	for {
		p.nextToken()
		param := p.parseParameter()
		if param == nil {
			return nil, false
		}
		params = append(params, param)

		if p.peekTokenIs(token.COMMA) {
			if _, isRest := param.Pat.(*ast.RestPattern); isRest {
				p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
					diagnostics.ErrRestParamLast,
					param.Token,
					"A rest parameter must be last in a parameter list.",
				))
			}
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseParameter() *ast.Parameter {
	param := &ast.Parameter{Token: p.curToken}

	param.Pat = p.parsePattern()
	if param.Pat == nil {
		return nil
	}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		param.TypeAnnotation = p.parseTypeAnnotation()
		if param.TypeAnnotation == nil {
			return nil
		}
	}

	return param
}

func (p *Parser) parsePattern() ast.Pattern {
	switch p.curToken.Type {
	case token.ELLIPSIS:
		rest := &ast.RestPattern{Token: p.curToken}
		p.nextToken()
		rest.Argument = p.parsePattern()
		if rest.Argument == nil {
			return nil
		}
		return rest
	case token.IDENT:
		pat := &ast.IdentifierPattern{
			Token: p.curToken,
			Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
		}
		if p.peekTokenIs(token.QUESTION) {
			p.nextToken()
			pat.Optional = true
		}
		return pat
	case token.LBRACKET:
		return p.parseArrayPattern()
	case token.LBRACE:
		return p.parseObjectPattern()
	default:
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrSyntax,
			p.curToken,
			"expected a binding pattern",
		))
		return nil
	}
}

func (p *Parser) parseArrayPattern() ast.Pattern {
	pat := &ast.ArrayPattern{Token: p.curToken}

	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return pat
	}

	for {
		p.nextToken()
		elem := p.parsePattern()
		if elem == nil {
			return nil
		}
		pat.Elements = append(pat.Elements, elem)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return pat
}

func (p *Parser) parseObjectPattern() ast.Pattern {
	pat := &ast.ObjectPattern{Token: p.curToken}

	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return pat
	}

	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		prop := &ast.ObjectPatternProp{
			Token: p.curToken,
			Key:   &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
		}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			prop.Value = p.parsePattern()
			if prop.Value == nil {
				return nil
			}
		}
		pat.Properties = append(pat.Properties, prop)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return pat
}

func (p *Parser) parseTypeAliasDeclaration() ast.Statement {
	stmt := &ast.TypeAliasDeclaration{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		stmt.TypeParams = p.parseTypeParamDecls()
		if stmt.TypeParams == nil {
			return nil
		}
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Target = p.parseTypeAnnotation()
	if stmt.Target == nil {
		return nil
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseInterfaceDeclaration() ast.Statement {
	stmt := &ast.InterfaceDeclaration{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		stmt.TypeParams = p.parseTypeParamDecls()
		if stmt.TypeParams == nil {
			return nil
		}
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Members = p.parseMemberSignatures()
	return stmt
}

func (p *Parser) parseClassDeclaration() ast.Statement {
	stmt := &ast.ClassDeclaration{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		stmt.TypeParams = p.parseTypeParamDecls()
		if stmt.TypeParams == nil {
			return nil
		}
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Fields = p.parseMemberSignatures()
	return stmt
}

// parseMemberSignatures parses `name?: Type;` members until '}'.
// Called with curToken on '{'; returns with curToken on '}'.
func (p *Parser) parseMemberSignatures() []*ast.PropertySignature {
	members := []*ast.PropertySignature{}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		if !p.expectPeek(token.IDENT) {
			return members
		}
		member := &ast.PropertySignature{
			Token: p.curToken,
			Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
		}
		if p.peekTokenIs(token.QUESTION) {
			p.nextToken()
			member.Optional = true
		}
		if !p.expectPeek(token.COLON) {
			return members
		}
		p.nextToken()
		member.TypeAnnotation = p.parseTypeAnnotation()
		if member.TypeAnnotation == nil {
			return members
		}
		members = append(members, member)

		if p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}

	p.nextToken() // consume '}'
	return members
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.curToken, IsConst: p.curTokenIs(token.CONST)}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		stmt.TypeAnnotation = p.parseTypeAnnotation()
		if stmt.TypeAnnotation == nil {
			return nil
		}
	}

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.RBRACE) {
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		return stmt
	}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Consequence = p.parseBlockStatement()

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			stmt.Alternative = p.parseIfStatement()
		} else {
			if !p.expectPeek(token.LBRACE) {
				return nil
			}
			stmt.Alternative = p.parseBlockStatement()
		}
	}

	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	block.Statements = []ast.Statement{}

	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	return block
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}
