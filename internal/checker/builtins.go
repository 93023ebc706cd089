package checker

import (
	_ "embed"
	"fmt"

	"github.com/sigil-lang/sigil/internal/lexer"
	"github.com/sigil-lang/sigil/internal/parser"
	"github.com/sigil-lang/sigil/internal/pipeline"
	"github.com/sigil-lang/sigil/internal/token"
	"github.com/sigil-lang/sigil/internal/types"
)

//go:embed prelude.sg
var preludeSource string

// loadPrelude checks the compiler's own ambient declarations into the
// prelude scope. The prelude ships with the checker, so failing to
// parse or check it is a programming error, not a user diagnostic.
func (c *Checker) loadPrelude() {
	prev := c.isBuiltin
	c.isBuiltin = true
	defer func() { c.isBuiltin = prev }()

	ctx := pipeline.NewContext("<prelude>", preludeSource, c.cfg)
	lx := lexer.New(preludeSource)
	var toks []token.Token
	for {
		tok := lx.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	ctx.TokenStream = toks

	p := parser.New(toks, ctx)
	program := p.ParseProgram()
	if len(ctx.Errors) > 0 {
		panic(fmt.Sprintf("checker: prelude does not parse: %s", ctx.Errors[0].Error()))
	}

	c.checkStatements(program.Statements)
	if errs := c.getErrors(); len(errs) > 0 {
		panic(fmt.Sprintf("checker: prelude does not check: %s", errs[0].Error()))
	}

	// Values with no source-level declaration form.
	c.scope.table.DefineBuiltinVariable("NaN", types.NewNumber(token.Token{}))
	c.scope.table.DefineBuiltinVariable("Infinity", types.NewNumber(token.Token{}))
}
