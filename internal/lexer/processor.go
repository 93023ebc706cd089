package lexer

import (
	"fmt"

	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/pipeline"
	"github.com/sigil-lang/sigil/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Name() string { return "lex" }

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.Source)

	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			msg := "illegal token"
			if s, ok := tok.Literal.(string); ok && s != tok.Lexeme {
				msg = s
			} else if tok.Lexeme != "" {
				msg = fmt.Sprintf("illegal character %q", tok.Lexeme)
			}
			ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrSyntax, tok, msg))
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	ctx.TokenStream = tokens
	return ctx
}
