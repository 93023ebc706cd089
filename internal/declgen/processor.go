package declgen

import (
	"github.com/sigil-lang/sigil/internal/pipeline"
)

// DeclProcessor is the emit stage: it renders declaration text from
// the checker's outputs. It only needs a parsed program, so it still
// runs when earlier stages reported diagnostics and callers can
// inspect partial output.
type DeclProcessor struct{}

func (dp *DeclProcessor) Name() string { return "emit" }

func (dp *DeclProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	ctx.Declarations = New(ctx.TypeMap, ctx.FunctionReturns).Generate(ctx.AstRoot)
	return ctx
}
