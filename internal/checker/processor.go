package checker

import (
	"github.com/sigil-lang/sigil/internal/pipeline"
)

// CheckerProcessor runs semantic analysis as a pipeline stage.
type CheckerProcessor struct{}

func (cp *CheckerProcessor) Name() string { return "check" }

func (cp *CheckerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}

	chk := New(ctx.FilePath, ctx.Config)
	chk.Check(ctx.AstRoot)

	ctx.Errors = append(ctx.Errors, chk.Errors()...)
	ctx.TypeMap = chk.TypeMap
	ctx.FunctionReturns = chk.Mutations().ReturnTypes()
	ctx.SessionID = chk.SessionID()
	return ctx
}
