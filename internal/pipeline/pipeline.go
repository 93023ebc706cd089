// Package pipeline wires the compiler stages (lex, parse, check,
// emit) into a single run over one source file. Stages communicate
// through the PipelineContext; diagnostics accumulate across stages
// so a later stage still sees and reports over a partially broken
// input.
package pipeline

// Processor is one compiler stage.
type Processor interface {
	// Name identifies the stage in verbose output.
	Name() string

	// Process transforms the context. Implementations append to
	// ctx.Errors instead of aborting; the pipeline continues so all
	// stages contribute diagnostics.
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
	trace      func(stage string)
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// OnStage installs a callback invoked with each stage name before it
// runs. Used for verbose CLI output.
func (p *Pipeline) OnStage(fn func(stage string)) {
	p.trace = fn
}

// Run executes the pipeline. Errors do not stop the run; each stage
// decides for itself what it can do with a partial context.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		if p.trace != nil {
			p.trace(processor.Name())
		}
		ctx = processor.Process(ctx)
	}
	return ctx
}
