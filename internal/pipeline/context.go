package pipeline

import (
	"github.com/sigil-lang/sigil/internal/ast"
	"github.com/sigil-lang/sigil/internal/config"
	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/token"
	"github.com/sigil-lang/sigil/internal/types"
)

// PipelineContext carries one source file through the stages. Each
// stage fills in its part and later stages read it.
type PipelineContext struct {
	FilePath string
	Source   string
	Config   *config.Config

	// TokenStream is produced by the lexer stage.
	TokenStream []token.Token

	// AstRoot is produced by the parser stage.
	AstRoot *ast.Program

	// TypeMap is produced by the checker stage: the computed type of
	// every expression node the checker visited.
	TypeMap map[ast.Node]types.Type

	// FunctionReturns is produced by the checker stage: inferred
	// return types for functions without an annotation, keyed by the
	// parser-assigned node id. Declaration emission reads it.
	FunctionReturns map[ast.NodeID]types.Type

	// Declarations is produced by the emit stage: the rendered .d.sg
	// text for this file.
	Declarations string

	// SessionID identifies the checker run that produced TypeMap and
	// FunctionReturns. The declaration cache stores entries under it.
	SessionID string

	// Errors accumulates diagnostics from every stage.
	Errors []*diagnostics.DiagnosticError
}

// NewContext builds a context for one source file.
func NewContext(filePath, source string, cfg *config.Config) *PipelineContext {
	if cfg == nil {
		cfg = config.Default()
	}
	return &PipelineContext{FilePath: filePath, Source: source, Config: cfg}
}

// HasErrors reports whether any stage produced diagnostics.
func (ctx *PipelineContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}

// SortedErrors returns the diagnostics ordered by source position,
// with the file path stamped on each.
func (ctx *PipelineContext) SortedErrors() []*diagnostics.DiagnosticError {
	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}
	out := make([]*diagnostics.DiagnosticError, len(ctx.Errors))
	copy(out, ctx.Errors)
	diagnostics.Sort(out)
	return out
}
