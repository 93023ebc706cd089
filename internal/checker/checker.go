// Package checker implements the semantic analysis of sigil programs:
// declaration registration, function signature validation, return
// type inference and reconciliation, and the diagnostics that fall
// out of those.
package checker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sigil-lang/sigil/internal/ast"
	"github.com/sigil-lang/sigil/internal/config"
	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/symbols"
	"github.com/sigil-lang/sigil/internal/types"
)

// Scope is one lexical scope. declaringFn is the single-slot marker
// for the function name currently being declared in this scope; it is
// set for the duration of one declaration's validation and must be
// empty on entry.
type Scope struct {
	parent      *Scope
	table       *symbols.SymbolTable
	declaringFn *ast.Identifier
}

// Checker validates one source file. Diagnostics are collected in a
// sink deduplicated by position and code; fatal errors travel as
// ordinary error returns and are converted to diagnostics at the
// statement boundary.
type Checker struct {
	fileName  string
	cfg       *config.Config
	sessionID string

	scope *Scope

	errorSet map[string]*diagnostics.DiagnosticError

	// TypeMap records the computed type of every expression visited.
	TypeMap map[ast.Node]types.Type

	mutations *Mutations

	// isBuiltin is set while checking the compiler's own prelude
	// sources; parameter types are not eagerly expanded there.
	isBuiltin bool

	// expanding guards alias expansion against cycles.
	expanding map[string]bool
}

func New(fileName string, cfg *config.Config) *Checker {
	if cfg == nil {
		cfg = config.Default()
	}
	c := &Checker{
		fileName:  fileName,
		cfg:       cfg,
		sessionID: uuid.NewString(),
		errorSet:  make(map[string]*diagnostics.DiagnosticError),
		TypeMap:   make(map[ast.Node]types.Type),
		mutations: NewMutations(),
		expanding: make(map[string]bool),
	}

	prelude := symbols.NewEnclosedSymbolTable(nil, symbols.ScopePrelude)
	c.scope = &Scope{table: prelude}
	c.loadPrelude()

	global := symbols.NewEnclosedSymbolTable(prelude, symbols.ScopeGlobal)
	c.scope = &Scope{parent: c.scope, table: global}

	return c
}

// SessionID identifies this checker run; emitted declarations are
// cached under it.
func (c *Checker) SessionID() string { return c.sessionID }

// Check validates a whole program.
func (c *Checker) Check(program *ast.Program) {
	if program == nil {
		return
	}
	if c.fileName == "" {
		c.fileName = program.File
	}
	c.checkStatements(program.Statements)
}

// Mutations exposes the per-function inference results recorded
// during checking.
func (c *Checker) Mutations() *Mutations { return c.mutations }

func (c *Checker) enterScope(scopeType symbols.ScopeType) {
	table := symbols.NewEnclosedSymbolTable(c.scope.table, scopeType)
	c.scope = &Scope{parent: c.scope, table: table}
}

func (c *Checker) leaveScope() {
	if c.scope.parent == nil {
		panic("checker: leaveScope on root scope")
	}
	c.scope = c.scope.parent
}

// addError adds an error to the sink, deduplicating by position and
// code.
func (c *Checker) addError(err *diagnostics.DiagnosticError) {
	if err == nil {
		return
	}
	if err.File == "" && c.fileName != "" {
		err.File = c.fileName
	}
	key := fmt.Sprintf("%d:%d:%s", err.Token.Line, err.Token.Column, err.Code)
	if _, exists := c.errorSet[key]; !exists {
		c.errorSet[key] = err
	}
}

// addErrors adds multiple errors to the sink.
func (c *Checker) addErrors(errs []*diagnostics.DiagnosticError) {
	for _, err := range errs {
		c.addError(err)
	}
}

// reportError converts a fatal checking error into a sink diagnostic.
// DiagnosticErrors pass through; anything else is wrapped as an
// internal error at the given node.
func (c *Checker) reportError(err error, node ast.TokenProvider) {
	if err == nil {
		return
	}
	if diag, ok := err.(*diagnostics.DiagnosticError); ok {
		c.addError(diag)
		return
	}
	tok := node.GetToken()
	c.addError(diagnostics.NewError(diagnostics.ErrInternal, tok, err.Error()))
}

// getErrors returns all unique diagnostics sorted by position, with
// suppressed codes filtered out.
func (c *Checker) getErrors() []*diagnostics.DiagnosticError {
	result := make([]*diagnostics.DiagnosticError, 0, len(c.errorSet))
	for _, err := range c.errorSet {
		if c.cfg.Check.Suppressed(string(err.Code)) {
			continue
		}
		result = append(result, err)
	}
	diagnostics.Sort(result)
	return result
}

// Errors returns the collected diagnostics.
func (c *Checker) Errors() []*diagnostics.DiagnosticError {
	return c.getErrors()
}
