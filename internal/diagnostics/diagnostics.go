package diagnostics

import (
	"fmt"
	"sort"

	"github.com/sigil-lang/sigil/internal/token"
)

// ErrorCode identifies a diagnostic family. Codes follow the numbering
// conventions of the language the checker targets; SG-prefixed codes
// are internal to this compiler.
type ErrorCode string

const (
	// Syntax
	ErrSyntax        ErrorCode = "TS1005" // unexpected or missing token
	ErrRestParamLast ErrorCode = "TS1014" // rest parameter must be last
	ErrReturnOutside ErrorCode = "TS1108" // return outside a function body

	// ErrRequiredAfterOptional is reported once per offending
	// parameter when a required parameter follows an optional one.
	ErrRequiredAfterOptional ErrorCode = "TS1016"

	// Names and generics
	ErrDuplicateIdent ErrorCode = "TS2300" // duplicate identifier
	ErrUnknownName    ErrorCode = "TS2304" // cannot find name
	ErrTypeArgCount   ErrorCode = "TS2314" // generic type requires type argument(s)
	ErrNotGeneric     ErrorCode = "TS2315" // type is not generic

	// Assignability and members
	ErrNotAssignable    ErrorCode = "TS2322"
	ErrPropertyMissing  ErrorCode = "TS2339"
	ErrArgNotAssignable ErrorCode = "TS2345"
	ErrNotCallable      ErrorCode = "TS2349"
	ErrNotConstructable ErrorCode = "TS2351"

	// ErrReturnRequired fires when a function declares a return type
	// that is neither any, void nor never and its body has no return
	// statement.
	ErrReturnRequired ErrorCode = "TS2355"

	ErrRestNotArray  ErrorCode = "TS2370" // rest parameter must be of an array type
	ErrDuplicateDecl ErrorCode = "TS2451" // cannot redeclare block-scoped variable
	ErrCircularAlias ErrorCode = "TS2456" // type alias circularly references itself
	ErrArgCount      ErrorCode = "TS2554" // wrong number of call arguments
	ErrTypeAsValue   ErrorCode = "TS2693" // type-only name used as a value
	ErrValueAsType   ErrorCode = "TS2749" // value name used as a type

	// Implicit any family
	ErrImplicitAny        ErrorCode = "TS7005" // inferred or defaulted to any
	ErrImplicitAnyParam   ErrorCode = "TS7006" // parameter implicitly any
	ErrImplicitAnyRest    ErrorCode = "TS7019" // rest parameter implicitly any[]
	ErrImplicitAnyBinding ErrorCode = "TS7031" // binding element implicitly any

	// ErrInternal wraps unexpected plain errors that escaped a
	// checker pass without a code of their own.
	ErrInternal ErrorCode = "SG0000"
)

// DiagnosticError is a positioned diagnostic. It implements error so
// checker passes can return one through a plain error value.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("[%s] Line %d:%d %s", e.Code, e.Token.Line, e.Token.Column, e.Message)
}

// Format renders the diagnostic in `file(line,col): error CODE: msg`
// form for terminal output.
func (e *DiagnosticError) Format() string {
	file := e.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s(%d,%d): error %s: %s", file, e.Token.Line, e.Token.Column, e.Code, e.Message)
}

// Sort orders diagnostics by line, then column, then code. The order
// is what users see and what tests assert on.
func Sort(errs []*DiagnosticError) {
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].Token.Line != errs[j].Token.Line {
			return errs[i].Token.Line < errs[j].Token.Line
		}
		if errs[i].Token.Column != errs[j].Token.Column {
			return errs[i].Token.Column < errs[j].Token.Column
		}
		return errs[i].Code < errs[j].Code
	})
}
