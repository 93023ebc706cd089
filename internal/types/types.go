package types

import (
	"strconv"

	"github.com/sigil-lang/sigil/internal/token"
)

// Type is the interface implemented by every type in the checker.
// Types carry the token they were created from so diagnostics can
// point at a source location. Trees are mutable: whichever structure
// currently holds a type may rewrite it in place, but no shared
// mutable aliasing across unrelated structures is assumed.
type Type interface {
	String() string
	GetToken() token.Token
	typeNode()
}

// KeywordKind enumerates the built-in keyword types.
type KeywordKind int

const (
	KindAny KeywordKind = iota
	KindUnknown
	KindVoid
	KindNever
	KindUndefined
	KindNull
	KindNumber
	KindString
	KindBoolean
	KindObject
	KindBigInt
	KindSymbol
)

var keywordNames = map[KeywordKind]string{
	KindAny:       "any",
	KindUnknown:   "unknown",
	KindVoid:      "void",
	KindNever:     "never",
	KindUndefined: "undefined",
	KindNull:      "null",
	KindNumber:    "number",
	KindString:    "string",
	KindBoolean:   "boolean",
	KindObject:    "object",
	KindBigInt:    "bigint",
	KindSymbol:    "symbol",
}

// KeywordByName maps a reserved type name to its kind. The second
// result is false for names that are not keyword types.
func KeywordByName(name string) (KeywordKind, bool) {
	for kind, n := range keywordNames {
		if n == name {
			return kind, true
		}
	}
	return 0, false
}

// Keyword is a built-in keyword type such as any, void or number.
type Keyword struct {
	Tok  token.Token
	Kind KeywordKind
}

func (k *Keyword) typeNode()      {}
func (k *Keyword) String() string { return keywordNames[k.Kind] }
func (k *Keyword) GetToken() token.Token {
	if k == nil {
		return token.Token{}
	}
	return k.Tok
}

func NewAny(tok token.Token) *Keyword       { return &Keyword{Tok: tok, Kind: KindAny} }
func NewUnknown(tok token.Token) *Keyword   { return &Keyword{Tok: tok, Kind: KindUnknown} }
func NewVoid(tok token.Token) *Keyword      { return &Keyword{Tok: tok, Kind: KindVoid} }
func NewNever(tok token.Token) *Keyword     { return &Keyword{Tok: tok, Kind: KindNever} }
func NewUndefined(tok token.Token) *Keyword { return &Keyword{Tok: tok, Kind: KindUndefined} }
func NewNull(tok token.Token) *Keyword      { return &Keyword{Tok: tok, Kind: KindNull} }
func NewNumber(tok token.Token) *Keyword    { return &Keyword{Tok: tok, Kind: KindNumber} }
func NewString(tok token.Token) *Keyword    { return &Keyword{Tok: tok, Kind: KindString} }
func NewBoolean(tok token.Token) *Keyword   { return &Keyword{Tok: tok, Kind: KindBoolean} }

// IsKeyword reports whether t is the keyword type of the given kind.
func IsKeyword(t Type, kind KeywordKind) bool {
	k, ok := t.(*Keyword)
	return ok && k.Kind == kind
}

func IsAny(t Type) bool       { return IsKeyword(t, KindAny) }
func IsVoid(t Type) bool      { return IsKeyword(t, KindVoid) }
func IsNever(t Type) bool     { return IsKeyword(t, KindNever) }
func IsUndefined(t Type) bool { return IsKeyword(t, KindUndefined) }
func IsNull(t Type) bool      { return IsKeyword(t, KindNull) }

// IsUndefinedOrNull reports the two bottom-ish value types that tuple
// widening replaces with any.
func IsUndefinedOrNull(t Type) bool { return IsUndefined(t) || IsNull(t) }

// Lit is a literal type: the type of a single value such as 1, "a" or
// true. Value holds float64, string or bool.
type Lit struct {
	Tok   token.Token
	Value interface{}
}

func (l *Lit) typeNode() {}
func (l *Lit) String() string {
	switch v := l.Value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	}
	return "<lit>"
}
func (l *Lit) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Tok
}

// Widened returns the primitive a literal type widens to.
func (l *Lit) Widened() *Keyword {
	switch l.Value.(type) {
	case float64:
		return NewNumber(l.Tok)
	case string:
		return NewString(l.Tok)
	case bool:
		return NewBoolean(l.Tok)
	}
	return NewAny(l.Tok)
}

// Widen maps literal types to their primitive and leaves everything
// else untouched.
func Widen(t Type) Type {
	if l, ok := t.(*Lit); ok {
		return l.Widened()
	}
	return t
}
