package token

// TokenType identifies the lexical class of a token.
type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"
	NUMBER TokenType = "NUMBER"
	STRING TokenType = "STRING"

	// Operators
	ASSIGN        TokenType = "="
	PLUS          TokenType = "+"
	MINUS         TokenType = "-"
	BANG          TokenType = "!"
	ASTERISK      TokenType = "*"
	SLASH         TokenType = "/"
	PERCENT       TokenType = "%"
	LT            TokenType = "<"
	GT            TokenType = ">"
	LE            TokenType = "<="
	GE            TokenType = ">="
	EQ            TokenType = "=="
	NOT_EQ        TokenType = "!="
	EQ_STRICT     TokenType = "==="
	NOT_EQ_STRICT TokenType = "!=="
	AND           TokenType = "&&"
	OR            TokenType = "||"
	ARROW         TokenType = "=>"
	QUESTION      TokenType = "?"
	PIPE          TokenType = "|"
	AMPERSAND     TokenType = "&"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	DOT       TokenType = "."
	ELLIPSIS  TokenType = "..."

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	FUNCTION  TokenType = "FUNCTION"
	RETURN    TokenType = "RETURN"
	IF        TokenType = "IF"
	ELSE      TokenType = "ELSE"
	WHILE     TokenType = "WHILE"
	LET       TokenType = "LET"
	CONST     TokenType = "CONST"
	TYPE      TokenType = "TYPE"
	INTERFACE TokenType = "INTERFACE"
	CLASS     TokenType = "CLASS"
	EXTENDS   TokenType = "EXTENDS"
	NEW       TokenType = "NEW"
	ASYNC     TokenType = "ASYNC"
	TRUE      TokenType = "TRUE"
	FALSE     TokenType = "FALSE"
	NULL      TokenType = "NULL"
	UNDEFINED TokenType = "UNDEFINED"
	DECLARE   TokenType = "DECLARE"
	TYPEOF    TokenType = "TYPEOF"
)

// Token is a single lexical unit with its source position.
// Literal carries the decoded value for NUMBER (float64) and
// STRING (string) tokens, and the identifier text for IDENT.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

var keywords = map[string]TokenType{
	"function":  FUNCTION,
	"return":    RETURN,
	"if":        IF,
	"else":      ELSE,
	"while":     WHILE,
	"let":       LET,
	"const":     CONST,
	"type":      TYPE,
	"interface": INTERFACE,
	"class":     CLASS,
	"extends":   EXTENDS,
	"new":       NEW,
	"async":     ASYNC,
	"true":      TRUE,
	"false":     FALSE,
	"null":      NULL,
	"undefined": UNDEFINED,
	"declare":   DECLARE,
	"typeof":    TYPEOF,
}

// LookupIdent maps an identifier to its keyword token type, or IDENT
// when the word is not reserved.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
