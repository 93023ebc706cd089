package lexer_test

import (
	"testing"

	"github.com/sigil-lang/sigil/internal/lexer"
	"github.com/sigil-lang/sigil/internal/token"
)

// lex collects every token up to and including EOF.
func lex(input string) []token.Token {
	l := lexer.New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestNextTokenSequence(t *testing.T) {
	input := `let add = function(x, y) { return x + y; };`

	expected := []struct {
		typ    token.TokenType
		lexeme string
	}{
		{token.LET, "let"},
		{token.IDENT, "add"},
		{token.ASSIGN, "="},
		{token.FUNCTION, "function"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.COMMA, ","},
		{token.IDENT, "y"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RETURN, "return"},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.IDENT, "y"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}

	toks := lex(input)
	if len(toks) != len(expected) {
		t.Fatalf("token count = %d, want %d", len(toks), len(expected))
	}
	for i, want := range expected {
		if toks[i].Type != want.typ {
			t.Errorf("token %d: type = %s, want %s", i, toks[i].Type, want.typ)
		}
		if toks[i].Lexeme != want.lexeme {
			t.Errorf("token %d: lexeme = %q, want %q", i, toks[i].Lexeme, want.lexeme)
		}
	}
}

func TestOperators(t *testing.T) {
	input := "= == === != !== < > <= >= => ! && || & | ? : . ... % * /"

	want := []token.TokenType{
		token.ASSIGN, token.EQ, token.EQ_STRICT, token.NOT_EQ, token.NOT_EQ_STRICT,
		token.LT, token.GT, token.LE, token.GE, token.ARROW,
		token.BANG, token.AND, token.OR, token.AMPERSAND, token.PIPE,
		token.QUESTION, token.COLON, token.DOT, token.ELLIPSIS,
		token.PERCENT, token.ASTERISK, token.SLASH,
		token.EOF,
	}

	toks := lex(input)
	if len(toks) != len(want) {
		t.Fatalf("token count = %d, want %d", len(toks), len(want))
	}
	for i, typ := range want {
		if toks[i].Type != typ {
			t.Errorf("token %d: type = %s, want %s", i, toks[i].Type, typ)
		}
	}
}

func TestNumbers(t *testing.T) {
	testCases := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"42", 42},
		{"1.5", 1.5},
		{"0.25", 0.25},
		{"1e3", 1000},
		{"2.5e2", 250},
		{"1e+2", 100},
		{"1e-2", 0.01},
		{"0x10", 16},
		{"0xFF", 255},
		{"0b101", 5},
		{"0o17", 15},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			toks := lex(tc.input)
			if toks[0].Type != token.NUMBER {
				t.Fatalf("type = %s, want NUMBER", toks[0].Type)
			}
			got, ok := toks[0].Literal.(float64)
			if !ok {
				t.Fatalf("literal is %T, want float64", toks[0].Literal)
			}
			if got != tc.want {
				t.Errorf("value = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTrailingDotIsMemberAccess(t *testing.T) {
	toks := lex("1.foo")
	want := []token.TokenType{token.NUMBER, token.DOT, token.IDENT, token.EOF}
	for i, typ := range want {
		if toks[i].Type != typ {
			t.Fatalf("token %d: type = %s, want %s", i, toks[i].Type, typ)
		}
	}
}

func TestDanglingExponentNotConsumed(t *testing.T) {
	toks := lex("1e")
	if toks[0].Type != token.NUMBER || toks[0].Literal.(float64) != 1 {
		t.Fatalf("first token = %s %v, want NUMBER 1", toks[0].Type, toks[0].Literal)
	}
	if toks[1].Type != token.IDENT || toks[1].Lexeme != "e" {
		t.Fatalf("second token = %s %q, want IDENT e", toks[1].Type, toks[1].Lexeme)
	}
}

func TestNumberOverflowIsIllegal(t *testing.T) {
	toks := lex("0xffffffffffffffffff")
	if toks[0].Type != token.ILLEGAL {
		t.Fatalf("type = %s, want ILLEGAL", toks[0].Type)
	}
}

func TestStrings(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"double_quoted", `"hello"`, "hello"},
		{"single_quoted", `'hello'`, "hello"},
		{"empty", `""`, ""},
		{"escaped_newline", `"a\nb"`, "a\nb"},
		{"escaped_tab", `"a\tb"`, "a\tb"},
		{"escaped_quote", `"say \"hi\""`, `say "hi"`},
		{"escaped_single_quote", `'it\'s'`, "it's"},
		{"escaped_backslash", `"a\\b"`, `a\b`},
		{"unknown_escape_passes_through", `"\q"`, "q"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks := lex(tc.input)
			if toks[0].Type != token.STRING {
				t.Fatalf("type = %s, want STRING", toks[0].Type)
			}
			if got := toks[0].Literal.(string); got != tc.want {
				t.Errorf("literal = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUnterminatedString(t *testing.T) {
	for _, input := range []string{`"abc`, "\"ab\ncd\""} {
		toks := lex(input)
		if toks[0].Type != token.ILLEGAL {
			t.Fatalf("input %q: type = %s, want ILLEGAL", input, toks[0].Type)
		}
		if msg := toks[0].Literal.(string); msg != "unterminated string literal" {
			t.Errorf("input %q: literal = %q", input, msg)
		}
	}
}

func TestKeywords(t *testing.T) {
	testCases := []struct {
		input string
		want  token.TokenType
	}{
		{"function", token.FUNCTION},
		{"return", token.RETURN},
		{"if", token.IF},
		{"else", token.ELSE},
		{"while", token.WHILE},
		{"let", token.LET},
		{"const", token.CONST},
		{"type", token.TYPE},
		{"interface", token.INTERFACE},
		{"class", token.CLASS},
		{"extends", token.EXTENDS},
		{"new", token.NEW},
		{"async", token.ASYNC},
		{"true", token.TRUE},
		{"false", token.FALSE},
		{"null", token.NULL},
		{"undefined", token.UNDEFINED},
		{"declare", token.DECLARE},
		{"typeof", token.TYPEOF},
		// Near-misses stay identifiers.
		{"functions", token.IDENT},
		{"lets", token.IDENT},
		{"Typeof", token.IDENT},
		{"classy", token.IDENT},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			toks := lex(tc.input)
			if toks[0].Type != tc.want {
				t.Errorf("type = %s, want %s", toks[0].Type, tc.want)
			}
		})
	}
}

func TestPositions(t *testing.T) {
	input := "let x = 1;\nlet yy = 22;"

	expected := []struct {
		typ  token.TokenType
		line int
		col  int
	}{
		{token.LET, 1, 1},
		{token.IDENT, 1, 5},
		{token.ASSIGN, 1, 7},
		{token.NUMBER, 1, 9},
		{token.SEMICOLON, 1, 10},
		{token.LET, 2, 1},
		{token.IDENT, 2, 5},
		{token.ASSIGN, 2, 8},
		{token.NUMBER, 2, 10},
		{token.SEMICOLON, 2, 12},
	}

	toks := lex(input)
	for i, want := range expected {
		if toks[i].Type != want.typ {
			t.Fatalf("token %d: type = %s, want %s", i, toks[i].Type, want.typ)
		}
		if toks[i].Line != want.line || toks[i].Column != want.col {
			t.Errorf("token %d (%s): position = %d:%d, want %d:%d",
				i, want.typ, toks[i].Line, toks[i].Column, want.line, want.col)
		}
	}
}

// Multi-character operators carry the column of their last character.
func TestMultiCharOperatorColumn(t *testing.T) {
	toks := lex("a === b")
	if toks[1].Type != token.EQ_STRICT {
		t.Fatalf("type = %s, want ===", toks[1].Type)
	}
	if toks[1].Column != 5 {
		t.Errorf("column = %d, want 5", toks[1].Column)
	}

	toks = lex("...")
	if toks[0].Type != token.ELLIPSIS || toks[0].Column != 3 {
		t.Errorf("ellipsis at column %d, want 3", toks[0].Column)
	}
}

func TestCommentsSkipped(t *testing.T) {
	toks := lex("// line comment\nx")
	if toks[0].Type != token.IDENT || toks[0].Line != 2 || toks[0].Column != 1 {
		t.Errorf("got %s at %d:%d, want IDENT at 2:1", toks[0].Type, toks[0].Line, toks[0].Column)
	}

	toks = lex("/* a\nb */ x")
	if toks[0].Type != token.IDENT || toks[0].Line != 2 || toks[0].Column != 6 {
		t.Errorf("got %s at %d:%d, want IDENT at 2:6", toks[0].Type, toks[0].Line, toks[0].Column)
	}

	toks = lex("/* only a comment */")
	if toks[0].Type != token.EOF {
		t.Errorf("got %s, want EOF", toks[0].Type)
	}
}

func TestIdentifierCharacters(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  string
	}{
		{"$dollar", "$dollar"},
		{"_under", "_under"},
		{"camelCase9", "camelCase9"},
		{"π", "π"},
	} {
		toks := lex(tc.input)
		if toks[0].Type != token.IDENT || toks[0].Lexeme != tc.want {
			t.Errorf("input %q: got %s %q", tc.input, toks[0].Type, toks[0].Lexeme)
		}
	}
}

func TestIllegalCharacter(t *testing.T) {
	toks := lex("@")
	if toks[0].Type != token.ILLEGAL || toks[0].Lexeme != "@" {
		t.Errorf("got %s %q, want ILLEGAL @", toks[0].Type, toks[0].Lexeme)
	}
}

func TestEmptyInput(t *testing.T) {
	toks := lex("")
	if len(toks) != 1 || toks[0].Type != token.EOF {
		t.Fatalf("expected a single EOF token, got %v", toks)
	}

	toks = lex("   \t\n  ")
	if len(toks) != 1 || toks[0].Type != token.EOF {
		t.Fatalf("whitespace only: expected a single EOF token, got %v", toks)
	}
}
