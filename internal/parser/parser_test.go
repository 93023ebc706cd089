package parser_test

import (
	"testing"

	"github.com/sigil-lang/sigil/internal/ast"
	"github.com/sigil-lang/sigil/internal/lexer"
	"github.com/sigil-lang/sigil/internal/parser"
	"github.com/sigil-lang/sigil/internal/pipeline"
)

// parseCtx runs the lexer and parser stages over input and returns the
// resulting context, errors and all.
func parseCtx(input string) *pipeline.PipelineContext {
	ctx := &pipeline.PipelineContext{Source: input}
	lp := &lexer.LexerProcessor{}
	ctx = lp.Process(ctx)
	pp := &parser.ParserProcessor{}
	ctx = pp.Process(ctx)
	return ctx
}

// parse is a test helper: lexes+parses input and fails on errors.
func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	ctx := parseCtx(input)
	if len(ctx.Errors) > 0 {
		for _, e := range ctx.Errors {
			t.Errorf("parse error: %s", e)
		}
		t.FailNow()
	}
	return ctx.AstRoot
}

// stmt extracts the nth statement as the given type.
func stmt[T ast.Statement](t *testing.T, prog *ast.Program, idx int) T {
	t.Helper()
	if idx >= len(prog.Statements) {
		t.Fatalf("expected at least %d statements, got %d", idx+1, len(prog.Statements))
	}
	s, ok := prog.Statements[idx].(T)
	if !ok {
		t.Fatalf("statement %d: expected %T, got %T", idx, s, prog.Statements[idx])
	}
	return s
}

func TestParserRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"let_binding", "let x = 5;", "let x = 5;"},
		{"const_with_annotation", "const y: number = 1;", "const y: number = 1;"},
		{"let_without_value", "let z: string;", "let z: string;"},
		{"precedence_mul_over_add", "1 + 2 * 3;", "(1 + (2 * 3));"},
		{"left_assoc_add", "a + b + c;", "((a + b) + c);"},
		{"prefix_binds_tighter", "-a * b;", "((-a) * b);"},
		{"bang_prefix", "!true;", "(!true);"},
		{"equality_over_comparison", "a < b === c > d;", "((a < b) === (c > d));"},
		{"and_over_or", "a && b || c;", "((a && b) || c);"},
		{"conditional", "a ? b : c;", "(a ? b : c);"},
		{"conditional_right_assoc", "a ? b : c ? d : e;", "(a ? b : (c ? d : e));"},
		{"conditional_binds_below_or", "a || b ? 1 : 2;", "((a || b) ? 1 : 2);"},
		{"grouped_expression", "(a + b) * c;", "((a + b) * c);"},
		{"strict_equality", "a !== b;", "(a !== b);"},
		{"modulo", "a % 2 == 0;", "((a % 2) == 0);"},
		{"call_with_expression_args", "f(1, 2 * 3);", "f(1, (2 * 3));"},
		{"member_chain", "a.b.c;", "a.b.c;"},
		{"call_then_member", "f(x).y;", "f(x).y;"},
		{"new_with_args", "new Point(1, 2);", "new Point(1, 2);"},
		{"array_literal", `[1, "a", true];`, `[1, "a", true];`},
		{"hex_number", "0x10;", "16;"},
		{"float_number", "1.5;", "1.5;"},
		{"null_and_undefined", "let n = null;", "let n = null;"},
		{"function_declaration",
			"function add(a: number, b: number): number { return a + b; }",
			"function add(a: number, b: number): number { return (a + b); }"},
		{"function_empty_body", "function noop() {}", "function noop() { }"},
		{"async_function", "async function f() { return 1; }", "async function f() { return 1; }"},
		{"generator_function", "function* g() {}", "function* g() { }"},
		{"optional_param", "function f(a?: number) {}", "function f(a?: number) { }"},
		{"rest_param", "function f(...xs: number[]) {}", "function f(...xs: number[]) { }"},
		{"array_pattern_param",
			"function f([a, b]: [number, string]) {}",
			"function f([a, b]: [number, string]) { }"},
		{"object_pattern_param", "function f({x, y}: P) {}", "function f({x, y}: P) { }"},
		{"generic_function", "function id<T>(x: T): T { return x; }", "function id<T>(x: T): T { return x; }"},
		{"type_param_constraint_and_default",
			"function f<T extends string, U = number>(x: T, y: U) {}",
			"function f<T extends string, U = number>(x: T, y: U) { }"},
		{"function_expression_value",
			"let h = function(x) { return x; };",
			"let h = function(x) { return x; };"},
		{"ambient_function", "declare function f(x: number): void;", "function f(x: number): void"},
		{"type_alias", "type Id = number;", "type Id = number;"},
		{"generic_alias_with_default",
			"type Pair<A, B = string> = [A, B];",
			"type Pair<A, B = string> = [A, B];"},
		{"interface_with_optional_member",
			"interface P { x: number; y?: string; }",
			"interface P { x: number; y?: string; }"},
		{"class_declaration",
			"class Point { x: number; y: number; }",
			"class Point { x: number; y: number; }"},
		{"union_type", "let u: number | string | null;", "let u: number | string | null;"},
		{"tuple_type", "let b: [number, string];", "let b: [number, string];"},
		{"array_type", "let c: number[];", "let c: number[];"},
		{"nested_array_type", "let m: number[][];", "let m: number[][];"},
		{"grouped_union_array", "let g: (number | string)[];", "let g: (number | string)[];"},
		{"function_type", "let d: (x: number) => string;", "let d: (x: number) => string;"},
		{"literal_types", `let t: 1 | "a" | true;`, `let t: 1 | "a" | true;`},
		{"generic_type_args", "let box: Box<number, string>;", "let box: Box<number, string>;"},
		{"if_else", "if (a) { b; } else { c; }", "if (a) { b; } else { c; }"},
		{"else_if_chain",
			"if (a) { 1; } else if (b) { 2; } else { 3; }",
			"if (a) { 1; } else if (b) { 2; } else { 3; }"},
		{"while_loop", "while (x) { f(x); }", "while (x) { f(x); }"},
		{"bare_block", "{ let x = 1; }", "{ let x = 1; }"},
		{"bare_return", "function f() { return; }", "function f() { return; }"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prog := parse(t, tc.input)
			if got := prog.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

// ---------- declarations ----------

func TestAmbientFunctionHasNoBody(t *testing.T) {
	prog := parse(t, "declare function f(): void;")
	fd := stmt[*ast.FunctionDeclaration](t, prog, 0)
	if fd.Fn.Body != nil {
		t.Errorf("ambient function should have nil body, got %s", fd.Fn.Body)
	}
}

func TestAmbientAsyncFunction(t *testing.T) {
	prog := parse(t, "declare async function f();")
	fd := stmt[*ast.FunctionDeclaration](t, prog, 0)
	if !fd.Fn.IsAsync {
		t.Error("expected IsAsync")
	}
	if fd.Fn.Body != nil {
		t.Error("ambient function should have nil body")
	}
}

func TestAmbientLetHasNoValue(t *testing.T) {
	prog := parse(t, "declare let x: number;")
	ls := stmt[*ast.LetStatement](t, prog, 0)
	if ls.Value != nil {
		t.Errorf("ambient let should have nil value, got %s", ls.Value)
	}
	if ls.TypeAnnotation == nil {
		t.Error("expected a type annotation")
	}
}

func TestAmbientConst(t *testing.T) {
	prog := parse(t, "declare const k: string;")
	ls := stmt[*ast.LetStatement](t, prog, 0)
	if !ls.IsConst {
		t.Error("expected IsConst")
	}
}

func TestAmbientClass(t *testing.T) {
	prog := parse(t, "declare class C { x: number; }")
	cd := stmt[*ast.ClassDeclaration](t, prog, 0)
	if cd.Name.Value != "C" || len(cd.Fields) != 1 {
		t.Errorf("got class %s with %d fields", cd.Name.Value, len(cd.Fields))
	}
}

func TestFunctionNodeIDsAreDistinct(t *testing.T) {
	prog := parse(t, "function a() {}\nfunction b() {}")
	first := stmt[*ast.FunctionDeclaration](t, prog, 0)
	second := stmt[*ast.FunctionDeclaration](t, prog, 1)
	if first.Fn.NodeID == 0 || second.Fn.NodeID == 0 {
		t.Fatalf("node ids must be assigned, got %d and %d", first.Fn.NodeID, second.Fn.NodeID)
	}
	if first.Fn.NodeID == second.Fn.NodeID {
		t.Errorf("node ids must be distinct, both are %d", first.Fn.NodeID)
	}
}

func TestTypeParamStructure(t *testing.T) {
	prog := parse(t, "type Box<T extends string, U = number> = [T, U];")
	alias := stmt[*ast.TypeAliasDeclaration](t, prog, 0)
	if len(alias.TypeParams) != 2 {
		t.Fatalf("expected 2 type params, got %d", len(alias.TypeParams))
	}
	if alias.TypeParams[0].Constraint == nil || alias.TypeParams[0].Default != nil {
		t.Errorf("param T: constraint=%v default=%v", alias.TypeParams[0].Constraint, alias.TypeParams[0].Default)
	}
	if alias.TypeParams[1].Constraint != nil || alias.TypeParams[1].Default == nil {
		t.Errorf("param U: constraint=%v default=%v", alias.TypeParams[1].Constraint, alias.TypeParams[1].Default)
	}
}

func TestInterfaceOptionalMember(t *testing.T) {
	prog := parse(t, "interface P { x: number; y?: string; }")
	iface := stmt[*ast.InterfaceDeclaration](t, prog, 0)
	if len(iface.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(iface.Members))
	}
	if iface.Members[0].Optional {
		t.Error("x should not be optional")
	}
	if !iface.Members[1].Optional {
		t.Error("y should be optional")
	}
}

// ---------- expressions ----------

func TestNewWithoutParens(t *testing.T) {
	prog := parse(t, "new Date;")
	es := stmt[*ast.ExpressionStatement](t, prog, 0)
	ne, ok := es.Expression.(*ast.NewExpression)
	if !ok {
		t.Fatalf("expected NewExpression, got %T", es.Expression)
	}
	callee, ok := ne.Callee.(*ast.Identifier)
	if !ok || callee.Value != "Date" {
		t.Fatalf("callee = %v", ne.Callee)
	}
	if len(ne.Arguments) != 0 {
		t.Errorf("expected 0 arguments, got %d", len(ne.Arguments))
	}
}

func TestNewUnwrapsCall(t *testing.T) {
	prog := parse(t, "new Point(1, 2);")
	es := stmt[*ast.ExpressionStatement](t, prog, 0)
	ne, ok := es.Expression.(*ast.NewExpression)
	if !ok {
		t.Fatalf("expected NewExpression, got %T", es.Expression)
	}
	if len(ne.Arguments) != 2 {
		t.Errorf("expected 2 arguments, got %d", len(ne.Arguments))
	}
	if _, ok := ne.Callee.(*ast.Identifier); !ok {
		t.Errorf("callee should be the bare identifier, got %T", ne.Callee)
	}
}

func TestMemberChainNesting(t *testing.T) {
	prog := parse(t, "a.b.c;")
	es := stmt[*ast.ExpressionStatement](t, prog, 0)
	outer, ok := es.Expression.(*ast.MemberExpression)
	if !ok {
		t.Fatalf("expected MemberExpression, got %T", es.Expression)
	}
	if outer.Property.Value != "c" {
		t.Errorf("outer property = %s, want c", outer.Property.Value)
	}
	inner, ok := outer.Object.(*ast.MemberExpression)
	if !ok {
		t.Fatalf("expected nested MemberExpression, got %T", outer.Object)
	}
	if inner.Property.Value != "b" {
		t.Errorf("inner property = %s, want b", inner.Property.Value)
	}
}

func TestAsyncFunctionExpression(t *testing.T) {
	prog := parse(t, "let f = async function() { return 1; };")
	ls := stmt[*ast.LetStatement](t, prog, 0)
	fn, ok := ls.Value.(*ast.FunctionLiteral)
	if !ok {
		t.Fatalf("expected FunctionLiteral, got %T", ls.Value)
	}
	if !fn.IsAsync {
		t.Error("expected IsAsync")
	}
}

func TestEmptyStatementsSkipped(t *testing.T) {
	prog := parse(t, ";;let x = 1;;")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
}

func TestCommentsIgnored(t *testing.T) {
	prog := parse(t, "// leading comment\nlet x = 1; /* inline */ let y = 2;")
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
}
