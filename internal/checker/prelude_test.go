package checker

import (
	"testing"

	"github.com/sigil-lang/sigil/internal/diagnostics"
)

func TestPreludeFunctionsAvailable(t *testing.T) {
	expectNoErrors(t, `print("hello");
let n: number = len([1, 2]);
let s: string = typeOf(1);`)
}

func TestPreludeVoidReturn(t *testing.T) {
	if got := letValueType(t, "let v = print(1);", "v"); got != "void" {
		t.Errorf("print return type = %s, want void", got)
	}
}

func TestPreludeConstants(t *testing.T) {
	expectNoErrors(t, `let a: number = NaN;
let b: number = Infinity;`)
}

func TestPreludeArityChecked(t *testing.T) {
	expectError(t, "print();", diagnostics.ErrArgCount)
}

func TestPreludePromiseMember(t *testing.T) {
	expectNoErrors(t, `declare let p: Promise<number>;
let v: number = p.value;`)
}

func TestPreludeNamesShadowable(t *testing.T) {
	// Program-level declarations live in a child scope of the prelude.
	expectNoErrors(t, `function len(x: number): number { return x; }
let n: number = len(2);`)
}

func TestPreludeArrayLength(t *testing.T) {
	expectNoErrors(t, `declare let xs: Array<number>;
let n: number = xs.length;`)
}
