package checker

import (
	"testing"

	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/token"
	"github.com/sigil-lang/sigil/internal/types"
)

func assignableOrFatal(t *testing.T, c *Checker, target, source types.Type) bool {
	t.Helper()
	ok, err := c.isAssignable(target, source)
	if err != nil {
		t.Fatalf("assignability check failed: %v", err)
	}
	return ok
}

func TestAssignableMatrix(t *testing.T) {
	tok := token.Token{Line: 1, Column: 1}
	num := types.NewNumber(tok)
	str := types.NewString(tok)
	boolean := types.NewBoolean(tok)
	und := types.NewUndefined(tok)
	lit1 := &types.Lit{Tok: tok, Value: float64(1)}
	lit2 := &types.Lit{Tok: tok, Value: float64(2)}
	litA := &types.Lit{Tok: tok, Value: "a"}

	numArr := &types.Array{Tok: tok, Elem: num}
	strArr := &types.Array{Tok: tok, Elem: str}
	pair := &types.Tuple{Tok: tok, Elems: []types.TupleElem{{Ty: num}, {Ty: str}}}
	litPair := &types.Tuple{Tok: tok, Elems: []types.TupleElem{{Ty: lit1}, {Ty: litA}}}
	single := &types.Tuple{Tok: tok, Elems: []types.TupleElem{{Ty: num}}}

	numOrStr := types.NewUnion(tok, num, str)
	oneOrTwo := types.NewUnion(tok, lit1, lit2)

	testCases := []struct {
		name   string
		target types.Type
		source types.Type
		want   bool
	}{
		{"any accepts anything", types.NewAny(tok), str, true},
		{"anything accepts any", str, types.NewAny(tok), true},
		{"unknown accepts number", types.NewUnknown(tok), num, true},
		{"number rejects unknown", num, types.NewUnknown(tok), false},
		{"never fits everywhere", num, types.NewNever(tok), true},
		{"never accepts nothing concrete", types.NewNever(tok), num, false},
		{"void accepts undefined", types.NewVoid(tok), und, true},
		{"void rejects number", types.NewVoid(tok), num, false},

		{"literal widens into primitive", num, lit1, true},
		{"string literal widens into string", str, litA, true},
		{"literal does not cross primitives", str, lit1, false},
		{"primitive does not narrow to literal", lit1, num, false},
		{"same literal", lit1, &types.Lit{Tok: tok, Value: float64(1)}, true},
		{"different literal", lit1, lit2, false},

		{"union source needs every member", num, numOrStr, false},
		{"union target needs one member", numOrStr, num, true},
		{"union target accepts literal member", oneOrTwo, lit1, true},
		{"union target rejects outside literal", oneOrTwo, &types.Lit{Tok: tok, Value: float64(3)}, false},
		{"union to wider union", numOrStr, types.NewUnion(tok, lit1, litA), true},

		{"tuple elementwise", pair, litPair, true},
		{"tuple length mismatch", pair, single, false},
		{"array from array", numArr, &types.Array{Tok: tok, Elem: lit1}, true},
		{"array element mismatch", numArr, strArr, false},
		{"array from tuple", numArr, &types.Tuple{Tok: tok, Elems: []types.TupleElem{{Ty: lit1}, {Ty: lit2}}}, true},
		{"array from mixed tuple", numArr, litPair, false},
		{"tuple from array", pair, numArr, false},

		{"boolean identity", boolean, types.NewBoolean(tok), true},
	}

	c := New("test.sg", nil)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := assignableOrFatal(t, c, tc.target, tc.source); got != tc.want {
				t.Errorf("assignable(%s, %s) = %v, want %v",
					tc.target.String(), tc.source.String(), got, tc.want)
			}
		})
	}
}

func TestObjectKeywordAcceptsStructured(t *testing.T) {
	tok := token.Token{Line: 1, Column: 1}
	obj := &types.Keyword{Tok: tok, Kind: types.KindObject}
	c := New("test.sg", nil)

	iface := &types.Interface{Tok: tok, Name: "I"}
	tuple := &types.Tuple{Tok: tok}
	fn := &types.Function{Tok: tok, RetTy: types.NewVoid(tok)}

	for _, src := range []types.Type{iface, tuple, fn} {
		if !assignableOrFatal(t, c, obj, src) {
			t.Errorf("object should accept %T", src)
		}
	}
	if assignableOrFatal(t, c, obj, types.NewNumber(tok)) {
		t.Errorf("object should reject number")
	}
}

func TestFunctionAssignability(t *testing.T) {
	tok := token.Token{Line: 1, Column: 1}
	num := types.NewNumber(tok)
	lit1 := &types.Lit{Tok: tok, Value: float64(1)}

	fn := func(ret types.Type, params ...types.FnParam) *types.Function {
		return &types.Function{Tok: tok, Params: params, RetTy: ret}
	}
	p := func(ty types.Type) types.FnParam { return types.FnParam{Name: "x", Ty: ty} }
	opt := func(ty types.Type) types.FnParam { return types.FnParam{Name: "x", Ty: ty, Optional: true} }

	c := New("test.sg", nil)

	// Fewer parameters on the source are fine; more required ones are
	// not.
	if !assignableOrFatal(t, c, fn(num, p(num), p(num)), fn(num, p(num))) {
		t.Errorf("source with fewer parameters should fit")
	}
	if assignableOrFatal(t, c, fn(num, p(num)), fn(num, p(num), p(num))) {
		t.Errorf("source requiring more parameters should not fit")
	}
	if !assignableOrFatal(t, c, fn(num, p(num)), fn(num, p(num), opt(num))) {
		t.Errorf("extra optional parameters should not block")
	}

	// Parameters compare contravariantly.
	if !assignableOrFatal(t, c, fn(num, p(lit1)), fn(num, p(num))) {
		t.Errorf("wider source parameter should fit narrower target parameter")
	}
	if assignableOrFatal(t, c, fn(num, p(num)), fn(num, p(lit1))) {
		t.Errorf("narrower source parameter should not fit wider target parameter")
	}

	// Returns compare covariantly; a void-returning target accepts
	// any source return.
	if !assignableOrFatal(t, c, fn(num), fn(lit1)) {
		t.Errorf("narrower source return should fit")
	}
	if assignableOrFatal(t, c, fn(lit1), fn(num)) {
		t.Errorf("wider source return should not fit")
	}
	if !assignableOrFatal(t, c, fn(types.NewVoid(tok)), fn(num)) {
		t.Errorf("void-returning target should accept any source return")
	}
}

func TestInterfaceStructuralAssignability(t *testing.T) {
	tok := token.Token{Line: 1, Column: 1}
	num := types.NewNumber(tok)
	str := types.NewString(tok)
	c := New("test.sg", nil)

	point := &types.Interface{Tok: tok, Name: "Point", Members: []types.Member{
		{Name: "x", Ty: num},
		{Name: "y", Ty: num},
	}}
	named := &types.Interface{Tok: tok, Name: "Named", Members: []types.Member{
		{Name: "x", Ty: num},
	}}
	labeled := &types.Interface{Tok: tok, Name: "Labeled", Members: []types.Member{
		{Name: "x", Ty: num},
		{Name: "label", Ty: str, Optional: true},
	}}

	// Width subtyping: extra source members are fine, missing
	// required ones are not.
	if !assignableOrFatal(t, c, named, point) {
		t.Errorf("wider source should satisfy narrower interface")
	}
	if assignableOrFatal(t, c, point, named) {
		t.Errorf("source missing a required member should not fit")
	}
	if !assignableOrFatal(t, c, labeled, named) {
		t.Errorf("missing optional member should not block")
	}
	if assignableOrFatal(t, c, named, types.NewUndefined(tok)) {
		t.Errorf("undefined should not satisfy an interface")
	}
	if assignableOrFatal(t, c, named, types.NewNull(tok)) {
		t.Errorf("null should not satisfy an interface")
	}
}

func TestClassInstanceNominal(t *testing.T) {
	tok := token.Token{Line: 1, Column: 1}
	num := types.NewNumber(tok)
	c := New("test.sg", nil)

	a := &types.Class{Tok: tok, Name: "A", Fields: []types.Member{{Name: "x", Ty: num}}}
	b := &types.Class{Tok: tok, Name: "B", Fields: []types.Member{{Name: "x", Ty: num}}}
	instA := &types.ClassInstance{Tok: tok, Class: a}
	instA2 := &types.ClassInstance{Tok: tok, Class: a}
	instB := &types.ClassInstance{Tok: tok, Class: b}

	if !assignableOrFatal(t, c, instA, instA2) {
		t.Errorf("instances of the same class should be assignable")
	}
	if assignableOrFatal(t, c, instA, instB) {
		t.Errorf("identically shaped classes remain distinct")
	}

	// An interface target still accepts a class instance
	// structurally.
	iface := &types.Interface{Tok: tok, Name: "HasX", Members: []types.Member{{Name: "x", Ty: num}}}
	if !assignableOrFatal(t, c, iface, instA) {
		t.Errorf("class instance should satisfy a structural interface")
	}
}

func TestGenericClassInstanceArgsCompared(t *testing.T) {
	tok := token.Token{Line: 1, Column: 1}
	tp := &types.TypeParam{Tok: tok, Name: "T"}
	box := &types.Class{Tok: tok, Name: "Box", TypeParams: []*types.TypeParam{tp}}
	c := New("test.sg", nil)

	numBox := &types.ClassInstance{Tok: tok, Class: box, TypeArgs: []types.Type{types.NewNumber(tok)}}
	litBox := &types.ClassInstance{Tok: tok, Class: box, TypeArgs: []types.Type{&types.Lit{Tok: tok, Value: float64(1)}}}
	strBox := &types.ClassInstance{Tok: tok, Class: box, TypeArgs: []types.Type{types.NewString(tok)}}

	if !assignableOrFatal(t, c, numBox, litBox) {
		t.Errorf("Box<1> should fit Box<number>")
	}
	if assignableOrFatal(t, c, numBox, strBox) {
		t.Errorf("Box<string> should not fit Box<number>")
	}
}

func TestAssignmentDiagnosticMessage(t *testing.T) {
	e := expectError(t, `let x: string = 1;`, diagnostics.ErrNotAssignable)
	if e.Message != "Type '1' is not assignable to type 'string'." {
		t.Errorf("unexpected message: %s", e.Message)
	}
}

func TestRecursiveTypesTerminate(t *testing.T) {
	// Structurally identical recursive aliases compare without
	// looping: a pair met again while in flight is assumed fine.
	expectNoErrors(t, `type T1 = [number, T1[]];
type T2 = [number, T2[]];
declare function make(): T2;
let x: T1 = make();`)
}

func TestRecursiveTypesStillDistinguished(t *testing.T) {
	expectError(t, `type T1 = [number, T1[]];
type T3 = [string, T3[]];
declare function make(): T3;
let x: T1 = make();`, diagnostics.ErrNotAssignable)
}

func TestRefTargetResolvedBeforeCompare(t *testing.T) {
	expectNoErrors(t, `type Name = string;
let x: Name = "a";`)
}

func TestParamSourceFallsBackToConstraint(t *testing.T) {
	tok := token.Token{Line: 1, Column: 1}
	c := New("test.sg", nil)

	constrained := &types.Param{Tok: tok, Param: &types.TypeParam{
		Tok: tok, Name: "T", Constraint: types.NewString(tok),
	}}
	if !assignableOrFatal(t, c, types.NewString(tok), constrained) {
		t.Errorf("constrained parameter should fit its constraint's supertype")
	}

	bare := &types.Param{Tok: tok, Param: &types.TypeParam{Tok: tok, Name: "U"}}
	if assignableOrFatal(t, c, types.NewString(tok), bare) {
		t.Errorf("unconstrained parameter should only fit any and itself")
	}
	if !assignableOrFatal(t, c, bare, bare) {
		t.Errorf("a parameter is assignable to itself")
	}
}
