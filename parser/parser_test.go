package parser

import (
	"testing"

	"github.com/chazu/junoc/ast"
	"github.com/chazu/junoc/source"
)

func parseOK(t *testing.T, src string) *ast.Module {
	t.Helper()
	m, errs := Parse(source.NewFromString(src))
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return m
}

func TestEnumCounterResetsOnExplicitValue(t *testing.T) {
	m := parseOK(t, "enum E { A, B = 5, C }")
	if len(m.Enums) != 1 {
		t.Fatalf("expected 1 enum, got %d", len(m.Enums))
	}
	want := []uint64{0, 5, 6}
	e := m.Enums[0]
	if len(e.Members) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(e.Members))
	}
	for i, w := range want {
		if e.Members[i].Value != w {
			t.Errorf("member %d (%s): got %d, want %d", i, e.Members[i].Name, e.Members[i].Value, w)
		}
	}
}

func TestEnumDuplicateNameAndValueStillRecorded(t *testing.T) {
	m, errs := Parse(source.NewFromString("enum E { A, A = 1, B = 1 }"))
	if len(errs) == 0 {
		t.Fatal("expected duplicate name/value errors")
	}
	if len(m.Enums[0].Members) != 3 {
		t.Fatalf("expected all 3 entries retained, got %d", len(m.Enums[0].Members))
	}
}

func TestUnbracedIfElseBodies(t *testing.T) {
	m := parseOK(t, "def main() { if (a < b < c) return 1; else return 0; }")
	fn := m.Functions[0]
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fn.Body))
	}
	ifStmt, ok := fn.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", fn.Body[0])
	}
	if len(ifStmt.Bodies) != 1 || len(ifStmt.Bodies[0]) != 1 {
		t.Fatalf("expected single unbraced then-statement, got %v", ifStmt.Bodies)
	}
	if len(ifStmt.Else) != 1 {
		t.Fatalf("expected single unbraced else-statement, got %v", ifStmt.Else)
	}
	chain, ok := ifStmt.Conditions[0].(*ast.ComparisonChain)
	if !ok {
		t.Fatalf("expected condition to be a ComparisonChain, got %T", ifStmt.Conditions[0])
	}
	if len(chain.Values) != 3 || len(chain.Ops) != 2 {
		t.Fatalf("expected a<b<c to have 3 values and 2 ops, got %d/%d", len(chain.Values), len(chain.Ops))
	}
}

func TestAdditiveMultiplicativePrecedence(t *testing.T) {
	m := parseOK(t, "def main() { a + b * c; }")
	es := m.Functions[0].Body[0].(*ast.ExprStmt)
	bin, ok := es.X.(*ast.BinaryOp)
	if !ok {
		t.Fatalf("expected top-level BinaryOp, got %T", es.X)
	}
	if _, ok := bin.Right.(*ast.BinaryOp); !ok {
		t.Fatalf("expected b*c to bind tighter than +, got right=%T", bin.Right)
	}
	if _, ok := bin.Left.(*ast.Identifiers); !ok {
		t.Fatalf("expected left operand to be the bare identifier 'a', got %T", bin.Left)
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	m := parseOK(t, "def main() { a ^ b ^ c; }")
	es := m.Functions[0].Body[0].(*ast.ExprStmt)
	top, ok := es.X.(*ast.BinaryOp)
	if !ok {
		t.Fatalf("expected BinaryOp, got %T", es.X)
	}
	if _, ok := top.Right.(*ast.BinaryOp); !ok {
		t.Fatalf("expected a^(b^c) grouping, got right=%T", top.Right)
	}
	if _, ok := top.Left.(*ast.Identifiers); !ok {
		t.Fatalf("expected left operand to be the bare identifier 'a', got %T", top.Left)
	}
}

func TestComparisonChainFoldsIntoSingleNode(t *testing.T) {
	m := parseOK(t, "def main() { a < b <= c; }")
	es := m.Functions[0].Body[0].(*ast.ExprStmt)
	chain, ok := es.X.(*ast.ComparisonChain)
	if !ok {
		t.Fatalf("expected ComparisonChain, got %T", es.X)
	}
	if len(chain.Values) != len(chain.Ops)+1 {
		t.Fatalf("expected len(Values) == len(Ops)+1, got %d/%d", len(chain.Values), len(chain.Ops))
	}
}

func TestAccessAttributesAreOrderIndependent(t *testing.T) {
	a := parseOK(t, "public static int x;")
	b := parseOK(t, "static public int x;")
	if a.Decls[0].IsPublic != b.Decls[0].IsPublic || a.Decls[0].IsStatic != b.Decls[0].IsStatic {
		t.Fatalf("expected order-independent access attributes, got %+v vs %+v", a.Decls[0], b.Decls[0])
	}
	if !a.Decls[0].IsPublic || !a.Decls[0].IsStatic {
		t.Fatalf("expected public+static, got %+v", a.Decls[0])
	}
}

func TestConflictingAccessAttributesIsError(t *testing.T) {
	_, errs := Parse(source.NewFromString("public private int x;"))
	if len(errs) == 0 {
		t.Fatal("expected an error for conflicting public/private")
	}
}

func TestDictLiteralKeysAndItemsSameLength(t *testing.T) {
	m := parseOK(t, `def main() { { "a": 1, "b": 2 }; }`)
	es := m.Functions[0].Body[0].(*ast.ExprStmt)
	d, ok := es.X.(*ast.Dict)
	if !ok {
		t.Fatalf("expected Dict, got %T", es.X)
	}
	if len(d.Keys) != len(d.Items) {
		t.Fatalf("expected len(Keys) == len(Items), got %d/%d", len(d.Keys), len(d.Items))
	}
}

func TestSingleParenExprCollapsesNotTuple(t *testing.T) {
	m := parseOK(t, "def main() { (a); }")
	es := m.Functions[0].Body[0].(*ast.ExprStmt)
	if _, ok := es.X.(*ast.Tuple); ok {
		t.Fatalf("expected single parenthesized expr to collapse, got Tuple")
	}
}

func TestTupleRequiresComma(t *testing.T) {
	m := parseOK(t, "def main() { (a, b); }")
	es := m.Functions[0].Body[0].(*ast.ExprStmt)
	tup, ok := es.X.(*ast.Tuple)
	if !ok {
		t.Fatalf("expected Tuple, got %T", es.X)
	}
	if len(tup.Elems) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(tup.Elems))
	}
}

func TestDeclarationAsStatement(t *testing.T) {
	m := parseOK(t, "def main() { int x = 5; }")
	d, ok := m.Functions[0].Body[0].(*ast.Declaration)
	if !ok {
		t.Fatalf("expected Declaration, got %T", m.Functions[0].Body[0])
	}
	if d.TypeName != "int" || d.Name != "x" {
		t.Fatalf("got TypeName=%q Name=%q", d.TypeName, d.Name)
	}
}

func TestForCStyleVsForEachDisambiguation(t *testing.T) {
	m := parseOK(t, "def main() { for i, i < 10, i = i + 1 { } for x : xs { } }")
	if _, ok := m.Functions[0].Body[0].(*ast.For); !ok {
		t.Fatalf("expected *ast.For, got %T", m.Functions[0].Body[0])
	}
	if _, ok := m.Functions[0].Body[1].(*ast.ForEach); !ok {
		t.Fatalf("expected *ast.ForEach, got %T", m.Functions[0].Body[1])
	}
}

func TestImportAliasDefaultsToLastPathSegment(t *testing.T) {
	m := parseOK(t, "import std.io;")
	if len(m.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(m.Imports))
	}
	if m.Imports[0].Alias != "io" {
		t.Fatalf("got alias %q, want %q", m.Imports[0].Alias, "io")
	}
}

func TestIncludeRejectsAsAlias(t *testing.T) {
	_, errs := Parse(source.NewFromString("include std as s;"))
	if len(errs) == 0 {
		t.Fatal("expected an error for 'as' on an include")
	}
}

func TestFunctionReturnArrowAndRefReturn(t *testing.T) {
	m := parseOK(t, "def f() -> ref int { return x; }")
	fn := m.Functions[0]
	if fn.ReturnType != "int" || fn.ReturnRefDepth != 1 {
		t.Fatalf("got ReturnType=%q ReturnRefDepth=%d", fn.ReturnType, fn.ReturnRefDepth)
	}
}

func TestSizeofAndRefAreUnaryOps(t *testing.T) {
	m := parseOK(t, "def main() { sizeof x; ref y; }")
	u1, ok := m.Functions[0].Body[0].(*ast.ExprStmt).X.(*ast.UnaryOp)
	if !ok {
		t.Fatalf("expected UnaryOp for sizeof, got %T", m.Functions[0].Body[0].(*ast.ExprStmt).X)
	}
	if u1.Op.String() != "sizeof" {
		t.Fatalf("got op %v, want sizeof", u1.Op)
	}
	u2 := m.Functions[0].Body[1].(*ast.ExprStmt).X.(*ast.UnaryOp)
	if u2.Op.String() != "ref" {
		t.Fatalf("got op %v, want ref", u2.Op)
	}
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	_, errs := Parse(source.NewFromString("def main() { break; }"))
	if len(errs) == 0 {
		t.Fatal("expected an error for break outside a loop")
	}
}

func TestClassWithBaseTypeAndMembers(t *testing.T) {
	m := parseOK(t, "class Derived(Base) { int x; def f() {} }")
	ut := m.UserTypes[0]
	if ut.BaseType != "Base" {
		t.Fatalf("got BaseType=%q", ut.BaseType)
	}
	if len(ut.Members) != 1 || len(ut.Methods) != 1 {
		t.Fatalf("got %d members, %d methods", len(ut.Members), len(ut.Methods))
	}
}

func TestLambdaAtModuleScopeIsError(t *testing.T) {
	_, errs := Parse(source.NewFromString("def (x) { return x; }"))
	if len(errs) == 0 {
		t.Fatal("expected an error for a lambda at module scope")
	}
}

func TestArrayDimensionReceiverExtraIdentifier(t *testing.T) {
	m := parseOK(t, "def float[3].add(float[3] other) {}")
	fn := m.Functions[0]
	if len(fn.Path) != 2 || fn.Path[0] != "float" || fn.Path[1] != "add" {
		t.Fatalf("got Path=%v, want [float add]", fn.Path)
	}
	if len(fn.ReceiverDims) != 1 || fn.ReceiverDims[0] != 3 {
		t.Fatalf("got ReceiverDims=%v, want [3]", fn.ReceiverDims)
	}
	if len(fn.Params) != 1 || fn.Params[0].Name != "other" {
		t.Fatalf("got Params=%+v, want one param named other", fn.Params)
	}
}
