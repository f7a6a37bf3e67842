package wire

import (
	"testing"

	"github.com/chazu/junoc/lexer"
	"github.com/chazu/junoc/parser"
	"github.com/chazu/junoc/source"
)

func TestMarshalUnmarshalTokensRoundTrips(t *testing.T) {
	toks, errs := lexer.Lex(source.NewFromString("def main() { return 1 + 2; }"))
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}

	data, err := MarshalTokens(toks)
	if err != nil {
		t.Fatalf("MarshalTokens failed: %v", err)
	}

	got, err := UnmarshalTokens(data)
	if err != nil {
		t.Fatalf("UnmarshalTokens failed: %v", err)
	}
	if len(got) != len(toks) {
		t.Fatalf("got %d tokens, want %d", len(got), len(toks))
	}
	for i := range toks {
		if got[i].Type != toks[i].Type || got[i].Index != toks[i].Index {
			t.Errorf("token %d: got %+v, want %+v", i, got[i], toks[i])
		}
	}
}

func TestMarshalModuleProjectsSignature(t *testing.T) {
	mod, errs := parser.Parse(source.NewFromString(`
		import std.io;
		def add(int a, int b) -> int { return a + b; }
		class Point { int x; int y; def len() -> int { return 0; } }
		enum Color { Red, Green, Blue }
		int counter = 0;
	`))
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	data, err := MarshalModule(mod)
	if err != nil {
		t.Fatalf("MarshalModule failed: %v", err)
	}

	sig, err := UnmarshalModule(data)
	if err != nil {
		t.Fatalf("UnmarshalModule failed: %v", err)
	}

	if len(sig.Imports) != 1 {
		t.Errorf("got %d imports, want 1", len(sig.Imports))
	}
	if len(sig.Functions) != 1 || sig.Functions[0].Path[0] != "add" {
		t.Errorf("got functions %+v, want one named add", sig.Functions)
	}
	if len(sig.UserTypes) != 1 || len(sig.UserTypes[0].Methods) != 1 {
		t.Errorf("got user types %+v, want one type with one method", sig.UserTypes)
	}
	if len(sig.Enums) != 1 || len(sig.Enums[0].Members) != 3 {
		t.Errorf("got enums %+v, want one enum with 3 members", sig.Enums)
	}
	if len(sig.Decls) != 1 {
		t.Errorf("got %d top-level decls, want 1", len(sig.Decls))
	}
}
