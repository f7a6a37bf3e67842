package langserver

import (
	"testing"

	"github.com/chazu/junoc/diag"
)

func TestToDiagnosticConvertsOneBasedToZeroBasedPosition(t *testing.T) {
	e := &diag.Error{Message: "unexpected token", Line: 3, Column: 5}
	d := toDiagnostic(e)

	if d.Range.Start.Line != 2 {
		t.Errorf("Start.Line = %d, want 2", d.Range.Start.Line)
	}
	if d.Range.Start.Character != 4 {
		t.Errorf("Start.Character = %d, want 4", d.Range.Start.Character)
	}
	if d.Range.End.Character != d.Range.Start.Character+1 {
		t.Errorf("End.Character = %d, want %d", d.Range.End.Character, d.Range.Start.Character+1)
	}
	if d.Message != e.Error() {
		t.Errorf("Message = %q, want %q", d.Message, e.Error())
	}
}

func TestToDiagnosticClampsNonPositivePosition(t *testing.T) {
	e := &diag.Error{Message: "eof", Line: 0, Column: 0}
	d := toDiagnostic(e)

	if d.Range.Start.Line != 0 || d.Range.Start.Character != 0 {
		t.Errorf("got %+v, want zeroed position", d.Range.Start)
	}
}

func TestNewWiresDiagnosticsOnlyHandlers(t *testing.T) {
	s := New()

	if s.handler.Initialize == nil || s.handler.Initialized == nil || s.handler.Shutdown == nil {
		t.Fatal("expected lifecycle handlers to be wired")
	}
	if s.handler.TextDocumentDidOpen == nil || s.handler.TextDocumentDidChange == nil || s.handler.TextDocumentDidClose == nil {
		t.Fatal("expected document sync handlers to be wired")
	}
	if s.handler.TextDocumentCompletion != nil || s.handler.TextDocumentHover != nil || s.handler.TextDocumentDefinition != nil {
		t.Fatal("expected no completion/hover/definition handlers, since this server is diagnostics-only")
	}
}

func TestShutdownIsNoOp(t *testing.T) {
	s := New()
	if err := s.shutdown(nil); err != nil {
		t.Errorf("shutdown returned %v, want nil", err)
	}
}
