package diag

import "testing"

func TestBagCounters(t *testing.T) {
	b := NewBag()
	//
	b.Add(Diagnostic{Code: CodeUnexpectedToken, Severity: SeverityError, Pos: Position{Path: "a.mod", Line: 1, Column: 1}})
	b.Add(Diagnostic{Code: CodeErrantSemicolon, Severity: SeverityWarning, Pos: Position{Path: "a.mod", Line: 2, Column: 3}})
	b.SetLinesRead(10)
	//
	if b.ErrorCount() != 1 || b.WarningCount() != 1 {
		t.Errorf("expected 1 error and 1 warning, got %d/%d", b.ErrorCount(), b.WarningCount())
	}
	//
	if !b.HasErrors() {
		t.Error("expected HasErrors to be true")
	}
	//
	if b.LinesRead() != 10 {
		t.Errorf("expected 10 lines read, got %d", b.LinesRead())
	}
	//
	if len(b.Entries()) != 2 {
		t.Errorf("expected 2 entries, got %d", len(b.Entries()))
	}
}

func TestDiagnosticStringIncludesExpected(t *testing.T) {
	d := Diagnostic{
		Code:      CodeUnexpectedToken,
		Severity:  SeverityError,
		Pos:       Position{Path: "a.mod", Line: 4, Column: 9},
		Message:   "unexpected token",
		Offending: "BEGIN",
		Expected:  "';' or END",
	}
	//
	s := d.String()
	if s == "" {
		t.Fatal("expected non-empty diagnostic string")
	}
}
