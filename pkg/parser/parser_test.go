package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/trijezdci/m2c/pkg/ast"
	"github.com/trijezdci/m2c/pkg/dialect"
	"github.com/trijezdci/m2c/pkg/strpool"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.mod")
	//
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	//
	return path
}

func TestParseSimpleProgramModule(t *testing.T) {
	src := `MODULE Greeter;

VAR count : INTEGER;

PROCEDURE Greet(name : ARRAY OF CHAR);
BEGIN
  count := count + 1
END Greet;

BEGIN
  count := 0;
  Greet(count)
END Greeter.
`
	path := writeTemp(t, src)
	pool := strpool.New(0)
	root, stats, status := ParseFile(KindImplementationOrProgramModule, path, pool, dialect.Strict(), nil)
	//
	if status != StatusSuccess {
		t.Fatalf("expected success, got %s", status)
	}
	//
	if stats.Errors != 0 {
		t.Fatalf("expected no errors, got %d", stats.Errors)
	}
	//
	if root.Kind() != ast.Root {
		t.Fatalf("expected ROOT, got %s", root.Kind())
	}
	//
	mod := root.Subnode(0)
	if mod.Kind() != ast.ProgramModule {
		t.Fatalf("expected PROGMOD, got %s", mod.Kind())
	}
	//
	if mod.Subnode(0).Value0().String() != "Greeter" {
		t.Errorf("expected module name Greeter, got %s", mod.Subnode(0).Value0())
	}
}

func TestParseDefinitionModuleHeaderOnly(t *testing.T) {
	src := `DEFINITION MODULE Stack;

PROCEDURE Push(x : INTEGER);
PROCEDURE Pop() : INTEGER;

END Stack.
`
	path := writeTemp(t, src)
	pool := strpool.New(0)
	root, stats, status := ParseFile(KindDefinitionModule, path, pool, dialect.Strict(), nil)
	//
	if status != StatusSuccess {
		t.Fatalf("expected success, got %s", status)
	}
	//
	if stats.Errors != 0 {
		t.Fatalf("expected no errors, got %d (diagnostics may include: see Entries())", stats.Errors)
	}
	//
	mod := root.Subnode(0)
	if mod.Kind() != ast.DefinitionModule {
		t.Fatalf("expected DEFMOD, got %s", mod.Kind())
	}
	//
	decls := mod.Subnode(3)
	if decls.SubnodeCount() != 2 {
		t.Fatalf("expected 2 procedure declarations, got %d", decls.SubnodeCount())
	}
}

func TestParseDuplicateIdentifierReported(t *testing.T) {
	src := `MODULE Dup;

VAR x : INTEGER;
VAR x : INTEGER;

BEGIN
END Dup.
`
	path := writeTemp(t, src)
	pool := strpool.New(0)
	_, stats, status := ParseFile(KindImplementationOrProgramModule, path, pool, dialect.Strict(), nil)
	//
	if status != StatusSuccess {
		t.Fatalf("expected success, got %s", status)
	}
	//
	if stats.Errors != 1 {
		t.Fatalf("expected exactly 1 duplicate-identifier error, got %d", stats.Errors)
	}
}

func TestParseDuplicateFormalParameterReported(t *testing.T) {
	src := `MODULE Dup;

PROCEDURE P(x, x : INTEGER);
BEGIN
END P;

BEGIN
END Dup.
`
	path := writeTemp(t, src)
	pool := strpool.New(0)
	_, stats, status := ParseFile(KindImplementationOrProgramModule, path, pool, dialect.Strict(), nil)
	//
	if status != StatusSuccess {
		t.Fatalf("expected success, got %s", status)
	}
	//
	if stats.Errors != 1 {
		t.Fatalf("expected exactly 1 duplicate-identifier error, got %d", stats.Errors)
	}
}

func TestParseDuplicateRecordFieldReported(t *testing.T) {
	src := `MODULE Dup;

TYPE T = RECORD
  a : INTEGER;
  a : INTEGER;
END;

BEGIN
END Dup.
`
	path := writeTemp(t, src)
	pool := strpool.New(0)
	_, stats, status := ParseFile(KindImplementationOrProgramModule, path, pool, dialect.Strict(), nil)
	//
	if status != StatusSuccess {
		t.Fatalf("expected success, got %s", status)
	}
	//
	if stats.Errors != 1 {
		t.Fatalf("expected exactly 1 duplicate-identifier error, got %d", stats.Errors)
	}
}

func TestParseRecoversFromUnexpectedToken(t *testing.T) {
	src := `MODULE Broken;

VAR x : INTEGER;
VAR : INTEGER;
VAR y : INTEGER;

BEGIN
END Broken.
`
	path := writeTemp(t, src)
	pool := strpool.New(0)
	root, stats, status := ParseFile(KindImplementationOrProgramModule, path, pool, dialect.Strict(), nil)
	//
	if status != StatusSuccess {
		t.Fatalf("expected success, got %s", status)
	}
	//
	if stats.Errors == 0 {
		t.Fatal("expected at least one unexpected-token diagnostic")
	}
	//
	if root.Kind() != ast.Root {
		t.Fatalf("expected a tree to still be produced, got %s", root.Kind())
	}
}

func TestParseConstParametersGatedByDialect(t *testing.T) {
	src := `DEFINITION MODULE P;

PROCEDURE F(CONST x : INTEGER);

END P.
`
	path := writeTemp(t, src)
	//
	pool := strpool.New(0)
	_, strictStats, _ := ParseFile(KindDefinitionModule, path, pool, dialect.Strict(), nil)
	//
	if strictStats.Errors == 0 {
		t.Error("expected CONST formal parameters to be rejected under the strict dialect")
	}
	//
	pool2 := strpool.New(0)
	_, pim4Stats, _ := ParseFile(KindDefinitionModule, path, pool2, dialect.PIM4(), nil)
	//
	if pim4Stats.Errors != 0 {
		t.Errorf("expected CONST formal parameters to be accepted under PIM4, got %d errors", pim4Stats.Errors)
	}
}

func TestParseVariantRecordGatedByDialect(t *testing.T) {
	src := `DEFINITION MODULE V;

TYPE Tagged = RECORD
  CASE tag : INTEGER OF
    0: a : INTEGER |
    1: b : INTEGER
  END
END;

END V.
`
	path := writeTemp(t, src)
	//
	pool := strpool.New(0)
	_, withVariant, _ := ParseFile(KindDefinitionModule, path, pool, dialect.Options{VariantRecords: true}, nil)
	//
	if withVariant.Errors != 0 {
		t.Errorf("expected variant record to parse cleanly when enabled, got %d errors", withVariant.Errors)
	}
}
