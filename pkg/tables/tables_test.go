package tables

import (
	"testing"

	"github.com/trijezdci/m2c/pkg/dialect"
	"github.com/trijezdci/m2c/pkg/token"
)

func TestFormalParamGroupIsOptionDependent(t *testing.T) {
	withConst := FIRST(FormalParamGroup, dialect.Options{ConstParameters: true})
	withoutConst := FIRST(FormalParamGroup, dialect.Strict())
	//
	if !withConst.Contains(token.Const) {
		t.Error("expected CONST in FIRST(formal-param-group) when const-parameters is enabled")
	}
	//
	if withoutConst.Contains(token.Const) {
		t.Error("expected CONST absent from FIRST(formal-param-group) when const-parameters is disabled")
	}
}

func TestFieldListSequenceIsOptionDependent(t *testing.T) {
	withVariant := FIRST(FieldListSequence, dialect.Options{VariantRecords: true})
	withoutVariant := FIRST(FieldListSequence, dialect.Strict())
	//
	if !withVariant.Contains(token.Case) {
		t.Error("expected CASE in FIRST(field-list-sequence) when variant-records is enabled")
	}
	//
	if withoutVariant.Contains(token.Case) {
		t.Error("expected CASE absent from FIRST(field-list-sequence) when variant-records is disabled")
	}
}

func TestModuleFirstSet(t *testing.T) {
	first := FIRST(Module, dialect.Strict())
	//
	for _, k := range []token.Kind{token.Definition, token.Implementation, token.Module} {
		if !first.Contains(k) {
			t.Errorf("expected %s in FIRST(module)", k)
		}
	}
}

func TestResyncSetsNonEmpty(t *testing.T) {
	if RESYNC(ResyncDeclaration).Count() == 0 {
		t.Error("expected a non-empty declaration resync set")
	}
	//
	if RESYNC(ResyncStatement).Count() == 0 {
		t.Error("expected a non-empty statement resync set")
	}
}

func TestProductionNameRendersKnownProductions(t *testing.T) {
	if Module.Name() != "module" {
		t.Errorf("expected 'module', got %s", Module.Name())
	}
}
