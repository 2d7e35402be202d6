package dialect

import "testing"

func TestStrictDisablesEverything(t *testing.T) {
	o := Strict()
	//
	if o.ConstParameters || o.VariantRecords || o.ErrantSemicolon || o.LexicalSynonyms {
		t.Errorf("strict dialect must have every switch off, got %+v", o)
	}
}

func TestPIM4EnablesConstParametersAndSynonyms(t *testing.T) {
	o := PIM4()
	//
	if !o.ConstParameters {
		t.Error("PIM4 should enable CONST parameters")
	}
	//
	if !o.LexicalSynonyms {
		t.Error("PIM4 should enable lexical synonyms")
	}
	//
	if o.VariantRecords {
		t.Error("PIM4 should not enable variant records by default")
	}
}
