package ident

import "testing"

func TestSplitWordsLowerToUpperBoundary(t *testing.T) {
	got := splitWords("fooBar")
	want := []string{"foo", "Bar"}
	//
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitWordsAllCapsToCamel(t *testing.T) {
	got := splitWords("HTTPServer")
	want := []string{"HTTP", "Server"}
	//
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	//
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestSplitWordsUnderscoreSeparated(t *testing.T) {
	got := splitWords("foo_bar_baz")
	if len(got) != 3 {
		t.Fatalf("expected 3 words, got %v", got)
	}
}

func TestPublicNameVerbatim(t *testing.T) {
	got := PublicNameVerbatim("MyModule", "DoThing")
	want := "MyModule__DoThing"
	//
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestLocalVarNameVerbatimSuffixesReservedWord(t *testing.T) {
	got := LocalVarNameVerbatim("int")
	if got != "int_" {
		t.Errorf("expected int_, got %s", got)
	}
}

func TestPublicTypeCStyle(t *testing.T) {
	got := PublicTypeCStyle("MyModule", "RecordType")
	want := "my_module__record_type_t"
	//
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestPublicConstCStyleTrailingHSuffix(t *testing.T) {
	got := PublicConstCStyle("Mod", "MaxH")
	if got[len(got)-1] != '_' {
		t.Errorf("expected trailing underscore for source name ending in H, got %s", got)
	}
}

func TestModuleQualifierCollision(t *testing.T) {
	got := ResolveModuleQualifier("Local")
	if got == "Local" {
		t.Error("expected reserved qualifier root to be replaced")
	}
	//
	if len(got) == 0 {
		t.Error("expected a non-empty replacement")
	}
	//
	// Determinism: same input always yields the same replacement.
	if got2 := ResolveModuleQualifier("Local"); got2 != got {
		t.Errorf("expected deterministic replacement, got %s then %s", got, got2)
	}
}

func TestModuleQualifierCollisionIsCaseInsensitive(t *testing.T) {
	got := ResolveModuleQualifier("BuiltIn")
	if got == "BuiltIn" {
		t.Error("expected a mixed-case collision with a reserved qualifier root to be replaced")
	}
	//
	if got2 := ResolveModuleQualifier("BUILTIN"); got2 != ResolveModuleQualifier("builtin") {
		t.Errorf("expected every casing of a reserved root to resolve identically, got %s vs %s", got2, ResolveModuleQualifier("builtin"))
	}
}

func TestModuleQualifierLeavesOrdinaryNamesAlone(t *testing.T) {
	if got := ResolveModuleQualifier("Graphics"); got != "Graphics" {
		t.Errorf("expected Graphics unchanged, got %s", got)
	}
}

func TestLocalCStyleFallsBackToHashWhenEnclosingUnavailable(t *testing.T) {
	got := LocalCStyle("", "counter", RoleVar)
	if got == "" {
		t.Fatal("expected a non-empty mangled name")
	}
}

func TestIsCReservedWord(t *testing.T) {
	if !IsCReservedWord("return", false) {
		t.Error("expected 'return' to be reserved")
	}
	//
	if IsCReservedWord("bool", false) {
		t.Error("'bool' should only be reserved when pseudo-reserved words are included")
	}
	//
	if !IsCReservedWord("bool", true) {
		t.Error("expected 'bool' to be reserved when pseudo-reserved words are included")
	}
}
