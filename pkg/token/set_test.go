package token

import "testing"

func TestSetLaws(t *testing.T) {
	s := Of(Module, Ident)
	tt := Of(Semicolon)
	u := Union(s, tt)
	//
	for _, k := range []Kind{Module, Ident, Semicolon} {
		if u.Contains(k) != (s.Contains(k) || tt.Contains(k)) {
			t.Errorf("union element law failed for %s", k)
		}
	}
	//
	if u.Count() != uint(len(u.Elements())) {
		t.Errorf("count must equal population: %d vs %d", u.Count(), len(u.Elements()))
	}
	//
	if !s.Subset(s) {
		t.Error("a set must be a subset of itself")
	}
	//
	empty := NewSet()
	//
	if !s.Disjoint(empty) {
		t.Error("every set is disjoint from the empty set")
	}
}

func TestSetListString(t *testing.T) {
	s := Of(Semicolon, RParen, EOF)
	//
	str := s.ListString()
	if str == "" {
		t.Fatal("expected non-empty list string")
	}
}
