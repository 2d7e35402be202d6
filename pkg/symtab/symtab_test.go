package symtab

import "testing"
import "github.com/trijezdci/m2c/pkg/strpool"

func TestOpenScopeUsesCorrectBucketCounts(t *testing.T) {
	table := New()
	pool := strpool.New(0)
	//
	top := table.OpenScope(strpool.MustGet(pool, "M"))
	if len(top.buckets) != topBuckets {
		t.Errorf("expected %d buckets for top scope, got %d", topBuckets, len(top.buckets))
	}
	//
	inner := table.OpenScope(strpool.MustGet(pool, "P"))
	if len(inner.buckets) != innerBuckets {
		t.Errorf("expected %d buckets for inner scope, got %d", innerBuckets, len(inner.buckets))
	}
}

func TestInsertRejectsDuplicateInSameScope(t *testing.T) {
	table := New()
	pool := strpool.New(0)
	table.OpenScope(strpool.MustGet(pool, "M"))
	//
	x := strpool.MustGet(pool, "x")
	//
	if !table.Insert(&Symbol{Ident: x, Kind: KindVar}) {
		t.Fatal("first insert should succeed")
	}
	//
	if table.Insert(&Symbol{Ident: x, Kind: KindVar}) {
		t.Error("duplicate insert in the same scope should fail")
	}
}

func TestLookupShadowsOuterScope(t *testing.T) {
	table := New()
	pool := strpool.New(0)
	table.OpenScope(strpool.MustGet(pool, "M"))
	//
	x := strpool.MustGet(pool, "x")
	table.Insert(&Symbol{Ident: x, Kind: KindVar})
	//
	table.OpenScope(strpool.MustGet(pool, "P"))
	table.Insert(&Symbol{Ident: x, Kind: KindConstParam})
	//
	found := table.Lookup(x)
	if found == nil || found.Kind != KindConstParam {
		t.Errorf("expected inner declaration to shadow outer, got %v", found)
	}
	//
	table.CloseScope(nil)
	//
	found = table.Lookup(x)
	if found == nil || found.Kind != KindVar {
		t.Errorf("expected outer declaration after closing inner scope, got %v", found)
	}
}

func TestCloseScopeUpdatesCounters(t *testing.T) {
	table := New()
	pool := strpool.New(0)
	table.OpenScope(strpool.MustGet(pool, "M"))
	table.Insert(&Symbol{Ident: strpool.MustGet(pool, "a"), Kind: KindVar})
	table.OpenScope(strpool.MustGet(pool, "P"))
	table.Insert(&Symbol{Ident: strpool.MustGet(pool, "b"), Kind: KindVar})
	//
	if table.ScopeCount() != 2 || table.SymbolCount() != 2 {
		t.Fatalf("expected 2 scopes/2 symbols, got %d/%d", table.ScopeCount(), table.SymbolCount())
	}
	//
	table.CloseScope(nil)
	//
	if table.ScopeCount() != 1 || table.SymbolCount() != 1 {
		t.Errorf("expected 1 scope/1 symbol after close, got %d/%d", table.ScopeCount(), table.SymbolCount())
	}
}

func TestLookupUndeclaredReturnsNil(t *testing.T) {
	table := New()
	pool := strpool.New(0)
	table.OpenScope(strpool.MustGet(pool, "M"))
	//
	if table.Lookup(strpool.MustGet(pool, "nope")) != nil {
		t.Error("expected nil for an undeclared identifier")
	}
}
