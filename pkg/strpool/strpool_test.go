package strpool

import "testing"

func TestInternUniqueness(t *testing.T) {
	p := New(0)
	//
	h1, s1 := p.GetString("Module")
	h2, s2 := p.GetString("Module")
	h3, s3 := p.GetString("module")
	//
	if s1 != StatusOK || s2 != StatusOK || s3 != StatusOK {
		t.Fatalf("unexpected status: %s %s %s", s1, s2, s3)
	}
	//
	if h1 != h2 {
		t.Errorf("equal content produced distinct handles")
	}
	//
	if h1 == h3 {
		t.Errorf("unequal content produced identical handles")
	}
}

func TestRetainRelease(t *testing.T) {
	p := New(0)
	//
	h, _ := p.GetString("k")
	_ = p.Retain(h)
	//
	if p.Count() != 1 {
		t.Fatalf("expected 1 live entry, got %d", p.Count())
	}
	//
	if status := p.Release(h); status != StatusOK {
		t.Fatalf("unexpected release status: %s", status)
	}
	//
	if p.Count() != 1 {
		t.Fatalf("expected entry to survive one of two releases, got count %d", p.Count())
	}
	//
	if status := p.Release(h); status != StatusOK {
		t.Fatalf("unexpected release status: %s", status)
	}
	//
	if p.Count() != 0 {
		t.Errorf("expected entry to be deallocated, got count %d", p.Count())
	}
}

func TestGetSliceRejectsNonPrintable(t *testing.T) {
	p := New(0)
	data := []byte{'a', 'b', 0x01, 'c'}
	//
	if _, status := p.GetSlice(data, 0, len(data)); status != StatusInvalidIndices {
		t.Errorf("expected invalid-indices, got %s", status)
	}
}

func TestSizeLimitExceeded(t *testing.T) {
	p := New(0)
	big := make([]byte, MaxLength+1)
	//
	for i := range big {
		big[i] = 'x'
	}
	//
	if _, status := p.Get(big); status != StatusSizeLimitExceeded {
		t.Errorf("expected size-limit-exceeded, got %s", status)
	}
}

func TestGetConcat(t *testing.T) {
	p := New(0)
	a := MustGet(p, "foo")
	b := MustGet(p, "Bar")
	c, status := p.GetConcat(a, b)
	//
	if status != StatusOK {
		t.Fatalf("unexpected status: %s", status)
	}
	//
	if c.String() != "fooBar" {
		t.Errorf("expected %q, got %q", "fooBar", c.String())
	}
}
