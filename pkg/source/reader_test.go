package source

import (
	"os"
	"path/filepath"
	"testing"

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

func TestOpenFileMissing(t *testing.T) {
	pool := strpool.New(0)
	//
	_, status := OpenFile(pool, filepath.Join(t.TempDir(), "nope.mod"))
	if status != StatusFileNotFound {
		t.Errorf("expected StatusFileNotFound, got %s", status)
	}
}

func TestOpenFileEmpty(t *testing.T) {
	pool := strpool.New(0)
	path := writeTemp(t, "")
	//
	_, status := OpenFile(pool, path)
	if status != StatusFileEmpty {
		t.Errorf("expected StatusFileEmpty, got %s", status)
	}
}

func TestReadCharAdvancesLineAndColumn(t *testing.T) {
	pool := strpool.New(0)
	path := writeTemp(t, "ab\ncd")
	//
	h, status := OpenFile(pool, path)
	if status != StatusOK {
		t.Fatalf("unexpected status %s", status)
	}
	//
	for _, want := range []byte{'a', 'b', '\n', 'c', 'd'} {
		got, rstatus := h.ReadChar()
		if rstatus != StatusOK {
			t.Fatalf("unexpected read status %s", rstatus)
		}
		//
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
	//
	if h.Line() != 2 || h.Column() != 3 {
		t.Errorf("expected line 2 col 3, got line %d col %d", h.Line(), h.Column())
	}
	//
	if _, status := h.ReadChar(); status != StatusReadPastEOF {
		t.Errorf("expected StatusReadPastEOF, got %s", status)
	}
}

func TestCRLFNormalizedToSingleLF(t *testing.T) {
	pool := strpool.New(0)
	path := writeTemp(t, "a\r\nb")
	//
	h, status := OpenFile(pool, path)
	if status != StatusOK {
		t.Fatalf("unexpected status %s", status)
	}
	//
	if _, status := h.ReadChar(); status != StatusOK {
		t.Fatal(status)
	}
	//
	got, status := h.ReadChar()
	if status != StatusOK || got != lf {
		t.Fatalf("expected single LF, got %q status %s", got, status)
	}
	//
	if h.Line() != 2 {
		t.Errorf("expected line 2 after CR-LF, got %d", h.Line())
	}
}

func TestMarkAndReadLexeme(t *testing.T) {
	pool := strpool.New(0)
	path := writeTemp(t, "Foobar ")
	//
	h, status := OpenFile(pool, path)
	if status != StatusOK {
		t.Fatalf("unexpected status %s", status)
	}
	//
	h.MarkLexeme()
	//
	for i := 0; i < len("Foobar"); i++ {
		if _, status := h.ReadChar(); status != StatusOK {
			t.Fatal(status)
		}
	}
	//
	handle, status := h.ReadMarkedLexeme(pool)
	if status != StatusOK {
		t.Fatalf("unexpected status %s", status)
	}
	//
	if handle.String() != "Foobar" {
		t.Errorf("expected Foobar, got %q", handle.String())
	}
}

func TestSourceForLine(t *testing.T) {
	pool := strpool.New(0)
	path := writeTemp(t, "line one\nline two\nline three")
	//
	h, status := OpenFile(pool, path)
	if status != StatusOK {
		t.Fatalf("unexpected status %s", status)
	}
	//
	got, ok := h.SourceForLine(2)
	if !ok || got != "line two" {
		t.Errorf("expected %q, got %q (ok=%v)", "line two", got, ok)
	}
	//
	if _, ok := h.SourceForLine(99); ok {
		t.Error("expected ok=false for out-of-range line")
	}
}

func TestLookaheadDoesNotConsume(t *testing.T) {
	pool := strpool.New(0)
	path := writeTemp(t, "xy")
	//
	h, status := OpenFile(pool, path)
	if status != StatusOK {
		t.Fatalf("unexpected status %s", status)
	}
	//
	first, ok := h.NextChar()
	if !ok || first != 'x' {
		t.Fatalf("expected x, got %q", first)
	}
	//
	second, ok := h.La2Char()
	if !ok || second != 'y' {
		t.Fatalf("expected y, got %q", second)
	}
	// Lookahead must not have advanced the cursor.
	got, _ := h.ReadChar()
	if got != 'x' {
		t.Errorf("lookahead advanced the cursor: expected x, got %q", got)
	}
}
