package source

import "testing"

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("hello")
	b := in.Intern("hello")
	if a != b {
		t.Fatalf("expected same StringID, got %d and %d", a, b)
	}
	if got, ok := in.Lookup(a); !ok || got != "hello" {
		t.Fatalf("Lookup(%d) = %q, %v", a, got, ok)
	}
}

func TestInternerNormalizesNFC(t *testing.T) {
	in := NewInterner()
	// precomposed U+00E9 (LATIN SMALL LETTER E WITH ACUTE) vs. the decomposed
	// form "e" (U+0065) + U+0301 (COMBINING ACUTE ACCENT).
	precomposed := in.Intern("café")
	decomposed := in.Intern("café")
	if precomposed != decomposed {
		t.Fatalf("expected NFC-equivalent strings to share a StringID, got %d and %d", precomposed, decomposed)
	}
	if got, ok := in.Lookup(precomposed); !ok || got != "café" {
		t.Fatalf("Lookup(%d) = %q, %v, want normalized form", precomposed, got, ok)
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("a.ts", []byte("let x = 1\nlet y = 2\n"))
	start, end := fs.Resolve(Span{File: id, Start: 11, End: 12})
	if start.Line != 2 || start.Col != 2 {
		t.Fatalf("start = %+v, want line 2 col 2", start)
	}
	if end.Line != 2 || end.Col != 3 {
		t.Fatalf("end = %+v, want line 2 col 3", end)
	}
}

func TestFileSetLessOrdersByPosition(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("a.ts", []byte("abcdef"))
	a := Span{File: id, Start: 0, End: 1}
	b := Span{File: id, Start: 2, End: 3}
	if !fs.Less(a, b) || fs.Less(b, a) {
		t.Fatalf("Less ordering broken for %v, %v", a, b)
	}
}

func TestSpanCover(t *testing.T) {
	s1 := Span{File: 1, Start: 5, End: 10}
	s2 := Span{File: 1, Start: 2, End: 7}
	cov := s1.Cover(s2)
	if cov.Start != 2 || cov.End != 10 {
		t.Fatalf("Cover = %+v, want {2,10}", cov)
	}
}
