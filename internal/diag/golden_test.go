package diag

import (
	"testing"

	"github.com/mohsen1/tsz/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()

	userFile := fs.Add("testdata/golden/sample.ts", []byte("a\nb\n"))

	diags := []*Diagnostic{
		{
			Severity: SevError,
			Code:     TS2322,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     TS7006,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
	}

	expected := "error TS2322 testdata/golden/sample.ts:1:1 first line second\n" +
		"note TS2322 testdata/golden/sample.ts:2:1 note line\n" +
		"warning TS7006 testdata/golden/sample.ts:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}
