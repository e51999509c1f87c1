package testkit

import (
	"fmt"
	"testing"

	"github.com/mohsen1/tsz/internal/diag"
	"github.com/mohsen1/tsz/internal/syntax"
	"github.com/mohsen1/tsz/internal/types"
)

// CheckTypeMapInvariants verifies every entry of a checker's TypeMap names a
// type actually interned in in — a checker that leaves an expression mapped
// to a stale or out-of-range TypeID is a contract violation the same way an
// un-interned child id is (spec.md §7).
func CheckTypeMapInvariants(in *types.Interner, typeMap map[syntax.ExprID]types.TypeID) error {
	for id, t := range typeMap {
		if t == types.NoTypeID {
			return fmt.Errorf("testkit: expression %d has no recorded type", id)
		}
		if _, ok := in.Lookup(t); !ok {
			return fmt.Errorf("testkit: expression %d maps to unknown type %d", id, t)
		}
	}
	return nil
}

// AssertDiagnostics fails t unless got's codes, in order, equal want exactly.
func AssertDiagnostics(t *testing.T, got []*diag.Diagnostic, want []diag.Code) {
	t.Helper()
	gotCodes := make([]diag.Code, len(got))
	for i, d := range got {
		gotCodes[i] = d.Code
	}
	if len(gotCodes) != len(want) {
		t.Fatalf("diagnostics: got %v, want %v", gotCodes, want)
		return
	}
	for i := range want {
		if gotCodes[i] != want[i] {
			t.Fatalf("diagnostics[%d] = %s, want %s (full got=%v want=%v)", i, gotCodes[i], want[i], gotCodes, want)
		}
	}
}
