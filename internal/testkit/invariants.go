// Package testkit provides shared invariant checks and a concurrent fixture
// runner used by the package test suites across types, solver, narrow,
// checker and engine.
package testkit

import (
	"fmt"

	"github.com/mohsen1/tsz/internal/diag"
	"github.com/mohsen1/tsz/internal/types"
)

// CheckUnionNormalized verifies the structural invariants a union TypeID
// must satisfy: no member is itself a union (fully flattened), no member
// appears twice, and a union is never allocated for zero or one effective
// members (those collapse to NEVER/the sole member in the interner itself).
func CheckUnionNormalized(in *types.Interner, id types.TypeID) error {
	info, ok := in.UnionInfo(id)
	if !ok {
		return fmt.Errorf("testkit: %d is not a union", id)
	}
	if len(info.Members) < 2 {
		return fmt.Errorf("testkit: union %d has %d members, want >= 2 (should have collapsed)", id, len(info.Members))
	}
	seen := make(map[types.TypeID]struct{}, len(info.Members))
	for _, m := range info.Members {
		if _, ok := in.UnionInfo(m); ok {
			return fmt.Errorf("testkit: union %d contains an unflattened nested union member %d", id, m)
		}
		if _, dup := seen[m]; dup {
			return fmt.Errorf("testkit: union %d contains duplicate member %d", id, m)
		}
		seen[m] = struct{}{}
	}
	return nil
}

// CheckIntersectionNormalized mirrors CheckUnionNormalized for intersections.
func CheckIntersectionNormalized(in *types.Interner, id types.TypeID) error {
	info, ok := in.IntersectionInfo(id)
	if !ok {
		return fmt.Errorf("testkit: %d is not an intersection", id)
	}
	if len(info.Members) < 2 {
		return fmt.Errorf("testkit: intersection %d has %d members, want >= 2 (should have collapsed)", id, len(info.Members))
	}
	seen := make(map[types.TypeID]struct{}, len(info.Members))
	for _, m := range info.Members {
		if _, ok := in.IntersectionInfo(m); ok {
			return fmt.Errorf("testkit: intersection %d contains an unflattened nested intersection member %d", id, m)
		}
		if _, dup := seen[m]; dup {
			return fmt.Errorf("testkit: intersection %d contains duplicate member %d", id, m)
		}
		seen[m] = struct{}{}
	}
	return nil
}

// CheckDiagnosticsOrdered verifies a Bag's contents satisfy the ordering
// guarantee from spec.md §5: non-decreasing by (file, start, end), with code
// breaking ties within an identical span.
func CheckDiagnosticsOrdered(items []*diag.Diagnostic) error {
	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1], items[i]
		if prev.Primary.File != cur.Primary.File {
			if prev.Primary.File < cur.Primary.File {
				continue
			}
			return fmt.Errorf("testkit: diagnostics out of order at index %d: file %d appears after file %d", i, cur.Primary.File, prev.Primary.File)
		}
		if prev.Primary.Start != cur.Primary.Start {
			if prev.Primary.Start < cur.Primary.Start {
				continue
			}
			return fmt.Errorf("testkit: diagnostics out of order at index %d: start %d appears after start %d", i, cur.Primary.Start, prev.Primary.Start)
		}
		if prev.Primary.End != cur.Primary.End {
			if prev.Primary.End < cur.Primary.End {
				continue
			}
			return fmt.Errorf("testkit: diagnostics out of order at index %d: end %d appears after end %d", i, cur.Primary.End, prev.Primary.End)
		}
		if prev.Code > cur.Code {
			return fmt.Errorf("testkit: diagnostics out of order at index %d: code %s appears after code %s", i, cur.Code, prev.Code)
		}
	}
	return nil
}
