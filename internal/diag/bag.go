package diag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// Bag holds the diagnostics accumulated by a single check invocation.
type Bag struct {
	items   []*Diagnostic
	maximum uint16
}

// NewBag creates a Bag capped at maximum diagnostics; once full, Add reports
// no more (the cap exists to protect pathological inputs from producing an
// unbounded diagnostic list, never to truncate ordinary programs).
func NewBag(maximum int) *Bag {
	cap16, err := safecast.Conv[uint16](maximum)
	if err != nil {
		panic(fmt.Errorf("diag: bag maximum overflow: %w", err))
	}
	return &Bag{
		items:   make([]*Diagnostic, 0, cap16),
		maximum: cap16,
	}
}

// Add appends d, returning false if the bag's cap has been reached.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil || len(b.items) >= int(b.maximum) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Cap returns the bag's maximum capacity.
func (b *Bag) Cap() uint16 { return b.maximum }

// HasErrors reports whether any diagnostic has severity >= SevError.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// Len returns the number of diagnostics in the bag.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the bag's diagnostics. The caller must not mutate the slice.
func (b *Bag) Items() []*Diagnostic { return b.items }

// Merge appends other's diagnostics, growing the cap if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	total, err := safecast.Conv[uint16](len(b.items) + len(other.items))
	if err != nil {
		panic(fmt.Errorf("diag: bag merge overflow: %w", err))
	}
	if total > b.maximum {
		b.maximum = total
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by source position (file, start, end), with code
// as the stable secondary key for collisions at the same position, per
// spec.md §5's ordering guarantee.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return di.Code < dj.Code
	})
}

// Dedup removes diagnostics that repeat an earlier (Code, Primary span) pair.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	out := b.items[:0:0] //nolint:staticcheck // intentional fresh backing array
	for _, d := range b.items {
		key := fmt.Sprintf("%d:%s", d.Code, d.Primary.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	b.items = out
}

// Filter keeps only diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(*Diagnostic) bool) {
	out := b.items[:0:0] //nolint:staticcheck
	for _, d := range b.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	b.items = out
}
