package narrow

import (
	"fmt"
	"strings"

	"github.com/mohsen1/tsz/internal/defs"
	"github.com/mohsen1/tsz/internal/source"
)

// placeKey is a comparable, interned encoding of a Place's property path,
// following the same base-plus-path-key split as a borrow-tracking place
// (base binding, projection path).
type placeKey string

// Place identifies an addressable location the narrower can track a
// refined type for: a variable, or a dotted property path rooted at one
// (`x`, `x.kind`, `x.a.b`). Two Places with the same Base and Path compare
// equal, so a FlowState map can key directly on Place.
type Place struct {
	Base defs.DefID
	Path placeKey
}

// IsValid reports whether the place references a known binding.
func (p Place) IsValid() bool { return p.Base.IsValid() }

// PathTable interns property-access paths into Places, mirroring how a
// borrow table canonicalizes projection chains so two occurrences of the
// same path compare equal without repeated string building at every use
// site.
type PathTable struct {
	paths map[placeKey][]source.StringID
}

// NewPathTable creates an empty PathTable.
func NewPathTable() *PathTable {
	return &PathTable{paths: make(map[placeKey][]source.StringID)}
}

// Canonical interns segments (a property-access chain, outermost first)
// rooted at base and returns the comparable Place.
func (pt *PathTable) Canonical(base defs.DefID, segments []source.StringID) Place {
	if !base.IsValid() {
		return Place{}
	}
	key := pt.internPath(segments)
	if _, exists := pt.paths[key]; !exists {
		if len(segments) > 0 {
			pt.paths[key] = append([]source.StringID(nil), segments...)
		}
	}
	return Place{Base: base, Path: key}
}

func (pt *PathTable) internPath(segments []source.StringID) placeKey {
	if len(segments) == 0 {
		return placeKey("")
	}
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "f:%d;", seg)
	}
	return placeKey(b.String())
}

// Segments returns the property-access chain a Place was canonicalized
// from.
func (pt *PathTable) Segments(p Place) []source.StringID { return pt.paths[p.Path] }

// FlowState is a snapshot of narrowed types at one point in a control-flow
// graph, keyed by Place. A Place absent from the map is unnarrowed: the
// caller falls back to the binding's declared type.
type FlowState struct {
	narrowed map[Place]TypeID
}

// NewFlowState creates an empty FlowState.
func NewFlowState() *FlowState {
	return &FlowState{narrowed: make(map[Place]TypeID)}
}

// Get returns the narrowed type recorded for p, if any.
func (s *FlowState) Get(p Place) (TypeID, bool) {
	t, ok := s.narrowed[p]
	return t, ok
}

// Set records p's narrowed type, overwriting any prior entry.
func (s *FlowState) Set(p Place, t TypeID) {
	s.narrowed[p] = t
}

// Clear removes any narrowing recorded for p, reverting lookups to the
// declared type — used when an assignment or call could have invalidated
// a previously narrowed property path.
func (s *FlowState) Clear(p Place) {
	delete(s.narrowed, p)
}

// Clone returns an independent copy of s, for forking state across a
// branch's two arms.
func (s *FlowState) Clone() *FlowState {
	clone := NewFlowState()
	for p, t := range s.narrowed {
		clone.narrowed[p] = t
	}
	return clone
}

// Merge joins the flow states reaching a control-flow join point (e.g.
// after an if/else with no early return in either arm). A Place keeps its
// narrowed type only if every branch agrees on it exactly; otherwise it
// reverts to unnarrowed, since the branches disagree on what's true there
// and the checker's declared-type fallback is the only type still valid
// on every path.
func Merge(states ...*FlowState) *FlowState {
	merged := NewFlowState()
	if len(states) == 0 {
		return merged
	}
	for p, t := range states[0].narrowed {
		agree := true
		for _, other := range states[1:] {
			ot, ok := other.narrowed[p]
			if !ok || ot != t {
				agree = false
				break
			}
		}
		if agree {
			merged.narrowed[p] = t
		}
	}
	return merged
}
