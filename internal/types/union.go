package types

import (
	"fmt"
	"sort"
	"strings"
)

// UnionInfo stores the normalized member list of a union type. Members are
// always: flattened (no member is itself a union), deduplicated (by
// TypeID, which hash-consing already makes an equality test), and sorted by
// TypeID for a canonical dedup key. A union of zero effective members
// collapses to NEVER and is never itself allocated; a union of one member
// returns that member directly. Both collapses happen in Union, not here.
type UnionInfo struct {
	Members []TypeID
}

// Union normalizes members and returns the resulting type: flattening
// nested unions, dropping NEVER (the union identity element), deduplicating
// structurally-identical members, and collapsing to the sole survivor (or to
// NEVER if none remain) instead of allocating a trivial KindUnion.
func (in *Interner) Union(members ...TypeID) TypeID {
	flat := make([]TypeID, 0, len(members))
	in.flattenUnion(members, &flat)

	if containsAny(flat, in.builtins.Any) {
		return in.builtins.Any
	}

	flat = dedupTypeIDs(flat)
	flat = removeTypeID(flat, in.builtins.Never)

	switch len(flat) {
	case 0:
		return in.builtins.Never
	case 1:
		return flat[0]
	}

	sort.Slice(flat, func(i, j int) bool { return flat[i] < flat[j] })
	key := idsKey(flat)
	if id, ok := in.unionIndex[key]; ok {
		return id
	}
	in.unions = append(in.unions, UnionInfo{Members: flat})
	payload, err := safecastIndex(len(in.unions) - 1)
	if err != nil {
		panic(err)
	}
	id := in.appendRaw(Type{Kind: KindUnion, Payload: payload}, nil)
	in.unionIndex[key] = id
	return id
}

func (in *Interner) flattenUnion(ids []TypeID, out *[]TypeID) {
	for _, id := range ids {
		tt, ok := in.Lookup(id)
		if ok && tt.Kind == KindUnion {
			if info, ok := in.UnionInfo(id); ok {
				in.flattenUnion(info.Members, out)
				continue
			}
		}
		*out = append(*out, id)
	}
}

// UnionInfo returns the normalized member list of a union TypeID.
func (in *Interner) UnionInfo(id TypeID) (*UnionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindUnion || int(tt.Payload) >= len(in.unions) {
		return nil, false
	}
	return &in.unions[tt.Payload], true
}

// IntersectionInfo stores the normalized member list of an intersection
// type, mirroring UnionInfo's invariants.
type IntersectionInfo struct {
	Members []TypeID
}

// Intersection normalizes members and returns the resulting type: flattening
// nested intersections, short-circuiting to ANY if ANY is present,
// dropping UNKNOWN (the intersection identity element), deduplicating, and
// collapsing to the sole survivor (or UNKNOWN if none remain).
func (in *Interner) Intersection(members ...TypeID) TypeID {
	flat := make([]TypeID, 0, len(members))
	in.flattenIntersection(members, &flat)

	if containsAny(flat, in.builtins.Any) {
		return in.builtins.Any
	}
	if containsAny(flat, in.builtins.Never) {
		return in.builtins.Never
	}

	flat = dedupTypeIDs(flat)
	flat = removeTypeID(flat, in.builtins.Unknown)

	switch len(flat) {
	case 0:
		return in.builtins.Unknown
	case 1:
		return flat[0]
	}

	sort.Slice(flat, func(i, j int) bool { return flat[i] < flat[j] })
	key := idsKey(flat)
	if id, ok := in.interIndex[key]; ok {
		return id
	}
	in.inters = append(in.inters, IntersectionInfo{Members: flat})
	payload, err := safecastIndex(len(in.inters) - 1)
	if err != nil {
		panic(err)
	}
	id := in.appendRaw(Type{Kind: KindIntersection, Payload: payload}, nil)
	in.interIndex[key] = id
	return id
}

func (in *Interner) flattenIntersection(ids []TypeID, out *[]TypeID) {
	for _, id := range ids {
		tt, ok := in.Lookup(id)
		if ok && tt.Kind == KindIntersection {
			if info, ok := in.IntersectionInfo(id); ok {
				in.flattenIntersection(info.Members, out)
				continue
			}
		}
		*out = append(*out, id)
	}
}

// IntersectionInfo returns the normalized member list of an intersection
// TypeID.
func (in *Interner) IntersectionInfo(id TypeID) (*IntersectionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindIntersection || int(tt.Payload) >= len(in.inters) {
		return nil, false
	}
	return &in.inters[tt.Payload], true
}

func containsAny(ids []TypeID, target TypeID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}

func removeTypeID(ids []TypeID, target TypeID) []TypeID {
	out := ids[:0:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

func dedupTypeIDs(ids []TypeID) []TypeID {
	seen := make(map[TypeID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func idsKey(ids []TypeID) string {
	var b strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&b, "%d;", id)
	}
	return b.String()
}
