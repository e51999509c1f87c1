package types

import "fmt"

// RefInfo stores the unresolved external symbol identity a Ref type points
// to. DefID is an opaque identity minted by the defs package (a raw uint32
// rather than a concrete defs.DefID, so the types package stays independent
// of defs — defs imports types, not the reverse).
type RefInfo struct {
	DefID uint32
	Args  []TypeID // generic arguments applied directly at the reference site
}

// Ref allocates a reference to a declared named type, before the lowerer
// has resolved it to its underlying structural shape. Each declaration gets
// exactly one Ref (keyed by DefID and Args), so repeated mentions of the
// same name before resolution share a TypeID.
func (in *Interner) Ref(defID uint32, args []TypeID) TypeID {
	if id, ok := in.findRef(defID, args); ok {
		return id
	}
	in.refs = append(in.refs, RefInfo{DefID: defID, Args: append([]TypeID(nil), args...)})
	payload, err := safecastIndex(len(in.refs) - 1)
	if err != nil {
		panic(err)
	}
	return in.appendRaw(Type{Kind: KindRef, Payload: payload}, nil)
}

func (in *Interner) findRef(defID uint32, args []TypeID) (TypeID, bool) {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		if in.types[id].Kind != KindRef {
			continue
		}
		payload := in.types[id].Payload
		if int(payload) >= len(in.refs) {
			continue
		}
		r := in.refs[payload]
		if r.DefID == defID && typeIDsEqual(r.Args, args) {
			return id, true
		}
	}
	return NoTypeID, false
}

// RefInfo returns the declaration identity a Ref type points to.
func (in *Interner) RefInfo(id TypeID) (*RefInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindRef || int(tt.Payload) >= len(in.refs) {
		return nil, false
	}
	return &in.refs[tt.Payload], true
}

// LazyInfo stores the resolved target of a Lazy type once Resolve has run.
type LazyInfo struct {
	Resolved TypeID // NoTypeID until Resolve has been called
}

// Lazy allocates a placeholder TypeID whose underlying type is supplied
// later via ResolveLazy. The lowerer uses this to break reference cycles
// while materializing mutually-recursive interfaces (spec §5): every
// recursive mention gets this same TypeID up front, and ResolveLazy patches
// in the real type once the whole group has been lowered.
func (in *Interner) Lazy() TypeID {
	in.lazies = append(in.lazies, LazyInfo{})
	payload, err := safecastIndex(len(in.lazies) - 1)
	if err != nil {
		panic(err)
	}
	return in.appendRaw(Type{Kind: KindLazy, Payload: payload}, nil)
}

// ResolveLazy patches a Lazy type's target. Calling it more than once on the
// same id is a programmer error (the lowerer resolves each placeholder
// exactly once).
func (in *Interner) ResolveLazy(id, target TypeID) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindLazy || int(tt.Payload) >= len(in.lazies) {
		panic(fmt.Errorf("types: ResolveLazy on non-lazy TypeID %d", id))
	}
	in.lazies[tt.Payload].Resolved = target
}

// LazyTarget returns the resolved target of a Lazy type, or (NoTypeID,
// false) if it has not been resolved yet.
func (in *Interner) LazyTarget(id TypeID) (TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindLazy || int(tt.Payload) >= len(in.lazies) {
		return NoTypeID, false
	}
	resolved := in.lazies[tt.Payload].Resolved
	return resolved, resolved != NoTypeID
}

// Resolve follows Lazy indirection until it reaches a type that is not Lazy
// (spec's composition of Lazy/Ref/Application resolution with narrowing,
// §4.6). Ref and Application are returned unchanged: resolving an
// Application requires substituting type parameters, which is the lowerer's
// job, not a plain pointer-chase.
func (in *Interner) Resolve(id TypeID) TypeID {
	seen := make(map[TypeID]struct{}, 4)
	for {
		if _, ok := seen[id]; ok {
			return id
		}
		seen[id] = struct{}{}
		tt, ok := in.Lookup(id)
		if !ok {
			return id
		}
		switch tt.Kind {
		case KindLazy:
			target, ok := in.LazyTarget(id)
			if !ok {
				return id
			}
			id = target
		default:
			return id
		}
	}
}

func typeIDsEqual(a, b []TypeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
