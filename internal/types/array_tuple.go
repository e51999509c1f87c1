package types

import (
	"fmt"
	"strings"
)

// Array returns the singleton Array<elem> type.
func (in *Interner) Array(elem TypeID) TypeID {
	if id, ok := in.arrays[elem]; ok {
		return id
	}
	id := in.appendRaw(Type{Kind: KindArray, Payload: uint32(elem)}, nil)
	in.arrays[elem] = id
	return id
}

// ReadonlyArray returns the singleton ReadonlyArray<elem> type (`readonly
// T[]`). It shares no TypeID with Array(elem) — the checker's readonly-write
// check (TS2540) depends on the two being structurally distinguishable.
func (in *Interner) ReadonlyArray(elem TypeID) TypeID {
	if id, ok := in.readonlyArrays[elem]; ok {
		return id
	}
	id := in.appendRaw(Type{Kind: KindReadonlyArray, Payload: uint32(elem)}, nil)
	in.readonlyArrays[elem] = id
	return id
}

// ArrayElem returns the element type of an Array or ReadonlyArray TypeID.
func (in *Interner) ArrayElem(id TypeID) (TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || (tt.Kind != KindArray && tt.Kind != KindReadonlyArray) {
		return NoTypeID, false
	}
	return TypeID(tt.Payload), true
}

// IsReadonlyArray reports whether id is a ReadonlyArray<T> (as opposed to a
// plain, writable Array<T>).
func (in *Interner) IsReadonlyArray(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindReadonlyArray
}

// TupleElem describes one position of a tuple type.
type TupleElem struct {
	Type     TypeID
	Optional bool
	Rest     bool // ...T in trailing position
}

// TupleInfo stores the element descriptors for a tuple type.
type TupleInfo struct {
	Elems    []TupleElem
	Readonly bool
}

// RegisterTuple hash-conses a tuple by its element sequence and readonly-ness.
func (in *Interner) RegisterTuple(elems []TupleElem) TypeID {
	return in.registerTuple(elems, false)
}

// RegisterReadonlyTuple hash-conses a `readonly [...]` tuple.
func (in *Interner) RegisterReadonlyTuple(elems []TupleElem) TypeID {
	return in.registerTuple(elems, true)
}

func (in *Interner) registerTuple(elems []TupleElem, readonly bool) TypeID {
	key := tupleKey(elems, readonly)
	if id, ok := in.tupleIndex[key]; ok {
		return id
	}
	in.tuples = append(in.tuples, TupleInfo{Elems: append([]TupleElem(nil), elems...), Readonly: readonly})
	payload, err := safecastIndex(len(in.tuples) - 1)
	if err != nil {
		panic(err)
	}
	id := in.appendRaw(Type{Kind: KindTuple, Payload: payload}, nil)
	in.tupleIndex[key] = id
	return id
}

// TupleInfo returns the element descriptors for a tuple TypeID.
func (in *Interner) TupleInfo(id TypeID) (*TupleInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTuple || int(tt.Payload) >= len(in.tuples) {
		return nil, false
	}
	return &in.tuples[tt.Payload], true
}

func tupleKey(elems []TupleElem, readonly bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ro:%v;", readonly)
	for _, e := range elems {
		fmt.Fprintf(&b, "%d:%v:%v;", e.Type, e.Optional, e.Rest)
	}
	return b.String()
}
