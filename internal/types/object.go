package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mohsen1/tsz/internal/source"
)

// Property describes one member of an object shape.
type Property struct {
	Name     source.StringID
	Type     TypeID
	Optional bool
	Readonly bool
}

// IndexSignature describes a string or number index signature, e.g.
// `[key: string]: T`.
type IndexSignature struct {
	ValueType TypeID
	Readonly  bool
}

// ObjectInfo stores the structural content of an object-shape type: the
// interface/object-literal model the checker assigns and narrows against.
type ObjectInfo struct {
	Properties     []Property
	StringIndex    *IndexSignature
	NumberIndex    *IndexSignature
	CallSignatures []TypeID // Function TypeIDs
}

// RegisterObjectShape hash-conses an object shape by its structural content:
// two shapes with identical (sorted) properties and index signatures share a
// TypeID, per spec's structural-equality requirement.
func (in *Interner) RegisterObjectShape(info ObjectInfo) TypeID {
	props := append([]Property(nil), info.Properties...)
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
	key := objectShapeKey(props, info.StringIndex, info.NumberIndex, info.CallSignatures)
	if id, ok := in.objectIndex[key]; ok {
		return id
	}
	in.objects = append(in.objects, ObjectInfo{
		Properties:     props,
		StringIndex:    cloneIndexSig(info.StringIndex),
		NumberIndex:    cloneIndexSig(info.NumberIndex),
		CallSignatures: append([]TypeID(nil), info.CallSignatures...),
	})
	payload, err := safecastIndex(len(in.objects) - 1)
	if err != nil {
		panic(err)
	}
	id := in.appendRaw(Type{Kind: KindObjectShape, Payload: payload}, nil)
	in.objectIndex[key] = id
	return id
}

// ObjectShapeInfo returns the structural content of an object-shape TypeID.
func (in *Interner) ObjectShapeInfo(id TypeID) (*ObjectInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindObjectShape || int(tt.Payload) >= len(in.objects) {
		return nil, false
	}
	return &in.objects[tt.Payload], true
}

// Property looks up a named property among the shape's declared properties;
// index signatures are not consulted (the caller decides whether to consult
// the index signature separately).
func (in *Interner) Property(id TypeID, name source.StringID) (Property, bool) {
	info, ok := in.ObjectShapeInfo(id)
	if !ok {
		return Property{}, false
	}
	for _, p := range info.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

func cloneIndexSig(s *IndexSignature) *IndexSignature {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func objectShapeKey(props []Property, strIdx, numIdx *IndexSignature, calls []TypeID) string {
	var b strings.Builder
	for _, p := range props {
		fmt.Fprintf(&b, "p%d:%d:%v:%v;", p.Name, p.Type, p.Optional, p.Readonly)
	}
	if strIdx != nil {
		fmt.Fprintf(&b, "si:%d:%v;", strIdx.ValueType, strIdx.Readonly)
	}
	if numIdx != nil {
		fmt.Fprintf(&b, "ni:%d:%v;", numIdx.ValueType, numIdx.Readonly)
	}
	for _, c := range calls {
		fmt.Fprintf(&b, "c%d;", c)
	}
	return b.String()
}
