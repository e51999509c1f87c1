package types

import (
	"fmt"
	"strings"

	"github.com/mohsen1/tsz/internal/source"
)

// Variance names how a type parameter's uses vary. TypeParameterInfo carries
// a Variance field, but nothing in the engine sets or reads it, so every
// parameter keeps the zero value, VarianceInvariant.
type Variance uint8

const (
	VarianceInvariant Variance = iota
	VarianceCovariant
	VarianceContravariant
	VarianceBivariant
)

// TypeParameterInfo stores metadata for a declared generic type parameter.
type TypeParameterInfo struct {
	Name       source.StringID
	Owner      uint32 // defs.DefId of the declaring generic construct
	Index      uint32
	Constraint TypeID // NoTypeID if unconstrained
	Default    TypeID // NoTypeID if no default
	Variance   Variance
}

// RegisterTypeParameter allocates a new generic parameter descriptor. Type
// parameters are never structurally deduplicated: each declaration site
// introduces a nominally distinct parameter, even if two parameters share a
// name and constraint.
func (in *Interner) RegisterTypeParameter(info TypeParameterInfo) TypeID {
	in.typeParams = append(in.typeParams, info)
	payload, err := safecastIndex(len(in.typeParams) - 1)
	if err != nil {
		panic(err)
	}
	return in.appendRaw(Type{Kind: KindTypeParameter, Payload: payload}, nil)
}

// TypeParameterInfo returns metadata for a TypeParameter TypeID.
func (in *Interner) TypeParameterInfo(id TypeID) (*TypeParameterInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTypeParameter || int(tt.Payload) >= len(in.typeParams) {
		return nil, false
	}
	return &in.typeParams[tt.Payload], true
}

// ApplicationInfo stores the target and argument list of a generic
// instantiation, e.g. Array<string> or a user interface Box<T> applied to a
// concrete T.
type ApplicationInfo struct {
	Target TypeID // the generic Ref/ObjectShape/Function being instantiated
	Args   []TypeID
}

// Application hash-conses a generic instantiation by (target, args), so that
// repeated instantiations of the same generic with the same arguments at
// different call sites reuse one TypeID (spec's memoized generic-instance
// requirement).
func (in *Interner) Application(target TypeID, args []TypeID) TypeID {
	key := applicationKey(target, args)
	if id, ok := in.appIndex[key]; ok {
		return id
	}
	in.apps = append(in.apps, ApplicationInfo{Target: target, Args: append([]TypeID(nil), args...)})
	payload, err := safecastIndex(len(in.apps) - 1)
	if err != nil {
		panic(err)
	}
	id := in.appendRaw(Type{Kind: KindApplication, Payload: payload}, nil)
	in.appIndex[key] = id
	return id
}

// ApplicationInfo returns the target and arguments of an Application TypeID.
func (in *Interner) ApplicationInfo(id TypeID) (*ApplicationInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindApplication || int(tt.Payload) >= len(in.apps) {
		return nil, false
	}
	return &in.apps[tt.Payload], true
}

// FindApplicationInstance looks up an existing instantiation of target with
// args without allocating one, mirroring the teacher's FindStructInstance
// lookup-before-register pattern.
func (in *Interner) FindApplicationInstance(target TypeID, args []TypeID) (TypeID, bool) {
	key := applicationKey(target, args)
	id, ok := in.appIndex[key]
	return id, ok
}

func applicationKey(target TypeID, args []TypeID) string {
	var b strings.Builder
	fmt.Fprintf(&b, "t%d;", target)
	for _, a := range args {
		fmt.Fprintf(&b, "%d;", a)
	}
	return b.String()
}
