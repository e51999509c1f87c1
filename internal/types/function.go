package types

import (
	"fmt"
	"strings"

	"github.com/mohsen1/tsz/internal/source"
)

// Param describes one function parameter.
type Param struct {
	Name     source.StringID
	Type     TypeID
	Optional bool
	Rest     bool
}

// TypePredicate describes a user-defined type guard's `x is T` return
// annotation: which parameter it narrows, and what it narrows to in the
// true branch (spec component 4.6's narrower reads this to compute the
// false branch as Exclude<original, T>).
type TypePredicate struct {
	ParamIndex int
	Type       TypeID
}

// FunctionInfo stores the signature of a function type. Overloads are
// modeled as a single FunctionInfo whose Overloads field lists the
// alternative signatures tried, in declaration order, before falling back to
// this (the last, most general) signature — matching how the checker
// resolves a call expression against tsc's overload-candidate order.
type FunctionInfo struct {
	TypeParams []TypeID
	Params     []Param
	Return     TypeID
	Overloads  []TypeID // Function TypeIDs, earlier entries preferred
	Predicate  *TypePredicate
}

// RegisterFunction hash-conses a function type by its full signature.
func (in *Interner) RegisterFunction(info FunctionInfo) TypeID {
	key := functionKey(info)
	if id, ok := in.functionIdx[key]; ok {
		return id
	}
	in.functions = append(in.functions, FunctionInfo{
		TypeParams: append([]TypeID(nil), info.TypeParams...),
		Params:     append([]Param(nil), info.Params...),
		Return:     info.Return,
		Overloads:  append([]TypeID(nil), info.Overloads...),
		Predicate:  info.Predicate,
	})
	payload, err := safecastIndex(len(in.functions) - 1)
	if err != nil {
		panic(err)
	}
	id := in.appendRaw(Type{Kind: KindFunction, Payload: payload}, nil)
	in.functionIdx[key] = id
	return id
}

// FunctionInfo returns the signature of a Function TypeID.
func (in *Interner) FunctionInfo(id TypeID) (*FunctionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunction || int(tt.Payload) >= len(in.functions) {
		return nil, false
	}
	return &in.functions[tt.Payload], true
}

func functionKey(info FunctionInfo) string {
	var b strings.Builder
	for _, tp := range info.TypeParams {
		fmt.Fprintf(&b, "tp%d;", tp)
	}
	for _, p := range info.Params {
		fmt.Fprintf(&b, "p%d:%d:%v:%v;", p.Name, p.Type, p.Optional, p.Rest)
	}
	fmt.Fprintf(&b, "r%d;", info.Return)
	for _, o := range info.Overloads {
		fmt.Fprintf(&b, "o%d;", o)
	}
	if info.Predicate != nil {
		fmt.Fprintf(&b, "pred%d:%d;", info.Predicate.ParamIndex, info.Predicate.Type)
	}
	return b.String()
}
