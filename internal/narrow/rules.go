// Package narrow implements flow-sensitive type refinement (spec component
// 4.6): given a variable's current type and a control-flow condition or
// assignment, it computes the narrowed type reachable along the true and
// false edges. It has no opinion on the control-flow graph itself — the
// checker drives traversal and calls into this package at each branch
// point and assignment, threading the resulting FlowState forward.
package narrow

import "github.com/mohsen1/tsz/internal/types"

// Truthy narrows t for a `if (x)`-shaped test: the true branch removes
// null, undefined, the 0 literal, and the "" literal from a union (or from
// t itself, treated as a one-member union); the false branch keeps only
// those falsy members, becoming Never if none were present.
func Truthy(in *types.Interner, t TypeID) (trueType, falseType TypeID) {
	members := membersOf(in, t)
	var truthy, falsy []TypeID
	for _, m := range members {
		if isFalsyLiteral(in, m) {
			falsy = append(falsy, m)
		} else {
			truthy = append(truthy, m)
		}
	}
	return in.Union(truthy...), in.Union(falsy...)
}

func isFalsyLiteral(in *types.Interner, t TypeID) bool {
	b := in.Builtins()
	if t == b.Null || t == b.Undefined {
		return true
	}
	if n, ok := in.LiteralNumberValue(t); ok && n == 0 {
		return true
	}
	if s, ok := in.LiteralStringValue(t); ok {
		if str, _ := in.Strings.Lookup(s); str == "" {
			return true
		}
	}
	return false
}

// TypeofTag maps a `typeof x` runtime tag string to the predicate it tests.
type TypeofTag string

const (
	TagString    TypeofTag = "string"
	TagNumber    TypeofTag = "number"
	TagBoolean   TypeofTag = "boolean"
	TagBigInt    TypeofTag = "bigint"
	TagSymbol    TypeofTag = "symbol"
	TagUndefined TypeofTag = "undefined"
	TagObject    TypeofTag = "object"
	TagFunction  TypeofTag = "function"
)

// Typeof narrows t for a `typeof x === "<tag>"`-shaped guard: the true
// branch keeps only members whose runtime typeof matches tag, the false
// branch keeps the rest.
func Typeof(in *types.Interner, t TypeID, tag TypeofTag) (trueType, falseType TypeID) {
	members := membersOf(in, t)
	var match, rest []TypeID
	for _, m := range members {
		if typeofMatches(in, m, tag) {
			match = append(match, m)
		} else {
			rest = append(rest, m)
		}
	}
	return in.Union(match...), in.Union(rest...)
}

func typeofMatches(in *types.Interner, t TypeID, tag TypeofTag) bool {
	switch in.Kind(t) {
	case types.KindString, types.KindLiteralString:
		return tag == TagString
	case types.KindNumber, types.KindLiteralNumber:
		return tag == TagNumber
	case types.KindBoolean, types.KindLiteralBoolean:
		return tag == TagBoolean
	case types.KindBigInt, types.KindLiteralBigInt:
		return tag == TagBigInt
	case types.KindSymbol, types.KindUniqueSymbol:
		return tag == TagSymbol
	case types.KindUndefined:
		return tag == TagUndefined
	case types.KindFunction:
		return tag == TagFunction
	case types.KindNull, types.KindObject, types.KindObjectShape, types.KindArray,
		types.KindReadonlyArray, types.KindTuple:
		// JavaScript's famous `typeof null === "object"` quirk: null
		// groups with the object tag, not its own.
		return tag == TagObject
	default:
		return false
	}
}

// Instanceof narrows t for an `x instanceof C`-shaped guard against a
// class type classType: the true branch keeps members that are subtypes of
// classType or supertypes of it, the false branch keeps the rest.
func Instanceof(in *types.Interner, sv Solver, t, classType TypeID) (trueType, falseType TypeID) {
	return filterBySubtype(in, sv, t, classType)
}

// Predicate narrows t for a user-defined type guard's `x is T` result: the
// true branch is narrowedTo, the false branch is t with every member
// assignable to narrowedTo excluded (the spec's Exclude<original, T>).
func Predicate(in *types.Interner, sv Solver, t, narrowedTo TypeID) (trueType, falseType TypeID) {
	members := membersOf(in, t)
	var rest []TypeID
	for _, m := range members {
		if !sv.IsSubtype(m, narrowedTo) {
			rest = append(rest, m)
		}
	}
	return narrowedTo, in.Union(rest...)
}

// Discriminant narrows a union t by a literal-equality test on property
// prop (`x.kind === "a"`), e.g. a tagged-union discriminant check: the true
// branch keeps members whose prop type is exactly literal, the false
// branch keeps the rest. A member lacking prop, or whose prop type isn't
// decidably equal or unequal to literal, is kept in both branches — the
// check can't rule it in or out.
func Discriminant(in *types.Interner, t TypeID, prop propertyLookup, literal TypeID) (trueType, falseType TypeID) {
	members := membersOf(in, t)
	var truthy, falsy []TypeID
	for _, m := range members {
		propType, ok := prop(m)
		if !ok {
			truthy = append(truthy, m)
			falsy = append(falsy, m)
			continue
		}
		switch {
		case propType == literal:
			truthy = append(truthy, m)
		case isLiteralKind(in, propType):
			falsy = append(falsy, m)
		default:
			truthy = append(truthy, m)
			falsy = append(falsy, m)
		}
	}
	return in.Union(truthy...), in.Union(falsy...)
}

func isLiteralKind(in *types.Interner, t TypeID) bool {
	switch in.Kind(t) {
	case types.KindLiteralString, types.KindLiteralNumber, types.KindLiteralBoolean, types.KindLiteralBigInt:
		return true
	default:
		return false
	}
}

// Assign computes the flow type following `x = value`: the assigned
// value's type, unless it fails the declared type as an upper bound, in
// which case the flow type falls back to declared (the assignment itself
// is a checker diagnostic; narrowing proceeds as if it hadn't happened).
func Assign(sv Solver, declared, assigned TypeID) TypeID {
	if sv.IsAssignable(declared, assigned) {
		return assigned
	}
	return declared
}

// Solver is the subset of internal/solver.Solver this package needs,
// named here so narrow doesn't import solver's Bindings/Evaluate surface
// it has no use for. IsAssignable(target, source) matches
// internal/solver's own parameter order.
type Solver interface {
	IsSubtype(s, t TypeID) bool
	IsAssignable(target, source TypeID) bool
}

type propertyLookup func(shape TypeID) (TypeID, bool)

// TypeID is a local alias so this file reads without a types. prefix on
// every signature; it is exactly types.TypeID.
type TypeID = types.TypeID

func membersOf(in *types.Interner, t TypeID) []TypeID {
	if union, ok := in.UnionInfo(t); ok {
		return append([]TypeID(nil), union.Members...)
	}
	return []TypeID{t}
}

func filterBySubtype(in *types.Interner, sv Solver, t, target TypeID) (trueType, falseType TypeID) {
	members := membersOf(in, t)
	var match, rest []TypeID
	for _, m := range members {
		if sv.IsSubtype(m, target) || sv.IsSubtype(target, m) {
			match = append(match, m)
		} else {
			rest = append(rest, m)
		}
	}
	return in.Union(match...), in.Union(rest...)
}
