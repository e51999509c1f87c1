// Package types implements the hash-consed type interner at the core of the
// checker: every distinct structural type gets exactly one stable TypeID, so
// two types are definitionally equal iff their TypeIDs are equal.
package types

import "fmt"

// TypeID uniquely identifies a type inside the interner. Two TypeIDs compare
// equal iff the underlying types are structurally identical (hash-consing),
// never merely isomorphic.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates every variant of type the checker can construct.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Primitives and special top/bottom types.
	KindAny
	KindUnknown
	KindNever
	KindVoid
	KindUndefined
	KindNull
	KindString
	KindNumber
	KindBoolean
	KindBigInt
	KindSymbol
	KindObject // the non-nullable catch-all "object" type

	// Literal types, narrowed to a single inhabitant.
	KindLiteralString
	KindLiteralNumber
	KindLiteralBoolean
	KindLiteralBigInt
	KindUniqueSymbol

	// Structural composites.
	KindArray
	KindReadonlyArray // readonly T[] / ReadonlyArray<T>, distinct from Array for TS2540 checks
	KindTuple
	KindObjectShape
	KindFunction
	KindUnion
	KindIntersection

	// Generics.
	KindTypeParameter
	KindApplication // instantiation of a generic Ref/ObjectShape/Function

	// Deferred / nominal resolution.
	KindRef  // reference to a declared (possibly not-yet-resolved) named type
	KindLazy // thunk resolved on first demand, used while lowering recursive types

	// Type operators (memoized; IndexAccess and KeyOf evaluate at
	// construction when their operand is concrete, otherwise these stay
	// deferred nodes).
	KindIndexAccess
	KindKeyOf
	KindConditional
	KindTemplateLiteral
	KindMapped
	KindTypeQuery // typeof x
	KindThisType
	KindInfer // infer T, valid only within a Conditional's extends clause
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindAny:
		return "any"
	case KindUnknown:
		return "unknown"
	case KindNever:
		return "never"
	case KindVoid:
		return "void"
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindBigInt:
		return "bigint"
	case KindSymbol:
		return "symbol"
	case KindObject:
		return "object"
	case KindLiteralString:
		return "string literal"
	case KindLiteralNumber:
		return "number literal"
	case KindLiteralBoolean:
		return "boolean literal"
	case KindLiteralBigInt:
		return "bigint literal"
	case KindUniqueSymbol:
		return "unique symbol"
	case KindArray:
		return "array"
	case KindReadonlyArray:
		return "readonly array"
	case KindTuple:
		return "tuple"
	case KindObjectShape:
		return "object"
	case KindFunction:
		return "function"
	case KindUnion:
		return "union"
	case KindIntersection:
		return "intersection"
	case KindTypeParameter:
		return "type parameter"
	case KindApplication:
		return "generic instantiation"
	case KindRef:
		return "reference"
	case KindLazy:
		return "lazy"
	case KindIndexAccess:
		return "indexed access"
	case KindKeyOf:
		return "keyof"
	case KindConditional:
		return "conditional"
	case KindTemplateLiteral:
		return "template literal"
	case KindMapped:
		return "mapped"
	case KindTypeQuery:
		return "typeof"
	case KindThisType:
		return "this"
	case KindInfer:
		return "infer"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is the compact, hash-consable descriptor for any type. Payload is an
// index into the per-kind side table that holds the variant's full data;
// kinds with no side table (the primitives) leave it zero.
type Type struct {
	Kind    Kind
	Payload uint32
}

// Builtins stores TypeIDs for the primitive and top/bottom types every
// interner seeds up front, so callers never need to re-intern them.
type Builtins struct {
	Any       TypeID
	Unknown   TypeID
	Never     TypeID
	Void      TypeID
	Undefined TypeID
	Null      TypeID
	String    TypeID
	Number    TypeID
	Boolean   TypeID
	BigInt    TypeID
	Symbol    TypeID
	Object    TypeID
}
