package syntax

import "github.com/mohsen1/tsz/internal/source"

// TypeExprKind classifies a type-annotation syntax node.
type TypeExprKind uint8

const (
	TypeExprInvalid TypeExprKind = iota
	TypeExprReference
	TypeExprArray
	TypeExprReadonlyArray
	TypeExprUnion
	TypeExprIntersection
	TypeExprObject
	TypeExprKeyOf
	TypeExprIndexedAccess
	TypeExprTypeQuery
	TypeExprThis
	TypeExprStringLiteral
	TypeExprNumberLiteral
	TypeExprBooleanLiteral
)

func (k TypeExprKind) String() string {
	switch k {
	case TypeExprReference:
		return "reference"
	case TypeExprArray:
		return "array"
	case TypeExprReadonlyArray:
		return "readonly-array"
	case TypeExprUnion:
		return "union"
	case TypeExprIntersection:
		return "intersection"
	case TypeExprObject:
		return "object"
	case TypeExprKeyOf:
		return "keyof"
	case TypeExprIndexedAccess:
		return "indexed-access"
	case TypeExprTypeQuery:
		return "typeof"
	case TypeExprThis:
		return "this"
	case TypeExprStringLiteral:
		return "string-literal"
	case TypeExprNumberLiteral:
		return "number-literal"
	case TypeExprBooleanLiteral:
		return "boolean-literal"
	default:
		return "invalid"
	}
}

// ObjectTypeMember is one property of an object-type literal or interface
// body: `readonly name?: Type`.
type ObjectTypeMember struct {
	Name     source.StringID
	Type     TypeExprID
	Optional bool
	Readonly bool
}

// TypeExpr is a single type-annotation syntax node.
type TypeExpr struct {
	Kind TypeExprKind
	Span source.Span

	// Reference: Path holds a possibly-qualified name (e.g. ["JSX","Element"]);
	// Args holds generic type arguments, if any.
	Path []source.StringID
	Args []TypeExprID

	Elem TypeExprID // Array/ReadonlyArray element type

	Members []TypeExprID // Union/Intersection members

	Properties []ObjectTypeMember // Object

	Operand TypeExprID // KeyOf operand

	Object TypeExprID // IndexedAccess object
	Index  TypeExprID // IndexedAccess index

	QueryName source.StringID // TypeQuery: `typeof name`

	StringValue source.StringID // StringLiteral
	NumberValue float64         // NumberLiteral
	BoolValue   bool            // BooleanLiteral
}

// TypeExprs manages allocation of TypeExpr nodes.
type TypeExprs struct{ Arena *Arena[TypeExpr] }

// NewTypeExprs creates a TypeExprs arena with a capacity hint.
func NewTypeExprs(capHint uint) *TypeExprs { return &TypeExprs{Arena: NewArena[TypeExpr](capHint)} }

func (t *TypeExprs) new(te TypeExpr) TypeExprID { return TypeExprID(t.Arena.Allocate(te)) }

// Get returns the TypeExpr for id, or nil if id is invalid.
func (t *TypeExprs) Get(id TypeExprID) *TypeExpr { return t.Arena.Get(uint32(id)) }

func (t *TypeExprs) Reference(span source.Span, path []source.StringID, args []TypeExprID) TypeExprID {
	return t.new(TypeExpr{Kind: TypeExprReference, Span: span, Path: path, Args: args})
}

func (t *TypeExprs) Array(span source.Span, elem TypeExprID) TypeExprID {
	return t.new(TypeExpr{Kind: TypeExprArray, Span: span, Elem: elem})
}

func (t *TypeExprs) ReadonlyArray(span source.Span, elem TypeExprID) TypeExprID {
	return t.new(TypeExpr{Kind: TypeExprReadonlyArray, Span: span, Elem: elem})
}

func (t *TypeExprs) Union(span source.Span, members []TypeExprID) TypeExprID {
	return t.new(TypeExpr{Kind: TypeExprUnion, Span: span, Members: members})
}

func (t *TypeExprs) Intersection(span source.Span, members []TypeExprID) TypeExprID {
	return t.new(TypeExpr{Kind: TypeExprIntersection, Span: span, Members: members})
}

func (t *TypeExprs) Object(span source.Span, props []ObjectTypeMember) TypeExprID {
	return t.new(TypeExpr{Kind: TypeExprObject, Span: span, Properties: props})
}

func (t *TypeExprs) KeyOf(span source.Span, operand TypeExprID) TypeExprID {
	return t.new(TypeExpr{Kind: TypeExprKeyOf, Span: span, Operand: operand})
}

func (t *TypeExprs) IndexedAccess(span source.Span, object, index TypeExprID) TypeExprID {
	return t.new(TypeExpr{Kind: TypeExprIndexedAccess, Span: span, Object: object, Index: index})
}

func (t *TypeExprs) TypeQuery(span source.Span, name source.StringID) TypeExprID {
	return t.new(TypeExpr{Kind: TypeExprTypeQuery, Span: span, QueryName: name})
}

func (t *TypeExprs) This(span source.Span) TypeExprID {
	return t.new(TypeExpr{Kind: TypeExprThis, Span: span})
}

func (t *TypeExprs) StringLiteral(span source.Span, v source.StringID) TypeExprID {
	return t.new(TypeExpr{Kind: TypeExprStringLiteral, Span: span, StringValue: v})
}

func (t *TypeExprs) NumberLiteral(span source.Span, v float64) TypeExprID {
	return t.new(TypeExpr{Kind: TypeExprNumberLiteral, Span: span, NumberValue: v})
}

func (t *TypeExprs) BooleanLiteral(span source.Span, v bool) TypeExprID {
	return t.new(TypeExpr{Kind: TypeExprBooleanLiteral, Span: span, BoolValue: v})
}
