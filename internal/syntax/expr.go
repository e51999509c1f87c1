package syntax

import "github.com/mohsen1/tsz/internal/source"

// ExprKind classifies an expression node.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprNumberLiteral
	ExprStringLiteral
	ExprBooleanLiteral
	ExprObjectLiteral
	ExprArrayLiteral
	ExprPropertyAccess
	ExprElementAccess
	ExprCall
	ExprAssign
	ExprAs
	ExprBinary
	ExprTypeOf
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "ident"
	case ExprNumberLiteral:
		return "number-literal"
	case ExprStringLiteral:
		return "string-literal"
	case ExprBooleanLiteral:
		return "boolean-literal"
	case ExprObjectLiteral:
		return "object-literal"
	case ExprArrayLiteral:
		return "array-literal"
	case ExprPropertyAccess:
		return "property-access"
	case ExprElementAccess:
		return "element-access"
	case ExprCall:
		return "call"
	case ExprAssign:
		return "assign"
	case ExprAs:
		return "as"
	case ExprBinary:
		return "binary"
	case ExprTypeOf:
		return "typeof"
	default:
		return "invalid"
	}
}

// PropertyInit is one `name: value` entry of an object literal.
type PropertyInit struct {
	Name  source.StringID
	Value ExprID
}

// Expr is a single expression node. Fields not relevant to Kind are zero.
// A flat struct (rather than the types package's side-table-per-kind
// split) is deliberate here: syntax nodes aren't hash-consed, so there is
// no structural-equality key to build a side table around.
type Expr struct {
	Kind ExprKind
	Span source.Span

	Name   source.StringID // Ident
	Number float64         // NumberLiteral
	Text   source.StringID // StringLiteral
	Bool   bool            // BooleanLiteral

	Properties []PropertyInit // ObjectLiteral
	Elements   []ExprID       // ArrayLiteral

	Object   ExprID          // PropertyAccess/ElementAccess base
	Property source.StringID // PropertyAccess member name
	Index    ExprID          // ElementAccess index expression

	Callee ExprID   // Call
	Args   []ExprID // Call

	Target ExprID // Assign lhs
	Value  ExprID // Assign rhs

	Operand ExprID     // As expression's operand
	AsType  TypeExprID // As expression's asserted type

	Op          string // Binary operator text, e.g. "+", "===", "instanceof"
	Left, Right ExprID // Binary

	TypeOfOperand ExprID // TypeOf
}

// Exprs manages allocation of Expr nodes.
type Exprs struct{ Arena *Arena[Expr] }

// NewExprs creates an Exprs arena with a capacity hint.
func NewExprs(capHint uint) *Exprs { return &Exprs{Arena: NewArena[Expr](capHint)} }

func (e *Exprs) new(expr Expr) ExprID { return ExprID(e.Arena.Allocate(expr)) }

// Get returns the Expr for id, or nil if id is invalid.
func (e *Exprs) Get(id ExprID) *Expr { return e.Arena.Get(uint32(id)) }

func (e *Exprs) Ident(span source.Span, name source.StringID) ExprID {
	return e.new(Expr{Kind: ExprIdent, Span: span, Name: name})
}

func (e *Exprs) NumberLiteral(span source.Span, v float64) ExprID {
	return e.new(Expr{Kind: ExprNumberLiteral, Span: span, Number: v})
}

func (e *Exprs) StringLiteral(span source.Span, v source.StringID) ExprID {
	return e.new(Expr{Kind: ExprStringLiteral, Span: span, Text: v})
}

func (e *Exprs) BooleanLiteral(span source.Span, v bool) ExprID {
	return e.new(Expr{Kind: ExprBooleanLiteral, Span: span, Bool: v})
}

func (e *Exprs) ObjectLiteral(span source.Span, props []PropertyInit) ExprID {
	return e.new(Expr{Kind: ExprObjectLiteral, Span: span, Properties: props})
}

func (e *Exprs) ArrayLiteral(span source.Span, elems []ExprID) ExprID {
	return e.new(Expr{Kind: ExprArrayLiteral, Span: span, Elements: elems})
}

func (e *Exprs) PropertyAccess(span source.Span, object ExprID, name source.StringID) ExprID {
	return e.new(Expr{Kind: ExprPropertyAccess, Span: span, Object: object, Property: name})
}

func (e *Exprs) ElementAccess(span source.Span, object, index ExprID) ExprID {
	return e.new(Expr{Kind: ExprElementAccess, Span: span, Object: object, Index: index})
}

func (e *Exprs) Call(span source.Span, callee ExprID, args []ExprID) ExprID {
	return e.new(Expr{Kind: ExprCall, Span: span, Callee: callee, Args: args})
}

func (e *Exprs) Assign(span source.Span, target, value ExprID) ExprID {
	return e.new(Expr{Kind: ExprAssign, Span: span, Target: target, Value: value})
}

func (e *Exprs) As(span source.Span, operand ExprID, asType TypeExprID) ExprID {
	return e.new(Expr{Kind: ExprAs, Span: span, Operand: operand, AsType: asType})
}

func (e *Exprs) Binary(span source.Span, op string, left, right ExprID) ExprID {
	return e.new(Expr{Kind: ExprBinary, Span: span, Op: op, Left: left, Right: right})
}

func (e *Exprs) TypeOf(span source.Span, operand ExprID) ExprID {
	return e.new(Expr{Kind: ExprTypeOf, Span: span, TypeOfOperand: operand})
}
