package syntax

import "github.com/mohsen1/tsz/internal/source"

// StmtKind classifies a statement node. TypeScript's grammar treats type
// aliases, interfaces, namespaces, and functions as statements, so they're
// modeled here rather than as a separate top-level-only "item" category.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtExpr
	StmtVarDecl
	StmtBlock
	StmtIf
	StmtReturn
	StmtFunctionDecl
	StmtInterfaceDecl
	StmtTypeAliasDecl
	StmtNamespaceDecl
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "expr"
	case StmtVarDecl:
		return "var-decl"
	case StmtBlock:
		return "block"
	case StmtIf:
		return "if"
	case StmtReturn:
		return "return"
	case StmtFunctionDecl:
		return "function-decl"
	case StmtInterfaceDecl:
		return "interface-decl"
	case StmtTypeAliasDecl:
		return "type-alias-decl"
	case StmtNamespaceDecl:
		return "namespace-decl"
	default:
		return "invalid"
	}
}

// VarKind distinguishes var/let/const declarations.
type VarKind uint8

const (
	VarVar VarKind = iota
	VarLet
	VarConst
)

// Param is a function parameter: `name?: Type`.
type Param struct {
	Name     source.StringID
	Type     TypeExprID
	Optional bool
	Rest     bool
}

// TypeParam is a generic type parameter: `T extends Constraint`.
type TypeParam struct {
	Name       source.StringID
	Constraint TypeExprID
}

// Stmt is a single statement node. Fields not relevant to Kind are zero.
type Stmt struct {
	Kind StmtKind
	Span source.Span

	Expr ExprID // StmtExpr

	VarName source.StringID // VarDecl
	VarKind VarKind          // VarDecl
	TypeAnn TypeExprID       // VarDecl
	Init    ExprID           // VarDecl

	Body []StmtID // Block/FunctionDecl/NamespaceDecl body

	Cond ExprID // If
	Then StmtID // If
	Else StmtID // If (zero if absent)

	Return ExprID // Return (zero if bare `return;`)

	Name       source.StringID // FunctionDecl/InterfaceDecl/TypeAliasDecl/NamespaceDecl
	TypeParams []TypeParam      // FunctionDecl/InterfaceDecl
	Params     []Param          // FunctionDecl
	ReturnType TypeExprID       // FunctionDecl

	Members  []ObjectTypeMember // InterfaceDecl
	Heritage []TypeExprID       // InterfaceDecl: `extends` clause references
	Alias    TypeExprID         // TypeAliasDecl
}

// Stmts manages allocation of Stmt nodes.
type Stmts struct{ Arena *Arena[Stmt] }

// NewStmts creates a Stmts arena with a capacity hint.
func NewStmts(capHint uint) *Stmts { return &Stmts{Arena: NewArena[Stmt](capHint)} }

func (s *Stmts) new(st Stmt) StmtID { return StmtID(s.Arena.Allocate(st)) }

// Get returns the Stmt for id, or nil if id is invalid.
func (s *Stmts) Get(id StmtID) *Stmt { return s.Arena.Get(uint32(id)) }

func (s *Stmts) ExprStmt(span source.Span, expr ExprID) StmtID {
	return s.new(Stmt{Kind: StmtExpr, Span: span, Expr: expr})
}

func (s *Stmts) VarDecl(span source.Span, kind VarKind, name source.StringID, typeAnn TypeExprID, init ExprID) StmtID {
	return s.new(Stmt{Kind: StmtVarDecl, Span: span, VarKind: kind, VarName: name, TypeAnn: typeAnn, Init: init})
}

func (s *Stmts) Block(span source.Span, body []StmtID) StmtID {
	return s.new(Stmt{Kind: StmtBlock, Span: span, Body: body})
}

func (s *Stmts) If(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(Stmt{Kind: StmtIf, Span: span, Cond: cond, Then: then, Else: els})
}

func (s *Stmts) Return(span source.Span, value ExprID) StmtID {
	return s.new(Stmt{Kind: StmtReturn, Span: span, Return: value})
}

func (s *Stmts) FunctionDecl(span source.Span, name source.StringID, typeParams []TypeParam, params []Param, returnType TypeExprID, body []StmtID) StmtID {
	return s.new(Stmt{
		Kind: StmtFunctionDecl, Span: span, Name: name,
		TypeParams: typeParams, Params: params, ReturnType: returnType, Body: body,
	})
}

func (s *Stmts) InterfaceDecl(span source.Span, name source.StringID, typeParams []TypeParam, heritage []TypeExprID, members []ObjectTypeMember) StmtID {
	return s.new(Stmt{Kind: StmtInterfaceDecl, Span: span, Name: name, TypeParams: typeParams, Heritage: heritage, Members: members})
}

func (s *Stmts) TypeAliasDecl(span source.Span, name source.StringID, alias TypeExprID) StmtID {
	return s.new(Stmt{Kind: StmtTypeAliasDecl, Span: span, Name: name, Alias: alias})
}

func (s *Stmts) NamespaceDecl(span source.Span, name source.StringID, body []StmtID) StmtID {
	return s.new(Stmt{Kind: StmtNamespaceDecl, Span: span, Name: name, Body: body})
}
