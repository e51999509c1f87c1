package syntax

import (
	"testing"

	"github.com/mohsen1/tsz/internal/source"
)

func TestBuildReadonlyArrayElementWrite(t *testing.T) {
	// const xs: readonly number[] = [1,2]; xs[0] = 3;
	b := NewBuilder(Hints{}, nil)
	xs := b.Strings.Intern("xs")

	numberRef := b.Types.Reference(source.Span{}, []source.StringID{b.Strings.Intern("number")}, nil)
	roType := b.Types.ReadonlyArray(source.Span{}, numberRef)

	one := b.Exprs.NumberLiteral(source.Span{}, 1)
	two := b.Exprs.NumberLiteral(source.Span{}, 2)
	arr := b.Exprs.ArrayLiteral(source.Span{}, []ExprID{one, two})

	decl := b.Stmts.VarDecl(source.Span{}, VarConst, xs, roType, arr)

	xsIdent := b.Exprs.Ident(source.Span{}, xs)
	zero := b.Exprs.NumberLiteral(source.Span{}, 0)
	elem := b.Exprs.ElementAccess(source.Span{}, xsIdent, zero)
	three := b.Exprs.NumberLiteral(source.Span{}, 3)
	assign := b.Exprs.Assign(source.Span{}, elem, three)
	assignStmt := b.Stmts.ExprStmt(source.Span{}, assign)

	file := b.Files.New(source.Span{}, []StmtID{decl, assignStmt}, true)

	f := b.Files.Get(file)
	if len(f.Body) != 2 {
		t.Fatalf("expected 2 top-level statements, got %d", len(f.Body))
	}

	declStmt := b.Stmts.Get(f.Body[0])
	if declStmt.Kind != StmtVarDecl || declStmt.VarKind != VarConst {
		t.Fatalf("expected a const VarDecl, got %s/%v", declStmt.Kind, declStmt.VarKind)
	}
	roTypeExpr := b.Types.Get(declStmt.TypeAnn)
	if roTypeExpr.Kind != TypeExprReadonlyArray {
		t.Fatalf("expected a readonly array type annotation, got %s", roTypeExpr.Kind)
	}

	assignedStmt := b.Stmts.Get(f.Body[1])
	assignExpr := b.Exprs.Get(assignedStmt.Expr)
	if assignExpr.Kind != ExprAssign {
		t.Fatalf("expected an assignment expression, got %s", assignExpr.Kind)
	}
	target := b.Exprs.Get(assignExpr.Target)
	if target.Kind != ExprElementAccess {
		t.Fatalf("expected the assignment target to be an element access, got %s", target.Kind)
	}
}

func TestBuildCrossNamespaceQualifiedName(t *testing.T) {
	// namespace JSX { export interface Element {} } const e: JSX.Element = {} as any;
	b := NewBuilder(Hints{}, nil)
	jsx := b.Strings.Intern("JSX")
	element := b.Strings.Intern("Element")

	iface := b.Stmts.InterfaceDecl(source.Span{}, element, nil, nil, nil)
	ns := b.Stmts.NamespaceDecl(source.Span{}, jsx, []StmtID{iface})

	qualified := b.Types.Reference(source.Span{}, []source.StringID{jsx, element}, nil)
	anyRef := b.Types.Reference(source.Span{}, []source.StringID{b.Strings.Intern("any")}, nil)
	empty := b.Exprs.ObjectLiteral(source.Span{}, nil)
	asAny := b.Exprs.As(source.Span{}, empty, anyRef)
	decl := b.Stmts.VarDecl(source.Span{}, VarConst, b.Strings.Intern("e"), qualified, asAny)

	file := b.Files.New(source.Span{}, []StmtID{ns, decl}, true)

	f := b.Files.Get(file)
	nsStmt := b.Stmts.Get(f.Body[0])
	if nsStmt.Kind != StmtNamespaceDecl || len(nsStmt.Body) != 1 {
		t.Fatalf("expected a 1-member namespace decl, got %s with %d members", nsStmt.Kind, len(nsStmt.Body))
	}
	qualifiedType := b.Types.Get(b.Stmts.Get(f.Body[1]).TypeAnn)
	if len(qualifiedType.Path) != 2 {
		t.Fatalf("expected a 2-segment qualified reference, got %d segments", len(qualifiedType.Path))
	}
}
