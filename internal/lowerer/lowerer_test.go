package lowerer

import (
	"testing"

	"github.com/mohsen1/tsz/internal/defs"
	"github.com/mohsen1/tsz/internal/solver"
	"github.com/mohsen1/tsz/internal/source"
	"github.com/mohsen1/tsz/internal/syntax"
	"github.com/mohsen1/tsz/internal/types"
)

// fixture bundles the arenas a lowerer test needs, mirroring how the
// checker wires these packages together at runtime.
type fixture struct {
	in      *types.Interner
	sv      *solver.Solver
	table   *defs.Table
	texprs  *syntax.TypeExprs
	stmts   *syntax.Stmts
	lowerer *Lowerer
	scope   defs.ScopeID
}

func newFixture() *fixture {
	strings := source.NewInterner()
	in := types.NewInterner(strings)
	sv := solver.New(in)
	table := defs.NewTable(defs.Hints{}, strings)
	texprs := syntax.NewTypeExprs(0)
	stmts := syntax.NewStmts(0)
	l := New(in, sv, table, texprs, stmts)
	scope := table.FileRoot(1)
	return &fixture{in: in, sv: sv, table: table, texprs: texprs, stmts: stmts, lowerer: l, scope: scope}
}

// declare records a syntax statement as the body of a fresh Def and
// registers it with the lowerer, the way the checker's declaration-
// collection pass would.
func (f *fixture) declare(scope defs.ScopeID, name source.StringID, kind defs.DeclKind, stmt syntax.StmtID, inner defs.ScopeID) defs.DefID {
	id, _ := f.table.Declare(scope, defs.Def{Name: name, Kind: kind, Scope: scope, Inner: inner})
	f.lowerer.RegisterDecl(id, stmt)
	return id
}

func TestLowerCrossNamespaceQualifiedName(t *testing.T) {
	// namespace JSX { export interface Element {} } const e: JSX.Element = {} as any;
	f := newFixture()
	jsx := f.table.Strings.Intern("JSX")
	element := f.table.Strings.Intern("Element")

	nsScope := f.table.Scopes.New(defs.ScopeModule, f.scope, defs.ScopeOwner{Name: jsx})
	ifaceStmt := f.stmts.InterfaceDecl(source.Span{}, element, nil, nil, nil)
	_, ok := f.table.Declare(nsScope, defs.Def{Name: element, Kind: defs.DeclInterface, Scope: nsScope})
	if !ok {
		t.Fatal("expected a fresh interface declaration to succeed")
	}
	ifaceID, _ := f.table.Resolve(nsScope, defs.NamespaceType, element)
	f.lowerer.RegisterDecl(ifaceID, ifaceStmt)

	nsStmt := f.stmts.NamespaceDecl(source.Span{}, jsx, nil)
	nsID, ok := f.table.Declare(f.scope, defs.Def{Name: jsx, Kind: defs.DeclNamespace, Scope: f.scope, Inner: nsScope})
	if !ok {
		t.Fatal("expected a fresh namespace declaration to succeed")
	}
	f.lowerer.RegisterDecl(nsID, nsStmt)

	qualified := f.texprs.Reference(source.Span{}, []source.StringID{jsx, element}, nil)
	resolved := f.lowerer.LowerTypeExpr(f.scope, qualified)
	if resolved == f.in.Builtins().Unknown {
		t.Fatal("expected JSX.Element to resolve, got Unknown")
	}
	shape, ok := f.in.ObjectShapeInfo(f.in.Resolve(resolved))
	if !ok {
		t.Fatalf("expected JSX.Element to lower to an object shape, got kind %v", f.in.Kind(f.in.Resolve(resolved)))
	}
	if len(shape.Properties) != 0 {
		t.Fatalf("expected an empty interface, got %d properties", len(shape.Properties))
	}

	// The namespace's own name must still resolve in the value and type
	// namespaces too (DeclNamespace occupies all three bits at once).
	if _, ok := f.table.Resolve(f.scope, defs.NamespaceValue, jsx); !ok {
		t.Fatal("expected JSX to also be bound in the value namespace")
	}
	if _, ok := f.table.Resolve(f.scope, defs.NamespaceType, jsx); !ok {
		t.Fatal("expected JSX to also be bound in the type namespace")
	}
}

func TestLowerSelfRecursiveInterface(t *testing.T) {
	// interface Node { next: Node }
	f := newFixture()
	node := f.table.Strings.Intern("Node")
	next := f.table.Strings.Intern("next")

	selfRef := f.texprs.Reference(source.Span{}, []source.StringID{node}, nil)
	members := []syntax.ObjectTypeMember{{Name: next, Type: selfRef}}
	stmt := f.stmts.InterfaceDecl(source.Span{}, node, nil, nil, members)

	id := f.declare(f.scope, node, defs.DeclInterface, stmt, defs.NoScopeID)

	resolved := f.lowerer.LowerDecl(id)
	shape, ok := f.in.ObjectShapeInfo(f.in.Resolve(resolved))
	if !ok {
		t.Fatalf("expected Node to lower to an object shape, got kind %v", f.in.Kind(f.in.Resolve(resolved)))
	}
	if len(shape.Properties) != 1 || shape.Properties[0].Name != next {
		t.Fatalf("expected a single 'next' property, got %+v", shape.Properties)
	}
	// The recursive reference inside next's own type must have resolved to
	// the same lazy placeholder Node itself lowers to, not Unknown.
	if shape.Properties[0].Type != resolved {
		t.Fatalf("expected next's type to be the same Lazy placeholder as Node, got %d vs %d", shape.Properties[0].Type, resolved)
	}
}

func TestLowerInterfaceMerging(t *testing.T) {
	// interface Box { a: string }
	// interface Box { b: number }
	f := newFixture()
	box := f.table.Strings.Intern("Box")
	a := f.table.Strings.Intern("a")
	b := f.table.Strings.Intern("b")

	stmt1 := f.stmts.InterfaceDecl(source.Span{}, box, nil, nil, []syntax.ObjectTypeMember{
		{Name: a, Type: f.texprs.Reference(source.Span{}, []source.StringID{f.table.Strings.Intern("string")}, nil)},
	})
	id1 := f.declare(f.scope, box, defs.DeclInterface, stmt1, defs.NoScopeID)

	stmt2 := f.stmts.InterfaceDecl(source.Span{}, box, nil, nil, []syntax.ObjectTypeMember{
		{Name: b, Type: f.texprs.Reference(source.Span{}, []source.StringID{f.table.Strings.Intern("number")}, nil)},
	})
	id2Def := f.table.Defs.New(defs.Def{Name: box, Kind: defs.DeclInterface, Scope: f.scope})
	f.lowerer.RegisterDecl(id2Def, stmt2)
	if !defs.Mergeable(defs.DeclInterface, defs.DeclInterface) {
		t.Fatal("expected interfaces to be mergeable")
	}
	f.table.Merge(id1, id2Def)

	resolved := f.lowerer.LowerDecl(id1)
	shape, ok := f.in.ObjectShapeInfo(f.in.Resolve(resolved))
	if !ok {
		t.Fatalf("expected Box to lower to an object shape, got kind %v", f.in.Kind(f.in.Resolve(resolved)))
	}
	if len(shape.Properties) != 2 {
		t.Fatalf("expected the merged group's 2 properties, got %d", len(shape.Properties))
	}
}

func TestLowerHeritageTwoPhaseOrdering(t *testing.T) {
	// interface Container<T> { value: T }
	// interface Box<T> extends Container<T> { label: string }
	f := newFixture()
	container := f.table.Strings.Intern("Container")
	box := f.table.Strings.Intern("Box")
	tName := f.table.Strings.Intern("T")
	value := f.table.Strings.Intern("value")
	label := f.table.Strings.Intern("label")

	tRefInContainer := f.texprs.Reference(source.Span{}, []source.StringID{tName}, nil)
	containerStmt := f.stmts.InterfaceDecl(source.Span{}, container, []syntax.TypeParam{{Name: tName}},
		nil, []syntax.ObjectTypeMember{{Name: value, Type: tRefInContainer}})
	containerScope := f.table.Scopes.New(defs.ScopeBlock, f.scope, defs.ScopeOwner{Name: container})
	containerID := f.declare(f.scope, container, defs.DeclInterface, containerStmt, containerScope)

	tRefInBox := f.texprs.Reference(source.Span{}, []source.StringID{tName}, nil)
	heritage := f.texprs.Reference(source.Span{}, []source.StringID{container}, []syntax.TypeExprID{tRefInBox})
	boxStmt := f.stmts.InterfaceDecl(source.Span{}, box, []syntax.TypeParam{{Name: tName}},
		[]syntax.TypeExprID{heritage}, []syntax.ObjectTypeMember{
			{Name: label, Type: f.texprs.Reference(source.Span{}, []source.StringID{f.table.Strings.Intern("string")}, nil)},
		})
	boxScope := f.table.Scopes.New(defs.ScopeBlock, f.scope, defs.ScopeOwner{Name: box})
	boxID := f.declare(f.scope, box, defs.DeclInterface, boxStmt, boxScope)
	_ = containerID

	resolved := f.lowerer.LowerDecl(boxID)
	shape, ok := f.in.ObjectShapeInfo(f.in.Resolve(resolved))
	if !ok {
		t.Fatalf("expected Box<T> to lower to an object shape, got kind %v", f.in.Kind(f.in.Resolve(resolved)))
	}
	names := map[source.StringID]bool{}
	for _, p := range shape.Properties {
		names[p.Name] = true
	}
	if !names[label] {
		t.Fatal("expected Box's own 'label' property to survive")
	}
	if !names[value] {
		t.Fatal("expected Container's 'value' property to be folded in via heritage")
	}
}

func TestRealizeMappedHomomorphicArray(t *testing.T) {
	// type Doubled<A extends number[]> = { [K in keyof A]: A[K] }
	// realized directly over number[] (A bound to number[]).
	f := newFixture()
	numberArray := f.in.Array(f.in.Builtins().Number)

	keyParam := f.in.RegisterTypeParameter(types.TypeParameterInfo{Name: f.table.Strings.Intern("K")})
	template := f.in.IndexAccess(numberArray, keyParam)
	mapped := f.in.Mapped(types.MappedInfo{
		Source:   f.in.KeyOf(numberArray),
		KeyParam: keyParam,
		Template: template,
	})

	realized := f.lowerer.RealizeMapped(mapped)
	if !f.in.IsReadonlyArray(realized) && f.in.Kind(realized) != types.KindArray {
		t.Fatalf("expected the homomorphic mapped type over an array to stay an array kind, got %v", f.in.Kind(realized))
	}
	elem, ok := f.in.ArrayElem(realized)
	if !ok || elem != f.in.Builtins().Number {
		t.Fatalf("expected the realized array's element to be number, got %d (ok=%v)", elem, ok)
	}
}

func TestRealizeMappedObjectEnumeration(t *testing.T) {
	// type Flags = { [K in "a" | "b"]: boolean }
	f := newFixture()
	aKey := f.in.LiteralString(f.table.Strings.Intern("a"))
	bKey := f.in.LiteralString(f.table.Strings.Intern("b"))
	keys := f.in.Union(aKey, bKey)

	keyParam := f.in.RegisterTypeParameter(types.TypeParameterInfo{Name: f.table.Strings.Intern("K")})
	mapped := f.in.Mapped(types.MappedInfo{
		Source:      keys,
		KeyParam:    keyParam,
		Template:    f.in.Builtins().Boolean,
		OptionalMod: types.ModifierAdd,
	})

	realized := f.lowerer.RealizeMapped(mapped)
	shape, ok := f.in.ObjectShapeInfo(realized)
	if !ok {
		t.Fatalf("expected the enumerated mapped type to realize to an object shape, got kind %v", f.in.Kind(realized))
	}
	if len(shape.Properties) != 2 {
		t.Fatalf("expected 2 realized properties, got %d", len(shape.Properties))
	}
	for _, p := range shape.Properties {
		if !p.Optional {
			t.Fatalf("expected every property to carry the mapped type's optional modifier, got %+v", p)
		}
		if p.Type != f.in.Builtins().Boolean {
			t.Fatalf("expected every property's type to be boolean, got %d", p.Type)
		}
	}
}
