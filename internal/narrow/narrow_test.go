package narrow

import (
	"testing"

	"github.com/mohsen1/tsz/internal/defs"
	"github.com/mohsen1/tsz/internal/solver"
	"github.com/mohsen1/tsz/internal/source"
	"github.com/mohsen1/tsz/internal/syntax"
	"github.com/mohsen1/tsz/internal/types"
)

func newTestInterner() (*types.Interner, *solver.Solver) {
	strings := source.NewInterner()
	in := types.NewInterner(strings)
	return in, solver.New(in)
}

func TestTruthyRemovesFalsyMembers(t *testing.T) {
	in, _ := newTestInterner()
	b := in.Builtins()
	zero := in.LiteralNumber(0)
	one := in.LiteralNumber(1)
	u := in.Union(b.String, b.Null, b.Undefined, zero, one)

	truthy, falsy := Truthy(in, u)

	wantTruthy := in.Union(b.String, one)
	wantFalsy := in.Union(b.Null, b.Undefined, zero)
	if truthy != wantTruthy {
		t.Fatalf("truthy branch = %v, want %v", truthy, wantTruthy)
	}
	if falsy != wantFalsy {
		t.Fatalf("falsy branch = %v, want %v", falsy, wantFalsy)
	}
}

func TestTruthyEmptyStringLiteral(t *testing.T) {
	in, _ := newTestInterner()
	empty := in.LiteralString(in.Strings.Intern(""))
	nonEmpty := in.LiteralString(in.Strings.Intern("hi"))
	u := in.Union(empty, nonEmpty)

	truthy, falsy := Truthy(in, u)
	if truthy != nonEmpty {
		t.Fatalf("truthy branch = %v, want %v", truthy, nonEmpty)
	}
	if falsy != empty {
		t.Fatalf("falsy branch = %v, want %v", falsy, empty)
	}
}

func TestTruthyNonLiteralPrimitiveKeepsOnlyTrueBranch(t *testing.T) {
	in, _ := newTestInterner()
	b := in.Builtins()
	truthy, falsy := Truthy(in, b.String)
	if truthy != b.String || falsy != b.Never {
		t.Fatalf("got truthy=%v falsy=%v, want truthy=%v falsy=Never(no falsy member present)", truthy, falsy, b.String)
	}
}

func TestTypeofNarrowsUnion(t *testing.T) {
	in, _ := newTestInterner()
	b := in.Builtins()
	u := in.Union(b.String, b.Number)

	truthy, falsy := Typeof(in, u, TagString)
	if truthy != b.String {
		t.Fatalf("truthy branch = %v, want string", truthy)
	}
	if falsy != b.Number {
		t.Fatalf("falsy branch = %v, want number", falsy)
	}
}

func TestTypeofNullGroupsWithObject(t *testing.T) {
	in, _ := newTestInterner()
	b := in.Builtins()
	u := in.Union(b.Null, b.String)

	truthy, falsy := Typeof(in, u, TagObject)
	if truthy != b.Null {
		t.Fatalf("truthy branch = %v, want null (typeof null === \"object\")", truthy)
	}
	if falsy != b.String {
		t.Fatalf("falsy branch = %v, want string", falsy)
	}
}

func prop(in *types.Interner, name string, t types.TypeID, optional, readonly bool) types.Property {
	return types.Property{Name: in.Strings.Intern(name), Type: t, Optional: optional, Readonly: readonly}
}

func TestInstanceofNarrowsBySubtype(t *testing.T) {
	in, sv := newTestInterner()
	b := in.Builtins()
	dog := in.RegisterObjectShape(types.ObjectInfo{Properties: []types.Property{
		prop(in, "bark", b.Void, false, false),
	}})
	cat := in.RegisterObjectShape(types.ObjectInfo{Properties: []types.Property{
		prop(in, "meow", b.Void, false, false),
	}})
	u := in.Union(dog, cat)

	truthy, falsy := Instanceof(in, sv, u, dog)
	if truthy != dog {
		t.Fatalf("truthy branch = %v, want dog shape %v", truthy, dog)
	}
	if falsy != cat {
		t.Fatalf("falsy branch = %v, want cat shape %v", falsy, cat)
	}
}

func TestPredicateNarrowsAndExcludes(t *testing.T) {
	in, sv := newTestInterner()
	fish := in.RegisterObjectShape(types.ObjectInfo{Properties: []types.Property{
		prop(in, "swim", in.Builtins().Void, false, false),
	}})
	bird := in.RegisterObjectShape(types.ObjectInfo{Properties: []types.Property{
		prop(in, "fly", in.Builtins().Void, false, false),
	}})
	u := in.Union(fish, bird)

	truthy, falsy := Predicate(in, sv, u, fish)
	if truthy != fish {
		t.Fatalf("truthy branch = %v, want fish", truthy)
	}
	if falsy != bird {
		t.Fatalf("falsy branch = %v, want bird (Exclude<original, Fish>)", falsy)
	}
}

func TestDiscriminantNarrowsTaggedUnion(t *testing.T) {
	in, _ := newTestInterner()
	kind := in.Strings.Intern("kind")
	litA := in.LiteralString(in.Strings.Intern("a"))
	litB := in.LiteralString(in.Strings.Intern("b"))
	a := in.RegisterObjectShape(types.ObjectInfo{Properties: []types.Property{
		{Name: kind, Type: litA},
	}})
	bShape := in.RegisterObjectShape(types.ObjectInfo{Properties: []types.Property{
		{Name: kind, Type: litB},
	}})
	u := in.Union(a, bShape)

	lookup := func(shape types.TypeID) (types.TypeID, bool) { return in.Property(shape, kind) }
	truthy, falsy := Discriminant(in, u, func(s types.TypeID) (types.TypeID, bool) {
		p, ok := lookup(s)
		if !ok {
			return 0, false
		}
		return p.Type, true
	}, litA)

	if truthy != a {
		t.Fatalf("truthy branch = %v, want shape a %v", truthy, a)
	}
	if falsy != bShape {
		t.Fatalf("falsy branch = %v, want shape b %v", falsy, bShape)
	}
}

func TestAssignClampsToDeclaredUpperBound(t *testing.T) {
	in, sv := newTestInterner()
	b := in.Builtins()
	declared := in.Union(b.String, b.Number)
	assigned := in.LiteralString(in.Strings.Intern("x"))

	got := Assign(sv, declared, assigned)
	if got != assigned {
		t.Fatalf("Assign = %v, want the assigned literal %v", got, assigned)
	}

	bad := Assign(sv, declared, b.Boolean)
	if bad != declared {
		t.Fatalf("Assign with an incompatible value = %v, want declared fallback %v", bad, declared)
	}
}

func TestFlowStateMergeKeepsAgreeingPlaces(t *testing.T) {
	place := Place{Base: 1, Path: "f:2;"}
	other := Place{Base: 1, Path: "f:3;"}

	a := NewFlowState()
	a.Set(place, 10)
	a.Set(other, 20)

	bState := NewFlowState()
	bState.Set(place, 10)
	bState.Set(other, 99)

	merged := Merge(a, bState)
	if got, ok := merged.Get(place); !ok || got != 10 {
		t.Fatalf("expected place to survive merge with value 10, got %v ok=%v", got, ok)
	}
	if _, ok := merged.Get(other); ok {
		t.Fatal("expected disagreeing place to be dropped by merge")
	}
}

// fixture wires defs/syntax/types/solver together the way the checker
// will, for testing Narrower's expression-driven dispatch.
type fixture struct {
	in    *types.Interner
	sv    *solver.Solver
	table *defs.Table
	exprs *syntax.Exprs
	nw    *Narrower
	scope defs.ScopeID
}

func newFixture() *fixture {
	strings := source.NewInterner()
	in := types.NewInterner(strings)
	sv := solver.New(in)
	table := defs.NewTable(defs.Hints{}, strings)
	exprs := syntax.NewExprs(0)
	scope := table.FileRoot(1)
	return &fixture{in: in, sv: sv, table: table, exprs: exprs, nw: New(in, sv, table, exprs), scope: scope}
}

func (f *fixture) declareVar(name string, t types.TypeID) defs.DefID {
	n := f.table.Strings.Intern(name)
	id, _ := f.table.Declare(f.scope, defs.Def{Name: n, Kind: defs.DeclLet, Scope: f.scope, Type: t})
	return id
}

func TestNarrowerTruthyOnIdentifier(t *testing.T) {
	f := newFixture()
	b := f.in.Builtins()
	declared := f.in.Union(b.String, b.Null, b.Undefined)
	xDef := f.declareVar("x", declared)
	xIdent := f.exprs.Ident(source.Span{}, f.table.Strings.Intern("x"))

	declaredOf := func(p Place) TypeID { return f.table.Defs.Get(p.Base).Type }
	state := NewFlowState()
	trueState, falseState := f.nw.Narrow(f.scope, state, declaredOf, xIdent)

	place, ok := f.nw.PlaceOf(f.scope, xIdent)
	if !ok {
		t.Fatal("expected a Place for a bare identifier")
	}
	if got, ok := trueState.Get(place); !ok || got != b.String {
		t.Fatalf("true branch = %v ok=%v, want string", got, ok)
	}
	wantFalsy := f.in.Union(b.Null, b.Undefined)
	if got, ok := falseState.Get(place); !ok || got != wantFalsy {
		t.Fatalf("false branch = %v ok=%v, want %v", got, ok, wantFalsy)
	}
	_ = xDef
}

func TestNarrowerTypeofEquality(t *testing.T) {
	f := newFixture()
	b := f.in.Builtins()
	declared := f.in.Union(b.String, b.Number)
	f.declareVar("x", declared)
	xIdent := f.exprs.Ident(source.Span{}, f.table.Strings.Intern("x"))
	typeofX := f.exprs.TypeOf(source.Span{}, xIdent)
	tag := f.exprs.StringLiteral(source.Span{}, f.table.Strings.Intern("string"))
	cond := f.exprs.Binary(source.Span{}, "===", typeofX, tag)

	declaredOf := func(p Place) TypeID { return f.table.Defs.Get(p.Base).Type }
	trueState, falseState := f.nw.Narrow(f.scope, NewFlowState(), declaredOf, cond)

	place, _ := f.nw.PlaceOf(f.scope, xIdent)
	if got, ok := trueState.Get(place); !ok || got != b.String {
		t.Fatalf("true branch = %v ok=%v, want string", got, ok)
	}
	if got, ok := falseState.Get(place); !ok || got != b.Number {
		t.Fatalf("false branch = %v ok=%v, want number", got, ok)
	}
}

func TestNarrowerAndComposesBothOperands(t *testing.T) {
	f := newFixture()
	b := f.in.Builtins()
	declaredX := f.in.Union(b.String, b.Null)
	declaredY := f.in.Union(b.Number, b.Undefined)
	f.declareVar("x", declaredX)
	f.declareVar("y", declaredY)
	xIdent := f.exprs.Ident(source.Span{}, f.table.Strings.Intern("x"))
	yIdent := f.exprs.Ident(source.Span{}, f.table.Strings.Intern("y"))
	cond := f.exprs.Binary(source.Span{}, "&&", xIdent, yIdent)

	declaredOf := func(p Place) TypeID { return f.table.Defs.Get(p.Base).Type }
	trueState, _ := f.nw.Narrow(f.scope, NewFlowState(), declaredOf, cond)

	xPlace, _ := f.nw.PlaceOf(f.scope, xIdent)
	yPlace, _ := f.nw.PlaceOf(f.scope, yIdent)
	if got, ok := trueState.Get(xPlace); !ok || got != b.String {
		t.Fatalf("x in true branch = %v ok=%v, want string", got, ok)
	}
	if got, ok := trueState.Get(yPlace); !ok || got != b.Number {
		t.Fatalf("y in true branch = %v ok=%v, want number", got, ok)
	}
}

func TestNarrowerPropertyPathPlace(t *testing.T) {
	f := newFixture()
	f.declareVar("x", f.in.Builtins().Object)
	xIdent := f.exprs.Ident(source.Span{}, f.table.Strings.Intern("x"))
	access := f.exprs.PropertyAccess(source.Span{}, xIdent, f.table.Strings.Intern("kind"))

	place, ok := f.nw.PlaceOf(f.scope, access)
	if !ok {
		t.Fatal("expected a Place for x.kind")
	}
	again, ok := f.nw.PlaceOf(f.scope, access)
	if !ok || again != place {
		t.Fatalf("expected the same property path to canonicalize to the same Place, got %v and %v", place, again)
	}
}
