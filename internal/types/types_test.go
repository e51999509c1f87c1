package types

import (
	"testing"

	"github.com/mohsen1/tsz/internal/source"
)

func newTestInterner() *Interner {
	return NewInterner(source.NewInterner())
}

func TestPrimitivesAreSingletons(t *testing.T) {
	in := newTestInterner()
	if in.internSimple(Type{Kind: KindString}) != in.Builtins().String {
		t.Fatal("expected re-interning KindString to reuse the seeded builtin")
	}
}

func TestLiteralsHashCons(t *testing.T) {
	in := newTestInterner()
	name := in.Strings.Intern("hello")
	a := in.LiteralString(name)
	b := in.LiteralString(name)
	if a != b {
		t.Fatalf("expected identical LiteralString TypeIDs, got %d and %d", a, b)
	}
	if in.LiteralNumber(1) == in.LiteralNumber(2) {
		t.Fatal("distinct numeric literals must not collide")
	}
}

func TestUniqueSymbolIsNeverDeduped(t *testing.T) {
	in := newTestInterner()
	span := source.Span{}
	a := in.UniqueSymbol(span)
	b := in.UniqueSymbol(span)
	if a == b {
		t.Fatal("unique symbols from distinct declarations must get distinct TypeIDs")
	}
}

func TestUnionFlattensDedupsAndCollapses(t *testing.T) {
	in := newTestInterner()
	str := in.Builtins().String
	num := in.Builtins().Number

	nested := in.Union(str, num)
	flat := in.Union(nested, str)
	if flat != nested {
		t.Fatalf("expected flattening nested union with a duplicate member to reuse %d, got %d", nested, flat)
	}

	single := in.Union(str, in.Builtins().Never)
	if single != str {
		t.Fatalf("expected NEVER to drop out of a union, got TypeID %d instead of %d", single, str)
	}

	anyUnion := in.Union(str, in.Builtins().Any)
	if anyUnion != in.Builtins().Any {
		t.Fatal("expected a union containing ANY to collapse to ANY")
	}

	empty := in.Union()
	if empty != in.Builtins().Never {
		t.Fatal("expected an empty union to collapse to NEVER")
	}
}

func TestIntersectionFlattensAndCollapses(t *testing.T) {
	in := newTestInterner()
	str := in.Builtins().String

	same := in.Intersection(str, str)
	if same != str {
		t.Fatalf("expected self-intersection to collapse to the member, got %d", same)
	}

	withUnknown := in.Intersection(str, in.Builtins().Unknown)
	if withUnknown != str {
		t.Fatal("expected UNKNOWN to drop out of an intersection")
	}

	withNever := in.Intersection(str, in.Builtins().Never)
	if withNever != in.Builtins().Never {
		t.Fatal("expected a NEVER member to collapse the intersection to NEVER")
	}
}

func TestArrayAndTupleHashCons(t *testing.T) {
	in := newTestInterner()
	str := in.Builtins().String
	a1 := in.Array(str)
	a2 := in.Array(str)
	if a1 != a2 {
		t.Fatalf("expected Array(string) to be interned once, got %d and %d", a1, a2)
	}

	t1 := in.RegisterTuple([]TupleElem{{Type: str}, {Type: in.Builtins().Number, Optional: true}})
	t2 := in.RegisterTuple([]TupleElem{{Type: str}, {Type: in.Builtins().Number, Optional: true}})
	if t1 != t2 {
		t.Fatalf("expected structurally identical tuples to share a TypeID, got %d and %d", t1, t2)
	}
}

func TestObjectShapeStructuralDedup(t *testing.T) {
	in := newTestInterner()
	name := in.Strings.Intern("x")
	mk := func() TypeID {
		return in.RegisterObjectShape(ObjectInfo{
			Properties: []Property{{Name: name, Type: in.Builtins().Number}},
		})
	}
	if mk() != mk() {
		t.Fatal("expected structurally identical object shapes to share a TypeID")
	}
}

func TestIndexAccessOnConcreteObjectShape(t *testing.T) {
	in := newTestInterner()
	name := in.Strings.Intern("x")
	shape := in.RegisterObjectShape(ObjectInfo{
		Properties: []Property{{Name: name, Type: in.Builtins().Number}},
	})
	key := in.LiteralString(name)
	got := in.IndexAccess(shape, key)
	if got != in.Builtins().Number {
		t.Fatalf("expected shape[%q] = number, got %s", "x", Label(in, got))
	}
}

func TestKeyOfObjectShapeUnionsPropertyNames(t *testing.T) {
	in := newTestInterner()
	x := in.Strings.Intern("x")
	y := in.Strings.Intern("y")
	shape := in.RegisterObjectShape(ObjectInfo{
		Properties: []Property{
			{Name: x, Type: in.Builtins().Number},
			{Name: y, Type: in.Builtins().String},
		},
	})
	keys := in.KeyOf(shape)
	info, ok := in.UnionInfo(keys)
	if !ok || len(info.Members) != 2 {
		t.Fatalf("expected keyof shape to be a 2-member union, got %s", Label(in, keys))
	}
}

func TestTemplateLiteralFoldsLiteralPlaceholders(t *testing.T) {
	in := newTestInterner()
	prefix := in.Strings.Intern("get")
	name := in.Strings.Intern("Name")
	placeholder := in.LiteralString(name)
	got := in.TemplateLiteral([]TemplateSegment{
		{Literal: in.Strings.MustLookup(prefix)},
		{Placeholder: placeholder},
	})
	text, ok := in.LiteralStringValue(got)
	if !ok {
		t.Fatalf("expected a folded LiteralString, got %s", Label(in, got))
	}
	if s, _ := in.Strings.Lookup(text); s != "getName" {
		t.Fatalf("expected \"getName\", got %q", s)
	}
}

func TestTemplateLiteralDistributesOverUnionPlaceholder(t *testing.T) {
	in := newTestInterner()
	a := in.LiteralString(in.Strings.Intern("a"))
	b := in.LiteralString(in.Strings.Intern("b"))
	placeholder := in.Union(a, b)
	got := in.TemplateLiteral([]TemplateSegment{{Placeholder: placeholder}, {Literal: "!"}})
	info, ok := in.UnionInfo(got)
	if !ok || len(info.Members) != 2 {
		t.Fatalf("expected a 2-member union of folded templates, got %s", Label(in, got))
	}
}

func TestApplicationMemoizesInstantiations(t *testing.T) {
	in := newTestInterner()
	ref := in.Ref(42, nil)
	a1 := in.Application(ref, []TypeID{in.Builtins().String})
	a2 := in.Application(ref, []TypeID{in.Builtins().String})
	if a1 != a2 {
		t.Fatalf("expected identical generic instantiations to share a TypeID, got %d and %d", a1, a2)
	}
	if _, ok := in.FindApplicationInstance(ref, []TypeID{in.Builtins().String}); !ok {
		t.Fatal("expected FindApplicationInstance to find the memoized instantiation")
	}
}

func TestLazyResolvesOnce(t *testing.T) {
	in := newTestInterner()
	placeholder := in.Lazy()
	if _, ok := in.LazyTarget(placeholder); ok {
		t.Fatal("expected an unresolved Lazy to report not-ok")
	}
	in.ResolveLazy(placeholder, in.Builtins().String)
	target, ok := in.LazyTarget(placeholder)
	if !ok || target != in.Builtins().String {
		t.Fatalf("expected Lazy to resolve to string, got %v %v", target, ok)
	}
	if in.Resolve(placeholder) != in.Builtins().String {
		t.Fatal("expected Resolve to follow through a resolved Lazy")
	}
}
