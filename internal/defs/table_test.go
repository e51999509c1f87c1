package defs

import (
	"testing"

	"github.com/mohsen1/tsz/internal/source"
)

func TestTableFileRootReuse(t *testing.T) {
	table := NewTable(Hints{}, nil)
	file := source.FileID(1)

	first := table.FileRoot(file)
	second := table.FileRoot(file)

	if !first.IsValid() {
		t.Fatal("expected valid scope ID")
	}
	if first != second {
		t.Fatalf("expected FileRoot to reuse existing scope, got %v and %v", first, second)
	}
}

func TestDeclareAndResolve(t *testing.T) {
	table := NewTable(Hints{}, nil)
	file := source.FileID(1)
	root := table.FileRoot(file)

	name := table.Strings.Intern("width")
	id, fresh := table.Declare(root, Def{Name: name, Kind: DeclConst, Scope: root})
	if !fresh {
		t.Fatal("expected fresh declaration")
	}

	inner := table.Scopes.New(ScopeBlock, root, ScopeOwner{SourceFile: file})
	got, ok := table.Resolve(inner, NamespaceValue, name)
	if !ok || got != id {
		t.Fatalf("expected inner scope to resolve %q via parent chain, got %v ok=%v", "width", got, ok)
	}
}

func TestValueAndTypeNamespacesDoNotCollide(t *testing.T) {
	table := NewTable(Hints{}, nil)
	file := source.FileID(1)
	root := table.FileRoot(file)

	name := table.Strings.Intern("Point")
	_, fresh1 := table.Declare(root, Def{Name: name, Kind: DeclInterface, Scope: root})
	_, fresh2 := table.Declare(root, Def{Name: name, Kind: DeclConst, Scope: root})
	if !fresh1 || !fresh2 {
		t.Fatal("expected a type-namespace interface and a value-namespace const of the same name to both succeed")
	}

	if _, ok := table.Resolve(root, NamespaceType, name); !ok {
		t.Fatal("expected type-namespace lookup to find the interface")
	}
	if _, ok := table.Resolve(root, NamespaceValue, name); !ok {
		t.Fatal("expected value-namespace lookup to find the const")
	}
}

func TestMergeableInterfaceRedeclaration(t *testing.T) {
	table := NewTable(Hints{}, nil)
	file := source.FileID(1)
	root := table.FileRoot(file)

	name := table.Strings.Intern("Window")
	first, fresh := table.Declare(root, Def{Name: name, Kind: DeclInterface, Scope: root})
	if !fresh {
		t.Fatal("expected first interface declaration to be fresh")
	}

	second, fresh := table.Declare(root, Def{Name: name, Kind: DeclInterface, Scope: root})
	if fresh {
		t.Fatal("expected the second interface declaration to report the existing DefID")
	}
	if second != first {
		t.Fatalf("expected the duplicate declaration lookup to return the primary def, got %v want %v", second, first)
	}
	if !Mergeable(DeclInterface, DeclInterface) {
		t.Fatal("expected interface/interface to be mergeable")
	}

	table.Merge(first, second)
	group := table.MergedGroup(first)
	if len(group) != 2 {
		t.Fatalf("expected a 2-member merged group, got %d", len(group))
	}
}

func TestResolveQualifiedThroughNamespace(t *testing.T) {
	table := NewTable(Hints{}, nil)
	file := source.FileID(1)
	root := table.FileRoot(file)

	nsName := table.Strings.Intern("Shapes")
	nsScope := table.Scopes.New(ScopeModule, root, ScopeOwner{SourceFile: file, Name: nsName})
	nsID, _ := table.Declare(root, Def{Name: nsName, Kind: DeclNamespace, Scope: root, Inner: nsScope})

	memberName := table.Strings.Intern("Circle")
	memberID, _ := table.Declare(nsScope, Def{Name: memberName, Kind: DeclInterface, Scope: nsScope})

	got, ok := table.ResolveQualified(root, NamespaceType, []source.StringID{nsName, memberName})
	if !ok || got != memberID {
		t.Fatalf("expected qualified lookup Shapes.Circle to resolve to %v, got %v ok=%v", memberID, got, ok)
	}
	_ = nsID
}
