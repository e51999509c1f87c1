package defs

import "github.com/mohsen1/tsz/internal/source"

// ScopeKind enumerates the supported scope categories.
type ScopeKind uint8

const (
	// ScopeInvalid represents an uninitialized or erroneous scope.
	ScopeInvalid ScopeKind = iota
	// ScopeFile represents a per-file root scope.
	ScopeFile
	// ScopeModule represents a namespace/module body scope.
	ScopeModule
	// ScopeFunction represents a function or method body scope.
	ScopeFunction
	// ScopeClass represents a class body scope (statics and instance members).
	ScopeClass
	// ScopeBlock represents a generic block scope.
	ScopeBlock
	// ScopeGlobal represents the ambient scope holding the primitive type
	// keywords, the implicit ancestor of every file's root scope.
	ScopeGlobal
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "file"
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeClass:
		return "class"
	case ScopeBlock:
		return "block"
	case ScopeGlobal:
		return "global"
	default:
		return "invalid"
	}
}

// ScopeOwner identifies what the scope belongs to, for trace/debug output.
type ScopeOwner struct {
	SourceFile source.FileID
	Name       source.StringID
}

// Scope models a lexical scope with a parent-child hierarchy and one
// name index per namespace, since a value declaration and a type
// declaration of the same name coexist without colliding (spec.md's
// structural type system still honors TypeScript's split namespaces).
type Scope struct {
	Kind       ScopeKind
	Parent     ScopeID
	Owner      ScopeOwner
	Children   []ScopeID
	valueIndex map[source.StringID]DefID
	typeIndex  map[source.StringID]DefID
	nsIndex    map[source.StringID]DefID
	declOrder  []DefID
}

// namespaceBits lists every individual bit Declare/Lookup ever index by,
// in priority order (matters only for the single-bit Lookup case, where
// only the first bit ns.Has is ever true).
var namespaceBits = [3]Namespace{NamespaceValue, NamespaceType, NamespaceNamespace}

func (s *Scope) bucket(bit Namespace) *map[source.StringID]DefID {
	switch bit {
	case NamespaceValue:
		return &s.valueIndex
	case NamespaceType:
		return &s.typeIndex
	default:
		return &s.nsIndex
	}
}

// Declare binds name to id within every namespace bit set in ns — a class
// or namespace declaration occupies more than one bit at once (see
// DeclKind.Namespace), and each bit needs its own binding so a lookup
// restricted to just one of them (e.g. ResolveQualified's NamespaceNamespace
// segment lookup) still finds it. If name is already bound in any of those
// bits the existing DefID is returned along with false, so callers can
// decide whether to merge (interfaces, namespaces, function overloads) or
// report a redeclaration diagnostic.
func (s *Scope) Declare(ns Namespace, name source.StringID, id DefID) (DefID, bool) {
	for _, bit := range namespaceBits {
		if !ns.Has(bit) {
			continue
		}
		if idx := s.bucket(bit); *idx != nil {
			if existing, ok := (*idx)[name]; ok {
				return existing, false
			}
		}
	}
	for _, bit := range namespaceBits {
		if !ns.Has(bit) {
			continue
		}
		idx := s.bucket(bit)
		if *idx == nil {
			*idx = make(map[source.StringID]DefID)
		}
		(*idx)[name] = id
	}
	s.declOrder = append(s.declOrder, id)
	return id, true
}

// Lookup finds name bound directly in this scope's given namespace,
// without walking to the parent. ns is expected to name a single bit (the
// namespace to search); Declare is the one that fans a multi-bit Namespace
// out across buckets.
func (s *Scope) Lookup(ns Namespace, name source.StringID) (DefID, bool) {
	for _, bit := range namespaceBits {
		if !ns.Has(bit) {
			continue
		}
		idx := s.bucket(bit)
		if *idx == nil {
			continue
		}
		if id, ok := (*idx)[name]; ok {
			return id, true
		}
	}
	return NoDefID, false
}

// Declarations returns every def declared directly in this scope, across
// all namespaces, in declaration order.
func (s *Scope) Declarations() []DefID { return s.declOrder }
