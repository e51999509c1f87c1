package defs

import (
	"github.com/mohsen1/tsz/internal/source"
	"github.com/mohsen1/tsz/internal/types"
)

// DeclKind classifies the syntactic form a declaration took.
type DeclKind uint8

const (
	// DeclInvalid represents an uninitialized or erroneous declaration.
	DeclInvalid DeclKind = iota
	DeclVar
	DeclLet
	DeclConst
	DeclFunction
	DeclClass
	DeclInterface
	DeclTypeAlias
	DeclEnum
	DeclEnumMember
	DeclNamespace
	DeclParameter
	DeclTypeParameter
	DeclImport
	DeclProperty
	DeclMethod
	DeclAccessor
)

func (k DeclKind) String() string {
	switch k {
	case DeclVar:
		return "var"
	case DeclLet:
		return "let"
	case DeclConst:
		return "const"
	case DeclFunction:
		return "function"
	case DeclClass:
		return "class"
	case DeclInterface:
		return "interface"
	case DeclTypeAlias:
		return "type alias"
	case DeclEnum:
		return "enum"
	case DeclEnumMember:
		return "enum member"
	case DeclNamespace:
		return "namespace"
	case DeclParameter:
		return "parameter"
	case DeclTypeParameter:
		return "type parameter"
	case DeclImport:
		return "import"
	case DeclProperty:
		return "property"
	case DeclMethod:
		return "method"
	case DeclAccessor:
		return "accessor"
	default:
		return "invalid"
	}
}

// Namespace reports which of TypeScript's three declaration namespaces
// (value, type and namespace) this kind occupies. A class or enum occupies
// value and type; a namespace declaration occupies all three.
func (k DeclKind) Namespace() Namespace {
	switch k {
	case DeclInterface, DeclTypeAlias, DeclTypeParameter:
		return NamespaceType
	case DeclClass, DeclEnum:
		return NamespaceValue | NamespaceType
	case DeclNamespace:
		return NamespaceValue | NamespaceType | NamespaceNamespace
	default:
		return NamespaceValue
	}
}

// Namespace is a bitset over TypeScript's declaration namespaces: a name can
// be bound in the value namespace, the type namespace, the namespace
// (module) namespace, or any combination, without the bindings colliding.
type Namespace uint8

const (
	NamespaceValue Namespace = 1 << iota
	NamespaceType
	NamespaceNamespace
)

func (n Namespace) Has(bit Namespace) bool { return n&bit != 0 }

// Flags encode misc declaration attributes for quick checks.
type Flags uint16

const (
	// FlagExported indicates the declaration is exported from its file.
	FlagExported Flags = 1 << iota
	// FlagDefault indicates an `export default` declaration.
	FlagDefault
	// FlagAmbient indicates a `declare` declaration with no emitted value.
	FlagAmbient
	// FlagReadonly indicates a readonly property or const enum member.
	FlagReadonly
	FlagAbstract
	FlagStatic
	FlagOptional
	// FlagConstEnum indicates an enum declared with the `const` modifier.
	FlagConstEnum
)

// Strings returns textual flag labels, used in trace details and debug dumps.
func (f Flags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&FlagExported != 0 {
		labels = append(labels, "exported")
	}
	if f&FlagDefault != 0 {
		labels = append(labels, "default")
	}
	if f&FlagAmbient != 0 {
		labels = append(labels, "ambient")
	}
	if f&FlagReadonly != 0 {
		labels = append(labels, "readonly")
	}
	if f&FlagAbstract != 0 {
		labels = append(labels, "abstract")
	}
	if f&FlagStatic != 0 {
		labels = append(labels, "static")
	}
	if f&FlagOptional != 0 {
		labels = append(labels, "optional")
	}
	if f&FlagConstEnum != 0 {
		labels = append(labels, "const-enum")
	}
	return labels
}

// Def describes a single named declaration. Interfaces, namespaces, and
// function overloads can be declared more than once under the same name in
// the same scope; each syntactic occurrence gets its own Def, and Merged
// links the group together (see Table.Merge). The lowerer is responsible
// for folding a merged group's members into one materialized type.
type Def struct {
	Name   source.StringID
	Kind   DeclKind
	Scope  ScopeID
	Span   source.Span
	Flags  Flags
	Type   types.TypeID
	Merged []DefID

	// Inner is the scope opened by this declaration's own body — a
	// namespace's members, a class's statics/instance members, an
	// interface's members — distinct from Scope, which is where the
	// declaration's *name* is bound. Zero for declarations with no body
	// scope (variables, parameters, type aliases).
	Inner ScopeID
}
