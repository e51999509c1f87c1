package defs

import "github.com/mohsen1/tsz/internal/source"

// Resolve walks scope and its ancestors looking for name bound in ns,
// returning the nearest enclosing binding (lexical shadowing: an inner
// scope's declaration wins over an outer one of the same name).
func (t *Table) Resolve(scope ScopeID, ns Namespace, name source.StringID) (DefID, bool) {
	for cur := scope; cur.IsValid(); {
		s := t.Scopes.Get(cur)
		if s == nil {
			break
		}
		if id, ok := s.Lookup(ns, name); ok {
			return id, true
		}
		cur = s.Parent
	}
	return NoDefID, false
}

// ResolveQualified resolves a dotted path (e.g. a namespace member access)
// starting from scope. Every segment but the last is looked up in the
// namespace namespace; the last segment is looked up in ns.
func (t *Table) ResolveQualified(scope ScopeID, ns Namespace, path []source.StringID) (DefID, bool) {
	if len(path) == 0 {
		return NoDefID, false
	}
	if len(path) == 1 {
		return t.Resolve(scope, ns, path[0])
	}
	nsID, ok := t.Resolve(scope, NamespaceNamespace, path[0])
	if !ok {
		return NoDefID, false
	}
	for _, seg := range path[1 : len(path)-1] {
		def := t.Defs.Get(nsID)
		if def == nil || !def.Inner.IsValid() {
			return NoDefID, false
		}
		next, ok := t.Scopes.Get(def.Inner).Lookup(NamespaceNamespace, seg)
		if !ok {
			return NoDefID, false
		}
		nsID = next
	}
	def := t.Defs.Get(nsID)
	if def == nil || !def.Inner.IsValid() {
		return NoDefID, false
	}
	last := path[len(path)-1]
	id, ok := t.Scopes.Get(def.Inner).Lookup(ns, last)
	return id, ok
}
