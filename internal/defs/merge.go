package defs

// Mergeable reports whether two declarations of the same name in the same
// namespace are allowed to coexist as one merged group rather than
// conflicting. TypeScript allows this for interfaces (member sets combine),
// namespaces (bodies combine), and functions (overload signatures combine);
// everything else is a redeclaration error.
func Mergeable(a, b DeclKind) bool {
	if a != b {
		return false
	}
	switch a {
	case DeclInterface, DeclNamespace, DeclFunction:
		return true
	default:
		return false
	}
}

// Merge records that duplicate as an additional declaration contributing to
// the group headed by primary — appending duplicate to primary's Merged
// list. The caller is expected to have already checked Mergeable(kind,
// kind) before calling. Folding the group's members into one materialized
// type is the lowerer's job (spec.md's interface-merging and heritage-
// clause ordering rules), not this package's.
func (t *Table) Merge(primary, duplicate DefID) {
	p := t.Defs.Get(primary)
	if p == nil {
		return
	}
	p.Merged = append(p.Merged, duplicate)
}

// MergedGroup returns every DefID contributing to id's declaration group:
// id itself first, followed by whatever Merge has accumulated onto it.
func (t *Table) MergedGroup(id DefID) []DefID {
	def := t.Defs.Get(id)
	if def == nil {
		return nil
	}
	group := make([]DefID, 0, len(def.Merged)+1)
	group = append(group, id)
	group = append(group, def.Merged...)
	return group
}
