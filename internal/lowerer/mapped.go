package lowerer

import (
	"github.com/mohsen1/tsz/internal/solver"
	"github.com/mohsen1/tsz/internal/types"
)

// RealizeMapped resolves a deferred Mapped type node into a concrete shape:
// for each concrete key Source evaluates to, KeyParam is substituted with
// that literal key in Template and the result instantiated once per key
// (spec component 4.4). This is the lowerer's job rather than the
// interner's or solver's: it needs per-key substitution and shape assembly,
// not a subtype judgment or a memoized eager evaluation.
//
// A homomorphic mapped type over an array (`{[K in keyof A]: V}` where A is
// an array type) is handled specially: `keyof Array<T>` evaluates to the
// plain `number` type rather than an enumerable set of literal keys, so the
// result stays an Array of the instantiated element type instead of trying
// to enumerate an infinite index space — preserving the source's array kind
// per spec.md §4.4.
func (l *Lowerer) RealizeMapped(id types.TypeID) types.TypeID {
	info, ok := l.in.MappedInfo(l.in.Resolve(id))
	if !ok {
		return id
	}
	b := l.in.Builtins()
	keySource := l.in.Resolve(info.Source)

	if keySource == b.Number {
		return l.in.Array(l.instantiateTemplate(info, keySource))
	}

	keys := l.literalKeysOf(keySource)
	props := make([]types.Property, 0, len(keys))
	for _, key := range keys {
		name, ok := l.in.LiteralStringValue(key)
		if !ok {
			continue
		}
		prop := types.Property{Name: name, Type: l.instantiateTemplate(info, key)}
		if info.OptionalMod == types.ModifierAdd {
			prop.Optional = true
		}
		if info.ReadonlyMod == types.ModifierAdd {
			prop.Readonly = true
		}
		props = append(props, prop)
	}
	return l.in.RegisterObjectShape(types.ObjectInfo{Properties: props})
}

func (l *Lowerer) instantiateTemplate(info *types.MappedInfo, key types.TypeID) types.TypeID {
	return l.sv.Evaluate(l.sv.Substitute(info.Template, solver.Bindings{info.KeyParam: key}))
}

// literalKeysOf expands a key-position type into its individual literal
// keys. A union distributes member by member; anything else (a bare
// literal, or a key type that failed to resolve to an enumerable set) is
// treated as the sole key.
func (l *Lowerer) literalKeysOf(source types.TypeID) []types.TypeID {
	if union, ok := l.in.UnionInfo(source); ok {
		return append([]types.TypeID(nil), union.Members...)
	}
	return []types.TypeID{source}
}
