package types

import (
	"fmt"
	"strings"
)

// This file implements the type-level operators (spec component 4.4).
// IndexAccess and KeyOf evaluate eagerly whenever the operand is concrete
// enough to decide without a subtype judgment (a known ObjectShape/Array/
// Tuple; IndexAccess also distributes over a union index, but a union object
// operand is deferred), and are memoized so repeated mentions of the
// same operator application share a TypeID. When the operand is still
// abstract (a TypeParameter, Ref, Application, or another deferred
// operator), a deferred node is hash-consed instead; the solver resolves
// those once enough context (a generic instantiation, a conditional's
// subtype check) is available, since that resolution needs subtyping
// judgment the interner itself must not depend on.

// IndexAccessInfo stores the operands of a deferred T[K] indexed-access type.
type IndexAccessInfo struct {
	Object TypeID
	Index  TypeID
}

// IndexAccess evaluates or defers T[K].
func (in *Interner) IndexAccess(object, index TypeID) TypeID {
	cacheKey := [2]TypeID{object, index}
	if id, ok := in.indexAccessCache[cacheKey]; ok {
		return id
	}
	id := in.evalIndexAccess(object, index)
	in.indexAccessCache[cacheKey] = id
	return id
}

func (in *Interner) evalIndexAccess(object, index TypeID) TypeID {
	object = in.Resolve(object)
	index = in.Resolve(index)

	if idxUnion, ok := in.UnionInfo(index); ok {
		members := make([]TypeID, len(idxUnion.Members))
		for i, m := range idxUnion.Members {
			members[i] = in.IndexAccess(object, m)
		}
		return in.Union(members...)
	}

	objTT, ok := in.Lookup(object)
	if !ok {
		return in.builtins.Any
	}

	switch objTT.Kind {
	case KindObjectShape:
		if name, ok := in.LiteralStringValue(index); ok {
			if prop, ok := in.Property(object, name); ok {
				return prop.Type
			}
			if info, ok := in.ObjectShapeInfo(object); ok && info.StringIndex != nil {
				return info.StringIndex.ValueType
			}
			return in.builtins.Any
		}
		if in.Kind(index) == KindNumber || in.Kind(index) == KindLiteralNumber {
			if info, ok := in.ObjectShapeInfo(object); ok && info.NumberIndex != nil {
				return info.NumberIndex.ValueType
			}
		}
	case KindArray:
		if in.Kind(index) == KindNumber || in.Kind(index) == KindLiteralNumber {
			elem, _ := in.ArrayElem(object)
			return elem
		}
	case KindTuple:
		info, ok := in.TupleInfo(object)
		if !ok {
			return in.builtins.Any
		}
		if n, ok := in.LiteralNumberValue(index); ok {
			i := int(n)
			if i >= 0 && i < len(info.Elems) {
				return info.Elems[i].Type
			}
			return in.builtins.Any
		}
		if in.Kind(index) == KindNumber {
			elemTypes := make([]TypeID, len(info.Elems))
			for i, e := range info.Elems {
				elemTypes[i] = e.Type
			}
			return in.Union(elemTypes...)
		}
	}

	// Abstract operand: defer to the solver.
	in.indexAccesses = append(in.indexAccesses, IndexAccessInfo{Object: object, Index: index})
	payload, err := safecastIndex(len(in.indexAccesses) - 1)
	if err != nil {
		panic(err)
	}
	return in.appendRaw(Type{Kind: KindIndexAccess, Payload: payload}, nil)
}

// IndexAccessInfo returns the operands of a deferred IndexAccess TypeID.
func (in *Interner) IndexAccessInfo(id TypeID) (*IndexAccessInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindIndexAccess || int(tt.Payload) >= len(in.indexAccesses) {
		return nil, false
	}
	return &in.indexAccesses[tt.Payload], true
}

// KeyOfInfo stores the operand of a deferred keyof T type.
type KeyOfInfo struct {
	Object TypeID
}

// KeyOf evaluates or defers keyof T.
func (in *Interner) KeyOf(object TypeID) TypeID {
	if id, ok := in.keyOfCache[object]; ok {
		return id
	}
	id := in.evalKeyOf(object)
	in.keyOfCache[object] = id
	return id
}

func (in *Interner) evalKeyOf(object TypeID) TypeID {
	resolved := in.Resolve(object)
	tt, ok := in.Lookup(resolved)
	if !ok {
		return in.builtins.Never
	}

	switch tt.Kind {
	case KindObjectShape:
		info, ok := in.ObjectShapeInfo(resolved)
		if !ok {
			return in.builtins.Never
		}
		keys := make([]TypeID, 0, len(info.Properties)+2)
		for _, p := range info.Properties {
			keys = append(keys, in.LiteralString(p.Name))
		}
		if info.StringIndex != nil {
			keys = append(keys, in.builtins.String)
		}
		if info.NumberIndex != nil {
			keys = append(keys, in.builtins.Number)
		}
		return in.Union(keys...)
	case KindArray:
		return in.builtins.Number
	case KindTuple:
		info, ok := in.TupleInfo(resolved)
		if !ok {
			return in.builtins.Never
		}
		keys := make([]TypeID, len(info.Elems))
		for i := range info.Elems {
			keys[i] = in.LiteralNumber(float64(i))
		}
		return in.Union(keys...)
	case KindUnion:
		// keyof (A | B) = keyof A & keyof B
		info, _ := in.UnionInfo(resolved)
		members := make([]TypeID, len(info.Members))
		for i, m := range info.Members {
			members[i] = in.KeyOf(m)
		}
		return in.Intersection(members...)
	}

	in.keyOfs = append(in.keyOfs, KeyOfInfo{Object: resolved})
	payload, err := safecastIndex(len(in.keyOfs) - 1)
	if err != nil {
		panic(err)
	}
	return in.appendRaw(Type{Kind: KindKeyOf, Payload: payload}, nil)
}

// KeyOfInfo returns the operand of a deferred KeyOf TypeID.
func (in *Interner) KeyOfInfo(id TypeID) (*KeyOfInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindKeyOf || int(tt.Payload) >= len(in.keyOfs) {
		return nil, false
	}
	return &in.keyOfs[tt.Payload], true
}

// ConditionalInfo stores the four operands of a deferred `Check extends
// Extends ? True : False` type. Resolving it (deciding the branch) requires
// a subtype judgment, so it is always deferred here; internal/solver's
// evaluate.go performs the actual reduction.
type ConditionalInfo struct {
	Check   TypeID
	Extends TypeID
	True    TypeID
	False   TypeID
	// InferParams lists the TypeParameter TypeIDs introduced by `infer`
	// clauses within Extends, in left-to-right occurrence order, so the
	// solver can substitute them into True once inference succeeds.
	InferParams []TypeID
}

// Conditional hash-conses a deferred conditional type node.
func (in *Interner) Conditional(info ConditionalInfo) TypeID {
	key := conditionalKey(info)
	if id, ok := in.conditionalCache[key]; ok {
		return id
	}
	in.conditionals = append(in.conditionals, ConditionalInfo{
		Check:       info.Check,
		Extends:     info.Extends,
		True:        info.True,
		False:       info.False,
		InferParams: append([]TypeID(nil), info.InferParams...),
	})
	payload, err := safecastIndex(len(in.conditionals) - 1)
	if err != nil {
		panic(err)
	}
	id := in.appendRaw(Type{Kind: KindConditional, Payload: payload}, nil)
	in.conditionalCache[key] = id
	return id
}

// ConditionalInfo returns the operands of a Conditional TypeID.
func (in *Interner) ConditionalInfo(id TypeID) (*ConditionalInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindConditional || int(tt.Payload) >= len(in.conditionals) {
		return nil, false
	}
	return &in.conditionals[tt.Payload], true
}

func conditionalKey(info ConditionalInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d:%d:%d:", info.Check, info.Extends, info.True, info.False)
	for _, p := range info.InferParams {
		fmt.Fprintf(&b, "%d;", p)
	}
	return b.String()
}

// TemplateSegment is one piece of a template literal type: either a literal
// text run (Placeholder == NoTypeID) or an interpolated type.
type TemplateSegment struct {
	Literal     string
	Placeholder TypeID
}

// TemplateLiteralInfo stores the segment list of a deferred template
// literal type (kept only when at least one placeholder could not be
// expanded to a concrete literal at construction time).
type TemplateLiteralInfo struct {
	Segments []TemplateSegment
}

// TemplateLiteral evaluates a template literal type, distributing over
// union placeholders and folding literal placeholders into plain text
// eagerly; a placeholder typed as the general string/number/boolean/bigint
// (or anything else non-literal) keeps the node symbolic so the solver's
// subtype check can still pattern-match it positionally.
func (in *Interner) TemplateLiteral(segments []TemplateSegment) TypeID {
	// Distribute over the first union placeholder found, recursively.
	for i, seg := range segments {
		if seg.Placeholder == NoTypeID {
			continue
		}
		if info, ok := in.UnionInfo(in.Resolve(seg.Placeholder)); ok {
			members := make([]TypeID, len(info.Members))
			for j, m := range info.Members {
				branch := append([]TemplateSegment(nil), segments...)
				branch[i] = TemplateSegment{Literal: seg.Literal, Placeholder: m}
				members[j] = in.TemplateLiteral(branch)
			}
			return in.Union(members...)
		}
	}

	// Try folding every placeholder to literal text.
	var folded strings.Builder
	allLiteral := true
	for _, seg := range segments {
		folded.WriteString(seg.Literal)
		if seg.Placeholder == NoTypeID {
			continue
		}
		text, ok := literalText(in, seg.Placeholder)
		if !ok {
			allLiteral = false
			continue
		}
		folded.WriteString(text)
	}
	if allLiteral {
		return in.LiteralString(in.Strings.Intern(folded.String()))
	}

	key := templateKey(segments)
	if id, ok := in.templateCache[key]; ok {
		return id
	}
	in.templateLiterals = append(in.templateLiterals, TemplateLiteralInfo{
		Segments: append([]TemplateSegment(nil), segments...),
	})
	payload, err := safecastIndex(len(in.templateLiterals) - 1)
	if err != nil {
		panic(err)
	}
	id := in.appendRaw(Type{Kind: KindTemplateLiteral, Payload: payload}, nil)
	in.templateCache[key] = id
	return id
}

// TemplateLiteralInfo returns the segment list of a deferred TemplateLiteral
// TypeID.
func (in *Interner) TemplateLiteralInfo(id TypeID) (*TemplateLiteralInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTemplateLiteral || int(tt.Payload) >= len(in.templateLiterals) {
		return nil, false
	}
	return &in.templateLiterals[tt.Payload], true
}

func literalText(in *Interner, id TypeID) (string, bool) {
	if s, ok := in.LiteralStringValue(id); ok {
		text, _ := in.Strings.Lookup(s)
		return text, true
	}
	if n, ok := in.LiteralNumberValue(id); ok {
		return fmt.Sprintf("%g", n), true
	}
	if b, ok := in.LiteralBooleanValue(id); ok {
		return fmt.Sprintf("%t", b), true
	}
	if s, ok := in.LiteralBigIntValue(id); ok {
		return s, true
	}
	return "", false
}

func templateKey(segments []TemplateSegment) string {
	var b strings.Builder
	for _, s := range segments {
		fmt.Fprintf(&b, "%s\x00%d;", s.Literal, s.Placeholder)
	}
	return b.String()
}

// Modifier expresses how a mapped type's `readonly`/`?` modifier behaves
// relative to its source: preserved, added, or removed (the `-readonly`/
// `-?` syntax).
type Modifier uint8

const (
	ModifierPreserve Modifier = iota
	ModifierAdd
	ModifierRemove
)

// MappedInfo stores the operands of a deferred mapped type
// `{ [K in Source]: Template }`. KeyParam is the TypeParameter standing for
// K within Template; the lowerer substitutes it with each concrete key once
// Source resolves to a union of literal keys and rebuilds the result as a
// plain ObjectShape via RegisterObjectShape — mapped types are realized by
// substitution, not by evaluating this node in place.
type MappedInfo struct {
	Source      TypeID
	KeyParam    TypeID
	Template    TypeID
	OptionalMod Modifier
	ReadonlyMod Modifier
}

// Mapped hash-conses a deferred mapped-type node.
func (in *Interner) Mapped(info MappedInfo) TypeID {
	key := fmt.Sprintf("%d:%d:%d:%d:%d", info.Source, info.KeyParam, info.Template, info.OptionalMod, info.ReadonlyMod)
	if id, ok := in.mappedCache[key]; ok {
		return id
	}
	in.mappeds = append(in.mappeds, info)
	payload, err := safecastIndex(len(in.mappeds) - 1)
	if err != nil {
		panic(err)
	}
	id := in.appendRaw(Type{Kind: KindMapped, Payload: payload}, nil)
	in.mappedCache[key] = id
	return id
}

// MappedInfo returns the operands of a deferred Mapped TypeID.
func (in *Interner) MappedInfo(id TypeID) (*MappedInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindMapped || int(tt.Payload) >= len(in.mappeds) {
		return nil, false
	}
	return &in.mappeds[tt.Payload], true
}

// TypeQueryInfo stores the operand of a deferred `typeof x` type.
type TypeQueryInfo struct {
	Symbol uint32 // defs.DefID of the referenced value binding
}

// TypeQuery allocates a typeof-query node. Resolution (looking up the
// binding's declared or inferred type) is the checker's job once the symbol
// table is available.
func (in *Interner) TypeQuery(symbol uint32) TypeID {
	in.typeQueries = append(in.typeQueries, TypeQueryInfo{Symbol: symbol})
	payload, err := safecastIndex(len(in.typeQueries) - 1)
	if err != nil {
		panic(err)
	}
	return in.appendRaw(Type{Kind: KindTypeQuery, Payload: payload}, nil)
}

// TypeQueryInfo returns the operand of a deferred TypeQuery TypeID.
func (in *Interner) TypeQueryInfo(id TypeID) (*TypeQueryInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTypeQuery || int(tt.Payload) >= len(in.typeQueries) {
		return nil, false
	}
	return &in.typeQueries[tt.Payload], true
}

// ThisType returns the singleton `this` type placeholder. Unlike other
// primitives it is not seeded at interner construction because most checks
// never reference it.
func (in *Interner) ThisType() TypeID {
	return in.internSimple(Type{Kind: KindThisType})
}

// InferInfo names an `infer T` placeholder introduced within a Conditional's
// extends clause.
type InferInfo struct {
	Name uint32 // source.StringID of the inferred parameter's name
}

// Infer allocates a fresh `infer T` placeholder. Like unique symbols, each
// call is nominally distinct: two `infer T` clauses in different
// conditionals never share a TypeID even if named identically.
func (in *Interner) Infer(name uint32) TypeID {
	in.infers = append(in.infers, InferInfo{Name: name})
	payload, err := safecastIndex(len(in.infers) - 1)
	if err != nil {
		panic(err)
	}
	return in.appendRaw(Type{Kind: KindInfer, Payload: payload}, nil)
}

// InferInfo returns the name of an Infer TypeID.
func (in *Interner) InferInfo(id TypeID) (*InferInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindInfer || int(tt.Payload) >= len(in.infers) {
		return nil, false
	}
	return &in.infers[tt.Payload], true
}
