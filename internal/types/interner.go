package types

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/mohsen1/tsz/internal/source"
)

// Interner hash-conses every type constructed during a single check
// invocation. It owns the per-kind side tables (objectShapes, unions, ...)
// that composite Type values index into via Payload, plus the memoization
// caches for the eagerly-evaluated type operators (IndexAccess, KeyOf,
// Conditional, TemplateLiteral, Mapped).
type Interner struct {
	types    []Type
	builtins Builtins

	// Strings interns identifier and literal text shared with the source
	// package, so a LiteralString type and the identifier spelled the same
	// way share a StringID.
	Strings *source.Interner

	// structural dedup: simple (no-side-table-content) kinds hash-cons via
	// this map directly on the Type value.
	simpleIndex map[Type]TypeID

	literalStrings map[source.StringID]TypeID
	literalNumbers map[float64]TypeID
	numberLiterals []float64
	literalBools   map[bool]TypeID
	literalBigInts map[string]TypeID
	bigIntLiterals []string
	uniqueSymbols  []UniqueSymbolInfo

	arrays         map[TypeID]TypeID // elem -> Array<elem>
	readonlyArrays map[TypeID]TypeID // elem -> ReadonlyArray<elem>

	tuples      []TupleInfo
	tupleIndex  map[string]TypeID
	objects     []ObjectInfo
	objectIndex map[string]TypeID
	functions   []FunctionInfo
	functionIdx map[string]TypeID
	unions      []UnionInfo
	unionIndex  map[string]TypeID
	inters      []IntersectionInfo
	interIndex  map[string]TypeID

	typeParams []TypeParameterInfo
	apps       []ApplicationInfo
	appIndex   map[string]TypeID

	refs    []RefInfo
	lazies  []LazyInfo
	lazyFns map[TypeID]func() TypeID

	indexAccesses      []IndexAccessInfo
	indexAccessCache   map[[2]TypeID]TypeID
	keyOfs             []KeyOfInfo
	keyOfCache         map[TypeID]TypeID
	conditionals       []ConditionalInfo
	conditionalCache   map[string]TypeID
	templateLiterals   []TemplateLiteralInfo
	templateCache      map[string]TypeID
	mappeds            []MappedInfo
	mappedCache        map[string]TypeID
	typeQueries        []TypeQueryInfo
	infers             []InferInfo
	resolving          map[TypeID]bool
}

// NewInterner constructs an interner seeded with the primitive and
// top/bottom types.
func NewInterner(strings *source.Interner) *Interner {
	in := &Interner{
		Strings:          strings,
		simpleIndex:      make(map[Type]TypeID, 32),
		literalStrings:   make(map[source.StringID]TypeID),
		literalNumbers:   make(map[float64]TypeID),
		literalBools:     make(map[bool]TypeID),
		literalBigInts:   make(map[string]TypeID),
		arrays:           make(map[TypeID]TypeID),
		readonlyArrays:   make(map[TypeID]TypeID),
		tupleIndex:       make(map[string]TypeID),
		objectIndex:      make(map[string]TypeID),
		functionIdx:      make(map[string]TypeID),
		unionIndex:       make(map[string]TypeID),
		interIndex:       make(map[string]TypeID),
		appIndex:         make(map[string]TypeID),
		indexAccessCache: make(map[[2]TypeID]TypeID),
		keyOfCache:       make(map[TypeID]TypeID),
		conditionalCache: make(map[string]TypeID),
		templateCache:    make(map[string]TypeID),
		mappedCache:      make(map[string]TypeID),
		lazyFns:          make(map[TypeID]func() TypeID),
		resolving:        make(map[TypeID]bool),
	}
	// Reserve index 0 in every side table so Payload==0 can mean "invalid".
	in.tuples = append(in.tuples, TupleInfo{})
	in.objects = append(in.objects, ObjectInfo{})
	in.functions = append(in.functions, FunctionInfo{})
	in.unions = append(in.unions, UnionInfo{})
	in.inters = append(in.inters, IntersectionInfo{})
	in.typeParams = append(in.typeParams, TypeParameterInfo{})
	in.apps = append(in.apps, ApplicationInfo{})
	in.refs = append(in.refs, RefInfo{})
	in.lazies = append(in.lazies, LazyInfo{})
	in.indexAccesses = append(in.indexAccesses, IndexAccessInfo{})
	in.keyOfs = append(in.keyOfs, KeyOfInfo{})
	in.conditionals = append(in.conditionals, ConditionalInfo{})
	in.templateLiterals = append(in.templateLiterals, TemplateLiteralInfo{})
	in.mappeds = append(in.mappeds, MappedInfo{})
	in.typeQueries = append(in.typeQueries, TypeQueryInfo{})
	in.infers = append(in.infers, InferInfo{})

	in.builtins.Any = in.internSimple(Type{Kind: KindAny})
	in.builtins.Unknown = in.internSimple(Type{Kind: KindUnknown})
	in.builtins.Never = in.internSimple(Type{Kind: KindNever})
	in.builtins.Void = in.internSimple(Type{Kind: KindVoid})
	in.builtins.Undefined = in.internSimple(Type{Kind: KindUndefined})
	in.builtins.Null = in.internSimple(Type{Kind: KindNull})
	in.builtins.String = in.internSimple(Type{Kind: KindString})
	in.builtins.Number = in.internSimple(Type{Kind: KindNumber})
	in.builtins.Boolean = in.internSimple(Type{Kind: KindBoolean})
	in.builtins.BigInt = in.internSimple(Type{Kind: KindBigInt})
	in.builtins.Symbol = in.internSimple(Type{Kind: KindSymbol})
	in.builtins.Object = in.internSimple(Type{Kind: KindObject})
	return in
}

// Builtins returns the interner's seeded primitive TypeIDs.
func (in *Interner) Builtins() Builtins { return in.builtins }

// internSimple hash-conses a Type with no side-table payload (the
// primitives; composite kinds use their own dedicated Register* entry
// points that key on side-table content instead).
func (in *Interner) internSimple(t Type) TypeID {
	if id, ok := in.simpleIndex[t]; ok {
		return id
	}
	return in.appendRaw(t, func(id TypeID) { in.simpleIndex[t] = id })
}

// appendRaw allocates the next TypeID for t, invoking record to let the
// caller index it for future dedup before returning.
func (in *Interner) appendRaw(t Type, record func(TypeID)) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: type count overflow: %w", err))
	}
	if len(in.types) == 0 {
		// Reserve index 0 for NoTypeID.
		in.types = append(in.types, Type{})
		lenTypes, err = safecast.Conv[uint32](len(in.types))
		if err != nil {
			panic(fmt.Errorf("types: type count overflow: %w", err))
		}
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	if record != nil {
		record(id)
	}
	return id
}

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics if id is not valid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Kind reports id's kind, KindInvalid for an out-of-range or NoTypeID value.
func (in *Interner) Kind(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

// MarkResolving records that id's side-table entry is being materialized and
// must not be re-entered (spec's recursive-interface-materialization guard:
// a Ref/Lazy that observes its own TypeID mid-resolution treats it as
// already-settled rather than recursing forever).
func (in *Interner) MarkResolving(id TypeID) { in.resolving[id] = true }

// UnmarkResolving clears the in-flight marker set by MarkResolving.
func (in *Interner) UnmarkResolving(id TypeID) { delete(in.resolving, id) }

// IsResolving reports whether id is currently being materialized.
func (in *Interner) IsResolving(id TypeID) bool { return in.resolving[id] }

// safecastIndex overflow-checks a slice length before it is stored as a
// Payload index, matching the teacher's pervasive safecast.Conv idiom.
func safecastIndex(n int) (uint32, error) {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0, fmt.Errorf("types: side-table index overflow: %w", err)
	}
	return v, nil
}
