package types

import "github.com/mohsen1/tsz/internal/source"

// UniqueSymbolInfo identifies one unique symbol type by the declaration that
// introduced it (spec's unique-symbol identity rule: two such types are
// definitionally equal only if they share a declaration).
type UniqueSymbolInfo struct {
	Decl source.Span
}

// LiteralString returns the singleton type for the string literal value v.
func (in *Interner) LiteralString(v source.StringID) TypeID {
	if id, ok := in.literalStrings[v]; ok {
		return id
	}
	id := in.appendRaw(Type{Kind: KindLiteralString, Payload: uint32(v)}, nil)
	in.literalStrings[v] = id
	return id
}

// LiteralStringValue returns the interned string backing a LiteralString type.
func (in *Interner) LiteralStringValue(id TypeID) (source.StringID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindLiteralString {
		return source.NoStringID, false
	}
	return source.StringID(tt.Payload), true
}

// LiteralNumber returns the singleton type for the numeric literal value v.
//
// NaN is never a valid literal value (it fails self-equality); callers must
// route NaN-producing expressions through the general Number type instead.
func (in *Interner) LiteralNumber(v float64) TypeID {
	if id, ok := in.literalNumbers[v]; ok {
		return id
	}
	in.numberLiterals = append(in.numberLiterals, v)
	payload, err := safecastIndex(len(in.numberLiterals) - 1)
	if err != nil {
		panic(err)
	}
	id := in.appendRaw(Type{Kind: KindLiteralNumber, Payload: payload}, nil)
	in.literalNumbers[v] = id
	return id
}

// LiteralNumberValue returns the numeric value backing a LiteralNumber type.
func (in *Interner) LiteralNumberValue(id TypeID) (float64, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindLiteralNumber || int(tt.Payload) >= len(in.numberLiterals) {
		return 0, false
	}
	return in.numberLiterals[tt.Payload], true
}

// LiteralBoolean returns the singleton type for true or false.
func (in *Interner) LiteralBoolean(v bool) TypeID {
	if id, ok := in.literalBools[v]; ok {
		return id
	}
	payload := uint32(0)
	if v {
		payload = 1
	}
	id := in.appendRaw(Type{Kind: KindLiteralBoolean, Payload: payload}, nil)
	in.literalBools[v] = id
	return id
}

// LiteralBooleanValue returns the boolean value backing a LiteralBoolean type.
func (in *Interner) LiteralBooleanValue(id TypeID) (bool, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindLiteralBoolean {
		return false, false
	}
	return tt.Payload != 0, true
}

// LiteralBigInt returns the singleton type for the bigint literal whose
// canonical decimal text is v.
func (in *Interner) LiteralBigInt(v string) TypeID {
	if id, ok := in.literalBigInts[v]; ok {
		return id
	}
	in.bigIntLiterals = append(in.bigIntLiterals, v)
	payload, err := safecastIndex(len(in.bigIntLiterals) - 1)
	if err != nil {
		panic(err)
	}
	id := in.appendRaw(Type{Kind: KindLiteralBigInt, Payload: payload}, nil)
	in.literalBigInts[v] = id
	return id
}

// LiteralBigIntValue returns the decimal text backing a LiteralBigInt type.
func (in *Interner) LiteralBigIntValue(id TypeID) (string, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindLiteralBigInt || int(tt.Payload) >= len(in.bigIntLiterals) {
		return "", false
	}
	return in.bigIntLiterals[tt.Payload], true
}

// UniqueSymbol allocates a fresh unique-symbol type for the given
// declaration. Each call returns a distinct TypeID: unique symbols are
// nominal, never structurally deduplicated.
func (in *Interner) UniqueSymbol(decl source.Span) TypeID {
	in.uniqueSymbols = append(in.uniqueSymbols, UniqueSymbolInfo{Decl: decl})
	payload, err := safecastIndex(len(in.uniqueSymbols) - 1)
	if err != nil {
		panic(err)
	}
	return in.appendRaw(Type{Kind: KindUniqueSymbol, Payload: payload}, nil)
}

// UniqueSymbolInfo returns the declaration backing a unique-symbol type.
func (in *Interner) UniqueSymbolInfo(id TypeID) (UniqueSymbolInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindUniqueSymbol || int(tt.Payload) >= len(in.uniqueSymbols) {
		return UniqueSymbolInfo{}, false
	}
	return in.uniqueSymbols[tt.Payload], true
}
