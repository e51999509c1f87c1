package source

import (
	"slices"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// StringID identifies an interned string (identifier or literal content).
type StringID uint32

// NoStringID marks the absence of a string.
const NoStringID StringID = 0

// Interner hash-conses strings to stable IDs. Content is first normalized to
// Unicode NFC so that two byte-distinct but canonically-equivalent spellings
// of a string literal (e.g. a precomposed vs. combining-mark accent) land on
// the same StringID, which in turn keeps LiteralString type interning
// faithful to spec.md's "structurally identical" definitional equality.
type Interner struct {
	mu    sync.RWMutex
	byID  []string // byID[0] == "" for NoStringID
	index map[string]StringID
}

// NewInterner creates an empty interner with NoStringID pre-seeded.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern normalizes and inserts s, returning its stable ID.
func (in *Interner) Intern(s string) StringID {
	s = norm.NFC.String(s)

	in.mu.RLock()
	if id, ok := in.index[s]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[s]; ok {
		return id
	}
	id := StringID(len(in.byID)) //nolint:gosec // bounded by process memory
	in.byID = append(in.byID, s)
	in.index[s] = id
	return id
}

// InternBytes interns the string form of b.
func (in *Interner) InternBytes(b []byte) StringID {
	return in.Intern(string(b))
}

// Lookup returns the string for id.
func (in *Interner) Lookup(id StringID) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(id) >= len(in.byID) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup panics if id is not valid.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("source: invalid StringID")
	}
	return s
}

// Len returns the number of interned strings, including NoStringID.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.byID)
}

// Snapshot returns a copy of every interned string, indexed by StringID.
func (in *Interner) Snapshot() []string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return slices.Clone(in.byID)
}
