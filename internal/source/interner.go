package source

import "sync"

// StringID identifies an interned identifier or literal string.
type StringID uint32

// NoStringID marks the absence of an interned string (maps to "").
const NoStringID StringID = 0

// Interner deduplicates identifier text shared across the HIR, the
// scope/symbol table, and diagnostics. It is safe for concurrent use,
// matching the teacher's string interner even though the semantic core
// itself runs single-threaded (see spec §5).
type Interner struct {
	mu    sync.RWMutex
	byID  []string
	index map[string]StringID
}

// NewInterner builds an interner seeded with the empty string at NoStringID.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the stable ID for s, allocating one if s is new.
func (in *Interner) Intern(s string) StringID {
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
	id := StringID(len(in.byID))
	cpy := string([]byte(s))
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

// Lookup returns the text for id, if valid.
func (in *Interner) Lookup(id StringID) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(in.byID) {
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
