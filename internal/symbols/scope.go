package symbols

import (
	"ldc/internal/source"
)

// ScopeID indexes the scope arena. 0 means "no scope" (the root has no
// parent).
type ScopeID uint32

const NoScopeID ScopeID = 0

func (id ScopeID) IsValid() bool { return id != NoScopeID }

// Scope is one symbol table in the lexical chain: a name-to-item mapping
// plus an optional parent. Scopes live in an arena, so a parent stays
// addressable as long as the arena does, regardless of how many children
// referenced it.
type Scope struct {
	Parent   ScopeID
	Bindings map[source.StringID]ItemID
}
