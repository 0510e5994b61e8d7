package symbols

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/google/uuid"

	"ldc/internal/source"
)

// Hints provide optional capacity suggestions for the table arenas.
type Hints struct{ Scopes, Items uint }

// Table aggregates the scope arena, the item arena, the struct/enum registry
// and the shared string interner for one checking run. It is passed
// explicitly through every pass; there is no ambient state.
type Table struct {
	scopes  []Scope
	items   []Item
	Strings *source.Interner
	reg     *Registry
}

// NewTable builds a fresh table. If strings is nil, a new interner is
// allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	if strings == nil {
		strings = source.NewInterner()
	}
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	itemCap, err := safecast.Conv[uint32](h.Items)
	if err != nil {
		panic(fmt.Errorf("item capacity overflow: %w", err))
	}
	if scopeCap == 0 {
		scopeCap = 32
	}
	if itemCap == 0 {
		itemCap = 64
	}
	return &Table{
		scopes:  make([]Scope, 1, scopeCap+1), // index 0 reserved for NoScopeID
		items:   make([]Item, 1, itemCap+1),   // index 0 reserved for NoItemID
		Strings: strings,
		reg:     NewRegistry(),
	}
}

// NewChild allocates an empty scope whose parent is parent (NoScopeID for a
// root scope) and returns its ID.
func (t *Table) NewChild(parent ScopeID) ScopeID {
	n, err := safecast.Conv[uint32](len(t.scopes))
	if err != nil {
		panic(fmt.Errorf("scope arena overflow: %w", err))
	}
	id := ScopeID(n)
	t.scopes = append(t.scopes, Scope{
		Parent:   parent,
		Bindings: make(map[source.StringID]ItemID),
	})
	return id
}

// Scope returns the scope record, nil for an invalid ID.
func (t *Table) Scope(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// AddItem stores the item in the arena and returns its ID.
func (t *Table) AddItem(item Item) ItemID {
	n, err := safecast.Conv[uint32](len(t.items))
	if err != nil {
		panic(fmt.Errorf("item arena overflow: %w", err))
	}
	id := ItemID(n)
	t.items = append(t.items, item)
	return id
}

// Item returns the item record, nil for an invalid ID.
func (t *Table) Item(id ItemID) *Item {
	if !id.IsValid() || int(id) >= len(t.items) {
		return nil
	}
	return &t.items[id]
}

// Insert binds name to item in exactly the given scope. A prior binding of
// the same name in the same scope is silently replaced; ancestor bindings
// stay shadowed, not replaced.
func (t *Table) Insert(scope ScopeID, name source.StringID, item ItemID) {
	sc := t.Scope(scope)
	if sc == nil {
		panic("symbols: insert into invalid scope")
	}
	sc.Bindings[name] = item
}

// Lookup walks the chain from scope to the root and returns the first
// binding of name, checking the starting scope before any ancestor.
func (t *Table) Lookup(scope ScopeID, name source.StringID) (ItemID, bool) {
	for cur := scope; cur.IsValid(); {
		sc := t.Scope(cur)
		if sc == nil {
			break
		}
		if id, ok := sc.Bindings[name]; ok {
			return id, true
		}
		cur = sc.Parent
	}
	return NoItemID, false
}

// Registry returns the struct/enum registry of this run.
func (t *Table) Registry() *Registry {
	return t.reg
}

// ScopeCount reports allocated scopes excluding the sentinel.
func (t *Table) ScopeCount() int { return len(t.scopes) - 1 }

// ItemCount reports allocated items excluding the sentinel.
func (t *Table) ItemCount() int { return len(t.items) - 1 }

// Registry maps declaration identity to item for struct and enum
// declarations: the one piece of state that outlives every scope of a run.
// It grows monotonically; entries are never replaced or removed.
type Registry struct {
	byID map[uuid.UUID]ItemID
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[uuid.UUID]ItemID)}
}

// Register records the identity-to-item mapping.
func (r *Registry) Register(id uuid.UUID, item ItemID) {
	r.byID[id] = item
}

// LookupByID resolves a declaration identity independently of any scope.
func (r *Registry) LookupByID(id uuid.UUID) (ItemID, bool) {
	item, ok := r.byID[id]
	return item, ok
}

// Len reports the number of registered declarations.
func (r *Registry) Len() int {
	return len(r.byID)
}
