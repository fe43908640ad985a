package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"semcore/internal/source"
)

// Table is the stack of lexical scopes built during name resolution
// (spec §3.5). Scopes are arena-allocated and outlive the pass: the
// query service reopens them by ScopeID (TypeAnnotation.DeclScope), and
// sema.Run returns the Table in its Result.
type Table struct {
	scopes []*Scope
	Global ScopeID
}

// NewTable allocates a Table with a single Global root scope, seeded by
// the caller with builtins via DefineItem (see RegisterBuiltins).
func NewTable() *Table {
	t := &Table{}
	t.Global = t.newScope(KindGlobal, NoScopeID, false, source.Span{})
	return t
}

func (t *Table) newScope(kind Kind, parent ScopeID, boundary bool, span source.Span) ScopeID {
	t.scopes = append(t.scopes, newScope(kind, parent, boundary, span))
	n, err := safecast.Conv[uint32](len(t.scopes))
	if err != nil {
		panic(fmt.Errorf("symbols: scope arena overflow: %w", err))
	}
	return ScopeID(n) // 1-based: index n-1 holds this scope
}

// OpenFunction opens a function-body (boundary) scope as a child of parent.
func (t *Table) OpenFunction(parent ScopeID, span source.Span) ScopeID {
	return t.newScope(KindFunction, parent, true, span)
}

// OpenBlock opens a non-boundary block scope as a child of parent.
func (t *Table) OpenBlock(parent ScopeID, span source.Span) ScopeID {
	return t.newScope(KindBlock, parent, false, span)
}

// OpenImpl opens a non-boundary impl scope that additionally defines Self.
func (t *Table) OpenImpl(parent ScopeID, selfType TypeDef, span source.Span) ScopeID {
	id := t.newScope(KindImpl, parent, false, span)
	t.Get(id).SelfType = selfType
	return id
}

// Get dereferences a ScopeID. Panics on an invalid id since every
// ScopeID in the HIR tree is expected to have been issued by this table.
func (t *Table) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) > len(t.scopes) {
		panic("symbols: invalid ScopeID")
	}
	return t.scopes[id-1]
}

// IsValid reports whether id refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// DefineItem inserts a Function/ConstDef into scope's items namespace.
// Returns false if name is already defined there (spec §4.2).
func (t *Table) DefineItem(scope ScopeID, name source.StringID, def ValueDef) bool {
	s := t.Get(scope)
	if _, exists := s.items[name]; exists {
		return false
	}
	s.items[name] = def
	return true
}

// DefineBinding inserts a BindingDef into scope's bindings namespace.
// A binding with the same name in the same scope shadows the previous
// one (spec §4.2: "newer shadows older in same scope").
func (t *Table) DefineBinding(scope ScopeID, name source.StringID, def ValueDef) {
	t.Get(scope).bindings[name] = def
}

// DefineType inserts a Struct/Enum/Trait into scope's types namespace.
// Returns false if name is already defined there.
func (t *Table) DefineType(scope ScopeID, name source.StringID, def TypeDef) bool {
	s := t.Get(scope)
	if _, exists := s.types[name]; exists {
		return false
	}
	s.types[name] = def
	return true
}

// LookupValueLocal searches only the given scope's own namespaces
// (bindings then items), ignoring ancestors (spec §4.2 lookup_value_local).
func (t *Table) LookupValueLocal(scope ScopeID, name source.StringID) (ValueDef, bool) {
	s := t.Get(scope)
	if def, ok := s.bindings[name]; ok {
		return def, true
	}
	if def, ok := s.items[name]; ok {
		return def, true
	}
	return nil, false
}

// LookupValue walks the scope chain from scope outward. At each level
// it checks bindings then items; once ascent crosses a boundary scope,
// binding lookup is disabled for every further-out scope while item
// lookup continues (spec §4.2 "Lookup algorithm", "Boundary semantics").
func (t *Table) LookupValue(scope ScopeID, name source.StringID) (ValueDef, bool) {
	bindingsVisible := true
	cur := scope
	for cur.IsValid() {
		s := t.Get(cur)
		if bindingsVisible {
			if def, ok := s.bindings[name]; ok {
				return def, true
			}
		}
		if def, ok := s.items[name]; ok {
			return def, true
		}
		if s.Boundary {
			bindingsVisible = false
		}
		cur = s.Parent
	}
	return nil, false
}

// LookupType walks the scope chain from scope outward, searching only
// the types namespace; boundaries never hide types (spec §4.2).
func (t *Table) LookupType(scope ScopeID, name source.StringID) (TypeDef, bool) {
	cur := scope
	for cur.IsValid() {
		s := t.Get(cur)
		if def, ok := s.types[name]; ok {
			return def, true
		}
		cur = s.Parent
	}
	return nil, false
}

// SelfType resolves `Self` by walking outward to the nearest Impl scope.
func (t *Table) SelfType(scope ScopeID) (TypeDef, bool) {
	cur := scope
	for cur.IsValid() {
		s := t.Get(cur)
		if s.Kind == KindImpl && s.SelfType != nil {
			return s.SelfType, true
		}
		cur = s.Parent
	}
	return nil, false
}
