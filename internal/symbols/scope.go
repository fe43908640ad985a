// Package symbols implements the lexical scope / symbol table (spec
// §3.5, §4.2) and the impl table (spec §4.3).
package symbols

import (
	"semcore/internal/hir"
	"semcore/internal/source"
)

// ScopeID is a stable handle into a Scopes arena.
type ScopeID uint32

// NoScopeID marks the absence of a scope.
const NoScopeID ScopeID = 0

// Kind classifies what a scope is for (spec §3.5).
type Kind uint8

const (
	KindInvalid Kind = iota
	KindGlobal
	KindFunction
	KindBlock
	KindImpl
)

func (k Kind) String() string {
	switch k {
	case KindGlobal:
		return "global"
	case KindFunction:
		return "function"
	case KindBlock:
		return "block"
	case KindImpl:
		return "impl"
	default:
		return "invalid"
	}
}

// ValueDef/TypeDef re-export the HIR union types lookup_value/lookup_type
// return, so callers needn't import hir directly for scope queries.
type ValueDef = hir.ValueDef
type TypeDef = hir.TypeDef

// Scope is a single lexical scope: a parent pointer, a boundary flag,
// and the three namespaces from spec §3.5 (items, bindings, types).
type Scope struct {
	Kind     Kind
	Parent   ScopeID
	Boundary bool // true for Function scopes: blocks capturing outward bindings stop here
	Span     source.Span

	// SelfType is non-nil only for Impl scopes, which additionally
	// define `Self` (spec §3.5).
	SelfType TypeDef

	// items holds Function/ConstDef entries; bindings holds BindingDef
	// entries. Both answer lookup_value, with bindings searched first
	// (spec §4.2 lookup algorithm).
	items    map[source.StringID]ValueDef
	bindings map[source.StringID]ValueDef
	types    map[source.StringID]TypeDef
}

func newScope(kind Kind, parent ScopeID, boundary bool, span source.Span) *Scope {
	return &Scope{
		Kind:     kind,
		Parent:   parent,
		Boundary: boundary,
		Span:     span,
		items:    make(map[source.StringID]ValueDef),
		bindings: make(map[source.StringID]ValueDef),
		types:    make(map[source.StringID]TypeDef),
	}
}
