package hir

import "semcore/internal/source"

// Local is a single local variable slot, owned by the innermost
// enclosing block or function (spec §3.2 ownership model). Its
// TypeAnnotation starts empty and is filled in by bind_pattern_type
// once the binding's type is known (spec §4.5.4).
type Local struct {
	Mutable bool
	Name    source.StringID
	Type    *TypeAnnotation
	Span    source.Span
}

// BindingDef is the refinement slot a PatBinding owns: it starts
// pointing at no Local and is resolved to one during name resolution
// once the enclosing `let`/parameter pattern allocates its Local
// (spec §3.2).
type BindingDef struct {
	Local *Local
	Span  source.Span
}

// IsResolved reports whether name resolution has linked this binding
// to its Local yet.
func (b *BindingDef) IsResolved() bool { return b.Local != nil }
