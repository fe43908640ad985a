package hir

import (
	"semcore/internal/ast"
	"semcore/internal/source"
)

// Pattern is the tagged union of pattern forms (spec §3.2). Every
// variant implements Pattern via an embedded PatternBase, following the
// exhaustive-visiting-over-a-sum-type idiom used throughout the HIR
// (spec §9 "Sum types vs inheritance").
type Pattern interface {
	patternNode()
	Base() *PatternBase
}

// PatternBase carries the fields common to every pattern variant.
type PatternBase struct {
	Span source.Span
	Node ast.NodeID
}

func (b *PatternBase) Base() *PatternBase { return b }

// PatBinding introduces a new binding name; the actual Local it refers
// to is filled in by name resolution (spec §3.2: BindingDef.local
// starts Unresolved).
type PatBinding struct {
	PatternBase
	Name    source.StringID
	Mutable bool
	Def     *BindingDef
}

func (*PatBinding) patternNode() {}

// PatWildcard matches anything and binds nothing (`_`).
type PatWildcard struct {
	PatternBase
}

func (*PatWildcard) patternNode() {}

// PatLiteral matches a literal constant exactly.
type PatLiteral struct {
	PatternBase
	Value ConstVariant
}

func (*PatLiteral) patternNode() {}

// PatReference matches through a reference, e.g. `&x` / `&mut x`.
type PatReference struct {
	PatternBase
	Mutable bool
	Sub     Pattern
}

func (*PatReference) patternNode() {}

// PatFieldEntry is one `name: subpattern` entry of a struct pattern.
type PatFieldEntry struct {
	Name    source.StringID
	Pattern Pattern
	Span    source.Span
}

// PatStruct destructures a struct value by field name.
type PatStruct struct {
	PatternBase
	TypeName ast.Path
	Def      *StructDef // resolved by the name resolution pass
	Fields   []PatFieldEntry
}

func (*PatStruct) patternNode() {}

// PatTuple matches a fixed-arity tuple-like pattern, e.g. `(a, b)`.
type PatTuple struct {
	PatternBase
	Elems []Pattern
}

func (*PatTuple) patternNode() {}

// PatRange matches an inclusive numeric/char range `lo..=hi`.
type PatRange struct {
	PatternBase
	Low, High ConstVariant
}

func (*PatRange) patternNode() {}
