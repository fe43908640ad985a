package hir

import (
	"semcore/internal/ast"
	"semcore/internal/source"
	"semcore/internal/types"
)

// Item is the tagged union of top-level declarations (spec §3.2).
type Item interface {
	itemNode()
	ItemSpan() source.Span
}

type itemBase struct {
	Span source.Span
	Node ast.NodeID
}

func (b itemBase) ItemSpan() source.Span { return b.Span }

// SelfMode describes how a method receives its receiver.
type SelfMode uint8

const (
	SelfByValue SelfMode = iota
	SelfByRef
	SelfByRefMut
)

// Param is one function/method parameter: a pattern plus its declared type.
type Param struct {
	Pattern Pattern
	Type    *TypeAnnotation
	Span    source.Span
}

// Function is a free (or associated) function (spec §3.2).
type Function struct {
	itemBase
	Name       source.StringID
	Params     []Param
	ReturnType *TypeAnnotation // nil means the function returns Unit
	Body       *ExprBlock
}

func (*Function) itemNode() {}

// FuncReturnType implements FuncLike.
func (f *Function) FuncReturnType() *TypeAnnotation { return f.ReturnType }

// Method is like Function but additionally carries a receiver
// descriptor (spec §3.2). Methods live inside an Impl's associated
// items, never as top-level Items.
type Method struct {
	itemBase
	Name       source.StringID
	Self       SelfMode
	Params     []Param
	ReturnType *TypeAnnotation
	Body       *ExprBlock
}

func (m *Method) FuncReturnType() *TypeAnnotation { return m.ReturnType }

// StructField is one declared field of a struct, in declaration order.
type StructField struct {
	Name source.StringID
	Type *TypeAnnotation
	Span source.Span
}

// StructDef is a struct declaration; Fields preserves declaration
// order, which doubles as the canonical field order used by struct
// literal canonicalization (spec §3.2, §4.4).
type StructDef struct {
	itemBase
	Name    source.StringID
	Fields  []StructField
	TypeDef types.DefHandle // assigned once, used to build this struct's TypeID
}

func (*StructDef) itemNode() {}

// FieldIndex returns the declaration-order index of a field name, or -1.
func (s *StructDef) FieldIndex(name source.StringID) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// EnumVariant is one variant of an enum, with an optional payload type.
type EnumVariant struct {
	Name    source.StringID
	Payload *TypeAnnotation // nil if the variant carries no payload
	Span    source.Span
}

// EnumDef is an enum declaration.
type EnumDef struct {
	itemBase
	Name     source.StringID
	Variants []EnumVariant
	TypeDef  types.DefHandle
}

func (*EnumDef) itemNode() {}

// TraitMethodSig is an associated method signature declared by a trait
// (the language has no default method bodies — spec Non-goals exclude
// trait-object dynamic dispatch beyond static resolution via the impl
// table, so a trait is just a named contract of method shapes).
type TraitMethodSig struct {
	Name       source.StringID
	Self       SelfMode
	Params     []*TypeAnnotation
	ReturnType *TypeAnnotation
	Span       source.Span
}

// Trait is a trait declaration.
type Trait struct {
	itemBase
	Name    source.StringID
	Methods []TraitMethodSig
}

func (*Trait) itemNode() {}

// ImplItem is one associated item of an impl block.
type ImplItem interface{ implItemNode() }

func (*Function) implItemNode() {}
func (*Method) implItemNode()    {}
func (*ConstDef) implItemNode()  {}

// Impl is an `impl Target { ... }` or `impl Trait for Target { ... }` block.
type Impl struct {
	itemBase
	Target Item // resolved to a *StructDef or *EnumDef by name resolution
	// TargetAnnotation is kept for diagnostics before Target is resolved.
	TargetAnnotation *TypeAnnotation
	TraitRef         *ast.Path // nil for an inherent impl
	Items            []ImplItem

	// Scope is the symbols.ScopeID of this impl's Self-defining scope,
	// stored as a raw uint32 to avoid hir importing symbols (mirrors
	// TypeAnnotation.DeclScope). Set by the name resolution pass's
	// collection phase; method bodies nest their function scope under it.
	Scope uint32
}

func (*Impl) itemNode() {}

// ConstDef is a `const NAME: T = init;` declaration. ConstValue is the
// refinement slot filled in by const_query (spec §3.2).
type ConstDef struct {
	itemBase
	Name       source.StringID
	Type       *TypeAnnotation
	Init       Expr
	ConstValue *ConstVariant
}

func (*ConstDef) itemNode() {}

// TypeAlias is a `type Name = T;` declaration.
type TypeAlias struct {
	itemBase
	Name   source.StringID
	Target *TypeAnnotation
}

func (*TypeAlias) itemNode() {}
