package hir

import (
	"semcore/internal/ast"
	"semcore/internal/source"
	"semcore/internal/types"
)

// TypeNode is the unresolved syntactic type tree produced by the AST
// (spec §3.2 TypeAnnotation variant (a)).
type TypeNode interface {
	typeNode()
	NodeSpan() source.Span
}

type typeNodeBase struct {
	Span source.Span
	Node ast.NodeID
}

func (b typeNodeBase) NodeSpan() source.Span { return b.Span }

// TypeNodePath names a struct/enum/trait by path, e.g. `Foo`.
type TypeNodePath struct {
	typeNodeBase
	Path ast.Path
}

func (TypeNodePath) typeNode() {}

// TypeNodePrimitive names a builtin primitive by keyword, e.g. `i32`.
type TypeNodePrimitive struct {
	typeNodeBase
	Prim types.PrimitiveKind
}

func (TypeNodePrimitive) typeNode() {}

// TypeNodeArray is `[T; N]`, where N is itself an (unevaluated) expression.
type TypeNodeArray struct {
	typeNodeBase
	Elem TypeNode
	Size Expr
}

func (TypeNodeArray) typeNode() {}

// TypeNodeReference is `&T` or `&mut T`.
type TypeNodeReference struct {
	typeNodeBase
	Mutable bool
	Inner   TypeNode
}

func (TypeNodeReference) typeNode() {}

// TypeNodeUnit is `()`.
type TypeNodeUnit struct {
	typeNodeBase
}

func (TypeNodeUnit) typeNode() {}

// TypeAnnotation is the refinement slot from spec §3.2: it starts as an
// unresolved TypeNode tree and collapses to a resolved TypeID in place
// once type_query succeeds (spec §4.5.1, §8 "Round-trip").
type TypeAnnotation struct {
	Node     TypeNode // non-nil while unresolved
	Resolved types.TypeID

	// DeclScope is the scope a bare path inside Node (notably `Self`)
	// should resolve against. It is stored as a raw uint32 rather than
	// symbols.ScopeID to avoid hir importing symbols; query converts it
	// back. Zero means "resolve from the global scope".
	DeclScope uint32
}

// IsResolved reports whether type_query has already filled this slot.
func (a *TypeAnnotation) IsResolved() bool {
	return a.Node == nil && a.Resolved != types.NoTypeID
}

// NewUnresolvedType wraps a syntactic TypeNode in an annotation slot
// that resolves bare paths from the global scope.
func NewUnresolvedType(node TypeNode) *TypeAnnotation {
	return &TypeAnnotation{Node: node}
}

// NewUnresolvedTypeIn is like NewUnresolvedType but resolves bare paths
// (in particular `Self`) against declScope, e.g. a method signature
// written inside an impl block.
func NewUnresolvedTypeIn(node TypeNode, declScope uint32) *TypeAnnotation {
	return &TypeAnnotation{Node: node, DeclScope: declScope}
}

// NewResolvedType wraps an already-known TypeID, e.g. for synthesized
// nodes the passes build themselves.
func NewResolvedType(id types.TypeID) *TypeAnnotation {
	return &TypeAnnotation{Resolved: id}
}
