package query

import (
	"semcore/internal/diag"
	"semcore/internal/hir"
	"semcore/internal/source"
	"semcore/internal/symbols"
	"semcore/internal/types"
)

// TypeQuery implements type_query (spec §4.5.1): if ann is already
// resolved, return the handle; otherwise resolve the underlying
// TypeNode and collapse the slot from node to id in place.
func (c *Checker) TypeQuery(ann *hir.TypeAnnotation) types.TypeID {
	if ann == nil {
		return c.Types.Unit()
	}
	if ann.Node == nil {
		if ann.Resolved == types.NoTypeID {
			return c.Types.Unit()
		}
		return ann.Resolved
	}
	scope := symbols.ScopeID(ann.DeclScope)
	if scope == symbols.NoScopeID {
		scope = c.Table.Global
	}
	id := c.resolveTypeNode(ann.Node, scope)
	ann.Node = nil
	ann.Resolved = id
	return id
}

func (c *Checker) resolveTypeNode(node hir.TypeNode, scope symbols.ScopeID) types.TypeID {
	switch n := node.(type) {
	case *hir.TypeNodePrimitive:
		return c.Types.Primitive(n.Prim)

	case *hir.TypeNodeUnit:
		return c.Types.Unit()

	case *hir.TypeNodeReference:
		inner := c.resolveTypeNode(n.Inner, scope)
		return c.Types.Reference(inner, n.Mutable)

	case *hir.TypeNodeArray:
		elem := c.resolveTypeNode(n.Elem, scope)
		size, ok := c.ConstQuery(n.Size, c.Types.Primitive(types.PrimUSize))
		if !ok || size.Kind != hir.ConstUint {
			c.report(diag.ResUnresolvedTypeStat, n.NodeSpan(), "array size must be a constant usize expression")
			return c.Types.Invalid()
		}
		return c.Types.Array(elem, size.Uint)

	case *hir.TypeNodePath:
		return c.resolveTypeNodePath(n, scope)

	default:
		c.report(diag.TypeUnresolvableNode, node.NodeSpan(), "unresolvable type node")
		return c.Types.Invalid()
	}
}

func (c *Checker) resolveTypeNodePath(n *hir.TypeNodePath, scope symbols.ScopeID) types.TypeID {
	if n.Path.Single() {
		name := n.Path.Segments[0]
		if text, ok := c.Strings.Lookup(name); ok && text == "Self" {
			if def, ok := c.Table.SelfType(scope); ok {
				return c.typeIDOfDef(def, n.Span)
			}
			c.report(diag.ResUnresolvedName, n.Span, "Self used outside an impl block")
			return c.Types.Invalid()
		}
		if def, ok := c.Table.LookupType(scope, name); ok {
			return c.typeIDOfDef(def, n.Span)
		}
	}
	c.report(diag.ResUnresolvedName, n.Span, "unresolved type name")
	return c.Types.Invalid()
}

// typeIDOfDef builds the TypeID for a resolved StructDef/EnumDef, or
// reports "not a concrete type" for a Trait (spec §4.5.1).
func (c *Checker) typeIDOfDef(def hir.TypeDef, span source.Span) types.TypeID {
	switch d := def.(type) {
	case *hir.StructDef:
		h := c.Defs.Handle(d)
		d.TypeDef = h
		return c.Types.StructOf(h)
	case *hir.EnumDef:
		h := c.Defs.Handle(d)
		d.TypeDef = h
		return c.Types.EnumOf(h)
	case *hir.Trait:
		c.report(diag.TypeTraitNotConcrete, span, "a trait is not a concrete type")
		return c.Types.Invalid()
	default:
		return c.Types.Invalid()
	}
}
