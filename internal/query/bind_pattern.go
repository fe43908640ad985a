package query

import (
	"semcore/internal/diag"
	"semcore/internal/hir"
	"semcore/internal/source"
	"semcore/internal/types"
)

// BindPatternType implements bind_pattern_type (spec §4.5.4): walks a
// pattern and assigns resolved types to the Locals its bindings own.
func (c *Checker) BindPatternType(pat hir.Pattern, expected types.TypeID) {
	switch p := pat.(type) {
	case *hir.PatBinding:
		if p.Def == nil || !p.Def.IsResolved() {
			c.report(diag.ResUnresolvedName, p.Span, "binding pattern was not linked to a Local by name resolution")
			return
		}
		p.Def.Local.Type = hir.NewResolvedType(expected)

	case *hir.PatWildcard:
		// No binding to update.

	case *hir.PatLiteral:
		c.checkConstCompatible(p.Value, expected, p.Span)

	case *hir.PatRange:
		c.checkConstCompatible(p.Low, expected, p.Span)
		c.checkConstCompatible(p.High, expected, p.Span)

	case *hir.PatReference:
		t, ok := c.Types.Lookup(expected)
		if !ok || t.Kind != types.KindReference {
			c.report(diag.PatternExpectedReference, p.Span, "reference pattern requires a reference type")
			return
		}
		if p.Mutable && !t.Mutable {
			c.report(diag.PatternMutabilityMismatch, p.Span, "&mut pattern requires a mutable reference")
			return
		}
		c.BindPatternType(p.Sub, t.Elem)

	case *hir.PatStruct:
		if p.Def == nil {
			c.report(diag.ResUnresolvedName, p.Span, "unresolved struct type in pattern")
			return
		}
		seen := make(map[int]bool, len(p.Fields))
		for _, entry := range p.Fields {
			idx := p.Def.FieldIndex(entry.Name)
			if idx < 0 {
				c.report(diag.PatternUnknownField, entry.Span, "no such field on this struct")
				continue
			}
			if seen[idx] {
				c.report(diag.PatternDuplicateField, entry.Span, "field appears more than once in this pattern")
				continue
			}
			seen[idx] = true
			fieldTy := c.TypeQuery(p.Def.Fields[idx].Type)
			c.BindPatternType(entry.Pattern, fieldTy)
		}
		if len(seen) != len(p.Def.Fields) {
			c.report(diag.PatternMissingField, p.Span, "struct pattern does not cover every field")
		}

	case *hir.PatTuple:
		// The type universe has no tuple variant (spec §3.1); tuple
		// patterns bind each element without a positional type
		// expectation.
		for _, elem := range p.Elems {
			c.BindPatternType(elem, types.NoTypeID)
		}
	}
}

// checkConstCompatible validates that a literal/range pattern's constant
// kind agrees with the type the scrutinee is expected to have.
func (c *Checker) checkConstCompatible(v hir.ConstVariant, expected types.TypeID, span source.Span) {
	switch v.Kind {
	case hir.ConstInt, hir.ConstUint:
		if !c.Types.IsInteger(expected) {
			c.report(diag.ExprTypeMismatch, span, "integer pattern against a non-integer type")
		}
	case hir.ConstBool:
		if expected != c.Types.Primitive(types.PrimBool) {
			c.report(diag.ExprTypeMismatch, span, "bool pattern against a non-bool type")
		}
	case hir.ConstChar:
		if expected != c.Types.Primitive(types.PrimChar) {
			c.report(diag.ExprTypeMismatch, span, "char pattern against a non-char type")
		}
	case hir.ConstString:
		if expected != c.Types.Primitive(types.PrimString) {
			c.report(diag.ExprTypeMismatch, span, "string pattern against a non-string type")
		}
	}
}
