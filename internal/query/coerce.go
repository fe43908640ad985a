package query

import "semcore/internal/types"

// Coerce implements the coercion table from spec §4.6.1: identity,
// Never-to-anything, and the AnyInt/AnyUInt placeholder-widening rules.
func (c *Checker) Coerce(from, to types.TypeID) (types.TypeID, bool) {
	if from == to {
		return to, true
	}
	if from == c.Types.Never() {
		return to, true
	}
	if from == c.Types.Primitive(types.PrimAnyInt) {
		switch to {
		case c.Types.Primitive(types.PrimI32), c.Types.Primitive(types.PrimISize):
			return to, true
		}
	}
	if from == c.Types.Primitive(types.PrimAnyUInt) {
		switch to {
		case c.Types.Primitive(types.PrimU32), c.Types.Primitive(types.PrimUSize), c.Types.Primitive(types.PrimAnyInt):
			return to, true
		}
	}
	return types.NoTypeID, false
}

// IsAssignableTo reports whether a value of type from may appear where
// to is expected.
func (c *Checker) IsAssignableTo(from, to types.TypeID) bool {
	_, ok := c.Coerce(from, to)
	return ok
}

// Unify picks the common type of two branches (spec §4.6.1): identical
// types unify trivially; a placeholder unifies with whatever concrete
// type it can coerce to; Never unifies with anything.
func (c *Checker) Unify(a, b types.TypeID) (types.TypeID, bool) {
	if a == b {
		return a, true
	}
	if a == c.Types.Never() {
		return b, true
	}
	if b == c.Types.Never() {
		return a, true
	}
	if c.Types.IsPlaceholder(a) && c.IsAssignableTo(a, b) {
		return b, true
	}
	if c.Types.IsPlaceholder(b) && c.IsAssignableTo(b, a) {
		return a, true
	}
	return types.NoTypeID, false
}

// DefaultInteger resolves an unresolved placeholder to its statement-
// boundary default (spec §8 "Boundary behaviors"): AnyInt -> I32,
// AnyUInt -> U32.
func (c *Checker) DefaultInteger(t types.TypeID) types.TypeID {
	switch t {
	case c.Types.Primitive(types.PrimAnyInt):
		return c.Types.Primitive(types.PrimI32)
	case c.Types.Primitive(types.PrimAnyUInt):
		return c.Types.Primitive(types.PrimU32)
	default:
		return t
	}
}
