package hir

import "semcore/internal/types"

// Place classifies an expression as an lvalue or rvalue (spec §3.3).
type Place uint8

const (
	PlaceValue Place = iota
	PlacePlace
)

func (p Place) String() string {
	if p == PlacePlace {
		return "place"
	}
	return "value"
}

// ConstKind tags the variant held by a ConstVariant (spec §3.4).
type ConstKind uint8

const (
	ConstNone ConstKind = iota
	ConstUint
	ConstInt
	ConstBool
	ConstChar
	ConstString
)

// ConstVariant is the fixed-width constant value produced by constant
// evaluation. Signedness/width checking against the target type is the
// caller's (query service's) job; arithmetic here always happens at the
// fixed widths below (spec §3.4).
type ConstVariant struct {
	Kind   ConstKind
	Uint   uint32
	Int    int32
	Bool   bool
	Char   rune
	String string
}

func UintConst(v uint32) ConstVariant   { return ConstVariant{Kind: ConstUint, Uint: v} }
func IntConst(v int32) ConstVariant     { return ConstVariant{Kind: ConstInt, Int: v} }
func BoolConst(v bool) ConstVariant     { return ConstVariant{Kind: ConstBool, Bool: v} }
func CharConst(v rune) ConstVariant     { return ConstVariant{Kind: ConstChar, Char: v} }
func StringConst(v string) ConstVariant { return ConstVariant{Kind: ConstString, String: v} }

// ExprInfo holds the per-expression properties computed by the
// expression checker and cached on the node (spec §3.3).
type ExprInfo struct {
	Type        types.TypeID
	HasType     bool
	IsMutable   bool
	PlaceKind   Place
	CanDiverge  bool
	ConstValue  *ConstVariant
}

// Const returns the cached constant value, or ok=false if none was computed.
func (i *ExprInfo) Const() (ConstVariant, bool) {
	if i == nil || i.ConstValue == nil {
		return ConstVariant{}, false
	}
	return *i.ConstValue, true
}
