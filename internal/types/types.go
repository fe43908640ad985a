// Package types implements the process-wide type universe (spec §3.1,
// §4.1): a structural interner handing out stable TypeID handles for
// every distinct type shape a program can mention.
package types

import (
	"fmt"

	"fortio.org/safecast"
)

// TypeID is an opaque, stable handle into the Interner.
type TypeID uint32

// NoTypeID is the sentinel for "not yet known" / error paths.
const NoTypeID TypeID = 0

// PrimitiveKind enumerates the primitive type variants, including the
// AnyInt/AnyUInt placeholders used before integer-literal coercion
// pins a literal to a concrete width (spec §3.1).
type PrimitiveKind uint8

const (
	PrimInvalid PrimitiveKind = iota
	PrimI32
	PrimU32
	PrimISize
	PrimUSize
	PrimBool
	PrimChar
	PrimString
	PrimAnyInt
	PrimAnyUInt
)

func (p PrimitiveKind) String() string {
	switch p {
	case PrimI32:
		return "i32"
	case PrimU32:
		return "u32"
	case PrimISize:
		return "isize"
	case PrimUSize:
		return "usize"
	case PrimBool:
		return "bool"
	case PrimChar:
		return "char"
	case PrimString:
		return "String"
	case PrimAnyInt:
		return "{integer}"
	case PrimAnyUInt:
		return "{unsigned integer}"
	default:
		return "invalid"
	}
}

// Kind enumerates the type-universe variants from spec §3.1.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindStruct
	KindEnum
	KindReference
	KindArray
	KindUnit
	KindNever
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindReference:
		return "reference"
	case KindArray:
		return "array"
	case KindUnit:
		return "unit"
	case KindNever:
		return "never"
	default:
		return "invalid"
	}
}

// DefHandle identifies a StructDef/EnumDef owned by the HIR program;
// the type universe only stores the handle, never the definition
// itself, keeping it decoupled from the HIR package (spec §3.2
// ownership model: Program owns definitions, TypeID is a non-owning
// handle).
type DefHandle uint32

// Type is the compact structural descriptor behind every TypeID.
type Type struct {
	Kind    Kind
	Prim    PrimitiveKind // for KindPrimitive
	Def     DefHandle     // for KindStruct / KindEnum
	Elem    TypeID        // for KindReference / KindArray
	Size    uint32        // for KindArray
	Mutable bool          // for KindReference
}

// typeKey is the hashable structural key used for deduplication.
type typeKey struct {
	Kind    Kind
	Prim    PrimitiveKind
	Def     DefHandle
	Elem    TypeID
	Size    uint32
	Mutable bool
}

func keyOf(t Type) typeKey {
	return typeKey{Kind: t.Kind, Prim: t.Prim, Def: t.Def, Elem: t.Elem, Size: t.Size, Mutable: t.Mutable}
}

// Interner is the type registry (one per compilation in this design:
// sema.Run builds a fresh Interner for each Program). get_type_id from spec §4.1
// is implemented as Intern.
type Interner struct {
	types []Type
	index map[typeKey]TypeID

	prims   [10]TypeID // indexed by PrimitiveKind
	unit    TypeID
	never   TypeID
	invalid TypeID

	structFieldsByDef map[DefHandle]structFields
}

// NewInterner builds an interner seeded with Invalid/Unit/Never and the
// primitive kinds, so callers never need to special-case their absence.
func NewInterner() *Interner {
	in := &Interner{index: make(map[typeKey]TypeID, 64)}
	in.invalid = in.internRaw(Type{Kind: KindInvalid})
	in.unit = in.Intern(Type{Kind: KindUnit})
	in.never = in.Intern(Type{Kind: KindNever})
	for p := PrimitiveKind(1); p <= PrimAnyUInt; p++ {
		in.prims[p] = in.Intern(Type{Kind: KindPrimitive, Prim: p})
	}
	return in
}

// Intern ensures t has a stable TypeID, returning the existing one if
// an identical structural key was already seen (invariant (a)/(b) of
// spec §3.1).
func (in *Interner) Intern(t Type) TypeID {
	key := keyOf(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: interner overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[keyOf(t)] = id
	return id
}

// Lookup returns the descriptor behind id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if int(id) < 0 || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics on an invalid id; used internally once a TypeID is
// known to have come from this interner.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("types: invalid TypeID %d", id))
	}
	return t
}

// Constructors (spec §4.1) ---------------------------------------------------

func (in *Interner) Primitive(kind PrimitiveKind) TypeID { return in.prims[kind] }
func (in *Interner) Unit() TypeID                        { return in.unit }
func (in *Interner) Never() TypeID                       { return in.never }
func (in *Interner) Invalid() TypeID                     { return in.invalid }

func (in *Interner) Reference(inner TypeID, mutable bool) TypeID {
	return in.Intern(Type{Kind: KindReference, Elem: inner, Mutable: mutable})
}

func (in *Interner) Array(elem TypeID, size uint32) TypeID {
	return in.Intern(Type{Kind: KindArray, Elem: elem, Size: size})
}

func (in *Interner) StructOf(def DefHandle) TypeID {
	return in.Intern(Type{Kind: KindStruct, Def: def})
}

func (in *Interner) EnumOf(def DefHandle) TypeID {
	return in.Intern(Type{Kind: KindEnum, Def: def})
}
