package types

// structFields holds the field types of a struct definition for
// IsCopy's "structs of all-copy fields" rule (spec §4.1). The HIR owns
// the actual StructDef; the type universe only needs field types, so
// callers register them once via RegisterStructFields.
type structFields struct {
	fields []TypeID
}

// RegisterStructFields records the canonical field types for a struct
// def handle, so IsCopy can decide copy-ness without the interner
// depending on the hir package (keeps the ownership direction in spec
// §3.2: HIR owns definitions, the universe holds non-owning handles).
func (in *Interner) RegisterStructFields(def DefHandle, fieldTypes []TypeID) {
	if in.structFieldsByDef == nil {
		in.structFieldsByDef = make(map[DefHandle]structFields)
	}
	in.structFieldsByDef[def] = structFields{fields: append([]TypeID(nil), fieldTypes...)}
}

// IsReference reports whether t is a Reference type.
func (in *Interner) IsReference(t TypeID) bool {
	tt, ok := in.Lookup(t)
	return ok && tt.Kind == KindReference
}

// Referenced returns the pointee of a Reference type (NoTypeID if t is
// not a reference).
func (in *Interner) Referenced(t TypeID) TypeID {
	tt, ok := in.Lookup(t)
	if !ok || tt.Kind != KindReference {
		return NoTypeID
	}
	return tt.Elem
}

// IsMutableReference reports whether t is `&mut T`.
func (in *Interner) IsMutableReference(t TypeID) bool {
	tt, ok := in.Lookup(t)
	return ok && tt.Kind == KindReference && tt.Mutable
}

// IsInteger reports whether t is one of I32/U32/ISIZE/USIZE/AnyInt/AnyUInt.
func (in *Interner) IsInteger(t TypeID) bool {
	tt, ok := in.Lookup(t)
	if !ok || tt.Kind != KindPrimitive {
		return false
	}
	switch tt.Prim {
	case PrimI32, PrimU32, PrimISize, PrimUSize, PrimAnyInt, PrimAnyUInt:
		return true
	default:
		return false
	}
}

// IsSignedInteger reports whether t is a signed integer primitive
// (including the AnyInt placeholder).
func (in *Interner) IsSignedInteger(t TypeID) bool {
	tt, ok := in.Lookup(t)
	if !ok || tt.Kind != KindPrimitive {
		return false
	}
	return tt.Prim == PrimI32 || tt.Prim == PrimISize || tt.Prim == PrimAnyInt
}

// IsUnsignedInteger reports whether t is an unsigned integer primitive
// (including the AnyUInt placeholder).
func (in *Interner) IsUnsignedInteger(t TypeID) bool {
	tt, ok := in.Lookup(t)
	if !ok || tt.Kind != KindPrimitive {
		return false
	}
	return tt.Prim == PrimU32 || tt.Prim == PrimUSize || tt.Prim == PrimAnyUInt
}

// IsNumeric reports whether t is any integer primitive (the language
// has no floats — spec §3.1 enumerates only integer/bool/char/string
// primitives).
func (in *Interner) IsNumeric(t TypeID) bool {
	return in.IsInteger(t)
}

// IsPlaceholder reports whether t is AnyInt or AnyUInt.
func (in *Interner) IsPlaceholder(t TypeID) bool {
	tt, ok := in.Lookup(t)
	return ok && tt.Kind == KindPrimitive && (tt.Prim == PrimAnyInt || tt.Prim == PrimAnyUInt)
}

// IsCopy reports whether values of type t may be implicitly copied
// (spec §4.1): primitives, references, and arrays/structs composed
// entirely of Copy types.
func (in *Interner) IsCopy(t TypeID) bool {
	tt, ok := in.Lookup(t)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindPrimitive, KindUnit, KindNever, KindReference:
		return true
	case KindEnum:
		return true
	case KindArray:
		return in.IsCopy(tt.Elem)
	case KindStruct:
		fields, known := in.structFieldsByDef[tt.Def]
		if !known {
			return false
		}
		for _, f := range fields.fields {
			if !in.IsCopy(f) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
