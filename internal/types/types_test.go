package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	i32 := in.Primitive(PrimI32)
	if i32 == NoTypeID {
		t.Fatalf("i32 builtin not initialized")
	}
	tt, ok := in.Lookup(i32)
	if !ok || tt.Kind != KindPrimitive || tt.Prim != PrimI32 {
		t.Fatalf("expected i32 primitive, got %+v", tt)
	}
}

func TestInternerDeduplicatesArrays(t *testing.T) {
	in := NewInterner()
	elem := in.Primitive(PrimI32)
	a1 := in.Array(elem, 4)
	a2 := in.Array(elem, 4)
	if a1 != a2 {
		t.Fatalf("structurally-equal array types must share a TypeID")
	}
	a3 := in.Array(elem, 5)
	if a1 == a3 {
		t.Fatalf("arrays of different size must not be deduplicated together")
	}
}

func TestReferenceMutabilityAffectsIdentity(t *testing.T) {
	in := NewInterner()
	elem := in.Primitive(PrimI32)
	mut := in.Reference(elem, true)
	imm := in.Reference(elem, false)
	if mut == imm {
		t.Fatalf("&mut T and &T must be distinct types")
	}
	if !in.IsMutableReference(mut) {
		t.Fatalf("expected mut to be a mutable reference")
	}
	if in.IsMutableReference(imm) {
		t.Fatalf("expected imm to not be a mutable reference")
	}
}

func TestIsCopy(t *testing.T) {
	in := NewInterner()
	i32 := in.Primitive(PrimI32)
	str := in.Primitive(PrimString)
	if !in.IsCopy(i32) {
		t.Fatalf("i32 should be Copy")
	}
	if in.IsCopy(str) {
		t.Fatalf("String should not be Copy")
	}
	arrOfInt := in.Array(i32, 3)
	if !in.IsCopy(arrOfInt) {
		t.Fatalf("[i32; 3] should be Copy")
	}
	arrOfStr := in.Array(str, 3)
	if in.IsCopy(arrOfStr) {
		t.Fatalf("[String; 3] should not be Copy")
	}
	ref := in.Reference(i32, false)
	if !in.IsCopy(ref) {
		t.Fatalf("&i32 should be Copy")
	}
	mutRef := in.Reference(i32, true)
	if in.IsCopy(mutRef) {
		t.Fatalf("&mut i32 should not be Copy")
	}
}

func TestStructCopyDependsOnFields(t *testing.T) {
	in := NewInterner()
	i32 := in.Primitive(PrimI32)
	str := in.Primitive(PrimString)

	allCopy := in.StructOf(1)
	in.RegisterStructFields(1, []TypeID{i32, i32})
	if !in.IsCopy(allCopy) {
		t.Fatalf("struct of all-copy fields should be Copy")
	}

	notCopy := in.StructOf(2)
	in.RegisterStructFields(2, []TypeID{i32, str})
	if in.IsCopy(notCopy) {
		t.Fatalf("struct containing a String field should not be Copy")
	}
}

func TestNeverAndUnitAreDistinctSingletons(t *testing.T) {
	in := NewInterner()
	if in.Never() == in.Unit() {
		t.Fatalf("Never and Unit must be distinct")
	}
	if in.Never() != in.Never() {
		t.Fatalf("Never must be stable across calls")
	}
}
