package symbols

import (
	"semcore/internal/hir"
	"semcore/internal/source"
	"semcore/internal/types"
)

// Builtins holds the Function HIR nodes registered in the global scope
// at startup (spec §6.3). The identity of Exit specifically matters to
// the exit-check pass, which must recognise calls that resolve to this
// exact node rather than to a user-defined function also named "exit".
type Builtins struct {
	Print      *hir.Function
	Println    *hir.Function
	PrintInt   *hir.Function
	PrintlnInt *hir.Function
	GetString  *hir.Function
	GetInt     *hir.Function
	Exit       *hir.Function
}

func builtinFn(name source.StringID, params []hir.Param, ret types.TypeID) *hir.Function {
	var retAnn *hir.TypeAnnotation
	if ret != types.NoTypeID {
		retAnn = hir.NewResolvedType(ret)
	}
	return &hir.Function{
		Name:       name,
		Params:     params,
		ReturnType: retAnn,
		Body:       &hir.ExprBlock{},
	}
}

func param(ty types.TypeID) hir.Param {
	return hir.Param{Type: hir.NewResolvedType(ty)}
}

// RegisterBuiltins interns the builtin names and defines each one as a
// Function item in table's Global scope (spec §6.3).
func RegisterBuiltins(table *Table, strings *source.Interner, ty *types.Interner) Builtins {
	str := ty.Primitive(types.PrimString)
	i32 := ty.Primitive(types.PrimI32)
	unit := ty.Unit()
	strRef := ty.Reference(str, false)

	b := Builtins{
		Print:      builtinFn(strings.Intern("print"), []hir.Param{param(strRef)}, unit),
		Println:    builtinFn(strings.Intern("println"), []hir.Param{param(strRef)}, unit),
		PrintInt:   builtinFn(strings.Intern("printInt"), []hir.Param{param(i32)}, unit),
		PrintlnInt: builtinFn(strings.Intern("printlnInt"), []hir.Param{param(i32)}, unit),
		GetString:  builtinFn(strings.Intern("getString"), nil, str),
		GetInt:     builtinFn(strings.Intern("getInt"), nil, i32),
		Exit:       builtinFn(strings.Intern("exit"), []hir.Param{param(i32)}, ty.Never()),
	}

	table.DefineItem(table.Global, strings.Intern("print"), b.Print)
	table.DefineItem(table.Global, strings.Intern("println"), b.Println)
	table.DefineItem(table.Global, strings.Intern("printInt"), b.PrintInt)
	table.DefineItem(table.Global, strings.Intern("printlnInt"), b.PrintlnInt)
	table.DefineItem(table.Global, strings.Intern("getString"), b.GetString)
	table.DefineItem(table.Global, strings.Intern("getInt"), b.GetInt)
	table.DefineItem(table.Global, strings.Intern("exit"), b.Exit)

	return b
}
