package symbols

import (
	"testing"

	"semcore/internal/hir"
	"semcore/internal/source"
)

func TestScopeBindingShadowing(t *testing.T) {
	table := NewTable()
	strings := source.NewInterner()
	name := strings.Intern("x")

	fn := table.OpenFunction(table.Global, source.Span{})
	outer := &hir.BindingDef{Local: &hir.Local{Name: name}}
	table.DefineBinding(fn, name, outer)

	block := table.OpenBlock(fn, source.Span{})
	inner := &hir.BindingDef{Local: &hir.Local{Name: name}}
	table.DefineBinding(block, name, inner)

	got, ok := table.LookupValue(block, name)
	if !ok || got != hir.ValueDef(inner) {
		t.Fatalf("expected inner binding to shadow outer, got %v", got)
	}
}

func TestBoundaryHidesOuterBindings(t *testing.T) {
	table := NewTable()
	strings := source.NewInterner()
	name := strings.Intern("x")

	outerBlock := table.OpenBlock(table.Global, source.Span{})
	local := &hir.BindingDef{Local: &hir.Local{Name: name}}
	table.DefineBinding(outerBlock, name, local)

	// A function scope nested inside outerBlock is a boundary: its own
	// nested block must not see outerBlock's binding.
	fn := table.OpenFunction(outerBlock, source.Span{})
	nestedBlock := table.OpenBlock(fn, source.Span{})

	if _, ok := table.LookupValue(nestedBlock, name); ok {
		t.Fatalf("expected binding lookup to be blocked by the function boundary")
	}
}

func TestBoundaryStillExposesItemsAndTypes(t *testing.T) {
	table := NewTable()
	strings := source.NewInterner()
	fnName := strings.Intern("helper")
	typeName := strings.Intern("Foo")

	fnDef := &hir.Function{Name: fnName}
	table.DefineItem(table.Global, fnName, fnDef)
	structDef := &hir.StructDef{Name: typeName}
	table.DefineType(table.Global, typeName, structDef)

	fn := table.OpenFunction(table.Global, source.Span{})
	block := table.OpenBlock(fn, source.Span{})

	if got, ok := table.LookupValue(block, fnName); !ok || got != hir.ValueDef(fnDef) {
		t.Fatalf("expected item lookup to cross the function boundary")
	}
	if got, ok := table.LookupType(block, typeName); !ok || got != hir.TypeDef(structDef) {
		t.Fatalf("expected type lookup to cross the function boundary")
	}
}

func TestDefineItemRejectsDuplicates(t *testing.T) {
	table := NewTable()
	strings := source.NewInterner()
	name := strings.Intern("dup")

	if !table.DefineItem(table.Global, name, &hir.Function{Name: name}) {
		t.Fatalf("expected first definition to succeed")
	}
	if table.DefineItem(table.Global, name, &hir.Function{Name: name}) {
		t.Fatalf("expected duplicate definition to be rejected")
	}
}

func TestImplTableFindMethod(t *testing.T) {
	strings := source.NewInterner()
	methodName := strings.Intern("area")
	structDef := &hir.StructDef{Name: strings.Intern("Rect")}
	method := &hir.Method{Name: methodName}
	impl := &hir.Impl{Target: structDef, Items: []hir.ImplItem{method}}

	table := NewImplTable()
	table.RegisterImpl(impl)

	got, ok := table.FindMethod(structDef, methodName)
	if !ok || got != method {
		t.Fatalf("expected to find registered method")
	}

	if _, ok := table.FindMethod(structDef, strings.Intern("missing")); ok {
		t.Fatalf("expected missing method lookup to fail")
	}
}
