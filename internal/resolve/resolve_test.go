package resolve

import (
	"testing"

	"semcore/internal/ast"
	"semcore/internal/diag"
	"semcore/internal/hir"
	"semcore/internal/source"
	"semcore/internal/symbols"
	"semcore/internal/types"
)

func newFixture() (*Resolver, *source.Interner, *symbols.Table) {
	strings := source.NewInterner()
	ty := types.NewInterner()
	table := symbols.NewTable()
	symbols.RegisterBuiltins(table, strings, ty)
	impls := symbols.NewImplTable()
	diags := diag.NewBag(0)
	return NewResolver(strings, table, impls, diags), strings, table
}

func primAnn(p types.PrimitiveKind) *hir.TypeAnnotation {
	return hir.NewUnresolvedType(&hir.TypeNodePrimitive{Prim: p})
}

func path1(id source.StringID) ast.Path {
	return ast.Path{Segments: []source.StringID{id}}
}

func TestResolveLetDefersBindingFromItsOwnInitializer(t *testing.T) {
	r, strings, table := newFixture()
	x := strings.Intern("x")

	// let x = x; -- the outer x is undefined (no shadow target exists),
	// so the initializer path must fail to resolve.
	init := &hir.ExprPath{Path: path1(x)}
	let := &hir.StmtLet{
		Pattern: &hir.PatBinding{Name: x},
		Init:    init,
	}
	block := &hir.ExprBlock{Stmts: []hir.Stmt{let}}
	fn := &hir.Function{Name: strings.Intern("f"), Body: block}

	r.collectItem(table.Global, fn)
	r.resolveItem(table.Global, fn)

	if init.Resolved != nil {
		t.Fatalf("expected `x` in the initializer to be unresolved, got %v", init.Resolved)
	}
	if r.Diags.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", r.Diags.Len())
	}
}

func TestResolveLetBindingVisibleToLaterStatements(t *testing.T) {
	r, strings, table := newFixture()
	x := strings.Intern("x")

	let := &hir.StmtLet{
		Pattern: &hir.PatBinding{Name: x},
		Init:    &hir.ExprLiteral{Kind: hir.LitInt, IntValue: 1},
	}
	use := &hir.ExprPath{Path: path1(x)}
	block := &hir.ExprBlock{
		Stmts: []hir.Stmt{let, &hir.StmtExpr{Value: use}},
	}
	fn := &hir.Function{Name: strings.Intern("f"), Body: block}

	r.collectItem(table.Global, fn)
	r.resolveItem(table.Global, fn)

	if r.Diags.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %d", r.Diags.Len())
	}
	binding, ok := let.Pattern.(*hir.PatBinding)
	if !ok || use.Resolved != hir.ValueDef(binding.Def) {
		t.Fatalf("expected later use of x to resolve to the let binding")
	}
}

func TestResolveStructLiteralCanonicalizesFieldOrder(t *testing.T) {
	r, strings, table := newFixture()
	nameA, nameB := strings.Intern("a"), strings.Intern("b")
	structName := strings.Intern("Point")

	sd := &hir.StructDef{
		Name: structName,
		Fields: []hir.StructField{
			{Name: nameA, Type: primAnn(types.PrimI32)},
			{Name: nameB, Type: primAnn(types.PrimI32)},
		},
	}
	table.DefineType(table.Global, structName, sd)

	valA := &hir.ExprLiteral{Kind: hir.LitInt, IntValue: 1}
	valB := &hir.ExprLiteral{Kind: hir.LitInt, IntValue: 2}
	lit := &hir.ExprStructLit{
		TypeName: path1(structName),
		Fields: []hir.StructLitField{
			{Name: nameB, Value: valB},
			{Name: nameA, Value: valA},
		},
	}

	r.resolveExpr(table.Global, lit)

	if r.Diags.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %d", r.Diags.Len())
	}
	if len(lit.CanonicalValues) != 2 || lit.CanonicalValues[0] != hir.Expr(valA) || lit.CanonicalValues[1] != hir.Expr(valB) {
		t.Fatalf("expected canonical values in declaration order [a, b]")
	}
}

func TestResolveStructLiteralMissingFieldReported(t *testing.T) {
	r, strings, table := newFixture()
	nameA, nameB := strings.Intern("a"), strings.Intern("b")
	structName := strings.Intern("Point")

	sd := &hir.StructDef{
		Name: structName,
		Fields: []hir.StructField{
			{Name: nameA, Type: primAnn(types.PrimI32)},
			{Name: nameB, Type: primAnn(types.PrimI32)},
		},
	}
	table.DefineType(table.Global, structName, sd)

	lit := &hir.ExprStructLit{
		TypeName: path1(structName),
		Fields: []hir.StructLitField{
			{Name: nameA, Value: &hir.ExprLiteral{Kind: hir.LitInt, IntValue: 1}},
		},
	}

	r.resolveExpr(table.Global, lit)

	if r.Diags.Len() != 1 {
		t.Fatalf("expected exactly one missing-field diagnostic, got %d", r.Diags.Len())
	}
}

func TestResolveSelfInsideImpl(t *testing.T) {
	r, strings, table := newFixture()
	structName := strings.Intern("Counter")
	methodName := strings.Intern("reset")

	sd := &hir.StructDef{Name: structName}
	table.DefineType(table.Global, structName, sd)

	retAnn := hir.NewUnresolvedType(&hir.TypeNodePath{Path: path1(strings.Intern("Self"))})
	method := &hir.Method{Name: methodName, Self: hir.SelfByValue, ReturnType: retAnn, Body: &hir.ExprBlock{}}
	impl := &hir.Impl{
		TargetAnnotation: hir.NewUnresolvedType(&hir.TypeNodePath{Path: path1(structName)}),
		Items:            []hir.ImplItem{method},
	}

	r.collectItem(table.Global, impl)
	if r.Diags.Len() != 0 {
		t.Fatalf("expected no diagnostics collecting the impl, got %d", r.Diags.Len())
	}
	r.resolveItem(table.Global, impl)
	if r.Diags.Len() != 0 {
		t.Fatalf("expected no diagnostics resolving the method, got %d", r.Diags.Len())
	}

	selfDef, ok := table.SelfType(symbols.ScopeID(retAnn.DeclScope))
	if !ok || selfDef != hir.TypeDef(sd) {
		t.Fatalf("expected the method's return-type scope to resolve Self to Counter")
	}
}

func TestResolveDuplicateTopLevelItem(t *testing.T) {
	r, strings, table := newFixture()
	name := strings.Intern("f")
	a := &hir.Function{Name: name}
	b := &hir.Function{Name: name}

	r.collectItem(table.Global, a)
	r.collectItem(table.Global, b)

	if r.Diags.Len() != 1 {
		t.Fatalf("expected exactly one duplicate-item diagnostic, got %d", r.Diags.Len())
	}
}
