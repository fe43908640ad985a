package sema

import (
	"testing"

	"semcore/internal/ast"
	"semcore/internal/diag"
	"semcore/internal/hir"
	"semcore/internal/source"
	"semcore/internal/types"
)

func path1(id source.StringID) ast.Path {
	return ast.Path{Segments: []source.StringID{id}}
}

func primType(p types.PrimitiveKind) *hir.TypeAnnotation {
	return hir.NewUnresolvedType(&hir.TypeNodePrimitive{Prim: p})
}

func exitCallTo(strings *source.Interner) *hir.ExprCall {
	return &hir.ExprCall{Callee: path1(strings.Intern("exit")), Args: []hir.Expr{
		&hir.ExprLiteral{Kind: hir.LitInt, IntValue: 0},
	}}
}

// Scenario 1 (spec §8.1): `fn main() { let x: i32 = 1 + 2; exit(0); }`.
func TestScenario1LetWithAnnotationAndArith(t *testing.T) {
	strings := source.NewInterner()
	x := strings.Intern("x")

	init := &hir.ExprBinaryOp{
		Op:    hir.BinAdd,
		Left:  &hir.ExprLiteral{Kind: hir.LitInt, IntValue: 1},
		Right: &hir.ExprLiteral{Kind: hir.LitInt, IntValue: 2},
	}
	let := &hir.StmtLet{Pattern: &hir.PatBinding{Name: x}, Type: primType(types.PrimI32), Init: init}
	main := &hir.Function{
		Name: strings.Intern("main"),
		Body: &hir.ExprBlock{Stmts: []hir.Stmt{
			let,
			&hir.StmtExpr{Value: exitCallTo(strings)},
		}},
	}

	prog := &hir.Program{Items: []hir.Item{main}}
	res := Run(prog, Options{Strings: strings})

	if res.Diags.HasErrors() {
		t.Fatalf("expected no errors, got %v", res.Diags.Items())
	}
	binding := let.Pattern.(*hir.PatBinding)
	gotTy := binding.Def.Local.Type.Resolved
	if gotTy != res.Types.Primitive(types.PrimI32) {
		t.Fatalf("expected x's type to be I32")
	}
	cv, ok := init.Base().Info.Const()
	if !ok || cv.Kind != hir.ConstInt || cv.Int != 3 {
		t.Fatalf("expected 1+2 to const-fold to IntConst(3), got %+v ok=%v", cv, ok)
	}
}

// Scenario 2 (spec §8.2): `fn main() { let x = 1; exit(0); }` -- x
// defaults to I32 since nothing pins it to a concrete width.
func TestScenario2LetWithoutAnnotationDefaultsI32(t *testing.T) {
	strings := source.NewInterner()
	x := strings.Intern("x")

	let := &hir.StmtLet{Pattern: &hir.PatBinding{Name: x}, Init: &hir.ExprLiteral{Kind: hir.LitInt, IntValue: 1}}
	main := &hir.Function{
		Name: strings.Intern("main"),
		Body: &hir.ExprBlock{Stmts: []hir.Stmt{let, &hir.StmtExpr{Value: exitCallTo(strings)}}},
	}

	prog := &hir.Program{Items: []hir.Item{main}}
	res := Run(prog, Options{Strings: strings})

	if res.Diags.HasErrors() {
		t.Fatalf("expected no errors, got %v", res.Diags.Items())
	}
	binding := let.Pattern.(*hir.PatBinding)
	if binding.Def.Local.Type.Resolved != res.Types.Primitive(types.PrimI32) {
		t.Fatalf("expected x to default to I32")
	}
}

// Scenario 4 (spec §8.4): `fn main() { let x = 1; x = 2; exit(0); }` --
// rejected because x is not declared mutable.
func TestScenario4AssignToImmutableRejected(t *testing.T) {
	strings := source.NewInterner()
	x := strings.Intern("x")

	let := &hir.StmtLet{Pattern: &hir.PatBinding{Name: x}, Init: &hir.ExprLiteral{Kind: hir.LitInt, IntValue: 1}}
	assign := &hir.ExprAssign{
		LHS: &hir.ExprPath{Path: path1(x)},
		RHS: &hir.ExprLiteral{Kind: hir.LitInt, IntValue: 2},
	}
	main := &hir.Function{
		Name: strings.Intern("main"),
		Body: &hir.ExprBlock{Stmts: []hir.Stmt{
			let,
			&hir.StmtExpr{Value: assign},
			&hir.StmtExpr{Value: exitCallTo(strings)},
		}},
	}

	prog := &hir.Program{Items: []hir.Item{main}}
	res := Run(prog, Options{Strings: strings})

	found := false
	for _, d := range res.Diags.Items() {
		if d.Code == diag.ExprMutabilityViolation {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a mutability-violation diagnostic, got %v", res.Diags.Items())
	}
}

// Scenario 5 (spec §8.5): `fn f() { exit(0); } fn main() { exit(0); }`
// -- rejected because exit() appears in a non-main function.
func TestScenario5ExitInNonMainFunctionRejected(t *testing.T) {
	strings := source.NewInterner()
	f := &hir.Function{Name: strings.Intern("f"), Body: &hir.ExprBlock{
		Stmts: []hir.Stmt{&hir.StmtExpr{Value: exitCallTo(strings)}},
	}}
	main := &hir.Function{Name: strings.Intern("main"), Body: &hir.ExprBlock{
		Stmts: []hir.Stmt{&hir.StmtExpr{Value: exitCallTo(strings)}},
	}}

	prog := &hir.Program{Items: []hir.Item{f, main}}
	res := Run(prog, Options{Strings: strings})

	found := false
	for _, d := range res.Diags.Items() {
		if d.Code == diag.ExitOutsideMain {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ExitOutsideMain, got %v", res.Diags.Items())
	}
}

// Scenario 6 (spec §8.6): `fn main() { exit(0); let x = 1; }` --
// rejected because exit() is not the final statement.
func TestScenario6ExitNotFinalRejected(t *testing.T) {
	strings := source.NewInterner()
	main := &hir.Function{Name: strings.Intern("main"), Body: &hir.ExprBlock{
		Stmts: []hir.Stmt{
			&hir.StmtExpr{Value: exitCallTo(strings)},
			&hir.StmtLet{Pattern: &hir.PatBinding{Name: strings.Intern("x")}, Init: &hir.ExprLiteral{Kind: hir.LitInt, IntValue: 1}},
		},
	}}

	prog := &hir.Program{Items: []hir.Item{main}}
	res := Run(prog, Options{Strings: strings})

	found := false
	for _, d := range res.Diags.Items() {
		if d.Code == diag.ExitNotFinal {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ExitNotFinal, got %v", res.Diags.Items())
	}
}

// Scenario 7 (spec §8.7): `const A: i32 = B; const B: i32 = A; fn main()
// { exit(0); }` -- const_query returns None on the cycle; both consts
// are flagged as not constant.
func TestScenario7CyclicConstsRejected(t *testing.T) {
	strings := source.NewInterner()
	aName, bName := strings.Intern("A"), strings.Intern("B")

	a := &hir.ConstDef{Name: aName, Type: primType(types.PrimI32)}
	b := &hir.ConstDef{Name: bName, Type: primType(types.PrimI32)}
	a.Init = &hir.ExprPath{Path: path1(bName)}
	b.Init = &hir.ExprPath{Path: path1(aName)}

	main := &hir.Function{Name: strings.Intern("main"), Body: &hir.ExprBlock{
		Stmts: []hir.Stmt{&hir.StmtExpr{Value: exitCallTo(strings)}},
	}}

	prog := &hir.Program{Items: []hir.Item{a, b, main}}
	res := Run(prog, Options{Strings: strings})

	// Neither const resolves to a value (spec §8.7): const_query returns
	// None on the cycle for both, and at least one diagnostic names each.
	if a.ConstValue != nil || b.ConstValue != nil {
		t.Fatalf("expected neither const to resolve a value, got A=%v B=%v", a.ConstValue, b.ConstValue)
	}
	sawA, sawB := false, false
	for _, d := range res.Diags.Items() {
		if d.Code != diag.ConstRequirementFailed {
			continue
		}
		if strings.MustLookup(aName) != "" && contains(d.Message, "A") {
			sawA = true
		}
		if contains(d.Message, "B") {
			sawB = true
		}
	}
	if !sawA || !sawB {
		t.Fatalf("expected both A and B to be flagged non-constant, got %v", res.Diags.Items())
	}
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

// Scenario 8 (spec §8.8): `fn main() { loop { break 3; } exit(0); }` --
// the loop's result type unifies from `break 3`'s payload to I32.
func TestScenario8LoopResultTypeFromBreak(t *testing.T) {
	strings := source.NewInterner()
	brk := &hir.ExprBreak{Value: &hir.ExprLiteral{Kind: hir.LitInt, IntValue: 3}}
	loop := &hir.ExprLoop{Body: &hir.ExprBlock{Final: brk}}
	main := &hir.Function{Name: strings.Intern("main"), Body: &hir.ExprBlock{
		Stmts: []hir.Stmt{
			&hir.StmtExpr{Value: loop},
			&hir.StmtExpr{Value: exitCallTo(strings)},
		},
	}}

	prog := &hir.Program{Items: []hir.Item{main}}
	res := Run(prog, Options{Strings: strings})

	if res.Diags.HasErrors() {
		t.Fatalf("expected no errors, got %v", res.Diags.Items())
	}
	if !loop.HasBreak || loop.ResultType != res.Types.Primitive(types.PrimI32) {
		t.Fatalf("expected the loop's result type to default to I32, got %v (hasBreak=%v)", loop.ResultType, loop.HasBreak)
	}
}

// A non-main function that references its own parameter must see that
// parameter's declared type, not Unit (spec §4.6 "Path to binding: type
// of the referenced Local"): `fn f(x: i32) -> i32 { x + 1 }`.
func TestParamReferenceTypedFromDeclaration(t *testing.T) {
	strings := source.NewInterner()
	x := strings.Intern("x")

	body := &hir.ExprBlock{Final: &hir.ExprBinaryOp{
		Op:    hir.BinAdd,
		Left:  &hir.ExprPath{Path: path1(x)},
		Right: &hir.ExprLiteral{Kind: hir.LitInt, IntValue: 1},
	}}
	f := &hir.Function{
		Name:       strings.Intern("f"),
		Params:     []hir.Param{{Pattern: &hir.PatBinding{Name: x}, Type: primType(types.PrimI32)}},
		ReturnType: primType(types.PrimI32),
		Body:       body,
	}
	main := &hir.Function{Name: strings.Intern("main"), Body: &hir.ExprBlock{
		Stmts: []hir.Stmt{&hir.StmtExpr{Value: exitCallTo(strings)}},
	}}

	prog := &hir.Program{Items: []hir.Item{f, main}}
	res := Run(prog, Options{Strings: strings})

	if res.Diags.HasErrors() {
		t.Fatalf("expected no errors, got %v", res.Diags.Items())
	}
	param := f.Params[0].Pattern.(*hir.PatBinding)
	if param.Def.Local.Type.Resolved != res.Types.Primitive(types.PrimI32) {
		t.Fatalf("expected param x to be typed I32, got %+v", param.Def.Local.Type)
	}
}
