package exitcheck

import (
	"testing"

	"semcore/internal/diag"
	"semcore/internal/hir"
)

func exitCall(target *hir.Function) *hir.ExprCall {
	return &hir.ExprCall{Target: target}
}

func TestMainWithFinalExitPasses(t *testing.T) {
	exitFn := &hir.Function{Name: 99}
	main := &hir.Function{
		Name: 1,
		Body: &hir.ExprBlock{Stmts: []hir.Stmt{&hir.StmtExpr{Value: exitCall(exitFn)}}},
	}
	diags := diag.NewBag(0)
	c := NewChecker(diags, exitFn)
	c.Check(&hir.Program{Items: []hir.Item{main}}, 1)

	if diags.HasErrors() {
		t.Fatalf("expected no diagnostics, got %d", diags.Len())
	}
}

func TestExitInNonMainFunctionRejected(t *testing.T) {
	exitFn := &hir.Function{Name: 99}
	f := &hir.Function{
		Name: 2,
		Body: &hir.ExprBlock{Stmts: []hir.Stmt{&hir.StmtExpr{Value: exitCall(exitFn)}}},
	}
	main := &hir.Function{
		Name: 1,
		Body: &hir.ExprBlock{Stmts: []hir.Stmt{&hir.StmtExpr{Value: exitCall(exitFn)}}},
	}
	diags := diag.NewBag(0)
	c := NewChecker(diags, exitFn)
	c.Check(&hir.Program{Items: []hir.Item{f, main}}, 1)

	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.ExitOutsideMain {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ExitOutsideMain diagnostic")
	}
}

func TestExitNotFinalRejected(t *testing.T) {
	exitFn := &hir.Function{Name: 99}
	main := &hir.Function{
		Name: 1,
		Body: &hir.ExprBlock{Stmts: []hir.Stmt{
			&hir.StmtExpr{Value: exitCall(exitFn)},
			&hir.StmtLet{Pattern: &hir.PatBinding{}, Init: &hir.ExprLiteral{Kind: hir.LitInt, IntValue: 1}},
		}},
	}
	diags := diag.NewBag(0)
	c := NewChecker(diags, exitFn)
	c.Check(&hir.Program{Items: []hir.Item{main}}, 1)

	foundNotFinal, foundMissing := false, false
	for _, d := range diags.Items() {
		if d.Code == diag.ExitNotFinal {
			foundNotFinal = true
		}
		if d.Code == diag.ExitMissing {
			foundMissing = true
		}
	}
	if !foundNotFinal || !foundMissing {
		t.Fatalf("expected both ExitNotFinal and ExitMissing, got diags=%v", diags.Items())
	}
}

func TestMainMissingExitRejected(t *testing.T) {
	exitFn := &hir.Function{Name: 99}
	main := &hir.Function{Name: 1, Body: &hir.ExprBlock{}}
	diags := diag.NewBag(0)
	c := NewChecker(diags, exitFn)
	c.Check(&hir.Program{Items: []hir.Item{main}}, 1)

	if diags.Len() != 1 || diags.Items()[0].Code != diag.ExitMissing {
		t.Fatalf("expected a single ExitMissing diagnostic, got %v", diags.Items())
	}
}

func TestMainTrailingExprRejected(t *testing.T) {
	exitFn := &hir.Function{Name: 99}
	main := &hir.Function{
		Name: 1,
		Body: &hir.ExprBlock{
			Stmts: []hir.Stmt{&hir.StmtExpr{Value: exitCall(exitFn)}},
			Final: &hir.ExprLiteral{Kind: hir.LitInt, IntValue: 1},
		},
	}
	diags := diag.NewBag(0)
	c := NewChecker(diags, exitFn)
	c.Check(&hir.Program{Items: []hir.Item{main}}, 1)

	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.ExitTrailingExpr {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ExitTrailingExpr diagnostic, got %v", diags.Items())
	}
}

func TestNoMainFunctionRejected(t *testing.T) {
	exitFn := &hir.Function{Name: 99}
	diags := diag.NewBag(0)
	c := NewChecker(diags, exitFn)
	c.Check(&hir.Program{Items: []hir.Item{}}, 1)

	if diags.Len() != 1 || diags.Items()[0].Code != diag.ExitMissing {
		t.Fatalf("expected a single ExitMissing diagnostic, got %v", diags.Items())
	}
}
