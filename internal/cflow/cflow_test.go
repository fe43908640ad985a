package cflow

import (
	"testing"

	"semcore/internal/diag"
	"semcore/internal/hir"
)

func TestLinkBreakTargetsInnermostLoop(t *testing.T) {
	brk := &hir.ExprBreak{}
	inner := &hir.ExprLoop{Body: &hir.ExprBlock{Final: brk}}
	outerBody := &hir.ExprBlock{Stmts: []hir.Stmt{&hir.StmtExpr{Value: inner}}}
	outer := &hir.ExprLoop{Body: outerBody}
	fn := &hir.Function{Body: &hir.ExprBlock{Stmts: []hir.Stmt{&hir.StmtExpr{Value: outer}}}}

	diags := diag.NewBag(0)
	l := NewLinker(diags)
	l.LinkProgram(&hir.Program{Items: []hir.Item{fn}})

	if diags.HasErrors() {
		t.Fatalf("expected no diagnostics, got %d", diags.Len())
	}
	if brk.Target != hir.LoopLike(inner) {
		t.Fatalf("expected break to target the innermost loop")
	}
}

func TestLinkBreakOutsideLoopReported(t *testing.T) {
	brk := &hir.ExprBreak{}
	fn := &hir.Function{Body: &hir.ExprBlock{Final: brk}}

	diags := diag.NewBag(0)
	l := NewLinker(diags)
	l.LinkProgram(&hir.Program{Items: []hir.Item{fn}})

	if diags.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", diags.Len())
	}
	if brk.Target != nil {
		t.Fatalf("expected no target to be assigned")
	}
}

func TestLinkReturnTargetsEnclosingFunction(t *testing.T) {
	ret := &hir.ExprReturn{}
	fn := &hir.Function{Body: &hir.ExprBlock{Final: ret}}

	diags := diag.NewBag(0)
	l := NewLinker(diags)
	l.LinkProgram(&hir.Program{Items: []hir.Item{fn}})

	if diags.HasErrors() {
		t.Fatalf("expected no diagnostics, got %d", diags.Len())
	}
	if ret.Target != hir.FuncLike(fn) {
		t.Fatalf("expected return to target the enclosing function")
	}
}

func TestLinkLoopStackResetsAcrossFunctions(t *testing.T) {
	// `break` inside one function must never see a loop still open in a
	// sibling function (there is no shared loop stack across bodies).
	brk := &hir.ExprBreak{}
	g := &hir.Function{Body: &hir.ExprBlock{Final: brk}}
	loopBody := &hir.ExprBlock{}
	f := &hir.Function{Body: &hir.ExprBlock{
		Stmts: []hir.Stmt{&hir.StmtExpr{Value: &hir.ExprLoop{Body: loopBody}}},
	}}

	diags := diag.NewBag(0)
	l := NewLinker(diags)
	l.LinkProgram(&hir.Program{Items: []hir.Item{f, g}})

	if diags.Len() != 1 {
		t.Fatalf("expected break in g to be reported despite f's loop, got %d", diags.Len())
	}
}
