// Package cflow implements the control-flow linking pass (spec §4.7):
// it walks each function/method body maintaining an explicit loop and
// function stack, and fills in ExprBreak.Target, ExprContinue.Target,
// and ExprReturn.Target with the exact enclosing node each one escapes
// to, reporting an error when the relevant stack is empty. It runs
// after name resolution and before the expression checker, so
// expr_query never has to search for a target itself (spec §5
// "Ordering guarantees").
package cflow

import (
	"semcore/internal/diag"
	"semcore/internal/hir"
)

// Linker holds the two stacks this pass threads through a body walk.
type Linker struct {
	Diags *diag.Bag

	funcs []hir.FuncLike
	loops []hir.LoopLike
}

// NewLinker builds a Linker reporting into diags.
func NewLinker(diags *diag.Bag) *Linker {
	return &Linker{Diags: diags}
}

func (l *Linker) report(code diag.Code, span hir.Expr, msg string) {
	l.Diags.Add(diag.NewError(code, span.Base().Span, msg))
}

// LinkProgram runs the pass over every function and impl method body in
// prog.
func (l *Linker) LinkProgram(prog *hir.Program) {
	for _, item := range prog.Items {
		l.linkItem(item)
	}
}

func (l *Linker) linkItem(item hir.Item) {
	switch it := item.(type) {
	case *hir.Function:
		l.linkFuncLike(it, it.Body)
	case *hir.Impl:
		for _, assoc := range it.Items {
			switch a := assoc.(type) {
			case *hir.Function:
				l.linkFuncLike(a, a.Body)
			case *hir.Method:
				l.linkFuncLike(a, a.Body)
			}
		}
	}
}

func (l *Linker) linkFuncLike(fn hir.FuncLike, body *hir.ExprBlock) {
	l.funcs = append(l.funcs, fn)
	// Each function body starts with an empty loop stack: `break`
	// cannot reach through an enclosing function into an outer loop
	// (there is no such thing here since nested function definitions
	// aren't expressions), but being explicit keeps the invariant
	// obvious if that ever changes.
	savedLoops := l.loops
	l.loops = nil

	l.linkBlock(body)

	l.loops = savedLoops
	l.funcs = l.funcs[:len(l.funcs)-1]
}

func (l *Linker) linkBlock(block *hir.ExprBlock) {
	if block == nil {
		return
	}
	for _, stmt := range block.Stmts {
		switch s := stmt.(type) {
		case *hir.StmtLet:
			l.linkExpr(s.Init)
		case *hir.StmtExpr:
			l.linkExpr(s.Value)
		}
	}
	l.linkExpr(block.Final)
}

func (l *Linker) linkExpr(expr hir.Expr) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *hir.ExprLiteral, *hir.ExprPath:
		// leaves

	case *hir.ExprBinaryOp:
		l.linkExpr(e.Left)
		l.linkExpr(e.Right)

	case *hir.ExprUnaryOp:
		l.linkExpr(e.Operand)

	case *hir.ExprReference:
		l.linkExpr(e.Operand)

	case *hir.ExprDeref:
		l.linkExpr(e.Operand)

	case *hir.ExprCall:
		for _, a := range e.Args {
			l.linkExpr(a)
		}

	case *hir.ExprMethodCall:
		l.linkExpr(e.Receiver)
		for _, a := range e.Args {
			l.linkExpr(a)
		}

	case *hir.ExprFieldAccess:
		l.linkExpr(e.Receiver)

	case *hir.ExprIndex:
		l.linkExpr(e.Array)
		l.linkExpr(e.Index)

	case *hir.ExprStructLit:
		for _, v := range e.CanonicalValues {
			l.linkExpr(v)
		}

	case *hir.ExprArrayLit:
		for _, el := range e.Elements {
			l.linkExpr(el)
		}

	case *hir.ExprArrayRepeat:
		l.linkExpr(e.Value)
		l.linkExpr(e.Size)

	case *hir.ExprBlock:
		l.linkBlock(e)

	case *hir.ExprIf:
		l.linkExpr(e.Cond)
		l.linkBlock(e.Then)
		l.linkExpr(e.Else)

	case *hir.ExprLoop:
		l.loops = append(l.loops, e)
		l.linkBlock(e.Body)
		l.loops = l.loops[:len(l.loops)-1]

	case *hir.ExprWhile:
		l.linkExpr(e.Cond)
		l.loops = append(l.loops, e)
		l.linkBlock(e.Body)
		l.loops = l.loops[:len(l.loops)-1]

	case *hir.ExprBreak:
		l.linkExpr(e.Value)
		if n := len(l.loops); n > 0 {
			e.Target = l.loops[n-1]
		} else {
			l.report(diag.CFlowBreakOutsideLoop, e, "`break` used outside a loop")
		}

	case *hir.ExprContinue:
		if n := len(l.loops); n > 0 {
			e.Target = l.loops[n-1]
		} else {
			l.report(diag.CFlowContinueOutsideLoop, e, "`continue` used outside a loop")
		}

	case *hir.ExprReturn:
		l.linkExpr(e.Value)
		if n := len(l.funcs); n > 0 {
			e.Target = l.funcs[n-1]
		} else {
			l.report(diag.CFlowReturnOutsideFunction, e, "`return` used outside a function")
		}

	case *hir.ExprAssign:
		l.linkExpr(e.LHS)
		l.linkExpr(e.RHS)

	case *hir.ExprCompoundAssign:
		l.linkExpr(e.LHS)
		l.linkExpr(e.RHS)

	case *hir.ExprCast:
		l.linkExpr(e.Operand)
	}
}
