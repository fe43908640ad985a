// Package exitcheck implements the exit-check pass (spec §4.8): it
// validates that the builtin `exit()` is used only as the final
// statement of the top-level `main` function, that `main` always
// contains such a call, and that `main`'s body carries no trailing
// expression. It is grounded on the teacher's entrypoint-shape
// validation (validateEntrypoint in its sema package), generalized from
// "does the entrypoint signature satisfy its contract" to "does exit()
// sit exactly where the language requires it to sit".
package exitcheck

import (
	"semcore/internal/diag"
	"semcore/internal/hir"
	"semcore/internal/source"
)

// Checker runs the exit-check pass against a Program using the
// identity of the registered `exit` builtin to recognize calls to it
// (spec §6.3: identity, not name, is what the pass keys on).
type Checker struct {
	Diags       *diag.Bag
	ExitBuiltin *hir.Function
}

// NewChecker builds a Checker reporting into diags.
func NewChecker(diags *diag.Bag, exitBuiltin *hir.Function) *Checker {
	return &Checker{Diags: diags, ExitBuiltin: exitBuiltin}
}

func (c *Checker) report(code diag.Code, span source.Span, msg string) {
	c.Diags.Add(diag.NewError(code, span, msg))
}

// Check walks prog. A top-level function is "main" iff it's a direct
// top-level Item (not an impl method/assoc item) and its name is
// "main"; every other function/method body is checked only for
// *forbidden* exit() calls (spec §4.8 rule 1).
func (c *Checker) Check(prog *hir.Program, mainName source.StringID) {
	var main *hir.Function
	for _, item := range prog.Items {
		if fn, ok := item.(*hir.Function); ok && fn.Name == mainName {
			main = fn
			break
		}
	}

	for _, item := range prog.Items {
		switch it := item.(type) {
		case *hir.Function:
			if it == main {
				continue
			}
			c.forbidExit(it.Body)
		case *hir.Impl:
			for _, assoc := range it.Items {
				switch a := assoc.(type) {
				case *hir.Function:
					c.forbidExit(a.Body)
				case *hir.Method:
					c.forbidExit(a.Body)
				}
			}
		}
	}

	if main == nil {
		c.report(diag.ExitMissing, source.Span{}, "program has no top-level `main` function")
		return
	}
	c.checkMain(main)
}

// forbidExit reports every exit() call found anywhere in body: exit()
// is wholly forbidden outside main (spec §4.8 rule 1).
func (c *Checker) forbidExit(body *hir.ExprBlock) {
	c.walkBlock(body, func(call *hir.ExprCall) {
		c.report(diag.ExitOutsideMain, call.Span, "`exit()` used outside the top-level `main` function")
	})
}

func (c *Checker) checkMain(main *hir.Function) {
	body := main.Body
	if body == nil {
		c.report(diag.ExitMissing, main.Span, "`main` has no body")
		return
	}

	if body.Final != nil {
		c.report(diag.ExitTrailingExpr, body.Final.Base().Span, "`main` must not have a trailing expression after its final `exit()` call")
	}

	final, isFinal := lastStmtExit(body, c.ExitBuiltin)

	// Any exit() call not in the canonical final-statement position is a
	// violation, including a second exit() earlier in the body.
	c.walkBlock(body, func(call *hir.ExprCall) {
		if isFinal && call == final {
			return
		}
		c.report(diag.ExitNotFinal, call.Span, "`exit()` must be the final statement of `main`")
	})

	if !isFinal {
		c.report(diag.ExitMissing, body.Span, "`main` must end with a call to `exit()`")
	}
}

// lastStmtExit reports whether body's final statement is exactly
// `exit(...)`, and returns that call node.
func lastStmtExit(body *hir.ExprBlock, exitBuiltin *hir.Function) (*hir.ExprCall, bool) {
	if len(body.Stmts) == 0 {
		return nil, false
	}
	last, ok := body.Stmts[len(body.Stmts)-1].(*hir.StmtExpr)
	if !ok {
		return nil, false
	}
	call, ok := last.Value.(*hir.ExprCall)
	if !ok || call.Target != hir.ValueDef(exitBuiltin) {
		return nil, false
	}
	return call, true
}

// walkBlock visits every ExprCall reachable from body, invoking visit
// whenever it targets the registered exit builtin.
func (c *Checker) walkBlock(block *hir.ExprBlock, visit func(*hir.ExprCall)) {
	if block == nil {
		return
	}
	for _, stmt := range block.Stmts {
		switch s := stmt.(type) {
		case *hir.StmtLet:
			c.walkExpr(s.Init, visit)
		case *hir.StmtExpr:
			c.walkExpr(s.Value, visit)
		}
	}
	c.walkExpr(block.Final, visit)
}

func (c *Checker) walkExpr(expr hir.Expr, visit func(*hir.ExprCall)) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *hir.ExprCall:
		if e.Target != nil && e.Target == hir.ValueDef(c.ExitBuiltin) {
			visit(e)
		}
		for _, a := range e.Args {
			c.walkExpr(a, visit)
		}

	case *hir.ExprBinaryOp:
		c.walkExpr(e.Left, visit)
		c.walkExpr(e.Right, visit)
	case *hir.ExprUnaryOp:
		c.walkExpr(e.Operand, visit)
	case *hir.ExprReference:
		c.walkExpr(e.Operand, visit)
	case *hir.ExprDeref:
		c.walkExpr(e.Operand, visit)
	case *hir.ExprMethodCall:
		c.walkExpr(e.Receiver, visit)
		for _, a := range e.Args {
			c.walkExpr(a, visit)
		}
	case *hir.ExprFieldAccess:
		c.walkExpr(e.Receiver, visit)
	case *hir.ExprIndex:
		c.walkExpr(e.Array, visit)
		c.walkExpr(e.Index, visit)
	case *hir.ExprStructLit:
		for _, v := range e.CanonicalValues {
			c.walkExpr(v, visit)
		}
	case *hir.ExprArrayLit:
		for _, el := range e.Elements {
			c.walkExpr(el, visit)
		}
	case *hir.ExprArrayRepeat:
		c.walkExpr(e.Value, visit)
		c.walkExpr(e.Size, visit)
	case *hir.ExprBlock:
		c.walkBlock(e, visit)
	case *hir.ExprIf:
		c.walkExpr(e.Cond, visit)
		c.walkBlock(e.Then, visit)
		c.walkExpr(e.Else, visit)
	case *hir.ExprLoop:
		c.walkBlock(e.Body, visit)
	case *hir.ExprWhile:
		c.walkExpr(e.Cond, visit)
		c.walkBlock(e.Body, visit)
	case *hir.ExprBreak:
		c.walkExpr(e.Value, visit)
	case *hir.ExprReturn:
		c.walkExpr(e.Value, visit)
	case *hir.ExprAssign:
		c.walkExpr(e.LHS, visit)
		c.walkExpr(e.RHS, visit)
	case *hir.ExprCompoundAssign:
		c.walkExpr(e.LHS, visit)
		c.walkExpr(e.RHS, visit)
	case *hir.ExprCast:
		c.walkExpr(e.Operand, visit)
	}
}
