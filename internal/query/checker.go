// Package query implements the semantic query service (spec §4.5): the
// demand-driven, memoizing engine behind type_query, expr_query,
// const_query, and bind_pattern_type, plus the expression checker
// (spec §4.6) that backs expr_query.
package query

import (
	"semcore/internal/diag"
	"semcore/internal/hir"
	"semcore/internal/source"
	"semcore/internal/symbols"
	"semcore/internal/types"
)

// Checker is the query service's receiver. One Checker serves an entire
// Program; its caches (ExprInfo slots, const-eval in-progress set) are
// shared across every item analyzed through it.
type Checker struct {
	Types   *types.Interner
	Table   *symbols.Table
	Impls   *symbols.ImplTable
	Defs    *symbols.DefHandles
	Strings *source.Interner
	Diags   *diag.Bag

	// ExitBuiltin is the registered exit() Function node (spec §6.3); its
	// identity, not its name, is what marks a call as diverging and what
	// the exit-check pass looks for.
	ExitBuiltin *hir.Function

	constVisiting map[hir.Expr]bool
}

// NewChecker wires a Checker against the shared tables built by name
// resolution (spec §5 "Shared resources").
func NewChecker(ty *types.Interner, table *symbols.Table, impls *symbols.ImplTable, defs *symbols.DefHandles, strings *source.Interner, diags *diag.Bag) *Checker {
	return &Checker{
		Types:         ty,
		Table:         table,
		Impls:         impls,
		Defs:          defs,
		Strings:       strings,
		Diags:         diags,
		constVisiting: make(map[hir.Expr]bool),
	}
}

func (c *Checker) report(code diag.Code, span source.Span, msg string) {
	c.Diags.Add(diag.NewError(code, span, msg))
}

func (c *Checker) errInfo() hir.ExprInfo {
	return hir.ExprInfo{Type: c.Types.Invalid(), HasType: false}
}
