package query

import (
	"context"

	"semcore/internal/diag"
	"semcore/internal/hir"
	"semcore/internal/trace"
	"semcore/internal/types"
)

// ConstQuery implements const_query(expr, expected_type) (spec §4.5.3):
// cycle-protected constant evaluation of a single expression.
func (c *Checker) ConstQuery(expr hir.Expr, expected types.TypeID) (hir.ConstVariant, bool) {
	if expr == nil {
		return hir.ConstVariant{}, false
	}
	if c.constVisiting[expr] {
		return hir.ConstVariant{}, false
	}
	c.constVisiting[expr] = true
	defer delete(c.constVisiting, expr)

	info := c.ExprQuery(expr, Expectation{Kind: ExpectExactConst, Type: expected})
	return info.Const()
}

// ConstQueryDef is the persistent variant of const_query for a ConstDef
// (spec §4.5.3): the resolved value is memoized directly on the
// definition, so repeat references to the same const don't re-evaluate.
func (c *Checker) ConstQueryDef(def *hir.ConstDef) (hir.ConstVariant, bool) {
	if def.ConstValue != nil {
		return *def.ConstValue, true
	}
	declared := c.TypeQuery(def.Type)
	v, ok := c.ConstQuery(def.Init, declared)
	if !ok {
		name, _ := c.Strings.Lookup(def.Name)
		c.report(diag.ConstRequirementFailed, def.ItemSpan(), "const "+name+" is not a constant expression")
		trace.Detail(context.Background(), "const_query", "cycle or non-const initializer")
		return hir.ConstVariant{}, false
	}
	def.ConstValue = &v
	return v, true
}
