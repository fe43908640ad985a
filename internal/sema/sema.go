// Package sema is the top-level driver: it wires the scope/type tables
// together and runs the four passes in the order spec §5 mandates (name
// resolution → control-flow linking → semantic checking → exit check),
// mirroring the teacher's own sema.Options/sema.Result entry point
// shape (see sema/checker.go in the teacher repo) generalized to this
// spec's pass list.
package sema

import (
	"semcore/internal/cflow"
	"semcore/internal/diag"
	"semcore/internal/exitcheck"
	"semcore/internal/hir"
	"semcore/internal/query"
	"semcore/internal/resolve"
	"semcore/internal/source"
	"semcore/internal/symbols"
	"semcore/internal/types"
)

// Options configures a single run of the semantic core over one Program.
type Options struct {
	Strings *source.Interner

	// MaxDiagnostics caps the diagnostic bag (0 means unbounded); spec
	// §7's fail-fast-within-an-item policy still applies independently
	// of this cap.
	MaxDiagnostics int
}

// Result is everything a caller (a driver stage further down the
// pipeline, or a test) needs after running the semantic core.
type Result struct {
	Types *types.Interner
	Table *symbols.Table
	Impls *symbols.ImplTable
	Defs  *symbols.DefHandles
	Diags *diag.Bag
}

// Run executes every pass of the semantic core over prog and returns
// the shared tables plus the diagnostics collected along the way.
// Passes run unconditionally in sequence; each pass's own diagnostics
// land in the same Bag, and a later pass still runs even if an earlier
// one reported errors (spec §7: "multi-error across items").
func Run(prog *hir.Program, opts Options) Result {
	diags := diag.NewBag(opts.MaxDiagnostics)
	ty := types.NewInterner()
	table := symbols.NewTable()
	builtins := symbols.RegisterBuiltins(table, opts.Strings, ty)
	impls := symbols.NewImplTable()
	defs := symbols.NewDefHandles()

	r := resolve.NewResolver(opts.Strings, table, impls, diags)
	r.Resolve(prog)

	checker := query.NewChecker(ty, table, impls, defs, opts.Strings, diags)
	checker.ExitBuiltin = builtins.Exit
	registerStructFieldTypes(checker, prog)

	linker := cflow.NewLinker(diags)
	linker.LinkProgram(prog)

	checkProgram(checker, prog)

	exitChecker := exitcheck.NewChecker(diags, builtins.Exit)
	exitChecker.Check(prog, opts.Strings.Intern("main"))

	diags.Sort()
	return Result{Types: ty, Table: table, Impls: impls, Defs: defs, Diags: diags}
}

// registerStructFieldTypes resolves every struct's field types up front
// and records them with the type universe, so IsCopy (spec §4.1) can
// answer without depending on the HIR package.
func registerStructFieldTypes(c *query.Checker, prog *hir.Program) {
	for _, item := range prog.Items {
		sd, ok := item.(*hir.StructDef)
		if !ok {
			continue
		}
		handle := c.Defs.Handle(sd)
		sd.TypeDef = handle
		fieldTypes := make([]types.TypeID, len(sd.Fields))
		for i, f := range sd.Fields {
			fieldTypes[i] = c.TypeQuery(f.Type)
		}
		c.Types.RegisterStructFields(handle, fieldTypes)
	}
}

// checkProgram runs the expression checker over every function/method
// body and every top-level const's initializer.
func checkProgram(c *query.Checker, prog *hir.Program) {
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *hir.Function:
			checkFunction(c, it)
		case *hir.ConstDef:
			c.ConstQueryDef(it)
		case *hir.Impl:
			for _, assoc := range it.Items {
				switch a := assoc.(type) {
				case *hir.Function:
					checkFunction(c, a)
				case *hir.Method:
					checkMethod(c, a)
				case *hir.ConstDef:
					c.ConstQueryDef(a)
				}
			}
		}
	}
}

func bindParams(c *query.Checker, params []hir.Param) {
	for i := range params {
		p := &params[i]
		c.BindPatternType(p.Pattern, c.TypeQuery(p.Type))
	}
}

func checkFunction(c *query.Checker, fn *hir.Function) {
	if fn.Body == nil {
		return
	}
	bindParams(c, fn.Params)
	retTy := c.Types.Unit()
	if fn.ReturnType != nil {
		retTy = c.TypeQuery(fn.ReturnType)
	}
	c.ExprQuery(fn.Body, query.Exact(retTy))
}

func checkMethod(c *query.Checker, m *hir.Method) {
	if m.Body == nil {
		return
	}
	bindParams(c, m.Params)
	retTy := c.Types.Unit()
	if m.ReturnType != nil {
		retTy = c.TypeQuery(m.ReturnType)
	}
	c.ExprQuery(m.Body, query.Exact(retTy))
}
