// Package resolve implements the name resolution pass (spec §4.4): it
// walks the HIR, builds the scope hierarchy, links every identifier to
// its definition, and canonicalizes struct literals. It runs before
// control-flow linking and the expression checker (spec §5 "Ordering
// guarantees").
package resolve

import (
	"semcore/internal/diag"
	"semcore/internal/hir"
	"semcore/internal/source"
	"semcore/internal/symbols"
)

// Resolver holds the shared tables populated by this pass. A single
// Resolver serves one Program.
type Resolver struct {
	Strings *source.Interner
	Table   *symbols.Table
	Impls   *symbols.ImplTable
	Diags   *diag.Bag
}

// NewResolver wires a Resolver against an already-seeded Table (with
// builtins registered in its Global scope).
func NewResolver(strings *source.Interner, table *symbols.Table, impls *symbols.ImplTable, diags *diag.Bag) *Resolver {
	return &Resolver{Strings: strings, Table: table, Impls: impls, Diags: diags}
}

func (r *Resolver) report(code diag.Code, span source.Span, msg string) {
	r.Diags.Add(diag.NewError(code, span, msg))
}

// Resolve runs the two-phase pass over prog (spec §4.4): collect every
// top-level name and impl registration first, then resolve each item's
// body. Because every name and impl block is registered before any body
// is resolved, forward references (including `Type::ASSOC_CONST` style
// type-static references) are always resolvable on first encounter; the
// "finalize_type_statics" pending-queue step spec §4.4 describes for a
// single interleaved pass degenerates to a no-op under this ordering
// (see DESIGN.md).
func (r *Resolver) Resolve(prog *hir.Program) {
	global := r.Table.Global
	for _, item := range prog.Items {
		r.collectItem(global, item)
	}
	for _, item := range prog.Items {
		r.resolveItem(global, item)
	}
}

func (r *Resolver) collectItem(scope symbols.ScopeID, item hir.Item) {
	switch it := item.(type) {
	case *hir.Function:
		if !r.Table.DefineItem(scope, it.Name, it) {
			r.report(diag.ResDuplicateItem, it.Span, "duplicate top-level item name")
		}
	case *hir.ConstDef:
		if !r.Table.DefineItem(scope, it.Name, it) {
			r.report(diag.ResDuplicateItem, it.Span, "duplicate top-level item name")
		}
	case *hir.StructDef:
		if !r.Table.DefineType(scope, it.Name, it) {
			r.report(diag.ResDuplicateType, it.Span, "duplicate type name")
		}
	case *hir.EnumDef:
		if !r.Table.DefineType(scope, it.Name, it) {
			r.report(diag.ResDuplicateType, it.Span, "duplicate type name")
		}
	case *hir.Trait:
		if !r.Table.DefineType(scope, it.Name, it) {
			r.report(diag.ResDuplicateType, it.Span, "duplicate type name")
		}
	case *hir.TypeAlias:
		// A type alias is not registered in any namespace: a path that
		// names an alias does not resolve, and the alias's Target
		// annotation is never queried by any pass.
	case *hir.Impl:
		r.collectImpl(scope, it)
	}
}

func (r *Resolver) collectImpl(scope symbols.ScopeID, impl *hir.Impl) {
	node, ok := impl.TargetAnnotation.Node.(*hir.TypeNodePath)
	if !ok || !node.Path.Single() {
		r.report(diag.ResUnresolvedName, impl.Span, "impl target must name a single struct or enum")
		return
	}
	def, ok := r.Table.LookupType(scope, node.Path.Segments[0])
	if !ok {
		r.report(diag.ResUnresolvedName, impl.Span, "impl target does not resolve to a known type")
		return
	}
	if _, isTrait := def.(*hir.Trait); isTrait {
		r.report(diag.ResNotAType, impl.Span, "cannot impl directly against a trait; use `impl Trait for Type`")
		return
	}
	target, ok := def.(hir.Item)
	if !ok {
		r.report(diag.ResNotAType, impl.Span, "impl target is not a nominal type")
		return
	}
	impl.Target = target
	r.Impls.RegisterImpl(impl)

	// Register each associated item's own name in the impl's scope so
	// method bodies can reference sibling assoc functions/consts by bare
	// name; inherent method/assoc-fn dispatch through `self.foo()` or
	// `Type::foo()` goes through the ImplTable instead (spec §4.3).
	implScope := r.Table.OpenImpl(scope, def, impl.Span)
	impl.Scope = uint32(implScope)
	for _, item := range impl.Items {
		switch it := item.(type) {
		case *hir.Function:
			if !r.Table.DefineItem(implScope, it.Name, it) {
				r.report(diag.ResDuplicateItem, it.Span, "duplicate associated item name")
			}
		case *hir.ConstDef:
			if !r.Table.DefineItem(implScope, it.Name, it) {
				r.report(diag.ResDuplicateItem, it.Span, "duplicate associated item name")
			}
		}
	}
}
