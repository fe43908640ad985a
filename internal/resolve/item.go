package resolve

import (
	"semcore/internal/hir"
	"semcore/internal/symbols"
)

// resolveItem resolves item's body/bodies. Top-level type names and
// impl registrations are already in place from the collection phase, so
// forward references anywhere below here are guaranteed to resolve.
func (r *Resolver) resolveItem(scope symbols.ScopeID, item hir.Item) {
	switch it := item.(type) {
	case *hir.Function:
		r.resolveFunction(scope, it)
	case *hir.ConstDef:
		r.resolveConst(scope, it)
	case *hir.Impl:
		r.resolveImpl(it)
	case *hir.StructDef, *hir.EnumDef, *hir.Trait, *hir.TypeAlias:
		// Field/variant/alias types stay as unresolved TypeNodes; they
		// are resolved lazily by type_query the first time something
		// needs that type (spec §4.5.1).
	}
}

func (r *Resolver) resolveConst(scope symbols.ScopeID, def *hir.ConstDef) {
	if def.Type != nil {
		def.Type.DeclScope = uint32(scope)
	}
	r.resolveExpr(scope, def.Init)
}

func (r *Resolver) resolveImpl(impl *hir.Impl) {
	implScope := symbols.ScopeID(impl.Scope)
	if implScope == symbols.NoScopeID {
		// collectImpl bailed out (unresolved target); nothing more to do.
		return
	}
	for _, item := range impl.Items {
		switch it := item.(type) {
		case *hir.Function:
			r.resolveFunction(implScope, it)
		case *hir.Method:
			r.resolveMethod(implScope, it)
		case *hir.ConstDef:
			r.resolveConst(implScope, it)
		}
	}
}

func (r *Resolver) resolveFunction(outer symbols.ScopeID, fn *hir.Function) {
	fnScope := r.Table.OpenFunction(outer, fn.Span)
	r.resolveParams(fnScope, fn.Params)
	if fn.ReturnType != nil {
		fn.ReturnType.DeclScope = uint32(fnScope)
	}
	if fn.Body != nil {
		r.resolveBlockIn(fnScope, fn.Body)
	}
}

func (r *Resolver) resolveMethod(implScope symbols.ScopeID, m *hir.Method) {
	fnScope := r.Table.OpenFunction(implScope, m.Span)
	r.resolveParams(fnScope, m.Params)
	if m.ReturnType != nil {
		m.ReturnType.DeclScope = uint32(fnScope)
	}
	if m.Body != nil {
		r.resolveBlockIn(fnScope, m.Body)
	}
}

func (r *Resolver) resolveParams(fnScope symbols.ScopeID, params []hir.Param) {
	for i := range params {
		p := &params[i]
		if p.Type != nil {
			p.Type.DeclScope = uint32(fnScope)
		}
		r.bindPatternImmediate(fnScope, p.Pattern)
	}
}
