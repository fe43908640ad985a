package resolve

import (
	"semcore/internal/diag"
	"semcore/internal/hir"
	"semcore/internal/symbols"
)

// resolveBlockIn opens a fresh (non-boundary) block scope as a child of
// outer and resolves every statement of block within it.
func (r *Resolver) resolveBlockIn(outer symbols.ScopeID, block *hir.ExprBlock) {
	scope := r.Table.OpenBlock(outer, block.Span)
	for _, stmt := range block.Stmts {
		r.resolveStmt(scope, stmt)
	}
	if block.Final != nil {
		r.resolveExpr(scope, block.Final)
	}
}

func (r *Resolver) resolveStmt(scope symbols.ScopeID, stmt hir.Stmt) {
	switch s := stmt.(type) {
	case *hir.StmtLet:
		// Deferred binding (spec §4.4): the pattern's own names must not
		// be visible to its own initializer, so bindings are prepared
		// (struct-pattern type names resolved, Locals allocated) but not
		// committed until after Init has been resolved.
		pending := r.preparePattern(scope, s.Pattern)
		if s.Type != nil {
			s.Type.DeclScope = uint32(scope)
		}
		if s.Init != nil {
			r.resolveExpr(scope, s.Init)
		}
		r.commitPattern(scope, pending)

	case *hir.StmtExpr:
		r.resolveExpr(scope, s.Value)
	}
}

func (r *Resolver) resolveExpr(scope symbols.ScopeID, expr hir.Expr) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *hir.ExprLiteral:
		// no names to resolve

	case *hir.ExprPath:
		r.resolvePathExpr(scope, e)

	case *hir.ExprBinaryOp:
		r.resolveExpr(scope, e.Left)
		r.resolveExpr(scope, e.Right)

	case *hir.ExprUnaryOp:
		r.resolveExpr(scope, e.Operand)

	case *hir.ExprReference:
		r.resolveExpr(scope, e.Operand)

	case *hir.ExprDeref:
		r.resolveExpr(scope, e.Operand)

	case *hir.ExprCall:
		r.resolveCall(scope, e)

	case *hir.ExprMethodCall:
		r.resolveExpr(scope, e.Receiver)
		for _, a := range e.Args {
			r.resolveExpr(scope, a)
		}

	case *hir.ExprFieldAccess:
		r.resolveExpr(scope, e.Receiver)

	case *hir.ExprIndex:
		r.resolveExpr(scope, e.Array)
		r.resolveExpr(scope, e.Index)

	case *hir.ExprStructLit:
		r.resolveStructLit(scope, e)

	case *hir.ExprArrayLit:
		for _, el := range e.Elements {
			r.resolveExpr(scope, el)
		}

	case *hir.ExprArrayRepeat:
		r.resolveExpr(scope, e.Value)
		r.resolveExpr(scope, e.Size)

	case *hir.ExprBlock:
		r.resolveBlockIn(scope, e)

	case *hir.ExprIf:
		r.resolveExpr(scope, e.Cond)
		r.resolveBlockIn(scope, e.Then)
		if e.Else != nil {
			r.resolveExpr(scope, e.Else)
		}

	case *hir.ExprLoop:
		r.resolveBlockIn(scope, e.Body)

	case *hir.ExprWhile:
		r.resolveExpr(scope, e.Cond)
		r.resolveBlockIn(scope, e.Body)

	case *hir.ExprBreak:
		if e.Value != nil {
			r.resolveExpr(scope, e.Value)
		}

	case *hir.ExprContinue:
		// nothing to resolve; Target is set by control-flow linking

	case *hir.ExprReturn:
		if e.Value != nil {
			r.resolveExpr(scope, e.Value)
		}

	case *hir.ExprAssign:
		r.resolveExpr(scope, e.LHS)
		r.resolveExpr(scope, e.RHS)

	case *hir.ExprCompoundAssign:
		r.resolveExpr(scope, e.LHS)
		r.resolveExpr(scope, e.RHS)

	case *hir.ExprCast:
		r.resolveExpr(scope, e.Operand)
		if e.Target != nil {
			e.Target.DeclScope = uint32(scope)
		}

	default:
		r.report(diag.ResUnresolvedName, expr.Base().Span, "unresolvable expression form")
	}
}

// resolvePathExpr resolves a value path: a bare name goes through
// lookup_value; a two-segment `Type::member` path resolves Type via
// lookup_type and then the member through the impl table (spec §4.2,
// §4.4 "finalize_type_statics").
func (r *Resolver) resolvePathExpr(scope symbols.ScopeID, e *hir.ExprPath) {
	if e.Path.Single() {
		if def, ok := r.Table.LookupValue(scope, e.Path.Segments[0]); ok {
			e.Resolved = def
			return
		}
		r.report(diag.ResUnresolvedName, e.Span, "unresolved name")
		return
	}
	if len(e.Path.Segments) == 2 {
		typeDef, ok := r.Table.LookupType(scope, e.Path.Segments[0])
		if !ok {
			r.report(diag.ResUnresolvedName, e.Span, "unresolved type in path")
			return
		}
		if v, ok := r.Impls.FindAssoc(typeDef, e.Path.Segments[1]); ok {
			e.Resolved = v
			return
		}
		r.report(diag.ResUnresolvedName, e.Span, "unresolved associated item")
		return
	}
	r.report(diag.ResUnresolvedName, e.Span, "paths may only have one or two segments")
}

func (r *Resolver) resolveCall(scope symbols.ScopeID, e *hir.ExprCall) {
	for _, a := range e.Args {
		r.resolveExpr(scope, a)
	}
	if e.Callee.Single() {
		def, ok := r.Table.LookupValue(scope, e.Callee.Segments[0])
		if !ok {
			r.report(diag.ResUnresolvedName, e.Span, "unresolved function name")
			return
		}
		e.Target = def
		return
	}
	if len(e.Callee.Segments) == 2 {
		typeDef, ok := r.Table.LookupType(scope, e.Callee.Segments[0])
		if !ok {
			r.report(diag.ResUnresolvedName, e.Span, "unresolved type in call path")
			return
		}
		v, ok := r.Impls.FindAssoc(typeDef, e.Callee.Segments[1])
		if !ok {
			r.report(diag.ResUnresolvedName, e.Span, "unresolved associated function")
			return
		}
		if _, isFn := v.(*hir.Function); !isFn {
			r.report(diag.ResNotAValue, e.Span, "associated item is not callable")
			return
		}
		e.Target = v
		return
	}
	r.report(diag.ResUnresolvedName, e.Span, "call paths may only have one or two segments")
}

// resolveStructLit resolves the literal's type and canonicalizes its
// field list into declaration order (spec §4.4 "Struct literal
// canonicalization").
func (r *Resolver) resolveStructLit(scope symbols.ScopeID, e *hir.ExprStructLit) {
	for _, f := range e.Fields {
		r.resolveExpr(scope, f.Value)
	}
	if !e.TypeName.Single() {
		r.report(diag.ResUnresolvedName, e.Span, "struct literal type must be a single name")
		return
	}
	def, ok := r.Table.LookupType(scope, e.TypeName.Segments[0])
	if !ok {
		r.report(diag.ResUnresolvedName, e.Span, "unresolved struct literal type")
		return
	}
	sd, ok := def.(*hir.StructDef)
	if !ok {
		r.report(diag.ResNotAType, e.Span, "struct literal target is not a struct")
		return
	}
	e.Def = sd

	values := make([]hir.Expr, len(sd.Fields))
	seen := make([]bool, len(sd.Fields))
	for _, f := range e.Fields {
		idx := sd.FieldIndex(f.Name)
		if idx < 0 {
			r.report(diag.ResExtraField, f.Span, "unknown field in struct literal")
			continue
		}
		if seen[idx] {
			r.report(diag.ResDuplicateField, f.Span, "duplicate field in struct literal")
			continue
		}
		seen[idx] = true
		values[idx] = f.Value
	}
	for i, ok := range seen {
		if !ok {
			name, _ := r.Strings.Lookup(sd.Fields[i].Name)
			r.report(diag.ResMissingField, e.Span, "missing field in struct literal: "+name)
		}
	}
	e.CanonicalValues = values
}
