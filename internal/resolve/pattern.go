package resolve

import (
	"semcore/internal/diag"
	"semcore/internal/hir"
	"semcore/internal/source"
	"semcore/internal/symbols"
)

// namedBinding is one name introduced by a pattern, pending commit into
// a scope's bindings namespace.
type namedBinding struct {
	Name source.StringID
	Def  *hir.BindingDef
}

// preparePattern walks pat, resolving any nested struct-pattern type
// names against scope and allocating a fresh hir.Local/hir.BindingDef
// pair for every PatBinding, but does not insert them into scope yet.
// This is what makes the deferred-binding rule for `let` possible (spec
// §4.4): the caller resolves the initializer against scope before
// committing these bindings.
func (r *Resolver) preparePattern(scope symbols.ScopeID, pat hir.Pattern) []namedBinding {
	switch p := pat.(type) {
	case *hir.PatBinding:
		local := &hir.Local{Name: p.Name, Mutable: p.Mutable}
		def := &hir.BindingDef{Local: local}
		p.Def = def
		return []namedBinding{{Name: p.Name, Def: def}}

	case *hir.PatWildcard:
		return nil

	case *hir.PatLiteral:
		return nil

	case *hir.PatRange:
		return nil

	case *hir.PatReference:
		return r.preparePattern(scope, p.Sub)

	case *hir.PatTuple:
		var out []namedBinding
		for _, elem := range p.Elems {
			out = append(out, r.preparePattern(scope, elem)...)
		}
		return out

	case *hir.PatStruct:
		return r.prepareStructPattern(scope, p)

	default:
		r.report(diag.ResUnresolvedName, pat.Base().Span, "unresolvable pattern form")
		return nil
	}
}

func (r *Resolver) prepareStructPattern(scope symbols.ScopeID, p *hir.PatStruct) []namedBinding {
	if !p.TypeName.Single() {
		r.report(diag.ResUnresolvedName, p.Span, "struct pattern type must be a single name")
	} else if def, ok := r.Table.LookupType(scope, p.TypeName.Segments[0]); ok {
		if sd, ok := def.(*hir.StructDef); ok {
			p.Def = sd
		} else {
			r.report(diag.ResNotAType, p.Span, "struct pattern target is not a struct")
		}
	} else {
		r.report(diag.ResUnresolvedName, p.Span, "unresolved struct pattern type")
	}

	if p.Def != nil {
		seen := make(map[source.StringID]bool, len(p.Fields))
		for _, f := range p.Fields {
			if seen[f.Name] {
				r.report(diag.PatternDuplicateField, f.Span, "duplicate field in struct pattern")
				continue
			}
			seen[f.Name] = true
			if p.Def.FieldIndex(f.Name) < 0 {
				r.report(diag.PatternUnknownField, f.Span, "unknown field in struct pattern")
			}
		}
	}

	var out []namedBinding
	for _, f := range p.Fields {
		out = append(out, r.preparePattern(scope, f.Pattern)...)
	}
	return out
}

// commitPattern inserts every binding produced by preparePattern into
// scope's bindings namespace (spec §4.2: "newer shadows older in same
// scope" covers re-binding an already-visible outer name).
func (r *Resolver) commitPattern(scope symbols.ScopeID, bindings []namedBinding) {
	for _, b := range bindings {
		r.Table.DefineBinding(scope, b.Name, b.Def)
	}
}

// bindPatternImmediate is prepare+commit in one step, used for
// parameter patterns which are visible throughout the whole body, never
// deferred.
func (r *Resolver) bindPatternImmediate(scope symbols.ScopeID, pat hir.Pattern) {
	r.commitPattern(scope, r.preparePattern(scope, pat))
}
