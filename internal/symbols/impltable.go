package symbols

import (
	"semcore/internal/hir"
	"semcore/internal/source"
)

// implEntry is the per-type bucket of associated items gathered across
// every impl block that targets it (spec §4.3).
type implEntry struct {
	methods []*hir.Method
	assocFn []*hir.Function
	consts  []*hir.ConstDef
}

func newImplEntry() *implEntry {
	return &implEntry{}
}

func (e *implEntry) findMethod(name source.StringID) (*hir.Method, bool) {
	for _, m := range e.methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

func (e *implEntry) findAssocFn(name source.StringID) (*hir.Function, bool) {
	for _, f := range e.assocFn {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

func (e *implEntry) findConst(name source.StringID) (*hir.ConstDef, bool) {
	for _, c := range e.consts {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ImplTable maps each nominal type definition to its inherent/trait
// methods, associated functions, and associated constants (spec §4.3).
// It is populated by name resolution's collection phase (one
// RegisterImpl call per impl block) and then consulted to resolve
// `Type::ident` paths and method calls.
type ImplTable struct {
	byDef map[hir.TypeDef]*implEntry
}

// NewImplTable builds an empty table.
func NewImplTable() *ImplTable {
	return &ImplTable{byDef: make(map[hir.TypeDef]*implEntry)}
}

func (t *ImplTable) entry(def hir.TypeDef) *implEntry {
	e, ok := t.byDef[def]
	if !ok {
		e = newImplEntry()
		t.byDef[def] = e
	}
	return e
}

// RegisterImpl walks impl.Items and records every method/assoc-fn/const
// under impl.Target.
func (t *ImplTable) RegisterImpl(impl *hir.Impl) {
	target, ok := impl.Target.(hir.TypeDef)
	if !ok || target == nil {
		return
	}
	e := t.entry(target)
	for _, item := range impl.Items {
		switch v := item.(type) {
		case *hir.Method:
			e.methods = append(e.methods, v)
		case *hir.Function:
			e.assocFn = append(e.assocFn, v)
		case *hir.ConstDef:
			e.consts = append(e.consts, v)
		}
	}
}

// FindMethod looks up an inherent or trait method by name on def.
func (t *ImplTable) FindMethod(def hir.TypeDef, name source.StringID) (*hir.Method, bool) {
	e, ok := t.byDef[def]
	if !ok {
		return nil, false
	}
	return e.findMethod(name)
}

// FindAssoc looks up an associated function or constant by name on def.
// Functions are checked before constants; the language does not allow a
// name collision between the two within one impl target.
func (t *ImplTable) FindAssoc(def hir.TypeDef, name source.StringID) (hir.ValueDef, bool) {
	e, ok := t.byDef[def]
	if !ok {
		return nil, false
	}
	if fn, ok := e.findAssocFn(name); ok {
		return fn, true
	}
	if c, ok := e.findConst(name); ok {
		return c, true
	}
	return nil, false
}
