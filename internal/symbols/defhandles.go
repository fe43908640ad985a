package symbols

import (
	"semcore/internal/hir"
	"semcore/internal/types"
)

// DefHandles assigns a stable types.DefHandle to each nominal type
// definition (StructDef/EnumDef). The type universe only stores the
// handle (spec §3.2: "TypeId is a handle, non-owning"); this registry
// is how the semantic passes map a handle back to the HIR node that
// owns it, without the types package depending on hir.
type DefHandles struct {
	byDef    map[hir.TypeDef]types.DefHandle
	byHandle []hir.TypeDef // index 0 reserved, so the zero DefHandle stays "none"
}

// NewDefHandles builds an empty registry.
func NewDefHandles() *DefHandles {
	return &DefHandles{byDef: make(map[hir.TypeDef]types.DefHandle), byHandle: []hir.TypeDef{nil}}
}

// Handle returns def's stable handle, allocating one on first use.
func (r *DefHandles) Handle(def hir.TypeDef) types.DefHandle {
	if h, ok := r.byDef[def]; ok {
		return h
	}
	h := types.DefHandle(len(r.byHandle))
	r.byHandle = append(r.byHandle, def)
	r.byDef[def] = h
	return h
}

// Lookup returns the HIR definition behind a handle, or nil if unknown.
func (r *DefHandles) Lookup(h types.DefHandle) hir.TypeDef {
	if int(h) <= 0 || int(h) >= len(r.byHandle) {
		return nil
	}
	return r.byHandle[h]
}

// Struct is a convenience cast of Lookup for call sites that know they
// want a StructDef.
func (r *DefHandles) Struct(h types.DefHandle) *hir.StructDef {
	s, _ := r.Lookup(h).(*hir.StructDef)
	return s
}

// Enum is the EnumDef counterpart of Struct.
func (r *DefHandles) Enum(h types.DefHandle) *hir.EnumDef {
	e, _ := r.Lookup(h).(*hir.EnumDef)
	return e
}
