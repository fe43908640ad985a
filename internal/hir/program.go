package hir

// Program is the root HIR node: an ordered list of top-level items,
// exclusively owned by it (spec §3.2 ownership model).
type Program struct {
	Items []Item
}

// Functions returns every top-level Function item, in declaration order.
func (p *Program) Functions() []*Function {
	var out []*Function
	for _, it := range p.Items {
		if fn, ok := it.(*Function); ok {
			out = append(out, fn)
		}
	}
	return out
}
