package diag

import "sort"

// Bag collects diagnostics for one compilation unit. The driver
// (internal/sema) allocates one Bag per Program; every pass reports
// into it and keeps going after an error, so one item can contribute
// several diagnostics and analysis of an item is not cut short.
type Bag struct {
	items   []Diagnostic
	maximum int
}

// NewBag creates a Bag capped at maximum diagnostics (0 means unbounded).
func NewBag(maximum int) *Bag {
	return &Bag{maximum: maximum}
}

// Add appends a diagnostic, returning false if the bag is at capacity.
func (b *Bag) Add(d Diagnostic) bool {
	if b.maximum > 0 && len(b.items) >= b.maximum {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any collected diagnostic is at least SevError.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// Len returns the number of collected diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Items returns a read-only view of the collected diagnostics.
func (b *Bag) Items() []Diagnostic { return b.items }

// Sort orders diagnostics by file, start, end, then severity descending,
// for deterministic output across runs.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return di.Severity > dj.Severity
	})
}
