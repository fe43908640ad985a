// Package ast models the minimal shape of the parser's output that the
// semantic core consumes (spec §6.1). Lexing and parsing themselves are
// out of scope; this package exists only so HIR nodes can carry a
// bidirectional back-reference to "the AST node they came from" for
// diagnostics, without pulling in a full parse tree.
package ast

import "semcore/internal/source"

// NodeID is an opaque reference to the originating AST node. The
// semantic core never interprets it beyond carrying it alongside a
// Span for diagnostics.
type NodeID uint32

// NoNodeID marks the absence of a back-reference (e.g. a HIR node
// synthesized by a pass rather than lowered from source).
const NoNodeID NodeID = 0

// Path is a dotted/`::`-separated sequence of identifier segments, as
// produced by the parser for both value and type positions (spec
// §6.1: "paths are segment lists").
type Path struct {
	Segments []source.StringID
	Span     source.Span
}

// Single reports whether the path is a single bare identifier.
func (p Path) Single() bool { return len(p.Segments) == 1 }
