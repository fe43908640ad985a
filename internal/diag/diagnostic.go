package diag

import "semcore/internal/source"

// Note adds auxiliary context to a diagnostic (e.g. "first defined here").
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic captures a single semantic-core failure (spec §6.4): a
// human-readable message plus a mandatory span where known.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// New builds a diagnostic with the given severity.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// NewError builds an error-severity diagnostic, the only severity the
// semantic core itself ever raises (warnings/info are reserved for a
// future lint layer outside this spec's scope).
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote appends an auxiliary note and returns the updated diagnostic.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
