// Package trace is the semantic core's ambient tracing facility. It
// mirrors the teacher compiler's hand-rolled, context-carried tracer
// idiom rather than pulling in a third-party logging library: a Tracer
// travels in a context.Context. PassStart/PassEnd are available for
// phase-boundary events, but no pass calls them; the only event the
// module emits is a Detail from const_query when a const fails to
// evaluate, and that call uses context.Background(), so it always
// reaches Nop.
package trace

import "context"

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff Level = iota
	LevelPhase
	LevelDetail
)

// Event is a single trace record.
type Event struct {
	Level Level
	Pass  string
	Msg   string
}

// Tracer receives trace events. Implementations must be safe to call
// from a single goroutine (the semantic core never traces concurrently).
type Tracer interface {
	Trace(Event)
}

// nopTracer discards every event.
type nopTracer struct{}

func (nopTracer) Trace(Event) {}

// Nop is the zero-overhead tracer used when no tracer is configured.
var Nop Tracer = nopTracer{}

type ctxKey struct{}

// WithTracer attaches t to ctx, replacing any previously attached tracer.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext extracts the Tracer attached to ctx, or Nop if none.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// PassStart emits a phase-level "entering pass" event.
func PassStart(ctx context.Context, pass string) {
	FromContext(ctx).Trace(Event{Level: LevelPhase, Pass: pass, Msg: "start"})
}

// PassEnd emits a phase-level "leaving pass" event.
func PassEnd(ctx context.Context, pass string) {
	FromContext(ctx).Trace(Event{Level: LevelPhase, Pass: pass, Msg: "end"})
}

// Detail emits a fine-grained event, useful for diagnosing a single
// query-service call (e.g. a const_query cycle break).
func Detail(ctx context.Context, pass, msg string) {
	FromContext(ctx).Trace(Event{Level: LevelDetail, Pass: pass, Msg: msg})
}
