// Package autolog measures, correlates and reports the execution time of
// nested method invocations within a single logical call chain, without
// explicit timer plumbing at each call site.
//
// A call chain carries a Registry in its context (see ContextWithRegistry).
// PerfLogger.Start creates a Timer, links it under whatever timer is
// currently active in that registry, and makes it the new active timer.
// PerfLogger.StopAndLog freezes the timer, restores the registry to the
// parent, and emits the record to the configured Sink. When the outermost
// timer of a tree stops, the whole tree can be rendered as a consolidated
// report.
//
// Design notes:
//   - The registry slot is confined to one goroutine; the package holds no
//     locks and shares no mutable state across execution contexts.
//   - Stopping a timer never panics into the caller: emission failures are
//     recovered and reported on a diagnostic side channel.
//   - A timer whose candidate parent has already stopped becomes a root
//     instead; finalized trees are never reopened.
package autolog

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTopic is the logical channel used when no topic is configured.
const DefaultTopic = "autolog"

// Options configures a PerfLogger. The zero value is not useful; start from
// DefaultOptions or Config.Options.
type Options struct {
	// EmitEachTimer emits one log record per stopped timer. Default true.
	EmitEachTimer bool

	// DumpStackOnRootStop emits the consolidated call-tree report when a
	// root timer with children stops. Default false.
	DumpStackOnRootStop bool

	// StructuredOutput emits records as key/value fields instead of a
	// rendered sentence. Default false.
	StructuredOutput bool

	// Topic is the default logical channel for records.
	Topic string

	// ClassNameDisplayed keeps the qualifying prefix of method names. When
	// false, Start trims names to the segment after the last '.'.
	// Default true.
	ClassNameDisplayed bool

	// Level is the severity successful records are emitted at. Failed
	// records are raised to LevelWarn. Default LevelInfo.
	Level Level
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		EmitEachTimer:      true,
		Topic:              DefaultTopic,
		ClassNameDisplayed: true,
		Level:              LevelInfo,
	}
}

// PerfLogger is the orchestrator: it starts timers, stops them, and routes
// rendered records to its sink. A PerfLogger is immutable after construction
// and may be shared across goroutines; the per-chain state lives in the
// Registry carried by each context.
type PerfLogger struct {
	opts Options
	sink Sink
	diag io.Writer
}

// New builds a PerfLogger emitting to sink. A nil sink falls back to plain
// stderr lines. An empty Options.Topic falls back to DefaultTopic.
func New(sink Sink, opts Options) *PerfLogger {
	if sink == nil {
		sink = WriterSink{W: os.Stderr}
	}
	if opts.Topic == "" {
		opts.Topic = DefaultTopic
	}
	return &PerfLogger{
		opts: opts,
		sink: sink,
		diag: os.Stderr,
	}
}

// SetDiagnostics redirects the side channel used to report emission
// failures. It is distinct from the sink on purpose: a failing sink must not
// be asked to log its own failure.
func (p *PerfLogger) SetDiagnostics(w io.Writer) {
	if w != nil {
		p.diag = w
	}
}

// Options returns the logger's configuration.
func (p *PerfLogger) Options() Options {
	return p.opts
}

// Start creates a running Timer for method, links it under the registry's
// current timer (if ctx carries a registry and the candidate parent is still
// running), and makes it the registry's new current value. It performs no
// I/O. Without a registry in ctx the timer is a free-standing root.
func (p *PerfLogger) Start(ctx context.Context, method string) *Timer {
	return p.start(ctx, method, "")
}

// StartEndpoint is Start for invocations that correspond to an API endpoint;
// httpMethod is carried on the record.
func (p *PerfLogger) StartEndpoint(ctx context.Context, method, httpMethod string) *Timer {
	return p.start(ctx, method, httpMethod)
}

func (p *PerfLogger) start(ctx context.Context, method, httpMethod string) *Timer {
	if !p.opts.ClassNameDisplayed {
		method = shortMethodName(method)
	}
	reg := RegistryFromContext(ctx)
	t := &Timer{
		running: true,
		reg:     reg,
		record: Record{
			InvokedMethod: method,
			HTTPMethod:    httpMethod,
			StartTime:     time.Now(),
			Topic:         p.opts.Topic,
		},
	}
	if reg != nil {
		t.SetParent(reg.Current())
		reg.SetCurrent(t)
	}
	if t.parent != nil {
		t.record.CorrelationID = t.parent.record.CorrelationID
	} else {
		t.record.CorrelationID = uuid.NewString()
	}
	return t
}

// StopAndLog stops the timer and reports it. With EmitEachTimer set, the
// record is rendered and emitted as one log entry. With DumpStackOnRootStop
// set and t being a root with children, the whole finished tree is emitted
// as a consolidated report. Emission failures never reach the caller; they
// are written to the diagnostic side channel.
func (p *PerfLogger) StopAndLog(t *Timer) {
	if t == nil {
		return
	}
	t.Stop()
	if p.opts.EmitEachTimer {
		p.emitRecord(&t.record)
	}
	if p.opts.DumpStackOnRootStop && t.parent == nil && len(t.children) > 0 {
		p.dumpStack(t)
	}
}

func (p *PerfLogger) emitRecord(rec *Record) {
	level := p.opts.Level
	if rec.Failed {
		level = LevelWarn
	}
	if p.opts.StructuredOutput {
		p.emit(level, rec.Topic, rec.InvokedMethod, recordFields(rec))
		return
	}
	p.emit(level, rec.Topic, renderRecord(rec), nil)
}

// emit hands one entry to the sink, shielding the caller from both returned
// errors and panics. Stopping a timer happens while application code is
// already unwinding from a method call; it must never crash that code.
func (p *PerfLogger) emit(level Level, topic, message string, fields map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(p.diag, "autolog: sink panic: %v\n", r)
		}
	}()
	if err := p.sink.Emit(level, topic, message, fields); err != nil {
		fmt.Fprintf(p.diag, "autolog: emit failed: %v\n", err)
	}
}

// shortMethodName trims a qualified name to the part after the last '.'.
func shortMethodName(method string) string {
	if i := strings.LastIndexByte(method, '.'); i >= 0 && i+1 < len(method) {
		return method[i+1:]
	}
	return method
}
