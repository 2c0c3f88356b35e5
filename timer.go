package autolog

import (
	"time"
)

// Record holds the measured facts of one monitored invocation. It is filled
// in over the life of its Timer and frozen when the Timer stops: EndTime,
// ExecutionTimeMs and AverageByItem are written once, at stop, and are not
// touched afterwards.
type Record struct {
	// InvokedMethod is the display name of the monitored operation. Whether
	// it carries the qualifying prefix is decided at start time (see
	// Options.ClassNameDisplayed).
	InvokedMethod string `json:"invoked_method"`

	// HTTPMethod is set when the invocation corresponds to a detected API
	// endpoint, empty otherwise.
	HTTPMethod string `json:"http_method,omitempty"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time,omitempty"`

	// ExecutionTimeMs is the elapsed wall-clock time in milliseconds,
	// computed at stop.
	ExecutionTimeMs int64 `json:"execution_time_ms"`

	// Failed marks a record reported on a failure path. The invocation is
	// still reported with its full timing.
	Failed bool `json:"failed,omitempty"`

	// ProcessedItems, when positive, triggers the per-item average
	// computation at stop. Zero means "no throughput metric".
	ProcessedItems int `json:"processed_items,omitempty"`

	// AverageByItem is ExecutionTimeMs / ProcessedItems rendered through
	// FormatDuration. Empty when ProcessedItems is zero.
	AverageByItem string `json:"average_execution_time_by_item,omitempty"`

	// Comments are free-form annotations accumulated by the caller, in the
	// order they were added.
	Comments []string `json:"comments,omitempty"`

	// Topic is the logical channel the record is emitted under.
	Topic string `json:"topic,omitempty"`

	// CorrelationID identifies the call tree this record belongs to. All
	// timers of one tree share the root's ID.
	CorrelationID string `json:"correlation_id,omitempty"`
}

// Timer correlates one invocation's timing with its position in the call
// tree. Timers are created by PerfLogger.Start and are confined to the
// execution context that started them; they are not safe for concurrent use.
type Timer struct {
	record   Record
	parent   *Timer
	children []*Timer
	running  bool

	// reg is a non-owning reference to the registry that produced this
	// timer, nil when the timer was started without one.
	reg *Registry
}

// Record returns the timer's underlying record. The returned pointer stays
// valid after the timer stops; callers must not mutate it once stopped.
func (t *Timer) Record() *Record {
	return &t.record
}

// Parent returns the timer this one was auto-linked under, or nil for a root
// timer.
func (t *Timer) Parent() *Timer {
	return t.parent
}

// Children returns the timers started while this one was current, in start
// order. The returned slice is the timer's own; treat it as read-only.
func (t *Timer) Children() []*Timer {
	return t.children
}

// Running reports whether the timer has been started and not yet stopped.
func (t *Timer) Running() bool {
	return t.running
}

// SetParent links the timer under candidate. A nil candidate is a no-op (the
// timer stays a root). A candidate that has already stopped is discarded
// entirely: its record has been finalized and possibly reported, so linking
// new timing data under it would corrupt an already-closed tree. In that
// case the timer stays a root and candidate's children are left untouched.
//
// Start calls this automatically with the registry's current timer; callers
// correlating work across execution contexts by hand may call it themselves.
func (t *Timer) SetParent(candidate *Timer) {
	if candidate == nil {
		return
	}
	if !candidate.running {
		return
	}
	t.parent = candidate
	candidate.children = append(candidate.children, t)
}

// Stop freezes the timer: it sets the record's EndTime and ExecutionTimeMs,
// computes the per-item average when ProcessedItems is set, clears the
// running flag, and restores the registry slot to the parent if the parent
// is still running, or clears it otherwise.
//
// Stop is not idempotent. Calling it twice overwrites the end time and
// duration; call it exactly once.
func (t *Timer) Stop() {
	now := time.Now()
	t.running = false
	t.record.EndTime = now
	t.record.ExecutionTimeMs = now.Sub(t.record.StartTime).Milliseconds()
	t.computeAverageExecutionTime()

	if t.reg == nil {
		return
	}
	// The restore decision depends only on this timer's own parent link, not
	// on whether this timer actually occupied the slot. Out-of-order stops
	// degrade gracefully instead of corrupting unrelated trees.
	if t.parent != nil && t.parent.running {
		t.reg.SetCurrent(t.parent)
	} else {
		t.reg.RemoveCurrent()
	}
}

// computeAverageExecutionTime derives AverageByItem from the frozen
// duration. Zero or unset ProcessedItems means no average, never a division
// by zero.
func (t *Timer) computeAverageExecutionTime() {
	if t.record.ProcessedItems <= 0 {
		t.record.AverageByItem = ""
		return
	}
	t.record.AverageByItem = FormatDuration(t.record.ExecutionTimeMs / int64(t.record.ProcessedItems))
}

// AddComment appends a free-form annotation to the record.
func (t *Timer) AddComment(comment string) {
	t.record.Comments = append(t.record.Comments, comment)
}

// SetProcessedItems records how many items the monitored operation handled.
// Set it before Stop so the per-item average can be derived.
func (t *Timer) SetProcessedItems(n int) {
	t.record.ProcessedItems = n
}

// SetHTTPMethod tags the record as an API endpoint invocation.
func (t *Timer) SetHTTPMethod(method string) {
	t.record.HTTPMethod = method
}

// SetTopic overrides the logical channel this record is emitted under.
func (t *Timer) SetTopic(topic string) {
	t.record.Topic = topic
}

// MarkFailed flags the record as reported on a failure path. Call it before
// StopAndLog when the monitored operation returned an error or panicked.
func (t *Timer) MarkFailed() {
	t.record.Failed = true
}
