package autolog

import (
	"fmt"
	"strings"
)

const (
	// detailsDelimiter joins accumulated comments in the "Details:" suffix.
	detailsDelimiter = ", "

	// clockFormat renders the start/end bounds in log lines.
	clockFormat = "15:04:05.000"
)

// renderRecord builds the human-readable sentence for one record. The shape
// is picked from the record's state, in this precedence: failure, throughput,
// plain duration. All three carry the "(started: X, ended: Y)" suffix and,
// when comments were added, a trailing "Details:" list.
func renderRecord(rec *Record) string {
	var b strings.Builder
	duration := FormatDuration(rec.ExecutionTimeMs)

	switch {
	case rec.Failed:
		fmt.Fprintf(&b, "Method %s failed after %s", rec.InvokedMethod, duration)
	case rec.ProcessedItems > 0:
		fmt.Fprintf(&b, "Method %s processed %d item(s) in %s (avg. %s/item)",
			rec.InvokedMethod, rec.ProcessedItems, duration, rec.AverageByItem)
	default:
		fmt.Fprintf(&b, "Method %s executed in %s", rec.InvokedMethod, duration)
	}

	fmt.Fprintf(&b, " (started: %s, ended: %s)",
		rec.StartTime.Format(clockFormat), rec.EndTime.Format(clockFormat))

	if len(rec.Comments) > 0 {
		b.WriteString(" Details: ")
		b.WriteString(strings.Join(rec.Comments, detailsDelimiter))
	}
	return b.String()
}

// recordFields is the structured counterpart of renderRecord: the same
// underlying fields as a key/value map, for sinks that keep their entries
// machine-readable.
func recordFields(rec *Record) map[string]any {
	fields := map[string]any{
		"invoked_method":    rec.InvokedMethod,
		"start_time":        rec.StartTime.Format(clockFormat),
		"end_time":          rec.EndTime.Format(clockFormat),
		"execution_time_ms": rec.ExecutionTimeMs,
		"failed":            rec.Failed,
	}
	if rec.CorrelationID != "" {
		fields["correlation_id"] = rec.CorrelationID
	}
	if rec.HTTPMethod != "" {
		fields["http_method"] = rec.HTTPMethod
	}
	if rec.ProcessedItems > 0 {
		fields["processed_items"] = rec.ProcessedItems
		fields["average_execution_time_by_item"] = rec.AverageByItem
	}
	if len(rec.Comments) > 0 {
		fields["comments"] = strings.Join(rec.Comments, detailsDelimiter)
	}
	return fields
}
