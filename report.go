package autolog

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rodaine/table"
)

// stackMarker is repeated once per depth level in tree-dump lines.
const stackMarker = "|_ "

// dumpStack emits the consolidated report for a finished call tree: a header
// naming the root's method, then one line per timer in pre-order, children
// in start order. Every line goes out under the root's topic.
func (p *PerfLogger) dumpStack(root *Timer) {
	topic := root.record.Topic
	p.emit(p.opts.Level, topic,
		fmt.Sprintf("Performance summary report for method %s:", root.record.InvokedMethod), nil)
	p.dumpStackRecursively(root, 0, topic)
}

func (p *PerfLogger) dumpStackRecursively(t *Timer, depth int, topic string) {
	p.emit(p.opts.Level, topic, dumpLine(t, depth), nil)
	for _, child := range t.children {
		p.dumpStackRecursively(child, depth+1, topic)
	}
}

func dumpLine(t *Timer, depth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(stackMarker, depth))
	b.WriteString("> ")
	b.WriteString(t.record.InvokedMethod)
	if t.record.Failed {
		b.WriteString(" failed after ")
	} else {
		b.WriteString(" executed in ")
	}
	b.WriteString(FormatDuration(t.record.ExecutionTimeMs))
	return b.String()
}

// WriteTable renders a finished call tree as a table on w, one row per timer
// in pre-order with the method column indented by depth. It is the console
// counterpart of the tree dump for interactive use; nothing goes through the
// sink.
func WriteTable(w io.Writer, root *Timer) {
	title := color.New(color.FgGreen, color.Bold).Sprintf(
		"Call tree %s", root.record.CorrelationID)
	fmt.Fprintf(w, "\n%s\n", title)

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	tbl := table.New("method", "duration", "items", "avg/item", "outcome")
	tbl.WithWriter(w).WithHeaderFormatter(headerFmt)
	addTableRows(tbl, root, 0)
	tbl.Print()
}

func addTableRows(tbl table.Table, t *Timer, depth int) {
	rec := &t.record
	outcome := "ok"
	if rec.Failed {
		outcome = "failed"
	}
	items, avg := "-", "-"
	if rec.ProcessedItems > 0 {
		items = fmt.Sprintf("%d", rec.ProcessedItems)
		avg = rec.AverageByItem
	}
	tbl.AddRow(
		strings.Repeat("  ", depth)+rec.InvokedMethod,
		FormatDuration(rec.ExecutionTimeMs),
		items,
		avg,
		outcome,
	)
	for _, child := range t.children {
		addTableRows(tbl, child, depth+1)
	}
}
