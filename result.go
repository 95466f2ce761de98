package jsonlogic

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Result of evaluating a rule.
type Result struct {
	// The computed value. Any JSON-compatible type.
	Value any

	// The executed-logic trace: a pruned copy of the rule containing only
	// the branches that were actually evaluated. Re-applying the trace as a
	// rule against the same data yields the same value.
	Trace any

	// The number of operation nodes evaluated, counting every node visited
	// before pruning.
	OpsEvaluated int
}

// String produces a table of the executed logic and the computed value.
func (r *Result) String() string {
	tw := table.NewWriter()
	tw.SetTitle("\nJSONLOGIC RESULT\n")
	tw.AppendHeader(table.Row{"\nExecuted Logic", "\nKind", "\nOperands"})

	for _, row := range traceToRows(r.Trace, 0) {
		tw.AppendRow(row)
	}
	tw.AppendFooter(table.Row{"value", fmt.Sprintf("%v", r.Value), fmt.Sprintf("%d ops", r.OpsEvaluated)})

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault
	tw.SetStyle(style)
	return tw.Render()
}

// traceToRows transforms a trace tree to table rows, one per node, indented
// by depth.
func traceToRows(trace any, n int) []table.Row {
	indent := strings.Repeat("  ", n)

	node, ok := trace.(map[string]any)
	if !ok {
		return []table.Row{{fmt.Sprintf("%s%v", indent, trace), "literal", ""}}
	}

	rows := []table.Row{}
	for op, raw := range node {
		children, _ := raw.([]any)
		rows = append(rows, table.Row{
			fmt.Sprintf("%s%s", indent, op),
			"operation",
			fmt.Sprintf("%d", len(children)),
		})
		for _, c := range children {
			rows = append(rows, traceToRows(c, n+1)...)
		}
	}
	return rows
}
