package jsonlogic

import (
	"fmt"
	"strings"

	"github.com/Delta456/box-cli-maker/v2"
	"github.com/alexeyco/simpletable"
)

// traceLine is one flattened row of an executed-logic trace.
type traceLine struct {
	depth    int
	expr     string
	kind     string
	operands int
}

// Report renders a boxed evaluation report: the computed value, the executed
// logic, and the input data. Intended for debugging rules; the output format
// is not stable.
func Report(r *Result, data map[string]any) string {
	Box := box.New(box.Config{Px: 2, Py: 1, Type: "Double", Color: "Cyan", TitlePos: "Top", ContentAlign: "Left"})

	s := strings.Builder{}
	s.WriteString("Value:\n")
	s.WriteString("------\n")
	s.WriteString(fmt.Sprintf("%v\n\n", r.Value))

	s.WriteString("Executed Logic:\n")
	s.WriteString("---------------\n")
	s.WriteString(traceTable(r.Trace).String())

	if data != nil {
		s.WriteString("\n\n")
		s.WriteString("Input Data:\n")
		s.WriteString("-----------\n")
		s.WriteString(dataTable(data).String())
	}
	return Box.String("JSONLOGIC EVALUATION REPORT", s.String())
}

func dataTable(data map[string]any) *simpletable.Table {
	table := simpletable.New()
	table.Header = &simpletable.Header{
		Cells: []*simpletable.Cell{
			{Align: simpletable.AlignCenter, Text: "Name"},
			{Align: simpletable.AlignCenter, Text: "Value"},
		},
	}

	for k, v := range data {
		r := []*simpletable.Cell{
			{Text: k},
			{Text: fmt.Sprintf("%v", v)},
		}
		table.Body.Cells = append(table.Body.Cells, r)
	}

	table.SetStyle(simpletable.StyleUnicode)

	return table
}

func traceTable(trace any) *simpletable.Table {
	table := simpletable.New()
	table.Header = &simpletable.Header{
		Cells: []*simpletable.Cell{
			{Align: simpletable.AlignCenter, Text: "Depth"},
			{Align: simpletable.AlignCenter, Text: "Expression"},
			{Align: simpletable.AlignCenter, Text: "Kind"},
			{Align: simpletable.AlignCenter, Text: "Operands"},
		},
	}

	for _, l := range flattenTrace(trace, 0) {
		operands := ""
		if l.kind == "operation" {
			operands = fmt.Sprintf("%d", l.operands)
		}
		r := []*simpletable.Cell{
			{Align: simpletable.AlignRight, Text: fmt.Sprintf("%d", l.depth)},
			{Text: strings.Repeat("  ", l.depth) + l.expr},
			{Text: l.kind},
			{Align: simpletable.AlignRight, Text: operands},
		}
		table.Body.Cells = append(table.Body.Cells, r)
	}

	table.SetStyle(simpletable.StyleUnicode)

	return table
}

func flattenTrace(trace any, depth int) []traceLine {
	node, ok := trace.(map[string]any)
	if !ok {
		return []traceLine{{depth: depth, expr: fmt.Sprintf("%v", trace), kind: "literal"}}
	}

	l := []traceLine{}
	for op, raw := range node {
		children, _ := raw.([]any)
		l = append(l, traceLine{depth: depth, expr: op, kind: "operation", operands: len(children)})
		for _, c := range children {
			l = append(l, flattenTrace(c, depth+1)...)
		}
	}
	return l
}
