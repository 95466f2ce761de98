package jsonlogic

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// A Rule wraps a JsonLogic tree with an identifier so it can be stored in an
// Engine and evaluated by name. The Logic tree is either a primitive (a
// literal value) or an operation node: a single-key map from operator name to
// its operands.
type Rule struct {
	// A rule identifier. (required when adding to an Engine)
	ID string `json:"id"`

	// The JsonLogic tree to evaluate. Trees decoded with encoding/json can
	// be used directly.
	Logic any `json:"logic"`

	// A reference to any object.
	// Not used by the evaluator.
	Meta any `json:"-"`
}

// NewRule initializes a rule with the ID and logic tree.
func NewRule(id string, logic any) *Rule {
	return &Rule{
		ID:    id,
		Logic: logic,
	}
}

// Validate walks the logic tree and reports structural problems without
// evaluating it: operation nodes with zero or multiple keys, operator names
// not in the table, and literal missing_some operands of the wrong shape.
// Lookup failures (unknown variables) are evaluation-time conditions and are
// not reported here.
func (r *Rule) Validate() error {
	return validateNode(r.Logic, 0)
}

func validateNode(logic any, depth int) error {
	if depth > defaultMaxDepth {
		return fmt.Errorf("%w: depth %d", ErrMaxDepthExceeded, depth)
	}
	node, ok := logic.(map[string]any)
	if !ok {
		if s, ok := logic.([]any); ok {
			for _, v := range s {
				if err := validateNode(v, depth+1); err != nil {
					return err
				}
			}
		}
		return nil
	}

	op, raw, err := operationNode(node)
	if err != nil {
		return err
	}
	if !knownOperator(op) {
		return fmt.Errorf("%w: %q", ErrUnrecognizedOperator, op)
	}

	operands, ok := raw.([]any)
	if !ok {
		operands = []any{raw}
	}
	if op == "missing_some" && len(operands) != 2 {
		return fmt.Errorf("%w: missing_some expects [min, names], got %d operands", ErrMalformedRule, len(operands))
	}
	for _, operand := range operands {
		if err := validateNode(operand, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// knownOperator reports whether name is in the operator table or one of the
// specially-dispatched operators.
func knownOperator(name string) bool {
	switch name {
	case "var", "missing", "missing_some", "if", "log":
		return true
	}
	_, ok := operators[name]
	return ok
}

// String returns a table of the nodes in the logic tree, indented by depth.
func (r *Rule) String() string {
	tw := table.NewWriter()
	tw.SetTitle("\nJSONLOGIC RULE\n")
	tw.AppendHeader(table.Row{"\nRule", "\nNode", "\nOperands"})

	for i, row := range logicToRows(r.Logic, 0) {
		if i == 0 {
			row[0] = r.ID
		}
		tw.AppendRow(row)
	}

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)
	return tw.Render()
}

func logicToRows(logic any, n int) []table.Row {
	indent := strings.Repeat("  ", n)

	node, ok := logic.(map[string]any)
	if !ok {
		return []table.Row{{"", fmt.Sprintf("%s%v", indent, logic), ""}}
	}

	rows := []table.Row{}
	for op, raw := range node {
		operands, list := raw.([]any)
		if !list {
			operands = []any{raw}
		}
		rows = append(rows, table.Row{"", fmt.Sprintf("%s%s", indent, op), fmt.Sprintf("%d", len(operands))})
		for _, c := range operands {
			rows = append(rows, logicToRows(c, n+1)...)
		}
	}
	return rows
}

// Tree returns a tree representation of the logic showing operator names and
// literals. The tree uses box-drawing characters to visualize the operand
// structure. Recursion is limited to a maximum depth of 20 levels.
//
// Example output:
//
//	and
//	├── <
//	│   ├── var: temp
//	│   └── 110
//	└── ==
//	    ├── var: pie.filling
//	    └── apple
func (r *Rule) Tree() string {
	if r == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(nodeLabel(r.Logic))
	sb.WriteString("\n")
	buildTree(&sb, r.Logic, "", 0)
	return sb.String()
}

// nodeLabel is the one-line label for a node: the operator name for
// operation nodes (var nodes inline their path), the value for literals.
func nodeLabel(logic any) string {
	node, ok := logic.(map[string]any)
	if !ok {
		return fmt.Sprintf("%v", logic)
	}
	for op, raw := range node {
		if op == "var" {
			if operands, ok := raw.([]any); ok {
				if len(operands) > 0 {
					return fmt.Sprintf("%s: %v", op, operands[0])
				}
				return op
			}
			return fmt.Sprintf("%s: %v", op, raw)
		}
		return op
	}
	return "{}"
}

// buildTree recursively builds the tree representation with proper
// indentation and tree characters (├──, └──, │).
// depth limits recursion to a maximum of 20 levels.
func buildTree(sb *strings.Builder, logic any, prefix string, depth int) {
	if depth >= 20 {
		return
	}
	node, ok := logic.(map[string]any)
	if !ok {
		return
	}
	for op, raw := range node {
		if op == "var" {
			// The path is already inlined in the label.
			return
		}
		operands, list := raw.([]any)
		if !list {
			operands = []any{raw}
		}
		for i, child := range operands {
			isLast := i == len(operands)-1
			var connector, childPrefix string
			if isLast {
				connector = "└── "
				childPrefix = "    "
			} else {
				connector = "├── "
				childPrefix = "│   "
			}

			sb.WriteString(prefix)
			sb.WriteString(connector)
			sb.WriteString(nodeLabel(child))
			sb.WriteString("\n")
			buildTree(sb, child, prefix+childPrefix, depth+1)
		}
	}
}
