package script

import (
	"strings"

	"github.com/aretw0/parley/pkg/domain"
)

// names maps node IDs to node names; the first node with an ID wins.
type names map[string]string

func newNames(nodes []domain.Node) names {
	m := make(names, len(nodes))
	for _, n := range nodes {
		if _, ok := m[n.ID]; !ok {
			m[n.ID] = n.Name
		}
	}
	return m
}

// label is the target written after "->". A TargetID that names a node in
// nodes wins over the stored TargetName, so renamed nodes render under their
// current name; otherwise the stored name is used, and END when both are
// empty.
func (m names) label(targetName, targetID string) string {
	if targetID != "" {
		if name, ok := m[targetID]; ok && name != "" {
			return name
		}
	}
	return targetOrEnd(targetName)
}

// LinesToText renders lines as a script, one line per record. Goto targets
// are labelled from nodes when their ID matches one (see ResponsesToText).
// Nil or empty input renders to "".
func LinesToText(lines []domain.Line, nodes []domain.Node) string {
	m := newNames(nodes)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = m.lineText(l)
	}
	return strings.Join(out, "\n")
}

// LineText renders a single line in canonical form.
func LineText(l domain.Line, nodes []domain.Node) string {
	return newNames(nodes).lineText(l)
}

func (m names) lineText(l domain.Line) string {
	switch v := l.(type) {
	case domain.Dialogue:
		body := v.Text
		if v.Character != "" {
			body = strings.TrimSpace(v.Character + ": " + v.Text)
		}
		return withCondition(v.Condition, body)
	case domain.Mutation:
		return "[do " + v.Expression + "]"
	case domain.Comment:
		return strings.TrimSpace("# " + v.Text)
	case domain.Goto:
		return withCondition(v.Condition, "-> "+m.label(v.TargetName, v.TargetID))
	default:
		return ""
	}
}

// ResponsesToText renders responses as a script, one line per record.
// A target whose ID belongs to one of nodes is written as that node's name,
// so a record carrying only an ID still re-parses to the same link.
// Nil or empty input renders to "".
func ResponsesToText(responses []domain.Response, nodes []domain.Node) string {
	m := newNames(nodes)
	out := make([]string, len(responses))
	for i, r := range responses {
		out[i] = m.responseText(r)
	}
	return strings.Join(out, "\n")
}

// ResponseText renders a single response in canonical form.
func ResponseText(r domain.Response, nodes []domain.Node) string {
	return newNames(nodes).responseText(r)
}

func (m names) responseText(r domain.Response) string {
	body := "-> " + m.label(r.TargetName, r.TargetID)
	if r.Prompt != "" {
		body = r.Prompt + " " + body
	}
	return withCondition(r.Condition, body)
}

func withCondition(condition, body string) string {
	if condition == "" {
		return body
	}
	if body == "" {
		return "[if " + condition + "]"
	}
	return "[if " + condition + "] " + body
}

// NodeToText renders a node's lines, then its responses, separated by an
// empty line. Either part is omitted when the node has none. Targets are
// labelled from nodes as in ResponsesToText.
func NodeToText(node *domain.Node, nodes []domain.Node) string {
	if node == nil {
		return ""
	}
	var parts []string
	if len(node.Lines) > 0 {
		parts = append(parts, LinesToText(node.Lines, nodes))
	}
	if len(node.Responses) > 0 {
		parts = append(parts, ResponsesToText(node.Responses, nodes))
	}
	return strings.Join(parts, "\n\n")
}
