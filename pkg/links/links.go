package links

import (
	"iter"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
)

// Outgoing yields an edge for every line, then every response, of node whose
// TargetID is set. The sequence is lazy and can be ranged over repeatedly.
// A nil node yields nothing.
func Outgoing(node *domain.Node) iter.Seq[domain.Link] {
	return func(yield func(domain.Link) bool) {
		if node == nil {
			return
		}
		for _, l := range node.Lines {
			if _, to, ok := domain.LineTarget(l); ok && to != "" {
				if !yield(domain.Link{FromID: l.LineID(), ToID: to}) {
					return
				}
			}
		}
		for _, r := range node.Responses {
			if r.TargetID != "" {
				if !yield(domain.Link{FromID: r.ID, ToID: r.TargetID}) {
					return
				}
			}
		}
	}
}

// Incoming returns the IDs of every line and response in nodes that targets
// target, scanning nodes in order. It returns an empty slice when either
// argument is missing.
func Incoming(target *domain.Node, nodes []domain.Node) []string {
	found := []string{}
	if target == nil || nodes == nil {
		return found
	}
	for i := range nodes {
		for link := range Outgoing(&nodes[i]) {
			if link.ToID == target.ID {
				found = append(found, link.FromID)
			}
		}
	}
	return found
}

// Owners maps every line and response ID to the node that owns it.
// The pointers refer to elements of nodes.
func Owners(nodes []domain.Node) map[string]*domain.Node {
	owners := make(map[string]*domain.Node)
	for i := range nodes {
		n := &nodes[i]
		for _, l := range n.Lines {
			owners[l.LineID()] = n
		}
		for _, r := range n.Responses {
			owners[r.ID] = n
		}
	}
	return owners
}

// Filter returns the nodes whose name or content contains query, ignoring
// case, in their original order.
//
// Lines match on character, text, condition, mutation and target name;
// responses on condition, prompt and target name. Because target names are
// searched, a node can match only because it links to a node whose name
// matches.
func Filter(query string, nodes []domain.Node) []domain.Node {
	q := strings.ToLower(query)
	found := []domain.Node{}
	for _, n := range nodes {
		if nodeMatches(n, q) {
			found = append(found, n)
		}
	}
	return found
}

func nodeMatches(n domain.Node, q string) bool {
	if contains(n.Name, q) {
		return true
	}
	for _, l := range n.Lines {
		if lineMatches(l, q) {
			return true
		}
	}
	for _, r := range n.Responses {
		if contains(r.Condition, q) || contains(r.Prompt, q) || contains(r.TargetName, q) {
			return true
		}
	}
	return false
}

func lineMatches(l domain.Line, q string) bool {
	switch v := l.(type) {
	case domain.Dialogue:
		return contains(v.Character, q) || contains(v.Text, q) || contains(v.Condition, q)
	case domain.Mutation:
		return contains(v.Expression, q)
	case domain.Goto:
		return contains(v.Condition, q) || contains(v.TargetName, q)
	}
	return false
}

func contains(field, q string) bool {
	return strings.Contains(strings.ToLower(field), q)
}
