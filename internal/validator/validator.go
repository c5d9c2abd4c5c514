package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/links"
)

// Kind classifies an integrity issue.
type Kind string

const (
	// KindDangling is a target name that matches no node.
	KindDangling Kind = "dangling"
	// KindBroken is a target ID that matches no node.
	KindBroken Kind = "broken"
	// KindDuplicate is a node name used more than once; only the first is reachable by name.
	KindDuplicate Kind = "duplicate"
	// KindUnreachable is a node with no path from the start node.
	KindUnreachable Kind = "unreachable"
)

// Issue is a single integrity problem.
type Issue struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	NodeID string `json:"nodeId" yaml:"nodeId"`
	ItemID string `json:"itemId,omitempty" yaml:"itemId,omitempty"`
	Detail string `json:"detail" yaml:"detail"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Kind, i.Detail)
}

// Report collects every issue found by Validate.
type Report struct {
	Issues []Issue
}

func (r *Report) Error() string {
	if len(r.Issues) == 1 {
		return r.Issues[0].String()
	}
	msg := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		msg[i] = issue.String()
	}
	return fmt.Sprintf("found %d errors:\n- %s", len(r.Issues), strings.Join(msg, "\n- "))
}

// Validate checks nodes for dangling and broken targets, duplicate names and,
// when start is not empty, nodes unreachable from the node named start.
// It returns nil or a *Report.
func Validate(nodes []domain.Node, start string) error {
	var issues []Issue

	ids := make(map[string]bool, len(nodes))
	names := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = true
		if names[n.Name] {
			issues = append(issues, Issue{
				Kind:   KindDuplicate,
				NodeID: n.ID,
				Detail: fmt.Sprintf("node name '%s' is used more than once", n.Name),
			})
		}
		names[n.Name] = true
	}

	for _, n := range nodes {
		check := func(itemID, name, id string) {
			switch {
			case id != "" && !ids[id]:
				issues = append(issues, Issue{
					Kind:   KindBroken,
					NodeID: n.ID,
					ItemID: itemID,
					Detail: fmt.Sprintf("'%s' links to missing node id '%s'", n.Name, id),
				})
			case id == "" && name != "" && name != domain.EndTarget:
				issues = append(issues, Issue{
					Kind:   KindDangling,
					NodeID: n.ID,
					ItemID: itemID,
					Detail: fmt.Sprintf("'%s' links to unknown node '%s'", n.Name, name),
				})
			}
		}
		for _, l := range n.Lines {
			if name, id, ok := domain.LineTarget(l); ok {
				check(l.LineID(), name, id)
			}
		}
		for _, r := range n.Responses {
			check(r.ID, r.TargetName, r.TargetID)
		}
	}

	if start != "" {
		unreachable, err := Unreachable(nodes, start)
		if err != nil {
			return err
		}
		for _, n := range unreachable {
			issues = append(issues, Issue{
				Kind:   KindUnreachable,
				NodeID: n.ID,
				Detail: fmt.Sprintf("'%s' cannot be reached from '%s'", n.Name, start),
			})
		}
	}

	if len(issues) > 0 {
		return &Report{Issues: issues}
	}
	return nil
}

// Unreachable crawls the graph breadth-first from the node named start and
// returns the nodes it never visits, in index order.
func Unreachable(nodes []domain.Node, start string) ([]domain.Node, error) {
	startNode := domain.FindNode(nodes, start)
	if startNode == nil {
		return nil, fmt.Errorf("start node '%s' not found", start)
	}

	byID := make(map[string]*domain.Node, len(nodes))
	for i := range nodes {
		if _, seen := byID[nodes[i].ID]; !seen {
			byID[nodes[i].ID] = &nodes[i]
		}
	}

	visited := map[string]bool{}
	queue := []*domain.Node{startNode}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current.ID] {
			continue
		}
		visited[current.ID] = true

		for link := range links.Outgoing(current) {
			// Broken IDs are reported by Validate.
			if next, ok := byID[link.ToID]; ok && !visited[next.ID] {
				queue = append(queue, next)
			}
		}
	}

	var out []domain.Node
	for _, n := range nodes {
		if !visited[n.ID] {
			out = append(out, n)
		}
	}
	return out, nil
}
