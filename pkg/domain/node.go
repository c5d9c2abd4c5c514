package domain

import "time"

// Project is the root of an authored dialogue document.
type Project struct {
	SavedWithVersion float64    `json:"savedWithVersion" yaml:"savedWithVersion"`
	Sequences        []Sequence `json:"sequences" yaml:"sequences"`
}

// Sequence groups the nodes of one conversation.
type Sequence struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
	Nodes     []Node    `json:"nodes" yaml:"nodes"`
}

// Node is a named vertex in the dialogue graph.
// It owns its Lines and Responses; deleting a Node discards them.
type Node struct {
	ID        string
	Name      string
	UpdatedAt time.Time
	Lines     []Line
	Responses []Response
}

// Response is one player-facing choice belonging to a node.
type Response struct {
	ID         string `json:"id" yaml:"id"`
	Condition  string `json:"condition,omitempty" yaml:"condition,omitempty"`
	Prompt     string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	TargetName string `json:"goToNodeName,omitempty" yaml:"goToNodeName,omitempty"`

	// TargetID is authoritative when set. An empty TargetID with a non-END
	// TargetName is a dangling reference.
	TargetID string `json:"goToNodeId,omitempty" yaml:"goToNodeId,omitempty"`
}

// Link is an outgoing edge from a line or response to a node.
type Link struct {
	FromID string `json:"fromId" yaml:"fromId"`
	ToID   string `json:"toId" yaml:"toId"`
}

// Nodes flattens every node of every sequence, in order.
func (p *Project) Nodes() []Node {
	if p == nil {
		return nil
	}
	var nodes []Node
	for _, seq := range p.Sequences {
		nodes = append(nodes, seq.Nodes...)
	}
	return nodes
}

// FindNode returns the first node named name, or nil.
func FindNode(nodes []Node, name string) *Node {
	for i := range nodes {
		if nodes[i].Name == name {
			return &nodes[i]
		}
	}
	return nil
}
