package dsl

import (
	"fmt"
	"time"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/script"
	"github.com/google/uuid"
)

// Builder manages the graph construction.
type Builder struct {
	nodes map[string]*NodeBuilder
	order []*NodeBuilder
	newID func() string
	now   func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithIDGenerator sets the function used to mint node, line and response IDs.
func WithIDGenerator(fn func() string) Option {
	return func(b *Builder) {
		b.newID = fn
	}
}

// WithClock sets the time source used for UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// New creates a new graph builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		nodes: make(map[string]*NodeBuilder),
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(name string) *NodeBuilder {
	if nb, ok := b.nodes[name]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.Node{
			ID:   b.newID(),
			Name: name,
		},
		builder: b,
	}
	b.nodes[name] = nb
	b.order = append(b.order, nb)
	return nb
}

// Build returns the nodes in declaration order.
// Every goto and choice target is resolved against the built nodes; names
// with no node (and END) keep an empty TargetID.
func (b *Builder) Build() ([]domain.Node, error) {
	nodes := make([]domain.Node, 0, len(b.order))
	stamp := b.now()
	for _, nb := range b.order {
		if nb.node.Name == "" {
			return nil, fmt.Errorf("node %s missing name", nb.node.ID)
		}
		n := nb.Build()
		n.UpdatedAt = stamp
		nodes = append(nodes, n)
	}

	idx := script.NewIndex(nodes)
	for i := range nodes {
		for j, l := range nodes[i].Lines {
			if g, ok := l.(domain.Goto); ok {
				g.TargetID = idx.Resolve(g.TargetName)
				nodes[i].Lines[j] = g
			}
		}
		for j := range nodes[i].Responses {
			r := &nodes[i].Responses[j]
			r.TargetID = idx.Resolve(r.TargetName)
		}
	}
	return nodes, nil
}

// Sequence builds the nodes and wraps them in a named sequence.
func (b *Builder) Sequence(name string) (domain.Sequence, error) {
	nodes, err := b.Build()
	if err != nil {
		return domain.Sequence{}, fmt.Errorf("failed to build sequence %q: %w", name, err)
	}
	return domain.Sequence{
		ID:        b.newID(),
		Name:      name,
		UpdatedAt: b.now(),
		Nodes:     nodes,
	}, nil
}

// Project builds a single-sequence project.
func (b *Builder) Project(sequenceName string) (*domain.Project, error) {
	seq, err := b.Sequence(sequenceName)
	if err != nil {
		return nil, err
	}
	return &domain.Project{
		SavedWithVersion: domain.FormatVersion,
		Sequences:        []domain.Sequence{seq},
	}, nil
}
