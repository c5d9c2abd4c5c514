package dsl

import "github.com/aretw0/parley/pkg/domain"

// NodeBuilder provides a fluent API for writing a node's script.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
	pending string
}

// If sets the condition of the next Say, Narrate, Go or Choice.
func (n *NodeBuilder) If(condition string) *NodeBuilder {
	n.pending = condition
	return n
}

// Say adds a line spoken by character.
func (n *NodeBuilder) Say(character, text string) *NodeBuilder {
	n.node.Lines = append(n.node.Lines, domain.Dialogue{
		ID:        n.builder.newID(),
		Condition: n.takeCondition(),
		Character: character,
		Text:      text,
	})
	return n
}

// Narrate adds a line with no speaker.
func (n *NodeBuilder) Narrate(text string) *NodeBuilder {
	return n.Say("", text)
}

// Do adds a mutation line.
func (n *NodeBuilder) Do(expression string) *NodeBuilder {
	n.node.Lines = append(n.node.Lines, domain.Mutation{ID: n.builder.newID(), Expression: expression})
	return n
}

// Note adds an author comment.
func (n *NodeBuilder) Note(text string) *NodeBuilder {
	n.node.Lines = append(n.node.Lines, domain.Comment{ID: n.builder.newID(), Text: text})
	return n
}

// Blank adds an empty line.
func (n *NodeBuilder) Blank() *NodeBuilder {
	n.node.Lines = append(n.node.Lines, domain.Blank{ID: n.builder.newID()})
	return n
}

// Go adds a goto line to the named node.
func (n *NodeBuilder) Go(target string) *NodeBuilder {
	n.node.Lines = append(n.node.Lines, domain.Goto{
		ID:         n.builder.newID(),
		Condition:  n.takeCondition(),
		TargetName: target,
	})
	return n
}

// Choice adds a player response leading to the named node.
func (n *NodeBuilder) Choice(prompt, target string) *NodeBuilder {
	n.node.Responses = append(n.node.Responses, domain.Response{
		ID:         n.builder.newID(),
		Condition:  n.takeCondition(),
		Prompt:     prompt,
		TargetName: target,
	})
	return n
}

// End adds a player response that ends the sequence.
func (n *NodeBuilder) End(prompt string) *NodeBuilder {
	return n.Choice(prompt, domain.EndTarget)
}

// Build returns a copy of the underlying domain.Node with unresolved targets.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.Node {
	node := n.node
	node.Lines = append([]domain.Line(nil), n.node.Lines...)
	node.Responses = append([]domain.Response(nil), n.node.Responses...)
	return node
}

func (n *NodeBuilder) takeCondition() string {
	c := n.pending
	n.pending = ""
	return c
}
