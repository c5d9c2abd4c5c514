// Package cli holds the document handling shared by the parley commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/parley/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// ErrNodeNotFound is returned when a node reference matches nothing.
var ErrNodeNotFound = errors.New("node not found")

// ReadInput returns the contents of path, or of stdin when path is "" or "-".
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == Stdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// DecodeNodes reads a project document. It accepts either a project
// (savedWithVersion + sequences) or a bare list of nodes, in YAML or JSON.
// Project nodes are returned in sequence order.
func DecodeNodes(data []byte) ([]domain.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var nodes []domain.Node
		if err := root.Decode(&nodes); err != nil {
			return nil, fmt.Errorf("decode nodes: %w", err)
		}
		return nodes, nil
	}

	var project domain.Project
	if err := root.Decode(&project); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	return project.Nodes(), nil
}

// LoadNodes reads and decodes the project document at path.
func LoadNodes(path string, stdin io.Reader) ([]domain.Node, error) {
	data, err := ReadInput(path, stdin)
	if err != nil {
		return nil, err
	}
	return DecodeNodes(data)
}

// FindNode looks a node up by ID first, then by name.
func FindNode(nodes []domain.Node, ref string) (*domain.Node, error) {
	for i := range nodes {
		if nodes[i].ID == ref {
			return &nodes[i], nil
		}
	}
	if n := domain.FindNode(nodes, ref); n != nil {
		return n, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, ref)
}
