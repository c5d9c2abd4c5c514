package script

import "github.com/aretw0/parley/pkg/domain"

// Index maps node names to node IDs.
// When several nodes share a name, the first one in index order wins.
type Index map[string]string

// NewIndex projects nodes into a name lookup.
func NewIndex(nodes []domain.Node) Index {
	idx := make(Index, len(nodes))
	for _, n := range nodes {
		if _, seen := idx[n.Name]; !seen {
			idx[n.Name] = n.ID
		}
	}
	return idx
}

// Resolve returns the ID of the node named name, or "" when there is none.
// The END sentinel never resolves.
func (idx Index) Resolve(name string) string {
	if name == domain.EndTarget {
		return ""
	}
	return idx[name]
}

// Resolve returns the ID of the first node named name, or "".
// It is the one-off form of Index.Resolve.
func Resolve(name string, nodes []domain.Node) string {
	if name == domain.EndTarget {
		return ""
	}
	for _, n := range nodes {
		if n.Name == name {
			return n.ID
		}
	}
	return ""
}
