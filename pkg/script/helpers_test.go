package script

import (
	"fmt"

	"github.com/aretw0/parley/pkg/domain"
)

// sequentialIDs returns a deterministic ID generator: id1, id2, ...
func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id%d", n)
	})
}

func node(id, name string) domain.Node {
	return domain.Node{ID: id, Name: name}
}
