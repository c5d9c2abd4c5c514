/*
Package parley authors branching dialogue graphs as plain text.

A dialogue is a graph of named nodes. Each node owns a line script (what is
said and done) and a response script (the player's choices). Parley parses
both scripts into typed records, renders records back to canonical text, and
derives the links between nodes for navigation, search and validation.

# Packages

  - pkg/domain: the record model (Project, Sequence, Node, Line, Response).
  - pkg/script: the line and response grammars, target resolution and the
    text renderer.
  - pkg/links: outgoing and incoming links, owner lookup and content search.
  - pkg/dsl: a fluent builder for authoring graphs in Go.
  - pkg/adapters/http and pkg/adapters/mcp: the same operations over HTTP and
    the Model Context Protocol.

# Usage

	nodes := []domain.Node{{ID: "k1", Name: "Kitchen"}}

	lines, err := script.ParseLines("Lilly: Hungry?\n[if hungry] -> Kitchen", nodes)
	if err != nil {
		// *domain.ParseError carries the failing line number.
		log.Fatal(err)
	}

	fmt.Println(script.LinesToText(lines, nodes))

Unknown target names are not errors: they are kept with an empty TargetID so
the author can create the node later.
*/
package parley
