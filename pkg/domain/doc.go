/*
Package domain contains the record model for Parley dialogue graphs.

It defines the entities an author works with: a Project holds Sequences, a
Sequence holds Nodes, and each Node exclusively owns an ordered list of Lines
and an ordered list of Responses. This package is kept pure and free of I/O;
parsing lives in package script and graph traversal in package links.

# Key Entities

  - Node: A named vertex in the dialogue graph.
  - Line: One entry of a node's dialogue script. It is a closed set of variants
    (Dialogue, Mutation, Comment, Goto, Blank), so impossible field
    combinations cannot be built.
  - Response: A player-facing choice with an optional condition and a target.
  - Link: An outgoing edge from a Line or Response to another Node.

Targets are authored by name and resolved to a node ID. The name "END" is a
reserved sentinel that never resolves.
*/
package domain
