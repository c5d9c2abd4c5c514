// Package links derives the edges of a dialogue graph from node records.
//
// It never parses scripts and never mutates its inputs: a Goto line or a
// Response whose TargetID is set is an edge, everything else is not. Edges
// are reported in declaration order, lines before responses.
package links
