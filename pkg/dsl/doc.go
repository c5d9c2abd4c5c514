/*
Package dsl provides a Go DSL for authoring Parley dialogue graphs in code.

It is the programmatic counterpart of the text scripts in package script: the
same records are produced, with IDs minted by the builder and targets resolved
once every node has been declared, so nodes may reference each other in any
order.

Example usage:

	b := dsl.New()

	b.Add("Start").
		If("metLilly=0").Say("Lilly", "Hi, I'm Lilly.").
		Do("metLilly=1").
		Choice("I'm hungry.", "Kitchen").
		End("Nothing for now.")

	b.Add("Kitchen").
		Narrate("It smells of bread.").
		Go("END")

	nodes, err := b.Build()
*/
package dsl
