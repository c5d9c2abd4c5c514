/*
Package script converts dialogue scripts to domain records and back.

A node is edited as two plain-text scripts. The line script holds what is
said and done when the node is reached:

	[if metLilly=0] Lilly: Hi, I'm Lilly.
	[do metLilly=1]
	# Author note
	[if angry] -> Fight
	Lilly: What can I do for you?

The response script holds the player's choices:

	[if metLilly=1] Hi Lilly. -> hello
	I'm hungry. -> Kitchen
	Nothing for now.

A response without an arrow ends the sequence (target "END"). Target names are
resolved to node IDs against the node index supplied to each call; a name with
no matching node is kept with an empty ID and is not an error.

Rendering is canonical rather than verbatim: LinesToText and ResponsesToText
produce text that parses back to the same fields, not the original bytes.
They take the same node index as the parsers: a target whose ID names a node
is written under that node's current name.
*/
package script
