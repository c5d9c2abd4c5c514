package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/links"
)

// GraphOverlay contains selection data to highlight on the graph.
type GraphOverlay struct {
	// SelectedNode is the ID of the node being edited.
	SelectedNode string
}

const endID = "END__"

// GenerateMermaid produces a Mermaid flowchart syntax string from a list of nodes.
// It applies semantic styling:
// - First node: ((Circle))
// - Node with responses: [/Parallelogram/] (waits for the player)
// - Default: [Rectangle]
// Resolved links are solid arrows labelled with their condition (and prompt,
// for responses). END targets point to a shared terminal node and dangling
// names to a dashed ghost node.
// If an overlay is given, the selected node and the nodes linking into it are styled.
func GenerateMermaid(nodes []domain.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	usesEnd := false
	var ghosts []string
	seenGhost := map[string]bool{}

	for i, node := range nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch {
		case i == 0:
			opener, closer = "((", "))"
		case len(node.Responses) > 0:
			opener, closer = "[/", "/]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(node.Name), closer))

		edge := func(condition, prompt, name, id string) {
			label := condition
			if prompt != "" {
				if label != "" {
					label += " · "
				}
				label += prompt
			}
			arrow := "-->"
			if label != "" {
				arrow = fmt.Sprintf("-- \"%s\" -->", escapeLabel(label))
			}

			to := ""
			switch {
			case id != "":
				to = sanitizeMermaidID(id)
			case name == domain.EndTarget || name == "":
				usesEnd = true
				to = endID
			default:
				to = "ghost_" + sanitizeMermaidID(name)
				if !seenGhost[name] {
					seenGhost[name] = true
					ghosts = append(ghosts, name)
				}
				arrow = "-.->"
				if label != "" {
					arrow = fmt.Sprintf("-. \"%s\" .->", escapeLabel(label))
				}
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, to))
		}

		for _, l := range node.Lines {
			if g, ok := l.(domain.Goto); ok {
				edge(g.Condition, "", g.TargetName, g.TargetID)
			}
		}
		for _, r := range node.Responses {
			edge(r.Condition, r.Prompt, r.TargetName, r.TargetID)
		}
	}

	if usesEnd {
		sb.WriteString(fmt.Sprintf("    %s(((\"END\")))\n", endID))
	}
	for _, name := range ghosts {
		sb.WriteString(fmt.Sprintf("    ghost_%s[\"%s ?\"]\n", sanitizeMermaidID(name), escapeLabel(name)))
	}

	if overlay != nil && overlay.SelectedNode != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds
		sb.WriteString("    classDef incoming fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		var selected *domain.Node
		for i := range nodes {
			if nodes[i].ID == overlay.SelectedNode {
				selected = &nodes[i]
				break
			}
		}

		owners := links.Owners(nodes)
		styled := map[string]bool{}
		for _, itemID := range links.Incoming(selected, nodes) {
			owner := owners[itemID]
			if owner == nil || owner.ID == overlay.SelectedNode || styled[owner.ID] {
				continue
			}
			styled[owner.ID] = true
			sb.WriteString(fmt.Sprintf("    class %s incoming;\n", sanitizeMermaidID(owner.ID)))
		}
		sb.WriteString(fmt.Sprintf("    class %s selected;\n", sanitizeMermaidID(overlay.SelectedNode)))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// escapeLabel swaps double quotes, which would end a Mermaid label.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
