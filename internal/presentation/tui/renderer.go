package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// It detects a light or dark terminal background automatically.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// NodeMarkdown formats a node as a script preview: dialogue as prose,
// mutations and gotos as code, comments as quotes, responses as a list.
func NodeMarkdown(node domain.Node) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", node.Name)

	for _, l := range node.Lines {
		switch v := l.(type) {
		case domain.Dialogue:
			sb.WriteString(conditionPrefix(v.Condition))
			if v.Character != "" {
				fmt.Fprintf(&sb, "**%s:** ", v.Character)
			}
			sb.WriteString(v.Text)
		case domain.Mutation:
			fmt.Fprintf(&sb, "`do %s`", v.Expression)
		case domain.Comment:
			fmt.Fprintf(&sb, "> %s", v.Text)
		case domain.Goto:
			sb.WriteString(conditionPrefix(v.Condition))
			fmt.Fprintf(&sb, "→ **%s**", v.TargetName)
		}
		sb.WriteString("\n\n")
	}

	if len(node.Responses) > 0 {
		sb.WriteString("## Responses\n\n")
		for _, r := range node.Responses {
			sb.WriteString("- ")
			sb.WriteString(conditionPrefix(r.Condition))
			if r.Prompt != "" {
				sb.WriteString(r.Prompt + " ")
			}
			fmt.Fprintf(&sb, "→ **%s**\n", r.TargetName)
		}
	}
	return sb.String()
}

func conditionPrefix(condition string) string {
	if condition == "" {
		return ""
	}
	return fmt.Sprintf("_if %s_ ", condition)
}
