package main

import (
	"fmt"

	"github.com/aretw0/parley/internal/cli"
	"github.com/aretw0/parley/internal/presentation/graph"
	"github.com/aretw0/parley/internal/validator"
	"github.com/aretw0/parley/pkg/links"
	"github.com/spf13/cobra"
)

func (a *app) newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <project>",
		Short: "Export the dialogue graph visualization",
		Long:  `Outputs a Mermaid diagram (graph TD) of the nodes and the links between them.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := cli.LoadNodes(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			var overlay *graph.GraphOverlay
			if sel, _ := cmd.Flags().GetString("select"); sel != "" {
				node, err := cli.FindNode(nodes, sel)
				if err != nil {
					return err
				}
				overlay = &graph.GraphOverlay{SelectedNode: node.ID}
			}

			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(nodes, overlay))
			return nil
		},
	}
	cmd.Flags().String("select", "", "Highlight a node (ID or name) and the nodes linking to it")
	return cmd
}

func (a *app) newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <project>",
		Short: "Check the graph for consistency",
		Long: `Reports dangling and broken targets and duplicate node names. With --start it also
crawls the graph from that node and reports unreachable nodes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")

			nodes, err := cli.LoadNodes(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := validator.Validate(nodes, start); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Graph is valid! ✅")
			return nil
		},
	}
	cmd.Flags().String("start", "", "Name of the entry node used for the reachability check")
	return cmd
}

func (a *app) newLinksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "links <project> <node>",
		Short: "List the links into and out of a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := cli.LoadNodes(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			node, err := cli.FindNode(nodes, args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			owners := links.Owners(nodes)
			byID := make(map[string]string, len(nodes))
			for _, n := range nodes {
				byID[n.ID] = n.Name
			}

			fmt.Fprintln(out, "outgoing:")
			for link := range links.Outgoing(node) {
				fmt.Fprintf(out, "  %s -> %s\n", link.FromID, byID[link.ToID])
			}
			fmt.Fprintln(out, "incoming:")
			for _, id := range links.Incoming(node, nodes) {
				fmt.Fprintf(out, "  %s <- %s\n", id, owners[id].Name)
			}
			return nil
		},
	}
}

func (a *app) newFilterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter <project> <query>",
		Short: "Find nodes by name or content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := cli.LoadNodes(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			for _, n := range links.Filter(args[1], nodes) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", n.ID, n.Name)
			}
			return nil
		},
	}
}
