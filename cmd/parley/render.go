package main

import (
	"fmt"
	"os"

	"github.com/aretw0/parley/internal/cli"
	"github.com/aretw0/parley/internal/presentation/tui"
	"github.com/aretw0/parley/pkg/script"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (a *app) newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <project> <node>",
		Short: "Print a node as script text",
		Long:  `Prints the lines of a node, then its responses, in the script grammar accepted by parse.`,
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
			fmt.Fprintln(cmd.OutOrStdout(), script.NodeToText(node, nodes))
			return nil
		},
	}
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project> <node>",
		Short: "Preview a node in the terminal",
		Long:  `Renders a node as markdown. On a terminal the preview is styled with glamour.`,
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

			md := tui.NodeMarkdown(*node)
			out := cmd.OutOrStdout()
			if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				render, err := tui.NewRenderer()
				if err != nil {
					return err
				}
				styled, err := render(md)
				if err != nil {
					a.logger.Warn("Markdown render failed, printing raw", "error", err)
				} else {
					md = styled
				}
			}
			fmt.Fprint(out, md)
			return nil
		},
	}
}
