package main

import (
	"github.com/aretw0/parley/internal/cli"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/script"
	"github.com/spf13/cobra"
)

func (a *app) newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a script into records",
		Long: `Reads a line script (or a response script with --responses) from a file or stdin
and prints the parsed records. Targets are resolved against the nodes of --project.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asResponses, _ := cmd.Flags().GetBool("responses")
			projectPath, _ := cmd.Flags().GetString("project")
			format, _ := cmd.Flags().GetString("format")

			path := cli.Stdin
			if len(args) > 0 {
				path = args[0]
			}
			text, err := cli.ReadInput(path, cmd.InOrStdin())
			if err != nil {
				return err
			}

			var nodes []domain.Node
			if projectPath != "" {
				if nodes, err = cli.LoadNodes(projectPath, cmd.InOrStdin()); err != nil {
					return err
				}
			}

			parser := script.NewParser()
			if asResponses {
				responses, err := parser.Responses(string(text), nodes)
				if err != nil {
					a.logger.Debug("Response script rejected", "line", domain.LineNumber(err))
					return err
				}
				return cli.Encode(cmd.OutOrStdout(), nonNil(responses), format)
			}

			lines, err := parser.Lines(string(text), nodes)
			if err != nil {
				a.logger.Debug("Line script rejected", "line", domain.LineNumber(err))
				return err
			}
			return cli.Encode(cmd.OutOrStdout(), nonNil(domain.LineRecords(lines)), format)
		},
	}

	cmd.Flags().Bool("responses", false, "Parse the input as a response script")
	cmd.Flags().String("project", "", "Project document used to resolve targets")
	cmd.Flags().StringP("format", "f", cli.FormatJSON, "Output format: json or yaml")
	return cmd
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
