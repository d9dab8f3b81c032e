package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/FileExplorer/internal/providers/filesystem"
)

// NewSearchCommand creates the search subcommand
func NewSearchCommand() *cobra.Command {
	var (
		extensions string
		limit      int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "search <root> <query>",
		Short: "Find files and folders by name",
		Long: `Search every level under root for names containing query,
case-insensitively. Ignored directories such as node_modules and .git
are skipped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newCLIManager()
			if err != nil {
				return err
			}
			result, err := manager.Search(withContext(cmd), filesystem.SearchRequest{
				Root:       args[0],
				Query:      args[1],
				Extensions: extensions,
				Limit:      limit,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, result)
			}

			p := newPalette(colorEnabled(out))
			for _, r := range result.Matches {
				name := r.RelativePath
				if r.IsDir {
					name = p.dir.Sprint(name + "/")
				}
				fmt.Fprintf(out, "%s %s\n", name, p.meta.Sprint(recordMeta(r)))
			}
			summary := fmt.Sprintf("%d matches", result.Count)
			if result.Truncated {
				summary += " (truncated)"
			}
			fmt.Fprintln(out, p.meta.Sprint(summary))
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&extensions, "ext", "e", "", "Extensions to keep, joined with +")
	cmd.Flags().IntVarP(&limit, "limit", "n", filesystem.DefaultSearchLimit, "Maximum number of matches")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}
