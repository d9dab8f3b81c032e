package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for the explorer
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explorer",
		Short: "Local file explorer backend",
		Long: `Explorer serves a local directory tree over HTTP for the file
explorer UI: depth-bounded listings, file content, search, and file
operations such as rename, move, create and delete.

Run without a subcommand to start the server. The ls and search
subcommands use the same engine directly from the terminal.`,
		Version:      Version,
		SilenceUsage: true,
	}

	serve := NewServeCommand()
	cmd.Flags().AddFlagSet(serve.Flags())
	cmd.RunE = serve.RunE

	cmd.AddCommand(serve)
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewSearchCommand())

	return cmd
}
