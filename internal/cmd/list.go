package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/FileExplorer/internal/domain/explorer"
	"github.com/GriffinCanCode/FileExplorer/internal/infrastructure/config"
	"github.com/GriffinCanCode/FileExplorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/FileExplorer/internal/providers/filesystem"
)

// NewListCommand creates the ls subcommand
func NewListCommand() *cobra.Command {
	var (
		depth      int
		extensions string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List a directory tree",
		Long: `List path (default ".") down to --depth levels, applying the
same ignore rules and extension filter as the HTTP API.

Examples:
  explorer ls ~/project --depth 2
  explorer ls . --ext py+ipynb --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			manager, err := newCLIManager()
			if err != nil {
				return err
			}
			records, err := manager.Records(withContext(cmd), filesystem.TraversalRequest{
				Root:       root,
				Depth:      depth,
				Extensions: extensions,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, records)
			}
			printRecords(out, records, colorEnabled(out))
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 1, "How many levels to descend")
	cmd.Flags().StringVarP(&extensions, "ext", "e", "", "Extensions to keep, joined with +, e.g. py+txt")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")

	return cmd
}

// newCLIManager builds an explorer from the environment without the
// response cache, logging only warnings to stderr.
func newCLIManager() (*explorer.Manager, error) {
	cfg := config.LoadOrDefault()
	cfg.Cache.Enabled = false

	logCfg := logging.DefaultConfig()
	logCfg.Level = "warn"
	logCfg.OutputPaths = []string{"stderr"}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}
	return explorer.NewManager(explorer.ConfigFrom(cfg), logger.Component("explorer"))
}

// colorEnabled reports whether w is a terminal
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type palette struct {
	dir  *color.Color
	file *color.Color
	meta *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		dir:  color.New(color.FgBlue, color.Bold),
		file: color.New(color.Reset),
		meta: color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.dir, p.file, p.meta} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// printRecords writes one line per record, indented by depth
func printRecords(w io.Writer, records []filesystem.FileRecord, colored bool) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No entries found")
		return
	}

	p := newPalette(colored)
	for _, r := range records {
		indent := strings.Repeat("  ", max(r.Depth-1, 0))
		fmt.Fprintf(w, "%s%s %s\n", indent, recordName(p, r), p.meta.Sprint(recordMeta(r)))
	}
}

func recordName(p palette, r filesystem.FileRecord) string {
	if r.IsDir {
		return p.dir.Sprint(r.Name + "/")
	}
	return p.file.Sprint(r.Name)
}

func recordMeta(r filesystem.FileRecord) string {
	switch {
	case r.IsDir && r.ChildrenCount != nil:
		if *r.ChildrenCount == 1 {
			return "(1 item)"
		}
		return fmt.Sprintf("(%d items)", *r.ChildrenCount)
	case r.Size != nil:
		return "(" + humanize.IBytes(uint64(*r.Size)) + ")"
	default:
		return ""
	}
}
