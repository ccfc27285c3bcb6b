package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/recall/internal/errors"
	"github.com/manav03panchal/recall/internal/storage"
)

// Import command flags.
var importFlagDryRun bool

// importCmd represents the import command.
var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import notes from an export file",
	Long: `Append the notes in a file written by 'recall export' (JSON format).
Imported notes get new ids after the existing ones; their creation time,
kind, text and archived state are kept.

Examples:
  recall import backup.json
  recall import backup.json --dry-run`,
	Args: exactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importFlagDryRun, "dry-run", false, "Preview import without making changes")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	filename := args[0]

	// Read file
	data, err := os.ReadFile(filename)
	if err != nil {
		ue := errors.NewUserErrorWithField("file", filename,
			"Could not read import file", "Check the path and permissions of the file")
		ue.Cause = err
		return ue
	}

	records, err := storage.DecodeDocument(data)
	if err != nil {
		ue := errors.NewUserErrorWithField("file", filename,
			fmt.Sprintf("Could not parse import file: %v", err), "Use a JSON file written by 'recall export'")
		ue.Cause = err
		return ue
	}

	cli := ctx.CLIFormatter()
	if importFlagDryRun {
		if ctx.IsJSON() {
			return ctx.Formatter.JSON(struct {
				Status string `json:"status"`
				Count  int    `json:"count"`
			}{"dry_run", len(records)})
		}
		cli.Printf("Would import %d notes from %s\n", len(records), filename)
		return nil
	}

	imported, err := ctx.Store.Import(records)
	if err != nil {
		return err
	}
	ctx.Debugf("imported %d of %d records", len(imported), len(records))

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintImported(imported)
	}
	if len(imported) == 0 {
		cli.Muted("Nothing to import.")
		return nil
	}
	cli.Success(fmt.Sprintf("Imported %d notes from %s", len(imported), filename))
	return nil
}
