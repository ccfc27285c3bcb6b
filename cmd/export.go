package cmd

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/recall/internal/errors"
	"github.com/manav03panchal/recall/internal/model"
	"github.com/manav03panchal/recall/internal/notes"
	"github.com/manav03panchal/recall/internal/parser"
	"github.com/manav03panchal/recall/internal/storage"
)

// Export command flags.
var (
	exportFlagFormat string
	exportFlagOutput string
	exportFlagAll    bool
	exportFlagSince  string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes",
	Long: `Export notes as JSON or CSV. The JSON format can be read back with
'recall import'. Archived notes are only included with --all.

Examples:
  recall export
  recall export --all -o backup.json
  recall export --format csv -o notes.csv
  recall export --since "last month"`,
	Args: exactArgs(0),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlagFormat, "format", "F", "json", "Output format: json, csv")
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Output file (stdout if omitted)")
	exportCmd.Flags().BoolVar(&exportFlagAll, "all", false, "Include archived notes")
	exportCmd.Flags().StringVar(&exportFlagSince, "since", "", "Only notes created since a time")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	records := ctx.Store.ListActive()
	if exportFlagAll {
		records = ctx.Store.List()
	}
	if exportFlagSince != "" {
		since, err := parser.ParseSince(exportFlagSince, clock())
		if err != nil {
			var pe *parser.TimeParseError
			if errors.As(err, &pe) {
				return pe.ToUserError()
			}
			return err
		}
		records = notes.CreatedSince(records, since)
	}

	var (
		data []byte
		err  error
	)
	switch exportFlagFormat {
	case "csv":
		data, err = exportCSV(records)
	case "json":
		data, err = storage.EncodeDocument(records)
	default:
		return errors.NewUserErrorWithField("format", exportFlagFormat,
			"Unknown export format", "Use one of: json, csv")
	}
	if err != nil {
		return errors.NewSystemErrorWithOp("export", "could not encode notes", err)
	}

	if exportFlagOutput == "" {
		ctx.Formatter.Print(string(data))
		return nil
	}

	if err := storage.SafeWrite(exportFlagOutput, data, 0o644); err != nil {
		return errors.NewStorageError("export", exportFlagOutput, err)
	}
	ctx.Debugf("exported %d notes to %s", len(records), exportFlagOutput)
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(struct {
			Status string `json:"status"`
			Path   string `json:"path"`
			Count  int    `json:"count"`
		}{"exported", exportFlagOutput, len(records)})
	}
	ctx.CLIFormatter().Success("Exported " + strconv.Itoa(len(records)) + " notes to " + exportFlagOutput)
	return nil
}

func exportCSV(records []*model.Record) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	// Write header
	if err := writer.Write([]string{
		"id", "created_at", "kind", "title", "body", "active",
	}); err != nil {
		return nil, err
	}

	// Write rows
	for _, r := range records {
		if err := writer.Write([]string{
			strconv.Itoa(r.ID),
			r.CreatedAt.Format(time.RFC3339),
			string(r.Kind),
			r.Title,
			r.Body,
			strconv.FormatBool(r.Active),
		}); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}
