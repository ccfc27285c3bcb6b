package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/manav03panchal/recall/internal/errors"
	"github.com/manav03panchal/recall/internal/tui"
)

// browseCmd represents the browse command.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Pick notes interactively",
	Long: `Browse active notes in a full-screen list.

Keys:
  up/down, j/k   move
  enter, o       open a link or path
  a              archive the selected note
  r              reload
  q, esc         quit`,
	Args: exactArgs(0),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.NewUsageError(errors.ErrNotTerminal,
			"recall browse needs an interactive terminal", errors.Suggestions[errors.ErrNotTerminal])
	}
	return tui.RunBrowse(tui.BrowseConfig{Store: ctx.Store, Opener: ctx.Opener})
}
