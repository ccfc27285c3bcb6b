package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/recall/internal/editor"
	"github.com/manav03panchal/recall/internal/output"
	"github.com/manav03panchal/recall/internal/storage"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the settings recall is using and where they came from.

Settings are read from, lowest precedence first:
  defaults
  $XDG_CONFIG_HOME/recall/config.toml
  the nearest .recall.toml in this directory or a parent
  RECALL_* environment variables (a .env file may set them)

--config FILE replaces both config files.

Keys:
  backend          badger, sqlite or json
  db_path          where notes are stored (~ is expanded)
  editor_command   editor for --edit, e.g. ["code", "--wait"]
  open_command     opener for links and paths, {} is replaced by the target
  format           cli, json or plain
  color            auto, always or never`,
	Args: exactArgs(0),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configOutput is the JSON shape of the effective configuration.
type configOutput struct {
	Backend       string   `json:"backend"`
	DBPath        string   `json:"db_path"`
	EditorCommand []string `json:"editor_command"`
	OpenCommand   []string `json:"open_command"`
	Format        string   `json:"format"`
	Color         string   `json:"color"`
	Files         []string `json:"files"`
	EnvFile       string   `json:"env_file,omitempty"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	format, colorMode, err := outputModes(cfg)
	if err != nil {
		return err
	}
	f := output.NewFormatter()
	f.Writer = cmd.OutOrStdout()
	f.ErrWriter = cmd.ErrOrStderr()
	f.Format = format
	f.ColorMode = colorMode

	backend, err := storage.ParseBackend(cfg.Backend)
	if err != nil {
		return err
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = storage.DefaultPathFor(backend)
	}
	editorCommand := editor.New(cfg.EditorCommand).Resolve()

	if f.IsJSON() {
		files := cfg.Files
		if files == nil {
			files = []string{}
		}
		return f.JSON(configOutput{
			Backend:       string(backend),
			DBPath:        dbPath,
			EditorCommand: editorCommand,
			OpenCommand:   cfg.OpenCommand,
			Format:        cfg.Format,
			Color:         cfg.Color,
			Files:         files,
			EnvFile:       cfg.EnvFile,
		})
	}

	openCommand := "system default"
	if len(cfg.OpenCommand) > 0 {
		openCommand = strings.Join(cfg.OpenCommand, " ")
	}
	envFile := cfg.EnvFile
	if envFile == "" {
		envFile = "none"
	}

	output.NewCLIFormatter(f).PrintKeyValues([][2]string{
		{"backend", string(backend)},
		{"db_path", dbPath},
		{"editor_command", strings.Join(editorCommand, " ")},
		{"open_command", openCommand},
		{"format", cfg.Format},
		{"color", cfg.Color},
		{"source", cfg.Source()},
		{"env_file", envFile},
	})
	return nil
}
