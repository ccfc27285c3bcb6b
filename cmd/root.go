// Package cmd provides the CLI commands for Recall.
//
// Copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/recall/internal/config"
	"github.com/manav03panchal/recall/internal/errors"
	"github.com/manav03panchal/recall/internal/logging"
	"github.com/manav03panchal/recall/internal/model"
	"github.com/manav03panchal/recall/internal/notes"
	"github.com/manav03panchal/recall/internal/output"
	"github.com/manav03panchal/recall/internal/parser"
	"github.com/manav03panchal/recall/internal/runtime"
	"github.com/manav03panchal/recall/internal/storage"
	"github.com/manav03panchal/recall/internal/validate"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
	flagConfig string
)

// Root command flags.
var (
	flagLink    string
	flagPath    string
	flagText    string
	flagEdit    bool
	flagArchive bool
	flagAll     bool
	flagSince   string
	flagNoOpen  bool
)

var (
	// ctx is the shared runtime context.
	ctx   *runtime.Context
	// cfg is the effective configuration.
	cfg   *config.Config
	// clock stamps new notes and anchors --since.
	clock notes.Clock = time.Now
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "recall [TEXT | INDEX]",
	Short: "Remember things from the command line",
	Long: `Recall keeps a list of short notes. A note can carry a link, a path
on disk or a longer text. Notes are listed with an index; use the index
to open a note or archive it.

Examples:
  recall "Take the dog for a walk"
  recall "Cool thing on stack overflow" --link https://stackoverflow.com/q/1
  recall "Tax documents" --path ~/Documents/taxes
  recall "Meeting notes" --edit
  recall
  recall 1
  recall --archive 0
  recall --all --since "last week"`,
	Args:              cobra.ArbitraryArgs,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runRoot,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	cmd, err := rootCmd.ExecuteC()
	if closeErr := closeContext(); err == nil {
		err = closeErr
	}
	if err == nil {
		return errors.ExitOK
	}
	printError(cmd, err)
	return errors.ExitCode(err)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "",
		"Output format: cli, json, plain (default from config, else cli)")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "",
		"Color output: auto, always, never (default from config, else auto)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Read settings from FILE instead of the global and project config files")

	rootCmd.Flags().StringVarP(&flagLink, "link", "l", "", "Attach a URL to the note")
	rootCmd.Flags().StringVarP(&flagPath, "path", "p", "", "Attach a file or directory to the note")
	rootCmd.Flags().StringVarP(&flagText, "text", "t", "", "Attach a longer text to the note")
	rootCmd.Flags().BoolVarP(&flagEdit, "edit", "e", false, "Write the note text in your editor")
	rootCmd.Flags().BoolVarP(&flagArchive, "archive", "a", false, "Archive the note at INDEX")
	rootCmd.Flags().BoolVar(&flagAll, "all", false, "List archived notes too")
	rootCmd.Flags().StringVar(&flagSince, "since", "", "List notes created since a time, e.g. 'yesterday'")
	rootCmd.Flags().BoolVar(&flagNoOpen, "no-open", false, "Print a link or path note without opening it")

	rootCmd.SetFlagErrorFunc(usageOnError)

	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and, for commands that touch notes, opens the store.
func setup(cmd *cobra.Command, args []string) error {
	// Skip initialization for completion, help and version
	switch cmd.Name() {
	case "completion", "help", "version", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return nil
	}

	if flagDebug {
		logCfg := logging.DebugConfig()
		logCfg.Output = cmd.ErrOrStderr()
		logging.Init(logCfg)
	}

	var err error
	cfg, err = config.Load(config.Options{File: flagConfig})
	if err != nil {
		return err
	}
	logging.DebugLog("config loaded", "source", cfg.Source())

	// config only reports settings.
	if cmd.Name() == "config" {
		return nil
	}

	format, colorMode, err := outputModes(cfg)
	if err != nil {
		return err
	}

	ctx, err = runtime.New(runtime.Options{
		Config:    cfg,
		Format:    format,
		ColorMode: colorMode,
		Debug:     flagDebug,
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
		Clock:     clock,
	})
	if err != nil {
		return err
	}
	ctx.Debugf("backend %s at %s, %d notes", ctx.Store.Backend(), ctx.Store.Path(), ctx.Store.Len())
	return nil
}

// outputModes combines the flags with the configured defaults.
func outputModes(c *config.Config) (output.Format, output.ColorMode, error) {
	format := c.Format
	if flagFormat != "" {
		format = flagFormat
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return "", "", err
	}

	color := c.Color
	if flagColor != "" {
		color = flagColor
	}
	m, err := output.ParseColorMode(color)
	if err != nil {
		return "", "", err
	}
	return f, m, nil
}

func closeContext() error {
	if ctx == nil {
		return nil
	}
	err := ctx.Close()
	ctx = nil
	return err
}

// printError reports err on stderr, or as a JSON object on stdout in JSON mode.
func printError(cmd *cobra.Command, err error) {
	if flagFormat == string(output.FormatJSON) || (flagFormat == "" && cfg != nil && cfg.Format == string(output.FormatJSON)) {
		f := output.NewFormatter()
		f.Writer = cmd.OutOrStdout()
		f.Format = output.FormatJSON
		_ = output.NewJSONFormatter(f).PrintError(errors.Classify(err).String(), err.Error(), errors.GetSuggestion(err))
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Error: "+errors.FormatError(err))
}

// runRoot dispatches on the arguments: nothing lists, a lone number opens
// that note, anything else is the text of a new note.
func runRoot(cmd *cobra.Command, args []string) error {
	kindFlags := kindFlagCount(cmd)

	switch {
	case flagArchive:
		if len(args) != 1 || kindFlags > 0 {
			return errors.NewUsageError(errors.ErrInvalidIndex,
				"--archive takes exactly one note index", "Example: recall --archive 0")
		}
		if err := listOnly(cmd); err != nil {
			return err
		}
		return runArchive(args[0])
	case len(args) == 0 && kindFlags == 0:
		return runList()
	case len(args) == 1 && parser.IsIndex(args[0]) && kindFlags == 0:
		if err := listOnly(cmd); err != nil {
			return err
		}
		return runShow(args[0])
	default:
		if err := listOnly(cmd); err != nil {
			return err
		}
		return runCreate(cmd, strings.Join(args, " "))
	}
}

// kindFlagCount counts the flags that choose a note kind.
func kindFlagCount(cmd *cobra.Command) int {
	n := 0
	for _, name := range []string{"link", "path", "text", "edit"} {
		if cmd.Flags().Changed(name) {
			n++
		}
	}
	return n
}

// listOnly rejects listing flags outside of a listing.
func listOnly(cmd *cobra.Command) error {
	if cmd.Flags().Changed("all") || cmd.Flags().Changed("since") {
		return errors.NewUsageError(errors.ErrConflictingFlags,
			"--all and --since only apply when listing notes", "Run 'recall --all' or 'recall --since yesterday' on their own.")
	}
	return nil
}

func runList() error {
	records := ctx.Store.ListActive()
	if flagAll {
		records = ctx.Store.List()
	}
	total := len(records)
	entries := output.IndexRecords(records)

	if flagSince != "" {
		since, err := parser.ParseSince(flagSince, clock())
		if err != nil {
			var pe *parser.TimeParseError
			if errors.As(err, &pe) {
				return pe.ToUserError()
			}
			return err
		}
		ctx.Debugf("since %s", since.Format(time.RFC3339))
		entries = entriesSince(entries, since)
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintEntries(entries, total)
	}
	ctx.CLIFormatter().PrintEntries(entries, flagAll)
	return nil
}

func entriesSince(entries []output.Entry, since time.Time) []output.Entry {
	var kept []output.Entry
	for _, e := range entries {
		if !e.Record.CreatedAt.Before(since) {
			kept = append(kept, e)
		}
	}
	return kept
}

func runShow(arg string) error {
	index, err := parser.ParseIndex(arg)
	if err != nil {
		return err
	}
	r, err := ctx.Store.Resolve(index)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		if err := ctx.JSONFormatter().PrintRecord("ok", index, r); err != nil {
			return err
		}
	} else {
		ctx.CLIFormatter().PrintRecord(r)
	}

	if flagNoOpen {
		return nil
	}
	opened, err := ctx.Opener.OpenRecord(r)
	if err != nil {
		return err
	}
	if opened {
		ctx.Debugf("opened %s", r.Body)
	}
	return nil
}

func runArchive(arg string) error {
	index, err := parser.ParseIndex(arg)
	if err != nil {
		return err
	}
	r, err := ctx.Store.Resolve(index)
	if err != nil {
		return err
	}
	r, err = ctx.Store.Archive(r.ID)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintRecord("archived", -1, r)
	}
	ctx.CLIFormatter().PrintArchived(r)
	return nil
}

func runCreate(cmd *cobra.Command, text string) error {
	if kindFlagCount(cmd) > 1 {
		return errors.NewUsageError(errors.ErrConflictingFlags,
			"Only one of --link, --path, --text or --edit can be used", errors.Suggestions[errors.ErrConflictingFlags])
	}

	text = validate.SanitizeNote(text)
	var (
		kind  model.Kind
		title string
		body  string
	)
	switch {
	case cmd.Flags().Changed("link"):
		if err := validate.Title(text); err != nil {
			return err
		}
		link := strings.TrimSpace(flagLink)
		if err := validate.Link(link); err != nil {
			return err
		}
		kind, title, body = model.KindLink, validate.SingleLine(text), link
	case cmd.Flags().Changed("path"):
		if err := validate.Title(text); err != nil {
			return err
		}
		path, err := validate.ExpandPath(flagPath)
		if err != nil {
			return err
		}
		kind, title, body = model.KindPath, validate.SingleLine(text), path
	case cmd.Flags().Changed("text"), flagEdit:
		content := flagText
		if flagEdit {
			edited, err := ctx.Editor.Edit("")
			if err != nil {
				return err
			}
			content = edited
		}
		content = validate.SanitizeNote(content)
		if err := validate.Text(content); err != nil {
			return err
		}
		title = validate.SingleLine(text)
		if title == "" {
			if !flagEdit {
				return validate.Title(text)
			}
			first, _, _ := strings.Cut(content, "\n")
			title = output.Truncate(validate.SingleLine(first), 60)
		}
		kind, body = model.KindText, content
	default:
		if err := validate.Title(text); err != nil {
			return err
		}
		kind, body = model.KindNone, text
	}

	r, err := ctx.Store.Create(title, kind, body)
	if err != nil {
		return err
	}
	index := notes.IndexOf(ctx.Store.ListActive(), r.ID)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintRecord("created", index, r)
	}
	cli := ctx.CLIFormatter()
	cli.PrintCreated(index, r)
	if warning := storage.CheckDiskSpaceWarning(ctx.Store.Path()); warning != "" {
		cli.Warning(warning)
	}
	return nil
}

// exactArgs is cobra.ExactArgs reported as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageOnError(cmd, cobra.ExactArgs(n)(cmd, args))
	}
}

// usageOnError turns a cobra argument error into a usage error.
func usageOnError(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	return errors.NewUsageError(err, err.Error(), "Run '"+cmd.CommandPath()+" --help' for usage.")
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  exactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("recall %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
		cmd.Println("")
		cmd.Println("Licensed under SEGV License v1.0")
	},
}
