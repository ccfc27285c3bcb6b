// Package config loads recall's settings from config files and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/manav03panchal/recall/internal/errors"
)

const (
	// FileName is the per-project config file, searched for upward from the working directory.
	FileName = ".recall.toml"
	// EnvPrefix prefixes every environment override, e.g. RECALL_DB_PATH.
	EnvPrefix = "RECALL"
	// EnvFile is the optional dotenv file read before the environment.
	EnvFile = ".env"
)

// Keys understood in config files and as RECALL_<KEY> variables.
const (
	KeyBackend       = "backend"
	KeyDBPath        = "db_path"
	KeyEditorCommand = "editor_command"
	KeyOpenCommand   = "open_command"
	KeyFormat        = "format"
	KeyColor         = "color"
)

// Config holds the effective settings.
type Config struct {
	Backend       string
	DBPath        string
	EditorCommand []string
	OpenCommand   []string
	Format        string
	Color         string

	// Files lists the config files that were read, lowest precedence first.
	Files []string
	// EnvFile is the dotenv file that was loaded, if any.
	EnvFile string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Backend: "badger",
		Format:  "cli",
		Color:   "auto",
	}
}

// Options controls where Load looks.
type Options struct {
	// WorkDir is where the project file search starts. Empty uses the current directory.
	WorkDir string
	// File replaces the global and project files when set.
	File string
	// GlobalFile overrides GlobalPath, mostly for tests.
	GlobalFile string
}

// GlobalPath returns the user-wide config file location.
func GlobalPath() string {
	return filepath.Join(xdg.ConfigHome, "recall", "config.toml")
}

// FindProjectFile walks up from dir looking for FileName.
func FindProjectFile(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load merges defaults, config files and environment variables.
func Load(opts Options) (*Config, error) {
	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get working directory")
		}
		workDir = wd
	}

	v := viper.New()
	def := Default()
	v.SetDefault(KeyBackend, def.Backend)
	v.SetDefault(KeyDBPath, "")
	v.SetDefault(KeyEditorCommand, []string{})
	v.SetDefault(KeyOpenCommand, []string{})
	v.SetDefault(KeyFormat, def.Format)
	v.SetDefault(KeyColor, def.Color)

	var files []string
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return nil, errors.NewUserErrorWithField("config", opts.File,
				"Config file not found", "Check the path passed to --config")
		}
		files = append(files, opts.File)
	} else {
		global := opts.GlobalFile
		if global == "" {
			global = GlobalPath()
		}
		if _, err := os.Stat(global); err == nil {
			files = append(files, global)
		}
		if project, ok := FindProjectFile(workDir); ok && project != global {
			files = append(files, project)
		}
	}

	for _, f := range files {
		v.SetConfigFile(f)
		v.SetConfigType("toml")
		if err := v.MergeInConfig(); err != nil {
			return nil, errors.NewUserErrorWithField("config", f,
				fmt.Sprintf("Could not read config file: %v", err), "Fix the TOML syntax in the file")
		}
	}

	envFile := findEnvFile(workDir, files)
	if envFile != "" {
		// Variables that are already set keep their value.
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.NewUserErrorWithField("env", envFile,
				fmt.Sprintf("Could not read %s: %v", EnvFile, err), "")
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Backend:       strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))),
		DBPath:        v.GetString(KeyDBPath),
		EditorCommand: v.GetStringSlice(KeyEditorCommand),
		OpenCommand:   v.GetStringSlice(KeyOpenCommand),
		Format:        strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat))),
		Color:         strings.ToLower(strings.TrimSpace(v.GetString(KeyColor))),
		Files:         files,
		EnvFile:       envFile,
	}

	if cfg.DBPath != "" {
		path, err := ExpandHome(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findEnvFile returns the dotenv file in workDir, else the one beside the
// last config file.
func findEnvFile(workDir string, files []string) string {
	dirs := []string{workDir}
	if len(files) > 0 {
		dirs = append(dirs, filepath.Dir(files[len(files)-1]))
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, EnvFile)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.Format {
	case "cli", "json", "plain":
	default:
		return errors.NewUserErrorWithField(KeyFormat, c.Format,
			"Unknown output format", "Use one of: cli, json, plain")
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return errors.NewUserErrorWithField(KeyColor, c.Color,
			"Unknown color mode", "Use one of: auto, always, never")
	}
	if len(c.EditorCommand) > 0 && strings.TrimSpace(c.EditorCommand[0]) == "" {
		return errors.NewUserErrorWithField(KeyEditorCommand, "",
			"The first entry in editor_command must be the path to a text editor program", "")
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to find home directory")
	}
	return filepath.Join(home, path[1:]), nil
}

// Source names where the settings came from, for display.
func (c *Config) Source() string {
	if len(c.Files) == 0 {
		return "defaults"
	}
	return strings.Join(c.Files, ", ")
}
