package cmd

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gopak/ytmsearch/internal/assets"
	"github.com/gopak/ytmsearch/internal/config"
	"github.com/gopak/ytmsearch/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgFile string
var verbose bool
var version = "dev"

func newRootCmd() *cobra.Command {
	cfgFile, verbose = "", false
	root := &cobra.Command{
		Use:           "ytmsearch",
		Short:         "Search YouTube Music from the command line",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetVerbose(verbose)
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to any YAML file inside the config directory (default dir: ~/.config/ytmsearch); all *.yaml in that directory are merged")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show request details on stderr")
	root.AddCommand(newSearchCmd(), newResolveCmd(), newValidateCmd(), newConfigCmd())
	return root
}

// Execute runs the CLI with args taken from os.Args.
func Execute(ctx context.Context) error { return newRootCmd().ExecuteContext(ctx) }

func configDir() string {
	if cfgFile != "" {
		return filepath.Dir(cfgFile)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "ytmsearch")
}

// initLogging opens the log file. The empty-query path must not reach it.
func initLogging() {
	if err := logging.Init(configDir()); err != nil {
		logging.Debug("log file disabled: " + err.Error())
	}
}

// loadConfig merges the embedded defaults, every YAML file in the config
// directory and YTMSEARCH_* variables (a local .env is read first), then
// validates the result against the schema.
func loadConfig() (config.Config, error) {
	initLogging()
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, err
	}
	dir := configDir()
	files, err := config.FindFiles(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, err
	}
	logging.Debug("config files: " + joinOrNone(files))
	cfg, err := config.LoadDefaultsAndFiles(assets.DefaultConfig(), files)
	if err != nil {
		return config.Config{}, errors.New("config error: " + err.Error())
	}
	if cfg, err = config.ApplyEnv(cfg); err != nil {
		return config.Config{}, errors.New("config error: " + err.Error())
	}
	if err := config.ValidateAgainstSchema(cfg); err != nil {
		return config.Config{}, errors.New("schema error: " + err.Error())
	}
	return cfg, nil
}

func joinOrNone(files []string) string {
	if len(files) == 0 {
		return "(none)"
	}
	out := files[0]
	for _, f := range files[1:] {
		out += ", " + f
	}
	return out
}
