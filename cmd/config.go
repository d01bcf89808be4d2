package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gopak/ytmsearch/internal/assets"
	"github.com/gopak/ytmsearch/internal/config"
	"github.com/gopak/ytmsearch/internal/logging"
	"github.com/gopak/ytmsearch/internal/ui/console"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isInteractive reports whether prompts can be shown.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration directory",
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var yes, force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file, prompting for settings on a terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			initLogging()
			path := cfgFile
			if path == "" {
				path = filepath.Join(configDir(), assets.DefaultConfigName)
			}
			interactive := !yes && isInteractive()

			if _, err := os.Stat(path); err == nil {
				if !force {
					if !interactive {
						return fmt.Errorf("%s already exists; use --force to replace it", path)
					}
					ok, err := console.ConfirmOverwrite(path)
					if err != nil {
						return err
					}
					if !ok {
						return nil
					}
				}
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if !interactive {
				if force {
					if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
						return err
					}
				}
				if err := assets.WriteDefaultConfigIfMissing(path); err != nil {
					return err
				}
				logging.Success("wrote " + path)
				return nil
			}

			base, err := config.LoadDefaultsAndFiles(assets.DefaultConfig(), nil)
			if err != nil {
				return err
			}
			cfg, err := console.PromptConfig(base)
			if err != nil {
				return err
			}
			if err := config.ValidateAgainstSchema(cfg); err != nil {
				return errors.New("schema error: " + err.Error())
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			logging.Success("wrote " + path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "write the default config without prompting")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing config file")
	return cmd
}
