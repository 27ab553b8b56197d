// Package cli implements the bartr command-line client.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AkhandAgrawal/Bartr/internal/config"
	"github.com/AkhandAgrawal/Bartr/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	// loaded at init time
	paths config.Paths
	cfg   config.Config
	log   *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bartr",
		Short: "Bartr — swipe to match, then chat",
		Long:  "Bartr is a terminal client for the Bartr skill-exchange platform: swipe on candidates, manage matches, and chat in real time.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			paths, err = config.ResolvePaths()
			if err != nil {
				return err
			}
			if cfgFile != "" {
				paths.Config = cfgFile
			}
			cfg, err = config.Load(paths.Config)
			if err != nil {
				return err
			}
			level := logLevel
			if level == "" {
				level = cfg.Logging.Level
			}
			var out io.Writer
			if cfg.Logging.File != "" {
				if f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
					out = f
				}
			}
			log = logging.New(out, level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.bartr/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newSignupCmd())
	cmd.AddCommand(newProfileCmd())
	cmd.AddCommand(newMatchesCmd())
	cmd.AddCommand(newChatCmd())
	cmd.AddCommand(newNotificationsCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
