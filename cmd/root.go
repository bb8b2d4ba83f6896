package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/bookcat/internal/config"
	"github.com/ziadkadry99/bookcat/internal/logging"
	"github.com/ziadkadry99/bookcat/internal/page"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "bookcat",
	Short: "Terminal client for the library catalog",
	Long: `bookcat talks to the library catalog backend from the terminal.
It signs you in, lists and edits books, and keeps the session cookie
between runs so you only log in once.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsConfig(cmd) {
			return nil
		}
		c, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := logging.New(c.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		cfg, logger = c, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".bookcat.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// skipConfig marks commands that run without a loaded configuration.
const skipConfig = "bookcat/skip-config"

// needsConfig reports whether cmd needs .bookcat.yml loaded first. Help and
// shell completion never do, nor does anything under them.
func needsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[skipConfig]; ok {
			return false
		}
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// ErrReported marks a failure the page has already shown to the user.
var ErrReported = errors.New("failure already reported")

// outcomeErr turns a handler outcome into a command result.
func outcomeErr(o page.Outcome) error {
	if o == page.Failed {
		return ErrReported
	}
	return nil
}
