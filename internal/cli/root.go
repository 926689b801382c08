// Package cli provides the cornerpeek command line.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cornerpeek/internal/config"
	"cornerpeek/internal/logging"
)

// Build-time variables (set via ldflags)
var (
	version = "dev"
	commit  = "unknown"
)

// Global flags and state
var (
	globalOpts struct {
		verbose     bool
		configPath  string
		journalPath string
		noJournal   bool
	}
	logger zerolog.Logger
)

// rootCmd runs the overlay when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "cornerpeek",
	Short: "Corner widget that peeks out while Alt is held",
	Long: `cornerpeek keeps a small widget tucked into the bottom-right corner
of the primary display. Hold Alt and move the cursor into the corner to
peek it out; lock it open from the tray, by clicking it or with Ctrl+Alt+L.

Running cornerpeek without a subcommand starts the overlay.`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	RunE: runApp,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := executeRoot(); err != nil {
		os.Exit(1)
	}
}

// executeRoot runs the root command and reports any error on stderr.
// Flag and unknown-command errors happen before the logger is set up,
// so the message is written directly.
func executeRoot() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		logger.Debug().Err(err).Msg("cornerpeek failed")
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.journalPath, "journal", "",
		"Path to the transition journal database")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.noJournal, "no-journal", false,
		"Do not record state transitions")
}

// setupLogger installs the process logger; --verbose forces debug
func setupLogger() {
	cfg := logging.ConfigFromEnv()
	if globalOpts.verbose {
		cfg.Level = zerolog.DebugLevel
	}
	logger = logging.Setup(cfg)
}

// journalPath resolves the journal location from flags or the data dir
func journalPath() (string, error) {
	if globalOpts.journalPath != "" {
		return globalOpts.journalPath, nil
	}
	return config.DataPath("journal.db")
}
