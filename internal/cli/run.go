package cli

import (
	"github.com/spf13/cobra"

	"cornerpeek/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the corner overlay (default)",
	RunE:  runApp,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runApp(cmd *cobra.Command, args []string) error {
	return app.Run(app.Options{
		ConfigPath:  globalOpts.configPath,
		JournalPath: globalOpts.journalPath,
		NoJournal:   globalOpts.noJournal,
		Logger:      logger,
	})
}
