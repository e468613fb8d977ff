// Package cmd provides the command-line interface for vmpagesim.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/vmpagesim/config"
)

// defaults holds the .env/environment-resolved fallback flag values,
// loaded once before any subcommand's flags are registered.
var defaults = config.Load()

var rootCmd = &cobra.Command{
	Use:   "vmpagesim",
	Short: "vmpagesim compares page-replacement policies against OPT.",
	Long: `vmpagesim generates or replays a synthetic new/use/delete/kill ` +
		`instruction stream and runs it through a chosen replacement policy ` +
		`and the optimal policy in lock-step, so the two can be compared on ` +
		`identical input.`,
}

// Execute runs the root command and exits through atexit, so registered
// exit handlers (such as a trace recorder's final flush) run.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
