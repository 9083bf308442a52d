// Package cmd provides the command-line interface for mdrun.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "mdrun",
	Short: "mdrun assigns masses and thermal velocities to atoms with " +
		"coordinate-addressed random numbers.",
	Long: `mdrun assigns masses and thermal velocities to a set of atoms ` +
		`using counter-based random number generation. The result is ` +
		`bit-identical for any thread count, which makes it a quick check ` +
		`that a machine reproduces a reference run.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Missing .env files are fine, flags and defaults still apply.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It terminates the process through atexit so that
// registered handlers, such as the recorder flush, run on both the
// success and the failure path.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
