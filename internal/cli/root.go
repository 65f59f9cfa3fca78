// Package cli implements the framevis command line interface.
package cli

import "github.com/spf13/cobra"

var (
	// Global flags
	jsonOutput bool
)

// rootCmd is the root command for framevis.
var rootCmd = &cobra.Command{
	Use:     "framevis",
	Version: "dev",
	Short:   "Frame-visibility scene inspector",
	Long: `framevis inspects annotation scenes: per-record frame associations,
the frames each primitive resolves as visible in, and fixed-rate playback
of the resolved timeline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(playCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
