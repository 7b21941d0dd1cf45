// Package cli provides the command-line interface for Piccolor.
package cli

import (
	"fmt"
	"os"

	"github.com/jmylchreest/piccolor/internal/version"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "piccolor",
	Short: "A deterministic image palette analyzer",
	Long: `Piccolor extracts dominant colour palettes from images and lays them
out as proportional canvas mosaics.

Analysis is fully deterministic: the same image and options always
produce bit-identical palettes, so results are safe to cache, diff,
and commit.`,
	Version:      version.Short(),
	SilenceUsage: true,
}

// NewRootCmd returns the fully wired root command. Tests use it to run
// the CLI in-process.
func NewRootCmd() *cobra.Command {
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
