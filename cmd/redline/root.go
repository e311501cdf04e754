package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tsawler/redline/internal/logging"
)

var (
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "redline",
	Short: "Render editorial corrections as highlighted DOCX documents",
	Long: `Redline compares an original text with its corrected version and renders
two Word documents: a clean copy of the correction and a diff where
insertions, deletions and registered fact corrections are highlighted.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if verbose {
			level = logging.LevelDebug
		}
		slog.SetDefault(logging.New(os.Stderr, level, logging.FormatText))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
