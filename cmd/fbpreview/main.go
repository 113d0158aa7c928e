// fbpreview runs the framebuffer console on a simulated firmware display and
// exports the result.
//
// Usage:
//
//	fbpreview render [--text file|-] [--panic msg] [--out frame.png] [--terminal]
//	fbpreview modes
//
// Global flags:
//
//	--config <path> - Simulated firmware description (default: ./fbpreview.yaml or built-in)
//	--verbose       - Log the mode selection trace
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fbpreview",
	Short: "Preview the framebuffer console on a simulated display",
	Long: `fbpreview boots the framebuffer console against an in-memory display
built from a list of simulated firmware modes and renders the result as a PNG
image or directly in the terminal.

Examples:
  fbpreview modes
  fbpreview render --out frame.png
  echo "hello" | fbpreview render --text - --terminal
  fbpreview render --panic "out of memory" --out panic.png`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to the simulated firmware description")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(modesCmd)
}

// newLogger returns the logger shared by all subcommands.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "fbpreview",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	return logger
}
