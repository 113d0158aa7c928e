package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fbcon/kernel"
	"fbcon/kernel/kmain"
	"fbcon/kernel/kfmt"
)

var (
	flagText        string
	flagPanic       string
	flagOut         string
	flagTerminal    bool
	flagScale       int
	flagShowPadding bool
	flagGrid        bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render text on the simulated display",
	Long: `Boots the console on the mode that the kernel would select, prints the
text and exports the framebuffer. Without --text the kernel welcome banner is
printed.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&flagText, "text", "", "File with the text to print or - to read from STDIN")
	renderCmd.Flags().StringVar(&flagPanic, "panic", "", "Render a fault report with this message after the text")
	renderCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Write the framebuffer to this PNG file")
	renderCmd.Flags().BoolVar(&flagTerminal, "terminal", false, "Print the console contents to STDOUT")
	renderCmd.Flags().IntVar(&flagScale, "scale", 1, "Pixel scale factor for the PNG export")
	renderCmd.Flags().BoolVar(&flagShowPadding, "show-padding", false, "Include scanline padding in the PNG export")
	renderCmd.Flags().BoolVar(&flagGrid, "grid", false, "Overlay the text cell grid on the PNG export")
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), flagVerbose)

	cfg, err := LoadConfig(flagConfig)
	if err != nil {
		return err
	}

	modes, err := cfg.FirmwareModes()
	if err != nil {
		return err
	}

	m, err := bootMachine(modes, logger)
	if err != nil {
		return err
	}

	if flagText == "" {
		kmain.PrintBanner(m.cons)
	} else {
		text, err := readText(flagText, cmd.InOrStdin())
		if err != nil {
			return err
		}
		m.cons.Write(text)
		logger.Debug("printed text", "bytes", len(text))
	}

	if flagPanic != "" {
		kfmt.Report(m.cons, &kernel.Error{Module: "preview", Message: flagPanic})
	}

	opts := exportOptions{
		Scale:       cfg.Output.Scale,
		ShowPadding: cfg.Output.ShowPadding,
		Grid:        cfg.Output.Grid,
	}
	if cmd.Flags().Changed("scale") {
		opts.Scale = flagScale
	}
	if cmd.Flags().Changed("show-padding") {
		opts.ShowPadding = flagShowPadding
	}
	if cmd.Flags().Changed("grid") {
		opts.Grid = flagGrid
	}

	if flagTerminal {
		fmt.Fprintln(cmd.OutOrStdout(), renderTerminal(m))
	}

	if flagOut != "" {
		if err := savePNG(m, flagOut, opts); err != nil {
			return fmt.Errorf("failed to write %s: %w", flagOut, err)
		}
		logger.Info("wrote image", "path", flagOut, "scale", opts.Scale, "padding", opts.ShowPadding)
	}

	if !flagTerminal && flagOut == "" {
		logger.Warn("nothing to export; use --out or --terminal")
	}

	return nil
}

// readText returns the contents of path or of stdin when path is "-".
func readText(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read text from stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text %s: %w", path, err)
	}

	return data, nil
}
