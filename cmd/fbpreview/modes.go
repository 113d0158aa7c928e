package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"fbcon/kernel/hal"
	"fbcon/kernel/hal/gop"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	usableStyle   = lipgloss.NewStyle()
	rejectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the simulated firmware modes",
	Long:  `Shows every configured display mode and marks the one the kernel selects.`,
	Args:  cobra.NoArgs,
	RunE:  runModes,
}

// modeRow is one line of the modes table.
type modeRow struct {
	mode     gop.ModeInfo
	status   string
	selected bool
	usable   bool
}

// describeModes evaluates every mode the way hal does. Modes are treated as
// if the firmware had reported a framebuffer address for every direct-color
// format.
func describeModes(modes []gop.ModeInfo) []modeRow {
	rows := make([]modeRow, len(modes))
	for i, m := range modes {
		if m.DirectColor() {
			m.Base = placeholderBase
		}

		rows[i] = modeRow{mode: m, status: "usable", usable: true}
		if reason := hal.RejectReason(m); reason != "" {
			rows[i] = modeRow{mode: m, status: reason}
		}
	}

	// first widest usable mode, matching hal.SelectMode
	best := -1
	for i, row := range rows {
		if row.usable && (best < 0 || row.mode.Width > rows[best].mode.Width) {
			best = i
		}
	}
	if best >= 0 {
		rows[best].selected = true
		rows[best].status = "selected"
	}

	return rows
}

func runModes(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(flagConfig)
	if err != nil {
		return err
	}

	modes, err := cfg.FirmwareModes()
	if err != nil {
		return err
	}

	rows := describeModes(modes)
	fmt.Fprintln(cmd.OutOrStdout(), formatModes(rows))

	for _, row := range rows {
		if row.selected {
			return nil
		}
	}

	return fmt.Errorf("no supported display mode")
}

func formatModes(rows []modeRow) string {
	var sb strings.Builder

	header := fmt.Sprintf("  %-3s  %-11s  %-6s  %-8s  %s", "#", "Resolution", "Stride", "Format", "Status")
	sb.WriteString(headerStyle.Render(header))
	sb.WriteByte('\n')

	for _, row := range rows {
		line := fmt.Sprintf("  %-3d  %-11s  %-6d  %-8s  %s",
			row.mode.Number,
			fmt.Sprintf("%dx%d", row.mode.Width, row.mode.Height),
			row.mode.Stride,
			row.mode.Format.String(),
			row.status,
		)

		style := rejectedStyle
		switch {
		case row.selected:
			style = selectedStyle
		case row.usable:
			style = usableStyle
		}
		sb.WriteString(style.Render(line))
		sb.WriteByte('\n')
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
