package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fbcon/device/video/console"
	"fbcon/device/video/fb"
)

// unknownCell is shown for cells that do not contain a glyph in any palette.
const unknownCell = '?'

var (
	palettes = []console.CharColors{console.DefaultColors, console.PanicColors}

	previewBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))

	unknownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// cell is a character read back from the framebuffer along with the palette
// it was drawn with. palette is -1 for unknown cells.
type cell struct {
	ch      byte
	palette int
}

// readGrid reads back every cell of the console.
func readGrid(m *machine) [][]cell {
	buf := m.cons.CharBuffer()
	cols, rows := buf.Dimensions()

	grid := make([][]cell, rows)
	for row := uint32(0); row < rows; row++ {
		grid[row] = make([]cell, cols)
		for col := uint32(0); col < cols; col++ {
			grid[row][col] = cell{ch: unknownCell, palette: -1}
			for i, colors := range palettes {
				if c, ok := buf.ReadCell(row, col, colors); ok {
					grid[row][col] = cell{ch: byte(c), palette: i}
					break
				}
			}
		}
	}

	return grid
}

// gridText returns the plain text content of every row.
func gridText(grid [][]cell) []string {
	lines := make([]string, len(grid))
	for i, row := range grid {
		var sb strings.Builder
		for _, c := range row {
			sb.WriteByte(c.ch)
		}
		lines[i] = sb.String()
	}

	return lines
}

func hexColor(p fb.Pixel) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", p.R, p.G, p.B))
}

func paletteStyle(colors console.CharColors) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(hexColor(colors.Foreground)).
		Background(hexColor(colors.Background))
}

// renderTerminal draws the console contents using the palette of each cell.
func renderTerminal(m *machine) string {
	styles := make([]lipgloss.Style, len(palettes))
	for i, colors := range palettes {
		styles[i] = paletteStyle(colors)
	}

	grid := readGrid(m)
	lines := make([]string, len(grid))
	for i, row := range grid {
		var sb strings.Builder

		// cells drawn with the same palette are styled as one run
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && row[end].palette == row[start].palette {
				end++
			}

			var run strings.Builder
			for _, c := range row[start:end] {
				run.WriteByte(c.ch)
			}

			if p := row[start].palette; p >= 0 {
				sb.WriteString(styles[p].Render(run.String()))
			} else {
				sb.WriteString(unknownStyle.Render(run.String()))
			}
			start = end
		}
		lines[i] = sb.String()
	}

	return previewBorder.Render(strings.Join(lines, "\n"))
}
