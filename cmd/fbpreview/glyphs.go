package main

import (
	"fmt"

	gg "github.com/fogleman/gg"
	"github.com/spf13/cobra"

	"fbcon/device/video/console/font"
)

// Glyph sheet layout shared with tools/makefont.
const (
	sheetCols = 16
	sheetRows = 6
)

var flagSheetOut string

var glyphsCmd = &cobra.Command{
	Use:   "glyphs",
	Short: "Export the console font as a glyph sheet",
	Long: `Draws every printable ASCII glyph, 16 per row in code order, as white on
black. The sheet can be edited and converted back with makefont.`,
	Args: cobra.NoArgs,
	RunE: runGlyphs,
}

func init() {
	glyphsCmd.Flags().StringVarP(&flagSheetOut, "out", "o", "glyphs.png", "Write the sheet to this PNG file")
	rootCmd.AddCommand(glyphsCmd)
}

// drawGlyphSheet renders the font table into a new drawing context.
func drawGlyphSheet() *gg.Context {
	dc := gg.NewContext(sheetCols*font.GlyphWidth, sheetRows*font.GlyphHeight)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	dc.SetRGB(1, 1, 1)
	for i := 0; ; i++ {
		c, ok := font.ToPrintable(byte(' ' + i))
		if !ok {
			break
		}

		g := font.Lookup(c)
		originX, originY := (i%sheetCols)*font.GlyphWidth, (i/sheetCols)*font.GlyphHeight
		for y := 0; y < font.GlyphHeight; y++ {
			for x := 0; x < font.GlyphWidth; x++ {
				if g.Bit(uint32(x), uint32(y)) == font.Foreground {
					dc.SetPixel(originX+x, originY+y)
				}
			}
		}
	}

	return dc
}

func runGlyphs(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), flagVerbose)

	if err := drawGlyphSheet().SavePNG(flagSheetOut); err != nil {
		return fmt.Errorf("failed to write %s: %w", flagSheetOut, err)
	}

	logger.Info("wrote glyph sheet", "path", flagSheetOut)
	return nil
}
