package main

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"image"
	"os"

	_ "image/gif"
	_ "image/png"

	"github.com/spf13/cobra"

	"fbcon/device/video/console/font"
)

// Glyph sheet layout: the printable ASCII range in code order, sheetCols
// glyphs per row. The cell after 0x7E is ignored.
const (
	sheetCols     = 16
	sheetRows     = 6
	firstGlyph    = 0x20
	lastGlyph     = 0x7e
	glyphsInSheet = lastGlyph - firstGlyph + 1
)

var (
	flagVarName   string
	flagOutput    string
	flagThreshold uint8
)

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[makefont] error: %s\n", err.Error())
	os.Exit(1)
}

// glyphName returns the label written above each glyph entry.
func glyphName(ch byte) string {
	if ch == ' ' {
		return "space"
	}

	return string(rune(ch))
}

// extractGlyphs slices the sheet into cells and thresholds every pixel.
// Pixels whose luminance exceeds threshold are treated as foreground.
func extractGlyphs(img image.Image, threshold uint8) ([]font.Glyph, error) {
	bounds := img.Bounds()
	expW, expH := sheetCols*font.GlyphWidth, sheetRows*font.GlyphHeight
	if bounds.Dx() != expW || bounds.Dy() != expH {
		return nil, fmt.Errorf("glyph sheet should be %dx%d pixels; got %dx%d", expW, expH, bounds.Dx(), bounds.Dy())
	}

	glyphs := make([]font.Glyph, glyphsInSheet)
	for i := range glyphs {
		originX := bounds.Min.X + (i%sheetCols)*font.GlyphWidth
		originY := bounds.Min.Y + (i/sheetCols)*font.GlyphHeight

		for y := 0; y < font.GlyphHeight; y++ {
			for x := 0; x < font.GlyphWidth; x++ {
				r, g, b, _ := img.At(originX+x, originY+y).RGBA()
				// ITU-R BT.601 luma on 16-bit channels
				luma := (299*r + 587*g + 114*b) / 1000
				if uint8(luma>>8) > threshold {
					glyphs[i][y] |= 1 << (font.GlyphWidth - 1 - x)
				}
			}
		}
	}

	return glyphs, nil
}

func genFontFile(glyphs []font.Glyph, varName string) ([]byte, error) {
	var buf bytes.Buffer

	// Output header
	fmt.Fprintf(&buf, `package font

// %s holds the glyphs for the printable ASCII range (0x20 to 0x7E). Each
// glyph is GlyphHeight bytes, one per row, with the most significant bit
// mapping to the leftmost pixel.
var %s = [glyphCount]Glyph{
`, varName, varName)

	for i, g := range glyphs {
		fmt.Fprintf(&buf, "// %s\n{", glyphName(byte(firstGlyph+i)))
		for row, bits := range g {
			if row == font.GlyphHeight/2 {
				buf.WriteByte('\n')
			}
			fmt.Fprintf(&buf, "0x%02x, ", bits)
		}
		fmt.Fprint(&buf, "},\n")
	}

	// Footer
	fmt.Fprint(&buf, "}\n")

	return format.Source(buf.Bytes())
}

func runTool(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	glyphs, err := extractGlyphs(img, flagThreshold)
	if err != nil {
		return err
	}

	src, err := genFontFile(glyphs, flagVarName)
	if err != nil {
		return err
	}

	switch flagOutput {
	case "-":
		_, err = cmd.OutOrStdout().Write(src)
		return err
	default:
		return os.WriteFile(flagOutput, src, 0o644)
	}
}

var rootCmd = &cobra.Command{
	Use:   "makefont [options] sheet",
	Short: "makefont: convert a png or gif glyph sheet to a console font table",
	Long: fmt.Sprintf(`makefont reads a %dx%d glyph sheet with %d glyphs of %dx%d pixels per row,
covering the printable ASCII range in code order, and generates the Go table
used by the console font package.`,
		sheetCols*font.GlyphWidth, sheetRows*font.GlyphHeight, sheetCols, font.GlyphWidth, font.GlyphHeight),
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("missing glyph sheet argument")
		}
		return nil
	},
	RunE:          runTool,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagVarName, "var-name", "vga8x16", "the name of the variable containing the glyph table")
	rootCmd.Flags().StringVar(&flagOutput, "out", "-", "a file to write the generated table or - to output to STDOUT")
	rootCmd.Flags().Uint8Var(&flagThreshold, "threshold", 0x7f, "luminance above which a pixel is treated as foreground")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		exit(err)
	}
}
