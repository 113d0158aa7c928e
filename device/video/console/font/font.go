// Package font provides the bitmap glyphs used by the framebuffer console.
package font

const (
	// GlyphWidth is the width of every glyph in pixels.
	GlyphWidth = 8

	// GlyphHeight is the height of every glyph in pixels.
	GlyphHeight = 16

	firstPrintable = 0x20
	lastPrintable  = 0x7e
	glyphCount     = lastPrintable - firstPrintable + 1
)

// PrintableChar is an ASCII character in the [0x20, 0x7E] range. Other byte
// values cannot be converted to a PrintableChar.
type PrintableChar uint8

// Space is the blank glyph. It is printable: it paints its cell with the
// background color.
const Space PrintableChar = ' '

// ToPrintable returns the PrintableChar for b. The second return value is
// false if b is a control character or lies outside the ASCII range.
func ToPrintable(b byte) (PrintableChar, bool) {
	if b < firstPrintable || b > lastPrintable {
		return 0, false
	}

	return PrintableChar(b), true
}

// Bit is the value of a single glyph pixel.
type Bit uint8

const (
	// Background marks a pixel that is painted with the background color.
	Background Bit = iota

	// Foreground marks a pixel that is painted with the foreground color.
	Foreground
)

// Glyph is the bitmap of a single character. Each entry describes one row
// with the most significant bit mapping to the leftmost pixel.
type Glyph [GlyphHeight]uint8

// Bit returns the value of the glyph pixel at column x and row y. Both
// coordinates are 0-based.
func (g *Glyph) Bit(x, y uint32) Bit {
	if (g[y]>>(GlyphWidth-1-x))&1 != 0 {
		return Foreground
	}

	return Background
}

// Lookup returns the glyph for c. Values that were not obtained through
// ToPrintable map to the blank glyph.
func Lookup(c PrintableChar) *Glyph {
	if c < firstPrintable || c > lastPrintable {
		c = Space
	}

	return &vga8x16[c-firstPrintable]
}

// Identify returns the character whose bitmap matches g. The second return
// value is false if no glyph in the table matches.
func Identify(g *Glyph) (PrintableChar, bool) {
	for i := range vga8x16 {
		if vga8x16[i] == *g {
			return PrintableChar(firstPrintable + i), true
		}
	}

	return 0, false
}
