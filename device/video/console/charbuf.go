// Package console implements a scrolling text grid on top of a linear
// framebuffer.
package console

import (
	"fbcon/device/video/console/font"
	"fbcon/device/video/fb"
)

// CharColors is the pair of colors used when drawing a glyph.
type CharColors struct {
	Foreground fb.Pixel
	Background fb.Pixel
}

var (
	// DefaultColors is white text on a black background.
	DefaultColors = CharColors{Foreground: fb.White, Background: fb.Black}

	// PanicColors is the alert palette used for fault reports.
	PanicColors = CharColors{Foreground: fb.Red, Background: fb.White}
)

// Apply returns the pixel color for a glyph bit.
func (c CharColors) Apply(bit font.Bit) fb.Pixel {
	if bit == font.Foreground {
		return c.Foreground
	}

	return c.Background
}

// CharBuffer tiles a framebuffer with fixed-size glyph cells and keeps track
// of a text cursor. The cursor is stored in pixel coordinates and is always
// aligned to a cell boundary. When the cursor moves below the last row that
// can hold a full glyph, the contents are scrolled up by one row.
type CharBuffer struct {
	fb     *fb.FrameBuffer
	res    fb.Resolution
	colors CharColors
	cursor fb.PixelPosition

	// Grid dimensions in cells.
	width  uint32
	height uint32
}

// NewCharBuffer creates a CharBuffer that draws to the supplied framebuffer
// using DefaultColors. The cursor starts at the top-left cell.
func NewCharBuffer(frameBuffer *fb.FrameBuffer) *CharBuffer {
	res := frameBuffer.Resolution()
	return &CharBuffer{
		fb:     frameBuffer,
		res:    res,
		colors: DefaultColors,
		width:  res.Horizontal / font.GlyphWidth,
		height: res.Vertical / font.GlyphHeight,
	}
}

// Dimensions returns the grid size in cells.
func (b *CharBuffer) Dimensions() (width, height uint32) {
	return b.width, b.height
}

// Cursor returns the 0-based column and row of the cursor.
func (b *CharBuffer) Cursor() (col, row uint32) {
	return b.cursor.Horizontal / font.GlyphWidth, b.cursor.Vertical / font.GlyphHeight
}

// Colors returns the colors used for drawing glyphs.
func (b *CharBuffer) Colors() CharColors {
	return b.colors
}

// SetColors changes the colors used for subsequent glyphs. Existing content
// is not repainted.
func (b *CharBuffer) SetColors(colors CharColors) {
	b.colors = colors
}

// Clear paints the whole framebuffer with the background color and moves the
// cursor to the top-left cell.
func (b *CharBuffer) Clear() {
	b.fb.Fill(b.colors.Background)
	b.cursor = fb.PixelPosition{}
}

// PutChar draws c at the cursor and advances the cursor by one cell,
// wrapping to the start of the next line when the current line is full.
func (b *CharBuffer) PutChar(c font.PrintableChar) {
	b.drawGlyph(b.cursor, font.Lookup(c))

	b.cursor.Horizontal += font.GlyphWidth
	if b.cursor.Horizontal+font.GlyphWidth > b.res.Horizontal {
		b.cursor.Horizontal = 0
		b.cursor.Vertical += font.GlyphHeight
	}

	b.scrollIfNeeded()
}

// GoDown moves the cursor one row down without changing its column.
func (b *CharBuffer) GoDown() {
	b.cursor.Vertical += font.GlyphHeight
	b.scrollIfNeeded()
}

// GoToLineStart moves the cursor to the first column of its row.
func (b *CharBuffer) GoToLineStart() {
	b.cursor.Horizontal = 0
	b.scrollIfNeeded()
}

// ReadCell reads back the character drawn in the cell at (row, col) using
// colors. The second return value is false if the cell lies outside the grid
// or contains pixels that do not form a glyph in that palette.
func (b *CharBuffer) ReadCell(row, col uint32, colors CharColors) (font.PrintableChar, bool) {
	if row >= b.height || col >= b.width {
		return 0, false
	}

	var g font.Glyph
	origin := cellPosition(row, col)
	for y := uint32(0); y < font.GlyphHeight; y++ {
		for x := uint32(0); x < font.GlyphWidth; x++ {
			p, _ := b.fb.PixelIfVisible(origin.Add(x, y))
			switch p {
			case colors.Background:
			case colors.Foreground:
				g[y] |= 1 << (font.GlyphWidth - 1 - x)
			default:
				return 0, false
			}
		}
	}

	return font.Identify(&g)
}

// drawGlyph paints glyph g into the cell whose top-left pixel is at origin.
func (b *CharBuffer) drawGlyph(origin fb.PixelPosition, g *font.Glyph) {
	for y := uint32(0); y < font.GlyphHeight; y++ {
		for x := uint32(0); x < font.GlyphWidth; x++ {
			b.fb.DrawPixelIfVisible(origin.Add(x, y), b.colors.Apply(g.Bit(x, y)))
		}
	}
}

// scrollIfNeeded scrolls the grid up by one row if a full glyph no longer
// fits below the cursor. After a scroll the cursor sits at the start of the
// (now blank) last row.
func (b *CharBuffer) scrollIfNeeded() {
	if b.cursor.Vertical+font.GlyphHeight <= b.res.Vertical {
		return
	}

	if b.height == 0 {
		b.cursor = fb.PixelPosition{}
		return
	}

	// Rows must be visited in ascending order: row n is read before the
	// iteration for row n+1 overwrites it.
	for row := uint32(1); row < b.height; row++ {
		for col := uint32(0); col < b.width; col++ {
			b.copyCell(cellPosition(row-1, col), cellPosition(row, col))
		}
	}

	lastRow := b.height - 1
	for col := uint32(0); col < b.width; col++ {
		b.clearCell(cellPosition(lastRow, col))
	}

	b.cursor = cellPosition(lastRow, 0)
}

// copyCell copies the pixels of the cell at src to the cell at dest.
func (b *CharBuffer) copyCell(dest, src fb.PixelPosition) {
	for y := uint32(0); y < font.GlyphHeight; y++ {
		for x := uint32(0); x < font.GlyphWidth; x++ {
			b.fb.CopyOnePixel(dest.Add(x, y), src.Add(x, y))
		}
	}
}

// clearCell paints the cell at origin with the background color.
func (b *CharBuffer) clearCell(origin fb.PixelPosition) {
	for y := uint32(0); y < font.GlyphHeight; y++ {
		for x := uint32(0); x < font.GlyphWidth; x++ {
			b.fb.DrawPixelIfVisible(origin.Add(x, y), b.colors.Background)
		}
	}
}

// cellPosition returns the top-left pixel of the cell at (row, col). The
// caller must ensure that both indices lie within the grid.
func cellPosition(row, col uint32) fb.PixelPosition {
	return fb.PixelPosition{
		Horizontal: col * font.GlyphWidth,
		Vertical:   row * font.GlyphHeight,
	}
}
