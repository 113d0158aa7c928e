package console

import (
	"fbcon/device/video/console/font"
	"fbcon/device/video/fb"
	"strings"
	"testing"
	"unsafe"
)

func mockFrameBuffer(t *testing.T, width, height, stride uint32) (*fb.FrameBuffer, []uint32) {
	t.Helper()

	mem := make([]uint32, stride*height)
	frameBuffer, err := fb.New(fb.Descriptor{
		Base:   uintptr(unsafe.Pointer(&mem[0])),
		Format: fb.PixelFormatBGR,
		Stride: stride,
		Width:  width,
		Height: height,
	})
	if err != nil {
		t.Fatalf("unexpected error creating framebuffer: %v", err)
	}

	return frameBuffer, mem
}

// mockCharBuffer returns a CharBuffer with a cols x rows grid whose
// framebuffer has padded scanlines.
func mockCharBuffer(t *testing.T, cols, rows uint32) (*CharBuffer, *fb.FrameBuffer, []uint32) {
	t.Helper()

	width, height := cols*font.GlyphWidth, rows*font.GlyphHeight
	frameBuffer, mem := mockFrameBuffer(t, width, height, width+3)
	buf := NewCharBuffer(frameBuffer)
	buf.Clear()

	return buf, frameBuffer, mem
}

// cellChar identifies the glyph drawn in the cell at (row, col) using the
// supplied colors. It returns '?' if the cell does not contain a glyph.
func cellChar(frameBuffer *fb.FrameBuffer, row, col uint32, colors CharColors) byte {
	origin := cellPosition(row, col)

nextGlyph:
	for b := byte(0x20); b <= 0x7e; b++ {
		c, _ := font.ToPrintable(b)
		g := font.Lookup(c)
		for y := uint32(0); y < font.GlyphHeight; y++ {
			for x := uint32(0); x < font.GlyphWidth; x++ {
				got, ok := frameBuffer.PixelIfVisible(origin.Add(x, y))
				if !ok || got != colors.Apply(g.Bit(x, y)) {
					continue nextGlyph
				}
			}
		}

		return b
	}

	return '?'
}

// screenRows returns the text content of every row in the grid.
func screenRows(buf *CharBuffer, frameBuffer *fb.FrameBuffer, colors CharColors) []string {
	w, h := buf.Dimensions()
	rows := make([]string, h)
	for row := uint32(0); row < h; row++ {
		var sb strings.Builder
		for col := uint32(0); col < w; col++ {
			sb.WriteByte(cellChar(frameBuffer, row, col, colors))
		}
		rows[row] = sb.String()
	}

	return rows
}

func putString(buf *CharBuffer, s string) {
	for i := 0; i < len(s); i++ {
		c, _ := font.ToPrintable(s[i])
		buf.PutChar(c)
	}
}

func newLine(buf *CharBuffer) {
	buf.GoDown()
	buf.GoToLineStart()
}

func assertCursor(t *testing.T, buf *CharBuffer, expCol, expRow uint32) {
	t.Helper()

	if col, row := buf.Cursor(); col != expCol || row != expRow {
		t.Fatalf("expected cursor to be at (col %d, row %d); got (col %d, row %d)", expCol, expRow, col, row)
	}
}

func assertRows(t *testing.T, buf *CharBuffer, frameBuffer *fb.FrameBuffer, colors CharColors, exp []string) {
	t.Helper()

	got := screenRows(buf, frameBuffer, colors)
	if strings.Join(got, "\n") != strings.Join(exp, "\n") {
		t.Fatalf("unexpected screen contents:\nexpected:\n%s\ngot:\n%s", strings.Join(exp, "\n"), strings.Join(got, "\n"))
	}
}

func TestCharBufferDimensions(t *testing.T) {
	specs := []struct {
		width, height uint32
		expW, expH    uint32
	}{
		{640, 400, 80, 25},
		{643, 407, 80, 25},
		{320, 200, 40, 12},
		{1920, 1080, 240, 67},
	}

	for specIndex, spec := range specs {
		frameBuffer, _ := mockFrameBuffer(t, spec.width, spec.height, spec.width)
		buf := NewCharBuffer(frameBuffer)
		if w, h := buf.Dimensions(); w != spec.expW || h != spec.expH {
			t.Errorf("[spec %d] expected grid to be %dx%d; got %dx%d", specIndex, spec.expW, spec.expH, w, h)
		}

		if col, row := buf.Cursor(); col != 0 || row != 0 {
			t.Errorf("[spec %d] expected cursor to start at (0, 0); got (%d, %d)", specIndex, col, row)
		}
	}
}

func TestPutCharDrawsGlyph(t *testing.T) {
	buf, frameBuffer, mem := mockCharBuffer(t, 4, 3)

	putString(buf, "Hi")

	assertCursor(t, buf, 2, 0)
	assertRows(t, buf, frameBuffer, DefaultColors, []string{
		"Hi  ",
		"    ",
		"    ",
	})

	// glyph pixels must never spill into the scanline padding
	stride := frameBuffer.Stride()
	width := frameBuffer.Resolution().Horizontal
	for y := uint32(0); y < frameBuffer.Resolution().Vertical; y++ {
		for x := width; x < stride; x++ {
			if mem[y*stride+x] != 0 {
				t.Fatalf("expected padding pixel (%d, %d) to remain untouched", x, y)
			}
		}
	}
}

func TestPutCharWrapsLines(t *testing.T) {
	buf, frameBuffer, _ := mockCharBuffer(t, 4, 3)

	putString(buf, "abcd")
	assertCursor(t, buf, 0, 1)

	putString(buf, "ef")
	assertCursor(t, buf, 2, 1)
	assertRows(t, buf, frameBuffer, DefaultColors, []string{
		"abcd",
		"ef  ",
		"    ",
	})
}

func TestPutCharWrapsBeforePartialCell(t *testing.T) {
	// 4 full cells plus 5 spare pixels per line
	frameBuffer, _ := mockFrameBuffer(t, 4*font.GlyphWidth+5, 3*font.GlyphHeight, 4*font.GlyphWidth+5)
	buf := NewCharBuffer(frameBuffer)

	if w, _ := buf.Dimensions(); w != 4 {
		t.Fatalf("expected grid width 4; got %d", w)
	}

	putString(buf, "wxyz")
	assertCursor(t, buf, 0, 1)
}

func TestGoToLineStart(t *testing.T) {
	buf, frameBuffer, _ := mockCharBuffer(t, 4, 3)

	putString(buf, "abc")
	buf.GoToLineStart()
	assertCursor(t, buf, 0, 0)

	putString(buf, "X")
	assertRows(t, buf, frameBuffer, DefaultColors, []string{
		"Xbc ",
		"    ",
		"    ",
	})
}

func TestGoDownKeepsColumn(t *testing.T) {
	buf, _, _ := mockCharBuffer(t, 4, 3)

	putString(buf, "ab")
	buf.GoDown()
	assertCursor(t, buf, 2, 1)
}

func TestScrollShiftsRowsUp(t *testing.T) {
	buf, frameBuffer, _ := mockCharBuffer(t, 3, 3)

	putString(buf, "aaa")
	putString(buf, "bbb")
	putString(buf, "cc")
	assertCursor(t, buf, 2, 2)

	// filling the last cell of the last row wraps and scrolls
	putString(buf, "c")
	assertCursor(t, buf, 0, 2)
	assertRows(t, buf, frameBuffer, DefaultColors, []string{
		"bbb",
		"ccc",
		"   ",
	})

	putString(buf, "d")
	newLine(buf)
	assertCursor(t, buf, 0, 2)
	assertRows(t, buf, frameBuffer, DefaultColors, []string{
		"ccc",
		"d  ",
		"   ",
	})
}

func TestScrollPreservesOrdering(t *testing.T) {
	buf, frameBuffer, _ := mockCharBuffer(t, 2, 4)

	lines := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	for _, line := range lines {
		putString(buf, line)
		newLine(buf)
	}

	// The last newline scrolled "9" up, leaving the last row blank.
	assertCursor(t, buf, 0, 3)
	assertRows(t, buf, frameBuffer, DefaultColors, []string{
		"7 ",
		"8 ",
		"9 ",
		"  ",
	})
}

func TestScrollFiresOnlyPastLastRow(t *testing.T) {
	buf, frameBuffer, _ := mockCharBuffer(t, 80, 25)

	putString(buf, "X")
	newLine(buf)
	putString(buf, "Y")

	for i := 0; i < 23; i++ {
		newLine(buf)
	}

	assertCursor(t, buf, 0, 24)
	if got := cellChar(frameBuffer, 0, 0, DefaultColors); got != 'X' {
		t.Fatalf("expected no scroll before moving past the last row; row 0 starts with %q", got)
	}

	newLine(buf)
	assertCursor(t, buf, 0, 24)
	if got := cellChar(frameBuffer, 0, 0, DefaultColors); got != 'Y' {
		t.Fatalf("expected exactly one scroll; row 0 starts with %q", got)
	}
	if got := cellChar(frameBuffer, 1, 0, DefaultColors); got != ' ' {
		t.Fatalf("expected row 1 to be blank after one scroll; got %q", got)
	}
}

func TestScrollClearsWithActiveBackground(t *testing.T) {
	buf, frameBuffer, _ := mockCharBuffer(t, 2, 2)

	putString(buf, "ab")
	buf.SetColors(PanicColors)
	putString(buf, "cd")

	assertCursor(t, buf, 0, 1)

	// The scrolled row keeps its original colors, the cleared row uses the
	// panic background.
	if got := cellChar(frameBuffer, 0, 0, PanicColors); got != 'c' {
		t.Fatalf("expected row 0 to contain the panic colored 'c'; got %q", got)
	}

	if got := cellChar(frameBuffer, 1, 1, PanicColors); got != ' ' {
		t.Fatalf("expected the last row to be cleared with the panic background; got %q", got)
	}
}

func TestSetColorsDoesNotRepaint(t *testing.T) {
	buf, frameBuffer, _ := mockCharBuffer(t, 2, 2)

	putString(buf, "a")
	buf.SetColors(PanicColors)

	if got := buf.Colors(); got != PanicColors {
		t.Fatalf("expected colors to be updated; got %v", got)
	}

	if got := cellChar(frameBuffer, 0, 0, DefaultColors); got != 'a' {
		t.Fatalf("expected existing glyph to keep its colors; got %q", got)
	}
}

func TestClear(t *testing.T) {
	buf, frameBuffer, _ := mockCharBuffer(t, 3, 2)

	putString(buf, "abcd")
	buf.Clear()

	assertCursor(t, buf, 0, 0)
	assertRows(t, buf, frameBuffer, DefaultColors, []string{
		"   ",
		"   ",
	})
}

func TestCharColorsApply(t *testing.T) {
	if got := DefaultColors.Apply(font.Foreground); got != fb.White {
		t.Errorf("expected default foreground to be white; got %v", got)
	}

	if got := PanicColors.Apply(font.Background); got != fb.White {
		t.Errorf("expected panic background to be white; got %v", got)
	}

	if got := PanicColors.Apply(font.Foreground); got != fb.Red {
		t.Errorf("expected panic foreground to be red; got %v", got)
	}
}

func TestReadCell(t *testing.T) {
	buf, frameBuffer, _ := mockCharBuffer(t, 3, 2)

	putString(buf, "k")
	buf.SetColors(PanicColors)
	putString(buf, "z")

	specs := []struct {
		row, col uint32
		colors   CharColors
		exp      byte
		expOK    bool
	}{
		{0, 0, DefaultColors, 'k', true},
		{0, 0, PanicColors, 0, false},
		{0, 1, PanicColors, 'z', true},
		{0, 2, DefaultColors, ' ', true},
		{2, 0, DefaultColors, 0, false},
		{0, 3, DefaultColors, 0, false},
	}

	for specIndex, spec := range specs {
		got, ok := buf.ReadCell(spec.row, spec.col, spec.colors)
		if ok != spec.expOK || (ok && byte(got) != spec.exp) {
			t.Errorf("[spec %d] expected ReadCell(%d, %d) to return %q, %t; got %q, %t", specIndex, spec.row, spec.col, spec.exp, spec.expOK, byte(got), ok)
		}
	}

	// cellChar and ReadCell agree on the whole grid
	if got := cellChar(frameBuffer, 0, 0, DefaultColors); got != 'k' {
		t.Fatalf("expected cellChar to find 'k'; got %q", got)
	}
}
