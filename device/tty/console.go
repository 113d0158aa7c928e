// Package tty interprets a stream of text and control characters and renders
// it onto a console.CharBuffer.
package tty

import (
	"fbcon/device/video/console"
	"fbcon/device/video/console/font"
	"fbcon/device/video/fb"
	"fbcon/kernel"
)

// TabWidth defines the number of spaces that tabs expand to.
const TabWidth = 4

// Mode selects the palette used by a Console.
type Mode uint8

const (
	// ModeNormal draws text using console.DefaultColors.
	ModeNormal Mode = iota

	// ModePanic draws text using console.PanicColors. Once entered, the
	// console never leaves this mode.
	ModePanic
)

// Console interprets a stream of text and renders it on a CharBuffer. The
// console understands the following special characters:
//   - \n (line-feed; also returns to the start of the line)
//   - \r (carriage-return)
//   - \t (tab; expanded to TabWidth spaces)
//
// Any other character is rendered if it is printable ASCII and silently
// dropped otherwise.
type Console struct {
	buf  *console.CharBuffer
	mode Mode
}

// New creates a console that renders to buf.
func New(buf *console.CharBuffer) *Console {
	buf.SetColors(console.DefaultColors)
	return &Console{buf: buf}
}

// NewFromDescriptor maps the framebuffer described by d and returns a console
// that renders to it. It must only be invoked once per framebuffer.
func NewFromDescriptor(d fb.Descriptor) (*Console, *kernel.Error) {
	frameBuffer, err := fb.New(d)
	if err != nil {
		return nil, err
	}

	return New(console.NewCharBuffer(frameBuffer)), nil
}

// CharBuffer returns the text grid used by the console.
func (c *Console) CharBuffer() *console.CharBuffer {
	return c.buf
}

// Mode returns the active console mode.
func (c *Console) Mode() Mode {
	return c.mode
}

// EnterPanicMode switches to the alert palette for all subsequent output.
// Text that is already on screen keeps its colors.
func (c *Console) EnterPanicMode() {
	c.mode = ModePanic
	c.buf.SetColors(console.PanicColors)
}

// Clear blanks the screen using the background color of the active palette
// and moves the cursor to the top-left corner.
func (c *Console) Clear() {
	c.buf.Clear()
}

// Print renders s.
func (c *Console) Print(s string) {
	for _, r := range s {
		c.putRune(r)
	}
}

// Println renders s followed by a line-feed.
func (c *Console) Println(s string) {
	c.Print(s)
	c.putRune('\n')
}

// Write implements io.Writer. Multi-byte UTF-8 sequences consist of bytes
// outside the printable ASCII range so filtering each byte is equivalent to
// dropping the whole character.
func (c *Console) Write(data []byte) (int, error) {
	for _, b := range data {
		c.putByte(b)
	}

	return len(data), nil
}

// WriteByte implements io.ByteWriter.
func (c *Console) WriteByte(b byte) error {
	c.putByte(b)
	return nil
}

// WriteString implements io.StringWriter.
func (c *Console) WriteString(s string) (int, error) {
	c.Print(s)
	return len(s), nil
}

func (c *Console) putRune(r rune) {
	if r < 0x80 {
		c.putByte(byte(r))
	}
}

func (c *Console) putByte(b byte) {
	switch b {
	case '\n':
		c.buf.GoDown()
		c.buf.GoToLineStart()
	case '\r':
		c.buf.GoToLineStart()
	case '\t':
		for i := 0; i < TabWidth; i++ {
			c.buf.PutChar(font.Space)
		}
	default:
		if ch, ok := font.ToPrintable(b); ok {
			c.buf.PutChar(ch)
		}
	}
}
