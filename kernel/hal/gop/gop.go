// Package gop describes the display modes that the firmware graphics output
// protocol reports.
package gop

// PixelFormat describes how the firmware lays out the pixels of a mode. The
// values follow the ordering used by the graphics output protocol.
type PixelFormat uint32

const (
	// PixelFormatRGB stores 8-bit red, green and blue channels followed by
	// a reserved byte.
	PixelFormatRGB PixelFormat = iota

	// PixelFormatBGR stores 8-bit blue, green and red channels followed by
	// a reserved byte.
	PixelFormatBGR

	// PixelFormatBitmask uses channel masks supplied by the firmware.
	PixelFormatBitmask

	// PixelFormatBltOnly has no directly addressable framebuffer.
	PixelFormatBltOnly
)

// String implements fmt.Stringer for PixelFormat.
func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB:
		return "rgb"
	case PixelFormatBGR:
		return "bgr"
	case PixelFormatBitmask:
		return "bitmask"
	case PixelFormatBltOnly:
		return "blt-only"
	default:
		return "unknown"
	}
}

// ModeInfo contains the information that the firmware reports for a single
// display mode.
type ModeInfo struct {
	// Number is the firmware index of this mode.
	Number uint32

	// Width and Height are the visible dimensions in pixels.
	Width  uint32
	Height uint32

	// Stride is the number of pixels in a scanline, including padding.
	Stride uint32

	Format PixelFormat

	// Base is the address of the first pixel. It is only meaningful for
	// direct-color formats.
	Base uintptr

	// Size is the length of the framebuffer in bytes. A zero value means
	// that the firmware did not report it.
	Size uintptr
}

// DirectColor returns true if the mode exposes a linear framebuffer with
// 32-bit pixels that can be written without firmware assistance.
func (m ModeInfo) DirectColor() bool {
	return m.Format == PixelFormatRGB || m.Format == PixelFormatBGR
}
