package fb

// Pixel is a logical 24-bit RGB color.
type Pixel struct {
	R, G, B uint8
}

// The colors used by the console palettes.
var (
	Black = Pixel{R: 0, G: 0, B: 0}
	White = Pixel{R: 255, G: 255, B: 255}
	Red   = Pixel{R: 255, G: 0, B: 0}
)

// RGB returns the Pixel with the supplied channel values.
func RGB(r, g, b uint8) Pixel {
	return Pixel{R: r, G: g, B: b}
}

// PixelFormat describes how the display hardware packs a Pixel into a 32-bit
// word. Only the two 8-bit-per-channel direct color layouts are supported.
type PixelFormat uint8

const (
	// PixelFormatBGR stores blue in the lowest byte, followed by green and
	// red. The top byte is reserved.
	PixelFormatBGR PixelFormat = iota

	// PixelFormatRGB stores red in the lowest byte, followed by green and
	// blue. The top byte is reserved.
	PixelFormatRGB
)

// String implements fmt.Stringer.
func (f PixelFormat) String() string {
	switch f {
	case PixelFormatBGR:
		return "bgr"
	case PixelFormatRGB:
		return "rgb"
	default:
		return "unknown"
	}
}

// valid returns true if f is one of the supported formats.
func (f PixelFormat) valid() bool {
	return f == PixelFormatBGR || f == PixelFormatRGB
}

// HardwarePixel is the packed physical encoding of a Pixel as it is stored in
// device memory.
type HardwarePixel uint32

// Encode packs p using the byte order of format f. The reserved byte is
// always zero.
func (f PixelFormat) Encode(p Pixel) HardwarePixel {
	if f == PixelFormatBGR {
		return HardwarePixel(uint32(p.B) | uint32(p.G)<<8 | uint32(p.R)<<16)
	}

	return HardwarePixel(uint32(p.R) | uint32(p.G)<<8 | uint32(p.B)<<16)
}

// Decode unpacks a hardware pixel stored using format f. The reserved byte is
// ignored.
func (f PixelFormat) Decode(hp HardwarePixel) Pixel {
	lo, mid, hi := uint8(hp), uint8(hp>>8), uint8(hp>>16)
	if f == PixelFormatBGR {
		return Pixel{R: hi, G: mid, B: lo}
	}

	return Pixel{R: lo, G: mid, B: hi}
}
