package fb

// Resolution describes the visible size of a framebuffer in pixels.
type Resolution struct {
	Horizontal uint32
	Vertical   uint32
}

// The range of resolutions the console accepts from the boot collaborator.
var (
	MinSupported = Resolution{Horizontal: 320, Vertical: 200}
	MaxSupported = Resolution{Horizontal: 1920, Vertical: 1080}
)

// IsSupported returns true if both axes of r lie within the inclusive
// [MinSupported, MaxSupported] range.
func (r Resolution) IsSupported() bool {
	return r.Horizontal >= MinSupported.Horizontal &&
		r.Horizontal <= MaxSupported.Horizontal &&
		r.Vertical >= MinSupported.Vertical &&
		r.Vertical <= MaxSupported.Vertical
}

// Accepts returns true if pos addresses a visible pixel.
func (r Resolution) Accepts(pos PixelPosition) bool {
	return pos.Horizontal < r.Horizontal && pos.Vertical < r.Vertical
}

// PixelPosition addresses a single pixel. The top-left pixel is at (0, 0).
type PixelPosition struct {
	Horizontal uint32
	Vertical   uint32
}

// Add returns the position offset by (dx, dy).
func (p PixelPosition) Add(dx, dy uint32) PixelPosition {
	return PixelPosition{Horizontal: p.Horizontal + dx, Vertical: p.Vertical + dy}
}
