// Package fb owns the raw pixel memory handed over by the firmware. It is the
// only place in the module that turns a physical address into something that
// can be dereferenced; everything above it goes through the bounds-checked
// accessors exported here.
package fb

import (
	"fbcon/kernel"
	"sync/atomic"
	"unsafe"
)

var (
	errNoBaseAddress  = &kernel.Error{Module: "fb", Message: "framebuffer base address is not set"}
	errBadResolution  = &kernel.Error{Module: "fb", Message: "framebuffer resolution must be non-zero"}
	errStrideTooSmall = &kernel.Error{Module: "fb", Message: "framebuffer stride is smaller than its width"}
	errBadPixelFormat = &kernel.Error{Module: "fb", Message: "unsupported framebuffer pixel format"}
)

// Descriptor is the contract between the boot collaborator and the console
// core. It is produced once, after a display mode has been selected and
// activated.
type Descriptor struct {
	// The address of the first pixel of the framebuffer.
	Base uintptr

	// Format selects the byte order of each 32-bit hardware pixel.
	Format PixelFormat

	// Stride is the number of pixels per hardware scanline. It may exceed
	// Width when the hardware pads its scanlines.
	Stride uint32

	// The visible dimensions in pixels.
	Width, Height uint32
}

// Resolution returns the visible resolution described by d.
func (d Descriptor) Resolution() Resolution {
	return Resolution{Horizontal: d.Width, Vertical: d.Height}
}

// FrameBuffer provides exclusive access to a linear 32-bit direct color
// framebuffer. All stores to device memory are performed with atomic 32-bit
// writes so the compiler cannot elide them.
type FrameBuffer struct {
	pixels []uint32
	format PixelFormat
	stride uint32
	res    Resolution
}

// New maps the framebuffer described by d. It must be called exactly once
// per framebuffer; the returned value lives until the machine is switched off.
func New(d Descriptor) (*FrameBuffer, *kernel.Error) {
	switch {
	case d.Base == 0:
		return nil, errNoBaseAddress
	case d.Width == 0 || d.Height == 0:
		return nil, errBadResolution
	case d.Stride < d.Width:
		return nil, errStrideTooSmall
	case !d.Format.valid():
		return nil, errBadPixelFormat
	}

	return &FrameBuffer{
		pixels: unsafe.Slice((*uint32)(unsafe.Pointer(d.Base)), int(d.Stride)*int(d.Height)),
		format: d.Format,
		stride: d.Stride,
		res:    d.Resolution(),
	}, nil
}

// Resolution returns the visible resolution of the framebuffer.
func (fb *FrameBuffer) Resolution() Resolution {
	return fb.res
}

// Format returns the hardware pixel format.
func (fb *FrameBuffer) Format() PixelFormat {
	return fb.format
}

// Stride returns the number of pixels per hardware scanline.
func (fb *FrameBuffer) Stride() uint32 {
	return fb.stride
}

// DrawPixelIfVisible sets the pixel at pos to p. Positions outside the
// visible resolution are ignored.
func (fb *FrameBuffer) DrawPixelIfVisible(pos PixelPosition, p Pixel) {
	if !fb.res.Accepts(pos) {
		return
	}

	fb.store(fb.offset(pos), fb.format.Encode(p))
}

// PixelIfVisible returns the pixel at pos. The second return value is false
// if pos lies outside the visible resolution.
func (fb *FrameBuffer) PixelIfVisible(pos PixelPosition) (Pixel, bool) {
	if !fb.res.Accepts(pos) {
		return Pixel{}, false
	}

	return fb.format.Decode(fb.load(fb.offset(pos))), true
}

// CopyOnePixel copies the hardware pixel at src to dest without going
// through a format conversion. If either position is not visible the call
// is a no-op.
func (fb *FrameBuffer) CopyOnePixel(dest, src PixelPosition) {
	if !fb.res.Accepts(dest) || !fb.res.Accepts(src) {
		return
	}

	fb.store(fb.offset(dest), fb.load(fb.offset(src)))
}

// Fill sets every visible pixel to p. The padding at the end of each
// scanline is left untouched.
func (fb *FrameBuffer) Fill(p Pixel) {
	hp := fb.format.Encode(p)
	for y, rowOffset := uint32(0), uint32(0); y < fb.res.Vertical; y, rowOffset = y+1, rowOffset+fb.stride {
		for x := uint32(0); x < fb.res.Horizontal; x++ {
			fb.store(rowOffset+x, hp)
		}
	}
}

// offset returns the linear pixel offset that corresponds to pos. Scanlines
// are stride pixels apart, not width pixels.
func (fb *FrameBuffer) offset(pos PixelPosition) uint32 {
	return pos.Vertical*fb.stride + pos.Horizontal
}

func (fb *FrameBuffer) store(offset uint32, hp HardwarePixel) {
	atomic.StoreUint32(&fb.pixels[offset], uint32(hp))
}

func (fb *FrameBuffer) load(offset uint32) HardwarePixel {
	return HardwarePixel(atomic.LoadUint32(&fb.pixels[offset]))
}
