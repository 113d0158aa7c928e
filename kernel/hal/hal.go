// Package hal selects a display mode from the list that the firmware reports
// and attaches the text console to it.
package hal

import (
	"fbcon/device/tty"
	"fbcon/device/video/fb"
	"fbcon/kernel"
	"fbcon/kernel/hal/gop"
	"fbcon/kernel/kfmt"
	"io"
)

const bytesPerPixel = 4

var (
	errNoSupportedMode = &kernel.Error{Module: "hal", Message: "no supported display mode"}

	logPrefix = []byte("[hal] ")
)

// RejectReason returns a short description of why m cannot back the console
// or an empty string if the mode is usable.
func RejectReason(m gop.ModeInfo) string {
	switch {
	case !m.DirectColor():
		return "no direct framebuffer access"
	case m.Base == 0:
		return "missing framebuffer address"
	case m.Stride < m.Width:
		return "stride smaller than width"
	case m.Size != 0 && uintptr(m.Stride)*uintptr(m.Height)*bytesPerPixel > m.Size:
		return "framebuffer smaller than reported geometry"
	case !(fb.Resolution{Horizontal: m.Width, Vertical: m.Height}).IsSupported():
		return "unsupported resolution"
	default:
		return ""
	}
}

// SelectMode picks the mode with the greatest horizontal resolution among the
// modes that use 32-bit RGB or BGR pixels and whose resolution lies within
// the supported range. When several modes share the same width, the first
// one wins. Each candidate is logged to the active output sink.
func SelectMode(modes []gop.ModeInfo) (gop.ModeInfo, *kernel.Error) {
	return selectMode(&kfmt.PrefixWriter{Sink: kfmt.GetOutputSink(), Prefix: logPrefix}, modes)
}

func selectMode(w io.Writer, modes []gop.ModeInfo) (gop.ModeInfo, *kernel.Error) {
	var (
		best  gop.ModeInfo
		found bool
	)

	for _, m := range modes {
		kfmt.Fprintf(w, "mode %d: %dx%d stride %d %s", m.Number, m.Width, m.Height, m.Stride, m.Format.String())
		if reason := RejectReason(m); reason != "" {
			kfmt.Fprintf(w, ": skipped (%s)\n", reason)
			continue
		}
		kfmt.Fprintf(w, "\n")

		if !found || m.Width > best.Width {
			best, found = m, true
		}
	}

	if !found {
		kfmt.Fprintf(w, "%s\n", errNoSupportedMode.Message)
		return gop.ModeInfo{}, errNoSupportedMode
	}

	kfmt.Fprintf(w, "selected mode %d (%dx%d)\n", best.Number, best.Width, best.Height)
	return best, nil
}

// Descriptor converts a firmware mode into a framebuffer descriptor.
// Formats other than RGB and BGR map to an invalid pixel format which
// fb.New rejects.
func Descriptor(m gop.ModeInfo) fb.Descriptor {
	format := fb.PixelFormat(0xff)
	switch m.Format {
	case gop.PixelFormatRGB:
		format = fb.PixelFormatRGB
	case gop.PixelFormatBGR:
		format = fb.PixelFormatBGR
	}

	return fb.Descriptor{
		Base:   m.Base,
		Format: format,
		Stride: m.Stride,
		Width:  m.Width,
		Height: m.Height,
	}
}

// InitConsole selects a display mode and returns a console that renders to
// it. The caller owns the returned console and must pass it to every
// component that writes to the screen.
func InitConsole(modes []gop.ModeInfo) (*tty.Console, *kernel.Error) {
	m, err := SelectMode(modes)
	if err != nil {
		return nil, err
	}

	return tty.NewFromDescriptor(Descriptor(m))
}
