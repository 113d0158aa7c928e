package main

import (
	"fmt"
	"unsafe"

	"github.com/charmbracelet/log"

	"fbcon/device/tty"
	"fbcon/device/video/console"
	"fbcon/device/video/fb"
	"fbcon/kernel/hal"
	"fbcon/kernel/hal/gop"
	"fbcon/kernel/kfmt"
)

// placeholderBase is reported for every direct-color mode until the backing
// memory of the selected mode is allocated. Mode selection only inspects
// whether a base address exists.
const placeholderBase = uintptr(0x1000)

// machine is a simulated display: the selected firmware mode, the memory
// that backs its framebuffer and the console attached to it.
type machine struct {
	mode gop.ModeInfo
	mem  []uint32
	fb   *fb.FrameBuffer
	cons *tty.Console
}

// bootMachine selects a mode the same way the kernel does, allocates its
// framebuffer and attaches a cleared console. The hal trace is forwarded to
// logger at debug level.
func bootMachine(modes []gop.ModeInfo, logger *log.Logger) (*machine, error) {
	kfmt.SetOutputSink(&logSink{logger: logger})

	reported := make([]gop.ModeInfo, len(modes))
	copy(reported, modes)
	for i := range reported {
		if reported[i].DirectColor() {
			reported[i].Base = placeholderBase
		}
	}

	mode, kerr := hal.SelectMode(reported)
	if kerr != nil {
		return nil, fmt.Errorf("mode selection: %w", kerr)
	}

	mem := make([]uint32, int(mode.Stride)*int(mode.Height))
	mode.Base = uintptr(unsafe.Pointer(&mem[0]))

	frameBuffer, kerr := fb.New(hal.Descriptor(mode))
	if kerr != nil {
		return nil, fmt.Errorf("framebuffer: %w", kerr)
	}

	cons := tty.New(console.NewCharBuffer(frameBuffer))
	cons.Clear()

	cols, rows := cons.CharBuffer().Dimensions()
	logger.Info("display ready",
		"mode", mode.Number,
		"resolution", fmt.Sprintf("%dx%d", mode.Width, mode.Height),
		"stride", mode.Stride,
		"format", mode.Format.String(),
		"grid", fmt.Sprintf("%dx%d", cols, rows),
	)

	return &machine{mode: mode, mem: mem, fb: frameBuffer, cons: cons}, nil
}

// rawPixel returns the decoded pixel at (x, y) including scanline padding.
func (m *machine) rawPixel(x, y uint32) fb.Pixel {
	return m.fb.Format().Decode(fb.HardwarePixel(m.mem[y*m.mode.Stride+x]))
}

// logSink turns kfmt output into one debug log entry per line.
type logSink struct {
	logger *log.Logger
	line   []byte
}

func (s *logSink) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\n' {
			s.logger.Debug(string(s.line))
			s.line = s.line[:0]
			continue
		}
		s.line = append(s.line, b)
	}

	return len(p), nil
}
