package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"fbcon/device/video/fb"
	"fbcon/kernel"
	"fbcon/kernel/hal/gop"
	"fbcon/kernel/kfmt"
	"fbcon/kernel/kmain"
)

func defaultMachine(t *testing.T) (*machine, *bytes.Buffer) {
	t.Helper()

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}

	modes, err := cfg.FirmwareModes()
	if err != nil {
		t.Fatal(err)
	}

	var logBuf bytes.Buffer
	m, err := bootMachine(modes, newLogger(&logBuf, true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return m, &logBuf
}

func TestBootMachine(t *testing.T) {
	m, logBuf := defaultMachine(t)

	if m.mode.Number != 2 || m.mode.Stride != 1056 {
		t.Fatalf("expected mode 2 with stride 1056 to be selected; got %+v", m.mode)
	}

	if cols, rows := m.cons.CharBuffer().Dimensions(); cols != 128 || rows != 48 {
		t.Fatalf("expected a 128x48 grid; got %dx%d", cols, rows)
	}

	for _, exp := range []string{
		"[hal] mode 3: 2560x1440 stride 2560 bgr: skipped (unsupported resolution)",
		"[hal] selected mode 2 (1024x768)",
		"display ready",
	} {
		if !strings.Contains(logBuf.String(), exp) {
			t.Errorf("expected log to contain %q; got:\n%s", exp, logBuf.String())
		}
	}
}

func TestBootMachineNoSupportedMode(t *testing.T) {
	modes := []gop.ModeInfo{{Number: 0, Width: 1024, Height: 768, Stride: 1024, Format: gop.PixelFormatBitmask}}

	_, err := bootMachine(modes, log.New(&bytes.Buffer{}))
	if err == nil || !strings.Contains(err.Error(), "no supported display mode") {
		t.Fatalf("expected a mode selection error; got %v", err)
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	sink := &logSink{logger: logger}
	kfmt.Fprintf(sink, "first %d\nsec", 1)
	kfmt.Fprintf(sink, "ond\npartial")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "first 1") || !strings.Contains(lines[1], "second") {
		t.Fatalf("expected one log entry per complete line; got:\n%s", buf.String())
	}
}

func TestGridTextAfterBanner(t *testing.T) {
	m, _ := defaultMachine(t)
	kmain.PrintBanner(m.cons)

	lines := gridText(readGrid(m))
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "Let's see...") {
		t.Fatalf("expected the last row to start with the banner tail; got %q", last)
	}

	if exp := "Will it scroll ? (10/10)"; !strings.HasPrefix(lines[len(lines)-2], exp) {
		t.Fatalf("expected row %d to start with %q; got %q", len(lines)-2, exp, lines[len(lines)-2])
	}
}

func TestRenderTerminalWithFault(t *testing.T) {
	m, _ := defaultMachine(t)
	m.cons.Print("ok\n")
	kfmt.Report(m.cons, &kernel.Error{Module: "preview", Message: "boom"})

	grid := readGrid(m)
	if grid[0][0].palette != 0 {
		t.Errorf("expected text printed before the fault to use the default palette")
	}

	var found bool
	for _, row := range grid {
		for _, c := range row {
			if c.palette == 1 && c.ch != ' ' {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected the fault report to use the panic palette")
	}

	out := renderTerminal(m)
	if !strings.Contains(out, "[preview] unrecoverable error: boom") {
		t.Fatalf("expected terminal output to contain the fault report; got:\n%s", out)
	}
}

func TestFrameImage(t *testing.T) {
	m, _ := defaultMachine(t)
	m.cons.Print("A")

	specs := []struct {
		opts        exportOptions
		expW, expH  int
		paddingTint bool
	}{
		{exportOptions{Scale: 1}, 1024, 768, false},
		{exportOptions{Scale: 2}, 2048, 1536, false},
		{exportOptions{Scale: 1, ShowPadding: true}, 1056, 768, true},
		{exportOptions{Scale: 0}, 1024, 768, false},
	}

	for specIndex, spec := range specs {
		img := frameImage(m, spec.opts)
		if b := img.Bounds(); b.Dx() != spec.expW || b.Dy() != spec.expH {
			t.Errorf("[spec %d] expected a %dx%d image; got %dx%d", specIndex, spec.expW, spec.expH, b.Dx(), b.Dy())
			continue
		}

		scale := spec.opts.Scale
		if scale < 1 {
			scale = 1
		}

		// pixels must match the framebuffer contents
		for _, pos := range []fb.PixelPosition{{Horizontal: 0, Vertical: 0}, {Horizontal: 3, Vertical: 5}, {Horizontal: 100, Vertical: 700}} {
			exp, _ := m.fb.PixelIfVisible(pos)
			got := img.RGBAAt(int(pos.Horizontal)*scale, int(pos.Vertical)*scale)
			if got.R != exp.R || got.G != exp.G || got.B != exp.B {
				t.Errorf("[spec %d] expected pixel %v at %v; got %v", specIndex, exp, pos, got)
			}
		}

		if spec.paddingTint {
			if got := img.RGBAAt(1040, 10); got.R == 0 && got.B == 0 {
				t.Errorf("[spec %d] expected the padding area to be tinted; got %v", specIndex, got)
			}
		}
	}
}

func TestSavePNG(t *testing.T) {
	m, _ := defaultMachine(t)
	kmain.PrintBanner(m.cons)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := savePNG(m, path, exportOptions{Scale: 1, Grid: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("expected a valid PNG file: %v", err)
	}

	if cfg.Width != 1024 || cfg.Height != 768 {
		t.Fatalf("expected a 1024x768 image; got %dx%d", cfg.Width, cfg.Height)
	}
}
