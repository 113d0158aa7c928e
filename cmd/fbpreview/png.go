package main

import (
	"image"
	"image/color"

	gg "github.com/fogleman/gg"

	"fbcon/device/video/console/font"
)

// exportOptions controls how the framebuffer is turned into an image.
type exportOptions struct {
	Scale       int
	ShowPadding bool
	Grid        bool
}

// frameImage copies the framebuffer contents into an RGBA image. Every pixel
// becomes a Scale x Scale block. With ShowPadding the image spans the full
// stride and the padding area is tinted.
func frameImage(m *machine, opts exportOptions) *image.RGBA {
	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}

	width, height := m.mode.Width, m.mode.Height
	if opts.ShowPadding {
		width = m.mode.Stride
	}

	img := image.NewRGBA(image.Rect(0, 0, int(width)*scale, int(height)*scale))
	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width; x++ {
			p := m.rawPixel(x, y)
			c := color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetRGBA(int(x)*scale+dx, int(y)*scale+dy, c)
				}
			}
		}
	}

	dc := gg.NewContextForRGBA(img)
	if opts.Grid {
		drawCellGrid(dc, m, float64(scale))
	}
	if opts.ShowPadding && m.mode.Stride > m.mode.Width {
		dc.SetRGBA(1, 0, 1, 0.35)
		dc.DrawRectangle(
			float64(m.mode.Width)*float64(scale), 0,
			float64(m.mode.Stride-m.mode.Width)*float64(scale), float64(height)*float64(scale),
		)
		dc.Fill()
	}

	return img
}

// drawCellGrid outlines the text cells of the console.
func drawCellGrid(dc *gg.Context, m *machine, scale float64) {
	cols, rows := m.cons.CharBuffer().Dimensions()
	gridW := float64(cols*font.GlyphWidth) * scale
	gridH := float64(rows*font.GlyphHeight) * scale

	dc.SetRGBA(0, 1, 0, 0.4)
	dc.SetLineWidth(1)
	for col := uint32(0); col <= cols; col++ {
		x := float64(col*font.GlyphWidth)*scale + 0.5
		dc.DrawLine(x, 0, x, gridH)
	}
	for row := uint32(0); row <= rows; row++ {
		y := float64(row*font.GlyphHeight)*scale + 0.5
		dc.DrawLine(0, y, gridW, y)
	}
	dc.Stroke()
}

// savePNG writes the framebuffer contents to path.
func savePNG(m *machine, path string, opts exportOptions) error {
	return gg.NewContextForRGBA(frameImage(m, opts)).SavePNG(path)
}
