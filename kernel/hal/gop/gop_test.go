package gop

import "testing"

func TestDirectColor(t *testing.T) {
	specs := []struct {
		format PixelFormat
		exp    bool
		expStr string
	}{
		{PixelFormatRGB, true, "rgb"},
		{PixelFormatBGR, true, "bgr"},
		{PixelFormatBitmask, false, "bitmask"},
		{PixelFormatBltOnly, false, "blt-only"},
		{PixelFormat(42), false, "unknown"},
	}

	for specIndex, spec := range specs {
		m := ModeInfo{Format: spec.format}
		if got := m.DirectColor(); got != spec.exp {
			t.Errorf("[spec %d] expected DirectColor() to return %t; got %t", specIndex, spec.exp, got)
		}

		if got := spec.format.String(); got != spec.expStr {
			t.Errorf("[spec %d] expected format string %q; got %q", specIndex, spec.expStr, got)
		}
	}
}
