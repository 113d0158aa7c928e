package main

import (
	"strings"
	"testing"
)

func TestDescribeModes(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}

	modes, err := cfg.FirmwareModes()
	if err != nil {
		t.Fatal(err)
	}

	rows := describeModes(modes)

	exp := []struct {
		status   string
		selected bool
	}{
		{"usable", false},
		{"usable", false},
		{"selected", true},
		{"unsupported resolution", false},
		{"no direct framebuffer access", false},
	}

	if len(rows) != len(exp) {
		t.Fatalf("expected %d rows; got %d", len(exp), len(rows))
	}

	for specIndex, spec := range exp {
		if rows[specIndex].status != spec.status || rows[specIndex].selected != spec.selected {
			t.Errorf("[spec %d] expected status %q (selected: %t); got %q (selected: %t)",
				specIndex, spec.status, spec.selected, rows[specIndex].status, rows[specIndex].selected)
		}
	}

	out := formatModes(rows)
	for _, exp := range []string{"Resolution", "1024x768", "1056", "bitmask", "selected"} {
		if !strings.Contains(out, exp) {
			t.Errorf("expected table to contain %q; got:\n%s", exp, out)
		}
	}
}

func TestDescribeModesNoneUsable(t *testing.T) {
	rows := describeModes(nil)
	if len(rows) != 0 {
		t.Fatalf("expected no rows; got %d", len(rows))
	}
}
