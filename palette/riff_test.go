package palette

import (
	"bytes"
	"image/color"
	"testing"
)

func TestRIFFRoundTrip(t *testing.T) {
	src := []color.Palette{
		{
			color.RGBA{0x11, 0x22, 0x33, 0xFF},
			color.RGBA{0xAA, 0xBB, 0xCC, 0xFF},
		},
		{
			color.RGBA{0x00, 0x00, 0x00, 0xFF},
		},
	}

	var buf bytes.Buffer
	if _, err := WriteTo(&buf, src); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	out, err := ReadFrom(&buf)
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}

	if len(out) != len(src) {
		t.Fatalf("Expected %d palettes, got %d", len(src), len(out))
	}
	for i, pal := range src {
		if len(out[i]) != len(pal) {
			t.Fatalf("Palette %d: expected %d colors, got %d", i, len(pal), len(out[i]))
		}
		for j, col := range pal {
			if out[i][j] != col {
				t.Errorf("Palette %d color %d: expected %v, got %v", i, j, col, out[i][j])
			}
		}
	}
}

func TestReadFromRejectsNonPAL(t *testing.T) {
	if _, err := ReadFrom(bytes.NewReader([]byte("RIFF\x04\x00\x00\x00WAVE"))); err == nil {
		t.Error("Expected error for non-PAL RIFF content")
	}
	if _, err := ReadFrom(bytes.NewReader([]byte("not riff at all"))); err == nil {
		t.Error("Expected error for non-RIFF input")
	}
}

func TestLoadBuiltins(t *testing.T) {
	for name, want := range map[string]int{"bw": 2, "gray16": 16, "vga16": 16} {
		pal, err := Load(name)
		if err != nil {
			t.Errorf("Load(%q) failed: %v", name, err)
			continue
		}
		if len(pal) != want {
			t.Errorf("Load(%q): expected %d colors, got %d", name, want, len(pal))
		}
	}

	if _, err := Load("no-such-palette"); err == nil {
		t.Error("Expected error for unknown palette name")
	}
}
