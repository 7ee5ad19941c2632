// Package palette resolves color palettes for the quantize step, either
// built-in named sets or RIFF PAL files.
package palette

import (
	"fmt"
	"image/color"
	"os"
)

var builtin = map[string]color.Palette{
	"bw": {
		color.RGBA{0x00, 0x00, 0x00, 0xFF},
		color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	},
	"gray16": grayRamp(16),
	"vga16": {
		color.RGBA{0x00, 0x00, 0x00, 0xFF},
		color.RGBA{0x00, 0x00, 0xAA, 0xFF},
		color.RGBA{0x00, 0xAA, 0x00, 0xFF},
		color.RGBA{0x00, 0xAA, 0xAA, 0xFF},
		color.RGBA{0xAA, 0x00, 0x00, 0xFF},
		color.RGBA{0xAA, 0x00, 0xAA, 0xFF},
		color.RGBA{0xAA, 0x55, 0x00, 0xFF},
		color.RGBA{0xAA, 0xAA, 0xAA, 0xFF},
		color.RGBA{0x55, 0x55, 0x55, 0xFF},
		color.RGBA{0x55, 0x55, 0xFF, 0xFF},
		color.RGBA{0x55, 0xFF, 0x55, 0xFF},
		color.RGBA{0x55, 0xFF, 0xFF, 0xFF},
		color.RGBA{0xFF, 0x55, 0x55, 0xFF},
		color.RGBA{0xFF, 0x55, 0xFF, 0xFF},
		color.RGBA{0xFF, 0xFF, 0x55, 0xFF},
		color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	},
}

// Load resolves name as a built-in palette (bw, gray16, vga16) or, failing
// that, as the path of a RIFF PAL file. Files holding several palettes are
// merged into one.
func Load(name string) (color.Palette, error) {
	if pal, ok := builtin[name]; ok {
		return pal, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q: %w", name, err)
	}
	defer f.Close()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette file %q: %w", name, err)
	}

	var merged color.Palette
	for _, pal := range pals {
		merged = append(merged, pal...)
	}
	if len(merged) == 0 {
		return nil, fmt.Errorf("palette file %q holds no colors", name)
	}
	return merged, nil
}

func grayRamp(n int) color.Palette {
	pal := make(color.Palette, n)
	for i := 0; i < n; i++ {
		v := uint8(i * 255 / (n - 1))
		pal[i] = color.RGBA{v, v, v, 0xFF}
	}
	return pal
}
