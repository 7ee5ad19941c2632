package export

import (
	"image"
	"log/slog"

	"textpix/palette"

	"golang.org/x/image/draw"
)

// Quantize remaps img onto the named palette (a built-in name or a RIFF PAL
// file path), with Floyd-Steinberg error diffusion when dither is set.
func Quantize(logger *slog.Logger, img image.Image, palName string, dither bool) (image.Image, error) {
	pal, err := palette.Load(palName)
	if err != nil {
		return nil, err
	}

	logger.Info("applying palette", "colors", len(pal))
	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx(), sr.Dy())
	dest := image.NewPaletted(dr, pal)

	if dither {
		draw.FloydSteinberg.Draw(dest, dr, img, sr.Min)
	} else {
		draw.Draw(dest, dr, img, sr.Min, draw.Src)
	}
	return dest, nil
}
