package export

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// Resize scales img to fit within width x height with CatmullRom filtering,
// preserving the source aspect ratio. A zero width or height inherits the
// source dimension. With crop set, the source is center-cropped to the
// target aspect ratio; otherwise the output shrinks along one axis, or is
// letterboxed with fillColor when one is given.
func Resize(logger *slog.Logger, img image.Image, width, height int, crop bool, fillColor color.Color) image.Image {
	srcBounds := img.Bounds()
	srcW := float64(srcBounds.Dx())
	srcH := float64(srcBounds.Dy())

	destW := float64(width)
	if destW == 0 {
		destW = srcW
	}
	destH := float64(height)
	if destH == 0 {
		destH = srcH
	}

	if srcW == destW && srcH == destH {
		return img
	}

	destSize := image.Rect(0, 0, int(destW), int(destH))
	destBounds := destSize

	srcAR := srcW / srcH
	destAR := destW / destH
	var fill bool
	switch {
	case crop:
		srcBounds = centerCrop(srcBounds, srcW, srcH, destAR)
	case srcAR < destAR:
		dw := destH * srcAR
		if fillColor == nil {
			destSize.Max.X = int(math.Round(dw))
			destBounds.Max.X = destSize.Max.X
		} else if fill = destW > dw; fill {
			inset := int(math.Round((destW - dw) / 2))
			destBounds.Min.X += inset
			destBounds.Max.X -= inset
		}
	case srcAR > destAR:
		dh := destW / srcAR
		if fillColor == nil {
			destSize.Max.Y = int(math.Round(dh))
			destBounds.Max.Y = destSize.Max.Y
		} else if fill = destH > dh; fill {
			inset := int(math.Round((destH - dh) / 2))
			destBounds.Min.Y += inset
			destBounds.Max.Y -= inset
		}
	}

	logger.Info("resizing", "width", destBounds.Dx(), "height", destBounds.Dy())
	dest := image.NewRGBA64(destSize)
	if fill {
		draw.Draw(dest, destSize, image.NewUniform(fillColor), destSize.Min, draw.Over)
	}
	draw.CatmullRom.Scale(dest, destBounds, img, srcBounds, draw.Over, nil)

	return dest
}

// centerCrop narrows src along one axis so its aspect ratio matches destAR.
func centerCrop(src image.Rectangle, srcW, srcH, destAR float64) image.Rectangle {
	srcAR := srcW / srcH
	if srcAR < destAR {
		dh := int(math.Round((srcH - srcW/destAR) / 2))
		src.Min.Y += dh
		src.Max.Y -= dh
	} else if srcAR > destAR {
		dw := int(math.Round((srcW - srcH*destAR) / 2))
		src.Min.X += dw
		src.Max.X -= dw
	}
	return src
}
