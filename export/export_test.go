package export

import (
	"image"
	"image/color"
	"testing"

	"textpix/pixbuf"
)

func TestToImageRescalesToFullRange(t *testing.T) {
	buf := pixbuf.Solid(2, 1, pixbuf.Pixel{R: 255, G: 0, B: 128})
	img := ToImage(buf)

	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("Unexpected bounds %v", img.Bounds())
	}

	c := img.RGBA64At(0, 0)
	if c.R != 0xFFFF || c.G != 0 || c.A != 0xFFFF {
		t.Errorf("Expected saturated red, got %v", c)
	}
	// 128/255 of full range, rounded
	if c.B != 0x8080 {
		t.Errorf("Expected B=0x8080, got %#x", c.B)
	}
}

func TestFromImageSamples16Bit(t *testing.T) {
	img := image.NewRGBA64(image.Rect(0, 0, 1, 2))
	img.SetRGBA64(0, 0, color.RGBA64{R: 0x1234, G: 0x5678, B: 0x9ABC, A: 0xFFFF})
	img.SetRGBA64(0, 1, color.RGBA64{A: 0xFFFF})

	buf := FromImage(img)
	if buf.Width() != 1 || buf.Height() != 2 || buf.MaxVal() != 65535 {
		t.Fatalf("Unexpected descriptor %dx%d max %d", buf.Width(), buf.Height(), buf.MaxVal())
	}
	if got := buf.At(0, 0); got != (pixbuf.Pixel{R: 0x1234, G: 0x5678, B: 0x9ABC}) {
		t.Errorf("Unexpected pixel %v", got)
	}
}

func TestImageRoundTripAtFullDepth(t *testing.T) {
	src := pixbuf.Generate(3, 2, 65535, func(row, col int) pixbuf.Pixel {
		return pixbuf.Pixel{R: uint16(row * 10000), G: uint16(col * 20000), B: 65535}
	})

	out := FromImage(ToImage(src))
	if !pixbuf.Equal(src, out) {
		t.Error("65535-depth buffers should survive the image round trip unchanged")
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewRGBA64(image.Rect(3, 5, 5, 6))
	img.SetRGBA64(4, 5, color.RGBA64{R: 0xFFFF, A: 0xFFFF})

	buf := FromImage(img)
	if buf.Width() != 2 || buf.Height() != 1 {
		t.Fatalf("Unexpected dimensions %dx%d", buf.Width(), buf.Height())
	}
	if got := buf.At(0, 1); got.R != 0xFFFF {
		t.Errorf("Bounds offset not honored, got %v", got)
	}
}

func TestDestName(t *testing.T) {
	if got := DestName("picture.ppm", "png"); got != "picture.png" {
		t.Errorf("Expected picture.png, got %q", got)
	}
	if got := DestName("noext", "bmp"); got != "noext.bmp" {
		t.Errorf("Expected noext.bmp, got %q", got)
	}
}
