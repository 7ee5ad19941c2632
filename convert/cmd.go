// Package convert is the batch conversion command: text pixmaps to binary
// raster images and back, with optional resize and palette steps on the way
// out.
package convert

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"textpix/codec"
	"textpix/export"
	"textpix/palette"
	"textpix/parallel"
	"textpix/pixbuf"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

type OpParams struct {
	Scan string `help:"Source folder to scan" default:"."`
	Dest string `help:"Destination folder for converted images. Relative to scan dir if not absolute." default:"converted"`
}

type CLICmd struct {
	ToImage struct {
		OpParams
		Format    string      `help:"Binary output format" enum:"gif,jpeg,png,bmp,tiff" default:"png"`
		Resize    bool        `help:"Resize image" default:"false" group:"resize"`
		Width     int         `help:"Max width" group:"resize"`
		Height    int         `help:"Max height" group:"resize"`
		Crop      bool        `help:"Crop image to maintain requested aspect ratio" default:"false" group:"resize"`
		Fill      string      `help:"If given and not cropping, will fill background with this color to maintain destination aspect ratio" group:"resize"`
		Palette   string      `help:"Palette name (bw, gray16, vga16) or PAL file in RIFF format to apply" group:"palette"`
		Dither    bool        `help:"Apply dithering" default:"false" group:"palette"`
		FillColor color.Color `kong:"-"`
	} `cmd:"" name:"to-image" help:"Render text pixmaps as binary raster images"`

	ToText struct {
		OpParams
	} `cmd:"" name:"to-text" help:"Rewrite binary raster images as text pixmaps"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var conf *OpParams
	switch kctx.Selected().Name {
	case "to-image":
		conf = &c.ToImage.OpParams
	case "to-text":
		conf = &c.ToText.OpParams
	}

	scanDir, err := filepath.Abs(conf.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", conf.Scan, err)
	}
	conf.Scan = scanDir

	if !filepath.IsAbs(conf.Dest) {
		conf.Dest = filepath.Join(scanDir, conf.Dest)
	}

	if kctx.Selected().Name != "to-image" {
		return nil
	}

	if c.ToImage.Resize {
		switch {
		case c.ToImage.Width < 0:
			return fmt.Errorf("invalid resize width: %d", c.ToImage.Width)
		case c.ToImage.Height < 0:
			return fmt.Errorf("invalid resize height: %d", c.ToImage.Height)
		case c.ToImage.Width == 0 && c.ToImage.Height == 0:
			return fmt.Errorf("no resize dimensions given")
		}
	}

	if !c.ToImage.Crop && c.ToImage.Fill != "" {
		if c.ToImage.FillColor, err = parseHexToColor(c.ToImage.Fill); err != nil {
			return err
		}
	}

	if c.ToImage.Palette != "" {
		if _, err := palette.Load(c.ToImage.Palette); err != nil {
			return err
		}
	}

	return nil
}

func (c *CLICmd) Run(subCmd string, worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	var conf OpParams
	var fileOp func(*slog.Logger, string, string, string) error
	switch subCmd {
	case "to-image":
		conf = c.ToImage.OpParams
		fileOp = c.renderFile
	case "to-text":
		conf = c.ToText.OpParams
		fileOp = c.textFile
	}

	if err := os.MkdirAll(conf.Dest, os.ModeDir); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", conf.Dest, err)
	}

	files, err := os.ReadDir(conf.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", conf.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(conf.Scan, fileName)
				logger := slog.Default().With("file", filePath)

				if err := fileOp(logger, filePath, conf.Dest, fileName); err != nil {
					errCount.Add(1)
					logger.Error("could not convert image", "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

// renderFile decodes one text pixmap and saves it in the binary output
// format, with the optional resize and palette steps in between.
func (c *CLICmd) renderFile(logger *slog.Logger, filePath, destDir, fileName string) error {
	srcFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("could not open pixmap: %w", err)
	}
	defer func() {
		if closeErr := srcFile.Close(); closeErr != nil {
			logger.Error("could not close source file", "error", closeErr)
		}
	}()

	buf, err := codec.Decode(srcFile)
	if err != nil {
		return fmt.Errorf("could not decode pixmap: %w", err)
	}

	img := image.Image(export.ToImage(buf))

	if c.ToImage.Resize {
		img = export.Resize(logger, img, c.ToImage.Width, c.ToImage.Height, c.ToImage.Crop, c.ToImage.FillColor)
	}

	if c.ToImage.Palette != "" {
		palLog := logger.With("palette", c.ToImage.Palette)
		img, err = export.Quantize(palLog, img, c.ToImage.Palette, c.ToImage.Dither)
		if err != nil {
			return fmt.Errorf("could not change image palette: %w", err)
		}
	}

	return export.Save(img, c.ToImage.Format, destDir, export.DestName(fileName, c.ToImage.Format))
}

// textFile decodes one binary raster image and rewrites it as a text pixmap.
func (c *CLICmd) textFile(logger *slog.Logger, filePath, destDir, fileName string) error {
	srcFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("could not open image: %w", err)
	}
	defer func() {
		if closeErr := srcFile.Close(); closeErr != nil {
			logger.Error("could not close source file", "error", closeErr)
		}
	}()

	img, _, err := image.Decode(srcFile)
	if err != nil {
		return fmt.Errorf("could not decode image: %w", err)
	}

	return saveText(export.FromImage(img), destDir, export.DestName(fileName, "ppm"))
}

// saveText writes a pixmap through a temp file renamed into place after a
// complete flush, mirroring export.Save.
func saveText(buf *pixbuf.Buffer, destDir, destName string) (err error) {
	outFile, err := os.CreateTemp(destDir, destName)
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename {
			if defErr := os.Rename(outFile.Name(), filepath.Join(destDir, destName)); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
	}()

	if err = codec.Encode(outFile, buf); err != nil {
		return fmt.Errorf("could not encode pixmap destination %q: %w", destName, err)
	}

	canRename = true
	return err
}

func parseHexToColor(s string) (color.Color, error) {
	var c color.RGBA
	switch len(s) {
	case 4:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		if err != nil {
			return nil, fmt.Errorf("could not read color: %w", err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient fill color fields: %d", n)
		}

		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A = 0xFF
	case 7:
		n, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
		if err != nil {
			return nil, fmt.Errorf("could not read color: %w", err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient fill color fields: %d", n)
		}

		c.A = 0xFF
	default:
		return nil, fmt.Errorf("invalid fill color, should be #RGB or #RRGGBB")
	}

	return c, nil
}
