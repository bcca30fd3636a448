package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"texload/texel"
	"texload/tga"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Extensions lists the file extensions Read can decode.
var Extensions = []string{".tga", ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

func IsTexture(name string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(name)))
}

func IsTGA(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".tga")
}

// Read decodes the named file. TGA files are resampled to power-of-two
// dimensions; every other format is returned at its stored size.
func Read(logger *slog.Logger, path string) (*texel.Image, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if IsTGA(path) {
		img, err := tga.Load(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("decoded tga", "width", img.Width(), "height", img.Height())
		return img, nil
	}

	return readImage(logger, path)
}

func readImage(logger *slog.Logger, path string) (*texel.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", tga.ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("could not open file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logger.Error("could not close file", "name", path, "error", closeErr)
		}
	}()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	logger.Debug("decoded image", "format", format, "width", src.Bounds().Dx(), "height", src.Bounds().Dy())

	return FromImage(src), nil
}

// FromImage copies src into a straight-alpha texel image.
func FromImage(src image.Image) *texel.Image {
	n, ok := src.(*image.NRGBA)
	if !ok {
		sb := src.Bounds()
		n = image.NewNRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()))
		draw.Draw(n, n.Bounds(), src, sb.Min, draw.Src)
	}

	b := n.Bounds()
	dst := texel.New(b.Dx(), b.Dy())
	for y := range b.Dy() {
		for x := range b.Dx() {
			*dst.Pixel(x, y) = texel.ColorOf(n.NRGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
