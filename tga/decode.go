package tga

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"texload/texel"
)

// DecodeConfig reads the header and returns the source dimensions.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	if h.BitsPerPixel != 32 {
		return image.Config{}, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedPixelFormat, h.BitsPerPixel)
	}
	return image.Config{
		Width:      int(h.Width),
		Height:     int(h.Height),
		ColorModel: color.NRGBAModel,
	}, nil
}

// DecodeSource decodes the image at its stored resolution, with row 0 at the
// top regardless of the storage order.
func DecodeSource(r io.Reader) (*texel.Image, error) {
	br := bufio.NewReader(r)

	h, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}
	if h.BitsPerPixel != 32 {
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedPixelFormat, h.BitsPerPixel)
	}

	stream := NewPixelStream(br, h.Compressed())
	width, height := int(h.Width), int(h.Height)
	n := width * height

	// pixels are kept in disk order as they arrive; the buffer only grows
	// with data actually present in the stream.
	pix := make([]texel.Color, 0, min(n, initialPixels))
	for i := range n {
		c, err := stream.Read()
		if err != nil {
			y := i / width
			if !h.TopToBottom() {
				y = height - 1 - y
			}
			return nil, fmt.Errorf("could not read pixel (%d, %d): %w", i%width, y, err)
		}
		pix = append(pix, c)
	}

	if !h.TopToBottom() {
		flipRows(pix, width, height)
	}
	return texel.FromPixels(width, height, pix), nil
}

func flipRows(pix []texel.Color, width, height int) {
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*width : (top+1)*width]
		b := pix[bottom*width : (bottom+1)*width]
		for x := range a {
			a[x], b[x] = b[x], a[x]
		}
	}
}

// Decode decodes the image and resamples it to power-of-two dimensions.
func Decode(r io.Reader) (*texel.Image, error) {
	src, err := DecodeSource(r)
	if err != nil {
		return nil, err
	}
	return texel.Align(src), nil
}

// Load opens and decodes the named file; see Decode.
func Load(path string) (*texel.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("could not open file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close file", "name", path, "error", closeErr)
		}
	}()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return img, nil
}

// DecodeFile decodes the named file into a power-of-two sized, tightly packed
// RGBA buffer ready for upload.
func DecodeFile(path string) (width, height int, pix []byte, err error) {
	img, err := Load(path)
	if err != nil {
		return 0, 0, nil, err
	}
	return img.Width(), img.Height(), img.Bytes(), nil
}
