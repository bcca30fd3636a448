package inspect

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"texload/texel"
	"texload/texture"
	"texload/tga"
)

type CLICmd struct {
	Paths []string `arg:"" optional:"" help:"TGA files or folders containing TGA files" type:"path" default:"."`
}

func (c *CLICmd) Run() error {
	var files []string
	for _, path := range c.Paths {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%w: %w", tga.ErrFileNotFound, err)
			}
			return fmt.Errorf("invalid path %q: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return fmt.Errorf("unable to read folder %q: %w", path, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && texture.IsTGA(entry.Name()) {
				files = append(files, filepath.Join(path, entry.Name()))
			}
		}
	}

	var errCount int
	for _, name := range files {
		h, err := readHeader(name)
		if err != nil {
			errCount++
			slog.Error("could not read header", "file", name, "error", err)
			continue
		}
		slog.Info("header", append([]any{"file", name}, attrs(h)...)...)
	}

	slog.Info("stats", "headers", len(files)-errCount, "errors", errCount, "total", len(files))

	if errCount > 0 {
		return fmt.Errorf("error reading %d headers", errCount)
	}
	return nil
}

func readHeader(name string) (tga.Header, error) {
	f, err := os.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return tga.Header{}, fmt.Errorf("%w: %w", tga.ErrFileNotFound, err)
		}
		return tga.Header{}, fmt.Errorf("could not open file %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close file", "name", name, "error", closeErr)
		}
	}()

	return tga.ReadHeader(f)
}

// attrs lists the header fields and the values derived from them.
func attrs(h tga.Header) []any {
	return []any{
		"type", h.TypeName(),
		"imageType", h.ImageType,
		"idLength", h.IDLength,
		"colorMapType", h.ColorMapType,
		"colorMapOrigin", h.ColorMapOrigin,
		"colorMapLength", h.ColorMapLength,
		"colorMapDepth", h.ColorMapDepth,
		"x", h.XOrigin,
		"y", h.YOrigin,
		"width", h.Width,
		"height", h.Height,
		"bpp", h.BitsPerPixel,
		"descriptor", h.Descriptor,
		"compressed", h.Compressed(),
		"topToBottom", h.TopToBottom(),
		"supported", h.BitsPerPixel == 32,
		"alignedWidth", texel.NextPowerOf2(uint32(h.Width)),
		"alignedHeight", texel.NextPowerOf2(uint32(h.Height)),
	}
}
