package convert

import (
	"bufio"
	"errors"
	"fmt"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"texload/texel"
	"texload/tga"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// destPath returns the output path for srcName in destDir with the extension
// replaced by format.
func destPath(destDir, srcName, format string) string {
	oldExt := filepath.Ext(srcName)
	return filepath.Join(destDir, fmt.Sprintf("%s.%s", srcName[:len(srcName)-len(oldExt)], format))
}

func checkDest(dest string, force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(dest); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
		}
		return nil
	}
	return fmt.Errorf("destination file already exists: %q", dest)
}

type encodeFunc func(w io.Writer, img *texel.Image, rle bool) error

var encoders = map[string]encodeFunc{
	"gif": func(w io.Writer, img *texel.Image, _ bool) error {
		return gif.Encode(w, img.NRGBA(), nil)
	},
	"jpeg": func(w io.Writer, img *texel.Image, _ bool) error {
		return jpeg.Encode(w, img.NRGBA(), &jpeg.Options{Quality: 100})
	},
	"png": func(w io.Writer, img *texel.Image, _ bool) error {
		enc := png.Encoder{CompressionLevel: png.BestCompression, BufferPool: pngBuffers}
		return enc.Encode(w, img.NRGBA())
	},
	"bmp": func(w io.Writer, img *texel.Image, _ bool) error {
		return bmp.Encode(w, img.NRGBA())
	},
	"tiff": func(w io.Writer, img *texel.Image, _ bool) error {
		return tiff.Encode(w, img.NRGBA(), &tiff.Options{Compression: tiff.Deflate})
	},
	"tga": func(w io.Writer, img *texel.Image, rle bool) error {
		return tga.Encode(w, img, &tga.Options{RLE: rle, TopToBottom: true})
	},
}

// save encodes img to dest through a temporary file in the same folder, so a
// failed encode never leaves a partial file under the final name.
func save(img *texel.Image, format, dest string, rle bool) (err error) {
	encode, ok := encoders[format]
	if !ok {
		return fmt.Errorf("unsupported output format: %s", format)
	}
	destName := filepath.Base(dest)

	tmp, err := os.CreateTemp(filepath.Dir(dest), destName+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	defer func() {
		if syncErr := tmp.Sync(); syncErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, syncErr)
		}
		if closeErr := tmp.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, closeErr)
		}
		if err == nil {
			if renameErr := os.Rename(tmp.Name(), dest); renameErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, renameErr)
			}
		}
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = encode(bw, img, rle); err != nil {
		return fmt.Errorf("could not encode %s destination %q: %w", format, destName, err)
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("could not write destination %q: %w", destName, err)
	}
	return nil
}

type bufferPool sync.Pool

func (p *bufferPool) Get() *png.EncoderBuffer {
	return (*sync.Pool)(p).Get().(*png.EncoderBuffer)
}

func (p *bufferPool) Put(buf *png.EncoderBuffer) {
	(*sync.Pool)(p).Put(buf)
}

var pngBuffers = &bufferPool{
	New: func() any { return &png.EncoderBuffer{} },
}
