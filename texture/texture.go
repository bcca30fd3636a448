// Package texture loads image files into RGBA buffers and hands them to a GPU
// uploader behind a single-owner handle.
package texture

import (
	"errors"
	"fmt"
	"log/slog"

	"texload/texel"
)

// Handle identifies an uploaded texture on the uploader's side.
type Handle uint32

// Uploader receives tightly packed RGBA pixels, len(pix) == width*height*4.
type Uploader interface {
	Upload(width, height int, pix []byte) (Handle, error)
	Release(h Handle) error
}

var ErrNoUploader = errors.New("no uploader")

// Texture owns one uploaded texture. Close releases it; further calls are
// no-ops.
type Texture struct {
	width  int
	height int
	handle Handle
	up     Uploader
}

// New uploads img through up.
func New(up Uploader, img *texel.Image) (*Texture, error) {
	if up == nil {
		return nil, ErrNoUploader
	}

	h, err := up.Upload(img.Width(), img.Height(), img.Bytes())
	if err != nil {
		return nil, fmt.Errorf("could not upload %dx%d texture: %w", img.Width(), img.Height(), err)
	}

	return &Texture{
		width:  img.Width(),
		height: img.Height(),
		handle: h,
		up:     up,
	}, nil
}

// Load reads the named file and uploads it. On failure nothing stays uploaded.
func Load(logger *slog.Logger, up Uploader, path string) (*Texture, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("file", path)

	img, err := Read(logger, path)
	if err != nil {
		return nil, err
	}

	tex, err := New(up, img)
	if err != nil {
		return nil, err
	}
	logger.Info("texture loaded", "width", tex.width, "height", tex.height, "handle", tex.handle)
	return tex, nil
}

func (t *Texture) Width() int     { return t.width }
func (t *Texture) Height() int    { return t.height }
func (t *Texture) Handle() Handle { return t.handle }

func (t *Texture) Close() error {
	if t == nil || t.up == nil {
		return nil
	}
	up := t.up
	t.up = nil

	if err := up.Release(t.handle); err != nil {
		return fmt.Errorf("could not release texture %d: %w", t.handle, err)
	}
	return nil
}
