package tga

import (
	"errors"
	"fmt"
	"io"

	"texload/texel"
)

// PixelStream yields one decoded pixel per call.
type PixelStream interface {
	Read() (texel.Color, error)
}

// NewPixelStream returns a run-length decoding stream when compressed is set,
// a raw stream otherwise.
func NewPixelStream(r io.Reader, compressed bool) PixelStream {
	if compressed {
		return &rleStream{r: r}
	}
	return &rawStream{r: r}
}

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %w", ErrTruncatedPixelData, err)
		}
		return fmt.Errorf("could not read pixel data: %w", err)
	}
	return nil
}

// readPixel reads one BGRA pixel.
func readPixel(r io.Reader, buf *[4]byte) (texel.Color, error) {
	if err := readFull(r, buf[:]); err != nil {
		return texel.Color{}, err
	}
	return texel.Color{R: buf[2], G: buf[1], B: buf[0], A: buf[3]}, nil
}

type rawStream struct {
	r   io.Reader
	buf [4]byte
}

func (s *rawStream) Read() (texel.Color, error) {
	return readPixel(s.r, &s.buf)
}

type packetMode uint8

const (
	modeUnknown packetMode = iota
	modeCompressed
	modeUncompressed
)

type rleStream struct {
	r     io.Reader
	buf   [4]byte
	count int
	mode  packetMode
	color texel.Color
}

func (s *rleStream) Read() (texel.Color, error) {
	if s.count == 0 {
		if err := readFull(s.r, s.buf[:1]); err != nil {
			return texel.Color{}, err
		}
		ctrl := s.buf[0]

		if ctrl&rlePacket != 0 {
			s.mode = modeCompressed
			c, err := readPixel(s.r, &s.buf)
			if err != nil {
				return texel.Color{}, err
			}
			s.color = c
		} else {
			s.mode = modeUncompressed
		}
		s.count = int(ctrl&^rlePacket) + 1
	}

	if s.mode == modeUncompressed {
		c, err := readPixel(s.r, &s.buf)
		if err != nil {
			return texel.Color{}, err
		}
		s.color = c
	}

	s.count--
	return s.color, nil
}
