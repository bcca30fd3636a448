package tga

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Header is the fixed 18-byte TGA header. Field order and sizes match the
// file layout; binary.Read fills it without padding.
type Header struct {
	IDLength       uint8
	ColorMapType   uint8
	ImageType      uint8
	ColorMapOrigin uint16
	ColorMapLength uint16
	ColorMapDepth  uint8
	XOrigin        uint16
	YOrigin        uint16
	Width          uint16
	Height         uint16
	BitsPerPixel   uint8
	Descriptor     uint8
}

// ReadHeader reads exactly HeaderSize bytes from r.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, fmt.Errorf("%w: %w", ErrTruncatedHeader, err)
		}
		return Header{}, fmt.Errorf("could not read header: %w", err)
	}
	return h, nil
}

// Compressed reports whether the pixel data is run-length encoded.
func (h Header) Compressed() bool {
	return h.ImageType&typeRLE != 0
}

// TopToBottom reports whether rows are stored starting with the top row.
func (h Header) TopToBottom() bool {
	return h.Descriptor&topToBottom != 0
}

func (h Header) TypeName() string {
	if name, ok := typeNames[h.ImageType]; ok {
		return name
	}
	return fmt.Sprintf("unknown (%d)", h.ImageType)
}
