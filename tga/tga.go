// Package tga reads and writes 32-bit Truevision TGA images, raw or run-length
// encoded, and prepares them as power-of-two RGBA textures.
package tga

import "errors"

const (
	// HeaderSize is the size of the fixed TGA header in bytes.
	HeaderSize = 18

	typeRLE       = 1 << 3
	topToBottom   = 1 << 5
	rlePacket     = 0x80
	maxPacketSize = 128

	// initialPixels caps the decode buffer allocated before any pixel is read.
	initialPixels = 1 << 16
)

// Image types as stored in the header.
const (
	TypeNone           = 0
	TypeColorMapped    = 1
	TypeTrueColor      = 2
	TypeGrayscale      = 3
	TypeRLEColorMapped = 9
	TypeRLETrueColor   = 10
	TypeRLEGrayscale   = 11
)

var (
	ErrFileNotFound           = errors.New("file not found")
	ErrTruncatedHeader        = errors.New("truncated header")
	ErrUnsupportedPixelFormat = errors.New("unsupported pixel format: only 32-bit BGRA is supported")
	ErrTruncatedPixelData     = errors.New("truncated pixel data")
	ErrImageTooLarge          = errors.New("image too large: width and height must fit in 16 bits")
)

var typeNames = map[uint8]string{
	TypeNone:           "no image data",
	TypeColorMapped:    "uncompressed color-mapped",
	TypeTrueColor:      "uncompressed true-color",
	TypeGrayscale:      "uncompressed grayscale",
	TypeRLEColorMapped: "run-length encoded color-mapped",
	TypeRLETrueColor:   "run-length encoded true-color",
	TypeRLEGrayscale:   "run-length encoded grayscale",
}
