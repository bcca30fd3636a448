package tga

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"math"

	"texload/texel"
)

// Options control how Encode lays out the file.
type Options struct {
	// RLE enables run-length encoding of the pixel data.
	RLE bool
	// TopToBottom stores the top row first instead of the bottom row.
	TopToBottom bool
}

// Encode writes img as a 32-bit BGRA TGA. A nil o writes an uncompressed,
// bottom-up file.
func Encode(w io.Writer, img image.Image, o *Options) error {
	if o == nil {
		o = &Options{}
	}

	b := img.Bounds()
	if b.Dx() > math.MaxUint16 || b.Dy() > math.MaxUint16 {
		return fmt.Errorf("%w: %dx%d", ErrImageTooLarge, b.Dx(), b.Dy())
	}

	h := Header{
		ImageType:    TypeTrueColor,
		Width:        uint16(b.Dx()),
		Height:       uint16(b.Dy()),
		BitsPerPixel: 32,
		Descriptor:   8, // alpha bits
	}
	if o.RLE {
		h.ImageType = TypeRLETrueColor
	}
	if o.TopToBottom {
		h.Descriptor |= topToBottom
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}

	px := make([][4]byte, 0, b.Dx()*b.Dy())
	appendRow := func(y int) {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := texel.ColorOf(img.At(x, y))
			px = append(px, [4]byte{c.B, c.G, c.R, c.A})
		}
	}
	if o.TopToBottom {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			appendRow(y)
		}
	} else {
		for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
			appendRow(y)
		}
	}

	var err error
	if o.RLE {
		err = writeRLE(bw, px)
	} else {
		err = writeRaw(bw, px)
	}
	if err != nil {
		return fmt.Errorf("could not write pixel data: %w", err)
	}

	return bw.Flush()
}

func writeRaw(w *bufio.Writer, px [][4]byte) error {
	for _, p := range px {
		if _, err := w.Write(p[:]); err != nil {
			return err
		}
	}
	return nil
}

// writeRLE packs repeated pixels into compressed packets and everything else
// into uncompressed packets, at most maxPacketSize pixels each.
func writeRLE(w *bufio.Writer, px [][4]byte) error {
	for i := 0; i < len(px); {
		run := 1
		for i+run < len(px) && run < maxPacketSize && px[i+run] == px[i] {
			run++
		}
		if run > 1 {
			if err := w.WriteByte(rlePacket | byte(run-1)); err != nil {
				return err
			}
			if _, err := w.Write(px[i][:]); err != nil {
				return err
			}
			i += run
			continue
		}

		// extend the literal until the next repeat starts
		lit := 1
		for i+lit < len(px) && lit < maxPacketSize &&
			!(i+lit+1 < len(px) && px[i+lit] == px[i+lit+1]) {
			lit++
		}
		if err := w.WriteByte(byte(lit - 1)); err != nil {
			return err
		}
		for _, p := range px[i : i+lit] {
			if _, err := w.Write(p[:]); err != nil {
				return err
			}
		}
		i += lit
	}
	return nil
}
