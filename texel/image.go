package texel

import (
	"image"
	"image/color"
	"math"
)

// Color is a non-premultiplied 8-bit RGBA pixel.
type Color struct {
	R, G, B, A uint8
}

func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// ColorOf converts c to a Color. Straight-alpha inputs are copied as is.
func ColorOf(c color.Color) Color {
	switch c := c.(type) {
	case Color:
		return c
	case color.NRGBA:
		return Color{R: c.R, G: c.G, B: c.B, A: c.A}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Image is a row-major grid of pixels, row 0 at the top.
type Image struct {
	pix    []Color
	width  int
	height int
}

var _ image.Image = &Image{}

func New(w, h int) *Image {
	img := &Image{}
	img.Resize(w, h)
	return img
}

// FromPixels returns a w*h image backed by pix, which holds the rows top to
// bottom. It returns nil if len(pix) != w*h.
func FromPixels(w, h int, pix []Color) *Image {
	if w < 0 || h < 0 || len(pix) != w*h {
		return nil
	}
	return &Image{pix: pix, width: w, height: h}
}

// Resize discards the current contents and reallocates w*h zero pixels.
func (img *Image) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	img.pix = make([]Color, w*h)
	img.width = w
	img.height = h
}

func (img *Image) Width() int  { return img.width }
func (img *Image) Height() int { return img.height }

// Pixel returns the cell at (x, y) with both coordinates clamped to the image,
// so reads past the edge return the nearest edge pixel. The image must not be
// empty.
func (img *Image) Pixel(x, y int) *Color {
	x = min(max(x, 0), img.width-1)
	y = min(max(y, 0), img.height-1)
	return &img.pix[y*img.width+x]
}

type rgba [4]float32

func toRGBA(c *Color) rgba {
	return rgba{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

func lerp(a, b rgba, t float32) rgba {
	var c rgba
	for i := range c {
		c[i] = a[i] + (b[i]-a[i])*t
	}
	return c
}

// Fetch samples the image at normalized coordinates with bilinear filtering.
// Coordinates outside [0,1] repeat the edge pixels.
func (img *Image) Fetch(u, v float32) Color {
	fx := u * float32(img.width)
	fy := v * float32(img.height)

	ix, s := math.Modf(float64(fx))
	iy, t := math.Modf(float64(fy))
	x, y := int(ix), int(iy)

	c0 := toRGBA(img.Pixel(x, y))
	c1 := toRGBA(img.Pixel(x+1, y))
	c2 := toRGBA(img.Pixel(x, y+1))
	c3 := toRGBA(img.Pixel(x+1, y+1))

	c := lerp(lerp(c0, c1, float32(s)), lerp(c2, c3, float32(s)), float32(t))

	// channels stay within [0, 255.5] before truncation
	for i := range c {
		c[i] = min(max(c[i], 0), 255.5)
	}

	return Color{
		R: uint8(c[0]),
		G: uint8(c[1]),
		B: uint8(c[2]),
		A: uint8(c[3]),
	}
}

// Bytes flattens the image into tightly packed R, G, B, A bytes.
func (img *Image) Bytes() []byte {
	buf := make([]byte, 0, len(img.pix)*4)
	for _, c := range img.pix {
		buf = append(buf, c.R, c.G, c.B, c.A)
	}
	return buf
}

// NRGBA returns a copy of the image as an *image.NRGBA.
func (img *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    img.Bytes(),
		Stride: 4 * img.width,
		Rect:   image.Rect(0, 0, img.width, img.height),
	}
}

func (img *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}

func (img *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return Color{}
	}
	return img.pix[y*img.width+x]
}

// Set stores c at (x, y); coordinates outside the image are ignored.
func (img *Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return
	}
	img.pix[y*img.width+x] = ColorOf(c)
}
