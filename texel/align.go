package texel

// NextPowerOf2 rounds x up to the nearest power of two. Zero stays zero.
func NextPowerOf2(x uint32) int {
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x++
	return int(x)
}

// Align resamples src to the next power-of-two width and height. Every cell
// is fetched bilinearly, even when src is already power-of-two sized.
func Align(src *Image) *Image {
	w := NextPowerOf2(uint32(src.width))
	h := NextPowerOf2(uint32(src.height))

	dst := New(w, h)
	for y := range h {
		for x := range w {
			u := float32(x) / float32(w)
			v := float32(y) / float32(h)
			dst.pix[y*w+x] = src.Fetch(u, v)
		}
	}
	return dst
}
