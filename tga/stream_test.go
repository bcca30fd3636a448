package tga

import (
	"bytes"
	"errors"
	"testing"

	"texload/texel"
)

func readAll(t *testing.T, s PixelStream, n int) []texel.Color {
	t.Helper()
	cs := make([]texel.Color, 0, n)
	for i := range n {
		c, err := s.Read()
		if err != nil {
			t.Fatalf("read %d/%d failed: %v", i, n, err)
		}
		cs = append(cs, c)
	}
	return cs
}

func TestRawStream(t *testing.T) {
	// given
	data := []byte{30, 20, 10, 40, 3, 2, 1, 0, 9, 9}
	s := NewPixelStream(bytes.NewReader(data), false)

	// when
	cs := readAll(t, s, 2)

	// then
	want := []texel.Color{{R: 10, G: 20, B: 30, A: 40}, {R: 1, G: 2, B: 3, A: 0}}
	for i := range want {
		if cs[i] != want[i] {
			t.Fatalf("invalid pixel %d: expected %+v, actual %+v", i, want[i], cs[i])
		}
	}
	if _, err := s.Read(); !errors.Is(err, ErrTruncatedPixelData) {
		t.Fatalf("expected truncated pixel data, actual %v", err)
	}
}

func TestRLEStream(t *testing.T) {
	// given
	base := texel.Color{R: 10, G: 20, B: 30, A: 40}
	a := texel.Color{R: 200, G: 0, B: 0, A: 255}
	b := texel.Color{R: 0, G: 200, B: 0, A: 255}
	c := texel.Color{R: 0, G: 0, B: 200, A: 128}

	var data []byte
	data = append(data, 0x80|4)
	data = append(data, bgra(base)...)
	data = append(data, 2)
	data = append(data, bgra(a, b, c)...)
	s := NewPixelStream(bytes.NewReader(data), true)

	// when
	cs := readAll(t, s, 8)

	// then
	want := []texel.Color{base, base, base, base, base, a, b, c}
	for i := range want {
		if cs[i] != want[i] {
			t.Fatalf("invalid pixel %d: expected %+v, actual %+v", i, want[i], cs[i])
		}
	}
	if _, err := s.Read(); !errors.Is(err, ErrTruncatedPixelData) {
		t.Fatalf("expected truncated pixel data after the last packet, actual %v", err)
	}
}

func TestRLEStreamRunLengths(t *testing.T) {
	gray := func(v uint8) texel.Color { return texel.Color{R: v, G: v, B: v, A: 255} }

	tests := []struct {
		name string
		ctrl byte
		data []texel.Color
		want []texel.Color
	}{
		{"compressed 1", 0x80, []texel.Color{gray(1)}, []texel.Color{gray(1)}},
		{"compressed 128", 0xFF, []texel.Color{gray(2)}, nil},
		{"uncompressed 1", 0x00, []texel.Color{gray(3)}, []texel.Color{gray(3)}},
		{"uncompressed 128", 0x7F, gradient(128, 1), gradient(128, 1)},
	}
	tests[1].want = make([]texel.Color, 128)
	for i := range tests[1].want {
		tests[1].want[i] = gray(2)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given: the packet followed by a single-pixel compressed packet as a sentinel
			sentinel := gray(99)
			data := append([]byte{tt.ctrl}, bgra(tt.data...)...)
			data = append(data, 0x80)
			data = append(data, bgra(sentinel)...)
			s := NewPixelStream(bytes.NewReader(data), true)

			// when
			cs := readAll(t, s, len(tt.want)+1)

			// then
			for i, w := range tt.want {
				if cs[i] != w {
					t.Fatalf("invalid pixel %d: expected %+v, actual %+v", i, w, cs[i])
				}
			}
			if cs[len(tt.want)] != sentinel {
				t.Fatalf("packet length mismatch: expected sentinel after %d pixels, actual %+v",
					len(tt.want), cs[len(tt.want)])
			}
		})
	}
}

func TestRLEStreamTruncated(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		reads int
	}{
		{"no control byte", nil, 0},
		{"short compressed pixel", []byte{0x81, 1, 2}, 0},
		{"short uncompressed run", []byte{0x02, 1, 2, 3, 4, 5}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPixelStream(bytes.NewReader(tt.data), true)
			readAll(t, s, tt.reads)

			if _, err := s.Read(); !errors.Is(err, ErrTruncatedPixelData) {
				t.Fatalf("expected truncated pixel data, actual %v", err)
			}
		})
	}
}
