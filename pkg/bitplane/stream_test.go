package bitplane

import (
	"bytes"
	"errors"
	"testing"
)

func newTestGrid(t *testing.T, h, w, c int) *Grid {
	t.Helper()
	g, err := NewGrid(h, w, c)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	return g
}

func TestNewGrid_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name    string
		h, w, c int
	}{
		{"zero height", 0, 4, 3},
		{"zero width", 4, 0, 3},
		{"zero channels", 4, 4, 0},
		{"negative", -1, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGrid(tt.h, tt.w, tt.c); !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("NewGrid() error = %v, want %v", err, ErrInvalidDimensions)
			}
		})
	}
}

func TestGrid_Capacity(t *testing.T) {
	g := newTestGrid(t, 4, 4, 3)
	if got := g.Capacity(); got != 384 {
		t.Errorf("Capacity() = %d, want 384", got)
	}
}

func TestStream_WriteBitTouchesOnlyAddressedBit(t *testing.T) {
	g := newTestGrid(t, 1, 2, 3)
	for i := range g.Pix {
		g.Pix[i] = 0xAA
	}

	s := NewStream(g)
	if err := s.WriteBit(1); err != nil {
		t.Fatalf("WriteBit() error = %v", err)
	}
	if err := s.WriteBit(0); err != nil {
		t.Fatalf("WriteBit() error = %v", err)
	}

	if g.Pix[0] != 0xAB {
		t.Errorf("Pix[0] = %#x, want 0xab", g.Pix[0])
	}
	if g.Pix[1] != 0xAA {
		t.Errorf("Pix[1] = %#x, want 0xaa", g.Pix[1])
	}
	for i := 2; i < len(g.Pix); i++ {
		if g.Pix[i] != 0xAA {
			t.Errorf("Pix[%d] = %#x, should be untouched", i, g.Pix[i])
		}
	}
}

func TestStream_WriteUintMSBFirst(t *testing.T) {
	g := newTestGrid(t, 1, 8, 1)
	s := NewStream(g)

	if err := s.WriteUint(0x81, 8); err != nil {
		t.Fatalf("WriteUint() error = %v", err)
	}

	want := []uint8{1, 0, 0, 0, 0, 0, 0, 1}
	if !bytes.Equal(g.Pix, want) {
		t.Errorf("Pix = %v, want %v", g.Pix, want)
	}
}

func TestStream_WriteUintTooLarge(t *testing.T) {
	g := newTestGrid(t, 4, 4, 3)
	s := NewStream(g)

	if err := s.WriteUint(256, 8); !errors.Is(err, ErrValueTooLarge) {
		t.Errorf("WriteUint(256, 8) error = %v, want %v", err, ErrValueTooLarge)
	}
	if s.Cursor() != (Cursor{}) {
		t.Errorf("cursor moved after rejected write: %+v", s.Cursor())
	}
	if err := s.WriteUint(^uint64(0), 64); err != nil {
		t.Errorf("WriteUint(max, 64) error = %v", err)
	}
}

func TestStream_RoundTrip(t *testing.T) {
	g := newTestGrid(t, 4, 4, 3)
	data := []byte("hello, planes")

	w := NewStream(g)
	if err := w.WriteUint(uint64(len(data)), 16); err != nil {
		t.Fatalf("WriteUint() error = %v", err)
	}
	if err := w.WriteBytes(data); err != nil {
		t.Fatalf("WriteBytes() error = %v", err)
	}

	r := NewStream(g)
	n, err := r.ReadUint(16)
	if err != nil {
		t.Fatalf("ReadUint() error = %v", err)
	}
	got, err := r.ReadBytes(int(n))
	if err != nil {
		t.Fatalf("ReadBytes() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("ReadBytes() = %q, want %q", got, data)
	}
	if r.Cursor() != w.Cursor() {
		t.Errorf("reader ended at %+v, writer at %+v", r.Cursor(), w.Cursor())
	}
}

func TestStream_SpansPlanes(t *testing.T) {
	g := newTestGrid(t, 1, 1, 3)
	s := NewStream(g)

	// 3 samples: bits 0..2 land on plane 0, bits 3..5 on plane 1.
	for _, b := range []uint8{1, 1, 1, 1, 0, 1} {
		if err := s.WriteBit(b); err != nil {
			t.Fatalf("WriteBit() error = %v", err)
		}
	}

	want := []uint8{0b11, 0b01, 0b11}
	if !bytes.Equal(g.Pix, want) {
		t.Errorf("Pix = %08b, want %08b", g.Pix, want)
	}
}

func TestStream_FillsExactCapacity(t *testing.T) {
	g := newTestGrid(t, 2, 2, 3)
	s := NewStream(g)

	for i := uint64(0); i < g.Capacity(); i++ {
		if err := s.WriteBit(1); err != nil {
			t.Fatalf("WriteBit() #%d error = %v", i, err)
		}
	}
	for i, v := range g.Pix {
		if v != 0xFF {
			t.Errorf("Pix[%d] = %#x, want 0xff", i, v)
		}
	}
	if s.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", s.Remaining())
	}

	if err := s.WriteBit(1); !errors.Is(err, ErrCapacityExhausted) {
		t.Errorf("WriteBit() past capacity error = %v, want %v", err, ErrCapacityExhausted)
	}
	if _, err := NewStream(g).ReadBytes(int(g.Capacity()/8) + 1); !errors.Is(err, ErrCapacityExhausted) {
		t.Errorf("ReadBytes() past capacity error = %v, want %v", err, ErrCapacityExhausted)
	}
}
