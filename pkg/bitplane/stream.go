package bitplane

import "errors"

// Stream errors.
var (
	// ErrCapacityExhausted is returned when a bit is accessed after every
	// plane of the grid has been used.
	ErrCapacityExhausted = errors.New("bitplane: no bit-planes left in grid")

	// ErrValueTooLarge is returned when an integer does not fit the
	// requested width.
	ErrValueTooLarge = errors.New("bitplane: value does not fit in requested width")
)

// Stream reads and writes bits sequentially through a Cursor bound to one
// grid. A Stream is not safe for concurrent use.
type Stream struct {
	grid *Grid
	cur  Cursor
}

// NewStream returns a stream positioned at the first bit of g.
func NewStream(g *Grid) *Stream {
	return &Stream{grid: g}
}

// Cursor returns the current position.
func (s *Stream) Cursor() Cursor {
	return s.cur
}

// Capacity returns the total number of bits the grid addresses.
func (s *Stream) Capacity() uint64 {
	return s.grid.Capacity()
}

// Remaining returns the number of bits left before the stream is exhausted.
func (s *Stream) Remaining() uint64 {
	return s.grid.Capacity() - s.cur.Index(s.grid.Dims)
}

// WriteBit stores the low bit of b at the current position and advances.
func (s *Stream) WriteBit(b uint8) error {
	if s.cur.Exhausted() {
		return ErrCapacityExhausted
	}
	i := s.grid.Offset(s.cur.Row, s.cur.Col, s.cur.Channel)
	if b&1 == 1 {
		s.grid.Pix[i] |= s.cur.SetMask()
	} else {
		s.grid.Pix[i] &= s.cur.ClearMask()
	}
	s.cur = s.cur.Next(s.grid.Dims)
	return nil
}

// ReadBit returns the bit at the current position and advances.
func (s *Stream) ReadBit() (uint8, error) {
	if s.cur.Exhausted() {
		return 0, ErrCapacityExhausted
	}
	v := s.grid.At(s.cur.Row, s.cur.Col, s.cur.Channel) & s.cur.SetMask()
	s.cur = s.cur.Next(s.grid.Dims)
	if v != 0 {
		return 1, nil
	}
	return 0, nil
}

// WriteUint writes the low width bits of v, most significant bit first.
func (s *Stream) WriteUint(v uint64, width int) error {
	if width <= 0 || width > 64 {
		return ErrValueTooLarge
	}
	if width < 64 && v>>uint(width) != 0 {
		return ErrValueTooLarge
	}
	for i := width - 1; i >= 0; i-- {
		if err := s.WriteBit(uint8(v >> uint(i))); err != nil {
			return err
		}
	}
	return nil
}

// ReadUint reads width bits, most significant bit first.
func (s *Stream) ReadUint(width int) (uint64, error) {
	if width <= 0 || width > 64 {
		return 0, ErrValueTooLarge
	}
	var v uint64
	for i := 0; i < width; i++ {
		b, err := s.ReadBit()
		if err != nil {
			return 0, err
		}
		v = v<<1 | uint64(b)
	}
	return v, nil
}

// WriteBytes writes each byte of p as 8 bits.
func (s *Stream) WriteBytes(p []byte) error {
	for _, b := range p {
		if err := s.WriteUint(uint64(b), 8); err != nil {
			return err
		}
	}
	return nil
}

// ReadBytes reads n bytes.
func (s *Stream) ReadBytes(n int) ([]byte, error) {
	out := make([]byte, n)
	for i := range out {
		v, err := s.ReadUint(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}
