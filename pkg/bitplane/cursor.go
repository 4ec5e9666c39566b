package bitplane

// Cursor is a position in the bit address space of a grid.
//
// The zero Cursor points at bit-plane 0 of the first sample. A Cursor whose
// Plane equals Planes is exhausted: every position has been visited.
type Cursor struct {
	Row     int
	Col     int
	Channel int
	Plane   int
}

// Exhausted reports whether the cursor has moved past the last plane.
func (c Cursor) Exhausted() bool {
	return c.Plane >= Planes
}

// SetMask is the mask that sets the addressed bit.
func (c Cursor) SetMask() uint8 {
	return 1 << uint(c.Plane)
}

// ClearMask is the mask that clears the addressed bit.
func (c Cursor) ClearMask() uint8 {
	return ^c.SetMask()
}

// Next returns the position that follows c in a grid of shape d.
//
// Channel advances fastest, then column, then row. After the last sample
// of a plane the cursor returns to (0, 0, 0) on the next plane. Advancing
// from the last sample of plane 7 yields an exhausted cursor.
func (c Cursor) Next(d Dims) Cursor {
	if c.Exhausted() {
		return c
	}
	c.Channel++
	if c.Channel < d.Channels {
		return c
	}
	c.Channel = 0
	c.Col++
	if c.Col < d.Width {
		return c
	}
	c.Col = 0
	c.Row++
	if c.Row < d.Height {
		return c
	}
	c.Row = 0
	c.Plane++
	return c
}

// Index returns the number of positions visited before c.
func (c Cursor) Index(d Dims) uint64 {
	samples := uint64(d.Samples())
	sample := uint64((c.Row*d.Width+c.Col)*d.Channels + c.Channel)
	return uint64(c.Plane)*samples + sample
}
