package bitplane

import "errors"

// Planes is the number of bit-planes in an 8-bit sample.
const Planes = 8

// ErrInvalidDimensions is returned when a grid would have no samples.
var ErrInvalidDimensions = errors.New("bitplane: dimensions must be positive")

// Dims describes the shape of a grid.
type Dims struct {
	Height   int
	Width    int
	Channels int
}

// Samples returns the number of samples in a grid of this shape.
func (d Dims) Samples() int {
	return d.Height * d.Width * d.Channels
}

// Capacity returns the total number of addressable bits.
func (d Dims) Capacity() uint64 {
	return uint64(d.Samples()) * Planes
}

// Grid is a height×width×channels grid of 8-bit samples stored row-major.
type Grid struct {
	Dims
	Pix []uint8
}

// NewGrid allocates a zeroed grid.
func NewGrid(height, width, channels int) (*Grid, error) {
	d := Dims{Height: height, Width: width, Channels: channels}
	if height <= 0 || width <= 0 || channels <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Grid{Dims: d, Pix: make([]uint8, d.Samples())}, nil
}

// Offset returns the index of a sample in Pix.
func (g *Grid) Offset(row, col, channel int) int {
	return (row*g.Width+col)*g.Channels + channel
}

// At returns the sample at (row, col, channel).
func (g *Grid) At(row, col, channel int) uint8 {
	return g.Pix[g.Offset(row, col, channel)]
}
