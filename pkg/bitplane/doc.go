// Package bitplane addresses individual bits of an 8-bit sample grid.
//
// Bits are visited channel first, then column, then row. When the whole
// grid has been visited at one bit-plane the cursor moves to the next
// higher plane and starts over at the first sample:
//
//   - grid.go: Grid, the height×width×channels sample buffer
//   - cursor.go: Cursor, an immutable position plus its transition rule
//   - stream.go: Stream, sequential bit/integer/byte access through a Cursor
//
// A grid of H×W×C samples therefore addresses H×W×C×8 bits in total, and
// two streams started on equal grids visit the same positions in the same
// order.
package bitplane
