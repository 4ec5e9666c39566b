// Package codec serializes a domain.Record onto a carrier as a bitstream.
//
// Fields are written through a bitplane.Stream in this order, each integer
// most significant bit first:
//
//	[8]               name length
//	[name length * 8] name (UTF-8)
//	[64]              payload length
//	[payload * 8]     payload
//
// Encode checks the whole record against the carrier's capacity before it
// writes a single bit, so a rejected record leaves the grid untouched.
package codec
