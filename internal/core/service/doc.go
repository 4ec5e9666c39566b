// Package service provides the embed and extract operations of isis.
//
// StegoService ties the pieces together: it seals the payload when a
// password is given, writes the record through the codec onto the carrier
// grid, and reverses both steps on extraction. It also reports carrier
// capacity so callers can size a payload before trying.
//
// The service keeps no per-operation state. Each call owns the grid it is
// given for its whole duration; callers that run operations concurrently
// must not share a grid between them.
package service
