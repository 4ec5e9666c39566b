// Package imageio converts between image files and bitplane grids.
//
// Carriers are decoded from PNG, BMP, TIFF, GIF, JPEG or WebP into a
// 3-channel grid with samples in blue, green, red order. Alpha is dropped.
// Grids are encoded only to lossless formats (PNG, BMP, TIFF); any lossy
// re-encoding would destroy the embedded bits without a trace, so
// LosslessPath rewrites such output paths before saving.
package imageio
