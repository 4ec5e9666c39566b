package imageio

import (
	"path/filepath"
	"strings"
)

// Warning describes an adjustment LosslessPath made to an output path.
type Warning int

const (
	// WarningNone means the path was already lossless.
	WarningNone Warning = iota

	// WarningRenamed means a lossy extension was replaced with .png.
	WarningRenamed

	// WarningNotPNG means the format is lossless but not PNG. The carrier
	// survives as long as it is never re-encoded by another tool.
	WarningNotPNG
)

// String implements fmt.Stringer.
func (w Warning) String() string {
	switch w {
	case WarningRenamed:
		return "output renamed to a lossless format"
	case WarningNotPNG:
		return "output is not PNG; keep it away from tools that re-encode images"
	default:
		return ""
	}
}

var losslessExts = map[string]bool{
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsLossless reports whether path names a format Save can write without
// losing samples.
func IsLossless(path string) bool {
	return losslessExts[strings.ToLower(filepath.Ext(path))]
}

// LosslessPath returns a path that is safe to save a carrier to.
//
// Paths with a lossy or unknown extension (.jpg, .jpeg, .webp, .gif, none,
// ...) get their extension replaced with .png.
func LosslessPath(path string) (string, Warning) {
	ext := filepath.Ext(path)
	switch lower := strings.ToLower(ext); {
	case lower == ".png":
		return path, WarningNone
	case losslessExts[lower]:
		return path, WarningNotPNG
	default:
		return strings.TrimSuffix(path, ext) + ".png", WarningRenamed
	}
}
