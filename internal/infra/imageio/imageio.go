package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/yndnr/isis-go/internal/core/domain"
	"github.com/yndnr/isis-go/pkg/bitplane"
)

// Channels is the number of samples per pixel in a carrier grid.
const Channels = 3

// Sample order within a pixel.
const (
	Blue = iota
	Green
	Red
)

// Load decodes the image at path into a carrier grid.
func Load(path string) (*bitplane.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.ErrIO.WithDetails(path).WithCause(err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads an image from r into a carrier grid.
func Decode(r io.Reader) (*bitplane.Grid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, domain.ErrNotAnImage.WithCause(err)
	}
	return FromImage(img)
}

// FromImage copies the colour samples of img into a new grid.
func FromImage(img image.Image) (*bitplane.Grid, error) {
	b := img.Bounds()
	g, err := bitplane.NewGrid(b.Dy(), b.Dx(), Channels)
	if err != nil {
		return nil, domain.ErrNotAnImage.WithCause(err)
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(b)
		draw.Draw(nrgba, b, img, b.Min, draw.Src)
	}

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			i := nrgba.PixOffset(b.Min.X+col, b.Min.Y+row)
			o := g.Offset(row, col, 0)
			g.Pix[o+Blue] = nrgba.Pix[i+2]
			g.Pix[o+Green] = nrgba.Pix[i+1]
			g.Pix[o+Red] = nrgba.Pix[i]
		}
	}
	return g, nil
}

// ToImage renders a 3-channel grid as an opaque image.
func ToImage(g *bitplane.Grid) (*image.NRGBA, error) {
	if g.Channels != Channels {
		return nil, domain.ErrInvalidArgument.WithDetails(
			fmt.Sprintf("grid has %d channels, want %d", g.Channels, Channels))
	}
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			i := img.PixOffset(col, row)
			o := g.Offset(row, col, 0)
			img.Pix[i] = g.Pix[o+Red]
			img.Pix[i+1] = g.Pix[o+Green]
			img.Pix[i+2] = g.Pix[o+Blue]
			img.Pix[i+3] = 0xFF
		}
	}
	return img, nil
}

// Encode writes g to w in the lossless format named by ext.
func Encode(w io.Writer, g *bitplane.Grid, ext string) error {
	img, err := ToImage(g)
	if err != nil {
		return err
	}
	switch strings.ToLower(ext) {
	case ".png", "":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return domain.ErrInvalidArgument.WithDetails("unsupported output format " + ext)
	}
}

// Save encodes g to path. The file is written to a temporary name in the
// same directory and renamed into place, so a failed save never leaves a
// half-written carrier behind.
func Save(g *bitplane.Grid, path string) error {
	ext := filepath.Ext(path)
	if !IsLossless(path) {
		return domain.ErrInvalidArgument.WithDetails("refusing lossy output format " + ext)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return domain.ErrIO.WithDetails(path).WithCause(err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := Encode(tmp, g, ext); err != nil {
		tmp.Close()
		cleanup()
		var de *domain.DomainError
		if errors.As(err, &de) {
			return err
		}
		return domain.ErrIO.WithDetails(path).WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return domain.ErrIO.WithDetails(path).WithCause(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return domain.ErrIO.WithDetails(path).WithCause(err)
	}
	return nil
}
