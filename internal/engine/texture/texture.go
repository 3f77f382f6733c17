// Package texture decodes image files into RGBA pixel data ready for upload.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/Faultbox/shaderbasics/pkg/math"
)

// ErrUnsupportedFormat is returned for file types or encodings that cannot be decoded.
var ErrUnsupportedFormat = errors.New("unsupported image format")

type decoder func(data []byte) (image.Image, error)

func viaReader(decode func(io.Reader) (image.Image, error)) decoder {
	return func(data []byte) (image.Image, error) {
		return decode(bytes.NewReader(data))
	}
}

var decoders = map[string]decoder{
	".png":  viaReader(png.Decode),
	".jpg":  viaReader(jpeg.Decode),
	".jpeg": viaReader(jpeg.Decode),
	".bmp":  viaReader(bmp.Decode),
	".tif":  viaReader(tiff.Decode),
	".tiff": viaReader(tiff.Decode),
	".webp": viaReader(webp.Decode),
	".tga":  DecodeTGA,
}

// Supported reports whether name has a decodable extension.
func Supported(name string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Decode decodes data using the format implied by name's extension and returns
// it as RGBA with the first row at the top.
func Decode(name string, data []byte) (*image.RGBA, error) {
	ext := strings.ToLower(filepath.Ext(name))
	dec, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("decode %s: %q: %w", name, ext, ErrUnsupportedFormat)
	}
	img, err := dec(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA converts img to *image.RGBA with bounds starting at the origin.
// An RGBA image already at the origin is returned as is.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipVertical returns a copy of img with its rows reversed. GL expects the first
// row of texel data at v = 0, the bottom of the image.
func FlipVertical(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	rowLen := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		dst := out.PixOffset(b.Min.X, b.Max.Y-1-y)
		copy(out.Pix[dst:dst+rowLen], img.Pix[src:src+rowLen])
	}
	return out
}

// Swatch returns a 1x1 image of colour c.
func Swatch(c math.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(img.Pix, []uint8{c.R, c.G, c.B, c.A})
	return img
}
