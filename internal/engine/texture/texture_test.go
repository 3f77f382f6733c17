package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/Faultbox/shaderbasics/pkg/math"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// twoRows is a 2x2 image with a red top row and a blue bottom row.
func twoRows() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.SetRGBA(x, 0, red)
		img.SetRGBA(x, 1, blue)
	}
	return img
}

func tgaHeader(imageType, bpp, descriptor byte, w, h int) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	data := tgaHeader(TGATypeUncompressed, 24, 0, 2, 2)
	// Bottom row first, BGR.
	data = append(data,
		255, 0, 0, 255, 0, 0,
		0, 0, 255, 0, 0, 255,
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	rgba := img.(*image.RGBA)
	assert.Equal(t, red, rgba.RGBAAt(0, 0))
	assert.Equal(t, blue, rgba.RGBAAt(1, 1))
}

func TestDecodeTGARLETopDown(t *testing.T) {
	data := tgaHeader(TGATypeRLE, 32, 0x20, 2, 2)
	data = append(data,
		0x81, 0, 0, 255, 128, // run of 2 red, alpha 128
		0x01, 255, 0, 0, 255, 0, 255, 0, 255, // raw: blue, green
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	rgba := img.(*image.RGBA)
	assert.Equal(t, color.RGBA{R: 255, A: 128}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 128}, rgba.RGBAAt(1, 0))
	assert.Equal(t, blue, rgba.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, rgba.RGBAAt(1, 1))
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		unsupported bool
	}{
		{"short header", []byte{0, 0, 2}, false},
		{"color mapped", append([]byte{0, 1}, make([]byte, 16)...), true},
		{"grayscale", tgaHeader(3, 8, 0, 1, 1), true},
		{"16 bit", tgaHeader(TGATypeUncompressed, 16, 0, 1, 1), true},
		{"truncated pixels", append(tgaHeader(TGATypeUncompressed, 24, 0, 2, 2), 1, 2, 3), false},
		{"truncated rle", append(tgaHeader(TGATypeRLE, 24, 0, 2, 2), 0x83), false},
		{"empty", tgaHeader(TGATypeUncompressed, 24, 0, 0, 4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			require.Error(t, err)
			assert.Equal(t, tt.unsupported, errors.Is(err, ErrUnsupportedFormat))
		})
	}
}

func TestDecodeByExtension(t *testing.T) {
	src := twoRows()
	encoders := map[string]func(*bytes.Buffer) error{
		"wall.png":  func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"wall.BMP":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
		"wall.tiff": func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) },
	}
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encode(&buf))

			img, err := Decode(name, buf.Bytes())
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
			assert.Equal(t, red, img.RGBAAt(1, 0))
			assert.Equal(t, blue, img.RGBAAt(0, 1))
		})
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode("brick.dds", []byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.False(t, Supported("brick.dds"))
	assert.True(t, Supported("brick.WebP"))
}

func TestDecodeCorrupt(t *testing.T) {
	_, err := Decode("brick.png", []byte("not a png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brick.png")
}

func TestToRGBAOffsetBounds(t *testing.T) {
	sub := twoRows().SubImage(image.Rect(0, 1, 2, 2))
	img := ToRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 1), img.Bounds())
	assert.Equal(t, blue, img.RGBAAt(0, 0))
}

func TestFlipVertical(t *testing.T) {
	src := twoRows()
	flipped := FlipVertical(src)
	assert.Equal(t, blue, flipped.RGBAAt(0, 0))
	assert.Equal(t, red, flipped.RGBAAt(1, 1))
	// Source untouched.
	assert.Equal(t, red, src.RGBAAt(0, 0))
}

func TestSwatch(t *testing.T) {
	img := Swatch(math.FlatNormal)
	assert.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())
	assert.Equal(t, []uint8{128, 128, 255, 255}, img.Pix)
}
