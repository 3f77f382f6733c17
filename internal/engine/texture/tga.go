package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: data truncated")

// tgaReader writes decoded pixels into an image in file order.
type tgaReader struct {
	img           *image.RGBA
	src           []byte
	pos           int
	width, height int
	bpp           int // bytes per pixel
	topToBottom   bool
	written       int
}

func (r *tgaReader) pixel() (color.RGBA, error) {
	if r.pos+r.bpp > len(r.src) {
		return color.RGBA{}, errTGATruncated
	}
	p := r.src[r.pos : r.pos+r.bpp]
	r.pos += r.bpp
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c, nil
}

func (r *tgaReader) put(c color.RGBA) {
	x, y := r.written%r.width, r.written/r.width
	if !r.topToBottom {
		y = r.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.written++
}

func (r *tgaReader) done() bool { return r.written >= r.width*r.height }

// DecodeTGA decodes an uncompressed (type 2) or RLE (type 10) true-color TGA
// with 24 or 32 bits per pixel. The result has its first row at the top.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, errTGATruncated
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("tga: color-mapped images: %w", ErrUnsupportedFormat)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("tga: image type %d: %w", imageType, ErrUnsupportedFormat)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: %d bits per pixel: %w", bpp, ErrUnsupportedFormat)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("tga: empty image %dx%d", width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		bpp:         bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = r.raw()
	} else {
		err = r.rle()
	}
	if err != nil {
		return nil, err
	}
	return r.img, nil
}

func (r *tgaReader) raw() error {
	for !r.done() {
		c, err := r.pixel()
		if err != nil {
			return err
		}
		r.put(c)
	}
	return nil
}

func (r *tgaReader) rle() error {
	for !r.done() {
		if r.pos >= len(r.src) {
			return errTGATruncated
		}
		packet := r.src[r.pos]
		r.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, err := r.pixel()
			if err != nil {
				return err
			}
			for i := 0; i < count && !r.done(); i++ {
				r.put(c)
			}
			continue
		}
		for i := 0; i < count && !r.done(); i++ {
			c, err := r.pixel()
			if err != nil {
				return err
			}
			r.put(c)
		}
	}
	return nil
}
