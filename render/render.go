// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package render draws QR codes.

All functions take a Symbol, such as *qr.Code, and Options setting the scale,
the quiet zone and colour inversion.  Output is monochrome.

	c, _ := qr.EncodeText("Hello, world!", qr.M)
	err := render.PNG(w, c, render.Options{Scale: 8, Border: 4})
*/
package render // import "github.com/unixdj/qrgen/render"

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
)

// A Symbol is a square grid of black and white modules.
type Symbol interface {
	Size() int           // number of modules on a side
	Black(x, y int) bool // module colour; false outside the grid
}

// Defaults used by the command line tool.
const (
	DefaultScale  = 4
	DefaultBorder = 4 // quiet zone required by the standard
)

// ErrOptions is returned for negative scale or border.
var ErrOptions = errors.New("render: invalid options")

// Options control rendering.
type Options struct {
	Scale  int  // image pixels per module; 0 means 1; ignored by Text, ASCII and JSON
	Border int  // quiet zone width in modules
	Invert bool // swap black and white

	// Description is written into the SVG desc element.
	Description string
}

func (o Options) check() (Options, error) {
	if o.Scale < 0 || o.Border < 0 {
		return o, ErrOptions
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	return o, nil
}

// ink reports whether the module at x, y is drawn in the foreground
// colour.
func (o Options) ink(s Symbol, x, y int) bool {
	return s.Black(x, y) != o.Invert
}

// bitmap packs the modules of s into rows of stride bytes,
// 8 modules per byte, most significant bit first.  1 is black.
func bitmap(s Symbol) (b []byte, stride int) {
	siz := s.Size()
	stride = (siz + 7) / 8
	b = make([]byte, stride*siz)
	for y := 0; y < siz; y++ {
		row := b[y*stride:]
		for x := 0; x < siz; x++ {
			if s.Black(x, y) {
				row[x/8] |= 0x80 >> uint(x&7)
			}
		}
	}
	return b, stride
}

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

// codeImage implements image.Image.
type codeImage struct {
	s     Symbol
	opt   Options
	pixel int
}

// Image returns an image displaying s.
func Image(s Symbol, o Options) (image.Image, error) {
	o, err := o.check()
	if err != nil {
		return nil, err
	}
	return &codeImage{s, o, (s.Size() + 2*o.Border) * o.Scale}, nil
}

func (c *codeImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.pixel, c.pixel)
}

func (c *codeImage) At(x, y int) color.Color {
	if x < 0 || x >= c.pixel || y < 0 || y >= c.pixel {
		return whiteColor
	}
	bord := c.opt.Border
	if c.opt.ink(c.s, x/c.opt.Scale-bord, y/c.opt.Scale-bord) {
		return blackColor
	}
	return whiteColor
}

func (c *codeImage) ColorModel() color.Model {
	return color.GrayModel
}

// PNG writes a PNG image displaying s to w.
func PNG(w io.Writer, s Symbol, o Options) error {
	m, err := Image(s, o)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, m)
}
