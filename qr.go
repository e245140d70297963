// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes.

EncodeText and EncodeBinary cover the common cases.  EncodeSegments
and Encode take segments built with package coding or split and
give control over the range of versions, the mask pattern and error
correction level boosting.

	c, err := qr.EncodeText("Hello, world!", qr.M)
	if err != nil {
		// handle error
	}
	for y := 0; y < c.Size(); y++ {
		for x := 0; x < c.Size(); x++ {
			_ = c.Black(x, y)
		}
	}

A Code is immutable and safe for concurrent use.  Package render
draws codes as text, images and vector graphics.
*/
package qr // import "github.com/unixdj/qrgen"

import (
	"fmt"

	"github.com/unixdj/qrgen/coding"
	"github.com/unixdj/qrgen/split"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level = coding.Level

// QR error correction levels.
const (
	L = coding.L // 20% redundant
	M = coding.M // 38% redundant
	Q = coding.Q // 55% redundant
	H = coding.H // 65% redundant
)

// A Version is a QR version from 1 to 40.
type Version = coding.Version

// A Mask is a mask pattern number from 0 to 7, or AutoMask.
type Mask = coding.Mask

// AutoMask selects the mask pattern with the lowest penalty.
const AutoMask = coding.AutoMask

// Errors returned by the encoder.  ErrDataTooLong is wrapped with
// the details; use errors.Is to test for it.
var (
	ErrDataTooLong = coding.ErrDataTooLong
	ErrVersion     = coding.ErrVersion
	ErrLevel       = coding.ErrLevel
	ErrMask        = coding.ErrMask
)

// A Logger receives a debug record for every code encoded.
// *slog.Logger implements Logger.
type Logger interface {
	Debug(msg string, args ...any)
}

// Options control Encode.  The zero Options allow all versions and
// choose the mask automatically, without level boosting.
type Options struct {
	MinVersion Version // smallest version to use; 0 means 1
	MaxVersion Version // largest version to use; 0 means 40
	ForceMask  bool    // use Mask instead of choosing one
	Mask       Mask    // mask pattern used with ForceMask
	BoostECL   bool    // raise the level while the data still fits
	Logger     Logger  // debug logger, nil for none
}

// DefaultOptions returns the Options used by EncodeSegments: all
// versions, automatic mask, level boosting on.
func DefaultOptions() Options {
	return Options{
		MinVersion: coding.MinVersion,
		MaxVersion: coding.MaxVersion,
		BoostECL:   true,
	}
}

// mask returns the mask pattern to apply, or AutoMask.
func (o Options) mask() Mask {
	if o.ForceMask {
		return o.Mask
	}
	return AutoMask
}

// EncodeText returns a QR code holding text at error correction level
// level or higher.  The text is split into numeric, alphanumeric and
// byte segments as described in package split.  The smallest fitting
// version is used.
func EncodeText(text string, level Level) (*Code, error) {
	segs, err := split.Text(text)
	if err != nil {
		return nil, err
	}
	return EncodeSegments(segs, level)
}

// EncodeBinary returns a QR code holding data in a single byte
// segment at error correction level level or higher.
func EncodeBinary(data []byte, level Level) (*Code, error) {
	seg, err := coding.MakeBytes(data)
	if err != nil {
		return nil, err
	}
	return EncodeSegments([]coding.Segment{seg}, level)
}

// EncodeSegments returns a QR code holding segs using DefaultOptions.
func EncodeSegments(segs []coding.Segment, level Level) (*Code, error) {
	return Encode(segs, level, DefaultOptions())
}

// EncodeSegmentsAdvanced returns a QR code holding segs using the
// smallest version between minVersion and maxVersion that fits.
// Mask is a pattern number from 0 to 7 or AutoMask.  If boost is set,
// the level is raised as long as the data fits in the chosen version.
func EncodeSegmentsAdvanced(segs []coding.Segment, level Level,
	minVersion, maxVersion Version, mask Mask, boost bool) (*Code, error) {
	return Encode(segs, level, Options{
		MinVersion: minVersion,
		MaxVersion: maxVersion,
		ForceMask:  mask != AutoMask,
		Mask:       mask,
		BoostECL:   boost,
	})
}

// Encode returns a QR code holding segs as directed by opts.
func Encode(segs []coding.Segment, level Level, opts Options) (*Code, error) {
	minv, maxv := opts.MinVersion, opts.MaxVersion
	if minv == 0 {
		minv = coding.MinVersion
	}
	if maxv == 0 {
		maxv = coding.MaxVersion
	}
	if !minv.IsValid() || !maxv.IsValid() || minv > maxv {
		return nil, ErrVersion
	}
	if !level.IsValid() {
		return nil, ErrLevel
	}
	mask := opts.mask()
	if mask != AutoMask && !mask.IsValid() {
		return nil, ErrMask
	}
	for _, seg := range segs {
		if err := seg.Check(); err != nil {
			return nil, err
		}
	}

	v, used, err := fit(segs, level, minv, maxv)
	if err != nil {
		return nil, err
	}
	if opts.BoostECL {
		for l := level + 1; l <= H; l++ {
			if used <= v.DataBits(l) {
				level = l
			}
		}
	}

	e, err := coding.NewEncoder(v, level)
	if err != nil {
		return nil, err
	}
	if err := e.Write(segs...); err != nil {
		return nil, err
	}
	cc, err := e.Code(mask)
	if err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		opts.Logger.Debug("qr: encoded",
			"segments", len(segs),
			"bits", used,
			"version", v,
			"level", level,
			"mask", cc.Mask,
			"penalties", e.Penalties())
	}
	return &Code{c: cc}, nil
}

// fit returns the smallest version between minv and maxv holding segs
// at level l and the number of bits they take.
func fit(segs []coding.Segment, l Level, minv, maxv Version) (Version, int, error) {
	for v := minv; v <= maxv; v++ {
		if n, ok := coding.TotalBits(segs, v); ok && n <= v.DataBits(l) {
			return v, n, nil
		}
	}
	n, ok := coding.TotalBits(segs, maxv)
	if !ok {
		return 0, 0, fmt.Errorf("%w: segments do not fit version %v", ErrDataTooLong, maxv)
	}
	return 0, 0, fmt.Errorf("%w: %d bits, version %v-%v holds %d",
		ErrDataTooLong, n, maxv, l, maxv.DataBits(l))
}

// A Code is a QR code: a square grid of black and white pixels.
// The zero Code is not usable; Codes are returned by the Encode
// functions.
type Code struct {
	c *coding.Code
}

// Size returns the number of pixels on a side, from 21 to 177.
func (c *Code) Size() int { return c.c.Size }

// Black reports whether the pixel at x, y is black.
// Pixels outside the code are white.
func (c *Code) Black(x, y int) bool { return c.c.Black(x, y) }

// Version returns the version of the code.
func (c *Code) Version() Version { return c.c.Version }

// Level returns the error correction level of the code.
func (c *Code) Level() Level { return c.c.Level }

// Mask returns the mask pattern of the code.
func (c *Code) Mask() Mask { return c.c.Mask }

// Penalty returns the mask penalty of the code.
func (c *Code) Penalty() int { return c.c.Penalty() }

// Matrix returns the pixels of the code as rows of booleans,
// true for black.
func (c *Code) Matrix() [][]bool {
	siz := c.Size()
	m := make([][]bool, siz)
	for y := range m {
		m[y] = make([]bool, siz)
		for x := range m[y] {
			m[y][x] = c.Black(x, y)
		}
	}
	return m
}
