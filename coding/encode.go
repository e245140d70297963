// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Encoder encodes a QR code.
type Encoder struct {
	p      *Plan
	b      *Bits
	scores [8]int
}

// NewEncoder returns an Encoder for the given version and level.
func NewEncoder(version Version, level Level) (*Encoder, error) {
	p, err := NewPlan(version, level)
	if err != nil {
		return nil, err
	}
	return &Encoder{p: p, b: NewBits(version)}, nil
}

// Write adds segments to e.
func (e *Encoder) Write(segs ...Segment) error {
	class := e.p.Version.SizeClass()
	for _, seg := range segs {
		if err := seg.encode(e.b, class); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of bits written to e.
func (e *Encoder) Len() int { return e.b.Len() }

// Reset discards the data written to e.
func (e *Encoder) Reset() { e.b.Reset() }

// Penalties returns the penalty of every mask pattern evaluated by the
// last call to Code.  Masks not evaluated have penalty -1.
func (e *Encoder) Penalties() [8]int { return e.scores }

// Codewords returns the data written to e, padded, with check bytes
// added and blocks interleaved, in placement order.  The data written
// so far is left as is, so more segments may be written afterwards.
func (e *Encoder) Codewords() ([]byte, error) {
	if n := e.b.Len(); n > e.p.DataBits {
		return nil, fmt.Errorf("%w: cannot encode %d bits into %d-bit code",
			ErrDataTooLong, n, e.p.DataBits)
	}
	b := NewBits(e.p.Version)
	b.Append(e.b)
	b.AddCheckBytes(e.p.Version, e.p.Level)
	if len(b.Bytes()) != e.p.Version.Bytes() {
		panic("qr: internal error")
	}
	return b.Permute(e.p.Version, e.p.Level), nil
}

// xor xors a and b into dst.  a and b may not be shorter than dst.
func xor(dst, a, b []byte) {
	a = a[:len(dst)]
	b = b[:len(dst)]
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// Code returns a QR code containing data written to e.  With AutoMask
// all eight masks are applied concurrently and the one with the lowest
// penalty wins, the lowest numbered on a tie.  Otherwise the given
// mask is applied without evaluation.
func (e *Encoder) Code(mask Mask) (*Code, error) {
	if mask != AutoMask && !mask.IsValid() {
		return nil, ErrMask
	}
	cw, err := e.Codewords()
	if err != nil {
		return nil, err
	}
	// Construct the bitmap consisting of data and checksum bits.
	p := e.p
	data := make([]byte, p.Size*p.Stride)
	p.Serialise(NewBitStream(cw), data)

	for i := range e.scores {
		e.scores[i] = -1
	}
	if mask != AutoMask {
		return e.code(data, mask), nil
	}

	// Apply masks to the bitmap to construct the candidate codes.
	var codes [8]*Code
	var g errgroup.Group
	for m := Mask(0); m < 8; m++ {
		m := m
		g.Go(func() error {
			c := e.code(data, m)
			codes[m] = c
			e.scores[m] = c.Penalty()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	best := Mask(0)
	for m := Mask(1); m < 8; m++ {
		if e.scores[m] < e.scores[best] {
			best = m
		}
	}
	return codes[best], nil
}

// code returns the code with data bits masked by pattern mask.
func (e *Encoder) code(data []byte, mask Mask) *Code {
	p := e.p
	c := &Code{
		Bitmap:  make([]byte, len(data)),
		Size:    p.Size,
		Stride:  p.Stride,
		Version: p.Version,
		Level:   p.Level,
		Mask:    mask,
	}
	xor(c.Bitmap, data, p.Pattern(mask))
	return c
}

// Encode is a wrapper around Write and Code.
func (e *Encoder) Encode(mask Mask, segs ...Segment) (*Code, error) {
	if err := e.Write(segs...); err != nil {
		return nil, err
	}
	return e.Code(mask)
}

// Encode encodes segs using an Encoder with the given version and level.
func Encode(version Version, level Level, mask Mask, segs ...Segment) (*Code, error) {
	e, err := NewEncoder(version, level)
	if err != nil {
		return nil, err
	}
	return e.Encode(mask, segs...)
}
