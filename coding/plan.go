// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Plan describes how to construct a QR code
// with a specific version and level.
//
// A Plan is built afresh for every code and is not modified by
// Pattern or Serialise, so the eight mask patterns can be computed
// concurrently.
type Plan struct {
	Version Version // QR code version
	Level   Level   // QR error correction Level

	DataBits int // number of data bits
	Size     int // number of pixels on a side
	Stride   int // number of bytes per row

	Map   []byte // pixel map: 0 is data or checksum, 1 is other
	fixed []byte // finder, alignment and timing patterns, dark pixel
}

// NewPlan returns a Plan for a QR code with the given version and level.
func NewPlan(version Version, level Level) (*Plan, error) {
	if !version.IsValid() {
		return nil, ErrVersion
	}
	if !level.IsValid() {
		return nil, ErrLevel
	}
	siz := version.Size()
	stride := (siz + 7) >> 3
	p := &Plan{
		Version:  version,
		Level:    level,
		DataBits: version.DataBits(level),
		Size:     siz,
		Stride:   stride,
		Map:      make([]byte, siz*stride),
		fixed:    make([]byte, siz*stride),
	}

	// Position boxes with their separators.
	for _, c := range [3][2]int{{3, 3}, {siz - 4, 3}, {3, siz - 4}} {
		for dy := -4; dy <= 4; dy++ {
			for dx := -4; dx <= 4; dx++ {
				d := max(abs(dx), abs(dy))
				p.fn(c[0]+dx, c[1]+dy, d != 2 && d != 4)
			}
		}
	}

	// Alignment boxes, except where they would overlap the
	// position boxes.
	apos := version.AlignmentPositions()
	last := len(apos) - 1
	for i, y := range apos {
		for j, x := range apos {
			if i == 0 && j == 0 || i == 0 && j == last || i == last && j == 0 {
				continue
			}
			for dy := -2; dy <= 2; dy++ {
				for dx := -2; dx <= 2; dx++ {
					p.fn(x+dx, y+dy, max(abs(dx), abs(dy)) != 1)
				}
			}
		}
	}

	// Timing lines between the position boxes.
	for i := 0; i < siz; i++ {
		if !p.IsFunction(i, 6) {
			p.fn(i, 6, i&1 == 0)
		}
		if !p.IsFunction(6, i) {
			p.fn(6, i, i&1 == 0)
		}
	}

	// Format and version areas, filled in by Pattern.
	p.formatBits(0)
	p.versionBits(0)

	// One lonely black pixel.
	p.fn(8, siz-8, true)
	return p, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// IsFunction reports whether pixel x, y is part of a function
// pattern rather than data.
func (p *Plan) IsFunction(x, y int) bool {
	return p.Map[y*p.Stride+x>>3]&(0x80>>uint(x&7)) != 0
}

// fn marks pixel x, y as a function pixel of the given colour.
// Pixels outside the code are ignored.
func (p *Plan) fn(x, y int, black bool) {
	if x < 0 || x >= p.Size || y < 0 || y >= p.Size {
		return
	}
	off, bit := y*p.Stride+x>>3, byte(0x80)>>uint(x&7)
	p.Map[off] |= bit
	if black {
		p.fixed[off] |= bit
	} else {
		p.fixed[off] &^= bit
	}
}

// formatBits draws both copies of the 15 bit format word fb.
func (p *Plan) formatBits(fb uint16) {
	siz := p.Size
	bit := func(i int) bool { return fb>>uint(i)&1 != 0 }
	// Around the top left position box.
	for i := 0; i < 6; i++ {
		p.fn(8, i, bit(i))
	}
	p.fn(8, 7, bit(6))
	p.fn(8, 8, bit(7))
	p.fn(7, 8, bit(8))
	for i := 9; i < 15; i++ {
		p.fn(14-i, 8, bit(i))
	}
	// Split between the other two.
	for i := 0; i < 8; i++ {
		p.fn(siz-1-i, 8, bit(i))
	}
	for i := 8; i < 15; i++ {
		p.fn(8, siz-15+i, bit(i))
	}
}

// versionBits draws both 6x3 copies of the 18 bit version word vb.
// It does nothing for versions below 7.
func (p *Plan) versionBits(vb uint32) {
	if p.Version < 7 {
		return
	}
	for i := 0; i < 18; i++ {
		black := vb>>uint(i)&1 != 0
		a, b := p.Size-11+i%3, i/3
		p.fn(a, b, black)
		p.fn(b, a, black)
	}
}

// Mask patterns:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
//	   ███   ███         ▄▄▄▄▄ ▄▄▄▄▄        ▄▄▄   ▄▄▄     ▄█▄▀ ▀▄█▄▀ ▀
//	      ███   ███      █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	   ███   ███         ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
var maskFunc = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (x/3+y/2)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}

// Pattern returns the bitmap of function patterns, format and version
// information and mask bits for the given mask.  XORed with the data
// bitmap filled in by Serialise, it yields the final code.
func (p *Plan) Pattern(mask Mask) []byte {
	if !mask.IsValid() {
		panic("qr: internal error")
	}
	q := *p
	q.Map = append([]byte(nil), p.Map...)
	q.fixed = append([]byte(nil), p.fixed...)
	q.formatBits(FormatBits(p.Level, mask))
	q.versionBits(p.Version.VersionBits())
	b := q.fixed
	f := maskFunc[mask]
	for y := 0; y < p.Size; y++ {
		row := b[y*p.Stride:]
		for x := 0; x < p.Size; x++ {
			if !p.IsFunction(x, y) && f(x, y) {
				row[x>>3] |= 0x80 >> uint(x&7)
			}
		}
	}
	return b
}

// Serialise writes bits from s to the bitmap in zigzag scan order:
// pairs of columns from the right, alternately upwards and downwards,
// skipping the vertical timing line and function pixels.
func (p *Plan) Serialise(s *BitStream, bitmap []byte) {
	siz := p.Size
	for right := siz - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		upward := (right+1)&2 == 0
		for vert := 0; vert < siz; vert++ {
			y := vert
			if upward {
				y = siz - 1 - vert
			}
			for x := right; x > right-2; x-- {
				if !p.IsFunction(x, y) && s.Next() {
					bitmap[y*p.Stride+x>>3] |= 0x80 >> uint(x&7)
				}
			}
		}
	}
}
