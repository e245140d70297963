// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details.
//
// The package covers the whole QR Code Model 2 pipeline below text
// segmentation: bit buffers, segment packing, capacity tables,
// codeword assembly with Reed-Solomon error correction, function
// pattern layout, data placement and mask selection.
package coding // import "github.com/unixdj/qrgen/coding"

import (
	"errors"
	"strconv"

	"github.com/unixdj/qrgen/gf256"
)

var (
	ErrLevel       = errors.New("qr: invalid level")
	ErrVersion     = errors.New("qr: invalid version")
	ErrMask        = errors.New("qr: invalid mask")
	ErrDataTooLong = errors.New("qr: data too long")
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 pixels on a side.
// Versions run from 1 to 40: the larger the version, the more
// information the code can store.
type Version int

// Code versions.
const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// IsValid reports whether v is between MinVersion and MaxVersion.
func (v Version) IsValid() bool { return MinVersion <= v && v <= MaxVersion }

// QR version size classes.  The size class determines the length of
// segment character count fields.
const (
	Class0 = iota // QR versions 1 to 9
	Class1        // QR versions 10 to 26
	Class2        // QR versions 27 to 40
)

// SizeClass returns the size class of v, as documented under Class0.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	return Class2
}

// Size returns the number of pixels on a side.
func (v Version) Size() int { return int(v)*4 + 17 }

// DataBytes returns the number of data bytes that can be
// stored in a QR code with the given version and level.
func (v Version) DataBytes(l Level) int {
	vt := &vtab[v]
	lev := vt.level[l]
	return vt.bytes - lev.nblock*lev.check
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int { return v.DataBytes(l) * 8 }

// Bytes returns the total number of codewords, data and error
// correction, in a QR code of version v.
func (v Version) Bytes() int { return vtab[v].bytes }

// RawDataModules returns the number of pixels available for data and
// error correction after all function patterns are placed.  The
// result is not necessarily a multiple of 8: the 0 to 7 leftover
// pixels stay unused.
func (v Version) RawDataModules() int {
	n := int(v)
	r := (16*n+128)*n + 64
	if v >= 2 {
		na := n/7 + 2
		r -= (25*na-10)*na - 55
		if v >= 7 {
			r -= 36
		}
	}
	return r
}

// Blocks returns the number of error correction blocks and the number
// of error correction bytes per block for v at level l.
func (v Version) Blocks(l Level) (nblock, check int) {
	lev := vtab[v].level[l]
	return lev.nblock, lev.check
}

// AlignmentPositions returns the ascending list of row and column
// coordinates of alignment pattern centres.  Patterns are placed at
// every pair of coordinates except the three finder corners.
// Version 1 has none.
func (v Version) AlignmentPositions() []int {
	vt := &vtab[v]
	if vt.apos == 0 {
		return nil
	}
	last := v.Size() - 7
	pos := []int{6}
	for p := vt.apos; p <= last; p += vt.astride {
		pos = append(pos, p)
		if vt.astride == 0 {
			break
		}
	}
	return pos
}

// VersionBits returns the 18 bit version information word: 6 bits of
// version followed by 12 bits of BCH(18,6) error correction.  It
// returns 0 for versions below 7, which carry no version information.
func (v Version) VersionBits() uint32 {
	if v < 7 {
		return 0
	}
	const versionPoly = 0x1f25
	rem := uint32(v)
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ rem>>11*versionPoly
	}
	return uint32(v)<<12 | rem
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string {
	if l.IsValid() {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// IsValid reports whether l is one of L, M, Q, H.
func (l Level) IsValid() bool { return L <= l && l <= H }

// FormatBits returns the 2 bit code for l in the format information:
// L=01, M=00, Q=11, H=10.
func (l Level) FormatBits() uint16 { return uint16(l ^ 1) }

// A Mask selects one of the eight data mask patterns.
type Mask int

// AutoMask requests automatic mask selection.
const AutoMask Mask = -1

// IsValid reports whether m is a mask pattern number from 0 to 7.
func (m Mask) IsValid() bool { return 0 <= m && m <= 7 }

func (m Mask) String() string {
	if m == AutoMask {
		return "auto"
	}
	return strconv.Itoa(int(m))
}

// FormatBits returns the 15 bit format information word for level l
// and mask m: 5 data bits, 10 bits of BCH(15,5) error correction,
// XORed with 0x5412.
func FormatBits(l Level, m Mask) uint16 {
	const (
		formatPoly = 0x537
		formatMask = 0x5412
	)
	fb := l.FormatBits()<<13 | uint16(m)<<10
	rem := fb
	for i := 4; i >= 0; i-- {
		if rem&((1<<10)<<i) != 0 {
			rem ^= formatPoly << i
		}
	}
	return (fb | rem) ^ formatMask
}

// A version describes metadata associated with a version.
type version struct {
	apos    int // second alignment pattern coordinate, 0 if none
	astride int // distance between later coordinates, 0 if fewer than 3
	bytes   int // total codewords
	level   [4]level
}

type level struct {
	nblock int // error correction blocks
	check  int // error correction bytes per block
}
