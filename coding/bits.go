// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"

	"github.com/unixdj/qrgen/gf256"
)

// ErrBitWidth is returned by AppendBits for a width outside [0, 31]
// or a value that does not fit in the width.
var ErrBitWidth = errors.New("qr: invalid bit width")

// MaxBits is the largest number of data bits any QR code can hold,
// MaxVersion.DataBits(L).  Segment constructors refuse to build
// anything longer.
const MaxBits = 23648

// Bits is an append-only sequence of bits, packed most significant
// bit first.  The zero value is an empty sequence ready to use.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns an empty Bits with room for all data and check
// bytes of a code of version v.
func NewBits(v Version) *Bits {
	return &Bits{b: make([]byte, 0, v.Bytes())}
}

// Reset empties b, keeping its storage.
func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Len returns the number of bits in b.
func (b *Bits) Len() int {
	return b.nbit
}

// Bytes returns the bits packed into bytes.  The last byte is padded
// with zero bits on the right.
func (b *Bits) Bytes() []byte {
	return b.b
}

// Bit reports whether bit i, counting from 0, is set.
func (b *Bits) Bit(i int) bool {
	return b.b[i>>3]&(0x80>>uint(i&7)) != 0
}

// AppendBits appends the low n bits of v, most significant first.
// n must be in [0, 31] and v must be below 1<<n.
func (b *Bits) AppendBits(v uint32, n int) error {
	if n < 0 || n > 31 || v>>uint(n) != 0 {
		return ErrBitWidth
	}
	b.write(v, n)
	return nil
}

// AppendBytes appends whole bytes.
func (b *Bits) AppendBytes(p []byte) {
	if b.nbit&7 == 0 {
		b.b = append(b.b, p...)
		b.nbit += len(p) * 8
		return
	}
	for _, c := range p {
		b.write(uint32(c), 8)
	}
}

// Append appends the contents of o.
func (b *Bits) Append(o *Bits) {
	full := o.nbit >> 3
	b.AppendBytes(o.b[:full])
	if rem := o.nbit & 7; rem != 0 {
		b.write(uint32(o.b[full]>>uint(8-rem)), rem)
	}
}

// write appends the low nbit bits of v without validation.
func (b *Bits) write(v uint32, nbit int) {
	v <<= uint(32 - nbit)
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> uint(32-rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		v <<= uint(rem)
		b.nbit += rem
		nbit -= rem
	}
	for ; nbit > 0; nbit -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
		b.nbit += min(nbit, 8)
	}
}

// add appends n zero bytes and returns them.
// b must end on a byte boundary.
func (b *Bits) add(n int) []byte {
	l := len(b.b)
	b.b = append(b.b, make([]byte, n)...)
	b.nbit += n * 8
	return b.b[l:]
}

// pad appends the terminator, zero bits up to a byte boundary and
// alternating 0xEC, 0x11 pad bytes until b holds capacity bits.
func (b *Bits) pad(capacity int) {
	b.write(0, min(4, capacity-b.nbit))
	b.write(0, -b.nbit&7)
	for p := uint32(0xec); b.nbit < capacity; p ^= 0xec ^ 0x11 {
		b.write(p, 8)
	}
}

// AddCheckBytes pads the data in b to the capacity of version v at
// level l and appends the Reed-Solomon check bytes of every block.
// The result is all data blocks followed by all check blocks, not
// yet interleaved.
func (b *Bits) AddCheckBytes(v Version, l Level) {
	nd := v.DataBytes(l)
	if b.nbit > nd*8 {
		panic("qr: too much data")
	}
	b.pad(nd * 8)

	nblock, check := v.Blocks(l)
	db := nd / nblock
	short := nblock - nd%nblock
	rs := gf256.NewRSEncoder(Field, check)
	dat := b.b[:nd]
	for i := 0; i < nblock; i++ {
		if i == short {
			db++
		}
		rs.ECC(dat[:db], b.add(check))
		dat = dat[db:]
	}
}

// interleave writes to dst the bytes of nblock blocks in src, one
// byte from every block in turn.  Blocks that are one byte longer
// than the others come last in src.
func interleave(dst, src []byte, nblock int) {
	db := len(src) / nblock
	extra := dst[db*nblock:]
	short := nblock - len(extra)
	for i := 0; i < nblock; i++ {
		for j, v := range src[:db] {
			dst[j*nblock+i] = v
		}
		src = src[db:]
		if i >= short {
			extra[i-short] = src[0]
			src = src[1:]
		}
	}
}

// Permute returns the codewords in b, as laid out by AddCheckBytes,
// interleaved for placement: data bytes of all blocks in turn, then
// check bytes of all blocks in turn.
func (b *Bits) Permute(v Version, l Level) []byte {
	nd := v.DataBytes(l)
	nblock, _ := v.Blocks(l)
	src := b.b
	dst := make([]byte, len(src))
	interleave(dst[:nd], src[:nd], nblock)
	interleave(dst[nd:], src[nd:], nblock)
	return dst
}

// A BitStream reads bits from a byte slice, most significant first.
// Past the end it yields zeros.
type BitStream struct {
	b    []byte
	nbit int
}

// NewBitStream returns a BitStream reading p.
func NewBitStream(p []byte) *BitStream {
	return &BitStream{b: p}
}

// Next returns the next bit.
func (s *BitStream) Next() bool {
	if s.nbit>>3 >= len(s.b) {
		return false
	}
	r := s.b[s.nbit>>3]&(0x80>>uint(s.nbit&7)) != 0
	s.nbit++
	return r
}
