// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bufio"
	"io"
	"strconv"
)

// PBM writes a Portable Bit Map image displaying s to w, for use with
// netpbm.
func PBM(w io.Writer, s Symbol, o Options) error {
	o, err := o.check()
	if err != nil {
		return err
	}
	bm, stride := bitmap(s)
	siz := s.Size()
	length := o.Scale * (siz + o.Border*2)
	ls := strconv.Itoa(length)
	b := bufio.NewWriter(w)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}

	// PBM: 1 is black.  With Invert, the background is set and dark
	// modules are cleared.
	var bg byte
	if o.Invert {
		bg = 0xff
	}
	row := make([]byte, (length+7)/8)
	fill(row, bg)
	writeRows := func(n int) error {
		for ; n > 0; n-- {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
		return nil
	}
	if err := writeRows(o.Scale * o.Border); err != nil {
		return err
	}
	off := o.Scale * o.Border
	for y := 0; y < siz; y++ {
		fill(row, bg)
		pbmRow(row, bm[y*stride:(y+1)*stride], siz, o.Scale, off)
		if err := writeRows(o.Scale); err != nil {
			return err
		}
	}
	fill(row, bg)
	if err := writeRows(o.Scale * o.Border); err != nil {
		return err
	}
	return b.Flush()
}

func fill(p []byte, v byte) {
	for i := range p {
		p[i] = v
	}
}

// pbmRow flips the pixels of the dark modules in srow, siz modules
// wide, each scale pixels wide, starting off pixels into row.
// Runs of dark modules are flipped at once.
func pbmRow(row, srow []byte, siz, scale, off int) {
	dark := func(x int) bool { return srow[x>>3]&(0x80>>uint(x&7)) != 0 }
	for x := 0; x < siz; x++ {
		if !dark(x) {
			continue
		}
		n := 1
		for x+n < siz && dark(x+n) {
			n++
		}
		flipBits(row, off+x*scale, n*scale)
		x += n
	}
}

// flipBits inverts n bits of p starting at bit i, most significant
// bit first.
func flipBits(p []byte, i, n int) {
	for n > 0 {
		sh := uint(i & 7)
		k := min(8-int(sh), n)
		m := byte(0xff) >> sh
		m &^= byte(0xff) >> (sh + uint(k))
		p[i>>3] ^= m
		i += k
		n -= k
	}
}
