// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bufio"
	"io"
)

// halfBlocks is indexed by top<<1 | bottom.
var halfBlocks = [4]string{" ", "▄", "▀", "█"}

// Text writes s to w as UTF-8 text, two rows of modules per line
// using half block characters.  Black modules are drawn with block
// characters; set Invert for light text on a dark background.
func Text(w io.Writer, s Symbol, o Options) error {
	o, err := o.check()
	if err != nil {
		return err
	}
	b := bufio.NewWriter(w)
	bord := o.Border
	end := s.Size() + bord
	for y := -bord; y < end; y += 2 {
		for x := -bord; x < end; x++ {
			i := 0
			if o.ink(s, x, y) {
				i = 2
			}
			if y+1 < end && o.ink(s, x, y+1) {
				i |= 1
			}
			b.WriteString(halfBlocks[i])
		}
		b.WriteByte('\n')
	}
	return b.Flush()
}

// ASCII writes s to w as text, one row of modules per line and two
// characters per module: "##" for black and "  " for white.
func ASCII(w io.Writer, s Symbol, o Options) error {
	o, err := o.check()
	if err != nil {
		return err
	}
	bord := o.Border
	pix := s.Size() + 2*bord
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := -bord; y < s.Size()+bord; y++ {
		for x := -bord; x < s.Size()+bord; x++ {
			var p byte = ' '
			if o.ink(s, x, y) {
				p = '#'
			}
			_ = b[i+1]
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err = w.Write(b)
	return err
}
