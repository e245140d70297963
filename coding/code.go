// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Code is a square pixel grid.
type Code struct {
	Bitmap []byte // 1 is black, 0 is white
	Size   int    // number of pixels on a side
	Stride int    // number of bytes per row

	Version Version // QR code version
	Level   Level   // error correction level
	Mask    Mask    // mask pattern applied
}

// Black reports whether pixel x, y is black.
// Pixels outside the code are white.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7&^x)) != 0
}

// Penalty weights.
const (
	penaltyRun    = 3  // run of 5 same-colour pixels, plus 1 per extra pixel
	penaltyBox    = 3  // 2x2 box of same-colour pixels
	penaltyFinder = 40 // 1:1:3:1:1 finder-like pattern with 4 light pixels on a side
	penaltyBal    = 10 // every 5% of dark pixels away from 50%
)

// Penalty returns the penalty value for the code.  The value is used
// for choosing the mask.
//
// Total penalty is the sum of penalties for runs and boxes of
// same-colour pixels, finder-like patterns and colour balance:
//
//   - runs of n >= 5 pixels in a row or column: n-2
//   - possibly overlapping 2x2 boxes: 3
//   - finder-like patterns dark 1:1:3:1:1 with 4 light pixels on
//     either side, in rows and columns: 40 each; the light pixels
//     may extend into the quiet zone
//   - k = |dark*20 - total*10| / total rounded down: 10*k
//
// https://www.nayuki.io/page/creating-a-qr-code-step-by-step
func (c *Code) Penalty() int {
	siz := c.Size
	p := 0

	// Runs and finder-like patterns along rows (horizontal) and
	// columns.
	for _, horizontal := range [2]bool{true, false} {
		for i := 0; i < siz; i++ {
			black := false
			run := 0
			h := runHistory{size: siz}
			for j := 0; j < siz; j++ {
				x, y := j, i
				if !horizontal {
					x, y = i, j
				}
				if c.Black(x, y) == black {
					run++
					if run == 5 {
						p += penaltyRun
					} else if run > 5 {
						p++
					}
				} else {
					h.add(run)
					if !black {
						p += h.count() * penaltyFinder
					}
					black = !black
					run = 1
				}
			}
			p += h.terminate(black, run) * penaltyFinder
		}
	}

	// 2x2 boxes.
	for y := 0; y < siz-1; y++ {
		for x := 0; x < siz-1; x++ {
			b := c.Black(x, y)
			if b == c.Black(x+1, y) && b == c.Black(x, y+1) &&
				b == c.Black(x+1, y+1) {
				p += penaltyBox
			}
		}
	}

	// Balance of dark and light pixels.
	dark := 0
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			if c.Black(x, y) {
				dark++
			}
		}
	}
	total := siz * siz
	k := abs(dark*20-total*10) / total
	p += k * penaltyBal
	return p
}

// runHistory holds the lengths of the last seven runs in a row or
// column, most recent first.
type runHistory struct {
	run  [7]int
	size int
}

// add records a run.  The first run of a line, always light,
// is extended by a quiet zone of the size of the code.
func (h *runHistory) add(run int) {
	if h.run[0] == 0 {
		run += h.size
	}
	copy(h.run[1:], h.run[:6])
	h.run[0] = run
}

// count returns the number of finder-like patterns, 0 to 2, ending
// with the latest light run.
func (h *runHistory) count() int {
	n := h.run[1]
	core := n > 0 && h.run[2] == n && h.run[3] == n*3 &&
		h.run[4] == n && h.run[5] == n
	c := 0
	if core && h.run[0] >= n*4 && h.run[6] >= n {
		c++
	}
	if core && h.run[6] >= n*4 && h.run[0] >= n {
		c++
	}
	return c
}

// terminate closes a line ending with a run of the given colour and
// length, extended by the quiet zone, and returns the finder-like
// patterns it completes.
func (h *runHistory) terminate(black bool, run int) int {
	if black {
		h.add(run)
		run = 0
	}
	h.add(run + h.size)
	return h.count()
}
