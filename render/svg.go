// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
)

// SVG writes an SVG image displaying s to w.  The view box has one
// unit per module.  The background is a rectangle covering the image,
// and every dark module is a unit square in a single path.
// The image is Scale times the view box in size.
func SVG(w io.Writer, s Symbol, o Options) error {
	o, err := o.check()
	if err != nil {
		return err
	}
	bg, fg := "#FFFFFF", "#000000"
	if o.Invert {
		bg, fg = fg, bg
	}
	siz := s.Size()
	bord := o.Border
	dim := siz + 2*bord
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d" stroke="none" shape-rendering="crispEdges">
`, dim*o.Scale, dim*o.Scale, dim, dim)
	if o.Description != "" {
		b.WriteString("\t<desc>")
		if err := xml.EscapeText(b, []byte(o.Description)); err != nil {
			return err
		}
		b.WriteString("</desc>\n")
	}
	fmt.Fprintf(b, "\t<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", bg)
	first := true
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			if !s.Black(x, y) {
				continue
			}
			if first {
				b.WriteString("\t<path d=\"")
				first = false
			} else {
				b.WriteByte(' ')
			}
			fmt.Fprintf(b, "M%d,%dh1v1h-1z", x+bord, y+bord)
		}
	}
	if !first {
		fmt.Fprintf(b, "\" fill=\"%s\"/>\n", fg)
	}
	b.WriteString("</svg>\n")
	return b.Flush()
}
