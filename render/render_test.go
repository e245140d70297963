// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grid is a Symbol drawn as strings, '#' for black.
type grid []string

func (g grid) Size() int { return len(g) }

func (g grid) Black(x, y int) bool {
	return 0 <= y && y < len(g) && 0 <= x && x < len(g[y]) && g[y][x] == '#'
}

func randomGrid(r *rand.Rand, siz int) grid {
	g := make(grid, siz)
	for y := range g {
		b := make([]byte, siz)
		for x := range b {
			b[x] = ".#"[r.Intn(2)]
		}
		g[y] = string(b)
	}
	return g
}

var corner = grid{
	"##.",
	"#..",
	"..#",
}

func TestBitmap(t *testing.T) {
	b, stride := bitmap(corner)
	assert.Equal(t, 1, stride)
	assert.Equal(t, []byte{0xc0, 0x80, 0x20}, b)

	g := grid{
		"#........#",
		".#########",
	}
	for len(g) < 10 {
		g = append(g, strings.Repeat(".", 10))
	}
	b, stride = bitmap(g)
	assert.Equal(t, 2, stride)
	want := make([]byte, 20)
	copy(want, []byte{0x80, 0x40, 0x7f, 0xc0})
	assert.Equal(t, want, b)
}

// naivePBM renders s one pixel at a time.
func naivePBM(s Symbol, o Options) []byte {
	o, _ = o.check()
	length := o.Scale * (s.Size() + 2*o.Border)
	var b bytes.Buffer
	fmt.Fprintf(&b, "P4\n%d %d\n", length, length)
	row := make([]byte, (length+7)/8)
	for py := 0; py < length; py++ {
		for i := range row {
			row[i] = 0
		}
		for px := 0; px < length; px++ {
			if o.ink(s, px/o.Scale-o.Border, py/o.Scale-o.Border) {
				row[px/8] |= 0x80 >> uint(px&7)
			}
		}
		b.Write(row)
	}
	return b.Bytes()
}

// maskPadding clears the bits past the image width in every row.
func maskPadding(p []byte, length int) []byte {
	hdr := bytes.IndexByte(p[3:], '\n') + 4
	out := append([]byte(nil), p...)
	if length&7 == 0 {
		return out
	}
	stride := (length + 7) / 8
	m := byte(0xff << uint(8-length&7))
	for i := hdr + stride - 1; i < len(out); i += stride {
		out[i] &= m
	}
	return out
}

func TestPBM(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, siz := range []int{1, 7, 8, 9, 16, 21, 25, 29, 57} {
		g := randomGrid(r, siz)
		for scale := 1; scale <= 9; scale++ {
			for bord := 0; bord <= 5; bord++ {
				for _, inv := range []bool{false, true} {
					o := Options{Scale: scale, Border: bord, Invert: inv}
					var b bytes.Buffer
					require.NoError(t, PBM(&b, g, o))
					length := scale * (siz + 2*bord)
					require.Equal(t, naivePBM(g, o),
						maskPadding(b.Bytes(), length),
						"size %d %+v", siz, o)
				}
			}
		}
	}
}

func TestFlipBits(t *testing.T) {
	p := make([]byte, 3)
	flipBits(p, 3, 10)
	assert.Equal(t, []byte{0x1f, 0xf8, 0}, p)
	flipBits(p, 0, 24)
	assert.Equal(t, []byte{0xe0, 0x07, 0xff}, p)
	flipBits(p, 8, 0)
	assert.Equal(t, []byte{0xe0, 0x07, 0xff}, p)
}

func TestPBMHeader(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, PBM(&b, corner, Options{Scale: 2, Border: 1}))
	assert.Equal(t, "P4\n10 10\n", b.String()[:9])
	assert.Len(t, b.Bytes(), 9+10*2)
}

func TestText(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Text(&b, corner, Options{}))
	assert.Equal(t, "█▀ \n  ▀\n", b.String())

	b.Reset()
	require.NoError(t, Text(&b, corner, Options{Border: 1, Invert: true}))
	assert.Equal(t, ""+
		"█▀▀██\n"+
		"█▄█▀█\n"+
		"▀▀▀▀▀\n", b.String())
}

func TestASCII(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, ASCII(&b, corner, Options{Border: 1}))
	assert.Equal(t, ""+
		"          \n"+
		"  ####    \n"+
		"  ##      \n"+
		"      ##  \n"+
		"          \n", b.String())
}

func TestSVG(t *testing.T) {
	var b bytes.Buffer
	o := Options{Scale: 3, Border: 4, Description: `a<b & "c"`}
	require.NoError(t, SVG(&b, corner, o))
	s := b.String()
	assert.Contains(t, s, `width="33" height="33" viewBox="0 0 11 11"`)
	assert.Contains(t, s, `shape-rendering="crispEdges"`)
	assert.Contains(t, s, "<desc>a&lt;b &amp; &#34;c&#34;</desc>")
	assert.Contains(t, s, `<rect width="100%" height="100%" fill="#FFFFFF"/>`)
	assert.Contains(t, s, `<path d="M4,4h1v1h-1z M5,4h1v1h-1z M4,5h1v1h-1z M6,6h1v1h-1z" fill="#000000"/>`)
	assert.True(t, strings.HasSuffix(s, "</svg>\n"))

	b.Reset()
	require.NoError(t, SVG(&b, grid{"."}, Options{Invert: true}))
	s = b.String()
	assert.Contains(t, s, `fill="#000000"/>`)
	assert.NotContains(t, s, "<path")
	assert.NotContains(t, s, "<desc>")
}

func TestJSON(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, JSON(&b, corner, Options{Border: 1, Scale: 5}))
	var m Matrix
	require.NoError(t, json.Unmarshal(b.Bytes(), &m))
	assert.Equal(t, 5, m.Size)
	assert.Equal(t, 1, m.Border)
	require.Len(t, m.Modules, 5)
	assert.Equal(t, []bool{false, true, true, false, false}, m.Modules[1])
	assert.Equal(t, []bool{false, false, false, true, false}, m.Modules[3])
	assert.True(t, strings.HasPrefix(b.String(), `{"size":5,"border":1,"modules":[[false,`))
}

func TestCBOR(t *testing.T) {
	var b bytes.Buffer
	o := Options{Border: 2, Invert: true}
	require.NoError(t, CBOR(&b, corner, o))
	var m Matrix
	require.NoError(t, cbor.Unmarshal(b.Bytes(), &m))
	want, err := NewMatrix(corner, o)
	require.NoError(t, err)
	assert.Equal(t, *want, m)
	assert.Equal(t, 7, m.Size)
	assert.True(t, m.Modules[0][0])
	assert.False(t, m.Modules[2][2])
}

func TestImage(t *testing.T) {
	m, err := Image(corner, Options{Scale: 2, Border: 1})
	require.NoError(t, err)
	assert.Equal(t, 10, m.Bounds().Dx())
	assert.Equal(t, 10, m.Bounds().Dy())
	assert.Equal(t, color.GrayModel, m.ColorModel())
	for _, tt := range []struct {
		x, y  int
		black bool
	}{
		{0, 0, false}, {1, 1, false}, {2, 2, true}, {3, 3, true},
		{5, 3, true}, {6, 2, false}, {2, 5, true}, {7, 7, true},
		{8, 8, false}, {-1, 3, false}, {10, 3, false},
	} {
		want := whiteColor
		if tt.black {
			want = blackColor
		}
		assert.Equal(t, want, m.At(tt.x, tt.y), "(%d,%d)", tt.x, tt.y)
	}
}

func TestPNG(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, PNG(&b, corner, Options{Scale: 4, Border: 2}))
	m, err := png.Decode(&b)
	require.NoError(t, err)
	assert.Equal(t, 28, m.Bounds().Dx())
	for _, tt := range []struct {
		x, y int
		v    uint8
	}{
		{0, 0, 0xff}, {8, 8, 0}, {11, 11, 0}, {15, 8, 0},
		{16, 8, 0xff}, {8, 15, 0}, {12, 12, 0xff}, {16, 16, 0},
	} {
		assert.Equal(t, tt.v, color.GrayModel.Convert(m.At(tt.x, tt.y)).(color.Gray).Y,
			"(%d,%d)", tt.x, tt.y)
	}
}

func TestOptions(t *testing.T) {
	var b bytes.Buffer
	for _, o := range []Options{{Scale: -1}, {Border: -1}} {
		assert.ErrorIs(t, PBM(&b, corner, o), ErrOptions)
		assert.ErrorIs(t, Text(&b, corner, o), ErrOptions)
		assert.ErrorIs(t, ASCII(&b, corner, o), ErrOptions)
		assert.ErrorIs(t, SVG(&b, corner, o), ErrOptions)
		assert.ErrorIs(t, JSON(&b, corner, o), ErrOptions)
		assert.ErrorIs(t, CBOR(&b, corner, o), ErrOptions)
		assert.ErrorIs(t, PNG(&b, corner, o), ErrOptions)
	}
	assert.Zero(t, b.Len())
}
