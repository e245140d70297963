// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/qrgen/coding"
)

type seg struct {
	mode  coding.Mode
	count int
}

func summary(segs []coding.Segment) []seg {
	r := []seg{}
	for _, s := range segs {
		r = append(r, seg{s.Mode, s.Count})
	}
	return r
}

func TestText(t *testing.T) {
	for _, tt := range []struct {
		text string
		want []seg
	}{
		{"", []seg{}},
		{"12345", []seg{{coding.Numeric, 5}}},
		{"314159", []seg{{coding.Numeric, 6}}},
		{"ABC123", []seg{{coding.Alphanumeric, 6}}},
		{"HELLO WORLD", []seg{{coding.Alphanumeric, 11}}},
		// digits never split an alphanumeric run
		{"123ABC456", []seg{{coding.Alphanumeric, 9}}},
		{"hello", []seg{{coding.Byte, 5}}},
		{"héllo", []seg{{coding.Byte, 6}}},
		{"Hello, world!", []seg{
			{coding.Alphanumeric, 1},
			{coding.Byte, 5},
			{coding.Alphanumeric, 1},
			{coding.Byte, 6},
		}},
		{"AB€12", []seg{
			{coding.Alphanumeric, 2},
			{coding.Byte, 3},
			{coding.Numeric, 2},
		}},
		{"\xff\xfe01", []seg{{coding.Byte, 2}, {coding.Numeric, 2}}},
	} {
		segs, err := Text(tt.text)
		require.NoError(t, err, "%q", tt.text)
		assert.Equal(t, tt.want, summary(segs), "%q", tt.text)
	}
}

func TestTextData(t *testing.T) {
	segs, err := Text("01234567")
	require.NoError(t, err)
	require.Len(t, segs, 1)
	want, err := coding.MakeNumeric("01234567")
	require.NoError(t, err)
	assert.Equal(t, want, segs[0])

	segs, err = Text("a\x00b")
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, []byte("a\x00b"), segs[0].Data.Bytes())
}

func TestScannerStops(t *testing.T) {
	sc := NewScanner("AB cd")
	require.True(t, sc.Scan())
	assert.Equal(t, coding.Alphanumeric, sc.Segment().Mode)
	require.True(t, sc.Scan())
	assert.Equal(t, coding.Byte, sc.Segment().Mode)
	assert.False(t, sc.Scan())
	assert.False(t, sc.Scan())
	assert.NoError(t, sc.Err())
}

func TestTextTooLong(t *testing.T) {
	sc := NewScanner("AB" + strings.Repeat("x", coding.MaxBits/8+1) + "CD")
	require.True(t, sc.Scan())
	assert.False(t, sc.Scan())
	assert.ErrorIs(t, sc.Err(), coding.ErrDataTooLong)
	assert.False(t, sc.Scan())

	_, err := Text(strings.Repeat("9", 8000))
	assert.ErrorIs(t, err, coding.ErrDataTooLong)
}

func TestTextECI(t *testing.T) {
	segs, err := TextECI("AB", 0)
	require.NoError(t, err)
	assert.Equal(t, []seg{{coding.Alphanumeric, 2}}, summary(segs))

	segs, err = TextECI("AB", BinaryECI)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, coding.ECI, segs[0].Mode)
	assert.Equal(t, 16, segs[0].Data.Len())

	_, err = TextECI("AB", coding.MaxECI)
	var se *coding.SegmentError
	assert.ErrorAs(t, err, &se)
}
