// Copyright 2010 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var qrField = NewField(0x11d, 2)

func TestFieldTables(t *testing.T) {
	f := qrField
	for x := 1; x < 256; x++ {
		b := byte(x)
		require.Equal(t, b, f.Exp(f.Log(b)), "exp(log(%d))", x)
		assert.Equal(t, byte(1), f.Mul(b, f.Inv(b)), "%d * inv", x)
	}
	assert.Equal(t, byte(0), f.Mul(0, 0x53))
	assert.Equal(t, byte(0), f.Inv(0))
	assert.Equal(t, -1, f.Log(0))
	assert.Equal(t, byte(0), f.Exp(-1))
	// α^8 = x^4 + x^3 + x^2 + 1 under 0x11d
	assert.Equal(t, byte(0x1d), f.Exp(8))
	assert.Equal(t, byte(1), f.Exp(255))
}

func TestMulMatchesCarrylessProduct(t *testing.T) {
	f := qrField
	for x := 0; x < 256; x += 7 {
		for y := 0; y < 256; y += 5 {
			assert.Equal(t, byte(mul(x, y, 0x11d)), f.Mul(byte(x), byte(y)))
		}
	}
}

func TestNewFieldRejectsReducible(t *testing.T) {
	assert.Panics(t, func() { NewField(0x100, 2) })
	// x^8 + 1 = (x + 1)^8
	assert.Panics(t, func() { NewField(0x101, 2) })
	// 2 is not a generator for 0x11b
	assert.Panics(t, func() { NewField(0x11b, 2) })
	assert.NotPanics(t, func() { NewField(0x11b, 3) })
}

func TestDivisor(t *testing.T) {
	// g(x) = x^7 + 127x^6 + 122x^5 + 154x^4 + 164x^3 + 11x^2 + 68x + 117
	assert.Equal(t, []byte{127, 122, 154, 164, 11, 68, 117}, qrField.Divisor(7))
	assert.Equal(t, []byte{1}, qrField.Divisor(1))
	assert.Equal(t, []byte{3, 2}, qrField.Divisor(2))
	assert.Panics(t, func() { qrField.Divisor(0) })
	assert.Panics(t, func() { qrField.Divisor(256) })
}

func TestRemainder(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		ecc  []byte
	}{
		{
			name: "HELLO WORLD 1-M",
			data: []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64,
				236, 17, 236, 17, 236, 17},
			ecc: []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23},
		},
		{
			name: "HELLO WORLD 1-Q",
			data: []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64,
				236, 17, 236},
			ecc: []byte{168, 72, 22, 82, 217, 54, 156, 0, 46, 15,
				180, 122, 16},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			div := qrField.Divisor(len(tt.ecc))
			assert.Equal(t, tt.ecc, qrField.Remainder(tt.data, div))

			check := make([]byte, len(tt.ecc))
			for i := range check {
				check[i] = 0xff // ECC must overwrite
			}
			NewRSEncoder(qrField, len(tt.ecc)).ECC(tt.data, check)
			assert.Equal(t, tt.ecc, check)
		})
	}
}

func TestRemainderOfCodewordIsZero(t *testing.T) {
	// A systematic codeword is divisible by the generator.
	data := []byte("QR codes are systematic")
	div := qrField.Divisor(10)
	cw := append(append([]byte{}, data...), qrField.Remainder(data, div)...)
	assert.Equal(t, make([]byte, 10), qrField.Remainder(cw, div))
}

func TestECCLengthMismatch(t *testing.T) {
	rs := NewRSEncoder(qrField, 4)
	assert.Panics(t, func() { rs.ECC([]byte{1, 2}, make([]byte, 3)) })
}

func ExampleField_Remainder() {
	f := NewField(0x11d, 2)
	data := []byte{16, 32, 12, 86, 97, 128, 236, 17, 236, 17, 236, 17,
		236, 17, 236, 17}
	fmt.Println(f.Remainder(data, f.Divisor(10)))
	// Output:
	// [165 36 212 193 237 54 199 135 44 85]
}
