// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"
)

// A Matrix is the JSON and CBOR form of a symbol.
type Matrix struct {
	Size    int      `json:"size" cbor:"size"`       // rows and columns, quiet zone included
	Border  int      `json:"border" cbor:"border"`   // quiet zone width
	Modules [][]bool `json:"modules" cbor:"modules"` // rows top to bottom; true for black
}

// NewMatrix returns the modules of s surrounded by the quiet zone.
// Invert is honoured; Scale is ignored.
func NewMatrix(s Symbol, o Options) (*Matrix, error) {
	o, err := o.check()
	if err != nil {
		return nil, err
	}
	bord := o.Border
	dim := s.Size() + 2*bord
	m := &Matrix{Size: dim, Border: bord, Modules: make([][]bool, dim)}
	for y := range m.Modules {
		row := make([]bool, dim)
		for x := range row {
			row[x] = o.ink(s, x-bord, y-bord)
		}
		m.Modules[y] = row
	}
	return m, nil
}

// JSON writes s to w as a JSON Matrix followed by a newline.
func JSON(w io.Writer, s Symbol, o Options) error {
	m, err := NewMatrix(s, o)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(m)
}

// CBOR writes s to w as a CBOR encoded Matrix.
func CBOR(w io.Writer, s Symbol, o Options) error {
	m, err := NewMatrix(s, o)
	if err != nil {
		return err
	}
	return cbor.NewEncoder(w).Encode(m)
}
