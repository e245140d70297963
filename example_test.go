// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr_test

import (
	"errors"
	"fmt"
	"log"
	"strings"

	qr "github.com/unixdj/qrgen"
	"github.com/unixdj/qrgen/coding"
)

func ExampleEncodeText() {
	c, err := qr.EncodeText("Hello, world!", qr.L)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Println(c.Version(), c.Level(), c.Mask(), c.Size())
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			if c.Black(x, y) {
				fmt.Print("#")
			} else {
				fmt.Print(".")
			}
		}
		fmt.Println()
	}
	// Output:
	// 1 L 6 21
	// #######
	// #.....#
	// #.###.#
	// #.###.#
	// #.###.#
	// #.....#
	// #######
}

func ExampleEncode() {
	seg, err := coding.MakeNumeric("314159265358979323846264338327950288419716939937510")
	if err != nil {
		log.Fatalln(err)
	}
	opts := qr.DefaultOptions()
	opts.ForceMask = true
	opts.Mask = 3
	opts.BoostECL = false
	c, err := qr.Encode([]coding.Segment{seg}, qr.L, opts)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Println(c.Version(), c.Level(), c.Mask())
	// Output:
	// 2 L 3
}

func ExampleEncodeBinary() {
	_, err := qr.EncodeBinary([]byte(strings.Repeat("x", 3000)), qr.L)
	fmt.Println(errors.Is(err, qr.ErrDataTooLong))
	// Output:
	// true
}
