// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qr "github.com/unixdj/qrgen"
	"github.com/unixdj/qrgen/internal/logger"
)

var helloWorld = []string{
	"#######.##..#.#######",
	"#.....#..#..#.#.....#",
	"#.###.#..###..#.###.#",
	"#.###.#...#...#.###.#",
	"#.###.#..##.#.#.###.#",
	"#.....#...##..#.....#",
	"#######.#.#.#.#######",
	"........##..#........",
	"##.##.#..###..#.....#",
	"..####..#.#####.#.#.#",
	"####..###.#...#####..",
	"##...#.........###..#",
	"#.##..######.##.##.##",
	"........#######.##.#.",
	"#######..#.#......###",
	"#.....#..####..##...#",
	"#.###.#.##...##.##..#",
	"#.###.#.#.#.#...#....",
	"#.###.#..###..##..###",
	"#.....#.########...#.",
	"#######.#...##....##.",
}

// requestText formats a request as the driver sends it.
func requestText(data []byte, level, minv, maxv, mask, boost int) string {
	var b strings.Builder
	fmt.Fprintln(&b, len(data))
	for _, c := range data {
		fmt.Fprintln(&b, c)
	}
	for _, v := range []int{level, minv, maxv, mask, boost} {
		fmt.Fprintln(&b, v)
	}
	return b.String()
}

func TestRun(t *testing.T) {
	in := requestText([]byte("Hello, world!"), 0, 1, 40, -1, 1) +
		requestText([]byte("Hello, world!"), 1, 1, 1, -1, 0) +
		requestText(bytes.Repeat([]byte{'a'}, 3000), 0, 1, 40, -1, 1) +
		requestText([]byte{0xff, 0xfe}, 0, 1, 40, 3, 0) +
		"-1\n"
	var out bytes.Buffer
	require.NoError(t, run(strings.NewReader(in), &out, logger.Discard()))

	lines := strings.Split(out.String(), "\n")
	require.Equal(t, "1", lines[0])
	var got []string
	for y := 0; y < 21; y++ {
		var row strings.Builder
		for x := 0; x < 21; x++ {
			row.WriteByte(".#"[lines[1+y*21+x][0]-'0'])
		}
		got = append(got, row.String())
	}
	assert.Equal(t, helloWorld, got)

	lines = lines[1+21*21:]
	assert.Equal(t, "-1", lines[0])
	assert.Equal(t, "-1", lines[1])
	assert.Equal(t, "1", lines[2])
	assert.Len(t, lines[3:], 21*21+1)
	assert.Equal(t, "", lines[len(lines)-1])
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	err := run(strings.NewReader(requestText([]byte("A"), 4, 1, 40, -1, 1)),
		&out, logger.Discard())
	assert.ErrorIs(t, err, qr.ErrLevel)

	err = run(strings.NewReader("2\n65\n"), &out, logger.Discard())
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	err = run(strings.NewReader("1\n256\n"), &out, logger.Discard())
	assert.Error(t, err)

	err = run(strings.NewReader("x\n"), &out, logger.Discard())
	assert.Error(t, err)

	out.Reset()
	assert.NoError(t, run(strings.NewReader("-1\n2\n"), &out, logger.Discard()))
	assert.Zero(t, out.Len())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	lg, err := newLogger(&buf, "", "")
	require.NoError(t, err)
	lg.Info("hidden")
	lg.Warn("shown", "n", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown n=1")

	buf.Reset()
	lg, err = newLogger(&buf, "debug", "JSON")
	require.NoError(t, err)
	require.NoError(t, run(strings.NewReader(requestText([]byte("A"), 0, 1, 40, -1, 1)+"-1\n"),
		io.Discard, lg))
	assert.Contains(t, buf.String(), `"msg":"request"`)
	assert.Contains(t, buf.String(), `"msg":"qr: encoded"`)

	_, err = newLogger(&buf, "", "xml")
	assert.Error(t, err)
}
