// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Command qrworker encodes QR codes for a test driver.

It reads decimal integers from standard input, one per line.  Each
request is the data length n, n data bytes, the error correction
level (0-3 for L, M, Q, H), the smallest and the largest version,
the mask (-1 for automatic) and 1 or 0 to enable or disable level
boosting.  A length of -1 ends the session.

Data consisting of ASCII characters only is split into segments as
text; other data goes into a single byte segment.  For each request
the worker prints the version followed by one line per module, 1 for
black, row by row; or -1 if the data does not fit.

The environment variable QRWORKER_LOG sets the log level (debug,
info, warn or error; warn by default) and QRWORKER_LOG_FORMAT the
log format, text or json.
*/
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	qr "github.com/unixdj/qrgen"
	"github.com/unixdj/qrgen/coding"
	"github.com/unixdj/qrgen/internal/logger"
	"github.com/unixdj/qrgen/split"
)

// reader reads one integer per line.
type reader struct {
	s *bufio.Scanner
}

func (r *reader) next() (int, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.Atoi(strings.TrimSpace(r.s.Text()))
}

type request struct {
	data       []byte
	level      qr.Level
	minVersion qr.Version
	maxVersion qr.Version
	mask       qr.Mask
	boost      bool
}

// read reads a request.  It returns nil at the end of the session.
func (r *reader) read() (*request, error) {
	n, err := r.next()
	if err != nil || n == -1 {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("bad length %d", n)
	}
	req := &request{data: make([]byte, n)}
	for i := range req.data {
		b, err := r.next()
		if err != nil {
			return nil, err
		}
		if b < 0 || b > 255 {
			return nil, fmt.Errorf("bad byte %d", b)
		}
		req.data[i] = byte(b)
	}
	var v [5]int
	for i := range v {
		if v[i], err = r.next(); err != nil {
			return nil, err
		}
	}
	req.level = qr.Level(v[0])
	req.minVersion, req.maxVersion = qr.Version(v[1]), qr.Version(v[2])
	req.mask = qr.Mask(v[3])
	req.boost = v[4] != 0
	return req, nil
}

func isASCII(p []byte) bool {
	for _, b := range p {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

func (req *request) segments() ([]coding.Segment, error) {
	if isASCII(req.data) {
		return split.Text(string(req.data))
	}
	seg, err := coding.MakeBytes(req.data)
	if err != nil {
		return nil, err
	}
	return []coding.Segment{seg}, nil
}

// run serves requests from r until the end of the session.
func run(r io.Reader, w io.Writer, lg logger.Logger) error {
	in := &reader{bufio.NewScanner(r)}
	out := bufio.NewWriter(w)
	for {
		req, err := in.read()
		if err != nil {
			return err
		}
		if req == nil {
			return out.Flush()
		}
		lg.Debug("request", "bytes", len(req.data), "level", req.level,
			"min", req.minVersion, "max", req.maxVersion,
			"mask", req.mask, "boost", req.boost)
		segs, err := req.segments()
		var c *qr.Code
		if err == nil {
			c, err = qr.Encode(segs, req.level, qr.Options{
				MinVersion: req.minVersion,
				MaxVersion: req.maxVersion,
				ForceMask:  req.mask != qr.AutoMask,
				Mask:       req.mask,
				BoostECL:   req.boost,
				Logger:     lg,
			})
		}
		switch {
		case errors.Is(err, qr.ErrDataTooLong):
			lg.Debug("data too long", "err", err)
			fmt.Fprintln(out, -1)
		case err != nil:
			return err
		default:
			fmt.Fprintln(out, c.Version())
			for y := 0; y < c.Size(); y++ {
				for x := 0; x < c.Size(); x++ {
					if c.Black(x, y) {
						out.WriteString("1\n")
					} else {
						out.WriteString("0\n")
					}
				}
			}
		}
		if err := out.Flush(); err != nil {
			return err
		}
	}
}

// newLogger returns the logger for the level and format names taken
// from the environment.  The level defaults to warn; format is text
// or json.
func newLogger(w io.Writer, level, format string) (logger.Logger, error) {
	lv := slog.LevelWarn
	if level != "" {
		lv = logger.ParseLevel(level)
	}
	switch strings.ToLower(format) {
	case "", "text":
		return logger.Text(w, lv), nil
	case "json":
		return logger.JSON(w, lv), nil
	}
	return nil, fmt.Errorf("log format %q: must be text or json", format)
}

func main() {
	log.SetFlags(0)
	lg, err := newLogger(os.Stderr, os.Getenv("QRWORKER_LOG"),
		os.Getenv("QRWORKER_LOG_FORMAT"))
	if err != nil {
		log.Fatalln(err)
	}
	if err := run(os.Stdin, os.Stdout, lg.With("cmd", "qrworker")); err != nil {
		log.Fatalln(err)
	}
}
