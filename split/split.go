// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits strings into QR code segments.

The split is greedy and done in a single pass.  Each maximal run of
characters from the alphanumeric set becomes one segment: numeric if
the run consists of digits only, alphanumeric otherwise.  Each maximal
run of other characters becomes one byte segment holding its UTF-8
bytes as is.  Kanji mode is never chosen; use coding.MakeKanjiText to
build kanji segments explicitly.

The result is not the shortest possible encoding.  For example, a
long run of digits inside alphanumeric text stays alphanumeric.
*/
package split // import "github.com/unixdj/qrgen/split"

import (
	"github.com/unixdj/qrgen/coding"
)

// Extended Channel Interpretation assignment numbers.
const (
	Latin1ECI   = 3   // ISO 8859-1
	ShiftJISECI = 20  // Shift JIS
	UTF8ECI     = 26  // UTF-8
	BinaryECI   = 899 // 8-bit binary data
)

// A Scanner produces the segments of a string one at a time.
// Successive calls to Scan step through the segments.  A Scanner
// cannot be restarted.
//
//	sc := split.NewScanner(text)
//	for sc.Scan() {
//		segs = append(segs, sc.Segment())
//	}
//	if err := sc.Err(); err != nil {
//		// handle error
//	}
type Scanner struct {
	text string
	seg  coding.Segment
	err  error
}

// NewScanner returns a Scanner splitting text.
func NewScanner(text string) *Scanner {
	return &Scanner{text: text}
}

// isAlpha reports whether the byte c is in the alphanumeric set.
// Bytes of multibyte UTF-8 sequences never are.
func isAlpha(c byte) bool { return coding.IsAlpha(rune(c)) }

// Scan advances the Scanner to the next segment, which is then
// available through Segment.  It returns false at the end of the text
// or on error.
func (s *Scanner) Scan() bool {
	if s.text == "" || s.err != nil {
		return false
	}
	alpha := isAlpha(s.text[0])
	n := 1
	for n < len(s.text) && isAlpha(s.text[n]) == alpha {
		n++
	}
	run := s.text[:n]
	s.text = s.text[n:]
	switch {
	case !alpha:
		s.seg, s.err = coding.MakeBytes([]byte(run))
	case coding.IsNumeric(run):
		s.seg, s.err = coding.MakeNumeric(run)
	default:
		s.seg, s.err = coding.MakeAlphanumeric(run)
	}
	if s.err != nil {
		s.seg = coding.Segment{}
		s.text = ""
		return false
	}
	return true
}

// Segment returns the most recent segment produced by Scan.
func (s *Scanner) Segment() coding.Segment { return s.seg }

// Err returns the error, if any, that stopped the Scanner.
// It wraps coding.ErrDataTooLong for a run too long for any code.
func (s *Scanner) Err() error { return s.err }

// Text returns the segments of text.  An empty text has no segments.
func Text(text string) ([]coding.Segment, error) {
	var segs []coding.Segment
	sc := NewScanner(text)
	for sc.Scan() {
		segs = append(segs, sc.Segment())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return segs, nil
}

// TextECI is like Text but precedes the segments with an ECI segment
// setting the assignment number to eci.  If eci is 0, no ECI segment
// is added.
func TextECI(text string, eci int) ([]coding.Segment, error) {
	segs, err := Text(text)
	if err != nil || eci == 0 {
		return segs, err
	}
	seg, err := coding.MakeECI(eci)
	if err != nil {
		return nil, err
	}
	return append([]coding.Segment{seg}, segs...), nil
}
