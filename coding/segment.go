// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"strconv"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// A Mode is a QR segment encoding mode.
type Mode int8

// Encoding modes.
const (
	Numeric      Mode = iota // digits, 3 per 10 bits
	Alphanumeric             // "0-9A-Z $%*+-./:", 2 per 11 bits
	Byte                     // any data, 8 bits per byte
	Kanji                    // Shift JIS double byte characters, 13 bits each
	ECI                      // extended channel interpretation designator
)

var modes = [...]struct {
	name        string
	indicator   uint32
	countLength [3]int
}{
	Numeric:      {"numeric", 1, [3]int{10, 12, 14}},
	Alphanumeric: {"alphanumeric", 2, [3]int{9, 11, 13}},
	Byte:         {"byte", 4, [3]int{8, 16, 16}},
	Kanji:        {"kanji", 8, [3]int{8, 10, 12}},
	ECI:          {"eci", 7, [3]int{0, 0, 0}},
}

func (m Mode) String() string {
	if m.IsValid() {
		return modes[m].name
	}
	return strconv.Itoa(int(m))
}

// IsValid reports whether m is one of the predefined modes.
func (m Mode) IsValid() bool { return Numeric <= m && m <= ECI }

// Indicator returns the 4 bit mode indicator.
func (m Mode) Indicator() uint32 { return modes[m].indicator }

// CountLength returns the length of the character count field of
// mode m in the given version size class.
func (m Mode) CountLength(class int) int { return modes[m].countLength[class] }

// EncodedLength returns the number of data bits a segment of mode m
// holding count characters packs into, excluding the header.
// ECI designators have variable length and report -1.
func (m Mode) EncodedLength(count int) int {
	switch m {
	case Numeric:
		return count/3*10 + [3]int{0, 4, 7}[count%3]
	case Alphanumeric:
		return count/2*11 + count%2*6
	case Byte:
		return count * 8
	case Kanji:
		return count * 13
	}
	return -1
}

// A Segment is a run of data packed in a single mode.
// Data holds the packed bits, excluding mode indicator and character
// count.  Segments are not modified once built.
type Segment struct {
	Mode  Mode  // encoding mode
	Count int   // characters, bytes or kanji; 0 for ECI
	Data  *Bits // packed data
}

// SegmentError represents input that cannot be packed into a Segment.
type SegmentError struct {
	Mode Mode   // requested mode
	Text string // offending input, if any
	Msg  string // reason other than an invalid character
}

func (e *SegmentError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("qr: %s segment: %s", e.Mode, e.Msg)
	}
	return fmt.Sprintf("qr: non-%s string %#q", e.Mode, e.Text)
}

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table, indexed by the low 6 bits of
// a valid character.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

// IsDigit reports whether r is encodable in numeric mode.
func IsDigit(r rune) bool { return uint32(r-'0') < 10 }

// IsAlpha reports whether r is encodable in alphanumeric mode.
func IsAlpha(r rune) bool { return alphamask>>(uint32(r)-' ')&1 != 0 }

// IsNumeric reports whether every character of s is a digit.
func IsNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if !IsDigit(rune(s[i])) {
			return false
		}
	}
	return true
}

// IsAlphanumeric reports whether every character of s is in the
// alphanumeric set.
func IsAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if !IsAlpha(rune(s[i])) {
			return false
		}
	}
	return true
}

// tooLong reports a segment whose packed data would not fit
// even the largest code.
func tooLong(m Mode, n int) error {
	return fmt.Errorf("%w: %s segment of %d bits exceeds %d",
		ErrDataTooLong, m, n, MaxBits)
}

// MakeNumeric returns a numeric segment holding the digits in s.
// Groups of 3 digits take 10 bits; a final group of 2 or 1 takes
// 7 or 4 bits.
func MakeNumeric(s string) (Segment, error) {
	if !IsNumeric(s) {
		return Segment{}, &SegmentError{Mode: Numeric, Text: s}
	}
	if n := Numeric.EncodedLength(len(s)); n > MaxBits {
		return Segment{}, tooLong(Numeric, n)
	}
	b := new(Bits)
	count := len(s)
	for ; len(s) >= 3; s = s[3:] {
		b.write(uint32(s[0]-'0')*100+uint32(s[1]-'0')*10+uint32(s[2]-'0'), 10)
	}
	switch len(s) {
	case 2:
		b.write(uint32(s[0]-'0')*10+uint32(s[1]-'0'), 7)
	case 1:
		b.write(uint32(s[0]-'0'), 4)
	}
	return Segment{Numeric, count, b}, nil
}

// MakeAlphanumeric returns an alphanumeric segment holding s.
// Pairs of characters take 11 bits; a final single one takes 6 bits.
func MakeAlphanumeric(s string) (Segment, error) {
	if !IsAlphanumeric(s) {
		return Segment{}, &SegmentError{Mode: Alphanumeric, Text: s}
	}
	if n := Alphanumeric.EncodedLength(len(s)); n > MaxBits {
		return Segment{}, tooLong(Alphanumeric, n)
	}
	b := new(Bits)
	count := len(s)
	for ; len(s) >= 2; s = s[2:] {
		b.write(uint32(alpha[s[0]&0x3f])*45+uint32(alpha[s[1]&0x3f]), 11)
	}
	if len(s) == 1 {
		b.write(uint32(alpha[s[0]&0x3f]), 6)
	}
	return Segment{Alphanumeric, count, b}, nil
}

// MakeBytes returns a byte segment holding p.
func MakeBytes(p []byte) (Segment, error) {
	if n := Byte.EncodedLength(len(p)); n > MaxBits {
		return Segment{}, tooLong(Byte, n)
	}
	b := new(Bits)
	b.AppendBytes(p)
	return Segment{Byte, len(p), b}, nil
}

// MakeLatin1 returns a byte segment holding s encoded as ISO 8859-1.
func MakeLatin1(s string) (Segment, error) {
	t, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return Segment{}, &SegmentError{Mode: Byte, Text: s,
			Msg: "not encodable as ISO 8859-1"}
	}
	return MakeBytes([]byte(t))
}

// MaxKanji is the largest 13 bit kanji mode code.
const MaxKanji = 0x1fff

// MakeKanji returns a kanji segment holding codes, each a 13 bit
// value derived from the Shift JIS code of a character.
func MakeKanji(codes []uint16) (Segment, error) {
	if n := Kanji.EncodedLength(len(codes)); n > MaxBits {
		return Segment{}, tooLong(Kanji, n)
	}
	b := new(Bits)
	for _, c := range codes {
		if c > MaxKanji {
			return Segment{}, &SegmentError{Mode: Kanji,
				Msg: fmt.Sprintf("code %#x out of range", c)}
		}
		b.write(uint32(c), 13)
	}
	return Segment{Kanji, len(codes), b}, nil
}

// KanjiCode returns the 13 bit kanji mode code of a double byte
// Shift JIS character and whether it is encodable in kanji mode.
func KanjiCode(hi, lo byte) (uint16, bool) {
	if !(0x81 <= hi && hi <= 0x9f || 0xe0 <= hi && hi <= 0xeb) ||
		lo < 0x40 || lo == 0x7f || lo > 0xfc {
		return 0, false
	}
	c := uint16(hi&^0xc0)*0xc0 + uint16(lo) - 0x100
	return c, c <= MaxKanji
}

// MakeKanjiText returns a kanji segment holding s converted to
// Shift JIS.  Every character of s must be a double byte Shift JIS
// character in the kanji mode range.
func MakeKanjiText(s string) (Segment, error) {
	t, err := japanese.ShiftJIS.NewEncoder().String(s)
	if err != nil || len(t)&1 != 0 {
		return Segment{}, &SegmentError{Mode: Kanji, Text: s}
	}
	codes := make([]uint16, 0, len(t)/2)
	for i := 0; i < len(t); i += 2 {
		c, ok := KanjiCode(t[i], t[i+1])
		if !ok {
			return Segment{}, &SegmentError{Mode: Kanji, Text: s}
		}
		codes = append(codes, c)
	}
	return MakeKanji(codes)
}

// MaxECI is the largest ECI assignment number plus one.
const MaxECI = 1000000

// MakeECI returns a segment designating ECI assignment n.
// Values below 1<<7 take 8 bits, below 1<<14 16 bits and below
// MaxECI 24 bits.
func MakeECI(n int) (Segment, error) {
	b := new(Bits)
	switch {
	case n < 0:
	case n < 1<<7:
		b.write(uint32(n), 8)
	case n < 1<<14:
		b.write(2, 2)
		b.write(uint32(n), 14)
	case n < MaxECI:
		b.write(6, 3)
		b.write(uint32(n), 21)
	}
	if b.nbit == 0 {
		return Segment{}, &SegmentError{Mode: ECI,
			Msg: fmt.Sprintf("assignment %d out of range", n)}
	}
	return Segment{ECI, 0, b}, nil
}

// NewSegment returns a segment of the given mode, character count and
// packed data.  The data length must be what the mode packs count
// characters into: 8, 16 or 24 bits with a zero count for ECI.
func NewSegment(mode Mode, count int, data *Bits) (Segment, error) {
	if data == nil {
		data = new(Bits)
	}
	seg := Segment{mode, count, data}
	if err := seg.Check(); err != nil {
		return Segment{}, err
	}
	return seg, nil
}

// Check reports whether seg is well formed: a valid mode, and data
// of the length the mode packs Count characters into.
func (seg Segment) Check() error {
	if !seg.Mode.IsValid() {
		return &SegmentError{Mode: seg.Mode, Msg: "invalid mode"}
	}
	n := 0
	if seg.Data != nil {
		n = seg.Data.Len()
	}
	if n > MaxBits {
		return tooLong(seg.Mode, n)
	}
	var ok bool
	if seg.Mode == ECI {
		ok = seg.Count == 0 && (n == 8 || n == 16 || n == 24)
	} else {
		ok = seg.Count >= 0 && seg.Mode.EncodedLength(seg.Count) == n
	}
	if !ok {
		return &SegmentError{Mode: seg.Mode,
			Msg: fmt.Sprintf("%d bits do not hold %d characters", n, seg.Count)}
	}
	return nil
}

// length returns the encoded length in bits of seg, header included,
// in the given version size class, and whether the character count
// fits its field.  seg must be well formed.
func (seg Segment) length(class int) (int, bool) {
	cl := seg.Mode.CountLength(class)
	n := 4 + cl
	if seg.Data != nil {
		n += seg.Data.Len()
	}
	return n, seg.Count < 1<<uint(cl)
}

// TotalBits returns the number of bits segs take in a code of version
// v, headers included, and false if a segment is malformed, a
// character count does not fit its field at v or the total exceeds
// MaxBits.
func TotalBits(segs []Segment, v Version) (int, bool) {
	class := v.SizeClass()
	total := 0
	for _, seg := range segs {
		if seg.Check() != nil {
			return 0, false
		}
		n, ok := seg.length(class)
		if !ok {
			return 0, false
		}
		if total += n; total > MaxBits {
			return total, false
		}
	}
	return total, true
}

// encode writes seg with its header to b.
func (seg Segment) encode(b *Bits, class int) error {
	if err := seg.Check(); err != nil {
		return err
	}
	cl := seg.Mode.CountLength(class)
	if seg.Count >= 1<<uint(cl) {
		return fmt.Errorf("%w: %s segment of %d characters overflows %d bit count",
			ErrDataTooLong, seg.Mode, seg.Count, cl)
	}
	b.write(seg.Mode.Indicator(), 4)
	b.write(uint32(seg.Count), cl)
	if seg.Data != nil {
		b.Append(seg.Data)
	}
	return nil
}
