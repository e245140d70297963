// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command qr generates QR codes.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"

	qr "github.com/unixdj/qrgen"
	"github.com/unixdj/qrgen/coding"
	"github.com/unixdj/qrgen/internal/logger"
	"github.com/unixdj/qrgen/render"
	"github.com/unixdj/qrgen/split"
)

var g = struct {
	settings
	fn       string // output file
	desc     string // SVG description
	eci      int    // ECI assignment number, 0 for none
	eciflag  bool   // ECI segment for the byte encoding
	latin1   bool   // Latin-1 byte mode
	kanji    bool   // Shift JIS kanji mode
	byteOnly bool   // byte mode only
	upper    bool   // uppercase
	debug    bool   // debug logging
}{}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [string ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:max(n, 0)]
		ml = 60
	}
	fmt.Fprint(w, "QR code generator\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
If no string is given, data is read from standard input and the final
newline is stripped.  Defaults are read from `+configPath()+`
if it exists; options override them.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	w.Write(b.Bytes())
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qr version 1.0.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2024 Vadim Vygonets`)
	os.Exit(0)
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	cfn := getopt.String('c', configPath(), "config file", "file")
	getopt.Flag(&g.debug, 'd', "log encoding details to standard error")
	getopt.Flag(&g.latin1, '1', "encode the data as Latin-1 in "+
		"a single byte mode segment")
	getopt.Flag(&g.byteOnly, '8', "encode the data as is in "+
		"a single byte mode segment")
	getopt.Flag(&g.kanji, 'k', "encode the data in a single "+
		"kanji mode segment; all characters must be in Shift JIS")
	getopt.Flag(&g.upper, 'i', "ignore case, convert input to uppercase")
	getopt.Flag(&g.eciflag, 'e', "encode ECI segment setting "+
		"character encoding according to -1 and -k flags")
	eci := getopt.Signed('E', -1, &getopt.SignedLimit{Base: 0, Bits: 21, Min: 0, Max: coding.MaxECI - 1},
		"encode ECI segment with the given value; overrides -e", "eci")
	getopt.Flag(&g.desc, 'D', "description for type svg[i]", "text")
	noBoost := getopt.Bool('B', "do not raise error correction level "+
		"when the data fits")
	border := getopt.Unsigned('m', render.DefaultBorder,
		&getopt.UnsignedLimit{Base: 0, Bits: 16, Min: 0, Max: 1 << 12},
		"quiet zone width in modules", "margin")
	scale := getopt.Unsigned('s', render.DefaultScale,
		&getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 1, Max: 1 << 12},
		`image pixels per QR module ("pixel"); `+
			`ignored for types utf8[i], ascii[i], json[i] and cbor[i]`, "scale")
	minv := getopt.Unsigned('v', 1, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40},
		"smallest QR code version to use", "ver")
	maxv := getopt.Unsigned('x', 40, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40},
		"largest QR code version to use", "ver")
	mask := getopt.Signed('p', -1, &getopt.SignedLimit{Base: 0, Bits: 8, Min: -1, Max: 7},
		"mask pattern; -1 chooses the best", "mask")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "l",
		"error correction level, lowest to highest", "l|m|q|h")
	getopt.Flag(&g.fn, 'o', `output file, or "-" for standard output`,
		"file")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	if g.byteOnly && (g.latin1 || g.kanji) || g.latin1 && g.kanji {
		fmt.Fprintln(os.Stderr, "-1, -8 and -k are mutually exclusive")
		usage()
	}

	g.settings = defaultSettings()
	cfg, err := loadConfig(*cfn, getopt.IsSet('c'))
	if err != nil {
		log.Fatalln(err)
	}
	if err := cfg.apply(&g.settings); err != nil {
		log.Fatalln("config:", err)
	}
	if getopt.IsSet('l') {
		g.level, _ = parseLevel(*lev)
	}
	if getopt.IsSet('m') {
		g.border = int(*border)
	}
	if getopt.IsSet('s') {
		g.scale = int(*scale)
	}
	if getopt.IsSet('v') {
		g.minVersion = qr.Version(*minv)
	}
	if getopt.IsSet('x') {
		g.maxVersion = qr.Version(*maxv)
	}
	if getopt.IsSet('p') {
		g.mask = qr.Mask(*mask)
	}
	if *noBoost {
		g.boost = false
	}
	if *ff != "" {
		g.format = *ff
	}
	if g.debug {
		g.logLevel = slog.LevelDebug
	}
	if g.minVersion > g.maxVersion {
		fmt.Fprintf(os.Stderr, "version range %d-%d is empty\n",
			g.minVersion, g.maxVersion)
		usage()
	}
	if g.fn == "-" {
		g.fn = ""
	}
	if g.format == "" {
		if g.fn == "" && isatty.IsTerminal(os.Stdout.Fd()) {
			g.format = "utf8"
		} else {
			g.format = "png"
		}
	}
	g.eci = int(*eci)
	if g.eci < 0 {
		g.eci = 0
		if g.eciflag {
			switch {
			case g.latin1:
				g.eci = split.Latin1ECI
			case g.kanji:
				g.eci = split.ShiftJISECI
			case g.byteOnly:
				g.eci = split.BinaryECI
			default:
				g.eci = split.UTF8ECI
			}
		}
	}
}

// segments splits s as directed by the flags.
func segments(s string) ([]coding.Segment, error) {
	var (
		seg coding.Segment
		err error
	)
	switch {
	case g.byteOnly:
		seg, err = coding.MakeBytes([]byte(s))
	case g.latin1:
		seg, err = coding.MakeLatin1(s)
	case g.kanji:
		seg, err = coding.MakeKanjiText(s)
	default:
		return split.TextECI(s, g.eci)
	}
	if err != nil {
		return nil, err
	}
	segs := []coding.Segment{seg}
	if g.eci != 0 {
		e, err := coding.MakeECI(g.eci)
		if err != nil {
			return nil, err
		}
		segs = append([]coding.Segment{e}, segs...)
	}
	return segs, nil
}

func main() {
	log.SetFlags(0)
	parseFlags()
	lg := logger.Text(os.Stderr, g.logLevel).With("cmd", "qr")

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if g.upper {
		s = strings.ToUpper(s)
	}

	segs, err := segments(s)
	if err != nil {
		log.Fatalln(err)
	}
	c, err := qr.Encode(segs, g.level, qr.Options{
		MinVersion: g.minVersion,
		MaxVersion: g.maxVersion,
		ForceMask:  g.mask != qr.AutoMask,
		Mask:       g.mask,
		BoostECL:   g.boost,
		Logger:     lg,
	})
	if err != nil {
		log.Fatalln(err)
	}
	if err := write(c); err != nil {
		log.Fatalln(err)
	}
}

func write(c *qr.Code) error {
	enc, inv, err := parseFormat(g.format)
	if err != nil {
		return err
	}
	w := os.Stdout
	if g.fn != "" {
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			return err
		}
	}
	err = enc(w, c, renderOptions(inv))
	if g.fn != "" {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func renderOptions(inv bool) render.Options {
	return render.Options{
		Scale:       g.scale,
		Border:      g.border,
		Invert:      inv,
		Description: g.desc,
	}
}
