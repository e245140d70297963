// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	qr "github.com/unixdj/qrgen"
	"github.com/unixdj/qrgen/internal/logger"
	"github.com/unixdj/qrgen/render"
)

// settings hold everything that can come from the config file or
// the command line.
type settings struct {
	level      qr.Level
	minVersion qr.Version
	maxVersion qr.Version
	mask       qr.Mask
	boost      bool
	scale      int
	border     int
	format     string // "" means choose by output
	logLevel   slog.Level
}

func defaultSettings() settings {
	return settings{
		level:      qr.L,
		minVersion: 1,
		maxVersion: 40,
		mask:       qr.AutoMask,
		boost:      true,
		scale:      render.DefaultScale,
		border:     render.DefaultBorder,
		logLevel:   slog.LevelInfo,
	}
}

// Config is the config file (~/.config/qrgen/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	Level      string `yaml:"level"`
	Border     *int   `yaml:"border"`
	Scale      *int   `yaml:"scale"`
	Format     string `yaml:"format"`
	Boost      *bool  `yaml:"boost"`
	MinVersion *int   `yaml:"min_version"`
	MaxVersion *int   `yaml:"max_version"`
	Mask       *int   `yaml:"mask"`
	LogLevel   string `yaml:"log_level"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "qrgen", "config.yaml")
}

// loadConfig reads the config file at path.  A missing file yields
// a zero Config unless mustExist is set.
func loadConfig(path string, mustExist bool) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !mustExist && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// apply overrides s with the values set in cfg.
func (cfg Config) apply(s *settings) error {
	if cfg.Level != "" {
		l, err := parseLevel(cfg.Level)
		if err != nil {
			return err
		}
		s.level = l
	}
	if cfg.Border != nil {
		if *cfg.Border < 0 {
			return fmt.Errorf("border %d: must not be negative", *cfg.Border)
		}
		s.border = *cfg.Border
	}
	if cfg.Scale != nil {
		if *cfg.Scale < 1 {
			return fmt.Errorf("scale %d: must be positive", *cfg.Scale)
		}
		s.scale = *cfg.Scale
	}
	if cfg.Format != "" {
		if _, _, err := parseFormat(cfg.Format); err != nil {
			return err
		}
		s.format = cfg.Format
	}
	if cfg.Boost != nil {
		s.boost = *cfg.Boost
	}
	for _, v := range []struct {
		p   *int
		dst *qr.Version
	}{
		{cfg.MinVersion, &s.minVersion},
		{cfg.MaxVersion, &s.maxVersion},
	} {
		if v.p == nil {
			continue
		}
		if !qr.Version(*v.p).IsValid() {
			return fmt.Errorf("version %d: %w", *v.p, qr.ErrVersion)
		}
		*v.dst = qr.Version(*v.p)
	}
	if cfg.Mask != nil {
		m := qr.Mask(*cfg.Mask)
		if m != qr.AutoMask && !m.IsValid() {
			return fmt.Errorf("mask %d: %w", *cfg.Mask, qr.ErrMask)
		}
		s.mask = m
	}
	if cfg.LogLevel != "" {
		s.logLevel = logger.ParseLevel(cfg.LogLevel)
	}
	return nil
}

// parseLevel parses one of l, m, q, h in either case.
func parseLevel(s string) (qr.Level, error) {
	if len(s) == 1 {
		if i := strings.IndexByte("lmqhLMQH", s[0]); i >= 0 {
			return qr.Level(i & 3), nil
		}
	}
	return 0, fmt.Errorf("level %q: %w", s, qr.ErrLevel)
}

type encoder func(w io.Writer, s render.Symbol, o render.Options) error

var encoders = map[string]encoder{
	"png":   render.PNG,
	"pbm":   render.PBM,
	"svg":   render.SVG,
	"json":  render.JSON,
	"cbor":  render.CBOR,
	"utf8":  render.Text,
	"ascii": render.ASCII,
}

// formats lists the output formats; an "i" suffix inverts colours.
var formats = []string{
	"png", "pngi", "pbm", "pbmi", "svg", "svgi",
	"json", "jsoni", "cbor", "cbori", "utf8", "utf8i", "ascii", "asciii",
}

// parseFormat returns the encoder for format name and whether colours
// are inverted.
func parseFormat(name string) (encoder, bool, error) {
	if e, ok := encoders[name]; ok {
		return e, false, nil
	}
	if base, ok := strings.CutSuffix(name, "i"); ok {
		if e, ok := encoders[base]; ok {
			return e, true, nil
		}
	}
	return nil, false, fmt.Errorf("%q: unknown output format", name)
}
