package main

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/WJQSERVER/wscan"
	"github.com/go-kit/log"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"gopkg.in/yaml.v3"
)

// config 是 --config 指定的 YAML 文件内容, 命令行参数优先.
type config struct {
	BufferSize  int    `yaml:"buffer_size"`
	Encoding    string `yaml:"encoding"`
	ASCII       bool   `yaml:"ascii"`
	StrictASCII bool   `yaml:"strict_ascii"`
	Concurrent  bool   `yaml:"concurrent"`
	LogLevel    string `yaml:"log_level"`
}

func defaultConfig() config {
	return config{
		BufferSize: wscan.DefaultBufferSize,
		Encoding:   "utf-8",
		LogLevel:   "info",
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "could not read config %s", path)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrapf(err, "could not parse config %s", path)
	}
	return cfg, nil
}

// applyFlags copies every flag the user set explicitly over the config.
func (c *config) applyFlags(fs *pflag.FlagSet) error {
	var err error
	if fs.Changed("buffer-size") {
		if c.BufferSize, err = fs.GetInt("buffer-size"); err != nil {
			return err
		}
	}
	if fs.Changed("encoding") {
		if c.Encoding, err = fs.GetString("encoding"); err != nil {
			return err
		}
	}
	if fs.Changed("ascii") {
		if c.ASCII, err = fs.GetBool("ascii"); err != nil {
			return err
		}
	}
	if fs.Changed("strict-ascii") {
		if c.StrictASCII, err = fs.GetBool("strict-ascii"); err != nil {
			return err
		}
	}
	if fs.Changed("concurrent") {
		if c.Concurrent, err = fs.GetBool("concurrent"); err != nil {
			return err
		}
	}
	if fs.Changed("log.level") {
		if c.LogLevel, err = fs.GetString("log.level"); err != nil {
			return err
		}
	}
	return nil
}

var encodingOverrides = map[string]encoding.Encoding{
	"utf-16":   unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf16":    unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16be": unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"latin1":   charmap.ISO8859_1,
	"utf-8":    nil,
	"utf8":     nil,
	"":         nil,
}

// lookupEncoding maps an encoding name to a decoder. UTF-8 maps to nil:
// the scanner reads it natively.
func lookupEncoding(name string) (encoding.Encoding, error) {
	if e, ok := encodingOverrides[strings.ToLower(name)]; ok {
		return e, nil
	}
	e, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, errors.Errorf("unsupported encoding %q", name)
	}
	if e == nil {
		return nil, errors.Errorf("no charmap defined for encoding %q", name)
	}
	return e, nil
}

// options turns the config into scanner options.
func (c config) options(logger log.Logger) []wscan.Option {
	enc, _ := lookupEncoding(c.Encoding)
	opts := []wscan.Option{
		wscan.WithBufferSize(c.BufferSize),
		wscan.WithStrictASCII(c.StrictASCII),
		wscan.WithLogger(logger),
	}
	if enc != nil {
		opts = append(opts, wscan.WithEncoding(enc))
	}
	return opts
}
