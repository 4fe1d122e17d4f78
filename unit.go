package wscan

import (
	"io"
	"unicode/utf8"
)

// Unit is what a Scanner yields one at a time: a decoded rune for UTF-8
// scanners, a raw byte for ASCII scanners.
type Unit interface {
	rune | byte
}

// unitDecoder 把缓冲区头部的字节解码为一个单元.
// UTF-8 扫描器与 ASCII 扫描器只在这一步不同.
type unitDecoder[U Unit] interface {
	// decode returns the unit at the head of the buffer and its width in
	// bytes without consuming it. At end of input it returns io.EOF.
	decode(b *buffer) (U, int, error)
	isSpace(u U) bool
	// single decodes p when it holds exactly one unit.
	single(p []byte) (U, bool)
}

type utf8Unit struct{}

func (utf8Unit) decode(b *buffer) (rune, int, error) {
	n, err := b.ensure(1)
	if n == 0 {
		return 0, 0, err
	}
	p := b.window()
	if p[0] < utf8.RuneSelf {
		return rune(p[0]), 1, nil
	}
	// FullRune also reports true for sequences that can never become valid,
	// so this reads at most utf8.UTFMax bytes.
	for !utf8.FullRune(p) {
		_, err = b.ensure(len(p) + 1)
		p = b.window()
		if err != nil {
			if err != io.EOF {
				return 0, 0, err
			}
			// Truncated at end of input.
			break
		}
	}
	r, size := utf8.DecodeRune(p)
	if r == utf8.RuneError && size == 1 {
		return 0, 0, ErrInvalidUTF8
	}
	return r, size, nil
}

func (utf8Unit) isSpace(r rune) bool { return IsSpace(r) }

func (utf8Unit) single(p []byte) (rune, bool) {
	r, size := utf8.DecodeRune(p)
	if size == 0 || size != len(p) || (r == utf8.RuneError && size == 1) {
		return 0, false
	}
	return r, true
}

// asciiUnit treats every byte as one unit. Bytes >= 0x80 are opaque
// non-whitespace data unless strict is set.
type asciiUnit struct {
	strict bool
}

func (a asciiUnit) decode(b *buffer) (byte, int, error) {
	n, err := b.ensure(1)
	if n == 0 {
		return 0, 0, err
	}
	c := b.window()[0]
	if a.strict && c >= utf8.RuneSelf {
		return 0, 0, ErrNonASCII
	}
	return c, 1, nil
}

func (asciiUnit) isSpace(c byte) bool { return IsSpaceByte(c) }

func (a asciiUnit) single(p []byte) (byte, bool) {
	if len(p) != 1 || (a.strict && p[0] >= utf8.RuneSelf) {
		return 0, false
	}
	return p[0], true
}
