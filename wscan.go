// Package wscan reads whitespace-separated tokens, lines and primitive
// values from a stream, a byte slice or a string.
//
// Streaming scanners (New, NewASCII, Open) refill a fixed-size buffer from an
// io.Reader and block in its Read. Fixed scanners (FromBytes, FromString and
// their ASCII forms) scan memory in place and never copy the input; several
// of them may read the same slice concurrently.
//
// UTF-8 scanners yield runes and report malformed input as a *DecodeError
// wrapping ErrInvalidUTF8. ASCII scanners yield bytes.
package wscan

import (
	"io"
	"os"

	"golang.org/x/text/transform"
)

// New returns a UTF-8 scanner reading from r.
func New(r io.Reader, opts ...Option) *Scanner[rune] {
	o := newOptions(opts)
	return newStream[rune](r, utf8Unit{}, o)
}

// NewASCII returns a scanner reading single bytes from r.
func NewASCII(r io.Reader, opts ...Option) *Scanner[byte] {
	o := newOptions(opts)
	return newStream[byte](r, asciiUnit{strict: o.strictASCII}, o)
}

// FromBytes returns a UTF-8 scanner over b. Byte results alias b.
func FromBytes(b []byte, opts ...Option) *Scanner[rune] {
	o := newOptions(opts)
	return newFixed[rune](b, kindBytes, utf8Unit{}, o)
}

// FromString returns a UTF-8 scanner over s. String results are substrings
// of s.
func FromString(s string, opts ...Option) *Scanner[rune] {
	o := newOptions(opts)
	return newFixed[rune](StringToBytes(s), kindString, utf8Unit{}, o)
}

// FromBytesASCII returns a byte scanner over b. Byte results alias b.
func FromBytesASCII(b []byte, opts ...Option) *Scanner[byte] {
	o := newOptions(opts)
	return newFixed[byte](b, kindBytes, asciiUnit{strict: o.strictASCII}, o)
}

// FromStringASCII returns a byte scanner over s.
func FromStringASCII(s string, opts ...Option) *Scanner[byte] {
	o := newOptions(opts)
	return newFixed[byte](StringToBytes(s), kindString, asciiUnit{strict: o.strictASCII}, o)
}

// Open returns a UTF-8 scanner reading the named file. Close closes the file.
func Open(path string, opts ...Option) (*Scanner[rune], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s := New(f, opts...)
	s.closer = f
	return s, nil
}

// OpenASCII is Open for a byte scanner.
func OpenASCII(path string, opts ...Option) (*Scanner[byte], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s := NewASCII(f, opts...)
	s.closer = f
	return s, nil
}

func newStream[U Unit](r io.Reader, unit unitDecoder[U], o options) *Scanner[U] {
	if o.encoding != nil {
		r = transform.NewReader(r, o.encoding.NewDecoder())
	}
	data, pooled := getBuffer(o.bufferSize)
	return &Scanner[U]{
		buf:    newStreamBuffer(r, data, o.logger),
		unit:   unit,
		kind:   kindStream,
		pooled: pooled,
		logger: o.logger,
	}
}

func newFixed[U Unit](data []byte, kind sourceKind, unit unitDecoder[U], o options) *Scanner[U] {
	s := &Scanner[U]{
		buf:    newFixedBuffer(data, o.logger),
		unit:   unit,
		kind:   kind,
		logger: o.logger,
	}
	if o.encoding != nil {
		decoded, err := o.encoding.NewDecoder().Bytes(data)
		if err != nil {
			s.state, s.err = stateExhausted, &IOError{Err: err}
			return s
		}
		// The transcoded copy is ours; treat it like a caller slice.
		s.buf, s.kind = newFixedBuffer(decoded, o.logger), kindBytes
	}
	return s
}
