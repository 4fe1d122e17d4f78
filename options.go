package wscan

import (
	"unicode/utf8"

	"github.com/go-kit/log"
	"golang.org/x/text/encoding"
)

// DefaultBufferSize is the buffer capacity of streaming scanners unless
// WithBufferSize says otherwise.
const DefaultBufferSize = 256

// Option configures a Scanner at construction.
type Option func(*options)

type options struct {
	bufferSize  int
	strictASCII bool
	encoding    encoding.Encoding
	logger      log.Logger
}

func newOptions(opts []Option) options {
	o := options{
		bufferSize: DefaultBufferSize,
		logger:     log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithBufferSize sets the capacity of the streaming buffer. Values below
// utf8.UTFMax are raised to it so a whole character always fits. Fixed
// scanners ignore it.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n < utf8.UTFMax {
			n = utf8.UTFMax
		}
		o.bufferSize = n
	}
}

// WithStrictASCII makes ASCII scanners reject bytes >= 0x80 with
// ErrNonASCII instead of passing them through as token data.
func WithStrictASCII(strict bool) Option {
	return func(o *options) {
		o.strictASCII = strict
	}
}

// WithEncoding transcodes the source from enc to UTF-8 before scanning.
// Offsets then count transcoded bytes.
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		o.encoding = enc
	}
}

// WithLogger sets the logger used for debug output about buffer refills and
// source failures.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = log.NewNopLogger()
		}
		o.logger = logger
	}
}
