package wscan

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidUTF8 is wrapped by a *DecodeError when a UTF-8 scanner meets a
	// malformed, overlong or truncated sequence.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 sequence")
	// ErrNonASCII is wrapped by a *DecodeError when a strict ASCII scanner
	// meets a byte >= 0x80.
	ErrNonASCII = errors.New("non-ASCII byte")
	// ErrClosed is returned by every read after Close.
	ErrClosed = errors.New("wscan: scanner closed")
)

// IOError reports that the underlying reader failed. It is permanent: the
// scanner returns the same error from every later call.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return "wscan: read failed: " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

// DecodeError reports malformed input at Offset. The scanner is left
// positioned at the offending byte, so the caller may skip it with
// DropNextBytes(1) and continue.
type DecodeError struct {
	Offset int64
	Byte   byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("wscan: %v at offset %d (0x%02x)", e.Err, e.Offset, e.Byte)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ParseError reports a token that could not be converted to Type. Err is
// strconv.ErrSyntax or strconv.ErrRange.
type ParseError struct {
	Token string
	Type  string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("wscan: cannot parse %q as %s: %v", e.Token, e.Type, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(tok []byte, typ string, err error) *ParseError {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	return &ParseError{Token: string(tok), Type: typ, Err: err}
}
