package wscan

import (
	"bytes"
	"io"
	"math"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type sourceKind uint8

const (
	kindStream sourceKind = iota
	// kindBytes is a caller-owned slice: byte results alias it, strings are copied.
	kindBytes
	// kindString is an immutable string: strings alias it, byte results are copied.
	kindString
)

type state uint8

const (
	stateReady state = iota
	// statePeeked: peeked/width hold the decoded unit at the head of the window.
	statePeeked
	// stateExhausted: end of input, or a terminal error held in err.
	stateExhausted
)

// Scanner splits its input into whitespace-separated tokens and lines, and
// parses tokens as primitives. U is rune for UTF-8 scanners and byte for
// ASCII scanners.
//
// Every read returns ok == false with a nil error at end of input. A Scanner
// is not safe for concurrent use.
type Scanner[U Unit] struct {
	buf  buffer
	unit unitDecoder[U]
	kind sourceKind

	state  state
	peeked U
	width  int
	err    error

	offset  int64
	scratch []byte // reused for text handed to strconv and DropNextUntil matching

	closer io.Closer
	pooled bool
	logger log.Logger
}

type (
	// UTF8Scanner yields decoded runes.
	UTF8Scanner = Scanner[rune]
	// ASCIIScanner yields raw bytes.
	ASCIIScanner = Scanner[byte]
)

// Offset returns the number of bytes consumed so far. Peeking does not
// move it.
func (s *Scanner[U]) Offset() int64 { return s.offset }

// Buffered returns the unread bytes currently held in memory without reading
// from the source; Peek reads first. The slice is only valid until the next
// call.
func (s *Scanner[U]) Buffered() []byte { return s.buf.window() }

func (s *Scanner[U]) peek() (U, bool, error) {
	var zero U
	switch s.state {
	case statePeeked:
		return s.peeked, true, nil
	case stateExhausted:
		return zero, false, s.err
	}
	u, width, err := s.unit.decode(&s.buf)
	if err != nil {
		return zero, false, s.fail(err)
	}
	s.state, s.peeked, s.width = statePeeked, u, width
	return u, true, nil
}

// fail turns a decode or refill error into the caller-visible error. It
// returns nil at end of input.
func (s *Scanner[U]) fail(err error) error {
	switch err {
	case ErrInvalidUTF8, ErrNonASCII:
		return &DecodeError{Offset: s.offset, Byte: s.buf.window()[0], Err: err}
	case io.EOF:
		s.state = stateExhausted
		return nil
	}
	s.state, s.err = stateExhausted, err
	return err
}

// advance consumes the peeked unit.
func (s *Scanner[U]) advance() {
	s.buf.consume(s.width)
	s.offset += int64(s.width)
	s.state = stateReady
}

// PeekUnit returns the next unit without consuming it. Repeated calls return
// the same unit.
func (s *Scanner[U]) PeekUnit() (U, bool, error) {
	return s.peek()
}

// NextUnit consumes and returns the next unit, whitespace included.
func (s *Scanner[U]) NextUnit() (U, bool, error) {
	u, ok, err := s.peek()
	if ok {
		s.advance()
	}
	return u, ok, err
}

// SkipWhitespaces consumes whitespace up to the next token and reports
// whether anything was skipped.
func (s *Scanner[U]) SkipWhitespaces() (bool, error) {
	skipped := false
	for {
		u, ok, err := s.peek()
		if !ok || !s.unit.isSpace(u) {
			return skipped, err
		}
		s.advance()
		skipped = true
	}
}

// collector gathers the bytes consumed by one call. Fixed sources are
// contiguous in memory, so only the span is tracked; streaming sources copy
// into dst because the buffer is refilled in place.
type collector struct {
	fixed bool
	data  []byte
	begin int
	n     int
	keep  bool
	dst   []byte
}

func (s *Scanner[U]) collect(dst []byte, keep bool) collector {
	return collector{
		fixed: s.kind != kindStream,
		data:  s.buf.data,
		begin: s.buf.start,
		keep:  keep,
		dst:   dst,
	}
}

func (c *collector) take(p []byte) {
	c.n += len(p)
	if !c.fixed && c.keep {
		c.dst = append(c.dst, p...)
	}
}

func (c *collector) trim(k int) {
	c.n -= k
	if !c.fixed && c.keep {
		c.dst = c.dst[:c.n]
	}
}

func (c *collector) bytes() []byte {
	if c.fixed {
		return c.data[c.begin : c.begin+c.n]
	}
	if c.dst == nil && c.keep {
		return []byte{}
	}
	return c.dst
}

func (s *Scanner[U]) text(c *collector) string {
	b := c.bytes()
	if s.kind == kindBytes {
		return string(b)
	}
	return BytesToString(b)
}

func (s *Scanner[U]) raw(c *collector) []byte {
	b := c.bytes()
	if s.kind == kindString {
		return append([]byte{}, b...)
	}
	return b
}

func (s *Scanner[U]) scanToken(dst []byte, keep bool) (collector, bool, error) {
	if _, err := s.SkipWhitespaces(); err != nil {
		return collector{}, false, err
	}
	c := s.collect(dst, keep)
	for {
		u, ok, err := s.peek()
		if err != nil {
			return c, false, err
		}
		if !ok || s.unit.isSpace(u) {
			return c, c.n > 0, nil
		}
		c.take(s.buf.window()[:s.width])
		s.advance()
	}
}

// NextToken returns the next whitespace-separated token. For FromBytes
// scanners the result aliases the input; otherwise it is a fresh slice.
func (s *Scanner[U]) NextToken() ([]byte, bool, error) {
	c, ok, err := s.scanToken(nil, true)
	if !ok {
		return nil, false, err
	}
	return s.raw(&c), true, nil
}

// Next returns the next whitespace-separated token as a string.
func (s *Scanner[U]) Next() (string, bool, error) {
	c, ok, err := s.scanToken(nil, true)
	if !ok {
		return "", false, err
	}
	return s.text(&c), true, nil
}

// DropNext skips the next token and returns its length in bytes.
func (s *Scanner[U]) DropNext() (int, bool, error) {
	c, ok, err := s.scanToken(nil, false)
	if !ok {
		return 0, false, err
	}
	return c.n, true, nil
}

func (s *Scanner[U]) scanLine(dst []byte, keep bool) (collector, bool, error) {
	u, ok, err := s.peek()
	if !ok {
		return collector{}, false, err
	}
	c := s.collect(dst, keep)
	for !IsLineTerminator(u) {
		c.take(s.buf.window()[:s.width])
		s.advance()
		if u, ok, err = s.peek(); !ok {
			if err != nil {
				return c, false, err
			}
			// Last line without a terminator.
			return c, true, nil
		}
	}
	s.advance()
	if u == '\r' {
		// A failing lookahead is reported by the next call.
		if next, ok, _ := s.peek(); ok && next == '\n' {
			s.advance()
		}
	}
	return c, true, nil
}

// NextLine returns the text up to the next "\n", "\r" or "\r\n" and consumes
// the terminator. The last line is returned even without a terminator; a
// terminator at the very end of the input does not start another line.
func (s *Scanner[U]) NextLine() (string, bool, error) {
	c, ok, err := s.scanLine(nil, true)
	if !ok {
		return "", false, err
	}
	return s.text(&c), true, nil
}

// NextLineBytes is NextLine returning bytes.
func (s *Scanner[U]) NextLineBytes() ([]byte, bool, error) {
	c, ok, err := s.scanLine(nil, true)
	if !ok {
		return nil, false, err
	}
	return s.raw(&c), true, nil
}

// DropNextLine skips the next line and returns its length in bytes, not
// counting the terminator.
func (s *Scanner[U]) DropNextLine() (int, bool, error) {
	c, ok, err := s.scanLine(nil, false)
	if !ok {
		return 0, false, err
	}
	return c.n, true, nil
}

func (s *Scanner[U]) scanBytes(n int, dst []byte, keep bool) (collector, bool, error) {
	if n <= 0 {
		return collector{}, false, nil
	}
	if s.state == stateExhausted {
		return collector{}, false, s.err
	}
	// A peeked unit is still at the head of the window.
	s.state = stateReady
	c := s.collect(dst, keep)
	for c.n < n {
		avail, err := s.buf.ensure(1)
		if avail == 0 {
			if err = s.fail(err); err != nil || c.n == 0 {
				return c, false, err
			}
			break
		}
		k := min(avail, n-c.n)
		c.take(s.buf.window()[:k])
		s.buf.consume(k)
		s.offset += int64(k)
	}
	return c, true, nil
}

// NextBytes returns up to n raw bytes regardless of whitespace or encoding.
// It returns no value when n <= 0 or at end of input.
func (s *Scanner[U]) NextBytes(n int) ([]byte, bool, error) {
	c, ok, err := s.scanBytes(n, nil, true)
	if !ok {
		return nil, false, err
	}
	return s.raw(&c), true, nil
}

// DropNextBytes skips up to n raw bytes and returns how many were skipped.
// It is the way past a byte reported by a *DecodeError.
func (s *Scanner[U]) DropNextBytes(n int) (int, bool, error) {
	c, ok, err := s.scanBytes(n, nil, false)
	if !ok {
		return 0, false, err
	}
	return c.n, true, nil
}

func (s *Scanner[U]) scanUntil(boundary []byte, dst []byte, keep bool) (collector, bool, error) {
	if len(boundary) == 0 {
		return s.scanBytes(math.MaxInt, dst, keep)
	}
	if _, ok, err := s.peek(); !ok {
		return collector{}, false, err
	}
	c := s.collect(dst, keep)
	// 流式数据源且不保留内容时, 只在 tail 中保存最后 len(boundary) 个字节用于匹配.
	retained := c.fixed || keep
	tail := s.scratch[:0]
	defer func() {
		if !retained {
			s.scratch = tail[:0]
		}
	}()
	for {
		unit := s.buf.window()[:s.width]
		c.take(unit)
		seen := c.bytes()
		if !retained {
			tail = append(tail, unit...)
			if over := len(tail) - len(boundary); over > 0 {
				tail = append(tail[:0], tail[over:]...)
			}
			seen = tail
		}
		s.advance()
		if bytes.HasSuffix(seen, boundary) {
			c.trim(len(boundary))
			return c, true, nil
		}
		if _, ok, err := s.peek(); !ok {
			if err != nil {
				return c, false, err
			}
			return c, true, nil
		}
	}
}

// NextUntil returns the text up to the next occurrence of boundary and
// consumes the boundary. Without another occurrence it returns the rest of
// the input.
func (s *Scanner[U]) NextUntil(boundary string) (string, bool, error) {
	c, ok, err := s.scanUntil(StringToBytes(boundary), nil, true)
	if !ok {
		return "", false, err
	}
	return s.text(&c), true, nil
}

// NextUntilBytes is NextUntil returning bytes.
func (s *Scanner[U]) NextUntilBytes(boundary []byte) ([]byte, bool, error) {
	c, ok, err := s.scanUntil(boundary, nil, true)
	if !ok {
		return nil, false, err
	}
	return s.raw(&c), true, nil
}

// DropNextUntil skips past the next occurrence of boundary and returns the
// number of bytes skipped before it. Memory use does not grow with the
// amount skipped.
func (s *Scanner[U]) DropNextUntil(boundary string) (int, bool, error) {
	c, ok, err := s.scanUntil(StringToBytes(boundary), nil, false)
	if !ok {
		return 0, false, err
	}
	return c.n, true, nil
}

// Peek returns the unread bytes after reading from the source until at least
// n of them are buffered. n is capped at the buffer size, and fewer bytes are
// returned only at end of input or together with the read error. Nothing is
// consumed; the slice is only valid until the next call.
func (s *Scanner[U]) Peek(n int) ([]byte, error) {
	if s.state == stateExhausted && s.err != nil {
		return s.buf.window(), s.err
	}
	if n = min(n, len(s.buf.data)); n > 0 {
		if _, err := s.buf.ensure(n); err != nil && err != io.EOF {
			return s.buf.window(), err
		}
	}
	return s.buf.window(), nil
}

// Close releases the buffer and closes the file opened by Open. Every later
// read returns ErrClosed.
func (s *Scanner[U]) Close() error {
	var err error
	if s.closer != nil {
		err = s.closer.Close()
		s.closer = nil
	}
	if s.pooled {
		putBuffer(s.buf.data)
		s.pooled = false
	}
	level.Debug(s.logger).Log("msg", "scanner closed", "offset", s.offset)
	s.buf = buffer{logger: s.logger}
	s.scratch = nil
	s.state, s.err = stateExhausted, ErrClosed
	return err
}
