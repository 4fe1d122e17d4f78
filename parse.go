package wscan

import "strconv"

// Next<T> reads one token and converts it with strconv, base 10. A token
// that does not convert is consumed and reported as a *ParseError.

// scratchToken reads the next token into the reusable scratch buffer. The
// result is only valid until the next read.
func (s *Scanner[U]) scratchToken() ([]byte, bool, error) {
	c, ok, err := s.scanToken(s.scratch[:0], true)
	if c.dst != nil {
		s.scratch = c.dst[:0]
	}
	if !ok {
		return nil, false, err
	}
	return c.bytes(), true, nil
}

// scratchUntil reads the text before the next boundary into the scratch
// buffer, like scratchToken.
func (s *Scanner[U]) scratchUntil(boundary string) ([]byte, bool, error) {
	c, ok, err := s.scanUntil(StringToBytes(boundary), s.scratch[:0], true)
	if c.dst != nil {
		s.scratch = c.dst[:0]
	}
	if !ok {
		return nil, false, err
	}
	return c.bytes(), true, nil
}

// readFunc yields the text to convert: the next token or the text before a
// boundary.
type readFunc func() ([]byte, bool, error)

func (s *Scanner[U]) until(boundary string) readFunc {
	return func() ([]byte, bool, error) { return s.scratchUntil(boundary) }
}

func nextSigned[T int | int8 | int16 | int32 | int64](read readFunc, bitSize int, typ string) (T, bool, error) {
	tok, ok, err := read()
	if !ok {
		return 0, false, err
	}
	v, err := strconv.ParseInt(BytesToString(tok), 10, bitSize)
	if err != nil {
		return 0, false, newParseError(tok, typ, err)
	}
	return T(v), true, nil
}

func nextUnsigned[T uint | uint8 | uint16 | uint32 | uint64](read readFunc, bitSize int, typ string) (T, bool, error) {
	tok, ok, err := read()
	if !ok {
		return 0, false, err
	}
	v, err := strconv.ParseUint(BytesToString(tok), 10, bitSize)
	if err != nil {
		return 0, false, newParseError(tok, typ, err)
	}
	return T(v), true, nil
}

func nextFloat[T float32 | float64](read readFunc, bitSize int, typ string) (T, bool, error) {
	tok, ok, err := read()
	if !ok {
		return 0, false, err
	}
	v, err := strconv.ParseFloat(BytesToString(tok), bitSize)
	if err != nil {
		return 0, false, newParseError(tok, typ, err)
	}
	return T(v), true, nil
}

// NextBool parses the next token with strconv.ParseBool.
func (s *Scanner[U]) NextBool() (bool, bool, error) {
	tok, ok, err := s.scratchToken()
	if !ok {
		return false, false, err
	}
	v, err := strconv.ParseBool(BytesToString(tok))
	if err != nil {
		return false, false, newParseError(tok, "bool", err)
	}
	return v, true, nil
}

// NextChar returns the next token, which must be exactly one unit. Unlike
// NextUnit it skips leading whitespace.
func (s *Scanner[U]) NextChar() (U, bool, error) {
	var zero U
	tok, ok, err := s.scratchToken()
	if !ok {
		return zero, false, err
	}
	u, single := s.unit.single(tok)
	if !single {
		return zero, false, newParseError(tok, "char", strconv.ErrSyntax)
	}
	return u, true, nil
}

func (s *Scanner[U]) NextInt() (int, bool, error) { return nextSigned[int](s.scratchToken, 0, "int") }
func (s *Scanner[U]) NextInt8() (int8, bool, error) {
	return nextSigned[int8](s.scratchToken, 8, "int8")
}
func (s *Scanner[U]) NextInt16() (int16, bool, error) {
	return nextSigned[int16](s.scratchToken, 16, "int16")
}
func (s *Scanner[U]) NextInt32() (int32, bool, error) {
	return nextSigned[int32](s.scratchToken, 32, "int32")
}
func (s *Scanner[U]) NextInt64() (int64, bool, error) {
	return nextSigned[int64](s.scratchToken, 64, "int64")
}

func (s *Scanner[U]) NextUint() (uint, bool, error) {
	return nextUnsigned[uint](s.scratchToken, 0, "uint")
}
func (s *Scanner[U]) NextUint8() (uint8, bool, error) {
	return nextUnsigned[uint8](s.scratchToken, 8, "uint8")
}
func (s *Scanner[U]) NextUint16() (uint16, bool, error) {
	return nextUnsigned[uint16](s.scratchToken, 16, "uint16")
}
func (s *Scanner[U]) NextUint32() (uint32, bool, error) {
	return nextUnsigned[uint32](s.scratchToken, 32, "uint32")
}
func (s *Scanner[U]) NextUint64() (uint64, bool, error) {
	return nextUnsigned[uint64](s.scratchToken, 64, "uint64")
}

func (s *Scanner[U]) NextFloat32() (float32, bool, error) {
	return nextFloat[float32](s.scratchToken, 32, "float32")
}
func (s *Scanner[U]) NextFloat64() (float64, bool, error) {
	return nextFloat[float64](s.scratchToken, 64, "float64")
}

// Next<T>Until converts the text before the next boundary, as read by
// NextUntil, instead of the next token. The text is not trimmed, so
// "1 2" read with boundary " " yields 1 and then 2.

func (s *Scanner[U]) NextIntUntil(boundary string) (int, bool, error) {
	return nextSigned[int](s.until(boundary), 0, "int")
}

func (s *Scanner[U]) NextInt8Until(boundary string) (int8, bool, error) {
	return nextSigned[int8](s.until(boundary), 8, "int8")
}

func (s *Scanner[U]) NextInt16Until(boundary string) (int16, bool, error) {
	return nextSigned[int16](s.until(boundary), 16, "int16")
}

func (s *Scanner[U]) NextInt32Until(boundary string) (int32, bool, error) {
	return nextSigned[int32](s.until(boundary), 32, "int32")
}

func (s *Scanner[U]) NextInt64Until(boundary string) (int64, bool, error) {
	return nextSigned[int64](s.until(boundary), 64, "int64")
}

func (s *Scanner[U]) NextUintUntil(boundary string) (uint, bool, error) {
	return nextUnsigned[uint](s.until(boundary), 0, "uint")
}

func (s *Scanner[U]) NextUint8Until(boundary string) (uint8, bool, error) {
	return nextUnsigned[uint8](s.until(boundary), 8, "uint8")
}

func (s *Scanner[U]) NextUint16Until(boundary string) (uint16, bool, error) {
	return nextUnsigned[uint16](s.until(boundary), 16, "uint16")
}

func (s *Scanner[U]) NextUint32Until(boundary string) (uint32, bool, error) {
	return nextUnsigned[uint32](s.until(boundary), 32, "uint32")
}

func (s *Scanner[U]) NextUint64Until(boundary string) (uint64, bool, error) {
	return nextUnsigned[uint64](s.until(boundary), 64, "uint64")
}

func (s *Scanner[U]) NextFloat32Until(boundary string) (float32, bool, error) {
	return nextFloat[float32](s.until(boundary), 32, "float32")
}

func (s *Scanner[U]) NextFloat64Until(boundary string) (float64, bool, error) {
	return nextFloat[float64](s.until(boundary), 64, "float64")
}
