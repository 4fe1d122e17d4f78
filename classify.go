package wscan

import "unicode/utf8"

// IsSpaceByte reports whether c separates tokens: tab, line feed, vertical
// tab, form feed, carriage return, the four ASCII information separators
// (0x1C-0x1F) and space.
func IsSpaceByte(c byte) bool {
	return (c >= '\t' && c <= '\r') || (c >= 0x1c && c <= ' ')
}

// IsSpace reports whether r separates tokens in UTF-8 text. Besides the
// IsSpaceByte set it accepts U+1680, U+180E, U+2000 through U+200A, the line
// and paragraph separators, U+205F and U+3000. The no-break spaces U+00A0 and
// U+202F do not split tokens.
func IsSpace(r rune) bool {
	if r < utf8.RuneSelf {
		return IsSpaceByte(byte(r))
	}
	switch {
	case r == '\u1680', r == '\u180e':
		return true
	case r >= '\u2000' && r <= '\u200a':
		return true
	case r == '\u2028', r == '\u2029', r == '\u205f', r == '\u3000':
		return true
	}
	return false
}

// IsLineTerminator reports whether u starts a line terminator. "\r\n" is
// consumed as a single terminator by the line operations.
func IsLineTerminator[U Unit](u U) bool {
	return u == '\n' || u == '\r'
}

// IsDigit reports whether u is an ASCII decimal digit.
func IsDigit[U Unit](u U) bool {
	return u >= '0' && u <= '9'
}
