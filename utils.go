package wscan

import "unsafe"

// StringToBytes returns the bytes of s without copying.
// See https://github.com/golang/go/issues/53003#issuecomment-1140276077.
// The result aliases s and must never be modified; FromString relies on
// this to scan a string in place.
func StringToBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// BytesToString returns b as a string without copying. The string is only
// valid while b is not modified, so scanners use it for token bytes they own
// or that alias an immutable string source.
func BytesToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
