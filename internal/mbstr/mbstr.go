// Package mbstr provides the multibyte-encoding helpers the SQL scanner
// requires: UTF-8 validation, codepoint counting, and codepoint-to-UTF-8
// encoding. PostgreSQL performs these against the active server encoding
// via a pluggable "mbverifier" table; pgscan only ever scans UTF-8-bearing
// input, so these are thin wrappers over the standard library's
// unicode/utf8 (utf8.Valid, utf8.EncodeRune, utf8.RuneCount).
package mbstr

import "unicode/utf8"

// Validate reports whether buf is well-formed UTF-8, restricted to the
// UTF-8 server encoding pgscan targets.
func Validate(buf []byte) bool {
	return utf8.Valid(buf)
}

// Len returns the number of codepoints (runes) encoded in buf, used by
// error positioning to convert a byte offset into a character position.
func Len(buf []byte) int {
	return utf8.RuneCount(buf)
}

// EncodeRune appends the UTF-8 encoding of c to dst and returns the
// extended slice. The caller (internal/scan's addUnicode) is responsible
// for rejecting c == 0 and c > 0x10FFFF before calling this.
func EncodeRune(dst []byte, c rune) []byte {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], c)
	return append(dst, buf[:n]...)
}

// CharPos converts a 0-based byte offset within buf into a 1-based
// character (codepoint) position. Returns 0 if byteOffset is negative.
func CharPos(buf []byte, byteOffset int) int {
	if byteOffset < 0 {
		return 0
	}
	if byteOffset > len(buf) {
		byteOffset = len(buf)
	}
	return utf8.RuneCount(buf[:byteOffset]) + 1
}
