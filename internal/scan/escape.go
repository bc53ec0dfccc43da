package scan

import (
	"github.com/cybertec-postgresql/pgscan/internal/mbstr"
	"github.com/cybertec-postgresql/pgscan/internal/scanconfig"
	"github.com/cybertec-postgresql/pgscan/internal/scanerr"
)

// scanEscapeString implements the <xe>/<xeu> states: a string literal
// with C-style backslash escapes. warnEnabled is false for an explicit
// E'' opener (which disables the first-escape notice outright) and true
// for a plain '...' literal entered because standard_conforming_strings
// is off.
func (s *Scanner) scanEscapeString(start int, warnEnabled bool) (Token, error) {
	s.lit.reset()
	s.sawNonASCII = false
	s.pendingSurrogate = false
	warnedOnce := false
	prevCond := s.cond
	s.cond = condXE
	defer func() { s.cond = prevCond }()

	s.pos++ // consume opening '
	for {
		if s.eof() {
			if s.pendingSurrogate {
				return Token{}, scanerr.New(scanerr.InvalidUnicodeSurrogatePair, s.pos)
			}
			return Token{}, scanerr.New(scanerr.UnterminatedQuotedString, start)
		}

		if s.pendingSurrogate {
			// xeu: the only legal continuation is a \u/\U escape carrying a
			// low surrogate. Anything else, including a newline, fails.
			if s.cur() != '\\' || (s.peekAt(1) != 'u' && s.peekAt(1) != 'U') {
				return Token{}, scanerr.New(scanerr.InvalidUnicodeSurrogatePair, s.pos)
			}
		}

		switch s.cur() {
		case '\'':
			if s.peekAt(1) == '\'' {
				s.lit.appendByte('\'')
				s.pos += 2
				continue
			}
			s.pos++
			cont, err := s.tryQuoteContinue()
			if err != nil {
				return Token{}, err
			}
			if cont {
				continue
			}
			if s.sawNonASCII && !mbstr.Validate(s.lit.buf) {
				return Token{}, scanerr.New(scanerr.InvalidByteSequence, start)
			}
			return Token{Kind: SCONST, Pos: start, Text: s.lit.snapshot()}, nil
		case '\\':
			if err := s.decodeBackslashEscape(warnEnabled, &warnedOnce); err != nil {
				return Token{}, err
			}
		default:
			s.lit.appendByte(s.cur())
			s.pos++
		}
	}
}

// decodeBackslashEscape consumes one backslash escape at the current
// position (s.cur() == '\\'), appending its decoded bytes to s.lit.
func (s *Scanner) decodeBackslashEscape(warnEnabled bool, warnedOnce *bool) error {
	escPos := s.pos
	s.pos++ // consume backslash
	if s.eof() {
		// A lone trailing backslash right before end of input; the
		// subsequent EOF check reports the unterminated string.
		s.lit.appendByte('\\')
		return nil
	}

	c := s.cur()
	switch c {
	case 'b':
		s.lit.appendByte('\b')
		s.pos++
	case 'f':
		s.lit.appendByte('\f')
		s.pos++
	case 'n':
		s.lit.appendByte('\n')
		s.pos++
	case 'r':
		s.lit.appendByte('\r')
		s.pos++
	case 't':
		s.lit.appendByte('\t')
		s.pos++
	case '\'':
		if err := s.checkBackslashQuote(escPos); err != nil {
			return err
		}
		s.maybeWarn(warnEnabled, warnedOnce, scanerr.WarnNonstandardBackslashQuote, escPos)
		s.lit.appendByte('\'')
		s.pos++
	case '\\':
		s.maybeWarn(warnEnabled, warnedOnce, scanerr.WarnNonstandardBackslashBackslash, escPos)
		s.lit.appendByte('\\')
		s.pos++
	case 'x':
		s.maybeWarn(warnEnabled, warnedOnce, scanerr.WarnNonstandardEscape, escPos)
		s.pos++
		v, n := 0, 0
		for n < 2 && isHexDigit(s.cur()) {
			v = v*16 + hexVal(s.cur())
			s.pos++
			n++
		}
		if n == 0 {
			return scanerr.New(scanerr.InvalidHexadecimalDigit, escPos)
		}
		s.appendRawByte(byte(v))
	case 'u', 'U':
		s.maybeWarn(warnEnabled, warnedOnce, scanerr.WarnNonstandardEscape, escPos)
		return s.decodeUnicodeEscape(escPos, c == 'U')
	default:
		if isOctalDigit(c) {
			s.maybeWarn(warnEnabled, warnedOnce, scanerr.WarnNonstandardEscape, escPos)
			v, n := 0, 0
			for n < 3 && isOctalDigit(s.cur()) {
				v = v*8 + int(s.cur()-'0')
				s.pos++
				n++
			}
			s.appendRawByte(byte(v))
		} else {
			// A redundant escape: the backslash is stripped and c is kept
			// literally.
			s.maybeWarn(warnEnabled, warnedOnce, scanerr.WarnNonstandardEscape, escPos)
			if isHighBit(c) || c == 0 {
				s.sawNonASCII = true
			}
			s.lit.appendByte(c)
			s.pos++
		}
	}
	return nil
}

// decodeUnicodeEscape consumes \uXXXX or \UXXXXXXXX starting at s.cur() ==
// 'u'/'U', pairing UTF-16 surrogate halves across the xe/xeu transition
// exactly as PostgreSQL's check_escape_warning/litbufdup machinery does.
func (s *Scanner) decodeUnicodeEscape(escPos int, isUpper bool) error {
	s.pos++ // consume u/U
	n := 4
	if isUpper {
		n = 8
	}
	val := 0
	for i := 0; i < n; i++ {
		if !isHexDigit(s.cur()) {
			return scanerr.New(scanerr.InvalidUnicodeEscape, escPos)
		}
		val = val*16 + hexVal(s.cur())
		s.pos++
	}
	c := rune(val)

	if s.pendingSurrogate {
		if c < 0xDC00 || c >= 0xE000 {
			return scanerr.New(scanerr.InvalidUnicodeSurrogatePair, escPos)
		}
		paired := 0x10000 + (s.utf16Top-0xD800)*0x400 + (c - 0xDC00)
		s.pendingSurrogate = false
		return s.addUnicode(escPos, paired)
	}

	switch {
	case c >= 0xD800 && c < 0xDC00:
		s.utf16Top = c
		s.pendingSurrogate = true
		return nil
	case c >= 0xDC00 && c < 0xE000:
		return scanerr.New(scanerr.InvalidUnicodeSurrogatePair, escPos)
	default:
		return s.addUnicode(escPos, c)
	}
}

// addUnicode validates a decoded Unicode escape codepoint and appends its
// UTF-8 encoding to the literal buffer, mirroring scan.l's addunicode.
func (s *Scanner) addUnicode(pos int, c rune) error {
	if c == 0 || c > 0x10FFFF {
		return scanerr.New(scanerr.InvalidUnicodeEscapeValue, pos)
	}
	if c > 0x7F && !s.enc.ServerIsUTF8() {
		return scanerr.New(scanerr.UnicodeEscapeNonUTF8ServerEncoding, pos)
	}
	s.lit.buf = mbstr.EncodeRune(s.lit.buf, c)
	if c > 0x7F {
		s.sawNonASCII = true
	}
	return nil
}

func (s *Scanner) appendRawByte(b byte) {
	if b == 0 || isHighBit(b) {
		s.sawNonASCII = true
	}
	s.lit.appendByte(b)
}

// checkBackslashQuote implements the backslash_quote policy for a \'
// escape: on, always allowed; safe_encoding, allowed unless the client
// encoding is client-only; off, never allowed.
func (s *Scanner) checkBackslashQuote(pos int) error {
	switch s.cfg.BackslashQuote {
	case scanconfig.BackslashQuoteOn:
		return nil
	case scanconfig.BackslashQuoteSafeEncoding:
		if s.enc.ClientOnlyEncoding() {
			return scanerr.New(scanerr.UnsafeBackslashQuote, pos).WithHint(`use '' to write quotes in strings`)
		}
		return nil
	default:
		return scanerr.New(scanerr.UnsafeBackslashQuote, pos).WithHint(`use '' to write quotes in strings`)
	}
}

func (s *Scanner) maybeWarn(enabled bool, warnedOnce *bool, kind scanerr.Kind, pos int) {
	if !enabled || *warnedOnce || !s.cfg.EscapeStringWarning {
		return
	}
	*warnedOnce = true
	s.warn.Warn(&scanerr.Warning{Kind: kind, Pos: pos})
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return 0
}
