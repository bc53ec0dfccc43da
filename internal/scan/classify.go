package scan

// Pure byte predicates used throughout the state machine, one per
// character class scan.l defines as a flex pattern. Kept free of any
// scanner state so they can be inlined and tested in isolation.

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHighBit(b byte) bool { return b >= 0x80 }

// isIdentStart implements scan.l's ident_start [A-Za-z\200-\377_].
func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || isHighBit(b)
}

// isIdentCont implements scan.l's ident_cont [A-Za-z\200-\377_0-9\$].
func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b) || b == '$'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }

// isDolqStart implements scan.l's dolq_start [A-Za-z\200-\377_] (no digits,
// no '$', at the first position of a dollar-quote tag).
func isDolqStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || isHighBit(b)
}

// isDolqCont implements scan.l's dolq_cont [A-Za-z\200-\377_0-9].
func isDolqCont(b byte) bool {
	return isDolqStart(b) || isDigit(b)
}

// isOpChar implements scan.l's op_chars [\~\!\@\#\^\&\|\`\?\+\-\*\/\%\<\>\=].
func isOpChar(b byte) bool {
	switch b {
	case '~', '!', '@', '#', '^', '&', '|', '`', '?', '+', '-', '*', '/', '%', '<', '>', '=':
		return true
	}
	return false
}

// isSelfChar implements scan.l's self [,()\[\].;\:\+\-\*\/\%\^\<\>\=].
func isSelfChar(b byte) bool {
	switch b {
	case ',', '(', ')', '[', ']', '.', ';', ':', '+', '-', '*', '/', '%', '^', '<', '>', '=':
		return true
	}
	return false
}

// isQualifyingOpChar is the "qualifying character" set used by the
// operator trimming rule: ~!@#^&|`?%.
func isQualifyingOpChar(b byte) bool {
	switch b {
	case '~', '!', '@', '#', '^', '&', '|', '`', '?', '%':
		return true
	}
	return false
}
