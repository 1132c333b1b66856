package psu

// Wire framing characters.
const (
	frameOpen  = '['
	frameClose = ']'
	fieldSep   = '/'
)

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// parseField decodes one ASCII numeric field starting at pos and returns the
// value scaled to exactly fracDigits fractional digits. Excess fractional
// digits in the source are consumed but discarded (truncated, not rounded);
// missing ones are padded with zeros, so "12.3", "12.300" and "12.3456" all
// normalize to the same scale.
//
// The byte after the field must be the frame terminator, or the field
// separator when the caller expects a second value in the same frame. next
// is the index of that byte. On failure ok is false and the result must not
// be applied.
func parseField(buf []byte, pos, fracDigits int, allowSeparator bool) (value int64, next int, ok bool) {
	if pos >= len(buf) || !isDigit(buf[pos]) {
		return 0, pos, false
	}

	for pos < len(buf) && isDigit(buf[pos]) {
		value = value*10 + int64(buf[pos]-'0')
		pos++
	}

	kept := 0
	if pos < len(buf) && buf[pos] == '.' {
		pos++
		if pos >= len(buf) || !isDigit(buf[pos]) {
			return 0, pos, false
		}
		for pos < len(buf) && isDigit(buf[pos]) {
			if kept < fracDigits {
				value = value*10 + int64(buf[pos]-'0')
				kept++
			}
			pos++
		}
	}

	for kept < fracDigits {
		value *= 10
		kept++
	}

	if pos >= len(buf) {
		return 0, pos, false
	}
	switch {
	case buf[pos] == frameClose:
	case allowSeparator && buf[pos] == fieldSep:
	default:
		return 0, pos, false
	}

	return value, pos, true
}
