package core

// itoa converts an integer to a string without pulling in the fmt package,
// which is heavyweight on small AVR parts.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	var buf [12]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}

	if negative {
		pos--
		buf[pos] = '-'
	}

	return string(buf[pos:])
}

const hexDigits = "0123456789abcdef"

// hex8 formats a byte as two lowercase hex digits.
func hex8(b uint8) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0x0F]})
}

// parseNum parses a small unsigned number, decimal or 0x-prefixed hex.
func parseNum(s string) (uint8, bool) {
	if len(s) == 0 {
		return 0, false
	}

	base := uint16(10)
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
		if len(s) == 0 {
			return 0, false
		}
	}

	var value uint16
	for i := 0; i < len(s); i++ {
		var digit uint16
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digit = uint16(c - '0')
		case base == 16 && c >= 'a' && c <= 'f':
			digit = uint16(c-'a') + 10
		case base == 16 && c >= 'A' && c <= 'F':
			digit = uint16(c-'A') + 10
		default:
			return 0, false
		}
		value = value*base + digit
		if value > 0xFF {
			return 0, false
		}
	}
	return uint8(value), true
}
