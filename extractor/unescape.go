package extractor

import (
	"strconv"
	"strings"
)

// unescape interprets backslash escapes the way Python does for plain (non
// raw) string literals. Unrecognized escapes keep their backslash, matching
// Python's behavior for sequences like \d in an unprefixed string.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			i++
			continue
		}

		next := s[i+1]
		switch {
		case next == '\n':
			// Backslash-newline is a line continuation.
			i += 2
		case next == '\\' || next == '\'' || next == '"':
			b.WriteByte(next)
			i += 2
		case next == 'a':
			b.WriteByte('\a')
			i += 2
		case next == 'b':
			b.WriteByte('\b')
			i += 2
		case next == 'f':
			b.WriteByte('\f')
			i += 2
		case next == 'n':
			b.WriteByte('\n')
			i += 2
		case next == 'r':
			b.WriteByte('\r')
			i += 2
		case next == 't':
			b.WriteByte('\t')
			i += 2
		case next == 'v':
			b.WriteByte('\v')
			i += 2
		case next == 'x':
			if v, ok := parseHex(s[i+2:], 2); ok {
				b.WriteRune(rune(v))
				i += 4
			} else {
				b.WriteString(s[i : i+2])
				i += 2
			}
		case next == 'u':
			if v, ok := parseHex(s[i+2:], 4); ok {
				b.WriteRune(rune(v))
				i += 6
			} else {
				b.WriteString(s[i : i+2])
				i += 2
			}
		case next == 'U':
			if v, ok := parseHex(s[i+2:], 8); ok {
				b.WriteRune(rune(v))
				i += 10
			} else {
				b.WriteString(s[i : i+2])
				i += 2
			}
		case next >= '0' && next <= '7':
			digits := 1
			for digits < 3 && i+1+digits < len(s) && s[i+1+digits] >= '0' && s[i+1+digits] <= '7' {
				digits++
			}
			v, _ := strconv.ParseUint(s[i+1:i+1+digits], 8, 16)
			b.WriteRune(rune(v))
			i += 1 + digits
		default:
			b.WriteByte('\\')
			b.WriteByte(next)
			i += 2
		}
	}

	return b.String()
}

// parseHex reads exactly width hex digits from the front of s.
func parseHex(s string, width int) (uint64, bool) {
	if len(s) < width {
		return 0, false
	}
	v, err := strconv.ParseUint(s[:width], 16, 32)
	if err != nil {
		return 0, false
	}
	return v, true
}
