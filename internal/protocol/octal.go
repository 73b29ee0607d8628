package protocol

// EscapeNotFound is the sentinel DecodeEscapedOctal returns when its input
// does not start a valid 4-character octal escape.
const EscapeNotFound = -1

func octalDigit(c byte) int {
	if c >= '0' && c <= '7' {
		return int(c - '0')
	}
	return EscapeNotFound
}

// DecodeEscapedOctal interprets a `\ddd` sequence (backslash plus three
// octal digits) as one byte value. Raw card strings such as SSIDs are
// dumped with non-printable bytes in this form.
func DecodeEscapedOctal(s string) int {
	if len(s) < 4 || s[0] != '\\' {
		return EscapeNotFound
	}
	ret := 0
	for i := 1; i < 4; i++ {
		d := octalDigit(s[i])
		if d < 0 {
			return d
		}
		ret = (ret << 3) + d
	}
	return ret
}

// UnescapeOctal replaces every valid 4-character octal escape in s with its
// decoded byte. Characters that do not start a valid escape copy through
// unchanged.
func UnescapeOctal(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		if esc := DecodeEscapedOctal(s[i:]); esc >= 0 {
			out = append(out, byte(esc))
			i += 4
			continue
		}
		out = append(out, s[i])
		i++
	}
	return string(out)
}
