package encoding

const escapeByte = '\\'

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// appendSymbol appends the escaped form of c to dst.
func appendSymbol(dst []byte, c byte) []byte {
	switch {
	case c == '\n':
		return append(dst, escapeByte, 'n')
	case c == escapeByte:
		return append(dst, escapeByte, escapeByte)
	case isDigit(c):
		return append(dst, escapeByte, c)
	default:
		return append(dst, c)
	}
}

// readSymbol resolves the symbol starting at src[i] and returns it with the
// number of bytes it occupies. A backslash in the last position is read as a
// literal backslash.
func readSymbol(src []byte, i int) (byte, int) {
	c := src[i]
	if c != escapeByte || i+1 >= len(src) {
		return c, 1
	}

	switch marker := src[i+1]; {
	case marker == 'n':
		return '\n', 2
	case marker == 't':
		return '\t', 2
	case isDigit(marker):
		return marker, 2
	default:
		return escapeByte, 2
	}
}
