package render

import "strconv"

// label formats a number between a prefix and a suffix in a fixed buffer.
// The string it returns is rebuilt only when the text differs from the
// previous call.
type label struct {
	buf [32]byte
	s   string
}

// decimal formats v with one decimal, as %.1f does for a float32.
func (l *label) decimal(prefix string, v float32, suffix string) string {
	b := append(l.buf[:0], prefix...)
	b = strconv.AppendFloat(b, float64(v), 'f', 1, 32)
	return l.commit(append(b, suffix...))
}

func (l *label) integer(prefix string, v uint32, suffix string) string {
	b := append(l.buf[:0], prefix...)
	b = strconv.AppendUint(b, uint64(v), 10)
	return l.commit(append(b, suffix...))
}

func (l *label) commit(b []byte) string {
	if string(b) != l.s {
		l.s = string(b)
	}
	return l.s
}
