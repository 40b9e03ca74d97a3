package utils

import "bytes"

// Flush drains the buffer and reports whether it held new content.
func Flush(buf *bytes.Buffer) (string, bool) {
	if buf.Len() == 0 {
		return "", false
	}
	out := buf.String()
	buf.Reset()
	return out, true
}
