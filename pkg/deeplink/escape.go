package deeplink

import "strings"

const upperhex = "0123456789ABCDEF"

// EscapeSegment percent-encodes s for use as one path segment.
//
// Unreserved characters, sub-delimiters (! $ & ' ( ) * + , ; =), ':' and '@'
// are left as is. Everything else, including '/', '?', '#', '%' and
// whitespace, is escaped. url.PathEscape is stricter: it also escapes ',' and
// ';'.
func EscapeSegment(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if shouldEscapeSegment(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldEscapeSegment(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// shouldEscapeSegment reports whether c must be escaped inside a segment.
func shouldEscapeSegment(c byte) bool {
	if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
		return false
	}
	switch c {
	case '-', '.', '_', '~':
		return false
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return false
	case ':', '@':
		return false
	}
	return true
}

// escapeAuthority is EscapeSegment for a value written in the authority slot
// of a hostless link. ':' and '@' are escaped too so the value cannot be read
// as a port or userinfo.
func escapeAuthority(s string) string {
	s = EscapeSegment(s)
	if !strings.ContainsAny(s, ":@") {
		return s
	}
	return strings.NewReplacer(":", "%3A", "@", "%40").Replace(s)
}
