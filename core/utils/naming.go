package utils

import "strings"

// SplitNamespace splits a dotted identifier at its last '.' into the namespace
// prefix and the leaf name. An identifier without a dot has an empty namespace.
func SplitNamespace(id string) (namespace, name string) {
	idx := strings.LastIndexByte(id, '.')
	if idx < 0 {
		return "", id
	}
	return id[:idx], id[idx+1:]
}

// MakeFullName joins identifier parts with '.', skipping empty parts.
func MakeFullName(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

// Capitalize lower-cases the whole token and upper-cases its first character.
// Only ASCII letters change case so the result never depends on the host locale.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	if 'a' <= b[0] && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
