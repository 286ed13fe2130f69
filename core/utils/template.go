package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Template is a parsed single-argument format string such as "Tb{0}".
// Literal braces are written as "{{" and "}}".
type Template struct {
	raw   string
	parts []templatePart
}

type templatePart struct {
	text string
	arg  bool
}

// ParseTemplate parses a format string. Any placeholder other than {0} is rejected,
// since the naming options are always formatted with exactly one argument.
func ParseTemplate(format string) (Template, error) {
	t := Template{raw: format}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.parts = append(t.parts, templatePart{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		switch c {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(format[i+1:], '}')
			if end < 0 {
				return Template{}, fmt.Errorf("unclosed placeholder at offset %d in %q", i, format)
			}
			body := format[i+1 : i+1+end]
			idx, err := strconv.Atoi(body)
			if err != nil {
				return Template{}, fmt.Errorf("invalid placeholder {%s} in %q", body, format)
			}
			if idx != 0 {
				return Template{}, fmt.Errorf("placeholder {%d} in %q references a missing argument, only {0} is available", idx, format)
			}
			flush()
			t.parts = append(t.parts, templatePart{arg: true})
			i += end + 1
		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return Template{}, fmt.Errorf("unbalanced '}' at offset %d in %q", i, format)
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return t, nil
}

// MustParseTemplate is like ParseTemplate but panics on error.
func MustParseTemplate(format string) Template {
	t, err := ParseTemplate(format)
	if err != nil {
		panic(err)
	}
	return t
}

// Format substitutes arg for every {0} placeholder.
func (t Template) Format(arg string) string {
	var b strings.Builder
	for _, p := range t.parts {
		if p.arg {
			b.WriteString(arg)
		} else {
			b.WriteString(p.text)
		}
	}
	return b.String()
}

// String returns the original format string.
func (t Template) String() string {
	return t.raw
}
