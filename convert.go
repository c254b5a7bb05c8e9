package mpf

import (
	"fmt"
	"strconv"
)

// asInt returns the integer value of an object, shimmering a pure string
// to IntType on success.
func asInt(o *Obj) (int64, error) {
	if o == nil {
		return 0, fmt.Errorf("expected integer but got \"\"")
	}
	if c, ok := o.intrep.(IntoInt); ok {
		if v, ok := c.IntoInt(); ok {
			return v, nil
		}
	}
	if o.intrep == nil {
		if v, err := strconv.ParseInt(o.String(), 10, 64); err == nil {
			o.intrep = IntType(v)
			return v, nil
		}
	}
	return 0, fmt.Errorf("expected integer but got %q", o.String())
}

// asDouble returns the float64 value of an object, shimmering a pure
// string to DoubleType on success.
func asDouble(o *Obj) (float64, error) {
	if o == nil {
		return 0, fmt.Errorf("expected floating-point number but got \"\"")
	}
	if c, ok := o.intrep.(IntoDouble); ok {
		if v, ok := c.IntoDouble(); ok {
			return v, nil
		}
	}
	if o.intrep == nil {
		if v, err := strconv.ParseFloat(o.String(), 64); err == nil {
			o.intrep = DoubleType(v)
			return v, nil
		}
	}
	return 0, fmt.Errorf("expected floating-point number but got %q", o.String())
}

// quote adds braces around a string if it contains special characters.
func quote(s string) string {
	if s == "" {
		return "{}"
	}
	needsQuote := false
	for _, c := range s {
		if c == ' ' || c == '\t' || c == '\n' || c == '{' || c == '}' || c == '"' || c == '\\' || c == '$' {
			needsQuote = true
			break
		}
	}
	if needsQuote {
		return "{" + s + "}"
	}
	return s
}

// Fields splits a command line into words. Braced and quoted words may
// contain whitespace; braces nest.
func Fields(s string) ([]string, error) {
	var items []string
	pos := 0

	for pos < len(s) {
		for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t' || s[pos] == '\n') {
			pos++
		}
		if pos >= len(s) {
			break
		}

		var elem string
		if s[pos] == '{' {
			depth := 1
			start := pos + 1
			pos++
			for pos < len(s) && depth > 0 {
				if s[pos] == '{' {
					depth++
				} else if s[pos] == '}' {
					depth--
				}
				pos++
			}
			if depth != 0 {
				return nil, fmt.Errorf("unmatched brace in list")
			}
			elem = s[start : pos-1]
		} else if s[pos] == '"' {
			start := pos + 1
			pos++
			for pos < len(s) && s[pos] != '"' {
				if s[pos] == '\\' && pos+1 < len(s) {
					pos++
				}
				pos++
			}
			if pos >= len(s) {
				return nil, fmt.Errorf("unmatched quote in list")
			}
			elem = s[start:pos]
			pos++ // skip closing quote
		} else {
			start := pos
			for pos < len(s) && s[pos] != ' ' && s[pos] != '\t' && s[pos] != '\n' {
				pos++
			}
			elem = s[start:pos]
		}
		items = append(items, elem)
	}
	return items, nil
}
