package compiler

import (
	"regexp"
	"strings"
)

// mustachePattern matches the first {{ expr }} in a text. The capture stops
// at the first closing "}}", so expressions cannot contain "}}".
var mustachePattern = regexp.MustCompile(`\{\{(.+?)\}\}`)

// findMustache returns the expression of the first interpolation in text
// and the byte range of the whole {{...}} match. A first match whose
// expression holds a "{" makes the whole text non-matching.
func findMustache(text string) (expr string, start, end int, ok bool) {
	loc := mustachePattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", 0, 0, false
	}
	// "{{{a}}}" and "{{ {{a}} }}" are malformed, not interpolations.
	expr = text[loc[2]:loc[3]]
	if strings.Contains(expr, "{") {
		return "", 0, 0, false
	}
	return expr, loc[0], loc[1], true
}

// interpolate replaces the first interpolation in text with the value
// produced by resolve. Text around the braces is kept verbatim. Later
// interpolations in the same text are left untouched.
func interpolate(text string, resolve func(expr string) (string, error)) (string, bool, error) {
	expr, start, end, ok := findMustache(text)
	if !ok {
		return text, false, nil
	}
	value, err := resolve(expr)
	if err != nil {
		return text, true, err
	}
	return text[:start] + value + text[end:], true, nil
}
