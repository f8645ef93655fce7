package model

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler converts a field name into a human-friendly label. It splits
// on underscores/dashes and camelCase boundaries.
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	words := splitWordsPattern.Split(name, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		segments = append(segments, titleCase(splitCamel(word)))
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

// OptionLabel turns a raw option value into display text: the first character
// is upper-cased once, then every underscore becomes a single space. The rest
// of the string keeps its case, so "Public_Transportation" stays
// "Public Transportation" and "no" becomes "No".
func OptionLabel(value string) string {
	if value == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(value)
	capitalised := string(unicode.ToUpper(first)) + value[size:]
	return strings.ReplaceAll(capitalised, "_", " ")
}

// DeriveOptions maps raw values to select options, preserving order and
// length. Values are never altered; labels come from labeler (OptionLabel
// when nil).
func DeriveOptions(values []string, labeler func(string) string) []Option {
	if len(values) == 0 {
		return nil
	}
	if labeler == nil {
		labeler = OptionLabel
	}
	out := make([]Option, 0, len(values))
	for _, value := range values {
		out = append(out, Option{Value: value, Label: labeler(value)})
	}
	return out
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev := rune(input[index-1])
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
