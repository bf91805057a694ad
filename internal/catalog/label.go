package catalog

import (
	"strings"
	"unicode"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// PlainLabel strips leading emoji and spaces, "📅 Book Appointment" -> "Book Appointment"
func PlainLabel(label string) string {
	return strings.TrimSpace(strings.TrimLeftFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}))
}

// MatchLabel reports whether typed input selects a button. Line breaks in
// the input count as spaces and the label's leading emoji may be omitted.
func MatchLabel(input, label string) bool {
	input = strings.TrimSpace(lineBreaks.Replace(input))
	if input == "" {
		return false
	}
	return input == label || input == PlainLabel(label)
}

func findLabel(list []string, input string) (string, bool) {
	for _, item := range list {
		if MatchLabel(input, item) {
			return item, true
		}
	}
	return "", false
}
