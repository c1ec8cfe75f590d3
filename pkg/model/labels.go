package model

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// Humanize converts a property name into a display label, splitting on
// underscores, dashes and camelCase boundaries: "clickMe" becomes "Click Me".
// Existing capitals are preserved so acronyms survive ("homeURL" -> "Home URL").
func Humanize(name string) string {
	if name == "" {
		return ""
	}

	var segments []string
	for _, word := range splitWordsPattern.Split(name, -1) {
		if word == "" {
			continue
		}
		segments = append(segments, splitCamel(word))
	}
	joined := strings.TrimSpace(strings.Join(segments, " "))
	return cases.Title(language.Und, cases.NoLower).String(joined)
}

// CamelCase joins segments into a single camelCase identifier, leaving the
// first segment untouched and upper-casing the first rune of the rest:
// ["address", "city", "zip"] becomes "addressCityZip".
func CamelCase(segments []string) string {
	var out strings.Builder
	for idx, segment := range segments {
		if segment == "" {
			continue
		}
		if idx == 0 || out.Len() == 0 {
			out.WriteString(segment)
			continue
		}
		first, size := utf8.DecodeRuneInString(segment)
		out.WriteRune(unicode.ToUpper(first))
		out.WriteString(segment[size:])
	}
	return out.String()
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
	if isLower(prev) && isUpper(r) {
		return true
	}
	if isLetter(prev) && isDigit(r) || isDigit(prev) && isLetter(r) {
		return true
	}
	// "URLValue": break before the last capital of an acronym run.
	if isUpper(prev) && isUpper(r) && index+1 < len(input) && isLower(rune(input[index+1])) {
		return true
	}
	return false
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }
