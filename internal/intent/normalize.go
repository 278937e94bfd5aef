package intent

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Weekday names reuse the ordinal words ("segunda-feira" is Monday), so they
// are blanked out before ordinal matching.
var weekdayRe = regexp.MustCompile(`\b(?:segunda|ter[cç]a|quarta|quinta|sexta)(?:\s*-\s*|\s+)feiras?\b`)

// lower folds text once per call. A Caser holds state, so one is built per
// call instead of being shared.
func lower(text string) string {
	return cases.Lower(language.BrazilianPortuguese).String(text)
}

func withoutWeekdays(lowered string) string {
	return weekdayRe.ReplaceAllString(lowered, " ")
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// truncateRunes cuts s to at most n runes and reports whether it cut.
func truncateRunes(s string, n int) (string, bool) {
	if n <= 0 {
		return "", s != ""
	}
	if runeLen(s) <= n {
		return s, false
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	return s, false
}

var spaceRe = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func matchesAny(patterns []*regexp.Regexp, text string) (int, bool) {
	for i, re := range patterns {
		if re.MatchString(text) {
			return i, true
		}
	}
	return -1, false
}
