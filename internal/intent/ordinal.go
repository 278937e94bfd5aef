package intent

import (
	"regexp"
	"strconv"
	"strings"

	debuglog "github.com/pautahq/pauta/internal/log"
)

var (
	ordinalWordRe = regexp.MustCompile(`\b(primeir|segund|terceir|quart|quint|sext|s[eé]tim|oitav|non|d[eé]cim)[oa]\b`)
	// \b is ASCII-only, so the accented forms carry their own boundaries.
	penultimateRe = regexp.MustCompile(`(?:^|[^\p{L}])pen[uú]ltim[oa](?:$|[^\p{L}])`)
	lastRe        = regexp.MustCompile(`(?:^|[^\p{L}])[uú]ltim[oa](?:$|[^\p{L}])`)
	digitRe       = regexp.MustCompile(`(?:^|[^\d])(\d{1,2})(?:$|[^\d])`)

	// enumeratorRe matches "1. text", "1) text", "• text" and "- text" lines.
	enumeratorRe = regexp.MustCompile(`(?m)^[ \t]*(?:(\d{1,3})[.)][ \t]*|[•-][ \t]+)(\S[^\n]*)$`)

	ordinalIndex = map[string]int{
		"primeir": 1,
		"segund":  2,
		"terceir": 3,
		"quart":   4,
		"quint":   5,
		"sext":    6,
		"setim":   7,
		"sétim":   7,
		"oitav":   8,
		"non":     9,
		"decim":   10,
		"décim":   10,
	}
)

type listItem struct {
	number int // 0 for bullets
	text   string
}

func listItems(content string) []listItem {
	matches := enumeratorRe.FindAllStringSubmatch(content, -1)
	items := make([]listItem, 0, len(matches))
	for _, m := range matches {
		text := strings.TrimSpace(m[2])
		if text == "" {
			continue
		}
		n := 0
		if m[1] != "" {
			n, _ = strconv.Atoi(m[1])
		}
		items = append(items, listItem{number: n, text: text})
	}
	return items
}

// ExtractSpecificItem resolves an ordinal or digit in userMessage against the
// enumerated lines of assistantContent. It reports false when the message
// names no position or the list has no such entry.
//
// "última" resolves to the count of all enumerator lines, numbered and
// bulleted together. Content mixing both grammars can therefore resolve to a
// line the user did not mean.
func ExtractSpecificItem(userMessage, assistantContent string) (string, bool) {
	if userMessage == "" || assistantContent == "" {
		return "", false
	}

	items := listItems(assistantContent)
	if len(items) == 0 {
		return "", false
	}

	index := targetIndex(withoutWeekdays(lower(userMessage)), len(items))
	if index <= 0 {
		return "", false
	}

	for _, item := range items {
		if item.number == index {
			debuglog.Debug(debuglog.Trace, "ordinal %d resolved to numbered line\n", index)
			return item.text, true
		}
	}
	if index <= len(items) {
		debuglog.Debug(debuglog.Trace, "ordinal %d resolved to enumerator line\n", index)
		return items[index-1].text, true
	}
	return "", false
}

// targetIndex returns the 1-based position named by msg, or 0.
func targetIndex(msg string, count int) int {
	if m := ordinalWordRe.FindStringSubmatch(msg); m != nil {
		return ordinalIndex[m[1]]
	}
	if penultimateRe.MatchString(msg) {
		return count - 1
	}
	if lastRe.MatchString(msg) {
		return count
	}
	if m := digitRe.FindStringSubmatch(msg); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n
		}
	}
	return 0
}
