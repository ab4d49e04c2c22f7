package wikipedia

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	parenRegex      = regexp.MustCompile(`\(([^)]*)\)`)
	yearRegex       = regexp.MustCompile(`^\d{4}$`)
	numberRegex     = regexp.MustCompile(`(\d+(?:\.\d+)*)\s*([A-Za-z]+)?`)
	leadingIntRegex = regexp.MustCompile(`\d+`)
)

// ExtractVisitorCount parses a free-text quantity cell like
// "2.5 million (2019)" into an integer count and the embedded year, if
// any. Unparseable input yields a zero count; the year is 0 when no
// parenthesized 4-digit year is present.
//
// Quirks carried over from the table's production history, all covered
// by tests:
//   - unknown unit words ("trillion") are ignored and the bare number is
//     used, truncated
//   - a leading minus sign is not matched by the numeric pattern, so
//     negative input parses as its digits
//   - a malformed decimal like "2.5.5" falls back to the leading integer
//     run and skips the unit multiplier
func ExtractVisitorCount(text string) (int64, int) {
	year := 0
	for _, match := range parenRegex.FindAllStringSubmatch(text, -1) {
		inner := strings.TrimSpace(match[1])
		if year == 0 && yearRegex.MatchString(inner) {
			year, _ = strconv.Atoi(inner)
		}
	}
	text = parenRegex.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, ",", "")

	match := numberRegex.FindStringSubmatch(text)
	if match == nil {
		return 0, year
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		lead := leadingIntRegex.FindString(match[1])
		count, err := strconv.ParseInt(lead, 10, 64)
		if err != nil {
			return 0, year
		}
		return count, year
	}

	multiplier := float64(1)
	switch strings.ToLower(match[2]) {
	case "thousand":
		multiplier = 1_000
	case "million":
		multiplier = 1_000_000
	case "billion":
		multiplier = 1_000_000_000
	}

	return int64(value * multiplier), year
}
