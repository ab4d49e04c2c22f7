package textutil

import (
	"regexp"
	"strings"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	markupTagRegex  = regexp.MustCompile(`<[^>]*>`)
	footnoteRegex   = regexp.MustCompile(`\[\d+\]`)
	inlineImgRegex  = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
)

// CleanCell strips the scraping artifacts that show up in wiki table
// cells: markup tags, bracketed footnote markers like [1], inline image
// markers like ![](//upload.wikimedia.org/flag.svg) and quote characters.
// Unmatched or partial markup degrades to best-effort stripping.
// CleanCell(CleanCell(s)) == CleanCell(s) for all s.
func CleanCell(raw string) string {
	s := inlineImgRegex.ReplaceAllString(raw, "")
	s = markupTagRegex.ReplaceAllString(s, "")
	s = footnoteRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, `"`, "")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.Trim(s, " \n\t")
}

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// ContainsEitherWay reports whether one name contains the other after
// normalization, in either direction. This is the heuristic used to match
// scraped city names against resolved population records.
func ContainsEitherWay(a, b string) bool {
	na := NormalizeName(a)
	nb := NormalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}
