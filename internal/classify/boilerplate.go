package classify

import (
	"regexp"
	"strings"
)

// Trailing control tokens the GBase stream appends after the visible
// answer, e.g. "nonclarificationtruetrue".
var controlTokens = regexp.MustCompile(`(?:nonclarification|true|false)+\s*$`)

// Quoted entity names (shop references inside 「」/『』) carry no answer
// content of their own.
var quotedEntity = regexp.MustCompile(`[「『][^」』]*[」』]`)

const strippedPunctuation = "。、！？!?.,…・：:；;"

// StripBoilerplate removes known filler phrases, quoted entity names,
// trailing control tokens, punctuation and whitespace from a reply and
// returns the remainder. Filler matching is exact and case-sensitive as
// authored. Pure function; empty input yields empty output.
func StripBoilerplate(text string, fillers []string) string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return ""
	}

	cleaned = controlTokens.ReplaceAllString(cleaned, "")

	for _, filler := range fillers {
		cleaned = strings.ReplaceAll(cleaned, filler, "")
	}

	cleaned = quotedEntity.ReplaceAllString(cleaned, "")

	cleaned = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '　' {
			return -1
		}
		if strings.ContainsRune(strippedPunctuation, r) {
			return -1
		}
		return r
	}, cleaned)

	return cleaned
}
