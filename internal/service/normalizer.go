package service

import (
	"regexp"
	"strings"
)

// Characters allowed in cleaned words: EN + DA letters plus apostrophes
// (ASCII and U+2019). Everything else is stripped.
var dropRe = regexp.MustCompile(`[^A-Za-zÆØÅæøå'’]+`)

const softHyphen = "­"

// MaxWords bounds the word lists returned to clients; callers still report
// the full count.
const MaxWords = 5000

// Dehyphenate rejoins words that PDF extraction split across line
// boundaries with a trailing hyphen ("docu-\nment" -> "document") and
// collapses soft line breaks (including trailing double-space breaks) into
// single spaces. Blank lines are kept as paragraph boundaries; paragraphs in
// the result are separated by "\n\n".
func Dehyphenate(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, softHyphen, "")

	var paragraphs []string
	var current string

	flush := func() {
		if current != "" {
			paragraphs = append(paragraphs, current)
			current = ""
		}
	}

	for _, line := range strings.Split(text, "\n") {
		// Fields also swallows trailing soft-break spaces and irregular
		// in-line spacing.
		fields := strings.Fields(line)
		if len(fields) == 0 {
			flush()
			continue
		}
		joined := strings.Join(fields, " ")

		if current == "" {
			current = joined
			continue
		}
		if strings.HasSuffix(current, "-") {
			// Word broken at the line boundary: join without a space.
			current = strings.TrimSuffix(current, "-") + joined
		} else {
			current += " " + joined
		}
	}
	flush()

	return strings.Join(paragraphs, "\n\n")
}

// MergeHyphenBreaks merges each token that ends with a hyphen with the token
// that follows it. A trailing hyphen on the final token is kept as-is.
func MergeHyphenBreaks(tokens []string) []string {
	merged := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if strings.HasSuffix(t, "-") && i+1 < len(tokens) {
			merged = append(merged, strings.TrimSuffix(t, "-")+tokens[i+1])
			i++
			continue
		}
		merged = append(merged, t)
	}
	return merged
}

// CleanToken strips soft hyphens and every character outside the EN+DA
// letter and apostrophe set.
func CleanToken(token string) string {
	token = strings.ReplaceAll(token, softHyphen, "")
	return dropRe.ReplaceAllString(token, "")
}

// Words runs the full word pipeline: whitespace tokenization, hyphen-break
// merging, character cleanup, and dropping of tokens that clean to empty.
func Words(text string) []string {
	tokens := MergeHyphenBreaks(strings.Fields(text))

	words := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if cleaned := CleanToken(t); cleaned != "" {
			words = append(words, cleaned)
		}
	}
	return words
}
