package service

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"pdf-text-pipeline/internal/domain"
)

// Tokenizer keeps EN + DA letters, apostrophes (ASCII + unicode) and hyphens.
var sentimentWordRe = regexp.MustCompile(`[a-zA-ZæøåÆØÅ'’-]+`)

var posPhrasesRaw = []string{
	"well structured", "well-structured", "well organized", "well-organized",
	"learned a lot", "lærte virkelig meget", "jeg lærte virkelig meget",
	"super actionable", "hands-on", "inspiring", "beautifully presented",
	"mega godt kursus", "rigtig god struktur",
	"great course",
	"clear structure",
	"useful exercises",
	"practical and fun",
	"the teacher was nice",
	"nice and helpful",
	"loved the project",
	"loved the project work",
	"iterative feedback",
	"feedback-loopet",
	"jeg lærte meget",
	"var god til at forklare",
	"bandt det hele sammen",
	"gav mening",
	"tydelig formidling",
	"stærke diskussioner",
}

var negPhrasesRaw = []string{
	"did not learn much", "didn't learn much",
	"waste of time", "spild af tid",
	"underprepared", "too many gaps", "rodet", "frustrerende",
	"uklare krav", "for få forklaringer", "confusing",
}

var neuPhrasesRaw = []string{
	"overall fine", "nothing special", "okay", "ok",
	"helt fint", "ikke noget wow", "fine, nothing special",
}

var negationWords = map[string]bool{
	"not": true, "no": true, "ikke": true, "ingen": true, "aldrig": true, "never": true,
}

var posWordsRaw = []string{
	"great", "excellent", "amazing", "useful", "clear", "interesting", "engaging",
	"helpful", "motivating", "inspiring", "fantastic", "actionable",
	"god", "godt", "gode", "fantastisk", "fremragende", "lærerigt", "tydelig",
	"spændende", "interessant", "anbefaler", "engageret",
	"liked", "love", "loved", "nice", "learned", "tools",
	"sharp", "quick", "fast", "concrete", "clearly", "solid", "practical", "fun",
	"energetic", "mega", "hjælpsom", "præcist", "elegant", "velvalgte",
	"elskede", "lærte", "tryg", "stærk", "mening",
}

var negWordsRaw = []string{
	"bad", "boring", "dry", "confusing", "unclear", "terrible", "awful",
	"useless", "unhelpful", "disorganized", "messy", "frustrating",
	"dårlig", "kedelig", "tørt", "forvirrende", "uklar", "elendig", "uorganiseret",
	"rodet", "frustrerende",
}

var mixMarkers = []string{" but ", " however ", " men ", " dog "}

var intensifiers = map[string]bool{
	"very": true, "really": true, "extremely": true,
	"meget": true, "virkelig": true, "mega": true, "super": true,
}

var neutralTokens = map[string]bool{
	"ok": true, "okay": true, "fine": true, "fint": true,
}

// Deduplicated and sorted at init so scoring is deterministic.
var (
	posPhrases = normalizePhrases(posPhrasesRaw)
	negPhrases = normalizePhrases(negPhrasesRaw)
	neuPhrases = normalizePhrases(neuPhrasesRaw)
	posWords   = normalizeWordSet(posWordsRaw)
	negWords   = normalizeWordSet(negWordsRaw)
)

// SentimentAnalyzer scores course-evaluation style feedback text with a
// bilingual (EN + DA) lexicon.
type SentimentAnalyzer struct {
	logger domain.Logger
}

// NewSentimentAnalyzer creates a new sentiment analyzer
func NewSentimentAnalyzer(logger domain.Logger) *SentimentAnalyzer {
	return &SentimentAnalyzer{logger: logger}
}

// Score returns a quantized label: -3 negative, 0 neutral, 3 positive.
func (a *SentimentAnalyzer) Score(text string) int {
	s := normalizeSpace(strings.ToLower(text))

	// Contrast split: "good but fast" is often mixed or second-part-weighted.
	if first, second, ok := splitOnContrast(s); ok {
		sa := scoreSegment(first)
		sb := scoreSegment(second)

		// Opposite signs and both non-trivial: mixed -> neutral.
		if sa != 0 && sb != 0 && (sa > 0) != (sb > 0) {
			return 0
		}
		return quantize(0.8*sa + 1.2*sb)
	}

	return quantize(scoreSegment(s))
}

// scoreSegment scores a text span without contrast handling. Returns the
// continuous pos-neg balance.
func scoreSegment(text string) float64 {
	s := normalizeSpace(strings.ToLower(text))

	// Explicit neutral phrases override everything.
	for _, p := range neuPhrases {
		if phraseHit(p, s) {
			return 0
		}
	}

	var pos, neg float64

	for _, p := range posPhrases {
		if phraseHit(p, s) {
			pos += 2.0
		}
	}
	for _, p := range negPhrases {
		if phraseHit(p, s) {
			neg += 2.5
		}
	}

	toks := sentimentTokens(s)

	// Token-level pass with a bounded negation window and intensifier
	// lookback.
	negationWindow := 0
	for i, t := range toks {
		if negationWords[t] {
			negationWindow = 2
			continue
		}

		negationPending := negationWindow > 0
		if negationWindow > 0 {
			negationWindow--
		}

		mult := 1.0
		for j := max(0, i-2); j < i; j++ {
			if intensifiers[toks[j]] {
				mult = 1.3
				break
			}
		}

		if neutralTokens[t] {
			continue
		}

		if posWords[t] {
			if negationPending {
				neg += 1.0 * mult // "not good"
			} else {
				pos += 1.0 * mult
			}
			continue
		}
		if negWords[t] {
			if negationPending {
				pos += 0.5 * mult // "not bad" -> weak positive
			} else {
				neg += 1.0 * mult
			}
		}
	}

	return pos - neg
}

func quantize(raw float64) int {
	// Wide dead zone to avoid over-predicting a polarity.
	if raw > -1.2 && raw < 1.2 {
		return 0
	}
	if raw <= -1 {
		return -3
	}
	return 3
}

// splitOnContrast splits on common contrast markers (but/men/however/dog).
// Markers are space-padded to avoid hits inside words.
func splitOnContrast(s string) (string, string, bool) {
	for _, m := range mixMarkers {
		if idx := strings.Index(s, m); idx >= 0 {
			return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+len(m):]), true
		}
	}
	return "", "", false
}

// phraseHit matches a phrase in s. Phrases containing hyphens or apostrophes
// match as plain substrings; everything else requires word boundaries on
// both sides (ASCII \b mishandles æøå, so boundaries are checked by rune).
func phraseHit(phrase, s string) bool {
	if strings.ContainsAny(phrase, "-'") {
		return strings.Contains(s, phrase)
	}
	for from := 0; from <= len(s)-len(phrase); {
		i := strings.Index(s[from:], phrase)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(phrase)

		before, _ := utf8.DecodeLastRuneInString(s[:start])
		after, _ := utf8.DecodeRuneInString(s[end:])
		if (start == 0 || !isWordRune(before)) && (end == len(s) || !isWordRune(after)) {
			return true
		}
		from = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func sentimentTokens(s string) []string {
	return sentimentWordRe.FindAllString(normalizeSpace(strings.ToLower(s)), -1)
}

// normalizeSpace collapses whitespace runs and maps unicode apostrophes to
// ASCII so lexicon entries match consistently.
func normalizeSpace(s string) string {
	s = strings.ReplaceAll(s, "’", "'")
	return strings.Join(strings.Fields(s), " ")
}

func normalizePhrases(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = normalizeSpace(strings.ToLower(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func normalizeWordSet(raw []string) map[string]bool {
	out := make(map[string]bool, len(raw))
	for _, w := range raw {
		out[strings.ReplaceAll(strings.ToLower(w), "’", "'")] = true
	}
	return out
}
