package sarcasm

import (
	"strings"
	"unicode"

	"github.com/textsentry/textsentry/pkg/analysis"
)

// Category names used in indicators and the score breakdown.
const (
	CategoryPhrases        = "sarcastic_phrases"
	CategoryPunctuation    = "punctuation"
	CategoryCapitalization = "capitalization"
	CategoryContradiction  = "contradiction"
	CategoryExaggeration   = "exaggeration"
)

const (
	phraseWeight        = 0.2
	phraseCap           = 0.4
	punctuationWeight   = 0.1
	punctuationCap      = 0.2
	capitalizationScore = 0.2
	contradictionScore  = 0.3
	exaggerationWeight  = 0.05
	exaggerationCap     = 0.1

	// Confidence at or above this threshold flags the text as sarcastic.
	sarcasmThreshold = 0.4

	// Token distance within which a positive word followed by a negative
	// word counts as a contradiction.
	contradictionWindow = 5
)

// Detector scores text for sarcasm and irony from linguistic patterns. It
// holds no mutable state and is safe for concurrent use.
type Detector struct{}

func New() *Detector {
	return &Detector{}
}

// Analyze is a pure function of the input text. Each signal category
// contributes an independently capped weight; the sum is clamped to [0,1].
func (d *Detector) Analyze(text string) analysis.SarcasmResult {
	return d.analyze(text, text, 0)
}

// AnalyzeNormalized scores normalized text while restoring the signals
// normalization removed: adjacent shout substitutions count as an all-caps
// word sequence, and punctuation is scored against the original input since
// repeated-character collapse shortens "!!!" runs.
func (d *Detector) AnalyzeNormalized(norm analysis.NormalizationResult) analysis.SarcasmResult {
	return d.analyze(norm.Normalized, norm.Original, adjacentShouts(norm))
}

func (d *Detector) analyze(text, punctText string, shoutRun int) analysis.SarcasmResult {
	lower := strings.ToLower(text)
	breakdown := make(map[string]float64)
	var indicators []string

	phraseScore, matched := scorePhrases(lower)
	breakdown[CategoryPhrases] = phraseScore
	if phraseScore > 0 {
		indicators = append(indicators, CategoryPhrases)
		indicators = append(indicators, matched...)
	}

	punctScore := scorePunctuation(punctText)
	breakdown[CategoryPunctuation] = punctScore
	if punctScore > 0 {
		indicators = append(indicators, CategoryPunctuation)
	}

	capsScore := scoreCapitalization(text, shoutRun)
	breakdown[CategoryCapitalization] = capsScore
	if capsScore > 0 {
		indicators = append(indicators, CategoryCapitalization)
	}

	contraScore, contraTags := scoreContradiction(lower)
	breakdown[CategoryContradiction] = contraScore
	if contraScore > 0 {
		indicators = append(indicators, CategoryContradiction)
		indicators = append(indicators, contraTags...)
	}

	exagScore, exagMatched := scoreExaggeration(lower)
	breakdown[CategoryExaggeration] = exagScore
	if exagScore > 0 {
		indicators = append(indicators, CategoryExaggeration)
		indicators = append(indicators, exagMatched...)
	}

	confidence := phraseScore + punctScore + capsScore + contraScore + exagScore
	if confidence > 1.0 {
		confidence = 1.0
	}

	if indicators == nil {
		indicators = []string{}
	}

	return analysis.SarcasmResult{
		IsSarcastic:    confidence >= sarcasmThreshold,
		Confidence:     confidence,
		Indicators:     indicators,
		ScoreBreakdown: breakdown,
	}
}

func scorePhrases(lower string) (float64, []string) {
	score := 0.0
	var matched []string
	for _, phrase := range sarcasticPhrases {
		if containsWord(lower, phrase) {
			score += phraseWeight
			matched = append(matched, phrase)
		}
	}
	if score > phraseCap {
		score = phraseCap
	}
	return score, matched
}

// scorePunctuation counts runs of '!' or '?' of length >= 3 and mixed "?!"
// or "!?" sequences.
func scorePunctuation(text string) float64 {
	occurrences := 0
	runLen := 0
	mixed := false
	var prev byte
	flush := func() {
		if runLen >= 3 || (mixed && runLen >= 2) {
			occurrences++
		}
		runLen = 0
		mixed = false
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '!' || c == '?' {
			if runLen > 0 && c != prev {
				mixed = true
			}
			runLen++
			prev = c
			continue
		}
		flush()
	}
	flush()

	score := float64(occurrences) * punctuationWeight
	if score > punctuationCap {
		score = punctuationCap
	}
	return score
}

// scoreCapitalization fires on two or more consecutive all-caps words, or
// on an equivalent run of shout substitutions recorded by the normalizer.
func scoreCapitalization(text string, shoutRun int) float64 {
	if shoutRun >= 2 {
		return capitalizationScore
	}
	run := 0
	for _, word := range strings.Fields(text) {
		if isAllCapsWord(word) {
			run++
			if run >= 2 {
				return capitalizationScore
			}
			continue
		}
		run = 0
	}
	return 0
}

func isAllCapsWord(word string) bool {
	letters := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 2
}

// scoreContradiction looks for a positive-sentiment word followed by a
// negative-sentiment word within the token window, and for the fixed irony
// phrase pairs.
func scoreContradiction(lower string) (float64, []string) {
	words := fieldCores(lower)
	var tags []string
	score := 0.0

	for i, w := range words {
		if !positiveWords[w] {
			continue
		}
		limit := i + contradictionWindow
		if limit > len(words)-1 {
			limit = len(words) - 1
		}
		for j := i + 1; j <= limit; j++ {
			if negativeWords[words[j]] {
				score = contradictionScore
				tags = append(tags, "positive_negative: "+w+" vs "+words[j])
				break
			}
		}
		if score > 0 {
			break
		}
	}

	for _, pair := range ironyPairs {
		if strings.Contains(lower, pair.first) && strings.Contains(lower, pair.second) {
			score = contradictionScore
			tags = append(tags, pair.tag)
			break
		}
	}

	return score, tags
}

func scoreExaggeration(lower string) (float64, []string) {
	score := 0.0
	var matched []string
	for _, marker := range exaggerationMarkers {
		if containsWord(lower, marker) {
			score += exaggerationWeight
			matched = append(matched, marker)
		}
	}
	if score > exaggerationCap {
		score = exaggerationCap
	}
	return score, matched
}

// containsWord reports whether phrase occurs in text on word boundaries.
func containsWord(text, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		idx = start + 1
	}
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r := rune(text[i-1])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r := rune(text[i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// fieldCores splits on whitespace and trims edge punctuation.
func fieldCores(text string) []string {
	fields := strings.Fields(text)
	cores := make([]string, 0, len(fields))
	for _, f := range fields {
		cores = append(cores, strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}))
	}
	return cores
}

// adjacentShouts returns the longest run of shout substitutions separated
// only by whitespace in the original input.
func adjacentShouts(norm analysis.NormalizationResult) int {
	best, run := 0, 0
	prevEnd := -1
	for _, sub := range norm.Substitutions {
		if sub.RuleKind != analysis.RuleShout {
			continue
		}
		if prevEnd >= 0 && onlyWhitespace(norm.Original, prevEnd, sub.Span.Start) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
		prevEnd = sub.Span.End
	}
	return best
}

func onlyWhitespace(text string, start, end int) bool {
	if start < 0 || end > len(text) || start > end {
		return false
	}
	for _, r := range text[start:end] {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
