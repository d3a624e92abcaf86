package contextual

import (
	"strings"
	"unicode"

	"github.com/textsentry/textsentry/pkg/analysis"
)

// Risk factor strings reported by the analyzer. Collected in insertion
// order, duplicates removed.
const (
	RiskPersonalTargeting = "Personal targeting detected"
	RiskThreatening       = "Contains threatening language"
	RiskHighConcentration = "High concentration of toxic terms"
	RiskEscalation        = "Escalating language patterns"
	RiskShouting          = "Excessive capitalization"
)

const (
	// Tokens this far on either side of a lexicon hit are inspected for
	// personal-targeting pronouns.
	contextWindow = 2

	targetingBoost    = 0.2
	mitigationPenalty = 0.15
	shoutBoost        = 0.1

	// Non-neutral token ratio above which the concentration risk factor
	// is reported.
	concentrationRatio = 0.3
)

// Analyzer performs per-token sequence labeling against the fixed lexicon.
// Stateless and safe for concurrent use.
type Analyzer struct{}

func New() *Analyzer {
	return &Analyzer{}
}

// Analyze is a pure function of the input text. Tokens are the whitespace
// split of the input; each gets a label and confidence, and the attention
// weight mirrors the token confidence as an importance proxy.
//
// OverallToxicity is the maximum confidence over non-NEUTRAL tokens, 0 when
// every token is NEUTRAL.
func (a *Analyzer) Analyze(text string) analysis.ContextualResult {
	return a.analyze(text, nil)
}

// AnalyzeNormalized behaves like Analyze but folds the normalizer's shout
// substitutions back in: shouted lexicon hits gain confidence and two or
// more shouts report the capitalization risk factor.
func (a *Analyzer) AnalyzeNormalized(norm analysis.NormalizationResult) analysis.ContextualResult {
	shouted := make(map[string]bool)
	shouts := 0
	for _, sub := range norm.Substitutions {
		if sub.RuleKind == analysis.RuleShout {
			shouted[sub.Replacement] = true
			shouts++
		}
	}
	res := a.analyze(norm.Normalized, shouted)
	if shouts >= 2 {
		res.RiskFactors = appendUnique(res.RiskFactors, RiskShouting)
	}
	return res
}

func (a *Analyzer) analyze(text string, shouted map[string]bool) analysis.ContextualResult {
	fields := strings.Fields(text)
	cores := make([]string, len(fields))
	for i, f := range fields {
		cores[i] = strings.ToLower(trimPunct(f))
	}

	mitigated := hasMitigation(cores)
	escalated := hasEscalation(cores)

	labels := make([]analysis.TokenLabel, 0, len(fields))
	var riskFactors []string
	overall := 0.0
	nonNeutral := 0

	for i, field := range fields {
		core := cores[i]
		label := analysis.LabelNeutral
		confidence := 0.0

		if entry, ok := lexicon[core]; ok {
			label = entry.label
			confidence = entry.confidence

			if targeted(cores, i) {
				confidence += targetingBoost
				riskFactors = appendUnique(riskFactors, RiskPersonalTargeting)
			}
			if shouted[core] {
				confidence += shoutBoost
			}
			if mitigated {
				confidence -= mitigationPenalty
			}
			confidence = clamp01(confidence)
		}

		if label != analysis.LabelNeutral {
			nonNeutral++
			if confidence > overall {
				overall = confidence
			}
			if label == analysis.LabelThreatening {
				riskFactors = appendUnique(riskFactors, RiskThreatening)
			}
		}

		labels = append(labels, analysis.TokenLabel{
			Token:           field,
			Label:           label,
			Confidence:      confidence,
			AttentionWeight: confidence,
		})
	}

	if len(fields) > 0 && float64(nonNeutral)/float64(len(fields)) > concentrationRatio {
		riskFactors = appendUnique(riskFactors, RiskHighConcentration)
	}
	if escalated {
		riskFactors = appendUnique(riskFactors, RiskEscalation)
	}

	if riskFactors == nil {
		riskFactors = []string{}
	}

	return analysis.ContextualResult{
		OverallToxicity: overall,
		SequenceLabels:  labels,
		RiskFactors:     riskFactors,
	}
}

// targeted reports whether a personal pronoun appears within the context
// window around position i.
func targeted(cores []string, i int) bool {
	lo := i - contextWindow
	if lo < 0 {
		lo = 0
	}
	hi := i + contextWindow
	if hi > len(cores)-1 {
		hi = len(cores) - 1
	}
	for j := lo; j <= hi; j++ {
		if j == i {
			continue
		}
		if targetingPronouns[cores[j]] {
			return true
		}
	}
	return false
}

// hasEscalation scans for the fixed escalation bigrams ("or else",
// "shut up" and friends).
func hasEscalation(cores []string) bool {
	for i := 0; i+1 < len(cores); i++ {
		if escalationBigrams[cores[i]+" "+cores[i+1]] {
			return true
		}
	}
	return false
}

// hasMitigation reports apology/humor qualifiers anywhere in the text.
func hasMitigation(cores []string) bool {
	for i, c := range cores {
		if mitigationWords[c] {
			return true
		}
		if i+1 < len(cores) && mitigationBigrams[c+" "+cores[i+1]] {
			return true
		}
	}
	return false
}

// HasLexiconTerm reports whether any whitespace token of text, trimmed of
// edge punctuation, is a lexicon entry. The aggregator uses it to decide
// whether normalization surfaced a toxic term that the raw text hid.
func HasLexiconTerm(text string) bool {
	for _, f := range strings.Fields(text) {
		if _, ok := lexicon[strings.ToLower(trimPunct(f))]; ok {
			return true
		}
	}
	return false
}

func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func appendUnique(factors []string, factor string) []string {
	for _, f := range factors {
		if f == factor {
			return factors
		}
	}
	return append(factors, factor)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
