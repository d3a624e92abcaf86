package pipeline

import (
	"fmt"
	"strings"

	"github.com/textsentry/textsentry/pkg/analysis"
	"github.com/textsentry/textsentry/pkg/analysis/contextual"
)

// fusionInput carries the per-stage outputs into the aggregator. A nil
// pointer means the stage was absent (failed, timed out or unconfigured).
type fusionInput struct {
	original   string
	threshold  float64
	norm       *analysis.NormalizationResult
	sarcasm    *analysis.SarcasmResult
	contextual *analysis.ContextualResult
	base       *analysis.BaseScore
}

// fuse combines the present components under the fixed weights. Absent
// components surrender their weight proportionally to the rest, so the
// effective weights of present components always sum to 1.
func (p *Pipeline) fuse(in fusionInput) analysis.FusedResult {
	w := p.cfg.Weights

	type component struct {
		weight float64
		value  float64
	}
	var present []component
	if in.base != nil {
		present = append(present, component{w.Base, in.base.Confidence})
	}
	if in.contextual != nil {
		present = append(present, component{w.Contextual, in.contextual.OverallToxicity})
	}
	if in.sarcasm != nil {
		present = append(present, component{w.Sarcasm, in.sarcasm.Confidence})
	}
	if in.norm != nil {
		present = append(present, component{w.Normalization, normalizationSignal(*in.norm)})
	}

	result := analysis.FusedResult{
		NormalizedText:     in.original,
		Enhanced:           in.sarcasm != nil || in.contextual != nil,
		SarcasmAnalysis:    in.sarcasm,
		ContextualAnalysis: in.contextual,
	}
	if in.norm != nil {
		result.NormalizedText = in.norm.Normalized
	}

	if len(present) == 0 {
		result.ToxicLabels = []string{}
		result.Scores = map[string]float64{}
		result.FailureReason = ErrAllStagesFailed.Error()
		result.AnalysisSummary = buildSummary(false, 0, nil, false)
		return result
	}

	weightSum := 0.0
	for _, c := range present {
		weightSum += c.weight
	}
	confidence := 0.0
	for _, c := range present {
		confidence += (c.weight / weightSum) * c.value
	}
	confidence = clamp01(confidence)

	result.Confidence = confidence
	result.IsToxic = confidence >= in.threshold
	result.ToxicLabels = collectLabels(in)
	result.Scores = collectScores(in, confidence)
	result.AnalysisSummary = buildSummary(result.IsToxic, confidence, result.ToxicLabels, result.Enhanced)
	return result
}

// collectLabels unions the base classifier labels, non-NEUTRAL contextual
// labels and the sarcasm label, ordered by first appearance.
func collectLabels(in fusionInput) []string {
	labels := []string{}
	seen := make(map[string]bool)
	add := func(label string) {
		if label == "" || seen[label] {
			return
		}
		seen[label] = true
		labels = append(labels, label)
	}

	if in.base != nil {
		for _, label := range in.base.ToxicLabels {
			add(label)
		}
	}
	if in.contextual != nil {
		for _, tok := range in.contextual.SequenceLabels {
			if tok.Label != analysis.LabelNeutral {
				add(string(tok.Label))
			}
		}
	}
	if in.sarcasm != nil && in.sarcasm.IsSarcastic {
		add(string(analysis.LabelSarcastic))
	}
	return labels
}

func collectScores(in fusionInput, combined float64) map[string]float64 {
	scores := make(map[string]float64)
	if in.base != nil {
		for label, score := range in.base.Scores {
			scores[label] = score
		}
	}
	if in.contextual != nil {
		scores["contextual_toxicity"] = in.contextual.OverallToxicity
	}
	if in.sarcasm != nil {
		scores["sarcasm_confidence"] = in.sarcasm.Confidence
	}
	if in.norm != nil {
		scores["normalization_signal"] = normalizationSignal(*in.norm)
	}
	scores["final_combined"] = combined
	return scores
}

// normalizationSignal grades how much the rewrite mattered: 1 when
// normalization surfaced a lexicon term the raw text hid (slang such as
// "pos" expanding to a known insult), 0.2 when the text changed at all, 0
// otherwise.
func normalizationSignal(norm analysis.NormalizationResult) float64 {
	if !norm.Changed() {
		return 0
	}
	if contextual.HasLexiconTerm(norm.Normalized) && !contextual.HasLexiconTerm(norm.Original) {
		return 1
	}
	return 0.2
}

// buildSummary renders the verdict as a short human-readable line. Pure
// function of its arguments.
func buildSummary(toxic bool, confidence float64, labels []string, enhanced bool) string {
	pct := int(confidence*100 + 0.5)
	var b strings.Builder
	if toxic {
		b.WriteString(fmt.Sprintf("Toxic (%d%% confidence, %s risk)", pct, riskLevel(confidence)))
		if len(labels) > 0 {
			b.WriteString(": ")
			b.WriteString(strings.Join(labels, ", "))
		}
	} else {
		b.WriteString(fmt.Sprintf("Not toxic (%d%% confidence)", pct))
	}
	if !enhanced {
		b.WriteString(" [degraded]")
	}
	return b.String()
}

func riskLevel(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "high"
	case confidence >= 0.6:
		return "medium"
	case confidence >= 0.4:
		return "low"
	default:
		return "minimal"
	}
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
