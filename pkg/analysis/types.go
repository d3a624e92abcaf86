package analysis

// Label classifies a single token produced by the contextual analyzer.
type Label string

const (
	LabelNeutral        Label = "NEUTRAL"
	LabelToxic          Label = "TOXIC"
	LabelSarcastic      Label = "SARCASTIC"
	LabelAggressive     Label = "AGGRESSIVE"
	LabelOffensive      Label = "OFFENSIVE"
	LabelThreatening    Label = "THREATENING"
	LabelDiscriminatory Label = "DISCRIMINATORY"
)

// RuleKind identifies which normalization pass produced a substitution.
type RuleKind string

const (
	RuleEmoji       RuleKind = "emoji"
	RuleSlang       RuleKind = "slang"
	RuleMisspelling RuleKind = "misspelling"
	RuleRepeatChars RuleKind = "repeat_chars"
	RuleShout       RuleKind = "shout"
)

// Span locates a substitution in the original input string, in bytes.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Substitution records a single rewrite applied during normalization.
// Span offsets always refer to the original input, not intermediate text.
type Substitution struct {
	Span        Span     `json:"span"`
	Original    string   `json:"original"`
	Replacement string   `json:"replacement"`
	RuleKind    RuleKind `json:"rule_kind"`
}

// NormalizationResult is the output of the normalizer stage.
type NormalizationResult struct {
	Original      string         `json:"original"`
	Normalized    string         `json:"normalized"`
	Substitutions []Substitution `json:"substitutions"`
}

// Changed reports whether any rule rewrote the input.
func (r NormalizationResult) Changed() bool {
	return len(r.Substitutions) > 0
}

// SarcasmResult is the output of the sarcasm detector stage.
type SarcasmResult struct {
	IsSarcastic    bool               `json:"is_sarcastic"`
	Confidence     float64            `json:"confidence"`
	Indicators     []string           `json:"indicators"`
	ScoreBreakdown map[string]float64 `json:"score_breakdown"`
}

// TokenLabel is the per-token output of the contextual analyzer. One entry
// per whitespace-delimited token of the normalized text.
type TokenLabel struct {
	Token           string  `json:"token"`
	Label           Label   `json:"label"`
	Confidence      float64 `json:"confidence"`
	AttentionWeight float64 `json:"attention_weight"`
}

// ContextualResult is the output of the contextual analyzer stage.
type ContextualResult struct {
	OverallToxicity float64      `json:"overall_toxicity"`
	SequenceLabels  []TokenLabel `json:"sequence_labels"`
	RiskFactors     []string     `json:"risk_factors"`
}

// BaseScore is supplied by the external base classifier collaborator.
type BaseScore struct {
	IsToxic     bool               `json:"is_toxic"`
	Confidence  float64            `json:"confidence"`
	ToxicLabels []string           `json:"toxic_labels"`
	Scores      map[string]float64 `json:"scores"`
}

// FusedResult is the final verdict produced by the aggregator.
type FusedResult struct {
	IsToxic            bool               `json:"is_toxic"`
	Confidence         float64            `json:"confidence"`
	ToxicLabels        []string           `json:"toxic_labels"`
	Scores             map[string]float64 `json:"scores"`
	Enhanced           bool               `json:"enhanced"`
	NormalizedText     string             `json:"normalized_text"`
	SarcasmAnalysis    *SarcasmResult     `json:"sarcasm_analysis,omitempty"`
	ContextualAnalysis *ContextualResult  `json:"contextual_analysis,omitempty"`
	AnalysisSummary    string             `json:"analysis_summary"`
	FailureReason      string             `json:"failure_reason,omitempty"`
}
