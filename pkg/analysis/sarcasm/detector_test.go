package sarcasm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textsentry/textsentry/pkg/analysis/normalizer"
	"github.com/textsentry/textsentry/pkg/analysis/sarcasm"
)

func TestAnalyzePhrases(t *testing.T) {
	d := sarcasm.New()

	res := d.Analyze("great job, amazing work")

	assert.InDelta(t, 0.4, res.Confidence, 1e-9)
	assert.True(t, res.IsSarcastic)
	assert.InDelta(t, 0.4, res.ScoreBreakdown[sarcasm.CategoryPhrases], 1e-9)
	assert.Contains(t, res.Indicators, sarcasm.CategoryPhrases)
	assert.Contains(t, res.Indicators, "great job")
	assert.Contains(t, res.Indicators, "amazing")
}

func TestAnalyzePunctuation(t *testing.T) {
	d := sarcasm.New()

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"run of three", "really???", 0.1},
		{"mixed pair", "what?! ok", 0.1},
		{"two runs hit the cap", "wow!!! really??? no way!?!", 0.2},
		{"short runs ignored", "really?? ok!", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := d.Analyze(tt.text)
			assert.InDelta(t, tt.want, res.ScoreBreakdown[sarcasm.CategoryPunctuation], 1e-9)
		})
	}
}

func TestAnalyzeCapitalization(t *testing.T) {
	d := sarcasm.New()

	res := d.Analyze("THIS IS fine")
	assert.InDelta(t, 0.2, res.ScoreBreakdown[sarcasm.CategoryCapitalization], 1e-9)

	res = d.Analyze("ONE lowercase TWO")
	assert.InDelta(t, 0.0, res.ScoreBreakdown[sarcasm.CategoryCapitalization], 1e-9)
}

func TestAnalyzeContradiction(t *testing.T) {
	d := sarcasm.New()

	t.Run("positive then negative in window", func(t *testing.T) {
		res := d.Analyze("i love this terrible weather")

		assert.InDelta(t, 0.3, res.ScoreBreakdown[sarcasm.CategoryContradiction], 1e-9)
		assert.Contains(t, res.Indicators, sarcasm.CategoryContradiction)
		assert.Contains(t, res.Indicators, "positive_negative: love vs terrible")
	})

	t.Run("negative only does not fire", func(t *testing.T) {
		res := d.Analyze("this is terrible weather")
		assert.InDelta(t, 0.0, res.ScoreBreakdown[sarcasm.CategoryContradiction], 1e-9)
	})

	t.Run("irony pair", func(t *testing.T) {
		res := d.Analyze("thanks for nothing")

		assert.InDelta(t, 0.3, res.ScoreBreakdown[sarcasm.CategoryContradiction], 1e-9)
		assert.Contains(t, res.Indicators, "sarcastic_thanks")
		// The phrase table matches the same text, so the total crosses
		// the sarcasm threshold.
		assert.InDelta(t, 0.5, res.Confidence, 1e-9)
		assert.True(t, res.IsSarcastic)
	})
}

func TestAnalyzeExaggerationCap(t *testing.T) {
	d := sarcasm.New()

	res := d.Analyze("literally totally absolutely normal")

	assert.InDelta(t, 0.1, res.ScoreBreakdown[sarcasm.CategoryExaggeration], 1e-9)
	assert.False(t, res.IsSarcastic)
}

func TestAnalyzeNeutralText(t *testing.T) {
	d := sarcasm.New()

	res := d.Analyze("the meeting is at noon")

	assert.False(t, res.IsSarcastic)
	assert.InDelta(t, 0.0, res.Confidence, 1e-9)
	assert.Empty(t, res.Indicators)
	assert.NotNil(t, res.Indicators)
}

func TestAnalyzeConfidenceClamped(t *testing.T) {
	d := sarcasm.New()

	// Every category fires at its cap; the raw sum exceeds 1.
	res := d.Analyze("GREAT JOB AMAZING literally totally i love this terrible mess!!! really???")

	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
	assert.True(t, res.IsSarcastic)
}

func TestAnalyzeDeterministic(t *testing.T) {
	d := sarcasm.New()

	first := d.Analyze("oh really, well done!!!")
	second := d.Analyze("oh really, well done!!!")

	assert.Equal(t, first, second)
}

func TestAnalyzeNormalizedRestoresShoutSignal(t *testing.T) {
	d := sarcasm.New()
	n := normalizer.New()

	norm := n.Normalize("STOP SHOUTING now!!!")
	res := d.AnalyzeNormalized(norm)

	// Case folding removed the caps, but the recorded shout substitutions
	// still carry the signal.
	assert.InDelta(t, 0.2, res.ScoreBreakdown[sarcasm.CategoryCapitalization], 1e-9)
	assert.InDelta(t, 0.1, res.ScoreBreakdown[sarcasm.CategoryPunctuation], 1e-9)
	assert.InDelta(t, 0.3, res.Confidence, 1e-9)

	plain := d.Analyze(norm.Normalized)
	assert.InDelta(t, 0.0, plain.ScoreBreakdown[sarcasm.CategoryCapitalization], 1e-9)
}

func TestAnalyzeNormalizedScoresPunctuationFromOriginal(t *testing.T) {
	d := sarcasm.New()
	n := normalizer.New()

	norm := n.Normalize("yeah right!!!")
	require.Equal(t, "yeah right!!", norm.Normalized)

	// The collapse shortened the run below the scoring threshold, but the
	// original input still carries it.
	res := d.AnalyzeNormalized(norm)
	assert.InDelta(t, 0.1, res.ScoreBreakdown[sarcasm.CategoryPunctuation], 1e-9)
	assert.InDelta(t, 0.3, res.Confidence, 1e-9)

	plain := d.Analyze(norm.Normalized)
	assert.InDelta(t, 0.0, plain.ScoreBreakdown[sarcasm.CategoryPunctuation], 1e-9)
}

func TestAnalyzeAddingIndicatorNeverDecreasesConfidence(t *testing.T) {
	d := sarcasm.New()

	bases := []string{
		"the meeting is at noon",
		"i love this terrible weather",
		"really???",
		"THIS IS fine",
		"great job, amazing work",
	}
	for _, base := range bases {
		before := d.Analyze(base).Confidence
		after := d.Analyze(base + " yeah right").Confidence
		assert.GreaterOrEqual(t, after, before, "base %q", base)
	}
}

func TestAnalyzeNormalizedSeparatedShouts(t *testing.T) {
	d := sarcasm.New()
	n := normalizer.New()

	// Shouted words with regular words between them are emphasis, not a
	// shouted sequence.
	norm := n.Normalize("STOP right there MISTER")
	res := d.AnalyzeNormalized(norm)

	assert.InDelta(t, 0.0, res.ScoreBreakdown[sarcasm.CategoryCapitalization], 1e-9)
}
