package contextual_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textsentry/textsentry/pkg/analysis"
	"github.com/textsentry/textsentry/pkg/analysis/contextual"
	"github.com/textsentry/textsentry/pkg/analysis/normalizer"
)

func TestAnalyzeLabelsTokens(t *testing.T) {
	a := contextual.New()

	res := a.Analyze("you are stupid")

	require.Len(t, res.SequenceLabels, 3)
	assert.Equal(t, analysis.LabelNeutral, res.SequenceLabels[0].Label)
	assert.Equal(t, analysis.LabelNeutral, res.SequenceLabels[1].Label)

	hit := res.SequenceLabels[2]
	assert.Equal(t, "stupid", hit.Token)
	assert.Equal(t, analysis.LabelOffensive, hit.Label)
	// Base 0.6 plus the targeting boost for the nearby pronoun.
	assert.InDelta(t, 0.8, hit.Confidence, 1e-9)
	assert.InDelta(t, hit.Confidence, hit.AttentionWeight, 1e-9)

	assert.InDelta(t, 0.8, res.OverallToxicity, 1e-9)
	assert.Contains(t, res.RiskFactors, contextual.RiskPersonalTargeting)
}

func TestAnalyzeThreateningWithEscalation(t *testing.T) {
	a := contextual.New()

	res := a.Analyze("i will kill you")

	assert.InDelta(t, 1.0, res.OverallToxicity, 1e-9)
	assert.Equal(t, []string{
		contextual.RiskPersonalTargeting,
		contextual.RiskThreatening,
		contextual.RiskEscalation,
	}, res.RiskFactors)
}

func TestAnalyzeTargetingWindow(t *testing.T) {
	a := contextual.New()

	// The pronoun sits more than two tokens away from the lexicon hit, so
	// no targeting boost applies.
	res := a.Analyze("you know that guy is stupid")

	for _, tok := range res.SequenceLabels {
		if tok.Label != analysis.LabelNeutral {
			assert.InDelta(t, 0.6, tok.Confidence, 1e-9)
		}
	}
	assert.NotContains(t, res.RiskFactors, contextual.RiskPersonalTargeting)
}

func TestAnalyzeMitigationLowersConfidence(t *testing.T) {
	a := contextual.New()

	res := a.Analyze("sorry but that was stupid")

	assert.InDelta(t, 0.45, res.OverallToxicity, 1e-9)
	assert.Empty(t, res.RiskFactors)
}

func TestAnalyzeHighConcentration(t *testing.T) {
	a := contextual.New()

	res := a.Analyze("stupid worthless trash")

	assert.Contains(t, res.RiskFactors, contextual.RiskHighConcentration)
}

func TestAnalyzeNeutralText(t *testing.T) {
	a := contextual.New()

	res := a.Analyze("have a nice day")

	assert.InDelta(t, 0.0, res.OverallToxicity, 1e-9)
	require.Len(t, res.SequenceLabels, 4)
	for _, tok := range res.SequenceLabels {
		assert.Equal(t, analysis.LabelNeutral, tok.Label)
		assert.InDelta(t, 0.0, tok.Confidence, 1e-9)
	}
	assert.Empty(t, res.RiskFactors)
	assert.NotNil(t, res.RiskFactors)
}

func TestAnalyzeNormalizedShoutBoost(t *testing.T) {
	a := contextual.New()
	n := normalizer.New()

	norm := n.Normalize("STUPID IDIOT go away")
	res := a.AnalyzeNormalized(norm)

	// Both hits were shouted in the original input.
	assert.InDelta(t, 0.7, res.SequenceLabels[0].Confidence, 1e-9)
	assert.InDelta(t, 0.7, res.SequenceLabels[1].Confidence, 1e-9)
	assert.InDelta(t, 0.7, res.OverallToxicity, 1e-9)
	assert.Equal(t, []string{
		contextual.RiskHighConcentration,
		contextual.RiskEscalation,
		contextual.RiskShouting,
	}, res.RiskFactors)
}

func TestAnalyzePunctuationTrimmedForLookup(t *testing.T) {
	a := contextual.New()

	res := a.Analyze("total garbage!")

	require.Len(t, res.SequenceLabels, 2)
	assert.Equal(t, "garbage!", res.SequenceLabels[1].Token)
	assert.Equal(t, analysis.LabelToxic, res.SequenceLabels[1].Label)
}

func TestHasLexiconTerm(t *testing.T) {
	assert.True(t, contextual.HasLexiconTerm("total garbage!"))
	assert.True(t, contextual.HasLexiconTerm("You are STUPID."))
	assert.False(t, contextual.HasLexiconTerm("perfectly fine sentence"))
	assert.False(t, contextual.HasLexiconTerm(""))
}
