package normalizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textsentry/textsentry/pkg/analysis"
	"github.com/textsentry/textsentry/pkg/analysis/normalizer"
)

func TestNormalizeSlangAndRepeats(t *testing.T) {
	n := normalizer.New()

	res := n.Normalize("lol ur sooooo stupid!!!")

	assert.Equal(t, "lol ur sooooo stupid!!!", res.Original)
	assert.Equal(t, "laugh out loud your soo stupid!!", res.Normalized)
	assert.True(t, res.Changed())

	require.Len(t, res.Substitutions, 4)
	assert.Equal(t, analysis.Substitution{
		Span:        analysis.Span{Start: 0, End: 3},
		Original:    "lol",
		Replacement: "laugh out loud",
		RuleKind:    analysis.RuleSlang,
	}, res.Substitutions[0])
	assert.Equal(t, analysis.Substitution{
		Span:        analysis.Span{Start: 4, End: 6},
		Original:    "ur",
		Replacement: "your",
		RuleKind:    analysis.RuleSlang,
	}, res.Substitutions[1])
	assert.Equal(t, analysis.Substitution{
		Span:        analysis.Span{Start: 8, End: 13},
		Original:    "ooooo",
		Replacement: "oo",
		RuleKind:    analysis.RuleRepeatChars,
	}, res.Substitutions[2])
	assert.Equal(t, analysis.Substitution{
		Span:        analysis.Span{Start: 20, End: 23},
		Original:    "!!!",
		Replacement: "!!",
		RuleKind:    analysis.RuleRepeatChars,
	}, res.Substitutions[3])
}

func TestNormalizeEmoji(t *testing.T) {
	n := normalizer.New()

	t.Run("known emoji becomes text", func(t *testing.T) {
		res := n.Normalize("u r 😀")

		assert.Equal(t, "you are happy face", res.Normalized)
		require.Len(t, res.Substitutions, 3)
		assert.Equal(t, analysis.RuleSlang, res.Substitutions[0].RuleKind)
		assert.Equal(t, analysis.RuleSlang, res.Substitutions[1].RuleKind)
		assert.Equal(t, analysis.Substitution{
			Span:        analysis.Span{Start: 4, End: 8},
			Original:    "😀",
			Replacement: "happy face",
			RuleKind:    analysis.RuleEmoji,
		}, res.Substitutions[2])
	})

	t.Run("unknown emoji passes through", func(t *testing.T) {
		res := n.Normalize("🦄 wow")

		assert.Equal(t, "🦄 wow", res.Normalized)
		assert.False(t, res.Changed())
	})
}

func TestNormalizeShoutFolding(t *testing.T) {
	n := normalizer.New()

	res := n.Normalize("STOP SHOUTING now")

	assert.Equal(t, "stop shouting now", res.Normalized)
	require.Len(t, res.Substitutions, 2)
	for _, sub := range res.Substitutions {
		assert.Equal(t, analysis.RuleShout, sub.RuleKind)
	}
	assert.Equal(t, analysis.Span{Start: 0, End: 4}, res.Substitutions[0].Span)
	assert.Equal(t, analysis.Span{Start: 5, End: 13}, res.Substitutions[1].Span)
}

func TestNormalizeShortCapsKept(t *testing.T) {
	n := normalizer.New()

	// Words under four letters are common acronyms, not shouting.
	res := n.Normalize("the USA won")

	assert.Equal(t, "the USA won", res.Normalized)
	assert.False(t, res.Changed())
}

func TestNormalizeMisspellings(t *testing.T) {
	n := normalizer.New()

	res := n.Normalize("i dont recieve it")

	assert.Equal(t, "i do not receive it", res.Normalized)
	require.Len(t, res.Substitutions, 2)
	assert.Equal(t, analysis.RuleMisspelling, res.Substitutions[0].RuleKind)
	assert.Equal(t, "dont", res.Substitutions[0].Original)
	assert.Equal(t, "do not", res.Substitutions[0].Replacement)
}

func TestNormalizePhraseBeforeSingleWord(t *testing.T) {
	n := normalizer.New()

	t.Run("two word key wins", func(t *testing.T) {
		res := n.Normalize("no cap fr")

		assert.Equal(t, "no lie for real", res.Normalized)
		require.Len(t, res.Substitutions, 2)
		assert.Equal(t, "no cap", res.Substitutions[0].Original)
		assert.Equal(t, "no lie", res.Substitutions[0].Replacement)
		assert.Equal(t, analysis.Span{Start: 0, End: 6}, res.Substitutions[0].Span)
	})

	t.Run("punctuation breaks the phrase", func(t *testing.T) {
		res := n.Normalize("no, cap")

		assert.Equal(t, "no, lie", res.Normalized)
		require.Len(t, res.Substitutions, 1)
		assert.Equal(t, "cap", res.Substitutions[0].Original)
	})
}

func TestNormalizeCollapsesPunctuationRuns(t *testing.T) {
	n := normalizer.New()

	t.Run("exclamation and question runs", func(t *testing.T) {
		res := n.Normalize("what!!! why???")

		assert.Equal(t, "what!! why??", res.Normalized)
		require.Len(t, res.Substitutions, 2)
		for _, sub := range res.Substitutions {
			assert.Equal(t, analysis.RuleRepeatChars, sub.RuleKind)
		}
	})

	t.Run("dots", func(t *testing.T) {
		res := n.Normalize("....")

		assert.Equal(t, "..", res.Normalized)
		require.Len(t, res.Substitutions, 1)
	})

	t.Run("pairs untouched", func(t *testing.T) {
		res := n.Normalize("so cool!!")

		assert.Equal(t, "so cool!!", res.Normalized)
		assert.False(t, res.Changed())
	})
}

func TestNormalizeRepeatThreshold(t *testing.T) {
	n := normalizer.New()

	res := n.Normalize("soo")
	assert.Equal(t, "soo", res.Normalized)

	res = n.Normalize("sooo")
	assert.Equal(t, "soo", res.Normalized)
	require.Len(t, res.Substitutions, 1)
	assert.Equal(t, analysis.RuleRepeatChars, res.Substitutions[0].RuleKind)
}

func TestNormalizeWhitespaceCleanup(t *testing.T) {
	n := normalizer.New()

	res := n.Normalize("  hello   there\t ")

	assert.Equal(t, "hello there", res.Normalized)
	// Whitespace cleanup is cosmetic and records no substitutions.
	assert.False(t, res.Changed())
}

func TestNormalizeIdempotent(t *testing.T) {
	n := normalizer.New()

	inputs := []string{
		"lol ur sooooo stupid!!!",
		"u r 😀",
		"STOP SHOUTING now!!!",
		"what!!! why???",
		"no cap fr",
		"i dont recieve it",
		"plain text stays plain",
	}
	for _, input := range inputs {
		first := n.Normalize(input)
		second := n.Normalize(first.Normalized)
		assert.Equal(t, first.Normalized, second.Normalized, "input %q", input)
		assert.False(t, second.Changed(), "input %q", input)
	}
}

func TestNormalizeSubstitutionsSortedAndAnchored(t *testing.T) {
	n := normalizer.New()

	original := "OMG ur cat is sooo cute 😍"
	res := n.Normalize(original)

	prev := -1
	for _, sub := range res.Substitutions {
		assert.GreaterOrEqual(t, sub.Span.Start, prev)
		assert.Less(t, sub.Span.Start, sub.Span.End)
		assert.LessOrEqual(t, sub.Span.End, len(original))
		assert.Equal(t, original[sub.Span.Start:sub.Span.End], sub.Original)
		prev = sub.Span.Start
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := normalizer.New()

	res := n.Normalize("")

	assert.Equal(t, "", res.Normalized)
	assert.False(t, res.Changed())
}
