package contextual

import "github.com/textsentry/textsentry/pkg/analysis"

type lexiconEntry struct {
	label      analysis.Label
	confidence float64
}

// lexicon maps lowercase tokens to their label and base confidence. Loaded
// once at init and never mutated.
var lexicon = map[string]lexiconEntry{
	// Threats
	"kill":    {analysis.LabelThreatening, 0.8},
	"murder":  {analysis.LabelThreatening, 0.9},
	"die":     {analysis.LabelThreatening, 0.7},
	"hurt":    {analysis.LabelThreatening, 0.5},
	"destroy": {analysis.LabelThreatening, 0.5},

	// General toxicity
	"hate":       {analysis.LabelToxic, 0.6},
	"disgusting": {analysis.LabelToxic, 0.6},
	"trash":      {analysis.LabelToxic, 0.5},
	"garbage":    {analysis.LabelToxic, 0.5},
	"scum":       {analysis.LabelToxic, 0.7},

	// Personal insults
	"stupid":    {analysis.LabelOffensive, 0.6},
	"idiot":     {analysis.LabelOffensive, 0.6},
	"idiotic":   {analysis.LabelOffensive, 0.6},
	"moron":     {analysis.LabelOffensive, 0.6},
	"moronic":   {analysis.LabelOffensive, 0.6},
	"dumb":      {analysis.LabelOffensive, 0.5},
	"loser":     {analysis.LabelOffensive, 0.5},
	"pathetic":  {analysis.LabelOffensive, 0.5},
	"worthless": {analysis.LabelOffensive, 0.6},
	"useless":   {analysis.LabelOffensive, 0.5},
	"ugly":      {analysis.LabelOffensive, 0.4},
	"fat":       {analysis.LabelOffensive, 0.3},
	"jerk":      {analysis.LabelOffensive, 0.4},
	"fool":      {analysis.LabelOffensive, 0.4},

	// Aggression
	"shut":    {analysis.LabelAggressive, 0.3},
	"fuck":    {analysis.LabelAggressive, 0.6},
	"fucking": {analysis.LabelAggressive, 0.5},
	"shit":    {analysis.LabelAggressive, 0.5},
	"bitch":   {analysis.LabelAggressive, 0.7},
	"bastard": {analysis.LabelAggressive, 0.6},
	"asshole": {analysis.LabelAggressive, 0.7},
	"damn":    {analysis.LabelAggressive, 0.3},

	// Discrimination markers
	"racist":   {analysis.LabelDiscriminatory, 0.7},
	"sexist":   {analysis.LabelDiscriminatory, 0.7},
	"bigot":    {analysis.LabelDiscriminatory, 0.7},
	"retard":   {analysis.LabelDiscriminatory, 0.8},
	"retarded": {analysis.LabelDiscriminatory, 0.8},
}

// targetingPronouns raise confidence of nearby lexicon hits and trigger the
// personal-targeting risk factor.
var targetingPronouns = map[string]bool{
	"you":      true,
	"your":     true,
	"yours":    true,
	"yourself": true,
	"u":        true,
	"ur":       true,
}

// escalationBigrams indicate threats escalating toward action.
var escalationBigrams = map[string]bool{
	"or else":    true,
	"shut up":    true,
	"get out":    true,
	"go away":    true,
	"you better": true,
	"i will":     true,
	"gonna make": true,
	"watch out":  true,
}

// mitigation qualifiers lower lexicon-hit confidence.
var mitigationWords = map[string]bool{
	"sorry":     true,
	"apologize": true,
	"jk":        true,
	"joking":    true,
	"kidding":   true,
}

var mitigationBigrams = map[string]bool{
	"just kidding": true,
	"no offense":   true,
	"my bad":       true,
	"i think":      true,
}
