package sarcasm

// sarcasticPhrases are matched as whole words/phrases against the
// lowercased input.
var sarcasticPhrases = []string{
	"oh really",
	"how wonderful",
	"great job",
	"well done",
	"nice going",
	"good for you",
	"yeah right",
	"sure thing",
	"whatever you say",
	"how original",
	"real original",
	"so original",
	"how clever",
	"real clever",
	"so clever",
	"real funny",
	"so funny",
	"very funny",
	"brilliant",
	"fantastic",
	"amazing",
	"marvelous",
	"just what i needed",
	"exactly what i wanted",
	"thanks a lot",
	"thanks for nothing",
}

// ironyPairs capture phrase-level contradictions lifted from classic
// sarcastic constructions.
type ironyPair struct {
	first, second, tag string
}

var ironyPairs = []ironyPair{
	{"love", "hate", "love_hate"},
	{"love", "awful", "love_awful"},
	{"enjoy", "terrible", "enjoy_terrible"},
	{"perfect", "disaster", "perfect_disaster"},
	{"great", "mess", "great_mess"},
	{"wonderful", "failure", "wonderful_failure"},
	{"thanks", "nothing", "sarcastic_thanks"},
}

var positiveWords = map[string]bool{
	"good":        true,
	"great":       true,
	"excellent":   true,
	"wonderful":   true,
	"amazing":     true,
	"fantastic":   true,
	"perfect":     true,
	"beautiful":   true,
	"lovely":      true,
	"brilliant":   true,
	"superb":      true,
	"outstanding": true,
	"love":        true,
	"adore":       true,
	"enjoy":       true,
	"appreciate":  true,
}

var negativeWords = map[string]bool{
	"bad":        true,
	"terrible":   true,
	"awful":      true,
	"horrible":   true,
	"disgusting": true,
	"pathetic":   true,
	"useless":    true,
	"worthless":  true,
	"stupid":     true,
	"idiotic":    true,
	"moronic":    true,
	"ridiculous": true,
	"hate":       true,
	"despise":    true,
	"loathe":     true,
	"detest":     true,
	"disaster":   true,
	"mess":       true,
	"failure":    true,
}

var exaggerationMarkers = []string{
	"literally",
	"totally",
	"so totally",
	"absolutely",
	"completely",
	"utterly",
	"wow",
	"gee",
}
