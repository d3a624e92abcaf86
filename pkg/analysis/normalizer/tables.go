package normalizer

import "sort"

// emojiTable maps emoji glyph sequences to plain-text descriptions. Emoji
// outside this table pass through unchanged.
var emojiTable = map[string]string{
	"😀":  "happy face",
	"😊":  "smiling face",
	"😂":  "laughing",
	"😍":  "heart eyes",
	"😎":  "cool",
	"😡":  "angry face",
	"😠":  "angry",
	"🤬":  "swearing",
	"💩":  "poop",
	"🖕":  "middle finger",
	"👎":  "thumbs down",
	"👍":  "thumbs up",
	"❤️": "heart",
	"💔":  "broken heart",
	"🔥":  "fire",
	"💯":  "hundred percent",
	"🤮":  "vomiting",
	"🤢":  "nauseated",
	"😤":  "huffing",
	"😭":  "crying",
	"🙄":  "eye roll",
	"😏":  "smirk",
	"😈":  "devil",
	"👹":  "monster",
	"💀":  "skull",
	"☠️": "skull and crossbones",
}

// emojiGlyphs holds the table keys longest-first so variant-selector
// sequences win over their single-codepoint prefixes.
var emojiGlyphs []string

func init() {
	for glyph := range emojiTable {
		emojiGlyphs = append(emojiGlyphs, glyph)
	}
	sort.Slice(emojiGlyphs, func(i, j int) bool {
		if len(emojiGlyphs[i]) != len(emojiGlyphs[j]) {
			return len(emojiGlyphs[i]) > len(emojiGlyphs[j])
		}
		return emojiGlyphs[i] < emojiGlyphs[j]
	})
}

// slangTable expands internet slang and abbreviations. Keys are lowercase;
// two-word keys are matched before their one-word components.
var slangTable = map[string]string{
	"lol":    "laugh out loud",
	"lmao":   "laughing my ass off",
	"rofl":   "rolling on floor laughing",
	"wtf":    "what the fuck",
	"omg":    "oh my god",
	"fml":    "fuck my life",
	"smh":    "shaking my head",
	"tbh":    "to be honest",
	"imo":    "in my opinion",
	"imho":   "in my humble opinion",
	"afaik":  "as far as I know",
	"tl;dr":  "too long did not read",
	"brb":    "be right back",
	"gtg":    "got to go",
	"ttyl":   "talk to you later",
	"irl":    "in real life",
	"ngl":    "not gonna lie",
	"fr":     "for real",
	"sus":    "suspicious",
	"cap":    "lie",
	"no cap": "no lie",
	"bet":    "yes",
	"flex":   "show off",
	"stan":   "obsessive fan",
	"simp":   "someone who does too much for someone they like",
	"mofo":   "motherfucker",
	"pos":    "piece of shit",
	"sob":    "son of a bitch",
	"mf":     "motherfucker",

	"u":     "you",
	"ur":    "your",
	"r":     "are",
	"b4":    "before",
	"bc":    "because",
	"bcuz":  "because",
	"cuz":   "because",
	"luv":   "love",
	"gud":   "good",
	"gr8":   "great",
	"thru":  "through",
	"ppl":   "people",
	"plz":   "please",
	"thx":   "thanks",
	"thanx": "thanks",
	"tho":   "though",
	"gonna": "going to",
	"wanna": "want to",
	"gotta": "got to",
	"kinda": "kind of",
	"sorta": "sort of",
	"outta": "out of",
}

// misspellingTable corrects known confusions only; it is not a general
// spell checker.
var misspellingTable = map[string]string{
	"recieve":    "receive",
	"seperate":   "separate",
	"definately": "definitely",
	"alot":       "a lot",
	"teh":        "the",
	"thier":      "their",
	"youre":      "you are",
	"dont":       "do not",
	"cant":       "can not",
	"wont":       "will not",
	"isnt":       "is not",
	"arent":      "are not",
	"wasnt":      "was not",
	"werent":     "were not",
	"hasnt":      "has not",
	"havent":     "have not",
	"hadnt":      "had not",
	"shouldnt":   "should not",
	"couldnt":    "could not",
	"wouldnt":    "would not",
}
