package normalizer

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/textsentry/textsentry/pkg/analysis"
)

const (
	// Runs of the same character of this length or more collapse to
	// collapsedRunLength. Whitespace runs are left to the final cleanup
	// pass, which records no substitutions.
	repeatRunThreshold = 3
	collapsedRunLength = 2

	// Tokens of at least this many letters, all uppercase, are treated as
	// shouting and folded to lowercase.
	shoutMinLength = 4
)

// Normalizer rewrites informal text into a canonical form. It never fails;
// input that matches no rule passes through unchanged. All rule tables are
// immutable after package init, so a single Normalizer is safe for
// concurrent use.
type Normalizer struct{}

func New() *Normalizer {
	return &Normalizer{}
}

// Normalize applies the rule passes in fixed order: emoji, slang expansion,
// misspelling correction, repeated-character collapse, shout folding, then
// an unrecorded whitespace cleanup. Substitution spans always reference the
// original input.
func (n *Normalizer) Normalize(text string) analysis.NormalizationResult {
	e := newEditor(text)

	e.replaceEmojis()
	e.replaceWords(slangTable, analysis.RuleSlang)
	e.replaceWords(misspellingTable, analysis.RuleMisspelling)
	e.collapseRepeats()
	e.foldShouts()
	e.normalizeWhitespace()

	subs := e.subs
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].Span.Start < subs[j].Span.Start
	})

	return analysis.NormalizationResult{
		Original:      text,
		Normalized:    string(e.buf),
		Substitutions: subs,
	}
}

// editor tracks the text under rewrite together with a per-byte origin map
// pointing back into the original input. Inserted bytes carry origin -1, so
// substitution spans survive cumulative length drift across passes.
type editor struct {
	original string
	buf      []byte
	origin   []int
	subs     []analysis.Substitution
}

func newEditor(text string) *editor {
	buf := []byte(text)
	origin := make([]int, len(buf))
	for i := range origin {
		origin[i] = i
	}
	return &editor{original: text, buf: buf, origin: origin}
}

type edit struct {
	start, end  int
	replacement string
	recorded    string
	kind        analysis.RuleKind
}

// apply splices the edits into the buffer. Edits must be non-overlapping;
// they are applied right to left so earlier offsets stay valid.
func (e *editor) apply(edits []edit) {
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	for _, ed := range edits {
		if ed.kind != "" {
			if span, ok := e.spanOf(ed.start, ed.end); ok {
				e.subs = append(e.subs, analysis.Substitution{
					Span:        span,
					Original:    e.original[span.Start:span.End],
					Replacement: ed.recorded,
					RuleKind:    ed.kind,
				})
			}
		}
		buf := make([]byte, 0, len(e.buf)-(ed.end-ed.start)+len(ed.replacement))
		buf = append(buf, e.buf[:ed.start]...)
		buf = append(buf, ed.replacement...)
		buf = append(buf, e.buf[ed.end:]...)

		origin := make([]int, 0, len(buf))
		origin = append(origin, e.origin[:ed.start]...)
		for i := 0; i < len(ed.replacement); i++ {
			origin = append(origin, -1)
		}
		origin = append(origin, e.origin[ed.end:]...)

		e.buf, e.origin = buf, origin
	}
}

// spanOf maps a range of the current buffer back to a span of the original
// input, skipping bytes that were inserted by earlier passes.
func (e *editor) spanOf(start, end int) (analysis.Span, bool) {
	origStart, origEnd := -1, -1
	for i := start; i < end && i < len(e.origin); i++ {
		if e.origin[i] < 0 {
			continue
		}
		if origStart < 0 {
			origStart = e.origin[i]
		}
		origEnd = e.origin[i] + 1
	}
	if origStart < 0 {
		return analysis.Span{}, false
	}
	return analysis.Span{Start: origStart, End: origEnd}, true
}

func (e *editor) replaceEmojis() {
	var edits []edit
	text := string(e.buf)
	for i := 0; i < len(text); {
		matched := false
		for _, glyph := range emojiGlyphs {
			if strings.HasPrefix(text[i:], glyph) {
				repl := emojiTable[glyph]
				edits = append(edits, edit{
					start:       i,
					end:         i + len(glyph),
					replacement: " " + repl + " ",
					recorded:    repl,
					kind:        analysis.RuleEmoji,
				})
				i += len(glyph)
				matched = true
				break
			}
		}
		if !matched {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
		}
	}
	e.apply(edits)
}

// replaceWords performs whole-word, case-insensitive dictionary expansion.
// Two-word keys are tried before single-word ones so overlapping entries
// resolve longest-match-first; a phrase match requires the gap between the
// two tokens to be plain whitespace with no punctuation on either side.
func (e *editor) replaceWords(table map[string]string, kind analysis.RuleKind) {
	toks := tokenize(e.buf)
	var edits []edit
	for i := 0; i < len(toks); i++ {
		cur := toks[i]
		curCore := strings.ToLower(string(e.buf[cur.coreStart:cur.coreEnd]))
		if curCore == "" {
			continue
		}
		if i+1 < len(toks) {
			next := toks[i+1]
			nextCore := strings.ToLower(string(e.buf[next.coreStart:next.coreEnd]))
			if nextCore != "" && cur.coreEnd == cur.end && next.start == next.coreStart {
				if repl, ok := table[curCore+" "+nextCore]; ok {
					edits = append(edits, edit{
						start:       cur.coreStart,
						end:         next.coreEnd,
						replacement: repl,
						recorded:    repl,
						kind:        kind,
					})
					i++
					continue
				}
			}
		}
		if repl, ok := table[curCore]; ok {
			edits = append(edits, edit{
				start:       cur.coreStart,
				end:         cur.coreEnd,
				replacement: repl,
				recorded:    repl,
				kind:        kind,
			})
		}
	}
	e.apply(edits)
}

func (e *editor) collapseRepeats() {
	var edits []edit
	text := string(e.buf)
	runStart := 0
	var runRune rune
	runLen := 0
	flush := func(end int) {
		if runLen >= repeatRunThreshold && !unicode.IsSpace(runRune) {
			repl := strings.Repeat(string(runRune), collapsedRunLength)
			edits = append(edits, edit{
				start:       runStart,
				end:         end,
				replacement: repl,
				recorded:    repl,
				kind:        analysis.RuleRepeatChars,
			})
		}
	}
	for i, r := range text {
		if runLen > 0 && r == runRune {
			runLen++
			continue
		}
		flush(i)
		runStart, runRune, runLen = i, r, 1
	}
	flush(len(text))
	e.apply(edits)
}

func (e *editor) foldShouts() {
	toks := tokenize(e.buf)
	var edits []edit
	for _, tok := range toks {
		core := string(e.buf[tok.coreStart:tok.coreEnd])
		if !isShout(core) {
			continue
		}
		repl := strings.ToLower(core)
		edits = append(edits, edit{
			start:       tok.coreStart,
			end:         tok.coreEnd,
			replacement: repl,
			recorded:    repl,
			kind:        analysis.RuleShout,
		})
	}
	e.apply(edits)
}

func isShout(word string) bool {
	letters := 0
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters >= shoutMinLength
}

func (e *editor) normalizeWhitespace() {
	var edits []edit
	text := string(e.buf)
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			i += size
			continue
		}
		start := i
		for i < len(text) {
			r, size = utf8.DecodeRuneInString(text[i:])
			if !unicode.IsSpace(r) {
				break
			}
			i += size
		}
		repl := " "
		if start == 0 || i == len(text) {
			repl = ""
		}
		if text[start:i] != repl {
			edits = append(edits, edit{start: start, end: i, replacement: repl})
		}
	}
	e.apply(edits)
}

// token marks a whitespace-delimited token in the current buffer; the core
// range excludes leading and trailing punctuation.
type token struct {
	start, end         int
	coreStart, coreEnd int
}

func tokenize(buf []byte) []token {
	var toks []token
	text := string(buf)
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}
		start := i
		for i < len(text) {
			r, size = utf8.DecodeRuneInString(text[i:])
			if unicode.IsSpace(r) {
				break
			}
			i += size
		}
		tok := token{start: start, end: i}
		tok.coreStart, tok.coreEnd = trimPunct(text, start, i)
		toks = append(toks, tok)
	}
	return toks
}

func trimPunct(text string, start, end int) (int, int) {
	for start < end {
		r, size := utf8.DecodeRuneInString(text[start:end])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		start += size
	}
	for end > start {
		r, size := utf8.DecodeLastRuneInString(text[start:end])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		end -= size
	}
	return start, end
}
