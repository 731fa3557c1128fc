package scoring

import (
	"strings"
	"unicode"
)

// document is the pre-tokenised view of a response shared by all heuristics.
type document struct {
	raw        string
	tokens     []string // lower-cased word tokens
	joined     string   // " " + tokens joined by spaces + " "
	unique     int
	sentences  []string
	paragraphs int
	wordCount  int
	answers    map[string]string
}

func newDocument(text string, wordCount int) *document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	tokens := tokenize(text)
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		seen[t] = struct{}{}
	}
	return &document{
		raw:        text,
		tokens:     tokens,
		joined:     " " + strings.Join(tokens, " ") + " ",
		unique:     len(seen),
		sentences:  splitSentences(text),
		paragraphs: countParagraphs(text),
		wordCount:  wordCount,
	}
}

// contains reports whether phrase occurs on word boundaries.
func (d *document) contains(phrase string) bool {
	norm := tokenize(phrase)
	if len(norm) == 0 {
		return false
	}
	return strings.Contains(d.joined, " "+strings.Join(norm, " ")+" ")
}

// countMarkers returns how many distinct markers appear in the document.
func (d *document) countMarkers(markers []string) int {
	n := 0
	for _, m := range markers {
		if d.contains(m) {
			n++
		}
	}
	return n
}

func (d *document) hasNumber() bool {
	for _, t := range d.tokens {
		for _, r := range t {
			if unicode.IsDigit(r) {
				return true
			}
		}
	}
	return false
}

func (d *document) hasQuotation() bool {
	return strings.ContainsAny(d.raw, "\"“”")
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f == "" {
			continue
		}
		out = append(out, strings.ToLower(f))
	}
	return out
}

func splitSentences(text string) []string {
	var (
		out []string
		b   strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, s)
		}
		b.Reset()
	}
	for _, r := range text {
		b.WriteRune(r)
		switch r {
		case '.', '!', '?':
			flush()
		}
	}
	flush()
	return out
}

func countParagraphs(text string) int {
	n := 0
	for _, block := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(block) != "" {
			n++
		}
	}
	return n
}

// stopwords are dropped when deriving keyword terms from a description.
var stopwords = map[string]struct{}{
	"about": {}, "above": {}, "after": {}, "again": {}, "against": {}, "being": {},
	"below": {}, "between": {}, "clear": {}, "clearly": {}, "could": {}, "does": {},
	"during": {}, "each": {}, "every": {}, "from": {}, "have": {}, "into": {},
	"other": {}, "should": {}, "their": {}, "there": {}, "these": {}, "those": {},
	"through": {}, "which": {}, "while": {}, "with": {}, "would": {}, "response": {},
	"student": {}, "answer": {}, "essay": {}, "using": {}, "where": {}, "whether": {},
}

// descriptionTerms extracts content words from a criterion description.
func descriptionTerms(desc string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, t := range tokenize(desc) {
		if len([]rune(t)) < 5 {
			continue
		}
		if _, stop := stopwords[t]; stop {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
