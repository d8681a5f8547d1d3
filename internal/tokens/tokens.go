// Package tokens normalizes journal text into a word stream for topic
// counting. No stemming, no language model, no lookups beyond a small
// stopword set.
package tokens

import (
	"strings"
	"unicode"
)

const minWordLen = 4

// stopwords are common words that never form a topic.
var stopwords = map[string]bool{
	"about": true, "after": true, "again": true, "been": true, "before": true,
	"being": true, "could": true, "did": true, "does": true, "doing": true,
	"from": true, "have": true, "having": true, "into": true, "just": true,
	"like": true, "more": true, "most": true, "much": true, "over": true,
	"really": true, "some": true, "than": true, "that": true, "them": true,
	"then": true, "there": true, "these": true, "they": true, "this": true,
	"today": true, "very": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "will": true, "with": true,
	"would": true, "your": true,
}

// Words splits text into lower-cased candidate topic words, dropping
// stopwords and anything shorter than four characters. Duplicates within
// the text are preserved; callers that need per-document presence use
// Unique.
func Words(text string) []string {
	var out []string
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, f := range fields {
		if len(f) < minWordLen || stopwords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Unique returns the distinct words of a text, in first-seen order.
func Unique(text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range Words(text) {
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
