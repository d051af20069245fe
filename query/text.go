package query

import (
	"strings"
	"unicode"
)

// Default stop words filtered out of query terms. Stop words still count
// toward the complexity length signal but never appear in ParsedQuery.Terms.
var defaultStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "how": true, "what": true, "i": true, "my": true,
	"me": true, "can": true, "does": true, "or": true,
}

// tokenize lowercases text and splits it on whitespace and punctuation
// boundaries. Quoted phrases are broken into their individual words.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// filterStopWords removes stop words from tokens, preserving order and
// duplicates of the surviving terms.
func filterStopWords(tokens []string, stopWords map[string]bool) []string {
	filtered := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !stopWords[token] {
			filtered = append(filtered, token)
		}
	}
	return filtered
}
