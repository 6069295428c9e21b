package rank

import (
	"strings"

	"github.com/brightquery/leadgen/core"
)

// stopwords excluded from overlap matching. Criteria phrases like
// "located in the north" should match on the content words only.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"by": {}, "for": {}, "from": {}, "in": {}, "is": {}, "it": {},
	"of": {}, "on": {}, "or": {}, "the": {}, "to": {}, "with": {},
}

// tokenize lowercases text, splits on non-alphanumeric runs, drops
// stopwords, and stems each token.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, skip := stopwords[f]; skip {
			continue
		}
		tokens = append(tokens, stem(f))
	}
	return tokens
}

// stem trims common English suffixes so near-variants collide: a
// criterion of "manufacturing" must match a record field that says
// "manufacturer", and "textile" must match "textiles". Not a real
// stemmer, just enough for directory text.
func stem(word string) string {
	for _, suffix := range []string{"ing", "ers", "er", "es", "e", "s"} {
		if trimmed, ok := strings.CutSuffix(word, suffix); ok && len(trimmed) >= 4 {
			return trimmed
		}
	}
	return word
}

// recordTokens builds the stemmed token set over all of a record's
// source-field values.
func recordTokens(record *core.EmbeddingRecord) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, value := range record.SourceFields {
		for _, tok := range tokenize(value) {
			tokens[tok] = struct{}{}
		}
	}
	return tokens
}

// termOverlap returns the fraction of the phrase's tokens present in the
// record token set, 0 when the phrase has no usable tokens.
func termOverlap(phrase string, tokens map[string]struct{}) float32 {
	phraseTokens := tokenize(phrase)
	if len(phraseTokens) == 0 {
		return 0
	}
	matched := 0
	for _, tok := range phraseTokens {
		if _, ok := tokens[tok]; ok {
			matched++
		}
	}
	return float32(matched) / float32(len(phraseTokens))
}
