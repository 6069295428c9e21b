package session

import (
	"strings"

	"github.com/brightquery/leadgen/core"
)

// questionKeywords maps substrings of a question to the type it implies.
// Checked in order; the first hit wins.
var questionKeywords = []struct {
	tokens []string
	qtype  core.QuestionType
}{
	{[]string{"product", "service"}, core.QuestionTypeProduct},
	{[]string{"industry", "business"}, core.QuestionTypeIndustry},
	{[]string{"region", "country", "location"}, core.QuestionTypeRegion},
	{[]string{"keyword", "specific"}, core.QuestionTypeKeywords},
}

// ClassifyQuestion derives the type of an intake question from substring
// matching on a small fixed dictionary. Questions that match nothing are
// general.
func ClassifyQuestion(question string) core.QuestionType {
	lowered := strings.ToLower(question)
	for _, entry := range questionKeywords {
		for _, token := range entry.tokens {
			if strings.Contains(lowered, token) {
				return entry.qtype
			}
		}
	}
	return core.QuestionTypeGeneral
}
