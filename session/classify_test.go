package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brightquery/leadgen/core"
)

func TestClassifyQuestion(t *testing.T) {
	tests := []struct {
		question string
		want     core.QuestionType
	}{
		{"What product are you looking for?", core.QuestionTypeProduct},
		{"What services do you need?", core.QuestionTypeProduct},
		{"Which industry are you targeting?", core.QuestionTypeIndustry},
		{"What kind of business is this for?", core.QuestionTypeIndustry},
		{"Which region should suppliers be in?", core.QuestionTypeRegion},
		{"What country do you operate in?", core.QuestionTypeRegion},
		{"Any specific keywords to include?", core.QuestionTypeKeywords},
		{"Tell me more about your needs", core.QuestionTypeGeneral},
		{"", core.QuestionTypeGeneral},
	}

	for _, tc := range tests {
		t.Run(tc.question, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyQuestion(tc.question))
		})
	}
}
