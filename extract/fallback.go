package extract

import (
	"strings"
	"unicode"

	"github.com/brightquery/leadgen/core"
)

// DictionaryEntry pairs a lowercase match substring with the canonical
// value reported when it hits. Stems are allowed ("manufactur" matches
// both "manufacturer" and "manufacturing").
type DictionaryEntry struct {
	Match string
	Value string
}

// Dictionaries is the configuration data for the fallback extractor.
// The defaults are deliberately small; they exist so extraction keeps
// working when the language model does not, trading precision for
// availability.
type Dictionaries struct {
	Industries  []DictionaryEntry
	Regions     []DictionaryEntry
	MaxKeywords int
}

// DefaultDictionaries returns the built-in industry and region dictionaries.
func DefaultDictionaries() Dictionaries {
	return Dictionaries{
		Industries: []DictionaryEntry{
			{"manufactur", "manufacturing"},
			{"textile", "textile"},
			{"electronic", "electronics"},
			{"agricultur", "agriculture"},
			{"pharmaceutic", "pharmaceuticals"},
			{"chemical", "chemicals"},
			{"software", "software"},
			{"logistic", "logistics"},
			{"construction", "construction"},
			{"automotive", "automotive"},
			{"food processing", "food processing"},
			{"machinery", "machinery"},
			// Generic trade terms last: "pharmaceutical exporters" is the
			// pharmaceuticals industry, not the export industry.
			{"export", "export"},
			{"trading", "trading"},
		},
		Regions: []DictionaryEntry{
			{"india", "India"},
			{"china", "China"},
			{"united states", "United States"},
			{"usa", "United States"},
			{"germany", "Germany"},
			{"vietnam", "Vietnam"},
			{"bangladesh", "Bangladesh"},
			{"brazil", "Brazil"},
			{"turkey", "Turkey"},
			{"indonesia", "Indonesia"},
			{"united kingdom", "United Kingdom"},
			{"japan", "Japan"},
			{"south korea", "South Korea"},
			{"mexico", "Mexico"},
			{"thailand", "Thailand"},
			{"europe", "Europe"},
			{"middle east", "Middle East"},
			{"africa", "Africa"},
			{"asia", "Asia"},
		},
		MaxKeywords: 5,
	}
}

// heuristicExtract scans the concatenated answer text for dictionary
// matches. The first industry and region hits win; keywords come from
// capitalized or quoted tokens in the answers, capped. Product is left
// empty on this path — an acceptable precision loss for availability.
func (e *Extractor) heuristicExtract(answers []core.QuestionAnswer) *core.SearchCriteria {
	var b strings.Builder
	for _, qa := range answers {
		b.WriteString(qa.Answer)
		b.WriteString(" ")
	}
	text := b.String()
	lowered := strings.ToLower(text)

	criteria := &core.SearchCriteria{Keywords: []string{}}

	for _, entry := range e.dicts.Industries {
		if strings.Contains(lowered, entry.Match) {
			criteria.Industry = entry.Value
			break
		}
	}
	for _, entry := range e.dicts.Regions {
		if strings.Contains(lowered, entry.Match) {
			criteria.Region = entry.Value
			break
		}
	}

	criteria.Keywords = extractKeywords(text, criteria, e.dicts.MaxKeywords)
	return criteria
}

// extractKeywords pulls quoted phrases and capitalized words out of the
// answer text, skipping anything already claimed as industry or region.
func extractKeywords(text string, criteria *core.SearchCriteria, max int) []string {
	keywords := []string{}
	seen := map[string]bool{
		strings.ToLower(criteria.Industry): true,
		strings.ToLower(criteria.Region):   true,
	}

	appendKeyword := func(kw string) {
		kw = strings.TrimSpace(kw)
		lowered := strings.ToLower(kw)
		if kw == "" || seen[lowered] || len(keywords) >= max {
			return
		}
		seen[lowered] = true
		keywords = append(keywords, kw)
	}

	// Quoted phrases first; the caller quoted them on purpose.
	for _, quote := range []string{`"`, `'`} {
		parts := strings.Split(text, quote)
		for i := 1; i < len(parts); i += 2 {
			appendKeyword(parts[i])
		}
	}

	for _, word := range strings.Fields(text) {
		cleaned := strings.Trim(word, ".,!?;:'\"-()[]{}")
		if len(cleaned) < 3 {
			continue
		}
		runes := []rune(cleaned)
		if unicode.IsUpper(runes[0]) {
			appendKeyword(cleaned)
		}
	}

	return keywords
}
