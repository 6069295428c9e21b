package rank

import (
	"strings"

	"github.com/brightquery/leadgen/core"
)

// CompanyInfo is the normalized projection of a record's free-form source
// fields. Corpus documents name these fields inconsistently ("Company
// Name", "company_name", "CONTACT-PERSON"), so projection goes through
// case-insensitive fuzzy key matching instead of exact lookups.
type CompanyInfo struct {
	Company  string
	Contact  string
	Email    string
	Phone    string
	Website  string
	Industry string
	Region   string
}

// fieldAliases maps a projection slot to the substrings that identify it
// in a source-field key. Checked in order; the first populated hit wins.
var fieldAliases = []struct {
	target func(*CompanyInfo) *string
	tokens []string
}{
	{func(c *CompanyInfo) *string { return &c.Company }, []string{"company", "business name", "firm"}},
	{func(c *CompanyInfo) *string { return &c.Contact }, []string{"contact", "person", "owner"}},
	{func(c *CompanyInfo) *string { return &c.Email }, []string{"email", "mail"}},
	{func(c *CompanyInfo) *string { return &c.Phone }, []string{"phone", "mobile", "tel"}},
	{func(c *CompanyInfo) *string { return &c.Website }, []string{"website", "url", "web"}},
	{func(c *CompanyInfo) *string { return &c.Industry }, []string{"industry", "sector", "category"}},
	{func(c *CompanyInfo) *string { return &c.Region }, []string{"region", "country", "city", "location", "state"}},
}

// ProjectCompanyInfo extracts company details from a record's source
// fields via fuzzy field-name matching.
func ProjectCompanyInfo(record *core.EmbeddingRecord) CompanyInfo {
	info := CompanyInfo{}
	for key, value := range record.SourceFields {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		normalized := normalizeFieldKey(key)
		for _, alias := range fieldAliases {
			slot := alias.target(&info)
			if *slot != "" {
				continue
			}
			for _, token := range alias.tokens {
				if strings.Contains(normalized, token) {
					*slot = value
					break
				}
			}
		}
	}
	return info
}

// normalizeFieldKey lowercases a key and flattens underscore and dash
// variants so "CONTACT_PERSON" and "contact-person" match the same alias.
func normalizeFieldKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", " ")
	key = strings.ReplaceAll(key, "-", " ")
	return key
}
