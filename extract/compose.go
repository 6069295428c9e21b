package extract

import (
	"strings"

	"github.com/brightquery/leadgen/core"
)

// queryBoilerplate biases the embedding toward directory-style business
// records regardless of how sparse the criteria are.
const queryBoilerplate = "Business company directory manufacturer supplier exporter contact information"

// ComposeQuery renders structured criteria into a single natural-language
// query string suitable for embedding. Terms appear in fixed order and
// only when present. With no criteria at all the output degenerates to
// the boilerplate alone — the search still executes rather than failing.
func ComposeQuery(criteria *core.SearchCriteria) string {
	var parts []string
	if criteria.Product != "" {
		parts = append(parts, criteria.Product)
	}
	if criteria.Industry != "" {
		parts = append(parts, criteria.Industry+" industry")
	}
	if criteria.Region != "" {
		parts = append(parts, "located in "+criteria.Region)
	}
	if len(criteria.Keywords) > 0 {
		parts = append(parts, strings.Join(criteria.Keywords, " "))
	}
	parts = append(parts, queryBoilerplate)
	return strings.Join(parts, " ")
}
