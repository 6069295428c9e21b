// Copyright 2025 Brightquery
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rank

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brightquery/leadgen/ai"
	"github.com/brightquery/leadgen/core"
)

// llmReport is the shape the formatting prompt asks the model to emit.
type llmReport struct {
	Message string `json:"message"`
	Leads   []struct {
		Company  string   `json:"company"`
		Contact  string   `json:"contact"`
		Email    string   `json:"email"`
		Phone    string   `json:"phone"`
		Website  string   `json:"website"`
		Industry string   `json:"industry"`
		Region   string   `json:"region"`
		Reasons  []string `json:"reasons"`
	} `json:"leads"`
}

// Format turns ranked search results into a lead report. When a
// completer is available it asks the model to write the summary message
// and clean up the lead fields; any failure on that path falls through
// to the deterministic template formatter, so a report is always
// produced.
func (r *Ranker) Format(ctx context.Context, results []core.SearchResult, criteria *core.SearchCriteria) (*core.LeadReport, error) {
	kept := r.filterByScore(results)

	if r.completer != nil && len(kept) > 0 {
		report, err := r.llmFormat(ctx, kept, criteria)
		if err == nil {
			r.llmFormats.Add(1)
			return report, nil
		}
		r.logger.Warn("LLM report formatting failed, using template", "err", err)
	}

	r.fallbackFormats.Add(1)
	return r.templateFormat(kept, criteria), nil
}

// filterByScore drops candidates below the combined-score threshold.
func (r *Ranker) filterByScore(results []core.SearchResult) []core.SearchResult {
	kept := make([]core.SearchResult, 0, len(results))
	for _, res := range results {
		if res.Combined >= r.minCombined {
			kept = append(kept, res)
		}
	}
	return kept
}

func (r *Ranker) llmFormat(ctx context.Context, results []core.SearchResult, criteria *core.SearchCriteria) (*core.LeadReport, error) {
	payload, err := json.Marshal(formatPayload(results, criteria))
	if err != nil {
		return nil, fmt.Errorf("failed to encode formatting payload: %w", err)
	}

	raw, err := r.completer.Complete(ctx, formatSystemPrompt, string(payload))
	if err != nil {
		return nil, err
	}

	var parsed llmReport
	if err := json.Unmarshal([]byte(ai.RepairJSON(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse formatted report: %w", err)
	}
	if parsed.Message == "" || len(parsed.Leads) != len(results) {
		return nil, fmt.Errorf("formatted report is incomplete")
	}

	leads := make([]core.Lead, len(parsed.Leads))
	for i, l := range parsed.Leads {
		reasons := l.Reasons
		if len(reasons) == 0 {
			reasons = results[i].MatchReasons
		}
		leads[i] = core.Lead{
			Company:  l.Company,
			Contact:  l.Contact,
			Email:    l.Email,
			Phone:    l.Phone,
			Website:  l.Website,
			Industry: l.Industry,
			Region:   l.Region,
			Score:    results[i].Combined,
			Reasons:  reasons,
		}
	}

	return &core.LeadReport{Message: parsed.Message, Leads: leads}, nil
}

// formatPayload builds the user-prompt document: the criteria plus each
// candidate's projected fields and match reasons.
func formatPayload(results []core.SearchResult, criteria *core.SearchCriteria) any {
	type candidate struct {
		Fields  map[string]string `json:"fields"`
		Score   float32           `json:"score"`
		Reasons []string          `json:"reasons"`
	}
	candidates := make([]candidate, len(results))
	for i, res := range results {
		candidates[i] = candidate{
			Fields:  res.Record.SourceFields,
			Score:   res.Combined,
			Reasons: res.MatchReasons,
		}
	}
	return map[string]any{
		"criteria": map[string]any{
			"product":  criteria.Product,
			"industry": criteria.Industry,
			"region":   criteria.Region,
			"keywords": criteria.Keywords,
		},
		"candidates": candidates,
	}
}

// templateFormat is the deterministic formatter. It never fails.
func (r *Ranker) templateFormat(results []core.SearchResult, criteria *core.SearchCriteria) *core.LeadReport {
	if len(results) == 0 {
		return &core.LeadReport{
			Message: "No high-quality leads found matching your criteria. Try broadening your search.",
			Leads:   []core.Lead{},
		}
	}

	leads := make([]core.Lead, len(results))
	for i, res := range results {
		info := ProjectCompanyInfo(res.Record)
		leads[i] = core.Lead{
			Company:  info.Company,
			Contact:  info.Contact,
			Email:    info.Email,
			Phone:    info.Phone,
			Website:  info.Website,
			Industry: info.Industry,
			Region:   info.Region,
			Score:    res.Combined,
			Reasons:  res.MatchReasons,
		}
	}

	return &core.LeadReport{
		Message: fmt.Sprintf("Found %d potential leads%s.", len(leads), describeCriteria(criteria)),
		Leads:   leads,
	}
}

// describeCriteria renders the criteria as a short clause for the
// template message, empty when nothing was extracted.
func describeCriteria(criteria *core.SearchCriteria) string {
	var parts []string
	if criteria.Product != "" {
		parts = append(parts, "for "+criteria.Product)
	}
	if criteria.Industry != "" {
		parts = append(parts, "in the "+criteria.Industry+" industry")
	}
	if criteria.Region != "" {
		parts = append(parts, "in "+criteria.Region)
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

// FormatStats reports how reports have been produced since startup.
type FormatStats struct {
	LLMReports      int64
	TemplateReports int64
}

// Stats returns a snapshot of the formatting counters.
func (r *Ranker) Stats() FormatStats {
	return FormatStats{
		LLMReports:      r.llmFormats.Load(),
		TemplateReports: r.fallbackFormats.Load(),
	}
}
