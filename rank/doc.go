// Package rank scores vector-search candidates against the extracted
// criteria and formats the winners into a caller-facing lead report.
//
// Ranking blends two signals: the raw vector similarity from the search
// engine and a term-overlap relevance score computed per criterion with
// weights renormalized over the criteria actually present. Every ranked
// result carries at least one human-readable match reason.
//
// Report formatting prefers the LLM path and falls back to a
// deterministic template whenever the model is unavailable or returns
// something unusable.
package rank
