// Package leadgen turns a short question/answer intake conversation into
// a ranked list of business leads drawn from an embedded company corpus.
//
// The Engine wires the pipeline end to end: a TTL session store collects
// answers, the extract package distills them into structured criteria,
// the search package retrieves candidates by vector similarity over the
// storage layer, and the rank package scores, orders, and formats the
// final report. AI-backed stages (extraction, report wording) carry
// deterministic fallbacks, so a reachable corpus and a working embedding
// endpoint are the only hard dependencies of a generation.
package leadgen
