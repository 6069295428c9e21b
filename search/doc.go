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


// Package search executes vector similarity searches over the corpus of
// embedding records.
//
// Three interchangeable strategies share one signature and form an
// explicit fallback chain:
//
//   - ann-index: delegates to the store's approximate-nearest-neighbor
//     index when one is configured
//   - in-memory-scan: bounded working set, single-pass scoring with a
//     precomputed query norm, early termination on enough high-confidence
//     hits
//   - naive-scan: the last resort, a plain score-sort-truncate pass
//
// A failure in one strategy is logged and the next one runs; only the
// final strategy's failure reaches the caller. BatchSearch amortizes the
// working-set load across many query vectors without changing any
// single query's results.
package search
