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


// Package ai defines the contracts for the engine's external AI collaborators.
//
// Two services are consumed:
//
//   - Embedder turns text into fixed-length vectors for similarity search.
//   - Completer produces language-model completions used by the criteria
//     extractor and the lead formatter.
//
// Both are accessed through interfaces so implementations can vary.
// The openai subpackage provides implementations for any OpenAI-compatible
// endpoint (Ollama, LocalAI, vLLM, OpenAI itself); the mock subpackage
// provides deterministic test doubles.
//
// All upstream calls go through RetryWithBackoff: bounded attempts with
// exponential, jittered, capped backoff. A rate-limit signal from the
// upstream is treated as an ordinary retryable failure.
//
// Basic usage:
//
//	cfg := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    // handle error
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "textile exporters in India")
package ai
