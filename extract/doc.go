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


// Package extract turns intake conversations into structured search
// criteria and composes the query string that gets embedded.
//
// Extraction runs an ordered list of strategies: a language-model call
// that must return a fixed JSON shape, then a dictionary-based heuristic
// that needs no external service and cannot fail. Callers cannot tell
// which strategy ran from the result; the path is tracked for statistics.
package extract
