// Copyright 2025 Poiesic Systems
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


// Package scoring computes explainable relevance scores for conversation
// turns against parsed queries.
//
// The Scorer type combines four independent sub-scores, each normalized
// to [0, 1], as a weighted sum:
//   - lexical overlap between query terms and the turn text
//   - intent-specific keyword presence
//   - query terms appearing in the model identifier
//   - query terms matching tools used during the turn
//
// Scoring is a pure function of its inputs: no I/O, no hidden state, and
// identical inputs always produce identical scores and explanations.
// Weights and keyword sets are injected configuration, so ranking can be
// retuned without touching the scoring logic.
package scoring
