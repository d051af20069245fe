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


// Package search provides intent-aware ranked search over stored
// conversation turns.
//
// The Searcher type parses a raw query once, loads a candidate window of
// recent turns from storage, scores each candidate concurrently on a
// worker pool, and returns the results sorted by relevance. Ties are
// broken by most recent timestamp, then by ID, so repeated searches over
// unchanged data are reproducible.
//
// Scoring of individual candidates is embarrassingly parallel; the only
// ordering guarantee is applied at the aggregation step. Cancellation is
// cooperative and caller-driven: the context is checked between candidate
// submissions and a cancelled search discards partially scored results.
package search
