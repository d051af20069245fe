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


// Package query turns raw search queries into structured, intent-tagged
// representations.
//
// The Parser type normalizes and tokenizes a query, removes stop words,
// classifies search intent via an ordered first-match-wins rule table, and
// estimates query complexity from length, quoted phrases, and boolean
// connectors. Parsing is a pure function: it never fails, holds no state,
// and is safe for concurrent use.
package query
