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


// Package plugin defines the capture/restore surface for external system
// state (repository snapshots, notebook state, and similar) and a
// thread-safe registry of such plugins.
//
// The query parsing and relevance scoring packages never invoke plugins;
// the registry sits alongside the search surface in the larger system so
// that conversation snapshots can carry their external context with them.
package plugin
