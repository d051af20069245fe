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


package query

import "errors"

var (
	// ErrEmptyStopWords is returned when WithStopWords receives no words.
	ErrEmptyStopWords = errors.New("stop word set cannot be empty")

	// ErrEmptyRules is returned when WithRules receives no rules.
	ErrEmptyRules = errors.New("intent rule table cannot be empty")
)
