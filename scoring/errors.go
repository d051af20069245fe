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


package scoring

import "errors"

var (
	// ErrNegativeWeight is returned when a factor weight is below zero.
	ErrNegativeWeight = errors.New("factor weights cannot be negative")

	// ErrEmptyIntentKeywords is returned when WithIntentKeywords receives
	// no keyword sets.
	ErrEmptyIntentKeywords = errors.New("intent keyword sets cannot be empty")
)
