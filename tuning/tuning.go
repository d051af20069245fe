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


// Package tuning loads swappable ranking configuration from YAML files.
//
// Stop words, intent keyword sets, and factor weights are configuration
// data rather than code, so they can be retuned or localized without
// recompiling. A tuning file may specify any subset; omitted sections
// keep their built-in defaults.
package tuning

import (
	"fmt"
	"os"

	"github.com/poiesic/recallit/core"
	"github.com/poiesic/recallit/query"
	"github.com/poiesic/recallit/scoring"
	"gopkg.in/yaml.v3"
)

// Tuning holds the swappable ranking tables.
type Tuning struct {
	// StopWords replaces the default stop-word set when non-empty.
	StopWords []string `yaml:"stop_words"`

	// IntentKeywords replaces the default per-intent keyword sets when
	// non-empty, keyed by intent name ("how-to", "troubleshooting",
	// "definition", "example", "comparison").
	IntentKeywords map[string][]string `yaml:"intent_keywords"`

	// Weights replaces the default factor weights when set.
	Weights *scoring.Weights `yaml:"weights"`
}

// Load reads and parses a tuning file.
func Load(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}
	return Parse(data)
}

// Parse parses tuning YAML.
func Parse(data []byte) (*Tuning, error) {
	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tuning file: %w", err)
	}
	if _, err := t.intentKeywordSets(); err != nil {
		return nil, err
	}
	return &t, nil
}

// ParserOptions returns the query parser options this tuning implies.
func (t *Tuning) ParserOptions() []query.Option {
	var opts []query.Option
	if len(t.StopWords) > 0 {
		opts = append(opts, query.WithStopWords(t.StopWords))
	}
	return opts
}

// ScorerOptions returns the scorer options this tuning implies.
func (t *Tuning) ScorerOptions() ([]scoring.Option, error) {
	var opts []scoring.Option

	if len(t.IntentKeywords) > 0 {
		sets, err := t.intentKeywordSets()
		if err != nil {
			return nil, err
		}
		opts = append(opts, scoring.WithIntentKeywords(sets))
	}

	if t.Weights != nil {
		opts = append(opts, scoring.WithWeights(*t.Weights))
	}

	return opts, nil
}

// intentKeywordSets resolves intent names to core.SearchIntent values.
func (t *Tuning) intentKeywordSets() (map[core.SearchIntent][]string, error) {
	if len(t.IntentKeywords) == 0 {
		return nil, nil
	}

	sets := make(map[core.SearchIntent][]string, len(t.IntentKeywords))
	for name, words := range t.IntentKeywords {
		intent, err := intentFromName(name)
		if err != nil {
			return nil, err
		}
		sets[intent] = words
	}
	return sets, nil
}

// intentFromName maps an intent's display name back to its value.
func intentFromName(name string) (core.SearchIntent, error) {
	for intent := core.IntentGeneral; intent <= core.IntentComparison; intent++ {
		if intent.String() == name {
			return intent, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIntent, name)
}
