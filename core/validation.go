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


package core

import (
	"fmt"
	"time"
)

// ValidateConversationTurn validates a ConversationTurn according to domain rules.
//
// Validation rules:
//   - ConversationId must not be empty
//   - TurnNumber must not be negative
//   - Prompt must not be empty
//   - Timestamp must not be in the future
//
// NOT validated:
//   - Response, Model, ToolsUsed (all optional; empty values contribute
//     zero to the affected relevance sub-scores)
//   - ID (0 is valid from database sequences)
func ValidateConversationTurn(turn *ConversationTurn) error {
	if turn == nil {
		return fmt.Errorf("%w: turn is nil", ErrInvalidTurn)
	}

	if turn.ConversationId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, ErrEmptyConversationId)
	}

	if turn.TurnNumber < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, ErrNegativeTurnNumber)
	}

	if turn.Prompt == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, ErrEmptyPrompt)
	}

	if !IsValidTimestamp(turn.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateSearchIntent validates that a SearchIntent has a valid value.
func ValidateSearchIntent(intent SearchIntent) error {
	if intent < IntentGeneral || intent > IntentComparison {
		return fmt.Errorf("%w: %d", ErrInvalidIntent, intent)
	}
	return nil
}

// IsValidTimestamp reports whether a timestamp is not in the future.
// A small tolerance absorbs clock skew between writers.
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now().UTC().Add(1 * time.Minute))
}
