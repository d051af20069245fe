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

import "errors"

// Domain validation errors
var (
	// ErrInvalidTurn indicates a ConversationTurn failed validation.
	ErrInvalidTurn = errors.New("invalid conversation turn")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrEmptyPrompt indicates the Prompt field is empty.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrEmptyConversationId indicates the ConversationId field is empty.
	ErrEmptyConversationId = errors.New("conversation id cannot be empty")

	// ErrNegativeTurnNumber indicates a TurnNumber below zero.
	ErrNegativeTurnNumber = errors.New("turn number cannot be negative")

	// ErrInvalidIntent indicates a SearchIntent outside the known set.
	ErrInvalidIntent = errors.New("invalid search intent")
)
