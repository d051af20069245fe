package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateConversationTurn(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		turn    *ConversationTurn
		wantErr error
	}{
		{
			name: "valid turn",
			turn: &ConversationTurn{
				Id:             1,
				ConversationId: "conv-1",
				TurnNumber:     0,
				Prompt:         "How do I parse YAML in Go?",
				Response:       "Use gopkg.in/yaml.v3.",
				Timestamp:      validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid turn with empty response and tools",
			turn: &ConversationTurn{
				Id:             2,
				ConversationId: "conv-1",
				TurnNumber:     1,
				Prompt:         "Thanks",
				Timestamp:      validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid turn with ID 0",
			turn: &ConversationTurn{
				ConversationId: "conv-2",
				Prompt:         "Hello",
				Timestamp:      validTime,
			},
			wantErr: nil,
		},
		{
			name:    "nil turn",
			turn:    nil,
			wantErr: ErrInvalidTurn,
		},
		{
			name: "empty conversation id",
			turn: &ConversationTurn{
				Prompt:    "Hello",
				Timestamp: validTime,
			},
			wantErr: ErrEmptyConversationId,
		},
		{
			name: "negative turn number",
			turn: &ConversationTurn{
				ConversationId: "conv-1",
				TurnNumber:     -1,
				Prompt:         "Hello",
				Timestamp:      validTime,
			},
			wantErr: ErrNegativeTurnNumber,
		},
		{
			name: "empty prompt",
			turn: &ConversationTurn{
				ConversationId: "conv-1",
				Timestamp:      validTime,
			},
			wantErr: ErrEmptyPrompt,
		},
		{
			name: "future timestamp",
			turn: &ConversationTurn{
				ConversationId: "conv-1",
				Prompt:         "Hello",
				Timestamp:      futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConversationTurn(tt.turn)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateConversationTurn() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateConversationTurn() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSearchIntent(t *testing.T) {
	for _, intent := range []SearchIntent{
		IntentGeneral, IntentHowTo, IntentTroubleshooting,
		IntentDefinition, IntentExample, IntentComparison,
	} {
		if err := ValidateSearchIntent(intent); err != nil {
			t.Errorf("ValidateSearchIntent(%v) unexpected error: %v", intent, err)
		}
	}

	for _, intent := range []SearchIntent{SearchIntent(0), SearchIntent(7), SearchIntent(-1)} {
		if err := ValidateSearchIntent(intent); !errors.Is(err, ErrInvalidIntent) {
			t.Errorf("ValidateSearchIntent(%v) error = %v, want ErrInvalidIntent", intent, err)
		}
	}
}
