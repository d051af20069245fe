package storage

import (
	"testing"
	"time"

	"github.com/poiesic/recallit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("conversation content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalTurn(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		turn *core.ConversationTurn
	}{
		{
			name: "minimal turn",
			turn: &core.ConversationTurn{
				Id:             core.ID(1),
				ConversationId: "conv-1",
				TurnNumber:     0,
				Timestamp:      now,
				Prompt:         "Hello",
				InsertedAt:     now,
				UpdatedAt:      now,
			},
		},
		{
			name: "turn with tools and metadata",
			turn: &core.ConversationTurn{
				Id:             core.ID(2),
				ConversationId: "conv-1",
				TurnNumber:     3,
				Timestamp:      now.Add(-time.Hour),
				Prompt:         "How do I list files?",
				Response:       "Use os.ReadDir.",
				Model:          "gpt-4",
				ToolsUsed:      []string{"shell", "editor"},
				InsertedAt:     now,
				UpdatedAt:      now,
				Metadata:       map[string]string{"provider": "openai", "session": "abc"},
			},
		},
		{
			name: "turn with unicode content",
			turn: &core.ConversationTurn{
				Id:             core.ID(3),
				ConversationId: "conv-2",
				TurnNumber:     1,
				Timestamp:      now,
				Prompt:         "日本語のプロンプト",
				Response:       "résponse with ümlauts",
				Model:          "claude-2",
				InsertedAt:     now,
				UpdatedAt:      now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalTurn(tt.turn)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalTurn(data)
			require.NoError(t, err)

			assert.Equal(t, tt.turn.Id, decoded.Id)
			assert.Equal(t, tt.turn.ConversationId, decoded.ConversationId)
			assert.Equal(t, tt.turn.TurnNumber, decoded.TurnNumber)
			assert.True(t, tt.turn.Timestamp.Equal(decoded.Timestamp))
			assert.Equal(t, tt.turn.Prompt, decoded.Prompt)
			assert.Equal(t, tt.turn.Response, decoded.Response)
			assert.Equal(t, tt.turn.Model, decoded.Model)
			assert.Equal(t, len(tt.turn.ToolsUsed), len(decoded.ToolsUsed))
			for i := range tt.turn.ToolsUsed {
				assert.Equal(t, tt.turn.ToolsUsed[i], decoded.ToolsUsed[i])
			}
			assert.True(t, tt.turn.InsertedAt.Equal(decoded.InsertedAt))
			assert.True(t, tt.turn.UpdatedAt.Equal(decoded.UpdatedAt))
			for k, v := range tt.turn.Metadata {
				assert.Equal(t, v, decoded.Metadata[k])
			}
		})
	}
}

func TestUnmarshalTurn_Truncated(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	turn := &core.ConversationTurn{
		Id:             core.ID(7),
		ConversationId: "conv-1",
		Timestamp:      now,
		Prompt:         "A prompt long enough to truncate meaningfully",
		InsertedAt:     now,
		UpdatedAt:      now,
	}

	data := MarshalTurn(turn)
	_, err := UnmarshalTurn(data[:len(data)/2])
	assert.Error(t, err)
}
