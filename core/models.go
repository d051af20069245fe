package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SearchIntent identifies the inferred purpose behind a search query.
// It is chosen once per query and biases relevance scoring.
type SearchIntent int

const (
	// IntentGeneral is the fallback when no other intent rule matches.
	IntentGeneral SearchIntent = iota + 1
	// IntentHowTo indicates the user wants step-by-step instructions.
	IntentHowTo
	// IntentTroubleshooting indicates the user is diagnosing a problem.
	IntentTroubleshooting
	// IntentDefinition indicates the user wants an explanation of a concept.
	IntentDefinition
	// IntentExample indicates the user wants sample code or usage.
	IntentExample
	// IntentComparison indicates the user is weighing alternatives.
	IntentComparison
)

// String returns a human-readable name for the intent.
func (i SearchIntent) String() string {
	switch i {
	case IntentGeneral:
		return "general"
	case IntentHowTo:
		return "how-to"
	case IntentTroubleshooting:
		return "troubleshooting"
	case IntentDefinition:
		return "definition"
	case IntentExample:
		return "example"
	case IntentComparison:
		return "comparison"
	default:
		return "unknown"
	}
}

// ParsedQuery is the structured form of a raw search query.
// It is immutable once produced by the parser.
type ParsedQuery struct {
	OriginalQuery  string   // Raw input, unmodified
	ProcessedQuery string   // Normalized text with any intent prefix stripped
	Terms          []string // Ordered, lowercase, stop-word-filtered tokens
	Intent         SearchIntent
	Interpretation string  // Display-only description of the detected intent
	Complexity     float64 // Roughly [0, 1+], monotone in length/quotes/connectors
}

// ConversationTurn represents a single prompt/response exchange in a stored
// conversation. It is the unit being ranked; the scoring core treats it as
// read-only.
type ConversationTurn struct {
	Id             ID
	ConversationId string
	TurnNumber     int
	Timestamp      time.Time // When the exchange originally happened
	Prompt         string
	Response       string
	Model          string            // Free-text model identifier (e.g. "gpt-4")
	ToolsUsed      []string          // Names of tools invoked during the turn
	InsertedAt     time.Time         // When the record was inserted into the database
	UpdatedAt      time.Time         // When the record was last updated
	Metadata       map[string]string // Optional metadata (e.g. "session", "provider")
}

// RelevanceResult is the output of scoring one turn against one query.
// It has no persistent identity and is recomputed per (turn, query) pair.
type RelevanceResult struct {
	Score       float64 // Higher = more relevant
	Explanation string  // Breakdown of the non-zero contributing factors
}

// SearchResult pairs a turn with its relevance for a particular query.
type SearchResult struct {
	Turn      *ConversationTurn
	Relevance RelevanceResult
}
