package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/recallit/core"
)

// Key prefixes for different data types
const (
	turnPrefix     = "convturn"
	turnDatePrefix = "convturnd"
	turnConvPrefix = "convturnc"
	turnIDSeq      = "convturnseq"
)

// makeTurnKey generates a key for a conversation turn by ID.
func makeTurnKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", turnPrefix, id))
}

// makeTurnDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeTurnDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := turnDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialTurnDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialTurnDateKey(timestamp time.Time) []byte {
	prefix := turnDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeTurnConvKey generates a composite key for the conversation index.
// Format: prefix:conversationId\x00turnNumber:id, with the turn number in
// BigEndian so iteration yields turns in conversational order.
func makeTurnConvKey(conversationId string, turnNumber int, id core.ID) []byte {
	prefix := makeTurnConvPrefix(conversationId)
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(turnNumber))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeTurnConvPrefix generates the iteration prefix for one conversation.
// A NUL separator ends the conversation id so "conv-1" never matches keys
// of "conv-10".
func makeTurnConvPrefix(conversationId string) []byte {
	prefix := turnConvPrefix + ":" + conversationId
	buf := make([]byte, len(prefix)+1)
	copy(buf, prefix)
	buf[len(prefix)] = 0x00
	return buf
}
