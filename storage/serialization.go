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


package storage

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/recallit/core"
)

var (
	toolsSer    = ord.NewSliceSer[string](ord.String)
	metadataSer = ord.NewMapSer[string, string](ord.String, ord.String)
)

// IDSer serializes core.ID values as varint-encoded uint64.
var IDSer = idSer{}

type idSer struct{}

var _ mus.Serializer[core.ID] = idSer{}

func (idSer) Marshal(id core.ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idSer) Unmarshal(bs []byte) (core.ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return core.ID(v), n, err
}

func (idSer) Size(id core.ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idSer) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// timeSer stores timestamps as UTC microseconds since the Unix epoch.
// Sub-microsecond precision and the original location are not preserved.
type timeSer struct{}

var timestampSer = timeSer{}

var _ mus.Serializer[time.Time] = timeSer{}

func (timeSer) Marshal(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func (timeSer) Unmarshal(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func (timeSer) Size(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

func (timeSer) Skip(bs []byte) (int, error) {
	return varint.Int64.Skip(bs)
}

// TurnSer serializes core.ConversationTurn values field by field, in
// declaration order.
var TurnSer = turnSer{}

type turnSer struct{}

var _ mus.Serializer[core.ConversationTurn] = turnSer{}

func (turnSer) Marshal(turn core.ConversationTurn, bs []byte) (n int) {
	n = IDSer.Marshal(turn.Id, bs)
	n += ord.String.Marshal(turn.ConversationId, bs[n:])
	n += varint.Int.Marshal(turn.TurnNumber, bs[n:])
	n += timestampSer.Marshal(turn.Timestamp, bs[n:])
	n += ord.String.Marshal(turn.Prompt, bs[n:])
	n += ord.String.Marshal(turn.Response, bs[n:])
	n += ord.String.Marshal(turn.Model, bs[n:])
	n += toolsSer.Marshal(turn.ToolsUsed, bs[n:])
	n += timestampSer.Marshal(turn.InsertedAt, bs[n:])
	n += timestampSer.Marshal(turn.UpdatedAt, bs[n:])
	n += metadataSer.Marshal(turn.Metadata, bs[n:])
	return n
}

func (turnSer) Unmarshal(bs []byte) (turn core.ConversationTurn, n int, err error) {
	var n1 int
	if turn.Id, n, err = IDSer.Unmarshal(bs); err != nil {
		return
	}
	if turn.ConversationId, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return turn, n + n1, err
	}
	n += n1
	if turn.TurnNumber, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return turn, n + n1, err
	}
	n += n1
	if turn.Timestamp, n1, err = timestampSer.Unmarshal(bs[n:]); err != nil {
		return turn, n + n1, err
	}
	n += n1
	if turn.Prompt, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return turn, n + n1, err
	}
	n += n1
	if turn.Response, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return turn, n + n1, err
	}
	n += n1
	if turn.Model, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return turn, n + n1, err
	}
	n += n1
	if turn.ToolsUsed, n1, err = toolsSer.Unmarshal(bs[n:]); err != nil {
		return turn, n + n1, err
	}
	n += n1
	if turn.InsertedAt, n1, err = timestampSer.Unmarshal(bs[n:]); err != nil {
		return turn, n + n1, err
	}
	n += n1
	if turn.UpdatedAt, n1, err = timestampSer.Unmarshal(bs[n:]); err != nil {
		return turn, n + n1, err
	}
	n += n1
	if turn.Metadata, n1, err = metadataSer.Unmarshal(bs[n:]); err != nil {
		return turn, n + n1, err
	}
	n += n1
	return turn, n, nil
}

func (s turnSer) Size(turn core.ConversationTurn) (size int) {
	size = IDSer.Size(turn.Id)
	size += ord.String.Size(turn.ConversationId)
	size += varint.Int.Size(turn.TurnNumber)
	size += timestampSer.Size(turn.Timestamp)
	size += ord.String.Size(turn.Prompt)
	size += ord.String.Size(turn.Response)
	size += ord.String.Size(turn.Model)
	size += toolsSer.Size(turn.ToolsUsed)
	size += timestampSer.Size(turn.InsertedAt)
	size += timestampSer.Size(turn.UpdatedAt)
	size += metadataSer.Size(turn.Metadata)
	return size
}

func (s turnSer) Skip(bs []byte) (n int, err error) {
	turn, n, err := s.Unmarshal(bs)
	_ = turn
	return n, err
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, IDSer.Size(id))
	IDSer.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := IDSer.Unmarshal(data)
	return id, err
}

// MarshalTurn serializes a ConversationTurn to bytes.
func MarshalTurn(turn *core.ConversationTurn) []byte {
	buf := make([]byte, TurnSer.Size(*turn))
	TurnSer.Marshal(*turn, buf)
	return buf
}

// UnmarshalTurn deserializes a ConversationTurn from bytes.
func UnmarshalTurn(data []byte) (*core.ConversationTurn, error) {
	turn, _, err := TurnSer.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &turn, nil
}
