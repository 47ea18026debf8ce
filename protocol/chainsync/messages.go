// Copyright 2026 Blink Labs Software
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

package chainsync

import (
	"fmt"

	"github.com/blinklabs-io/headercursor/cbor"
	pcommon "github.com/blinklabs-io/headercursor/protocol/common"
)

// Message types
const (
	MessageTypeRollForward  = 2
	MessageTypeRollBackward = 3
)

// Message is a chain-sync message that reports chain movement
type Message interface {
	Type() uint8
}

// MsgRollForwardNtN is a node-to-node RollForward message, which carries a header
type MsgRollForwardNtN struct {
	cbor.StructAsArray
	MessageType   uint8
	WrappedHeader HeaderContent
	Tip           pcommon.Tip
}

func NewMsgRollForwardNtN(content HeaderContent, tip pcommon.Tip) *MsgRollForwardNtN {
	return &MsgRollForwardNtN{
		MessageType:   MessageTypeRollForward,
		WrappedHeader: content,
		Tip:           tip,
	}
}

func (m *MsgRollForwardNtN) Type() uint8 {
	return m.MessageType
}

// MsgRollBackward asks the client to roll back to Point. A rollback to the chain origin
// sets ToOrigin and leaves Point empty
type MsgRollBackward struct {
	MessageType uint8
	Point       pcommon.Point
	ToOrigin    bool
	Tip         pcommon.Tip
}

func NewMsgRollBackward(point pcommon.Point, tip pcommon.Tip) *MsgRollBackward {
	return &MsgRollBackward{
		MessageType: MessageTypeRollBackward,
		Point:       point,
		Tip:         tip,
	}
}

func NewMsgRollBackwardToOrigin(tip pcommon.Tip) *MsgRollBackward {
	return &MsgRollBackward{
		MessageType: MessageTypeRollBackward,
		ToOrigin:    true,
		Tip:         tip,
	}
}

func (m *MsgRollBackward) UnmarshalCBOR(data []byte) error {
	var tmp []cbor.RawMessage
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if len(tmp) != 3 {
		return fmt.Errorf("unexpected RollBackward length: %d", len(tmp))
	}
	var msgType uint8
	if _, err := cbor.Decode(tmp[0], &msgType); err != nil {
		return err
	}
	point, origin, err := pcommon.DecodePointOrOrigin(tmp[1])
	if err != nil {
		return err
	}
	var tip pcommon.Tip
	if _, err := cbor.Decode(tmp[2], &tip); err != nil {
		return err
	}
	*m = MsgRollBackward{
		MessageType: msgType,
		Point:       point,
		ToOrigin:    origin,
		Tip:         tip,
	}
	return nil
}

func (m *MsgRollBackward) MarshalCBOR() ([]byte, error) {
	var point any = m.Point
	if m.ToOrigin {
		point = []any{}
	}
	return cbor.Encode([]any{m.MessageType, point, m.Tip})
}

func (m *MsgRollBackward) Type() uint8 {
	return m.MessageType
}

// NewMsgFromCbor decodes a node-to-node RollForward or RollBackward message
func NewMsgFromCbor(data []byte) (Message, error) {
	msgType, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return nil, fmt.Errorf("%s: decode error: %w", ProtocolName, err)
	}
	var ret Message
	switch msgType {
	case MessageTypeRollForward:
		ret = &MsgRollForwardNtN{}
	case MessageTypeRollBackward:
		ret = &MsgRollBackward{}
	default:
		return nil, fmt.Errorf(
			"%s: unsupported message type: %d",
			ProtocolName,
			msgType,
		)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, fmt.Errorf("%s: decode error: %w", ProtocolName, err)
	}
	return ret, nil
}
