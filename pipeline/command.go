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

package pipeline

import (
	"fmt"

	"github.com/blinklabs-io/headercursor/ledger/common"
	pcommon "github.com/blinklabs-io/headercursor/protocol/common"
)

// CommandKind identifies the chain movement a command reports.
type CommandKind uint8

const (
	CommandKindRollForward CommandKind = iota
	CommandKindRollBack
)

func (k CommandKind) String() string {
	switch k {
	case CommandKindRollForward:
		return "roll_forward"
	case CommandKindRollBack:
		return "roll_back"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// ChainSyncCommand reports chain movement as a chain position.
type ChainSyncCommand struct {
	Kind  CommandKind
	Point pcommon.Point
}

func (c ChainSyncCommand) String() string {
	return fmt.Sprintf("%s(%s)", c.Kind, c.Point)
}

// RollForward reports that the chain advanced to point.
func RollForward(point pcommon.Point) Message[ChainSyncCommand] {
	return NewMessage(ChainSyncCommand{
		Kind:  CommandKindRollForward,
		Point: point,
	})
}

// RollBack reports that the chain rolled back to point.
func RollBack(point pcommon.Point) Message[ChainSyncCommand] {
	return NewMessage(ChainSyncCommand{
		Kind:  CommandKindRollBack,
		Point: point,
	})
}

// ChainSyncCommandEx reports chain movement for consumers that receive fully
// resolved blocks. Block is set for roll forward and Point for roll back.
type ChainSyncCommandEx struct {
	Kind  CommandKind
	Block common.Block
	Point pcommon.Point
}

func (c ChainSyncCommandEx) String() string {
	if c.Kind == CommandKindRollForward && c.Block != nil {
		return fmt.Sprintf("%s(%d.%s)", c.Kind, c.Block.SlotNumber(), c.Block.Hash())
	}
	return fmt.Sprintf("%s(%s)", c.Kind, c.Point)
}

// RollForwardEx reports that the chain advanced by block.
func RollForwardEx(block common.Block) Message[ChainSyncCommandEx] {
	return NewMessage(ChainSyncCommandEx{
		Kind:  CommandKindRollForward,
		Block: block,
	})
}

// RollBackEx reports that the chain rolled back to point.
func RollBackEx(point pcommon.Point) Message[ChainSyncCommandEx] {
	return NewMessage(ChainSyncCommandEx{
		Kind:  CommandKindRollBack,
		Point: point,
	})
}
