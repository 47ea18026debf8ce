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

package byron

import (
	"fmt"

	"github.com/blinklabs-io/headercursor/cbor"
	"github.com/blinklabs-io/headercursor/ledger/common"
)

const (
	EraIdByron   = 0
	EraNameByron = "Byron"

	BlockTypeByronEbb  = 0
	BlockTypeByronMain = 1

	BlockHeaderTypeByron = 0
)

var EraByron = common.Era{
	Id:   EraIdByron,
	Name: EraNameByron,
}

var (
	_ common.BlockHeader = (*ByronEpochBoundaryBlockHeader)(nil)
	_ common.BlockHeader = (*ByronMainBlockHeader)(nil)
)

func init() {
	common.RegisterEra(EraByron)
}

// ByronEpochBoundaryBlockHeader is the header of an epoch boundary block (EBB). EBBs carry
// no slot of their own and sit at the first slot of their epoch
type ByronEpochBoundaryBlockHeader struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	ProtocolMagic uint32
	PrevBlock     common.Blake2b256
	BodyProof     any
	ConsensusData struct {
		cbor.StructAsArray
		Epoch      uint64
		Difficulty struct {
			cbor.StructAsArray
			Value uint64
		}
	}
	ExtraData any
}

func (h *ByronEpochBoundaryBlockHeader) UnmarshalCBOR(cborData []byte) error {
	// Decode generically and store original CBOR
	return h.UnmarshalCbor(cborData, h)
}

// Hash is computed from the stored CBOR on every call and never mutates the header
func (h *ByronEpochBoundaryBlockHeader) Hash() common.Blake2b256 {
	return headerHash(BlockTypeByronEbb, h.Cbor())
}

func (h *ByronEpochBoundaryBlockHeader) PrevHash() common.Blake2b256 {
	return h.PrevBlock
}

func (h *ByronEpochBoundaryBlockHeader) Epoch() uint64 {
	return h.ConsensusData.Epoch
}

func (h *ByronEpochBoundaryBlockHeader) BlockNumber() uint64 {
	// Byron blocks don't store the block number in the block
	return 0
}

// SlotNumber returns the absolute slot using the mainnet epoch length
func (h *ByronEpochBoundaryBlockHeader) SlotNumber() uint64 {
	return DefaultSlotConverter.EpochToSlot(h.ConsensusData.Epoch)
}

func (h *ByronEpochBoundaryBlockHeader) Era() common.Era {
	return EraByron
}

type ByronMainBlockHeader struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	ProtocolMagic uint32
	PrevBlock     common.Blake2b256
	BodyProof     any
	ConsensusData struct {
		cbor.StructAsArray
		// [slotid, pubkey, difficulty, blocksig]
		SlotId     ByronSlotId
		PubKey     []byte
		Difficulty struct {
			cbor.StructAsArray
			Value uint64
		}
		BlockSig []any
	}
	ExtraData struct {
		cbor.StructAsArray
		BlockVersion struct {
			cbor.StructAsArray
			Major   uint16
			Minor   uint16
			Unknown uint8
		}
		SoftwareVersion struct {
			cbor.StructAsArray
			Name    string
			Unknown uint32
		}
		Attributes any
		ExtraProof common.Blake2b256
	}
}

// ByronSlotId identifies a slot relative to the start of its epoch
type ByronSlotId struct {
	cbor.StructAsArray
	Epoch uint64
	Slot  uint64
}

func (h *ByronMainBlockHeader) UnmarshalCBOR(cborData []byte) error {
	// Decode generically and store original CBOR
	return h.UnmarshalCbor(cborData, h)
}

func (h *ByronMainBlockHeader) Hash() common.Blake2b256 {
	return headerHash(BlockTypeByronMain, h.Cbor())
}

func (h *ByronMainBlockHeader) PrevHash() common.Blake2b256 {
	return h.PrevBlock
}

func (h *ByronMainBlockHeader) BlockNumber() uint64 {
	// Byron blocks don't store the block number in the block
	return 0
}

// SlotNumber returns the absolute slot using the mainnet epoch length
func (h *ByronMainBlockHeader) SlotNumber() uint64 {
	return DefaultSlotConverter.AbsoluteSlot(
		h.ConsensusData.SlotId.Epoch,
		h.ConsensusData.SlotId.Slot,
	)
}

func (h *ByronMainBlockHeader) Era() common.Era {
	return EraByron
}

// headerHash computes a Byron header hash. The hash covers the header wrapped in the
// [blockType, header] list used on the wire, so the list prefix bytes are prepended
func headerHash(blockType byte, headerCbor []byte) common.Blake2b256 {
	data := make([]byte, 0, len(headerCbor)+2)
	data = append(data, cbor.CborTypeArray|2, blockType)
	data = append(data, headerCbor...)
	return common.Blake2b256Hash(data)
}

func NewByronEpochBoundaryBlockHeaderFromCbor(
	data []byte,
) (*ByronEpochBoundaryBlockHeader, error) {
	var byronEbbBlockHeader ByronEpochBoundaryBlockHeader
	if _, err := cbor.Decode(data, &byronEbbBlockHeader); err != nil {
		return nil, fmt.Errorf("Byron EBB block header decode error: %w", err)
	}
	return &byronEbbBlockHeader, nil
}

func NewByronMainBlockHeaderFromCbor(
	data []byte,
) (*ByronMainBlockHeader, error) {
	var byronMainBlockHeader ByronMainBlockHeader
	if _, err := cbor.Decode(data, &byronMainBlockHeader); err != nil {
		return nil, fmt.Errorf("Byron main block header decode error: %w", err)
	}
	return &byronMainBlockHeader, nil
}
