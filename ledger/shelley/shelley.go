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

package shelley

import (
	"fmt"

	"github.com/blinklabs-io/headercursor/cbor"
	"github.com/blinklabs-io/headercursor/ledger/common"
	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
)

const (
	EraIdShelley = 1
	EraIdAllegra = 2
	EraIdMary    = 3
	EraIdAlonzo  = 4
	EraIdBabbage = 5
	EraIdConway  = 6

	BlockHeaderTypeShelley = 1

	// Header body field counts for the two layouts sharing this header shape
	headerBodyLengthShelley = 15
	headerBodyLengthBabbage = 10
)

// Eras that share the Shelley header shape
var (
	EraShelley = common.Era{Id: EraIdShelley, Name: "Shelley"}
	EraAllegra = common.Era{Id: EraIdAllegra, Name: "Allegra"}
	EraMary    = common.Era{Id: EraIdMary, Name: "Mary"}
	EraAlonzo  = common.Era{Id: EraIdAlonzo, Name: "Alonzo"}
	EraBabbage = common.Era{Id: EraIdBabbage, Name: "Babbage"}
	EraConway  = common.Era{Id: EraIdConway, Name: "Conway"}
)

func init() {
	for _, era := range []common.Era{
		EraShelley,
		EraAllegra,
		EraMary,
		EraAlonzo,
		EraBabbage,
		EraConway,
	} {
		common.RegisterEra(era)
	}
}

var _ common.BlockHeader = (*ShelleyBlockHeader)(nil)

// ShelleyBlockHeader is the header shape used by every era after Byron
type ShelleyBlockHeader struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Body      ShelleyBlockHeaderBody
	Signature []byte
}

type ShelleyBlockHeaderBody struct {
	BlockNumber     uint64
	Slot            uint64
	PrevHash        *common.Blake2b256
	IssuerVkey      []byte
	VrfKey          []byte
	VrfResults      []VrfResult
	BlockBodySize   uint64
	BlockBodyHash   common.Blake2b256
	OpCert          OpCert
	ProtocolVersion ProtocolVersion
}

type VrfResult struct {
	cbor.StructAsArray
	Output []byte
	Proof  []byte
}

type OpCert struct {
	cbor.StructAsArray
	HotVkey        []byte
	SequenceNumber uint32
	KesPeriod      uint32
	Signature      []byte
}

type ProtocolVersion struct {
	cbor.StructAsArray
	Major uint64
	Minor uint64
}

// shelleyHeaderBody is the Shelley through Alonzo layout, with separate nonce and leader
// VRF results and the opcert and protocol version inlined
type shelleyHeaderBody struct {
	cbor.StructAsArray
	BlockNumber          uint64
	Slot                 uint64
	PrevHash             *common.Blake2b256
	IssuerVkey           []byte
	VrfKey               []byte
	NonceVrf             VrfResult
	LeaderVrf            VrfResult
	BlockBodySize        uint64
	BlockBodyHash        common.Blake2b256
	OpCertHotVkey        []byte
	OpCertSequenceNumber uint32
	OpCertKesPeriod      uint32
	OpCertSignature      []byte
	ProtoMajorVersion    uint64
	ProtoMinorVersion    uint64
}

// babbageHeaderBody is the Babbage and later layout
type babbageHeaderBody struct {
	cbor.StructAsArray
	BlockNumber     uint64
	Slot            uint64
	PrevHash        *common.Blake2b256
	IssuerVkey      []byte
	VrfKey          []byte
	VrfResult       VrfResult
	BlockBodySize   uint64
	BlockBodyHash   common.Blake2b256
	OpCert          OpCert
	ProtocolVersion ProtocolVersion
}

func (b *ShelleyBlockHeaderBody) UnmarshalCBOR(cborData []byte) error {
	listLen, err := cbor.ListLength(cborData)
	if err != nil {
		return err
	}
	switch listLen {
	case headerBodyLengthShelley:
		var tmp shelleyHeaderBody
		if _, err := cbor.Decode(cborData, &tmp); err != nil {
			return err
		}
		*b = ShelleyBlockHeaderBody{
			BlockNumber:   tmp.BlockNumber,
			Slot:          tmp.Slot,
			PrevHash:      tmp.PrevHash,
			IssuerVkey:    tmp.IssuerVkey,
			VrfKey:        tmp.VrfKey,
			VrfResults:    []VrfResult{tmp.NonceVrf, tmp.LeaderVrf},
			BlockBodySize: tmp.BlockBodySize,
			BlockBodyHash: tmp.BlockBodyHash,
			OpCert: OpCert{
				HotVkey:        tmp.OpCertHotVkey,
				SequenceNumber: tmp.OpCertSequenceNumber,
				KesPeriod:      tmp.OpCertKesPeriod,
				Signature:      tmp.OpCertSignature,
			},
			ProtocolVersion: ProtocolVersion{
				Major: tmp.ProtoMajorVersion,
				Minor: tmp.ProtoMinorVersion,
			},
		}
	case headerBodyLengthBabbage:
		var tmp babbageHeaderBody
		if _, err := cbor.Decode(cborData, &tmp); err != nil {
			return err
		}
		*b = ShelleyBlockHeaderBody{
			BlockNumber:     tmp.BlockNumber,
			Slot:            tmp.Slot,
			PrevHash:        tmp.PrevHash,
			IssuerVkey:      tmp.IssuerVkey,
			VrfKey:          tmp.VrfKey,
			VrfResults:      []VrfResult{tmp.VrfResult},
			BlockBodySize:   tmp.BlockBodySize,
			BlockBodyHash:   tmp.BlockBodyHash,
			OpCert:          tmp.OpCert,
			ProtocolVersion: tmp.ProtocolVersion,
		}
	default:
		return fmt.Errorf(
			"unexpected header body length: %d (expected %d or %d)",
			listLen,
			headerBodyLengthShelley,
			headerBodyLengthBabbage,
		)
	}
	return nil
}

func (h *ShelleyBlockHeader) UnmarshalCBOR(cborData []byte) error {
	// Decode generically and store original CBOR
	return h.UnmarshalCbor(cborData, h)
}

// Hash returns the Blake2b-256 hash of the header exactly as it was received.
// It reads the stored CBOR only, so concurrent calls on a shared header are safe
func (h *ShelleyBlockHeader) Hash() common.Blake2b256 {
	return common.Blake2b256Hash(h.Cbor())
}

// PrevHash returns the hash of the previous block. The first block after genesis has none
func (h *ShelleyBlockHeader) PrevHash() (common.Blake2b256, bool) {
	if h.Body.PrevHash == nil {
		return common.Blake2b256{}, false
	}
	return *h.Body.PrevHash, true
}

func (h *ShelleyBlockHeader) BlockNumber() uint64 {
	return h.Body.BlockNumber
}

func (h *ShelleyBlockHeader) SlotNumber() uint64 {
	return h.Body.Slot
}

func (h *ShelleyBlockHeader) IssuerVkey() []byte {
	return h.Body.IssuerVkey
}

func (h *ShelleyBlockHeader) BlockBodySize() uint64 {
	return h.Body.BlockBodySize
}

// Era returns the era implied by the header's protocol major version
func (h *ShelleyBlockHeader) Era() common.Era {
	switch h.Body.ProtocolVersion.Major {
	case 0, 1, 2:
		return EraShelley
	case 3:
		return EraAllegra
	case 4:
		return EraMary
	case 5, 6:
		return EraAlonzo
	case 7, 8:
		return EraBabbage
	default:
		return EraConway
	}
}

func (h *ShelleyBlockHeader) Utxorpc() *utxorpc.BlockHeader {
	return &utxorpc.BlockHeader{
		Hash:   h.Hash().Bytes(),
		Height: h.BlockNumber(),
		Slot:   h.SlotNumber(),
	}
}

func NewShelleyBlockHeaderFromCbor(data []byte) (*ShelleyBlockHeader, error) {
	var shelleyBlockHeader ShelleyBlockHeader
	if _, err := cbor.Decode(data, &shelleyBlockHeader); err != nil {
		return nil, fmt.Errorf("Shelley block header decode error: %w", err)
	}
	return &shelleyBlockHeader, nil
}
