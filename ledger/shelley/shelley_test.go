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

package shelley_test

import (
	"bytes"
	"testing"

	"github.com/blinklabs-io/headercursor/cbor"
	"github.com/blinklabs-io/headercursor/internal/testdata"
	"github.com/blinklabs-io/headercursor/ledger/common"
	"github.com/blinklabs-io/headercursor/ledger/shelley"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShelleyBlockHeaderShelleyLayout(t *testing.T) {
	prevHash := bytes.Repeat([]byte{0xab}, 32)
	headerCbor := testdata.ShelleyHeaderCbor(4490511, 16156972, prevHash)
	header, err := shelley.NewShelleyBlockHeaderFromCbor(headerCbor)
	require.NoError(t, err)

	assert.Equal(t, uint64(4490511), header.BlockNumber())
	assert.Equal(t, uint64(16156972), header.SlotNumber())
	assert.Equal(t, uint64(1024), header.BlockBodySize())
	assert.Len(t, header.Body.VrfResults, 2)
	assert.Equal(t, uint32(3), header.Body.OpCert.SequenceNumber)
	assert.Equal(t, uint64(6), header.Body.ProtocolVersion.Major)
	assert.Equal(t, shelley.EraAlonzo, header.Era())
	prev, ok := header.PrevHash()
	require.True(t, ok)
	assert.Equal(t, prevHash, prev.Bytes())
	assert.Equal(t, headerCbor, header.Cbor())
	assert.Equal(t, common.Blake2b256Hash(headerCbor), header.Hash())
}

func TestShelleyBlockHeaderBabbageLayout(t *testing.T) {
	headerCbor := testdata.BabbageHeaderCbor(10883023, 135747596, bytes.Repeat([]byte{0xcd}, 32))
	header, err := shelley.NewShelleyBlockHeaderFromCbor(headerCbor)
	require.NoError(t, err)

	assert.Equal(t, uint64(10883023), header.BlockNumber())
	assert.Equal(t, uint64(135747596), header.SlotNumber())
	assert.Len(t, header.Body.VrfResults, 1)
	assert.Equal(t, uint32(250), header.Body.OpCert.KesPeriod)
	assert.Equal(t, shelley.EraConway, header.Era())
	assert.Equal(t, common.Blake2b256Hash(headerCbor), header.Hash())
}

func TestShelleyBlockHeaderGenesisPrevHash(t *testing.T) {
	header, err := shelley.NewShelleyBlockHeaderFromCbor(
		testdata.ShelleyHeaderCbor(0, 4492800, nil),
	)
	require.NoError(t, err)
	_, ok := header.PrevHash()
	assert.False(t, ok)
}

func TestShelleyBlockHeaderBadBodyLength(t *testing.T) {
	headerCbor, err := cbor.Encode([]any{
		[]any{uint64(1), uint64(2), uint64(3)},
		[]byte{0x01},
	})
	require.NoError(t, err)
	_, err = shelley.NewShelleyBlockHeaderFromCbor(headerCbor)
	assert.ErrorContains(t, err, "unexpected header body length: 3")
}

func TestShelleyBlockHeaderMalformed(t *testing.T) {
	for _, data := range [][]byte{
		{0xde, 0xad, 0xbe, 0xef, 0x00},
		{0xf6},
		{0xf7},
		{0xf6, 0x12, 0x34, 0x56, 0x78},
		{0xf7, 0x12, 0x34, 0x56, 0x78},
	} {
		_, err := shelley.NewShelleyBlockHeaderFromCbor(data)
		assert.Error(t, err, "header %x", data)
	}
}

func TestShelleyBlockHeaderEra(t *testing.T) {
	testDefs := []struct {
		major uint64
		era   common.Era
	}{
		{major: 2, era: shelley.EraShelley},
		{major: 3, era: shelley.EraAllegra},
		{major: 4, era: shelley.EraMary},
		{major: 5, era: shelley.EraAlonzo},
		{major: 6, era: shelley.EraAlonzo},
		{major: 7, era: shelley.EraBabbage},
		{major: 8, era: shelley.EraBabbage},
		{major: 9, era: shelley.EraConway},
		{major: 10, era: shelley.EraConway},
	}
	for _, testDef := range testDefs {
		header := shelley.ShelleyBlockHeader{}
		header.Body.ProtocolVersion.Major = testDef.major
		assert.Equal(t, testDef.era, header.Era(), "major version %d", testDef.major)
	}
}

func TestShelleyBlockHeaderUtxorpc(t *testing.T) {
	headerCbor := testdata.BabbageHeaderCbor(42, 1000, bytes.Repeat([]byte{0x01}, 32))
	header, err := shelley.NewShelleyBlockHeaderFromCbor(headerCbor)
	require.NoError(t, err)
	pb := header.Utxorpc()
	assert.Equal(t, uint64(1000), pb.Slot)
	assert.Equal(t, uint64(42), pb.Height)
	assert.Equal(t, header.Hash().Bytes(), pb.Hash)
}

func TestErasRegistered(t *testing.T) {
	for id := uint8(shelley.EraIdShelley); id <= shelley.EraIdConway; id++ {
		assert.NotNil(t, common.EraById(id), "era %d", id)
	}
}
