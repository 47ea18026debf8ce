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

// Package testdata provides shared header fixtures for tests
package testdata

import (
	"bytes"
	_ "embed"
	"encoding/hex"
	"strings"

	"github.com/blinklabs-io/headercursor/cbor"
)

// Byron main block header from mainnet
// https://cexplorer.io/block/1451a0dbf16cfeddf4991a838961df1b08a68f43a19c0eb3b36cc4029c77a2d8
// Slot: 4471207 (epoch 207, slot 7)
// Hash: 1451a0dbf16cfeddf4991a838961df1b08a68f43a19c0eb3b36cc4029c77a2d8
//
//go:embed byron_main_header.hex
var ByronMainHeaderHex string

const (
	ByronMainHeaderSlot = 4471207
	ByronMainHeaderHash = "1451a0dbf16cfeddf4991a838961df1b08a68f43a19c0eb3b36cc4029c77a2d8"
)

// MustDecodeHex decodes a hex string to bytes, panicking on error
func MustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		panic(err)
	}
	return b
}

func mustEncode(v any) []byte {
	data, err := cbor.Encode(v)
	if err != nil {
		panic(err)
	}
	return data
}

func filler(b byte, size int) []byte {
	return bytes.Repeat([]byte{b}, size)
}

func prevHashValue(prevHash []byte) any {
	if prevHash == nil {
		return nil
	}
	return prevHash
}

// ByronEbbHeaderCbor builds a structurally valid Byron epoch boundary block header
func ByronEbbHeaderCbor(epoch uint64) []byte {
	return mustEncode([]any{
		uint32(764824073),
		filler(0x11, 32),
		filler(0x22, 32),
		[]any{
			epoch,
			[]any{epoch * 21600},
		},
		[]any{map[uint]any{}},
	})
}

// ByronMainHeaderCbor builds a structurally valid Byron main block header
func ByronMainHeaderCbor(epoch uint64, slot uint64) []byte {
	return mustEncode([]any{
		uint32(764824073),
		filler(0x11, 32),
		[]any{
			uint64(0),
			[]any{uint64(0), filler(0x33, 32)},
			[]any{filler(0x34, 32), filler(0x35, 32), filler(0x36, 32)},
			filler(0x37, 32),
		},
		[]any{
			[]any{epoch, slot},
			filler(0x44, 64),
			[]any{epoch*21600 + slot},
			[]any{uint64(2), []any{filler(0x45, 64), filler(0x46, 64)}},
		},
		[]any{
			[]any{uint16(0), uint16(2), uint8(0)},
			[]any{"cardano-sl", uint32(1)},
			map[uint]any{},
			filler(0x55, 32),
		},
	})
}

// ShelleyHeaderCbor builds a header using the Shelley through Alonzo body layout. A nil
// prevHash is encoded as null, as used by the first block after genesis
func ShelleyHeaderCbor(blockNumber uint64, slot uint64, prevHash []byte) []byte {
	return mustEncode([]any{
		[]any{
			blockNumber,
			slot,
			prevHashValue(prevHash),
			filler(0x01, 32),
			filler(0x02, 32),
			[]any{filler(0x03, 64), filler(0x04, 80)},
			[]any{filler(0x05, 64), filler(0x06, 80)},
			uint64(1024),
			filler(0x07, 32),
			filler(0x08, 32),
			uint32(3),
			uint32(250),
			filler(0x09, 64),
			uint64(6),
			uint64(0),
		},
		filler(0x0a, 448),
	})
}

// BabbageHeaderCbor builds a header using the Babbage and later body layout
func BabbageHeaderCbor(blockNumber uint64, slot uint64, prevHash []byte) []byte {
	return mustEncode([]any{
		[]any{
			blockNumber,
			slot,
			prevHashValue(prevHash),
			filler(0x01, 32),
			filler(0x02, 32),
			[]any{filler(0x03, 64), filler(0x04, 80)},
			uint64(2048),
			filler(0x07, 32),
			[]any{filler(0x08, 32), uint32(3), uint32(250), filler(0x09, 64)},
			[]any{uint64(9), uint64(0)},
		},
		filler(0x0a, 448),
	})
}
