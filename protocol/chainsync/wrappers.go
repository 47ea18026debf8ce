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
	"github.com/blinklabs-io/headercursor/cbor"
	"github.com/blinklabs-io/headercursor/ledger/byron"
)

// ByronPrefix is the Byron sub-discriminator carried alongside Byron headers. Type is the
// Byron block type (0 for an EBB, 1 for a main block) and Size is the size of the block
type ByronPrefix struct {
	cbor.StructAsArray
	Type uint8
	Size uint64
}

// HeaderContent is the era-tagged header payload of a node-to-node RollForward message
type HeaderContent struct {
	Variant     uint8
	ByronPrefix *ByronPrefix
	Cbor        []byte
}

// NewHeaderContent returns header content for a post-Byron era
func NewHeaderContent(variant uint8, headerCbor []byte) HeaderContent {
	return HeaderContent{
		Variant: variant,
		Cbor:    headerCbor,
	}
}

// NewByronHeaderContent returns header content for a Byron header of the given block type
func NewByronHeaderContent(
	blockType uint8,
	blockSize uint64,
	headerCbor []byte,
) HeaderContent {
	return HeaderContent{
		Variant: byron.EraIdByron,
		ByronPrefix: &ByronPrefix{
			Type: blockType,
			Size: blockSize,
		},
		Cbor: headerCbor,
	}
}

func (c *HeaderContent) UnmarshalCBOR(data []byte) error {
	var tmpContent struct {
		cbor.StructAsArray
		Variant uint8
		Content cbor.RawMessage
	}
	if _, err := cbor.Decode(data, &tmpContent); err != nil {
		return err
	}
	c.Variant = tmpContent.Variant
	if c.Variant == byron.EraIdByron {
		var tmpByron struct {
			cbor.StructAsArray
			Prefix ByronPrefix
			Header cbor.WrappedCbor
		}
		if _, err := cbor.Decode(tmpContent.Content, &tmpByron); err != nil {
			return err
		}
		c.ByronPrefix = &tmpByron.Prefix
		c.Cbor = tmpByron.Header.Bytes()
		return nil
	}
	var header cbor.WrappedCbor
	if _, err := cbor.Decode(tmpContent.Content, &header); err != nil {
		return err
	}
	c.ByronPrefix = nil
	c.Cbor = header.Bytes()
	return nil
}

func (c HeaderContent) MarshalCBOR() ([]byte, error) {
	var content any = cbor.WrappedCbor(c.Cbor)
	if c.Variant == byron.EraIdByron {
		if c.ByronPrefix == nil {
			return nil, ErrMissingByronPrefix
		}
		content = []any{
			[]any{c.ByronPrefix.Type, c.ByronPrefix.Size},
			cbor.WrappedCbor(c.Cbor),
		}
	}
	return cbor.Encode([]any{c.Variant, content})
}
