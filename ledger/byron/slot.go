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

// ByronSlotsPerEpoch is the mainnet Byron epoch length (10k with k=2160)
const ByronSlotsPerEpoch = 21600

var DefaultSlotConverter = EpochSlotConverter{SlotsPerEpoch: ByronSlotsPerEpoch}

// EpochSlotConverter converts Byron epoch-relative positions to absolute slots for a network
// with a fixed Byron epoch length
type EpochSlotConverter struct {
	SlotsPerEpoch uint64
}

// NewEpochSlotConverter returns a converter for a network with the given security parameter
func NewEpochSlotConverter(securityParam uint64) EpochSlotConverter {
	return EpochSlotConverter{SlotsPerEpoch: securityParam * 10}
}

// EpochToSlot returns the absolute slot of the first slot in the epoch
func (c EpochSlotConverter) EpochToSlot(epoch uint64) uint64 {
	return epoch * c.SlotsPerEpoch
}

// AbsoluteSlot returns the absolute slot for a slot within an epoch
func (c EpochSlotConverter) AbsoluteSlot(epoch uint64, slot uint64) uint64 {
	return c.EpochToSlot(epoch) + slot
}
