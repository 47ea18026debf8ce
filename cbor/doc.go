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

// Package cbor provides CBOR encoding/decoding utilities for Cardano chain-sync data.
//
// This package wraps github.com/fxamacker/cbor/v2.
//
// # Key Types
//
// Embeddable types for struct encoding:
//   - StructAsArray: Embed to encode struct fields as CBOR array instead of map
//   - DecodeStoreCbor: Embed to preserve original CBOR bytes for hashing
//
// Utility types:
//   - RawMessage: Deferred decoding (like json.RawMessage)
//   - WrappedCbor: CBOR embedded in a byte string under tag 24, as used for headers
//
// # Preserving original bytes
//
// Header hashes are computed over the bytes received on the wire, so header types
// embed DecodeStoreCbor and decode through UnmarshalCbor:
//
//	type MyHeader struct {
//	    cbor.StructAsArray
//	    cbor.DecodeStoreCbor
//	    Field1 uint64
//	}
//
//	func (h *MyHeader) UnmarshalCBOR(data []byte) error {
//	    return h.UnmarshalCbor(data, h)
//	}
//
// Later, h.Cbor() returns the original bytes for hash computation. Re-encoding a
// decoded header is not guaranteed to reproduce them.
package cbor
