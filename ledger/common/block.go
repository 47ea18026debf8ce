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

package common

// BlockHeader is the subset of header accessors shared by all eras
type BlockHeader interface {
	Hash() Blake2b256
	SlotNumber() uint64
	BlockNumber() uint64
	Era() Era
	Cbor() []byte
}

// Block is a fully resolved block. It is carried through the pipeline as an opaque value
type Block interface {
	Hash() Blake2b256
	SlotNumber() uint64
	Era() Era
	Cbor() []byte
}
