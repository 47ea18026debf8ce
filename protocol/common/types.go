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

// The common package contains types used by multiple mini-protocols
package common

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/headercursor/cbor"
)

// ErrPointOrigin is returned when decoding an empty point, which does not name a header
var ErrPointOrigin = errors.New("point refers to chain origin")

// The Point type represents a point on the blockchain. It consists of a slot number and block hash
type Point struct {
	// Tells the CBOR decoder to convert to/from a struct and a CBOR array
	_    struct{} `cbor:",toarray"`
	Slot uint64
	Hash []byte
}

// NewPoint returns a Point object with the specified slot number and block hash
func NewPoint(slot uint64, blockHash []byte) Point {
	return Point{
		Slot: slot,
		Hash: blockHash,
	}
}

func (p Point) String() string {
	return fmt.Sprintf("%d.%x", p.Slot, p.Hash)
}

// UnmarshalCBOR decodes a Point. The wire encoding allows an empty list for the chain
// origin, which is rejected here
func (p *Point) UnmarshalCBOR(data []byte) error {
	var tmp []cbor.RawMessage
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	switch len(tmp) {
	case 0:
		return ErrPointOrigin
	case 2:
	default:
		return fmt.Errorf("unexpected point length: %d", len(tmp))
	}
	if _, err := cbor.Decode(tmp[0], &p.Slot); err != nil {
		return err
	}
	if _, err := cbor.Decode(tmp[1], &p.Hash); err != nil {
		return err
	}
	return nil
}

func (p Point) MarshalCBOR() ([]byte, error) {
	return cbor.Encode([]any{p.Slot, p.Hash})
}

// DecodePointOrOrigin decodes a point where the wire encoding allows the chain origin.
// The second return value is true for origin, in which case the returned Point is empty
func DecodePointOrOrigin(data []byte) (Point, bool, error) {
	var p Point
	if _, err := cbor.Decode(data, &p); err != nil {
		if errors.Is(err, ErrPointOrigin) {
			return Point{}, true, nil
		}
		return Point{}, false, err
	}
	return p, false, nil
}

// Tip represents a Point combined with a block number. A peer with an empty chain
// reports its tip at origin, which sets Origin and leaves Point empty
type Tip struct {
	Point       Point
	BlockNumber uint64
	Origin      bool
}

func (t *Tip) UnmarshalCBOR(data []byte) error {
	var tmp []cbor.RawMessage
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if len(tmp) != 2 {
		return fmt.Errorf("unexpected tip length: %d", len(tmp))
	}
	point, origin, err := DecodePointOrOrigin(tmp[0])
	if err != nil {
		return err
	}
	var blockNumber uint64
	if _, err := cbor.Decode(tmp[1], &blockNumber); err != nil {
		return err
	}
	*t = Tip{
		Point:       point,
		BlockNumber: blockNumber,
		Origin:      origin,
	}
	return nil
}

func (t Tip) MarshalCBOR() ([]byte, error) {
	var point any = t.Point
	if t.Origin {
		point = []any{}
	}
	return cbor.Encode([]any{point, t.BlockNumber})
}
