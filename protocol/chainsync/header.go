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
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/headercursor/cbor"
	"github.com/blinklabs-io/headercursor/ledger/byron"
	lcommon "github.com/blinklabs-io/headercursor/ledger/common"
	"github.com/blinklabs-io/headercursor/ledger/shelley"
	pcommon "github.com/blinklabs-io/headercursor/protocol/common"
)

// HeaderShape identifies which structural header format applies to a header payload
type HeaderShape uint8

const (
	HeaderShapeByronBoundary HeaderShape = iota
	HeaderShapeByron
	HeaderShapeUnified
)

func (s HeaderShape) String() string {
	switch s {
	case HeaderShapeByronBoundary:
		return "Byron boundary"
	case HeaderShapeByron:
		return "Byron"
	case HeaderShapeUnified:
		return "unified"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// HeaderShapeFor selects the header shape for the given content from its tags alone
func HeaderShapeFor(content HeaderContent) HeaderShape {
	if content.Variant != byron.EraIdByron {
		return HeaderShapeUnified
	}
	if content.ByronPrefix != nil &&
		content.ByronPrefix.Type == byron.BlockTypeByronEbb {
		return HeaderShapeByronBoundary
	}
	return HeaderShapeByron
}

// MultiEraHeader is a decoded header. Its implementations are ByronBoundaryHeader,
// ByronHeader and UnifiedHeader
type MultiEraHeader interface {
	Shape() HeaderShape
	Era() lcommon.Era
	Cbor() []byte
	isMultiEraHeader()
}

type ByronBoundaryHeader struct {
	byron.ByronEpochBoundaryBlockHeader
}

func (*ByronBoundaryHeader) Shape() HeaderShape { return HeaderShapeByronBoundary }
func (*ByronBoundaryHeader) isMultiEraHeader()  {}

type ByronHeader struct {
	byron.ByronMainBlockHeader
}

func (*ByronHeader) Shape() HeaderShape { return HeaderShapeByron }
func (*ByronHeader) isMultiEraHeader()  {}

// UnifiedHeader is a header from any era after Byron. Variant is the era tag it arrived with
type UnifiedHeader struct {
	shelley.ShelleyBlockHeader
	Variant uint8
}

func (*UnifiedHeader) Shape() HeaderShape { return HeaderShapeUnified }
func (*UnifiedHeader) isMultiEraHeader()  {}

// Era prefers the era tag the header arrived with and falls back to the protocol version
func (h *UnifiedHeader) Era() lcommon.Era {
	if era := lcommon.EraById(h.Variant); era != nil &&
		era.Id != byron.EraIdByron {
		return *era
	}
	return h.ShelleyBlockHeader.Era()
}

// DecodeFunc decodes data into the header value pointed to by dest
type DecodeFunc func(data []byte, dest any) error

// HeaderHasher computes the block hash for each header shape
type HeaderHasher interface {
	BoundaryHash(*byron.ByronEpochBoundaryBlockHeader) lcommon.Blake2b256
	MainHash(*byron.ByronMainBlockHeader) lcommon.Blake2b256
	UnifiedHash(*shelley.ShelleyBlockHeader) lcommon.Blake2b256
}

// SlotConverter converts Byron epoch-relative positions to absolute slots
type SlotConverter interface {
	EpochToSlot(epoch uint64) uint64
	AbsoluteSlot(epoch uint64, slot uint64) uint64
}

// LedgerHasher is the HeaderHasher backed by the ledger packages
type LedgerHasher struct{}

func (LedgerHasher) BoundaryHash(
	h *byron.ByronEpochBoundaryBlockHeader,
) lcommon.Blake2b256 {
	return h.Hash()
}

func (LedgerHasher) MainHash(h *byron.ByronMainBlockHeader) lcommon.Blake2b256 {
	return h.Hash()
}

func (LedgerHasher) UnifiedHash(h *shelley.ShelleyBlockHeader) lcommon.Blake2b256 {
	return h.Hash()
}

func cborDecodeFunc(data []byte, dest any) error {
	bytesRead, err := cbor.Decode(data, dest)
	if err != nil {
		return err
	}
	if bytesRead != len(data) {
		return fmt.Errorf(
			"unexpected trailing data: %d bytes",
			len(data)-bytesRead,
		)
	}
	return nil
}

// HeaderReader decodes header content and derives chain positions from decoded headers
type HeaderReader struct {
	decodeFunc    DecodeFunc
	hasher        HeaderHasher
	slotConverter SlotConverter
	logger        *slog.Logger
}

type HeaderReaderOptionFunc func(*HeaderReader)

// WithDecodeFunc specifies the function used to decode header bytes
func WithDecodeFunc(decodeFunc DecodeFunc) HeaderReaderOptionFunc {
	return func(r *HeaderReader) {
		r.decodeFunc = decodeFunc
	}
}

// WithHasher specifies the header hash implementation
func WithHasher(hasher HeaderHasher) HeaderReaderOptionFunc {
	return func(r *HeaderReader) {
		r.hasher = hasher
	}
}

// WithSlotConverter specifies the Byron slot conversion for the network
func WithSlotConverter(slotConverter SlotConverter) HeaderReaderOptionFunc {
	return func(r *HeaderReader) {
		r.slotConverter = slotConverter
	}
}

// WithLogger specifies the logger
func WithLogger(logger *slog.Logger) HeaderReaderOptionFunc {
	return func(r *HeaderReader) {
		r.logger = logger
	}
}

// NewHeaderReader returns a HeaderReader. Without options it decodes with the cbor package,
// hashes with the ledger packages and uses the mainnet Byron epoch length
func NewHeaderReader(opts ...HeaderReaderOptionFunc) *HeaderReader {
	r := &HeaderReader{
		decodeFunc:    cborDecodeFunc,
		hasher:        LedgerHasher{},
		slotConverter: byron.DefaultSlotConverter,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

var defaultHeaderReader = NewHeaderReader()

// NewMultiEraHeader decodes header content using the default HeaderReader
func NewMultiEraHeader(content HeaderContent) (MultiEraHeader, error) {
	return defaultHeaderReader.Decode(content)
}

// ReadCursor derives the chain position of a header using the default HeaderReader
func ReadCursor(header MultiEraHeader) pcommon.Point {
	return defaultHeaderReader.ReadCursor(header)
}

// Decode selects the header shape from the content tags and decodes the header bytes with it.
// Failures are returned as *DecodeError
func (r *HeaderReader) Decode(content HeaderContent) (MultiEraHeader, error) {
	shape := HeaderShapeFor(content)
	var ret MultiEraHeader
	var dest any
	switch shape {
	case HeaderShapeByronBoundary:
		h := &ByronBoundaryHeader{}
		ret, dest = h, &h.ByronEpochBoundaryBlockHeader
	case HeaderShapeByron:
		h := &ByronHeader{}
		ret, dest = h, &h.ByronMainBlockHeader
	case HeaderShapeUnified:
		h := &UnifiedHeader{Variant: content.Variant}
		ret, dest = h, &h.ShelleyBlockHeader
	}
	if err := r.decodeFunc(content.Cbor, dest); err != nil {
		r.logger.Debug(
			"failed to decode header",
			"component", "chainsync",
			"shape", shape.String(),
			"variant", content.Variant,
			"error", err,
		)
		return nil, &DecodeError{Shape: shape, Err: err}
	}
	return ret, nil
}

// ReadCursor returns the absolute slot and block hash identifying the header
func (r *HeaderReader) ReadCursor(header MultiEraHeader) pcommon.Point {
	switch h := header.(type) {
	case *ByronBoundaryHeader:
		hash := r.hasher.BoundaryHash(&h.ByronEpochBoundaryBlockHeader)
		slot := r.slotConverter.EpochToSlot(h.ConsensusData.Epoch)
		return pcommon.NewPoint(slot, hash.Bytes())
	case *ByronHeader:
		hash := r.hasher.MainHash(&h.ByronMainBlockHeader)
		slotId := h.ConsensusData.SlotId
		slot := r.slotConverter.AbsoluteSlot(slotId.Epoch, slotId.Slot)
		return pcommon.NewPoint(slot, hash.Bytes())
	case *UnifiedHeader:
		hash := r.hasher.UnifiedHash(&h.ShelleyBlockHeader)
		return pcommon.NewPoint(h.Body.Slot, hash.Bytes())
	default:
		panic(fmt.Sprintf("unsupported header type: %T", header))
	}
}

// DecodeCursor decodes header content and returns its chain position along with the header
func (r *HeaderReader) DecodeCursor(
	content HeaderContent,
) (MultiEraHeader, pcommon.Point, error) {
	header, err := r.Decode(content)
	if err != nil {
		return nil, pcommon.Point{}, err
	}
	return header, r.ReadCursor(header), nil
}
