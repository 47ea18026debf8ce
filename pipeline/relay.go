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

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blinklabs-io/headercursor/ledger/common"
	"github.com/blinklabs-io/headercursor/protocol/chainsync"
	pcommon "github.com/blinklabs-io/headercursor/protocol/common"
)

// Relay turns chain-sync events into command messages for downstream stages.
// Events are handled one at a time, so commands are delivered in the order the
// events were received.
type Relay struct {
	mu        sync.Mutex
	config    RelayConfig
	logger    *slog.Logger
	reader    *chainsync.HeaderReader
	pool      *DecodePool
	metrics   *relayMetrics
	cursor    pcommon.Point
	hasCursor bool
}

// NewRelay creates a Relay with the given options.
func NewRelay(opts ...RelayOption) *Relay {
	config := DefaultRelayConfig()
	for _, opt := range opts {
		opt(&config)
	}
	r := &Relay{
		config:  config,
		logger:  config.Logger,
		reader:  config.HeaderReader,
		metrics: newRelayMetrics(config.MetricsNamespace, config.MetricsRegisterer),
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if r.reader == nil {
		r.reader = chainsync.NewHeaderReader(chainsync.WithLogger(r.logger))
	}
	r.pool = NewDecodePool(r.reader, config.DecodeWorkers)
	return r
}

// OnRollForwardHeader decodes the header content, derives its chain position and sends
// a RollForward command to the plain output. Nothing is sent when the header fails to
// decode, and the *chainsync.DecodeError is returned as is.
func (r *Relay) OnRollForwardHeader(
	ctx context.Context,
	content chainsync.HeaderContent,
) (pcommon.Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	header, point, err := r.reader.DecodeCursor(content)
	if err != nil {
		r.decodeFailed(content, err)
		return pcommon.Point{}, err
	}
	if err := r.rollForward(ctx, header, point); err != nil {
		return pcommon.Point{}, err
	}
	return point, nil
}

// OnRollForwardHeaders handles a batch of headers received in order. Headers are decoded
// in parallel and RollForward commands are sent in input order. Processing stops at the
// first header that fails to decode. The returned points are those of the commands sent
// before the failure.
func (r *Relay) OnRollForwardHeaders(
	ctx context.Context,
	contents []chainsync.HeaderContent,
) ([]pcommon.Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.pool.Decode(ctx, contents)
	if err != nil {
		return nil, err
	}
	points := make([]pcommon.Point, 0, len(items))
	for _, item := range items {
		if item.Err != nil {
			r.decodeFailed(item.Content, item.Err)
			return points, item.Err
		}
		if err := r.rollForward(ctx, item.Header, item.Point); err != nil {
			return points, err
		}
		points = append(points, item.Point)
	}
	return points, nil
}

// OnRollForwardDecoded handles a header that the caller has already decoded. It behaves
// like OnRollForwardHeader without decoding the content again.
func (r *Relay) OnRollForwardDecoded(
	ctx context.Context,
	header chainsync.MultiEraHeader,
) (pcommon.Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	point := r.reader.ReadCursor(header)
	if err := r.rollForward(ctx, header, point); err != nil {
		return pcommon.Point{}, err
	}
	return point, nil
}

func (r *Relay) decodeFailed(content chainsync.HeaderContent, err error) {
	r.metrics.DecodeError()
	r.logger.Warn(
		"dropping undecodable header",
		"component", "pipeline",
		"variant", content.Variant,
		"error", err,
	)
}

func (r *Relay) rollForward(
	ctx context.Context,
	header chainsync.MultiEraHeader,
	point pcommon.Point,
) error {
	r.metrics.HeaderDecoded()
	r.logger.Debug(
		"roll forward",
		"component", "pipeline",
		"era", header.Era().Name,
		"slot", point.Slot,
		"hash", fmt.Sprintf("%x", point.Hash),
	)
	if port := r.config.PlainOutput; port != nil {
		if err := port.Send(ctx, RollForward(point)); err != nil {
			return err
		}
		r.metrics.CommandEmitted(familyPlain, CommandKindRollForward)
	}
	r.setCursor(point)
	return nil
}

// OnRollForwardBlock sends a RollForwardEx command carrying block to the prefetched output.
func (r *Relay) OnRollForwardBlock(ctx context.Context, block common.Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if port := r.config.PrefetchedOutput; port != nil {
		if err := port.Send(ctx, RollForwardEx(block)); err != nil {
			return err
		}
		r.metrics.CommandEmitted(familyPrefetched, CommandKindRollForward)
	}
	r.setCursor(pcommon.NewPoint(block.SlotNumber(), block.Hash().Bytes()))
	return nil
}

// OnRollBackward sends a rollback to point on each configured output, plain first.
func (r *Relay) OnRollBackward(ctx context.Context, point pcommon.Point) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger.Debug(
		"roll backward",
		"component", "pipeline",
		"slot", point.Slot,
		"hash", fmt.Sprintf("%x", point.Hash),
	)
	if port := r.config.PlainOutput; port != nil {
		if err := port.Send(ctx, RollBack(point)); err != nil {
			return err
		}
		r.metrics.CommandEmitted(familyPlain, CommandKindRollBack)
	}
	if port := r.config.PrefetchedOutput; port != nil {
		if err := port.Send(ctx, RollBackEx(point)); err != nil {
			return err
		}
		r.metrics.CommandEmitted(familyPrefetched, CommandKindRollBack)
	}
	r.setCursor(point)
	return nil
}

// OnRollBackwardToOrigin handles a rollback to the chain origin. Commands always carry
// a concrete point, so nothing is sent and the cursor is cleared.
func (r *Relay) OnRollBackwardToOrigin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger.Debug(
		"roll backward to origin",
		"component", "pipeline",
	)
	r.cursor = pcommon.Point{}
	r.hasCursor = false
}

// HandleMessage dispatches a decoded chain-sync message to OnRollForwardHeader,
// OnRollBackward or OnRollBackwardToOrigin.
func (r *Relay) HandleMessage(ctx context.Context, msg chainsync.Message) error {
	switch m := msg.(type) {
	case *chainsync.MsgRollForwardNtN:
		_, err := r.OnRollForwardHeader(ctx, m.WrappedHeader)
		return err
	case *chainsync.MsgRollBackward:
		if m.ToOrigin {
			r.OnRollBackwardToOrigin()
			return nil
		}
		return r.OnRollBackward(ctx, m.Point)
	default:
		return fmt.Errorf("unexpected message type: %T", msg)
	}
}

// Cursor returns the chain position of the most recent event. The second return value
// is false until an event has been handled, and again after a rollback to origin.
func (r *Relay) Cursor() (pcommon.Point, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursor, r.hasCursor
}

func (r *Relay) setCursor(point pcommon.Point) {
	r.cursor = point
	r.hasCursor = true
}
