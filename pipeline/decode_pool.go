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
	"sync"

	"github.com/blinklabs-io/headercursor/protocol/chainsync"
	pcommon "github.com/blinklabs-io/headercursor/protocol/common"
)

// HeaderItem is a header passing through a DecodePool.
type HeaderItem struct {
	// Sequence is the position of the header in the submitted batch.
	Sequence int
	Content  chainsync.HeaderContent
	// Header and Point are set when decoding succeeds, and Err otherwise.
	Header chainsync.MultiEraHeader
	Point  pcommon.Point
	Err    error
}

// DecodePool decodes batches of headers on multiple workers.
type DecodePool struct {
	reader     *chainsync.HeaderReader
	numWorkers int
}

// NewDecodePool creates a DecodePool. numWorkers defaults to 1 if <= 0.
func NewDecodePool(reader *chainsync.HeaderReader, numWorkers int) *DecodePool {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return &DecodePool{
		reader:     reader,
		numWorkers: numWorkers,
	}
}

// Decode decodes each header content and returns the items in input order. Decode
// failures are reported on the item. An error is returned only when the context is
// done before all headers were handed to a worker. All workers have exited when
// Decode returns.
func (p *DecodePool) Decode(
	ctx context.Context,
	contents []chainsync.HeaderContent,
) ([]*HeaderItem, error) {
	items := make([]*HeaderItem, len(contents))
	input := make(chan *HeaderItem)
	var wg sync.WaitGroup
	for range min(p.numWorkers, len(contents)) {
		wg.Add(1)
		go p.worker(&wg, input)
	}
	var err error
	for i, content := range contents {
		item := &HeaderItem{
			Sequence: i,
			Content:  content,
		}
		items[i] = item
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case input <- item:
		case <-ctx.Done():
			err = ctx.Err()
		}
		if err != nil {
			break
		}
	}
	close(input)
	wg.Wait()
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (p *DecodePool) worker(wg *sync.WaitGroup, input <-chan *HeaderItem) {
	defer wg.Done()
	for item := range input {
		item.Header, item.Point, item.Err = p.reader.DecodeCursor(item.Content)
	}
}
