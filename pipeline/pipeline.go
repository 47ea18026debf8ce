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

// Package pipeline carries chain movement from a chain-sync session to downstream
// processing stages as command messages.
package pipeline

import (
	"context"
)

// Message is the envelope in which commands travel between stages.
type Message[T any] struct {
	Payload T
}

// NewMessage wraps a payload in a Message.
func NewMessage[T any](payload T) Message[T] {
	return Message[T]{Payload: payload}
}

// OutputPort is the sending end of a connection to a downstream stage.
type OutputPort[T any] struct {
	ch chan Message[T]
}

// NewOutputPort creates an OutputPort with the given buffer size. A size of 0 makes
// every Send wait for the receiver.
func NewOutputPort[T any](size int) *OutputPort[T] {
	if size < 0 {
		size = 0
	}
	return &OutputPort[T]{
		ch: make(chan Message[T], size),
	}
}

// Send delivers a message to the downstream stage. It blocks until the message is
// accepted or the context is done, in which case the message is not delivered.
func (p *OutputPort[T]) Send(ctx context.Context, msg Message[T]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Chan returns the channel the downstream stage receives from.
func (p *OutputPort[T]) Chan() <-chan Message[T] {
	return p.ch
}

// Close closes the port. No more messages may be sent after Close.
func (p *OutputPort[T]) Close() {
	close(p.ch)
}
