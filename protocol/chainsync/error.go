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
	"errors"
	"fmt"
)

// ErrMissingByronPrefix is returned when encoding Byron header content without its block type prefix
var ErrMissingByronPrefix = errors.New("byron header content is missing its prefix")

// DecodeError is returned when header bytes do not match the shape selected for their era tag.
// The header is never retried against a different shape
type DecodeError struct {
	Shape HeaderShape
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s header decode error: %s", e.Shape, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
