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

import (
	"sort"
	"sync"
)

type Era struct {
	Id   uint8
	Name string
}

func (e Era) String() string {
	return e.Name
}

var (
	eras      = map[uint8]Era{}
	erasMutex sync.RWMutex
)

// RegisterEra makes an era available to EraById. Each ledger package registers its own eras
func RegisterEra(era Era) {
	erasMutex.Lock()
	defer erasMutex.Unlock()
	eras[era.Id] = era
}

// EraById returns the registered era with the given ID, or nil if it is not known
func EraById(eraId uint8) *Era {
	erasMutex.RLock()
	defer erasMutex.RUnlock()
	era, ok := eras[eraId]
	if !ok {
		return nil
	}
	return &era
}

// Eras returns all registered eras ordered by ID
func Eras() []Era {
	erasMutex.RLock()
	defer erasMutex.RUnlock()
	ret := make([]Era, 0, len(eras))
	for _, era := range eras {
		ret = append(ret, era)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Id < ret[j].Id })
	return ret
}
