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

package common_test

import (
	"testing"

	"github.com/blinklabs-io/headercursor/ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEraRegistry(t *testing.T) {
	era := common.Era{Id: 200, Name: "Test"}
	assert.Nil(t, common.EraById(era.Id))
	common.RegisterEra(era)
	found := common.EraById(era.Id)
	require.NotNil(t, found)
	assert.Equal(t, era, *found)
	assert.Equal(t, "Test", found.String())

	eras := common.Eras()
	require.NotEmpty(t, eras)
	for i := 1; i < len(eras); i++ {
		assert.Less(t, eras[i-1].Id, eras[i].Id)
	}
	assert.Contains(t, eras, era)
}
