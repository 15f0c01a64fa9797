// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package id

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUUID(t *testing.T) {
	a := GetUUID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, GetUUID())
}

func TestGetUlid_Ordered(t *testing.T) {
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = GetUlid()
	}
	assert.Len(t, ids[0], 26)
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestShortId(t *testing.T) {
	a, b := ShortId(), ShortId()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
