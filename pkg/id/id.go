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


// Package id generates the identifiers stored by hackhub: uuids for users,
// teams and hackathons, ulids for role requests and short codes for invites.
package id

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

func GetUUID() string {
	return uuid.NewString()
}

// GetUlid returns a lexically time-ordered id, monotonic within a millisecond,
// so listing by request id follows submission order.
func GetUlid() string {
	return ulid.Make().String()
}

// ShortId returns a short url-safe code, "" if generation fails
func ShortId() string {
	code, err := shortid.Generate()
	if err != nil {
		return ""
	}
	return code
}
