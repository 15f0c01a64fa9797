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

package cache

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

// defaultLocalMaxBytes is the default local cache size (32MB)
const defaultLocalMaxBytes = 32 * 1024 * 1024

// ProviderSet wires the shared Redis cache and the process-local fastcache
var ProviderSet = wire.NewSet(
	ProvideRedisCmdable,
	ProvideICache,
	ProvideLocalCache,
)

func ProvideRedisCmdable(conf Redis) (redis.UniversalClient, func(), error) {
	client, err := NewRedisCmdable(conf)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvideICache backs sessions, oauth states and the sweeper lock
func ProvideICache(client redis.UniversalClient) ICache {
	return NewRedisCache(client)
}

// ProvideLocalCache holds reference data such as roles
func ProvideLocalCache() *LocalCache {
	return NewLocalCache(defaultLocalMaxBytes)
}
