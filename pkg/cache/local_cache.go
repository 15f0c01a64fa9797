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
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// expiry header: unix nanos, 0 means no expiration
const headerLen = 8

// LocalCache is an in-process ICache backed by VictoriaMetrics fastcache.
// Expiration is stored in front of each value and checked lazily on read.
type LocalCache struct {
	cache *fastcache.Cache
	mu    sync.Mutex // serializes SetNX and DelIfEqual
	now   func() time.Time
}

// NewLocalCache creates a LocalCache, maxBytes <= 0 means 16MB
func NewLocalCache(maxBytes int) *LocalCache {
	if maxBytes <= 0 {
		maxBytes = 16 * 1024 * 1024
	}
	return &LocalCache{
		cache: fastcache.New(maxBytes),
		now:   time.Now,
	}
}

func (l *LocalCache) load(key string) ([]byte, bool) {
	raw, ok := l.cache.HasGet(nil, []byte(key))
	if !ok || len(raw) < headerLen {
		return nil, false
	}
	exp := int64(binary.BigEndian.Uint64(raw[:headerLen]))
	if exp != 0 && l.now().UnixNano() >= exp {
		l.cache.Del([]byte(key))
		return nil, false
	}
	return raw[headerLen:], true
}

func (l *LocalCache) store(key string, value any, expiration time.Duration) {
	var exp int64
	if expiration > 0 {
		exp = l.now().Add(expiration).UnixNano()
	}
	payload := encode(value)
	buf := make([]byte, headerLen+len(payload))
	binary.BigEndian.PutUint64(buf[:headerLen], uint64(exp))
	copy(buf[headerLen:], payload)
	l.cache.Set([]byte(key), buf)
}

func (l *LocalCache) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	v, ok := l.load(key)
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(v))
	return cmd
}

func (l *LocalCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)
	l.store(key, value, expiration)
	cmd.SetVal("OK")
	return cmd
}

func (l *LocalCache) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx, "setnx", key)
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.load(key); ok {
		cmd.SetVal(false)
		return cmd
	}
	l.store(key, value, expiration)
	cmd.SetVal(true)
	return cmd
}

func (l *LocalCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "del")
	var n int64
	for _, key := range keys {
		if _, ok := l.load(key); ok {
			n++
		}
		l.cache.Del([]byte(key))
	}
	cmd.SetVal(n)
	return cmd
}

func (l *LocalCache) DelIfEqual(ctx context.Context, key, value string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "del_if_equal", key)
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.load(key)
	if !ok || string(v) != value {
		cmd.SetVal(0)
		return cmd
	}
	l.cache.Del([]byte(key))
	cmd.SetVal(1)
	return cmd
}

func (l *LocalCache) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "exists")
	var n int64
	for _, key := range keys {
		if _, ok := l.load(key); ok {
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

// encode converts a value the way go-redis would store it, structs become JSON
func encode(value any) []byte {
	switch v := value.(type) {
	case string:
		return []byte(v)
	case []byte:
		return v
	case nil:
		return nil
	default:
		data, err := sonic.Marshal(v)
		if err != nil {
			return nil
		}
		return data
	}
}
