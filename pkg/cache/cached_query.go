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
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/hackhub/pkg/log"
)

// QueryFunc loads the value from the source of truth on a cache miss
type QueryFunc[T any] func(ctx context.Context, key string) (T, error)

// CachedQuery is a generic cache-aside reader. Values are stored as JSON.
// Errors from queryFunc are never cached.
type CachedQuery[T any] struct {
	cache     ICache
	prefix    string
	queryFunc QueryFunc[T]
	ttl       time.Duration
}

// NewCachedQuery creates a CachedQuery, ttl <= 0 means one hour
func NewCachedQuery[T any](cache ICache, prefix string, queryFunc QueryFunc[T], ttl time.Duration) *CachedQuery[T] {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedQuery[T]{
		cache:     cache,
		prefix:    prefix,
		queryFunc: queryFunc,
		ttl:       ttl,
	}
}

func (cq *CachedQuery[T]) cacheKey(key string) string {
	return cq.prefix + key
}

// Get returns the cached value for key or loads and caches it
func (cq *CachedQuery[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T
	cacheKey := cq.cacheKey(key)

	if cq.cache != nil {
		data, err := cq.cache.Get(ctx, cacheKey).Result()
		switch {
		case err == nil:
			var result T
			if err := sonic.UnmarshalString(data, &result); err == nil {
				return result, nil
			}
			log.Warnw("failed to unmarshal cached data", "key", cacheKey, "error", err)
		case !errors.Is(err, ErrCacheMiss):
			log.Warnw("cache get error", "key", cacheKey, "error", err)
		}
	}

	result, err := cq.queryFunc(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("load %s: %w", cacheKey, err)
	}

	if cq.cache != nil {
		data, err := sonic.MarshalString(result)
		if err != nil {
			log.Warnw("failed to marshal result for caching", "key", cacheKey, "error", err)
			return result, nil
		}
		if err := cq.cache.Set(ctx, cacheKey, data, cq.ttl).Err(); err != nil {
			log.Warnw("failed to cache result", "key", cacheKey, "error", err)
		}
	}
	return result, nil
}

// Invalidate removes the cached value for key
func (cq *CachedQuery[T]) Invalidate(ctx context.Context, key string) error {
	if cq.cache == nil {
		return nil
	}
	return cq.cache.Del(ctx, cq.cacheKey(key)).Err()
}
