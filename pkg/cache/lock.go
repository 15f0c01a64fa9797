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
	"time"

	"github.com/google/uuid"
)

// ErrLockHeld is returned when another holder owns the lock
var ErrLockHeld = errors.New("lock is held by another owner")

// Lock is a best-effort mutual exclusion lease stored in the cache.
// It keeps scheduled jobs from running on several replicas at once.
type Lock struct {
	cache ICache
	key   string
	token string
	ttl   time.Duration
}

func NewLock(cache ICache, key string, ttl time.Duration) *Lock {
	return &Lock{
		cache: cache,
		key:   key,
		token: uuid.NewString(),
		ttl:   ttl,
	}
}

// Acquire takes the lease or returns ErrLockHeld
func (l *Lock) Acquire(ctx context.Context) error {
	ok, err := l.cache.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrLockHeld
	}
	return nil
}

// Release drops the lease if this holder still owns it. The compare and the
// delete are one atomic step, so an expired lease never removes the lease of
// the replica that took over.
func (l *Lock) Release(ctx context.Context) error {
	return l.cache.DelIfEqual(ctx, l.key, l.token).Err()
}
