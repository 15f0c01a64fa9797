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

package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/hackhub/pkg/cache"
)

// ErrNoSession means the user logged out or the session expired
var ErrNoSession = errors.New("session not found")

// Session is the login record kept in the cache, one per user.
type Session struct {
	UserId      string    `json:"userId"`
	AccessToken string    `json:"accessToken"`
	LoginAt     time.Time `json:"loginAt"`
}

type SessionStore struct {
	cache  cache.ICache
	prefix string
	ttl    time.Duration
}

func NewSessionStore(c cache.ICache, prefix string, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: c, prefix: prefix, ttl: ttl}
}

func (s *SessionStore) key(userId string) string {
	return s.prefix + userId
}

// Save replaces the user's session, a newer login invalidates older tokens
func (s *SessionStore) Save(ctx context.Context, sess Session) error {
	data, err := sonic.Marshal(sess)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.key(sess.UserId), data, s.ttl).Err()
}

func (s *SessionStore) Load(ctx context.Context, userId string) (*Session, error) {
	data, err := s.cache.Get(ctx, s.key(userId)).Bytes()
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := sonic.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, userId string) error {
	return s.cache.Del(ctx, s.key(userId)).Err()
}
