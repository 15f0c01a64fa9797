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

package sso

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sort"
	"time"

	"github.com/go-arcade/hackhub/pkg/cache"
	"github.com/google/wire"
)

const (
	statePrefix = "hackhub:oauth:state:"
	stateTTL    = 10 * time.Minute
)

// ErrInvalidState means the callback state was never issued, was already used or expired
var ErrInvalidState = errors.New("invalid oauth state")

var ProviderSet = wire.NewSet(ProvideRegistry)

func ProvideRegistry(conf Providers, states cache.ICache) *Registry {
	return NewRegistry(conf, states)
}

// Registry holds the configured providers and the pending login states.
// States live in the shared cache so a callback may land on any replica.
type Registry struct {
	providers map[string]*Provider
	states    cache.ICache
}

func NewRegistry(conf Providers, states cache.ICache) *Registry {
	r := &Registry{providers: make(map[string]*Provider, len(conf)), states: states}
	for name, c := range conf {
		r.providers[name] = NewProvider(name, c)
	}
	return r
}

func (r *Registry) Provider(name string) (*Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewState issues a one-time state bound to provider
func (r *Registry) NewState(ctx context.Context, provider string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.RawURLEncoding.EncodeToString(b)
	if err := r.states.Set(ctx, statePrefix+state, provider, stateTTL).Err(); err != nil {
		return "", err
	}
	return state, nil
}

// TakeState consumes state and checks it was issued for provider
func (r *Registry) TakeState(ctx context.Context, provider, state string) error {
	if state == "" {
		return ErrInvalidState
	}
	key := statePrefix + state
	issuedFor, err := r.states.Get(ctx, key).Result()
	if errors.Is(err, cache.ErrCacheMiss) {
		return ErrInvalidState
	}
	if err != nil {
		return err
	}
	if err := r.states.Del(ctx, key).Err(); err != nil {
		return err
	}
	if issuedFor != provider {
		return ErrInvalidState
	}
	return nil
}
