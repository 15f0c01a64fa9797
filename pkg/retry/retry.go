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

// Package retry runs an operation again while its error says a later attempt may succeed.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

type Func func(ctx context.Context) error

// RetryIf reports whether err is worth another attempt
type RetryIf func(error) bool

// Backoff returns the wait before retry number attempt, counting from 0
type Backoff func(attempt int) time.Duration

func Fixed(interval time.Duration) Backoff {
	return func(int) time.Duration { return interval }
}

// Exponential doubles base on every attempt, capped at max when max > 0
func Exponential(base, max time.Duration) Backoff {
	return func(attempt int) time.Duration {
		d := base << attempt
		if d <= 0 || (max > 0 && d > max) {
			return max
		}
		return d
	}
}

type config struct {
	attempts int
	backoff  Backoff
	jitter   bool
	retryIf  RetryIf
}

type Option func(*config)

// WithMaxAttempts counts the first attempt too
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.attempts = n
		}
	}
}

func WithBackoff(b Backoff) Option {
	return func(c *config) {
		if b != nil {
			c.backoff = b
		}
	}
}

// WithJitter spreads each wait uniformly over [0, wait)
func WithJitter() Option {
	return func(c *config) { c.jitter = true }
}

func WithRetryIf(fn RetryIf) Option {
	return func(c *config) {
		if fn != nil {
			c.retryIf = fn
		}
	}
}

// Do calls fn until it succeeds, returns an error retryIf rejects, runs out of
// attempts or ctx ends. The last error from fn is returned.
func Do(ctx context.Context, fn Func, opts ...Option) error {
	cfg := &config{
		attempts: 3,
		backoff:  Fixed(100 * time.Millisecond),
		retryIf:  IsRetryableError,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var err error
	for attempt := 0; attempt < cfg.attempts; attempt++ {
		if err = fn(ctx); err == nil || !cfg.retryIf(err) {
			return err
		}
		if attempt == cfg.attempts-1 {
			break
		}

		wait := cfg.backoff(attempt)
		if cfg.jitter && wait > 0 {
			wait = time.Duration(rand.Int64N(int64(wait)))
		}
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return err
		}
	}
	return err
}

// IsRetryableError retries everything but context cancellation
func IsRetryableError(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
