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

// Package job runs the periodic maintenance tasks of the engine.
package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-arcade/hackhub/internal/engine/config"
	"github.com/go-arcade/hackhub/pkg/cache"
	"github.com/go-arcade/hackhub/pkg/log"
	"github.com/go-arcade/hackhub/pkg/metrics"
	"github.com/robfig/cron"
	"go.uber.org/zap"
)

const (
	// ExpireTeamRequests is the job name used in logs, metrics and the lock key
	ExpireTeamRequests = "expire-team-requests"

	lockPrefix     = "hackhub:job:"
	defaultSpec    = "0 * * * * *"
	defaultLockTTL = 50 * time.Second
)

// Expirer deletes team requests whose expiry has passed
type Expirer interface {
	ExpireTeamRequests(ctx context.Context) (int64, error)
}

// Scheduler runs the sweeper on a cron schedule. Every run takes a cache
// lease first so only one replica sweeps per tick.
type Scheduler struct {
	conf    config.JobConfig
	cron    *cron.Cron
	expirer Expirer
	cache   cache.ICache
	metrics *metrics.JobMetrics
}

func NewScheduler(conf config.JobConfig, expirer Expirer, c cache.ICache, m *metrics.Server) *Scheduler {
	if conf.ExpireSpec == "" {
		conf.ExpireSpec = defaultSpec
	}
	if conf.LockTTL <= 0 {
		conf.LockTTL = defaultLockTTL
	}
	cr := cron.New()
	cr.ErrorLog = zap.NewStdLog(log.GetLogger().Desugar())

	var jm *metrics.JobMetrics
	if m != nil {
		jm = m.Jobs
	}
	return &Scheduler{
		conf:    conf,
		cron:    cr,
		expirer: expirer,
		cache:   c,
		metrics: jm,
	}
}

// Start registers the jobs and starts the cron loop. Disabled schedulers do nothing.
func (s *Scheduler) Start() error {
	if !s.conf.Enable {
		log.Info("scheduled jobs disabled")
		return nil
	}
	if err := s.cron.AddFunc(s.conf.ExpireSpec, s.expireTick); err != nil {
		return fmt.Errorf("add job %s with spec %q: %w", ExpireTeamRequests, s.conf.ExpireSpec, err)
	}
	s.cron.Start()
	log.Infow("cron scheduler started", "job", ExpireTeamRequests, "spec", s.conf.ExpireSpec)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) expireTick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.conf.LockTTL)
	defer cancel()
	if _, err := s.Sweep(ctx); err != nil && !errors.Is(err, cache.ErrLockHeld) {
		log.Errorw("sweep expired team requests failed", "error", err)
	}
}

// Sweep runs the expiry once under the job lease. It returns
// cache.ErrLockHeld when another replica is sweeping.
func (s *Scheduler) Sweep(ctx context.Context) (int64, error) {
	lock := cache.NewLock(s.cache, lockPrefix+ExpireTeamRequests, s.conf.LockTTL)
	if err := lock.Acquire(ctx); err != nil {
		if errors.Is(err, cache.ErrLockHeld) {
			s.metrics.RecordSkip(ExpireTeamRequests)
			log.Debugw("job skipped, lock held elsewhere", "job", ExpireTeamRequests)
		}
		return 0, err
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			log.Warnw("release job lock failed", "job", ExpireTeamRequests, "error", err)
		}
	}()

	start := time.Now()
	n, err := s.expirer.ExpireTeamRequests(ctx)
	s.metrics.RecordRun(ExpireTeamRequests, start, err)
	if err != nil {
		return 0, err
	}
	log.Infow("expired team requests swept", "deleted", n, "took", time.Since(start))
	return n, nil
}
