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

package service

import (
	"testing"
	"time"

	"github.com/go-arcade/hackhub/internal/engine/config"
	"github.com/go-arcade/hackhub/internal/engine/repo"
	"github.com/go-arcade/hackhub/internal/engine/testutil"
	"github.com/go-arcade/hackhub/pkg/cache"
	"github.com/go-arcade/hackhub/pkg/database"
	"github.com/go-arcade/hackhub/pkg/http"
	"github.com/go-arcade/hackhub/pkg/http/jwt"
	"github.com/go-arcade/hackhub/pkg/metrics"
	"github.com/go-arcade/hackhub/pkg/sso"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	repos    *repo.Repositories
	svc      *Services
	metrics  *metrics.Server
	sessions *jwt.SessionStore
}

func testConf() *config.AppConfig {
	return &config.AppConfig{
		Http: http.Http{Auth: http.Auth{
			SecretKey:      "test-secret",
			AccessExpire:   time.Hour,
			RefreshExpire:  24 * time.Hour,
			RedisKeyPrefix: "test:session:",
		}},
		Workflow:    config.WorkflowConfig{MinReasonLength: 50},
		TeamRequest: config.TeamRequestConfig{TTL: 72 * time.Hour},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithProviders(t, nil)
}

func newFixtureWithProviders(t *testing.T, providers sso.Providers) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	repos := repo.NewRepositories(database.NewGormDB(db))
	local := cache.NewLocalCache(0)
	m := metrics.NewServer()
	conf := testConf()
	sessions := jwt.NewSessionStore(local, conf.Http.Auth.RedisKeyPrefix, conf.Http.Auth.AccessExpire)

	svc := NewServices(conf, repos, sessions, local, sso.NewRegistry(providers, local), m)
	svc.User.hashCost = bcrypt.MinCost
	return &fixture{db: db, repos: repos, svc: svc, metrics: m, sessions: sessions}
}

func (f *fixture) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Table(table).Count(&n).Error)
	return n
}
