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
	"github.com/go-arcade/hackhub/internal/engine/config"
	"github.com/go-arcade/hackhub/internal/engine/repo"
	"github.com/go-arcade/hackhub/pkg/cache"
	"github.com/go-arcade/hackhub/pkg/http"
	"github.com/go-arcade/hackhub/pkg/http/jwt"
	"github.com/go-arcade/hackhub/pkg/metrics"
	"github.com/go-arcade/hackhub/pkg/sso"
	"github.com/google/wire"
)

// ProviderSet 提供服务层相关的依赖
var ProviderSet = wire.NewSet(
	ProvideSessionStore,
	ProvideServices,
)

// ProvideSessionStore 会话保存在 Redis 中，有效期与 access_token 一致
func ProvideSessionStore(c cache.ICache, conf *http.Http) *jwt.SessionStore {
	return jwt.NewSessionStore(c, conf.Auth.RedisKeyPrefix, conf.Auth.AccessExpire)
}

// ProvideServices 提供统一的 Services 实例
func ProvideServices(
	appConf *config.AppConfig,
	repos *repo.Repositories,
	sessions *jwt.SessionStore,
	local *cache.LocalCache,
	idp *sso.Registry,
	m *metrics.Server,
) *Services {
	return NewServices(appConf, repos, sessions, local, idp, m)
}
