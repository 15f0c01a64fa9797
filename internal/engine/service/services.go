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
	"github.com/go-arcade/hackhub/pkg/http/jwt"
	"github.com/go-arcade/hackhub/pkg/metrics"
	"github.com/go-arcade/hackhub/pkg/sso"
)

// Services 统一管理所有 service
type Services struct {
	User        *UserService
	RoleRequest *RoleRequestService
	TeamRequest *TeamRequestService
	Team        *TeamService
}

// NewServices 初始化所有 service
func NewServices(
	appConf *config.AppConfig,
	repos *repo.Repositories,
	sessions *jwt.SessionStore,
	local *cache.LocalCache,
	idp *sso.Registry,
	m *metrics.Server,
) *Services {
	return &Services{
		User:        NewUserService(repos, sessions, appConf.Http.Auth, local, idp),
		RoleRequest: NewRoleRequestService(repos, appConf.Workflow, m.Workflow),
		TeamRequest: NewTeamRequestService(repos, appConf.TeamRequest, m.Workflow),
		Team:        NewTeamService(repos),
	}
}
