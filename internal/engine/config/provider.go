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

package config

import (
	"github.com/go-arcade/hackhub/pkg/cache"
	"github.com/go-arcade/hackhub/pkg/database"
	"github.com/go-arcade/hackhub/pkg/http"
	"github.com/go-arcade/hackhub/pkg/log"
	"github.com/go-arcade/hackhub/pkg/sso"
	"github.com/google/wire"
)

// ProviderSet 提供配置层相关的依赖
var ProviderSet = wire.NewSet(
	ProvideConf,
	ProvideHttpConfig,
	ProvideLogConfig,
	ProvideDatabaseConfig,
	ProvideRedisConfig,
	ProvideWorkflowConfig,
	ProvideTeamRequestConfig,
	ProvideJobConfig,
	ProvideSSOConfig,
)

// ProvideConf 提供应用配置
func ProvideConf(configPath string) (*AppConfig, error) {
	return NewConf(configPath)
}

func ProvideHttpConfig(appConf *AppConfig) *http.Http {
	return &appConf.Http
}

func ProvideLogConfig(appConf *AppConfig) *log.Conf {
	return &appConf.Log
}

func ProvideDatabaseConfig(appConf *AppConfig) database.Database {
	return appConf.Database
}

func ProvideRedisConfig(appConf *AppConfig) cache.Redis {
	return appConf.Redis
}

func ProvideWorkflowConfig(appConf *AppConfig) WorkflowConfig {
	return appConf.Workflow
}

func ProvideTeamRequestConfig(appConf *AppConfig) TeamRequestConfig {
	return appConf.TeamRequest
}

func ProvideJobConfig(appConf *AppConfig) JobConfig {
	return appConf.Job
}

func ProvideSSOConfig(appConf *AppConfig) sso.Providers {
	return appConf.SSO
}
