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
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/hackhub/pkg/cache"
	"github.com/go-arcade/hackhub/pkg/database"
	"github.com/go-arcade/hackhub/pkg/http"
	"github.com/go-arcade/hackhub/pkg/log"
	"github.com/go-arcade/hackhub/pkg/sso"
	"github.com/spf13/viper"
)

const envPrefix = "HACKHUB"

type WorkflowConfig struct {
	// MinReasonLength is the minimum trimmed length of a role request reason
	MinReasonLength int
}

type TeamRequestConfig struct {
	TTL time.Duration
}

type JobConfig struct {
	Enable bool
	// ExpireSpec is a six field cron spec, seconds first
	ExpireSpec string
	LockTTL    time.Duration
}

type AppConfig struct {
	Log         log.Conf
	Http        http.Http
	Database    database.Database
	Redis       cache.Redis
	Workflow    WorkflowConfig
	TeamRequest TeamRequestConfig
	Job         JobConfig
	// SSO holds the external login providers keyed by name, e.g. [sso.github]
	SSO sso.Providers
}

var (
	cfg     atomic.Pointer[AppConfig]
	once    sync.Once
	loadErr error
)

// NewConf loads the file once per process and returns the loaded configuration
func NewConf(confPath string) (*AppConfig, error) {
	once.Do(func() {
		var c *AppConfig
		c, loadErr = LoadConfigFile(confPath, true)
		if loadErr == nil {
			cfg.Store(c)
		}
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return cfg.Load(), nil
}

// Current returns the latest configuration seen by the file watcher, or nil before NewConf
func Current() *AppConfig {
	return cfg.Load()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.path", "./logs")
	v.SetDefault("workflow.minReasonLength", 50)
	v.SetDefault("teamRequest.ttl", "72h")
	v.SetDefault("job.enable", true)
	v.SetDefault("job.expireSpec", "0 * * * * *")
	v.SetDefault("job.lockTTL", "50s")
	v.SetDefault("redis.mode", "single")
	v.SetDefault("redis.poolSize", 20)
}

// LoadConfigFile reads a toml file, environment variables prefixed with
// HACKHUB_ override keys, e.g. HACKHUB_DATABASE_MYSQL_PASSWORD.
func LoadConfigFile(confPath string, watch bool) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(confPath)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	c, err := unmarshal(v)
	if err != nil {
		return nil, err
	}

	if watch {
		v.OnConfigChange(func(e fsnotify.Event) {
			next, err := unmarshal(v)
			if err != nil {
				log.Errorw("failed to reload configuration", "file", e.Name, "error", err)
				return
			}
			cfg.Store(next)
			log.Infow("configuration reloaded, http and database changes need a restart", "file", e.Name)
		})
		v.WatchConfig()
	}

	log.Infow("config file loaded", "path", confPath)
	return c, nil
}

func unmarshal(v *viper.Viper) (*AppConfig, error) {
	var c AppConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	c.Http.SetDefaults()
	if c.Workflow.MinReasonLength < 0 {
		return nil, fmt.Errorf("workflow.minReasonLength must not be negative")
	}
	if c.TeamRequest.TTL <= 0 {
		return nil, fmt.Errorf("teamRequest.ttl must be positive")
	}
	return &c, nil
}
