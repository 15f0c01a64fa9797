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

package http

import "time"

// Http is the [http] section of the configuration
type Http struct {
	Host            string
	Port            int
	ContextPath     string
	BodyLimit       int // bytes
	AccessLog       bool
	ExposeMetrics   bool
	ReadTimeout     int // seconds
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	Auth            Auth
}

type Auth struct {
	SecretKey      string
	AccessExpire   time.Duration
	RefreshExpire  time.Duration
	RedisKeyPrefix string
}

// SetDefaults fills zero values
func (h *Http) SetDefaults() {
	if h.Host == "" {
		h.Host = "0.0.0.0"
	}
	if h.Port == 0 {
		h.Port = 8080
	}
	if h.ContextPath == "" {
		h.ContextPath = "/api/v1"
	}
	if h.BodyLimit == 0 {
		h.BodyLimit = 4 * 1024 * 1024
	}
	if h.ShutdownTimeout == 0 {
		h.ShutdownTimeout = 10
	}
	if h.Auth.AccessExpire == 0 {
		h.Auth.AccessExpire = 2 * time.Hour
	}
	if h.Auth.RefreshExpire == 0 {
		h.Auth.RefreshExpire = 7 * 24 * time.Hour
	}
	if h.Auth.RedisKeyPrefix == "" {
		h.Auth.RedisKeyPrefix = "hackhub:session:"
	}
}
