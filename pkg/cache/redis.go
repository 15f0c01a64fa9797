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


package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/go-arcade/hackhub/pkg/log"
	"github.com/redis/go-redis/v9"
)

const (
	ModeSingle   = "single"
	ModeSentinel = "sentinel"
)

// Redis is the [redis] section. Timeouts are whole seconds. In sentinel mode
// Address is a comma separated list of sentinels.
type Redis struct {
	Mode             string
	Address          string
	Password         string
	DB               int
	PoolSize         int
	UseTLS           bool
	MasterName       string
	SentinelUsername string
	SentinelPassword string
	DialTimeout      int
	ReadTimeout      int
	WriteTimeout     int
}

func (r Redis) options() (*redis.UniversalOptions, error) {
	opts := &redis.UniversalOptions{
		Password:     r.Password,
		DB:           r.DB,
		PoolSize:     r.PoolSize,
		DialTimeout:  time.Duration(r.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(r.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(r.WriteTimeout) * time.Second,
	}
	if r.UseTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	switch r.Mode {
	case ModeSingle, "":
		opts.Addrs = []string{r.Address}
	case ModeSentinel:
		if r.MasterName == "" {
			return nil, fmt.Errorf("redis sentinel mode needs masterName")
		}
		for _, addr := range strings.Split(r.Address, ",") {
			opts.Addrs = append(opts.Addrs, strings.TrimSpace(addr))
		}
		opts.MasterName = r.MasterName
		opts.SentinelUsername = r.SentinelUsername
		opts.SentinelPassword = r.SentinelPassword
	default:
		return nil, fmt.Errorf("unsupported redis mode %q", r.Mode)
	}
	return opts, nil
}

// NewRedisCmdable connects to a single node or a sentinel group and pings it.
func NewRedisCmdable(cfg Redis) (redis.UniversalClient, error) {
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	client := redis.NewUniversalClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Address, err)
	}
	log.Infow("redis connected", "mode", cfg.Mode, "address", cfg.Address)
	return client, nil
}
