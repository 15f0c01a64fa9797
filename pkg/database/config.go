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


package database

import (
	"fmt"
	"net"
	"time"

	driver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	dataTablePrefix = "t_"

	defaultMaxLifetime = 300 * time.Second
	defaultMaxIdleTime = 60 * time.Second
)

// Source is one MySQL endpoint, the primary or a replica.
type Source struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// DSN renders the source with the driver's own formatter, which is the
// format gorm's mysql dialector parses back.
func (s Source) DSN() string {
	port := s.Port
	if port == "" {
		port = "3306"
	}
	cfg := driver.NewConfig()
	cfg.User = s.User
	cfg.Passwd = s.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(s.Host, port)
	cfg.DBName = s.DBName
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func (s Source) validate() error {
	if s.Host == "" || s.User == "" || s.DBName == "" {
		return fmt.Errorf("database source %q: host, user and dbname are required", s.Host)
	}
	return nil
}

// MySQLConfig is the primary source plus optional read replicas. Replicas
// serve the list queries that go through ReadDB.
type MySQLConfig struct {
	Source   `mapstructure:",squash"`
	Replicas []Source `mapstructure:"replicas"`
}

// Database is the [database] section. Lifetimes are in seconds.
type Database struct {
	OutPut       bool `mapstructure:"output"`
	MaxOpenConns int  `mapstructure:"maxOpenConns"`
	MaxIdleConns int  `mapstructure:"maxIdleConns"`
	MaxLifetime  int  `mapstructure:"maxLifeTime"`
	MaxIdleTime  int  `mapstructure:"maxIdleTime"`

	MySQL MySQLConfig `mapstructure:"mysql"`
}

func (d Database) connMaxLifetime() time.Duration {
	return secondsOr(d.MaxLifetime, defaultMaxLifetime)
}

func (d Database) connMaxIdleTime() time.Duration {
	return secondsOr(d.MaxIdleTime, defaultMaxIdleTime)
}

func secondsOr(n int, def time.Duration) time.Duration {
	if n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func replicaDialectors(sources []Source) ([]gorm.Dialector, error) {
	if len(sources) == 0 {
		return nil, nil
	}
	out := make([]gorm.Dialector, 0, len(sources))
	for _, s := range sources {
		if err := s.validate(); err != nil {
			return nil, err
		}
		out = append(out, mysql.Open(s.DSN()))
	}
	return out, nil
}
