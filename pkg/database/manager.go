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
	"time"

	"github.com/go-arcade/hackhub/pkg/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// Manager owns the connection pool for the process lifetime.
type Manager interface {
	MySQL() *gorm.DB
	Close() error
}

type pool struct {
	db *gorm.DB
}

func (p *pool) MySQL() *gorm.DB {
	return p.db
}

func (p *pool) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close mysql pool: %w", err)
	}
	return nil
}

// GormConfig is shared by every dialect hackhub opens. Driver errors are
// translated, so duplicate keys surface as gorm.ErrDuplicatedKey.
func GormConfig(output bool) *gorm.Config {
	gl := gormlogger.Default.LogMode(gormlogger.Silent)
	if output {
		gl = NewGormLoggerAdapter(gormlogger.Config{
			SlowThreshold:             time.Second,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		}, gormlogger.Info)
	}
	return &gorm.Config{
		Logger:                                   gl,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dataTablePrefix,
			SingularTable: true,
		},
	}
}

// NewManager connects to the primary, registers replicas with dbresolver
// when configured, and pings before returning.
func NewManager(cfg Database) (Manager, error) {
	if err := cfg.MySQL.validate(); err != nil {
		return nil, err
	}
	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN()), GormConfig(cfg.OutPut))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	if err := useReplicas(db, cfg); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("mysql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.connMaxLifetime())
	sqlDB.SetConnMaxIdleTime(cfg.connMaxIdleTime())
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	log.Infow("mysql connected", "host", cfg.MySQL.Host, "db", cfg.MySQL.DBName, "replicas", len(cfg.MySQL.Replicas))
	return &pool{db: db}, nil
}

func useReplicas(db *gorm.DB, cfg Database) error {
	replicas, err := replicaDialectors(cfg.MySQL.Replicas)
	if err != nil || len(replicas) == 0 {
		return err
	}
	resolver := dbresolver.Register(dbresolver.Config{
		Replicas:          replicas,
		Policy:            dbresolver.RandomPolicy{},
		TraceResolverMode: cfg.OutPut,
	}).
		SetConnMaxIdleTime(cfg.connMaxIdleTime()).
		SetConnMaxLifetime(cfg.connMaxLifetime()).
		SetMaxIdleConns(cfg.MaxIdleConns).
		SetMaxOpenConns(cfg.MaxOpenConns)
	if err := db.Use(resolver); err != nil {
		return fmt.Errorf("register dbresolver: %w", err)
	}
	return nil
}
