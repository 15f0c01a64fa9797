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
	"context"
	"errors"
	"testing"
	"time"

	driver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type widget struct {
	ID   uint
	Name string
}

func TestSource_DSN(t *testing.T) {
	dsn := Source{User: "root", Password: "p@ss:word", Host: "db.local", DBName: "hackhub"}.DSN()

	cfg, err := driver.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "root", cfg.User)
	assert.Equal(t, "p@ss:word", cfg.Passwd)
	assert.Equal(t, "db.local:3306", cfg.Addr)
	assert.Equal(t, "hackhub", cfg.DBName)
	assert.True(t, cfg.ParseTime)
}

func TestReplicaDialectors(t *testing.T) {
	ds, err := replicaDialectors(nil)
	require.NoError(t, err)
	assert.Nil(t, ds)

	_, err = replicaDialectors([]Source{{Host: "replica"}})
	assert.Error(t, err)

	ds, err = replicaDialectors([]Source{{Host: "r1", User: "u", DBName: "d"}, {Host: "r2", User: "u", DBName: "d"}})
	require.NoError(t, err)
	assert.Len(t, ds, 2)
}

func TestConnDurations(t *testing.T) {
	assert.Equal(t, defaultMaxLifetime, Database{}.connMaxLifetime())
	assert.Equal(t, 10*time.Second, Database{MaxLifetime: 10}.connMaxLifetime())
	assert.Equal(t, defaultMaxIdleTime, Database{MaxIdleTime: -1}.connMaxIdleTime())
	assert.Equal(t, 5*time.Second, Database{MaxIdleTime: 5}.connMaxIdleTime())
}

func TestNewManager_RejectsIncompleteSource(t *testing.T) {
	_, err := NewManager(Database{MySQL: MySQLConfig{Source: Source{Host: "db"}}})
	assert.Error(t, err)
}

func TestAutoMigrate_TablePrefix(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), GormConfig(true))
	require.NoError(t, err)

	RegisterModels(&widget{})
	require.NoError(t, AutoMigrate(db))
	assert.True(t, db.Migrator().HasTable("t_widget"))

	// ReadDB is a no-op without replicas
	require.NoError(t, db.Create(&widget{Name: "a"}).Error)
	var got []widget
	require.NoError(t, ReadDB(NewGormDB(db).Database()).Find(&got).Error)
	assert.Len(t, got, 1)
}

func TestGormLoggerAdapter_LogModeCopies(t *testing.T) {
	l := NewGormLoggerAdapter(gormlogger.Config{}, gormlogger.Info)
	silent := l.LogMode(gormlogger.Silent)
	assert.Equal(t, gormlogger.Info, l.Level)
	assert.Equal(t, gormlogger.Silent, silent.(*GormLoggerAdapter).Level)

	// must not panic on any path
	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, nil)
	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, gormlogger.ErrRecordNotFound)
}
