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

// Package testutil builds throwaway databases for repository and service tests.
package testutil

import (
	"testing"

	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/pkg/database"
	"github.com/go-arcade/hackhub/pkg/id"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database seeded with the built-in
// roles. The pool holds a single connection, so concurrent transactions
// serialize the way row locks make them serialize on MySQL.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(false))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	for _, r := range model.BuiltinRoles {
		role := r
		require.NoError(t, db.Create(&role).Error)
	}
	return db
}

// NewUser inserts a user holding the given roles and returns it
func NewUser(t testing.TB, db *gorm.DB, name string, roles ...string) *model.User {
	t.Helper()
	u := &model.User{
		UserId: id.GetUUID(),
		Name:   name,
		Email:  name + "@example.com",
	}
	require.NoError(t, db.Create(u).Error)
	for _, roleName := range roles {
		var role model.Role
		require.NoError(t, db.Where("name = ?", roleName).First(&role).Error)
		require.NoError(t, db.Create(&model.UserRole{UserId: u.UserId, RoleId: role.RoleId}).Error)
	}
	return u
}

// RoleNames returns the names of the roles the user holds, read straight from the tables
func RoleNames(t testing.TB, db *gorm.DB, userId string) []string {
	t.Helper()
	var names []string
	require.NoError(t, db.Table("t_user_role ur").
		Joins("JOIN t_role r ON r.role_id = ur.role_id").
		Where("ur.user_id = ?", userId).
		Order("r.name ASC").
		Pluck("r.name", &names).Error)
	return names
}

// FailInserts makes every insert into table fail with err until the test ends
func FailInserts(t testing.TB, db *gorm.DB, table string, err error) {
	t.Helper()
	name := "testutil:fail_" + table
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(err)
		}
	}))
	t.Cleanup(func() { _ = db.Callback().Create().Remove(name) })
}

// BeforeFirstInsert runs fn once, on the same connection, right before the
// first insert into table. Tests use it to land a competing write between a
// service's check and its insert.
func BeforeFirstInsert(t testing.TB, db *gorm.DB, table string, fn func(tx *gorm.DB)) {
	t.Helper()
	name := "testutil:before_" + table
	done := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if done || tx.Statement.Table != table {
			return
		}
		done = true
		fn(tx.Session(&gorm.Session{NewDB: true}))
	}))
	t.Cleanup(func() { _ = db.Callback().Create().Remove(name) })
}
