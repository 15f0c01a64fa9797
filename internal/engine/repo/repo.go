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

package repo

import (
	"context"
	"time"

	"github.com/go-arcade/hackhub/pkg/database"
	"github.com/go-arcade/hackhub/pkg/retry"
	"gorm.io/gorm"
)

// txAttempts bounds how often a transaction is replayed after losing a deadlock
const txAttempts = 3

// Repositories 统一管理所有 repository
type Repositories struct {
	db database.IDatabase

	User        IUserRepository
	Identity    IUserIdentityRepository
	Role        IRoleRepository
	UserRole    IUserRoleRepository
	RoleRequest IRoleRequestRepository
	Hackathon   IHackathonRepository
	Team        ITeamRepository
	TeamMember  ITeamMemberRepository
	TeamRequest ITeamRequestRepository
}

// NewRepositories 初始化所有 repository
func NewRepositories(db database.IDatabase) *Repositories {
	return &Repositories{
		db:          db,
		User:        NewUserRepo(db),
		Identity:    NewUserIdentityRepo(db),
		Role:        NewRoleRepo(db),
		UserRole:    NewUserRoleRepo(db),
		RoleRequest: NewRoleRequestRepo(db),
		Hackathon:   NewHackathonRepo(db),
		Team:        NewTeamRepo(db),
		TeamMember:  NewTeamMemberRepo(db),
		TeamRequest: NewTeamRequestRepo(db),
	}
}

// Transaction runs fn with repositories bound to a single transaction.
// Returning an error from fn rolls back every statement issued through tx.
// A transaction chosen as a deadlock victim is replayed from the start, so fn
// must not keep state between calls.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return retry.Do(ctx, func(ctx context.Context) error {
		return r.db.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(NewRepositories(database.NewGormDB(tx)))
		})
	},
		retry.WithMaxAttempts(txAttempts),
		retry.WithBackoff(retry.Exponential(20*time.Millisecond, 200*time.Millisecond)),
		retry.WithJitter(),
		retry.WithRetryIf(database.IsTransient),
	)
}

// GetDB returns the handle the repositories were built on
func (r *Repositories) GetDB() database.IDatabase {
	return r.db
}

func Count(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
