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

	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/pkg/database"
	"gorm.io/gorm/clause"
)

type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserById(ctx context.Context, userId string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	LockUser(ctx context.Context, userId string) (*model.User, error)
}

type UserRepo struct {
	database.IDatabase
}

func NewUserRepo(db database.IDatabase) IUserRepository {
	return &UserRepo{IDatabase: db}
}

func (ur *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	return ur.Database().WithContext(ctx).Create(user).Error
}

func (ur *UserRepo) GetUserById(ctx context.Context, userId string) (*model.User, error) {
	var u model.User
	if err := ur.Database().WithContext(ctx).Where("user_id = ?", userId).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *UserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := ur.Database().WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := ur.Database().WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// LockUser 对用户行加写锁 (SELECT ... FOR UPDATE)，必须在事务中调用
func (ur *UserRepo) LockUser(ctx context.Context, userId string) (*model.User, error) {
	var u model.User
	err := ur.Database().WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userId).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}
