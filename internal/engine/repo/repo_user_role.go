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

type IUserRoleRepository interface {
	// LockUserRoles reads the user's assignments with row locks, call it inside a transaction
	LockUserRoles(ctx context.Context, userId string) ([]model.UserRole, error)
	ListRoleNames(ctx context.Context, userId string) ([]string, error)
	UpsertUserRole(ctx context.Context, userId, roleId string) error
	DeleteUserRole(ctx context.Context, userId, roleId string) error
}

type UserRoleRepo struct {
	database.IDatabase
}

func NewUserRoleRepo(db database.IDatabase) IUserRoleRepository {
	return &UserRoleRepo{IDatabase: db}
}

// LockUserRoles 锁定并列出用户的角色关联，预加载角色
// 角色表是只读参考数据，预加载查询不加锁
func (r *UserRoleRepo) LockUserRoles(ctx context.Context, userId string) ([]model.UserRole, error) {
	var rows []model.UserRole
	err := r.Database().WithContext(ctx).Preload("Role").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userId).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *UserRoleRepo) ListRoleNames(ctx context.Context, userId string) ([]string, error) {
	names := make([]string, 0, 1)
	err := r.Database().WithContext(ctx).
		Table(model.UserRole{}.TableName()+" ur").
		Joins("JOIN "+model.Role{}.TableName()+" r ON r.role_id = ur.role_id").
		Where("ur.user_id = ?", userId).
		Order("ur.id ASC").
		Pluck("r.name", &names).Error
	return names, err
}

// UpsertUserRole 授予角色，已存在时只刷新 updated_at
func (r *UserRoleRepo) UpsertUserRole(ctx context.Context, userId, roleId string) error {
	row := &model.UserRole{UserId: userId, RoleId: roleId}
	return r.Database().WithContext(ctx).Omit("Role").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "role_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(row).Error
}

func (r *UserRoleRepo) DeleteUserRole(ctx context.Context, userId, roleId string) error {
	return r.Database().WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userId, roleId).
		Delete(&model.UserRole{}).Error
}
