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
	"fmt"

	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/pkg/database"
)

type IRoleRepository interface {
	GetRoleByName(ctx context.Context, name string) (*model.Role, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
	SeedRoles(ctx context.Context, roles []model.Role) error
}

type RoleRepo struct {
	database.IDatabase
}

func NewRoleRepo(db database.IDatabase) IRoleRepository {
	return &RoleRepo{IDatabase: db}
}

// GetRoleByName 根据角色名获取角色，不存在时返回 gorm.ErrRecordNotFound
func (r *RoleRepo) GetRoleByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.Database().WithContext(ctx).
		Select("id", "role_id", "name", "description", "created_at", "updated_at").
		Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepo) ListRoles(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := database.ReadDB(r.Database().WithContext(ctx)).Order("id ASC").Find(&roles).Error
	return roles, err
}

// SeedRoles 写入内置角色，按 name 幂等
func (r *RoleRepo) SeedRoles(ctx context.Context, roles []model.Role) error {
	db := r.Database().WithContext(ctx)
	for _, role := range roles {
		row := model.Role{}
		err := db.Where(model.Role{Name: role.Name}).
			Assign(model.Role{RoleId: role.RoleId, Description: role.Description}).
			FirstOrCreate(&row).Error
		if err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
	}
	return nil
}
