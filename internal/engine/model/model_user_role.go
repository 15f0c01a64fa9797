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

package model

import "time"

// UserRole 用户角色关联，(user_id, role_id) 唯一
type UserRole struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserId    string    `gorm:"column:user_id;size:36;not null;uniqueIndex:uk_user_role,priority:1" json:"userId"`
	RoleId    string    `gorm:"column:role_id;size:36;not null;uniqueIndex:uk_user_role,priority:2" json:"roleId"`
	Role      *Role     `gorm:"foreignKey:RoleId;references:RoleId" json:"role,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (UserRole) TableName() string {
	return "t_user_role"
}
