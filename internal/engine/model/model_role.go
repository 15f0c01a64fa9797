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

import "slices"

// Role 角色表，固定的五个角色由 migrate 写入
type Role struct {
	BaseModel
	RoleId      string `gorm:"column:role_id;size:36;not null;uniqueIndex" json:"roleId"`
	Name        string `gorm:"column:name;size:32;not null;uniqueIndex" json:"name"`
	Description string `gorm:"column:description;size:255" json:"description"`
}

func (Role) TableName() string {
	return "t_role"
}

// 内置角色
const (
	RoleParticipant = "PARTICIPANT"
	RoleOrganizer   = "ORGANIZER"
	RoleRecruiter   = "RECRUITER"
	RoleModerator   = "MODERATOR"
	RoleAdmin       = "ADMIN"
)

// BuiltinRoles is the seed data, role ids are stable across installs
var BuiltinRoles = []Role{
	{RoleId: "role-participant", Name: RoleParticipant, Description: "Default role, joins hackathons and teams"},
	{RoleId: "role-organizer", Name: RoleOrganizer, Description: "Registers and runs hackathons"},
	{RoleId: "role-recruiter", Name: RoleRecruiter, Description: "Browses participants for hiring"},
	{RoleId: "role-moderator", Name: RoleModerator, Description: "Reviews role requests"},
	{RoleId: "role-admin", Name: RoleAdmin, Description: "Full access"},
}

// IsRoleName reports whether name is one of the built-in role names
func IsRoleName(name string) bool {
	return slices.ContainsFunc(BuiltinRoles, func(r Role) bool { return r.Name == name })
}
