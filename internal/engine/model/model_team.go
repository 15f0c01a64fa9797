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

// Team 团队，属于一个黑客松
type Team struct {
	BaseModel
	TeamId      string `gorm:"column:team_id;size:36;not null;uniqueIndex" json:"teamId"`
	HackathonId string `gorm:"column:hackathon_id;size:36;not null;index" json:"hackathonId"`
	Name        string `gorm:"column:name;size:128;not null" json:"name"`
	IsOpen      bool   `gorm:"column:is_open;not null" json:"isOpen"`
	Skills      string `gorm:"column:skills;size:1024" json:"skills,omitempty"`
	InviteCode  string `gorm:"column:invite_code;size:16;not null;uniqueIndex" json:"inviteCode"`
}

func (Team) TableName() string {
	return "t_team"
}

// TeamMember 团队成员，同一团队内 user_id 唯一，同一黑客松内一个用户只属于一个团队
type TeamMember struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TeamId      string    `gorm:"column:team_id;size:36;not null;uniqueIndex:uk_team_member,priority:1" json:"teamId"`
	UserId      string    `gorm:"column:user_id;size:36;not null;uniqueIndex:uk_team_member,priority:2;uniqueIndex:uk_hackathon_member,priority:2;index" json:"userId"`
	HackathonId string    `gorm:"column:hackathon_id;size:36;not null;uniqueIndex:uk_hackathon_member,priority:1" json:"hackathonId"`
	IsLeader    bool      `gorm:"column:is_leader;not null" json:"isLeader"`
	JoinedAt    time.Time `gorm:"column:joined_at;autoCreateTime" json:"joinedAt"`
}

func (TeamMember) TableName() string {
	return "t_team_member"
}

type TeamDetail struct {
	Team
	Members []TeamMember `json:"members"`
}

type CreateTeamReq struct {
	Name   string `json:"name" validate:"required,max=128"`
	IsOpen *bool  `json:"isOpen"`
	Skills string `json:"skills" validate:"max=1024"`
}

type JoinTeamReq struct {
	InviteCode string `json:"inviteCode" validate:"required,max=16"`
}
