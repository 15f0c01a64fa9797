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
)

type ITeamMemberRepository interface {
	AddTeamMember(ctx context.Context, member *model.TeamMember) error
	GetTeamMember(ctx context.Context, teamId, userId string) (*model.TeamMember, error)
	ListTeamMembers(ctx context.Context, teamId string) ([]model.TeamMember, error)
	// InHackathon reports whether the user is a member of any team of the hackathon
	InHackathon(ctx context.Context, hackathonId, userId string) (bool, error)
	RemoveTeamMembers(ctx context.Context, teamId string) error
}

type TeamMemberRepo struct {
	database.IDatabase
}

func NewTeamMemberRepo(db database.IDatabase) ITeamMemberRepository {
	return &TeamMemberRepo{IDatabase: db}
}

// AddTeamMember 添加团队成员
func (r *TeamMemberRepo) AddTeamMember(ctx context.Context, member *model.TeamMember) error {
	return r.Database().WithContext(ctx).Create(member).Error
}

// GetTeamMember 获取团队成员
func (r *TeamMemberRepo) GetTeamMember(ctx context.Context, teamId, userId string) (*model.TeamMember, error) {
	var member model.TeamMember
	err := r.Database().WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamId, userId).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// ListTeamMembers 列出团队成员，队长在前
func (r *TeamMemberRepo) ListTeamMembers(ctx context.Context, teamId string) ([]model.TeamMember, error) {
	members := make([]model.TeamMember, 0)
	err := r.Database().WithContext(ctx).
		Where("team_id = ?", teamId).Order("is_leader DESC").Order("id ASC").Find(&members).Error
	return members, err
}

func (r *TeamMemberRepo) InHackathon(ctx context.Context, hackathonId, userId string) (bool, error) {
	var count int64
	err := r.Database().WithContext(ctx).Model(&model.TeamMember{}).
		Where("hackathon_id = ? AND user_id = ?", hackathonId, userId).Count(&count).Error
	return count > 0, err
}

// RemoveTeamMembers 移除团队全部成员
func (r *TeamMemberRepo) RemoveTeamMembers(ctx context.Context, teamId string) error {
	return r.Database().WithContext(ctx).Where("team_id = ?", teamId).Delete(&model.TeamMember{}).Error
}
