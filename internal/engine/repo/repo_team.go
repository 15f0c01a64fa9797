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

type ITeamRepository interface {
	CreateTeam(ctx context.Context, team *model.Team) error
	GetTeam(ctx context.Context, teamId string) (*model.Team, error)
	GetTeamByInviteCode(ctx context.Context, code string) (*model.Team, error)
	ListTeams(ctx context.Context, hackathonId string) ([]model.Team, error)
	DeleteTeam(ctx context.Context, teamId string) error
}

type TeamRepo struct {
	database.IDatabase
}

func NewTeamRepo(db database.IDatabase) ITeamRepository {
	return &TeamRepo{IDatabase: db}
}

func (r *TeamRepo) CreateTeam(ctx context.Context, team *model.Team) error {
	return r.Database().WithContext(ctx).Create(team).Error
}

func (r *TeamRepo) GetTeam(ctx context.Context, teamId string) (*model.Team, error) {
	var team model.Team
	if err := r.Database().WithContext(ctx).Where("team_id = ?", teamId).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepo) GetTeamByInviteCode(ctx context.Context, code string) (*model.Team, error) {
	var team model.Team
	if err := r.Database().WithContext(ctx).Where("invite_code = ?", code).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepo) ListTeams(ctx context.Context, hackathonId string) ([]model.Team, error) {
	teams := make([]model.Team, 0)
	err := database.ReadDB(r.Database().WithContext(ctx)).
		Where("hackathon_id = ?", hackathonId).Order("id ASC").Find(&teams).Error
	return teams, err
}

func (r *TeamRepo) DeleteTeam(ctx context.Context, teamId string) error {
	return r.Database().WithContext(ctx).Where("team_id = ?", teamId).Delete(&model.Team{}).Error
}
