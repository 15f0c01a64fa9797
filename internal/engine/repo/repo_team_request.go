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

	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/pkg/database"
)

type ITeamRequestRepository interface {
	CreateTeamRequest(ctx context.Context, req *model.TeamRequest) error
	GetTeamRequest(ctx context.Context, teamId, userId string) (*model.TeamRequest, error)
	// DeleteTeamRequest returns the number of deleted rows, 0 or 1
	DeleteTeamRequest(ctx context.Context, teamId, userId string) (int64, error)
	DeleteTeamRequests(ctx context.Context, teamId string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	ListTeamRequests(ctx context.Context, teamId string) ([]model.TeamRequest, error)
	ListUserTeamRequests(ctx context.Context, userId string) ([]model.TeamRequest, error)
}

type TeamRequestRepo struct {
	database.IDatabase
}

func NewTeamRequestRepo(db database.IDatabase) ITeamRequestRepository {
	return &TeamRequestRepo{IDatabase: db}
}

func (r *TeamRequestRepo) CreateTeamRequest(ctx context.Context, req *model.TeamRequest) error {
	return r.Database().WithContext(ctx).Create(req).Error
}

func (r *TeamRequestRepo) GetTeamRequest(ctx context.Context, teamId, userId string) (*model.TeamRequest, error) {
	var req model.TeamRequest
	err := r.Database().WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamId, userId).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *TeamRequestRepo) DeleteTeamRequest(ctx context.Context, teamId, userId string) (int64, error) {
	res := r.Database().WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamId, userId).Delete(&model.TeamRequest{})
	return res.RowsAffected, res.Error
}

func (r *TeamRequestRepo) DeleteTeamRequests(ctx context.Context, teamId string) error {
	return r.Database().WithContext(ctx).Where("team_id = ?", teamId).Delete(&model.TeamRequest{}).Error
}

// DeleteExpired 删除 expires_at <= now 的请求
func (r *TeamRequestRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.Database().WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.TeamRequest{})
	return res.RowsAffected, res.Error
}

func (r *TeamRequestRepo) ListTeamRequests(ctx context.Context, teamId string) ([]model.TeamRequest, error) {
	list := make([]model.TeamRequest, 0)
	err := r.Database().WithContext(ctx).Where("team_id = ?", teamId).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *TeamRequestRepo) ListUserTeamRequests(ctx context.Context, userId string) ([]model.TeamRequest, error) {
	list := make([]model.TeamRequest, 0)
	err := r.Database().WithContext(ctx).Where("user_id = ?", userId).Order("id ASC").Find(&list).Error
	return list, err
}
