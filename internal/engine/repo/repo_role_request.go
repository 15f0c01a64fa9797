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
	"github.com/go-arcade/hackhub/pkg/statemachine"
	"gorm.io/gorm/clause"
)

type IRoleRequestRepository interface {
	CreateRoleRequest(ctx context.Context, req *model.RoleRequest) error
	GetRoleRequest(ctx context.Context, requestId string) (*model.RoleRequest, error)
	// LockRoleRequest reads the request with a row lock, call it inside a transaction
	LockRoleRequest(ctx context.Context, requestId string) (*model.RoleRequest, error)
	// DecideRoleRequest moves a PENDING request to status. It returns false
	// when the request was not PENDING any more.
	DecideRoleRequest(ctx context.Context, requestId string, status statemachine.ReviewStatus, reviewerId, notes string, at time.Time) (bool, error)
	ListPendingRoleRequests(ctx context.Context) ([]model.RoleRequest, error)
	ListUserRoleRequests(ctx context.Context, userId string) ([]model.RoleRequest, error)
	CountRoleRequests(ctx context.Context) (int64, error)
}

type RoleRequestRepo struct {
	database.IDatabase
}

func NewRoleRequestRepo(db database.IDatabase) IRoleRequestRepository {
	return &RoleRequestRepo{IDatabase: db}
}

func (r *RoleRequestRepo) CreateRoleRequest(ctx context.Context, req *model.RoleRequest) error {
	return r.Database().WithContext(ctx).Create(req).Error
}

func (r *RoleRequestRepo) GetRoleRequest(ctx context.Context, requestId string) (*model.RoleRequest, error) {
	var req model.RoleRequest
	if err := r.Database().WithContext(ctx).Where("request_id = ?", requestId).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RoleRequestRepo) LockRoleRequest(ctx context.Context, requestId string) (*model.RoleRequest, error) {
	var req model.RoleRequest
	err := r.Database().WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("request_id = ?", requestId).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// DecideRoleRequest 以 status = PENDING 为条件更新，保证只有一个决定生效
func (r *RoleRequestRepo) DecideRoleRequest(ctx context.Context, requestId string, status statemachine.ReviewStatus, reviewerId, notes string, at time.Time) (bool, error) {
	res := r.Database().WithContext(ctx).Model(&model.RoleRequest{}).
		Where("request_id = ? AND status = ?", requestId, string(statemachine.ReviewPending)).
		Updates(map[string]any{
			"status":       string(status),
			"reviewer_id":  reviewerId,
			"review_notes": notes,
			"reviewed_at":  at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ListPendingRoleRequests 待审核的申请，按提交时间排序
func (r *RoleRequestRepo) ListPendingRoleRequests(ctx context.Context) ([]model.RoleRequest, error) {
	requests := make([]model.RoleRequest, 0)
	err := database.ReadDB(r.Database().WithContext(ctx)).
		Where("status = ?", string(statemachine.ReviewPending)).
		Order("created_at ASC").Order("id ASC").
		Find(&requests).Error
	return requests, err
}

func (r *RoleRequestRepo) ListUserRoleRequests(ctx context.Context, userId string) ([]model.RoleRequest, error) {
	requests := make([]model.RoleRequest, 0)
	err := r.Database().WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").Order("id DESC").
		Find(&requests).Error
	return requests, err
}

func (r *RoleRequestRepo) CountRoleRequests(ctx context.Context) (int64, error) {
	return Count(r.Database().WithContext(ctx).Model(&model.RoleRequest{}))
}
