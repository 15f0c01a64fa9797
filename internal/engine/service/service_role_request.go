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

package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-arcade/hackhub/internal/engine/config"
	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/internal/engine/repo"
	"github.com/go-arcade/hackhub/pkg/id"
	"github.com/go-arcade/hackhub/pkg/log"
	"github.com/go-arcade/hackhub/pkg/metrics"
	"github.com/go-arcade/hackhub/pkg/statemachine"
	"gorm.io/gorm"
)

// RoleRequestService handles role elevation requests from submission to decision.
// Role and request rows are always read from the database, never cached.
type RoleRequestService struct {
	repos   *repo.Repositories
	conf    config.WorkflowConfig
	metrics *metrics.WorkflowMetrics
	review  *statemachine.StateMachine[statemachine.ReviewStatus]
	now     func() time.Time
}

func NewRoleRequestService(repos *repo.Repositories, conf config.WorkflowConfig, m *metrics.WorkflowMetrics) *RoleRequestService {
	return &RoleRequestService{
		repos:   repos,
		conf:    conf,
		metrics: m,
		review:  statemachine.NewReviewStateMachine(),
		now:     time.Now,
	}
}

// SubmitRoleRequest 提交角色申请，创建一条 PENDING 记录
func (s *RoleRequestService) SubmitRoleRequest(ctx context.Context, userId string, req *model.SubmitRoleRequestReq) (*model.RoleRequest, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	roleType := strings.TrimSpace(req.RoleType)
	if !model.IsRoleName(roleType) {
		return nil, Validation("unknown role type %q", req.RoleType)
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, Validation("reason must not be empty")
	}
	if n := utf8.RuneCountInString(reason); n < s.conf.MinReasonLength {
		return nil, Validation("reason must be at least %d characters, got %d", s.conf.MinReasonLength, n)
	}
	var supportingUrl *string
	if req.SupportingUrl != nil && strings.TrimSpace(*req.SupportingUrl) != "" {
		u := strings.TrimSpace(*req.SupportingUrl)
		if err := validate.Var(u, "http_url"); err != nil {
			return nil, Validation("supportingUrl must be an absolute http(s) URL")
		}
		supportingUrl = &u
	}

	role, err := s.repos.Role.GetRoleByName(ctx, roleType)
	if err != nil {
		return nil, notFoundOr(err, "role %s", roleType)
	}

	rr := &model.RoleRequest{
		RequestId:     id.GetUlid(),
		UserId:        userId,
		RoleId:        role.RoleId,
		RoleName:      role.Name,
		Reason:        reason,
		SupportingUrl: supportingUrl,
		Status:        s.review.Initial(),
	}
	if err := s.repos.RoleRequest.CreateRoleRequest(ctx, rr); err != nil {
		return nil, err
	}
	s.metrics.RoleRequestSubmitted(role.Name)
	log.Ctx(ctx).Infow("role request submitted", "request_id", rr.RequestId, "user_id", userId, "role", role.Name)
	return rr, nil
}

// DecideRoleRequest 审核角色申请
// 整个过程在一个事务内：锁定申请、锁定申请人、以 PENDING 为条件更新状态、批准时替换申请人的角色。
// 事务内的读取都是加锁读，REPEATABLE READ 下不会读到加锁前的快照。
func (s *RoleRequestService) DecideRoleRequest(ctx context.Context, requestId, reviewerId string, req *model.DecideRoleRequestReq) (*model.StatusMessage, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	decision := statemachine.ReviewStatus(req.Decision)
	if !decision.IsDecision() {
		return nil, Validation("decision must be APPROVED or REJECTED")
	}

	var decided *model.RoleRequest
	err := s.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		rr, err := tx.RoleRequest.LockRoleRequest(ctx, requestId)
		if err != nil {
			return notFoundOr(err, "role request %s", requestId)
		}
		if rr.UserId == reviewerId {
			return Forbidden("reviewers cannot decide their own role request")
		}
		if err := s.review.Validate(rr.Status, decision); err != nil {
			return Conflict("role request %s is already %s", requestId, rr.Status)
		}
		if _, err := tx.User.LockUser(ctx, rr.UserId); err != nil {
			return notFoundOr(err, "user %s", rr.UserId)
		}
		ok, err := tx.RoleRequest.DecideRoleRequest(ctx, requestId, decision, reviewerId, req.ReviewNotes, s.now())
		if err != nil {
			return err
		}
		if !ok {
			return Conflict("role request %s was decided concurrently", requestId)
		}
		if decision == statemachine.ReviewApproved {
			if err := s.grantRole(ctx, tx, rr); err != nil {
				return err
			}
		}
		rr.Status = decision
		decided = rr
		return nil
	})
	if err != nil {
		s.metrics.RoleDecisionFailed(KindOf(err))
		if errors.Is(err, ErrConfiguration) {
			log.Ctx(ctx).Errorw("role request decision aborted", "request_id", requestId, "error", err)
		}
		return nil, err
	}

	s.metrics.RoleRequestDecided(string(decision))
	log.Ctx(ctx).Infow("role request decided",
		"request_id", requestId,
		"user_id", decided.UserId,
		"role", decided.RoleName,
		"decision", decision,
		"reviewer_id", reviewerId,
	)
	return &model.StatusMessage{
		RequestId: requestId,
		Status:    decision,
		Message:   "role request " + strings.ToLower(string(decision)),
	}, nil
}

// grantRole leaves the user holding exactly the requested role
func (s *RoleRequestService) grantRole(ctx context.Context, tx *repo.Repositories, rr *model.RoleRequest) error {
	held, err := tx.UserRole.LockUserRoles(ctx, rr.UserId)
	if err != nil {
		return err
	}
	participant, err := tx.Role.GetRoleByName(ctx, model.RoleParticipant)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Configuration("role %s is missing from the role table", model.RoleParticipant)
		}
		return err
	}

	for _, ur := range held {
		if ur.RoleId == rr.RoleId {
			continue
		}
		if ur.RoleId == participant.RoleId {
			log.Ctx(ctx).Debugw("demote participant", "user_id", rr.UserId, "role", rr.RoleName)
		}
		if err := tx.UserRole.DeleteUserRole(ctx, rr.UserId, ur.RoleId); err != nil {
			return err
		}
	}
	return tx.UserRole.UpsertUserRole(ctx, rr.UserId, rr.RoleId)
}

// ListPendingRequests 待审核的申请快照
func (s *RoleRequestService) ListPendingRequests(ctx context.Context) ([]model.RoleRequest, error) {
	return s.repos.RoleRequest.ListPendingRoleRequests(ctx)
}

// GetRoleRequest returns the request, only its owner and reviewers may read it
func (s *RoleRequestService) GetRoleRequest(ctx context.Context, requestId, viewerId string, reviewer bool) (*model.RoleRequest, error) {
	rr, err := s.repos.RoleRequest.GetRoleRequest(ctx, requestId)
	if err != nil {
		return nil, notFoundOr(err, "role request %s", requestId)
	}
	if !reviewer && rr.UserId != viewerId {
		return nil, NotFound("role request %s", requestId)
	}
	return rr, nil
}

func (s *RoleRequestService) ListUserRoleRequests(ctx context.Context, userId string) ([]model.RoleRequest, error) {
	return s.repos.RoleRequest.ListUserRoleRequests(ctx, userId)
}
