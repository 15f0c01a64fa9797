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

	"github.com/go-arcade/hackhub/internal/engine/config"
	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/internal/engine/repo"
	"github.com/go-arcade/hackhub/pkg/log"
	"github.com/go-arcade/hackhub/pkg/metrics"
	"gorm.io/gorm"
)

const (
	teamRequestCreated  = "created"
	teamRequestAccepted = "accepted"
	teamRequestRejected = "rejected"
	teamRequestExpired  = "expired"
)

// TeamRequestService 入队申请与邀请
type TeamRequestService struct {
	repos   *repo.Repositories
	conf    config.TeamRequestConfig
	metrics *metrics.WorkflowMetrics
	now     func() time.Time
}

func NewTeamRequestService(repos *repo.Repositories, conf config.TeamRequestConfig, m *metrics.WorkflowMetrics) *TeamRequestService {
	return &TeamRequestService{
		repos:   repos,
		conf:    conf,
		metrics: m,
		now:     time.Now,
	}
}

// CreateTeamRequest 创建入队申请 (JOIN) 或邀请 (INVITE)
// JOIN 由用户本人发起，INVITE 由队长发起
func (s *TeamRequestService) CreateTeamRequest(ctx context.Context, actorId, teamId string, req *model.CreateTeamRequestReq) (*model.TeamRequest, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	userId := actorId
	if req.Kind == model.TeamRequestInvite {
		userId = strings.TrimSpace(req.UserId)
		if userId == "" {
			return nil, Validation("userId is required for an invitation")
		}
	}

	var created *model.TeamRequest
	err := s.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		team, err := tx.Team.GetTeam(ctx, teamId)
		if err != nil {
			return notFoundOr(err, "team %s", teamId)
		}
		switch req.Kind {
		case model.TeamRequestJoin:
			if !team.IsOpen {
				return Conflict("team %s is not open to join requests", teamId)
			}
		case model.TeamRequestInvite:
			if err := requireLeader(ctx, tx, teamId, actorId); err != nil {
				return err
			}
			if _, err := tx.User.GetUserById(ctx, userId); err != nil {
				return notFoundOr(err, "user %s", userId)
			}
		}

		in, err := tx.TeamMember.InHackathon(ctx, team.HackathonId, userId)
		if err != nil {
			return err
		}
		if in {
			return Conflict("user %s already belongs to a team of this hackathon", userId)
		}

		now := s.now()
		existing, err := tx.TeamRequest.GetTeamRequest(ctx, teamId, userId)
		switch {
		case err == nil && !existing.Expired(now):
			return Conflict("a request between team %s and user %s is already pending", teamId, userId)
		case err == nil:
			// expired but not swept yet
			if _, err := tx.TeamRequest.DeleteTeamRequest(ctx, teamId, userId); err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		created = &model.TeamRequest{
			TeamId:      teamId,
			UserId:      userId,
			Kind:        req.Kind,
			RequestedBy: actorId,
			ExpiresAt:   now.Add(s.conf.TTL),
		}
		if err := tx.TeamRequest.CreateTeamRequest(ctx, created); err != nil {
			return conflictOr(err, "a request between team %s and user %s is already pending", teamId, userId)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.TeamRequestEvent(teamRequestCreated, 1)
	log.Ctx(ctx).Infow("team request created", "team_id", teamId, "user_id", userId, "kind", req.Kind)
	return created, nil
}

// CheckDecider 校验 actor 是否有权处理该请求
// JOIN 由队长处理，INVITE 由被邀请人处理
func (s *TeamRequestService) CheckDecider(ctx context.Context, actorId, teamId, userId string) error {
	req, err := s.repos.TeamRequest.GetTeamRequest(ctx, teamId, userId)
	if err != nil {
		return notFoundOr(err, "team request %s/%s", teamId, userId)
	}
	if req.Kind == model.TeamRequestInvite {
		if actorId != userId {
			return Forbidden("only the invited user can answer an invitation")
		}
		return nil
	}
	return requireLeader(ctx, s.repos, teamId, actorId)
}

// AcceptTeamRequest 删除请求并加入团队，两步在同一事务内
func (s *TeamRequestService) AcceptTeamRequest(ctx context.Context, teamId, userId string) (*model.TeamMember, error) {
	var member *model.TeamMember
	err := s.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		req, err := tx.TeamRequest.GetTeamRequest(ctx, teamId, userId)
		if err != nil {
			return notFoundOr(err, "team request %s/%s", teamId, userId)
		}
		if req.Expired(s.now()) {
			return NotFound("team request %s/%s has expired", teamId, userId)
		}
		team, err := tx.Team.GetTeam(ctx, teamId)
		if err != nil {
			return notFoundOr(err, "team %s", teamId)
		}
		in, err := tx.TeamMember.InHackathon(ctx, team.HackathonId, userId)
		if err != nil {
			return err
		}
		if in {
			return Conflict("user %s already belongs to a team of this hackathon", userId)
		}

		n, err := tx.TeamRequest.DeleteTeamRequest(ctx, teamId, userId)
		if err != nil {
			return err
		}
		if n == 0 {
			return NotFound("team request %s/%s", teamId, userId)
		}
		member = &model.TeamMember{
			TeamId:      teamId,
			UserId:      userId,
			HackathonId: team.HackathonId,
			IsLeader:    false,
		}
		if err := tx.TeamMember.AddTeamMember(ctx, member); err != nil {
			return conflictOr(err, "user %s already belongs to a team in hackathon %s", userId, team.HackathonId)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.TeamRequestEvent(teamRequestAccepted, 1)
	log.Ctx(ctx).Infow("team request accepted", "team_id", teamId, "user_id", userId)
	return member, nil
}

// RejectTeamRequest 删除请求
func (s *TeamRequestService) RejectTeamRequest(ctx context.Context, teamId, userId string) error {
	n, err := s.repos.TeamRequest.DeleteTeamRequest(ctx, teamId, userId)
	if err != nil {
		return err
	}
	if n == 0 {
		return NotFound("team request %s/%s", teamId, userId)
	}
	s.metrics.TeamRequestEvent(teamRequestRejected, 1)
	log.Ctx(ctx).Infow("team request rejected", "team_id", teamId, "user_id", userId)
	return nil
}

// ExpireTeamRequests 删除所有已过期的请求，可重复执行
func (s *TeamRequestService) ExpireTeamRequests(ctx context.Context) (int64, error) {
	n, err := s.repos.TeamRequest.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	s.metrics.TeamRequestEvent(teamRequestExpired, int(n))
	return n, nil
}

func (s *TeamRequestService) ListTeamRequests(ctx context.Context, teamId string) ([]model.TeamRequest, error) {
	return s.repos.TeamRequest.ListTeamRequests(ctx, teamId)
}

func (s *TeamRequestService) ListUserTeamRequests(ctx context.Context, userId string) ([]model.TeamRequest, error) {
	return s.repos.TeamRequest.ListUserTeamRequests(ctx, userId)
}

func requireLeader(ctx context.Context, repos *repo.Repositories, teamId, userId string) error {
	m, err := repos.TeamMember.GetTeamMember(ctx, teamId, userId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Forbidden("only the team leader can do this")
	}
	if err != nil {
		return err
	}
	if !m.IsLeader {
		return Forbidden("only the team leader can do this")
	}
	return nil
}
