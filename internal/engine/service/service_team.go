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
	"strings"

	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/internal/engine/repo"
	"github.com/go-arcade/hackhub/pkg/id"
	"github.com/go-arcade/hackhub/pkg/log"
)

// TeamService 黑客松与团队
type TeamService struct {
	repos *repo.Repositories
}

func NewTeamService(repos *repo.Repositories) *TeamService {
	return &TeamService{repos: repos}
}

func (s *TeamService) CreateHackathon(ctx context.Context, organizerId string, req *model.CreateHackathonReq) (*model.Hackathon, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, Validation("endsAt must be after startsAt")
	}
	h := &model.Hackathon{
		HackathonId: id.GetUUID(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		OrganizerId: organizerId,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if err := s.repos.Hackathon.CreateHackathon(ctx, h); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Infow("hackathon created", "hackathon_id", h.HackathonId, "organizer_id", organizerId)
	return h, nil
}

func (s *TeamService) ListHackathons(ctx context.Context) ([]model.Hackathon, error) {
	return s.repos.Hackathon.ListHackathons(ctx)
}

// CreateTeam 创建团队，创建者成为唯一的队长
func (s *TeamService) CreateTeam(ctx context.Context, hackathonId, leaderId string, req *model.CreateTeamReq) (*model.TeamDetail, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	isOpen := true
	if req.IsOpen != nil {
		isOpen = *req.IsOpen
	}

	var detail *model.TeamDetail
	err := s.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		if _, err := tx.Hackathon.GetHackathon(ctx, hackathonId); err != nil {
			return notFoundOr(err, "hackathon %s", hackathonId)
		}
		in, err := tx.TeamMember.InHackathon(ctx, hackathonId, leaderId)
		if err != nil {
			return err
		}
		if in {
			return Conflict("user %s already belongs to a team of this hackathon", leaderId)
		}

		team := model.Team{
			TeamId:      id.GetUUID(),
			HackathonId: hackathonId,
			Name:        strings.TrimSpace(req.Name),
			IsOpen:      isOpen,
			Skills:      req.Skills,
			InviteCode:  id.ShortId(),
		}
		if err := tx.Team.CreateTeam(ctx, &team); err != nil {
			return err
		}
		leader := model.TeamMember{
			TeamId:      team.TeamId,
			UserId:      leaderId,
			HackathonId: hackathonId,
			IsLeader:    true,
		}
		if err := tx.TeamMember.AddTeamMember(ctx, &leader); err != nil {
			return conflictOr(err, "user %s already belongs to a team in hackathon %s", leaderId, hackathonId)
		}
		detail = &model.TeamDetail{Team: team, Members: []model.TeamMember{leader}}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Infow("team created", "team_id", detail.TeamId, "hackathon_id", hackathonId, "leader_id", leaderId)
	return detail, nil
}

func (s *TeamService) ListTeams(ctx context.Context, hackathonId string) ([]model.Team, error) {
	return s.repos.Team.ListTeams(ctx, hackathonId)
}

// GetTeam returns the team with its members, leader first
func (s *TeamService) GetTeam(ctx context.Context, teamId string) (*model.TeamDetail, error) {
	team, err := s.repos.Team.GetTeam(ctx, teamId)
	if err != nil {
		return nil, notFoundOr(err, "team %s", teamId)
	}
	members, err := s.repos.TeamMember.ListTeamMembers(ctx, teamId)
	if err != nil {
		return nil, err
	}
	return &model.TeamDetail{Team: *team, Members: members}, nil
}

// DeleteTeam 解散团队，仅队长可操作
func (s *TeamService) DeleteTeam(ctx context.Context, teamId, userId string) error {
	err := s.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		if _, err := tx.Team.GetTeam(ctx, teamId); err != nil {
			return notFoundOr(err, "team %s", teamId)
		}
		if err := requireLeader(ctx, tx, teamId, userId); err != nil {
			return err
		}
		if err := tx.TeamRequest.DeleteTeamRequests(ctx, teamId); err != nil {
			return err
		}
		if err := tx.TeamMember.RemoveTeamMembers(ctx, teamId); err != nil {
			return err
		}
		return tx.Team.DeleteTeam(ctx, teamId)
	})
	if err != nil {
		return err
	}
	log.Ctx(ctx).Infow("team deleted", "team_id", teamId, "user_id", userId)
	return nil
}

// JoinByInviteCode 凭邀请码直接入队，不受 isOpen 限制
func (s *TeamService) JoinByInviteCode(ctx context.Context, userId string, req *model.JoinTeamReq) (*model.TeamMember, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(req.InviteCode)
	var member *model.TeamMember
	err := s.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		team, err := tx.Team.GetTeamByInviteCode(ctx, code)
		if err != nil {
			return notFoundOr(err, "invite code %s", code)
		}
		in, err := tx.TeamMember.InHackathon(ctx, team.HackathonId, userId)
		if err != nil {
			return err
		}
		if in {
			return Conflict("user %s already belongs to a team of this hackathon", userId)
		}
		if _, err := tx.TeamRequest.DeleteTeamRequest(ctx, team.TeamId, userId); err != nil {
			return err
		}
		member = &model.TeamMember{
			TeamId:      team.TeamId,
			UserId:      userId,
			HackathonId: team.HackathonId,
		}
		if err := tx.TeamMember.AddTeamMember(ctx, member); err != nil {
			return conflictOr(err, "user %s already belongs to a team in hackathon %s", userId, team.HackathonId)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Infow("team joined by invite code", "team_id", member.TeamId, "user_id", userId)
	return member, nil
}
