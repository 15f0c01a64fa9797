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

package router

import (
	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/pkg/http"
	"github.com/go-arcade/hackhub/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) hackathonRouter(r fiber.Router, auth, organizer fiber.Handler) {
	hGroup := r.Group("/hackathons", auth)
	{
		hGroup.Get("/", rt.listHackathons)
		hGroup.Post("/", organizer, rt.createHackathon)

		hGroup.Get("/:hackathonId/teams", rt.listTeams)
		hGroup.Post("/:hackathonId/teams", rt.createTeam)
	}
}

func (rt *Router) teamRouter(r fiber.Router, auth fiber.Handler) {
	teamGroup := r.Group("/teams", auth)
	{
		// 凭邀请码入队
		teamGroup.Post("/join", rt.joinTeam)

		teamGroup.Get("/:teamId", rt.getTeam)
		teamGroup.Delete("/:teamId", rt.deleteTeam)

		// 入队申请与邀请
		teamGroup.Get("/:teamId/requests", rt.listTeamRequests)
		teamGroup.Post("/:teamId/requests", rt.createTeamRequest)
		teamGroup.Post("/:teamId/requests/:userId/accept", rt.acceptTeamRequest)
		teamGroup.Post("/:teamId/requests/:userId/reject", rt.rejectTeamRequest)
	}
}

func (rt *Router) listHackathons(c *fiber.Ctx) error {
	list, err := rt.Services.Team.ListHackathons(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, list)
	return nil
}

func (rt *Router) createHackathon(c *fiber.Ctx) error {
	var req model.CreateHackathonReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	h, err := rt.Services.Team.CreateHackathon(c.UserContext(), middleware.UserId(c), &req)
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, h)
	return nil
}

func (rt *Router) listTeams(c *fiber.Ctx) error {
	teams, err := rt.Services.Team.ListTeams(c.UserContext(), c.Params("hackathonId"))
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, teams)
	return nil
}

// createTeam 创建团队，当前用户成为队长
func (rt *Router) createTeam(c *fiber.Ctx) error {
	var req model.CreateTeamReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	team, err := rt.Services.Team.CreateTeam(c.UserContext(), c.Params("hackathonId"), middleware.UserId(c), &req)
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, team)
	return nil
}

func (rt *Router) getTeam(c *fiber.Ctx) error {
	team, err := rt.Services.Team.GetTeam(c.UserContext(), c.Params("teamId"))
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, team)
	return nil
}

func (rt *Router) deleteTeam(c *fiber.Ctx) error {
	if err := rt.Services.Team.DeleteTeam(c.UserContext(), c.Params("teamId"), middleware.UserId(c)); err != nil {
		return fail(c, err)
	}
	c.Locals(http.OPERATION, "delete team")
	return nil
}

func (rt *Router) joinTeam(c *fiber.Ctx) error {
	var req model.JoinTeamReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	member, err := rt.Services.Team.JoinByInviteCode(c.UserContext(), middleware.UserId(c), &req)
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, member)
	return nil
}

func (rt *Router) listTeamRequests(c *fiber.Ctx) error {
	list, err := rt.Services.TeamRequest.ListTeamRequests(c.UserContext(), c.Params("teamId"))
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, list)
	return nil
}

func (rt *Router) createTeamRequest(c *fiber.Ctx) error {
	var req model.CreateTeamRequestReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	tr, err := rt.Services.TeamRequest.CreateTeamRequest(c.UserContext(), middleware.UserId(c), c.Params("teamId"), &req)
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, tr)
	return nil
}

func (rt *Router) acceptTeamRequest(c *fiber.Ctx) error {
	teamId, userId := c.Params("teamId"), c.Params("userId")
	if err := rt.Services.TeamRequest.CheckDecider(c.UserContext(), middleware.UserId(c), teamId, userId); err != nil {
		return fail(c, err)
	}
	member, err := rt.Services.TeamRequest.AcceptTeamRequest(c.UserContext(), teamId, userId)
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, member)
	return nil
}

func (rt *Router) rejectTeamRequest(c *fiber.Ctx) error {
	teamId, userId := c.Params("teamId"), c.Params("userId")
	if err := rt.Services.TeamRequest.CheckDecider(c.UserContext(), middleware.UserId(c), teamId, userId); err != nil {
		return fail(c, err)
	}
	if err := rt.Services.TeamRequest.RejectTeamRequest(c.UserContext(), teamId, userId); err != nil {
		return fail(c, err)
	}
	c.Locals(http.OPERATION, "reject team request")
	return nil
}
