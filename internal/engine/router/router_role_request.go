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
	"slices"

	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/pkg/http"
	"github.com/go-arcade/hackhub/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) roleRequestRouter(r fiber.Router, auth, reviewer fiber.Handler) {
	rrGroup := r.Group("/role-requests", auth)
	{
		// 提交角色申请
		rrGroup.Post("/", rt.submitRoleRequest)

		// 我的申请
		rrGroup.Get("/mine", rt.myRoleRequests)

		// 待审核列表，仅审核员
		rrGroup.Get("/pending", reviewer, rt.pendingRoleRequests)

		rrGroup.Get("/:requestId", rt.getRoleRequest)

		// 审核
		rrGroup.Put("/:requestId/decision", reviewer, rt.decideRoleRequest)
	}
}

func (rt *Router) submitRoleRequest(c *fiber.Ctx) error {
	var req model.SubmitRoleRequestReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	rr, err := rt.Services.RoleRequest.SubmitRoleRequest(c.UserContext(), middleware.UserId(c), &req)
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, rr)
	return nil
}

func (rt *Router) myRoleRequests(c *fiber.Ctx) error {
	list, err := rt.Services.RoleRequest.ListUserRoleRequests(c.UserContext(), middleware.UserId(c))
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, list)
	return nil
}

func (rt *Router) pendingRoleRequests(c *fiber.Ctx) error {
	list, err := rt.Services.RoleRequest.ListPendingRequests(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, list)
	return nil
}

func (rt *Router) getRoleRequest(c *fiber.Ctx) error {
	userId := middleware.UserId(c)
	roles, err := rt.Services.User.RoleNames(c.UserContext(), userId)
	if err != nil {
		return fail(c, err)
	}
	isReviewer := slices.Contains(roles, model.RoleModerator) || slices.Contains(roles, model.RoleAdmin)

	rr, err := rt.Services.RoleRequest.GetRoleRequest(c.UserContext(), c.Params("requestId"), userId, isReviewer)
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, rr)
	return nil
}

func (rt *Router) decideRoleRequest(c *fiber.Ctx) error {
	var req model.DecideRoleRequestReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	msg, err := rt.Services.RoleRequest.DecideRoleRequest(c.UserContext(), c.Params("requestId"), middleware.UserId(c), &req)
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, msg)
	return nil
}
