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

func (rt *Router) userRouter(r fiber.Router, auth fiber.Handler) {
	userGroup := r.Group("/user")
	{
		userGroup.Post("/register", rt.register)
		userGroup.Post("/login", rt.login)
		userGroup.Post("/refresh", rt.refresh)

		userGroup.Post("/logout", auth, rt.logout)
		userGroup.Get("/me", auth, rt.me)
		userGroup.Get("/team-requests", auth, rt.myTeamRequests)
	}

	r.Get("/roles", rt.listRoles)
}

func (rt *Router) register(c *fiber.Ctx) error {
	var req model.RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	profile, err := rt.Services.User.Register(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, profile)
	return nil
}

func (rt *Router) login(c *fiber.Ctx) error {
	var req model.LoginReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	resp, err := rt.Services.User.Login(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, resp)
	return nil
}

func (rt *Router) refresh(c *fiber.Ctx) error {
	var req model.RefreshReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	pair, err := rt.Services.User.Refresh(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, pair)
	return nil
}

func (rt *Router) logout(c *fiber.Ctx) error {
	if err := rt.Services.User.Logout(c.UserContext(), middleware.UserId(c)); err != nil {
		return fail(c, err)
	}
	c.Locals(http.OPERATION, "logout")
	return nil
}

func (rt *Router) me(c *fiber.Ctx) error {
	profile, err := rt.Services.User.GetProfile(c.UserContext(), middleware.UserId(c))
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, profile)
	return nil
}

func (rt *Router) myTeamRequests(c *fiber.Ctx) error {
	list, err := rt.Services.TeamRequest.ListUserTeamRequests(c.UserContext(), middleware.UserId(c))
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, list)
	return nil
}

func (rt *Router) listRoles(c *fiber.Ctx) error {
	roles, err := rt.Services.User.ListRoles(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, roles)
	return nil
}
