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
	"github.com/go-arcade/hackhub/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) authRouter(r fiber.Router) {
	authGroup := r.Group("/auth")
	{
		authGroup.Get("/providers", rt.loginProviders)
		authGroup.Get("/redirect/:provider", rt.redirect)
		authGroup.Get("/callback/:provider", rt.callback)
	}
}

func (rt *Router) loginProviders(c *fiber.Ctx) error {
	c.Locals(http.DETAIL, rt.Services.User.LoginProviders())
	return nil
}

// redirect sends the browser to the provider's consent page
func (rt *Router) redirect(c *fiber.Ctx) error {
	url, err := rt.Services.User.OAuthRedirect(c.UserContext(), c.Params("provider"))
	if err != nil {
		return fail(c, err)
	}
	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}

func (rt *Router) callback(c *fiber.Ctx) error {
	resp, err := rt.Services.User.OAuthCallback(c.UserContext(), c.Params("provider"), c.Query("state"), c.Query("code"))
	if err != nil {
		return fail(c, err)
	}
	c.Locals(http.DETAIL, resp)
	return nil
}
