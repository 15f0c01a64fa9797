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

package middleware

import (
	"context"
	"slices"

	"github.com/go-arcade/hackhub/pkg/http"
	"github.com/go-arcade/hackhub/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// RoleLookup returns the role names the user currently holds.
// Roles are resolved per request so an approval takes effect without a new login.
type RoleLookup func(ctx context.Context, userId string) ([]string, error)

// RequireRoles 要求当前用户拥有任一角色，必须放在 AuthorizationMiddleware 之后
func RequireRoles(lookup RoleLookup, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userId := UserId(c)
		if userId == "" {
			return http.WithRepErrStatus(c, fiber.StatusUnauthorized, http.Unauthorized, "")
		}
		held, err := lookup(c.UserContext(), userId)
		if err != nil {
			log.Ctx(c.UserContext()).Errorw("lookup roles failed", "user_id", userId, "error", err)
			return http.WithRepErrStatus(c, fiber.StatusInternalServerError, http.InternalError, "")
		}
		for _, r := range held {
			if slices.Contains(roles, r) {
				return c.Next()
			}
		}
		return http.WithRepErrStatus(c, fiber.StatusForbidden, http.PermissionDenied, "")
	}
}
