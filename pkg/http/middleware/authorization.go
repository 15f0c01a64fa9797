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
	"errors"
	"strings"

	"github.com/go-arcade/hackhub/pkg/http"
	"github.com/go-arcade/hackhub/pkg/http/jwt"
	"github.com/go-arcade/hackhub/pkg/log"
	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// AuthorizationMiddleware 认证中间件
// 校验 Bearer access_token，并要求缓存中存在同一令牌的登录会话
func AuthorizationMiddleware(secretKey string, sessions *jwt.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aToken := c.Get(fiber.HeaderAuthorization)
		if aToken == "" {
			return http.WithRepErrStatus(c, fiber.StatusUnauthorized, http.TokenBeEmpty, "")
		}

		parts := strings.SplitN(aToken, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return http.WithRepErrStatus(c, fiber.StatusUnauthorized, http.InvalidToken, "")
		}

		claims, err := jwt.ParseToken(parts[1], secretKey)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return http.WithRepErrStatus(c, fiber.StatusUnauthorized, http.TokenExpired, "")
			}
			log.Ctx(c.UserContext()).Debugw("parse token failed", "error", err)
			return http.WithRepErrStatus(c, fiber.StatusUnauthorized, http.InvalidToken, "")
		}

		sess, err := sessions.Load(c.UserContext(), claims.UserId)
		if err != nil {
			if errors.Is(err, jwt.ErrNoSession) {
				return http.WithRepErrStatus(c, fiber.StatusUnauthorized, http.TokenExpired, "")
			}
			log.Ctx(c.UserContext()).Errorw("load session failed", "user_id", claims.UserId, "error", err)
			return http.WithRepErrStatus(c, fiber.StatusInternalServerError, http.InternalError, "")
		}
		if sess.AccessToken != parts[1] {
			return http.WithRepErrStatus(c, fiber.StatusUnauthorized, http.TokenExpired, "")
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// Claims returns the claims stored by AuthorizationMiddleware
func Claims(c *fiber.Ctx) (*jwt.AuthClaims, bool) {
	claims, ok := c.Locals(claimsKey).(*jwt.AuthClaims)
	return claims, ok && claims != nil
}

// UserId returns the authenticated user id or ""
func UserId(c *fiber.Ctx) string {
	if claims, ok := Claims(c); ok {
		return claims.UserId
	}
	return ""
}
