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
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/hackhub/pkg/cache"
	httpx "github.com/go-arcade/hackhub/pkg/http"
	"github.com/go-arcade/hackhub/pkg/http/jwt"
	"github.com/go-arcade/hackhub/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, sonic.Unmarshal(body, &out))
	return out
}

func TestRequestMiddleware_WithExistingRequestId(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		assert.Equal(t, "existing-request-id-12345", c.Get(HeaderRequestId))
		assert.Equal(t, "existing-request-id-12345", log.RequestId(c.UserContext()))
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderRequestId, "existing-request-id-12345")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "existing-request-id-12345", resp.Header.Get(HeaderRequestId))
}

func TestRequestMiddleware_GeneratesUUID(t *testing.T) {
	uuidRegex := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	seen := map[string]bool{}

	app := fiber.New()
	app.Use(RequestMiddleware())
	app.Get("/test", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for i := 0; i < 10; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
		require.NoError(t, err)
		id := resp.Header.Get(HeaderRequestId)
		assert.Regexp(t, uuidRegex, id)
		_, err = uuid.Parse(id)
		assert.NoError(t, err)
		assert.False(t, seen[id], "duplicate request id %s", id)
		seen[id] = true
	}
}

func TestExceptionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ExceptionMiddleware)
	app.Get("/panic", func(c *fiber.Ctx) error { panic(errors.New("boom")) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body := decode(t, resp)
	assert.EqualValues(t, httpx.InternalError.Code, body["code"])
	assert.Equal(t, httpx.InternalError.Msg, body["msg"])
}

func TestUnifiedResponseMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(UnifiedResponseMiddleware())
	app.Get("/detail", func(c *fiber.Ctx) error {
		c.Locals(httpx.DETAIL, map[string]string{"id": "1"})
		return nil
	})
	app.Get("/operation", func(c *fiber.Ctx) error {
		c.Locals(httpx.OPERATION, true)
		return nil
	})
	app.Get("/error", func(c *fiber.Ctx) error {
		return httpx.WithRepErrStatus(c, fiber.StatusConflict, httpx.Conflict, "already decided")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/detail", nil))
	require.NoError(t, err)
	body := decode(t, resp)
	assert.EqualValues(t, 200, body["code"])
	assert.Equal(t, map[string]any{"id": "1"}, body["detail"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/operation", nil))
	require.NoError(t, err)
	body = decode(t, resp)
	assert.EqualValues(t, 200, body["code"])
	assert.NotContains(t, body, "detail")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/error", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body = decode(t, resp)
	assert.EqualValues(t, httpx.Conflict.Code, body["code"])
	assert.Equal(t, "already decided", body["msg"])
	assert.Equal(t, "/error", body["path"])
}

func authApp(t *testing.T, lookup RoleLookup, roles ...string) (*fiber.App, *jwt.SessionStore) {
	t.Helper()
	store := jwt.NewSessionStore(cache.NewLocalCache(0), "s:", time.Hour)
	app := fiber.New()
	app.Use(RequestMiddleware())
	handlers := []fiber.Handler{AuthorizationMiddleware(secret, store)}
	if lookup != nil {
		handlers = append(handlers, RequireRoles(lookup, roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendString(UserId(c))
	})
	app.Get("/me", handlers...)
	return app, store
}

func login(t *testing.T, store *jwt.SessionStore, userId string) string {
	t.Helper()
	pair, err := jwt.GenToken(userId, []byte(secret), time.Hour, 2*time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), jwt.Session{UserId: userId, AccessToken: pair.AccessToken}))
	return pair.AccessToken
}

func get(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthorizationMiddleware(t *testing.T) {
	app, store := authApp(t, nil)

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "").StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "garbage").StatusCode)

	token := login(t, store, "u-1")
	resp := get(t, app, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "u-1", string(body))

	// a newer login replaces the session
	_ = login(t, store, "u-1")
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, token).StatusCode)

	require.NoError(t, store.Delete(context.Background(), "u-1"))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, token).StatusCode)
}

func TestRequireRoles(t *testing.T) {
	roles := map[string][]string{
		"mod":  {"MODERATOR"},
		"user": {"PARTICIPANT"},
	}
	lookup := func(_ context.Context, userId string) ([]string, error) {
		if userId == "broken" {
			return nil, errors.New("db down")
		}
		return roles[userId], nil
	}
	app, store := authApp(t, lookup, "MODERATOR", "ADMIN")

	assert.Equal(t, fiber.StatusOK, get(t, app, login(t, store, "mod")).StatusCode)
	assert.Equal(t, fiber.StatusForbidden, get(t, app, login(t, store, "user")).StatusCode)
	assert.Equal(t, fiber.StatusInternalServerError, get(t, app, login(t, store, "broken")).StatusCode)
}

func TestSkipAccessLog(t *testing.T) {
	assert.True(t, skipAccessLog("/health"))
	assert.True(t, skipAccessLog("/metrics"))
	assert.False(t, skipAccessLog("/api/v1/role-requests"))
}
