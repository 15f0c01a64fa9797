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
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-arcade/hackhub/internal/engine/config"
	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/internal/engine/repo"
	"github.com/go-arcade/hackhub/internal/engine/service"
	"github.com/go-arcade/hackhub/internal/engine/testutil"
	"github.com/go-arcade/hackhub/pkg/cache"
	"github.com/go-arcade/hackhub/pkg/database"
	"github.com/go-arcade/hackhub/pkg/http"
	"github.com/go-arcade/hackhub/pkg/http/jwt"
	"github.com/go-arcade/hackhub/pkg/metrics"
	"github.com/go-arcade/hackhub/pkg/shutdown"
	"github.com/go-arcade/hackhub/pkg/sso"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const secret = "router-test-secret"

type env struct {
	app      *fiber.App
	db       *gorm.DB
	sessions *jwt.SessionStore
	shutdown *shutdown.Manager
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	conf := &config.AppConfig{
		Http: http.Http{
			ExposeMetrics: true,
			Auth:          http.Auth{SecretKey: secret},
		},
		Workflow:    config.WorkflowConfig{MinReasonLength: 50},
		TeamRequest: config.TeamRequestConfig{TTL: 72 * time.Hour},
	}
	conf.Http.SetDefaults()

	local := cache.NewLocalCache(0)
	sessions := jwt.NewSessionStore(local, conf.Http.Auth.RedisKeyPrefix, conf.Http.Auth.AccessExpire)
	m := metrics.NewServer()
	svcs := service.NewServices(conf, repo.NewRepositories(database.NewGormDB(db)), sessions, local, sso.NewRegistry(sso.Providers{"github": {
		ClientId: "hackhub",
		AuthUrl:  "https://idp.example.com/authorize",
		TokenUrl: "https://idp.example.com/token",
	}}, local), m)
	sd := shutdown.NewManager()

	rt := NewRouter(&conf.Http, svcs, sessions, m, sd)
	return &env{app: rt.App(), db: db, sessions: sessions, shutdown: sd}
}

// token logs the user in without a password
func (e *env) token(t *testing.T, userId string) string {
	t.Helper()
	pair, err := jwt.GenToken(userId, []byte(secret), time.Hour, 24*time.Hour)
	require.NoError(t, err)
	require.NoError(t, e.sessions.Save(t.Context(), jwt.Session{UserId: userId, AccessToken: pair.AccessToken, LoginAt: time.Now()}))
	return pair.AccessToken
}

func (e *env) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out), string(data))
	}
	return resp.StatusCode, out
}

func detail(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["detail"].(map[string]any)
	require.True(t, ok, "response has no object detail: %v", body)
	return d
}

var reason = strings.Repeat("I ran the robotics club hackathon twice. ", 2)

func TestHealthVersionMetrics(t *testing.T) {
	e := newEnv(t)

	resp, err := e.app.Test(httptest.NewRequest(nethttp.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = e.app.Test(httptest.NewRequest(nethttp.MethodGet, "/version", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = e.app.Test(httptest.NewRequest(nethttp.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	e.shutdown.Shutdown()
	resp, err = e.app.Test(httptest.NewRequest(nethttp.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestRoleRequestFlow(t *testing.T) {
	e := newEnv(t)

	status, body := e.do(t, nethttp.MethodPost, "/user/register", "", model.RegisterReq{
		Name: "Alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, []any{model.RoleParticipant}, detail(t, body)["roles"])

	status, body = e.do(t, nethttp.MethodPost, "/user/login", "", model.LoginReq{
		Email: "alice@example.com", Password: "correct horse",
	})
	require.Equal(t, fiber.StatusOK, status, body)
	alice, _ := detail(t, body)["accessToken"].(string)
	require.NotEmpty(t, alice)

	status, body = e.do(t, nethttp.MethodPost, "/hackathons", alice, map[string]any{"name": "too early"})
	assert.Equal(t, fiber.StatusForbidden, status, body)

	status, body = e.do(t, nethttp.MethodPost, "/role-requests", alice, model.SubmitRoleRequestReq{
		RoleType: model.RoleOrganizer, Reason: reason,
	})
	require.Equal(t, fiber.StatusOK, status, body)
	requestId, _ := detail(t, body)["requestId"].(string)
	assert.Equal(t, "PENDING", detail(t, body)["status"])

	status, _ = e.do(t, nethttp.MethodGet, "/role-requests/pending", alice, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = e.do(t, nethttp.MethodGet, "/role-requests/"+requestId, alice, nil)
	assert.Equal(t, fiber.StatusOK, status, body)

	mod := e.token(t, testutil.NewUser(t, e.db, "mod", model.RoleModerator).UserId)
	status, body = e.do(t, nethttp.MethodGet, "/role-requests/pending", mod, nil)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Len(t, body["detail"], 1)

	decision := model.DecideRoleRequestReq{Decision: "APPROVED", ReviewNotes: "welcome"}
	status, body = e.do(t, nethttp.MethodPut, "/role-requests/"+requestId+"/decision", mod, decision)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "APPROVED", detail(t, body)["status"])

	status, body = e.do(t, nethttp.MethodPut, "/role-requests/"+requestId+"/decision", mod, decision)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.EqualValues(t, http.Conflict.Code, body["code"])

	status, body = e.do(t, nethttp.MethodGet, "/user/me", alice, nil)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, []any{model.RoleOrganizer}, detail(t, body)["roles"])

	start := time.Now().Add(24 * time.Hour)
	status, body = e.do(t, nethttp.MethodPost, "/hackathons", alice, model.CreateHackathonReq{
		Name: "Autumn Hack", StartsAt: start, EndsAt: start.Add(48 * time.Hour),
	})
	assert.Equal(t, fiber.StatusOK, status, body)
}

func TestErrorResponses(t *testing.T) {
	e := newEnv(t)
	user := e.token(t, testutil.NewUser(t, e.db, "bob", model.RoleParticipant).UserId)
	mod := e.token(t, testutil.NewUser(t, e.db, "mod", model.RoleModerator).UserId)

	status, body := e.do(t, nethttp.MethodGet, "/user/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.EqualValues(t, http.TokenBeEmpty.Code, body["code"])

	status, body = e.do(t, nethttp.MethodPost, "/role-requests", user, model.SubmitRoleRequestReq{
		RoleType: model.RoleOrganizer, Reason: "short",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.EqualValues(t, http.BadRequest.Code, body["code"])
	assert.Equal(t, "/api/v1/role-requests", body["path"])

	status, _ = e.do(t, nethttp.MethodPut, "/role-requests/01ARZ3NDEKTSV4RRFFQ69G5FAV/decision", mod,
		model.DecideRoleRequestReq{Decision: "REJECTED"})
	assert.Equal(t, fiber.StatusNotFound, status)

	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/user/login", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	status, _ = e.do(t, nethttp.MethodPost, "/user/login", "", model.LoginReq{Email: "bob@example.com", Password: "x"})
	assert.Equal(t, fiber.StatusBadRequest, status, "federated accounts have no password")

	status, body = e.do(t, nethttp.MethodPost, "/user/logout", user, nil)
	require.Equal(t, fiber.StatusOK, status, body)
	status, _ = e.do(t, nethttp.MethodGet, "/user/me", user, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestTeamFlow(t *testing.T) {
	e := newEnv(t)
	org := e.token(t, testutil.NewUser(t, e.db, "org", model.RoleOrganizer).UserId)
	leader := e.token(t, testutil.NewUser(t, e.db, "lead", model.RoleParticipant).UserId)
	joinerUser := testutil.NewUser(t, e.db, "joiner", model.RoleParticipant)
	joiner := e.token(t, joinerUser.UserId)

	start := time.Now().Add(24 * time.Hour)
	status, body := e.do(t, nethttp.MethodPost, "/hackathons", org, model.CreateHackathonReq{
		Name: "Winter Hack", StartsAt: start, EndsAt: start.Add(24 * time.Hour),
	})
	require.Equal(t, fiber.StatusOK, status, body)
	hackathonId, _ := detail(t, body)["hackathonId"].(string)

	status, body = e.do(t, nethttp.MethodPost, "/hackathons/"+hackathonId+"/teams", leader, model.CreateTeamReq{Name: "gophers"})
	require.Equal(t, fiber.StatusOK, status, body)
	teamId, _ := detail(t, body)["teamId"].(string)

	status, body = e.do(t, nethttp.MethodPost, "/teams/"+teamId+"/requests", joiner, model.CreateTeamRequestReq{Kind: model.TeamRequestJoin})
	require.Equal(t, fiber.StatusOK, status, body)

	status, _ = e.do(t, nethttp.MethodPost, "/teams/"+teamId+"/requests/"+joinerUser.UserId+"/accept", joiner, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = e.do(t, nethttp.MethodPost, "/teams/"+teamId+"/requests/"+joinerUser.UserId+"/accept", leader, nil)
	require.Equal(t, fiber.StatusOK, status, body)

	status, body = e.do(t, nethttp.MethodGet, "/teams/"+teamId, joiner, nil)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Len(t, detail(t, body)["members"], 2)

	status, _ = e.do(t, nethttp.MethodPost, "/teams/"+teamId+"/requests/"+joinerUser.UserId+"/reject", leader, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = e.do(t, nethttp.MethodDelete, "/teams/"+teamId, joiner, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	status, _ = e.do(t, nethttp.MethodDelete, "/teams/"+teamId, leader, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestOAuthRoutes(t *testing.T) {
	e := newEnv(t)

	resp, err := e.app.Test(httptest.NewRequest(nethttp.MethodGet, "/api/v1/auth/redirect/github", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTemporaryRedirect, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "https://idp.example.com/authorize?"))

	status, _ := e.do(t, nethttp.MethodGet, "/auth/redirect/gitlab", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body := e.do(t, nethttp.MethodGet, "/auth/callback/github?state=forged&code=c", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status, body)

	status, body = e.do(t, nethttp.MethodGet, "/auth/providers", "", nil)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, []any{"github"}, body["detail"])
}
