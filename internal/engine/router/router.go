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
	"time"

	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/internal/engine/service"
	"github.com/go-arcade/hackhub/pkg/http"
	"github.com/go-arcade/hackhub/pkg/http/jwt"
	"github.com/go-arcade/hackhub/pkg/http/middleware"
	"github.com/go-arcade/hackhub/pkg/metrics"
	"github.com/go-arcade/hackhub/pkg/shutdown"
	"github.com/go-arcade/hackhub/pkg/version"
	"github.com/gofiber/fiber/v2"
)

type Router struct {
	Http     *http.Http
	Services *service.Services
	Sessions *jwt.SessionStore
	Metrics  *metrics.Server
	Shutdown *shutdown.Manager
}

func NewRouter(
	httpConf *http.Http,
	services *service.Services,
	sessions *jwt.SessionStore,
	metricsServer *metrics.Server,
	shutdownMgr *shutdown.Manager,
) *Router {
	return &Router{
		Http:     httpConf,
		Services: services,
		Sessions: sessions,
		Metrics:  metricsServer,
		Shutdown: shutdownMgr,
	}
}

// App builds the fiber application with every route registered
func (rt *Router) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "hackhub",
		BodyLimit:             rt.Http.BodyLimit,
		ReadTimeout:           seconds(rt.Http.ReadTimeout),
		WriteTimeout:          seconds(rt.Http.WriteTimeout),
		IdleTimeout:           seconds(rt.Http.IdleTimeout),
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestMiddleware())

	// panic recover
	app.Use(middleware.ExceptionMiddleware)

	app.Use(middleware.CorsMiddleware())

	if rt.Http.AccessLog {
		app.Use(middleware.AccessLogMiddleware(rt.Http))
	}

	// unified response
	app.Use(middleware.UnifiedResponseMiddleware())

	app.Get("/health", rt.health)
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})
	if rt.Http.ExposeMetrics && rt.Metrics != nil {
		app.Get("/metrics", rt.Metrics.Handler())
	}

	rt.routerGroup(app.Group(rt.Http.ContextPath))
	return app
}

func (rt *Router) routerGroup(r fiber.Router) {
	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, rt.Sessions)
	reviewer := middleware.RequireRoles(rt.Services.User.RoleNames, model.RoleModerator, model.RoleAdmin)
	organizer := middleware.RequireRoles(rt.Services.User.RoleNames, model.RoleOrganizer, model.RoleAdmin)

	rt.userRouter(r, auth)
	rt.authRouter(r)
	rt.roleRequestRouter(r, auth, reviewer)
	rt.hackathonRouter(r, auth, organizer)
	rt.teamRouter(r, auth)
}

func (rt *Router) health(c *fiber.Ctx) error {
	if rt.Shutdown != nil && rt.Shutdown.IsShuttingDown() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}
	return c.SendString("ok")
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
